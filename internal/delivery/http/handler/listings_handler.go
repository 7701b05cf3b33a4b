package handler

import (
	"errors"
	"strconv"

	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ListingsHandler struct {
	uc usecase.ListingUsecase
}

func NewListingsHandler(uc usecase.ListingUsecase) *ListingsHandler {
	return &ListingsHandler{uc: uc}
}

func (h *ListingsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.HandleList)
	r.Get("/sources", h.HandleSources)
	r.Get("/stats", h.HandleStats)
	r.Get("/:id", h.HandleGetByID)
}

func (h *ListingsHandler) HandleList(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, pagination, err := h.uc.List(c.Context(), usecase.ListParams{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Source:   c.Query("source"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return mapListingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListingListResponse(items, pagination))
}

func (h *ListingsHandler) HandleGetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid listing id", nil, err)
	}

	l, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapListingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"job": dto.NewListingResponse(l),
	})
}

func (h *ListingsHandler) HandleSources(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"sources": h.uc.Sources(),
	})
}

func (h *ListingsHandler) HandleStats(c fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return mapListingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStatsResponse(stats))
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapListingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Listing not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
