package handler

import (
	"jobradar/internal/aggregator"
	"jobradar/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	scheduler *aggregator.Scheduler
}

func NewAdminHandler(scheduler *aggregator.Scheduler) *AdminHandler {
	return &AdminHandler{scheduler: scheduler}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/aggregate", h.HandleTriggerAggregation)
}

// HandleTriggerAggregation runs one aggregation synchronously. When a run is
// already in flight the engine declines and results comes back empty.
func (h *AdminHandler) HandleTriggerAggregation(c fiber.Ctx) error {
	results := h.scheduler.TriggerNow(c.Context())

	message := "Aggregation run completed"
	if len(results) == 0 {
		message = "Aggregation run already in progress"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"message": message,
		"results": results,
	})
}
