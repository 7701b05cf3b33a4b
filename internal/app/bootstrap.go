package app

import (
	"fmt"
	"strings"

	"jobradar/internal/delivery/http/handler"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/delivery/http/routes"
	"jobradar/internal/pkg/jwt"
	"jobradar/internal/usecase"
	"jobradar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	listingUC := usecase.NewListingUsecase(c.Repo, c.Sources, c.Cache, c.Logger)

	jwtSvc := jwt.NewHMACService(c.Config.Auth.AdminSecret)
	adminAuth := middleware.NewAdminAuthMiddleware(jwtSvc)

	registry := routes.NewRegistry(
		handler.NewListingsHandler(listingUC),
		handler.NewAdminHandler(c.Scheduler),
		adminAuth,
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
