package routes

import (
	"jobradar/internal/delivery/http/handler"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	listings  *handler.ListingsHandler
	admin     *handler.AdminHandler
	adminAuth *middleware.AdminAuthMiddleware
	runsWS    *ws.Handler
}

func NewRegistry(
	listings *handler.ListingsHandler,
	admin *handler.AdminHandler,
	adminAuth *middleware.AdminAuthMiddleware,
	runsWS *ws.Handler,
) *Registry {
	return &Registry{
		health:    handler.NewHealthHandler(),
		listings:  listings,
		admin:     admin,
		adminAuth: adminAuth,
		runsWS:    runsWS,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.listings.RegisterRoutes(v1.Group("/listings"))

	adminGroup := v1.Group("/admin", r.adminAuth.Middleware())
	r.admin.RegisterRoutes(adminGroup)

	if r.runsWS != nil {
		app.Get("/ws/runs", r.runsWS.HandleRunsWS)
	}
}
