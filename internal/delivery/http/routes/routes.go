package routes

import (
	"mentor-match/internal/delivery/http/handler"
	"mentor-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Image        *handler.ImageHandler
	Mentor       *handler.MentorHandler
	MatchRequest *handler.MatchRequestHandler
	Health       *handler.HealthHandler
	Docs         *handler.DocsHandler

	AuthMiddleware *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Docs.RegisterRoutes(app)
	r.Health.RegisterRoutes(app)

	api := app.Group("/api")

	// Public: signup, login and image download.
	r.Auth.RegisterRoutes(api)
	r.Image.RegisterPublicRoutes(api)

	// Everything else needs a bearer token.
	protected := api.Group("", r.AuthMiddleware.Middleware())
	r.Profile.RegisterRoutes(protected)
	r.Image.RegisterProtectedRoutes(protected)
	r.Mentor.RegisterRoutes(protected)
	r.MatchRequest.RegisterRoutes(protected)
}
