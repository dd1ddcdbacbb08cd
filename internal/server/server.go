// Package server assembles the locGM HTTP application.
package server

import (
	"io"
	"time"

	"locgm/internal/handlers"
	"locgm/internal/middleware"
	"locgm/internal/repositories"
	"locgm/internal/services"
	"locgm/internal/session"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Deps holds everything the application is built from.
type Deps struct {
	Log       zerolog.Logger
	AccessLog io.Writer // request log destination, stdout when nil
	Sessions  *session.Provider
	Gateway   *repositories.Gateway

	Users     repositories.UserRepository
	Companies repositories.CompanyRepository
	Places    repositories.PlaceRepository
	Posts     repositories.PostRepository
	Publisher services.EventPublisher // optional
}

// New wires services and handlers into a Fiber app.
func New(d Deps) *fiber.App {
	csrf := services.NewCSRFGuard()
	gate := services.NewGatekeeper(csrf)

	authService := services.NewAuthService(d.Users, d.Companies, csrf, d.Log)
	adminService := services.NewAdminService(d.Companies, d.Users, gate, d.Log)
	placeService := services.NewPlaceService(d.Places, d.Log)
	feedService := services.NewFeedService(d.Posts, d.Publisher, d.Log)

	authHandler := handlers.NewAuthHandler(authService, gate, csrf, d.Log)
	adminHandler := handlers.NewAdminHandler(adminService, csrf)
	placeHandler := handlers.NewPlaceHandler(placeService, gate, d.Log)
	feedHandler := handlers.NewFeedHandler(feedService, gate, csrf, d.Log)

	app := fiber.New(fiber.Config{
		AppName: "locGM",
	})

	app.Use(recover.New())
	if d.AccessLog != nil {
		app.Use(fiberlogger.New(fiberlogger.Config{Output: d.AccessLog}))
	} else {
		app.Use(fiberlogger.New())
	}

	app.Get("/health", healthHandler(d.Gateway))

	app.Use(middleware.Session(d.Sessions, csrf, d.Log))
	authHandler.RegisterRoutes(app)
	adminHandler.RegisterRoutes(app)
	placeHandler.RegisterRoutes(app)
	feedHandler.RegisterRoutes(app)

	return app
}

func healthHandler(gw *repositories.Gateway) fiber.Handler {
	return func(c *fiber.Ctx) error {
		database := "unavailable"
		if gw != nil && gw.Available() {
			database = "connected"
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
