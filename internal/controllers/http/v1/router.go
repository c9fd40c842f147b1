package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"

	"skycast-api/internal/services/forecast"
	"skycast-api/internal/services/location"
	"skycast-api/pkg/observe"
)

type routes struct {
	forecasts *forecast.Service
	locations *location.Service
	l         *observe.Logger
}

func NewRouter(
	app *fiber.App,
	forecastService *forecast.Service,
	locationService *location.Service,
	l *observe.Logger,
) {
	r := &routes{
		forecasts: forecastService,
		locations: locationService,
		l:         l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.SendString(doc)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	api := app.Group("/api/v1")
	api.Get("/locations/search", r.handleLocationSearch)
	api.Get("/locations/reverse", r.handleLocationReverse)
	api.Get("/forecast", r.handleForecast)
	api.Get("/forecast/by-address", r.handleForecastByAddress)
	api.Get("/patterns", r.handlePatterns)
}
