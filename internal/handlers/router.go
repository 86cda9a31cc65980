package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Routes struct {
	Analyze *AnalyzeHandler
	Roast   *RoastHandler
	// Stats is nil when the audit database is disabled.
	Stats *StatsHandler
}

func SetupRoutes(app *fiber.App, routes Routes) {
	api := app.Group("/api")

	api.Get("/health", HandleHealth)
	api.Post("/roast", routes.Analyze.HandleAnalyze)
	api.Post("/roast-resume", routes.Roast.HandleRoast)

	endpoints := []string{
		"GET /api/health",
		"POST /api/roast",
		"POST /api/roast-resume",
	}

	if routes.Stats != nil {
		api.Get("/analyses/stats", routes.Stats.HandleStats)
		endpoints = append(endpoints, "GET /api/analyses/stats")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Roaster API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})
}
