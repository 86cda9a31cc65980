package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-roaster/internal/models"
)

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "ok",
		Message:   "Resume Roast API is running",
		Timestamp: time.Now().UTC(),
	})
}
