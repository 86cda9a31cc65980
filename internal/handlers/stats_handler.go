package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-roaster/internal/models"
)

const maxStatsHours = 24 * 365

// OutcomeCounter is the read side of the analysis record repository.
type OutcomeCounter interface {
	CountByOutcome(since time.Time) ([]models.OutcomeCount, error)
}

type StatsHandler struct {
	counter OutcomeCounter
	now     func() time.Time
}

func NewStatsHandler(counter OutcomeCounter) *StatsHandler {
	return &StatsHandler{
		counter: counter,
		now:     time.Now,
	}
}

// HandleStats reports request outcomes over the last ?hours= hours (default 24).
func (h *StatsHandler) HandleStats(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > maxStatsHours {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "hours must be between 1 and 8760",
		})
	}

	since := h.now().Add(-time.Duration(hours) * time.Hour).UTC()
	counts, err := h.counter.CountByOutcome(since)
	if err != nil {
		log.Printf("❌ Failed to load analysis stats: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to load analysis stats",
		})
	}

	response := models.StatsResponse{
		Since:    since,
		Outcomes: counts,
	}
	if response.Outcomes == nil {
		response.Outcomes = []models.OutcomeCount{}
	}
	for _, count := range counts {
		response.Total += count.Count
	}

	return c.JSON(response)
}
