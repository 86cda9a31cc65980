package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-roaster/internal/models"
	"alfredoptarigan/resume-roaster/internal/services"
)

type RoastHandler struct {
	upload uploadProcessor
}

func NewRoastHandler(pipeline *services.Pipeline, recorder services.AnalysisRecorder, fieldName string) *RoastHandler {
	return &RoastHandler{
		upload: newUploadProcessor(pipeline, recorder, fieldName),
	}
}

// HandleRoast returns the model's plain-text roast of a PDF resume.
func (h *RoastHandler) HandleRoast(c *fiber.Ctx) error {
	outcome, err := h.upload.process(c)
	if err != nil {
		return respondError(c, err, msgUnexpected, h.upload.pipeline.MaxFileSize())
	}

	return c.JSON(models.RoastResponse{
		Message: "Success",
		Roast:   outcome.Roast,
	})
}
