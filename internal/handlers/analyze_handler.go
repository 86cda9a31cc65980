package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-roaster/internal/models"
	"alfredoptarigan/resume-roaster/internal/services"
)

type AnalyzeHandler struct {
	upload uploadProcessor
}

func NewAnalyzeHandler(pipeline *services.Pipeline, recorder services.AnalysisRecorder, fieldName string) *AnalyzeHandler {
	return &AnalyzeHandler{
		upload: newUploadProcessor(pipeline, recorder, fieldName),
	}
}

// HandleAnalyze returns the structured analysis of the uploaded resume.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	outcome, err := h.upload.process(c)
	if err != nil {
		return respondError(c, err, msgAnalysisFailed, h.upload.pipeline.MaxFileSize())
	}

	return c.JSON(models.AnalysisResponse{
		Success: true,
		Data:    outcome.Analysis,
	})
}
