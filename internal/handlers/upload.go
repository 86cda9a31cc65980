package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-roaster/internal/services"
)

// uploadProcessor runs one pipeline over the file in a multipart field and
// records the request outcome.
type uploadProcessor struct {
	pipeline  *services.Pipeline
	recorder  services.AnalysisRecorder
	fieldName string
}

func newUploadProcessor(pipeline *services.Pipeline, recorder services.AnalysisRecorder, fieldName string) uploadProcessor {
	if recorder == nil {
		recorder = services.NopRecorder{}
	}
	return uploadProcessor{
		pipeline:  pipeline,
		recorder:  recorder,
		fieldName: fieldName,
	}
}

func (p uploadProcessor) process(c *fiber.Ctx) (*services.Outcome, error) {
	start := time.Now()

	// A missing field and a non-multipart body both mean no file.
	file, err := c.FormFile(p.fieldName)
	if err != nil {
		file = nil
	}

	outcome, err := p.pipeline.Process(c.UserContext(), file)
	p.recorder.Record(services.NewRecord(requestID(c), p.pipeline.Mode(), outcome, err, time.Since(start)))

	if err != nil && services.IsClientError(err) {
		log.Printf("⚠️  Request %s rejected: %v\n", requestID(c), err)
	}

	return outcome, err
}
