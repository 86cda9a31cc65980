package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-roaster/internal/models"
	"alfredoptarigan/resume-roaster/internal/services"
)

const (
	msgNoFile          = "No resume file uploaded"
	msgUnsupportedType = "Invalid file type. Please upload PDF or DOCX files only."
	msgEmptyContent    = "Unable to extract text from resume. Please ensure the file contains readable text."
	msgAnalysisFailed  = "Failed to analyze resume. Please try again."
	msgUnexpected      = "An unexpected error occurred"
)

// FileSizeMessage is the 400 message for uploads above maxFileSize bytes.
func FileSizeMessage(maxFileSize int64) string {
	return fmt.Sprintf("File size must be less than %dMB", maxFileSize/(1024*1024))
}

// clientMessage returns the user-facing message for an input error.
func clientMessage(err error, maxFileSize int64) (string, bool) {
	switch {
	case errors.Is(err, services.ErrNoFile):
		return msgNoFile, true
	case errors.Is(err, services.ErrUnsupportedType):
		return msgUnsupportedType, true
	case errors.Is(err, services.ErrFileTooLarge):
		return FileSizeMessage(maxFileSize), true
	case errors.Is(err, services.ErrEmptyContent):
		return msgEmptyContent, true
	default:
		return "", false
	}
}

// respondError writes a 400 for input errors and a 500 with internalMessage
// for everything else. The cause of a 500 is only logged.
func respondError(c *fiber.Ctx, err error, internalMessage string, maxFileSize int64) error {
	if message, ok := clientMessage(err, maxFileSize); ok {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: message})
	}

	log.Printf("❌ Request %s failed (%s): %v\n", requestID(c), services.ErrorKind(err), err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: internalMessage})
}

// ErrorHandler handles errors that escape route handlers, including fiber's
// own body limit rejection.
func ErrorHandler(maxFileSize int64) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
				return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
					Error: FileSizeMessage(maxFileSize),
				})
			}
			return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
		}

		return respondError(c, err, msgUnexpected, maxFileSize)
	}
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
