package services

import (
	"errors"
	"fmt"
)

// Client input errors. Each maps to a 400 with a user-facing message.
var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyContent    = errors.New("no extractable text")
)

var errPromptBlocked = errors.New("prompt blocked by safety filters")

// ExtractionError reports a failure inside a document parsing library.
type ExtractionError struct {
	MediaType string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.MediaType, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CompletionError reports a failure talking to the AI service.
type CompletionError struct {
	Attempts int
	Err      error
}

func (e *CompletionError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("completion failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by the uploaded input rather
// than by a collaborator.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrEmptyContent)
}

// ErrorKind is a short label used in logs and audit records.
func ErrorKind(err error) string {
	var extractionErr *ExtractionError
	var completionErr *CompletionError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFile):
		return "no_file"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, ErrEmptyContent):
		return "empty_content"
	case errors.As(err, &extractionErr):
		return "extraction"
	case errors.As(err, &completionErr):
		return "completion"
	default:
		return "internal"
	}
}
