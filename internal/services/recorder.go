package services

import (
	"log"
	"time"

	"alfredoptarigan/resume-roaster/internal/models"
)

// AnalysisRecorder stores request metadata. It never sees file contents,
// extracted text or analysis results.
type AnalysisRecorder interface {
	Record(record *models.AnalysisRecord)
}

// NopRecorder drops every record.
type NopRecorder struct{}

func (NopRecorder) Record(*models.AnalysisRecord) {}

// RecordWriter is the write side of the analysis record repository.
type RecordWriter interface {
	Create(record *models.AnalysisRecord) error
}

type dbRecorder struct {
	repo RecordWriter
}

func NewAnalysisRecorder(repo RecordWriter) AnalysisRecorder {
	return &dbRecorder{repo: repo}
}

// Record implements AnalysisRecorder. Failures are logged; the request that
// produced the record is already answered.
func (r *dbRecorder) Record(record *models.AnalysisRecord) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := r.repo.Create(record); err != nil {
		log.Printf("⚠️  Failed to store analysis record: %v\n", err)
	}
}

// NewRecord builds the audit row for one request.
func NewRecord(requestID string, mode Mode, outcome *Outcome, err error, duration time.Duration) *models.AnalysisRecord {
	record := &models.AnalysisRecord{
		RequestID:  requestID,
		Mode:       string(mode),
		DurationMs: duration.Milliseconds(),
		ErrorKind:  ErrorKind(err),
	}

	switch {
	case err != nil && IsClientError(err):
		record.Outcome = models.OutcomeRejected
	case err != nil:
		record.Outcome = models.OutcomeFailed
	case outcome != nil && outcome.UsedFallback:
		record.Outcome = models.OutcomeFallback
	default:
		record.Outcome = models.OutcomeSuccess
	}

	if outcome != nil {
		record.MediaType = outcome.MediaType
		record.FileSize = outcome.Size
	}

	return record
}
