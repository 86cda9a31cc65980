package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-roaster/internal/models"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     string
		isClient bool
	}{
		{name: "nil", err: nil, kind: "", isClient: false},
		{name: "no file", err: ErrNoFile, kind: "no_file", isClient: true},
		{name: "wrapped type", err: fmt.Errorf("%w: %q", ErrUnsupportedType, "image/png"), kind: "unsupported_type", isClient: true},
		{name: "size", err: ErrFileTooLarge, kind: "file_too_large", isClient: true},
		{name: "empty", err: ErrEmptyContent, kind: "empty_content", isClient: true},
		{name: "extraction", err: &ExtractionError{MediaType: models.MediaTypePDF, Err: errors.New("bad xref")}, kind: "extraction"},
		{name: "completion", err: &CompletionError{Attempts: 2, Err: errors.New("503")}, kind: "completion"},
		{name: "other", err: errors.New("disk full"), kind: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, ErrorKind(tt.err))
			assert.Equal(t, tt.isClient, IsClientError(tt.err))
		})
	}
}

func TestTypedErrorMessages(t *testing.T) {
	cause := errors.New("invalid header")

	extractionErr := &ExtractionError{MediaType: models.MediaTypePDF, Err: cause}
	assert.Equal(t, "failed to extract text from application/pdf: invalid header", extractionErr.Error())
	assert.ErrorIs(t, extractionErr, cause)

	assert.Equal(t, "completion failed: invalid header", (&CompletionError{Attempts: 1, Err: cause}).Error())
	assert.Equal(t, "completion failed after 3 attempts: invalid header", (&CompletionError{Attempts: 3, Err: cause}).Error())
}

func TestNewRecord(t *testing.T) {
	outcome := &Outcome{MediaType: models.MediaTypePDF, Size: 2048}

	tests := []struct {
		name      string
		outcome   *Outcome
		err       error
		expected  models.AnalysisOutcome
		errorKind string
	}{
		{name: "success", outcome: outcome, expected: models.OutcomeSuccess},
		{name: "fallback", outcome: &Outcome{UsedFallback: true}, expected: models.OutcomeFallback},
		{name: "rejected", err: ErrFileTooLarge, expected: models.OutcomeRejected, errorKind: "file_too_large"},
		{name: "failed", err: &CompletionError{Err: errors.New("timeout")}, expected: models.OutcomeFailed, errorKind: "completion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := NewRecord("req-1", ModeAnalysis, tt.outcome, tt.err, 1500*time.Millisecond)

			assert.Equal(t, tt.expected, record.Outcome)
			assert.Equal(t, tt.errorKind, record.ErrorKind)
			assert.Equal(t, "req-1", record.RequestID)
			assert.Equal(t, "analysis", record.Mode)
			assert.Equal(t, int64(1500), record.DurationMs)
		})
	}

	record := NewRecord("req-2", ModeRoast, outcome, nil, 0)
	assert.Equal(t, models.MediaTypePDF, record.MediaType)
	assert.Equal(t, int64(2048), record.FileSize)
}

type fakeRecordRepo struct {
	records []*models.AnalysisRecord
	err     error
}

func (f *fakeRecordRepo) Create(record *models.AnalysisRecord) error {
	f.records = append(f.records, record)
	return f.err
}

func TestAnalysisRecorder(t *testing.T) {
	repo := &fakeRecordRepo{}
	recorder := &dbRecorder{repo: repo}

	recorder.Record(&models.AnalysisRecord{RequestID: "req-1", Outcome: models.OutcomeSuccess})

	if assert.Len(t, repo.records, 1) {
		assert.False(t, repo.records[0].CreatedAt.IsZero())
	}

	repo.err = errors.New("connection reset")
	assert.NotPanics(t, func() {
		recorder.Record(&models.AnalysisRecord{RequestID: "req-2"})
	})

	NopRecorder{}.Record(&models.AnalysisRecord{})
}
