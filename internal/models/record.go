package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisOutcome string

const (
	OutcomeSuccess  AnalysisOutcome = "success"
	OutcomeFallback AnalysisOutcome = "fallback"
	OutcomeRejected AnalysisOutcome = "rejected"
	OutcomeFailed   AnalysisOutcome = "failed"
)

// AnalysisRecord is the audit entry kept per request. It holds no
// document content and no analysis output.
type AnalysisRecord struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestID  string          `gorm:"type:text;index" json:"request_id"`
	Mode       string          `gorm:"type:text;not null" json:"mode"`
	MediaType  string          `gorm:"type:text" json:"media_type"`
	FileSize   int64           `json:"file_size"`
	Outcome    AnalysisOutcome `gorm:"type:text;not null;index" json:"outcome"`
	ErrorKind  string          `gorm:"type:text" json:"error_kind,omitempty"`
	DurationMs int64           `json:"duration_ms"`
	CreatedAt  time.Time       `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

type OutcomeCount struct {
	Outcome AnalysisOutcome `json:"outcome"`
	Count   int64           `json:"count"`
}
