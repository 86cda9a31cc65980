package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

type FeedbackType string

const (
	FeedbackGood    FeedbackType = "good"
	FeedbackWarning FeedbackType = "warning"
	FeedbackError   FeedbackType = "error"
)

// AnalysisResult is the structured report returned by the AI. Scores are
// advisory and passed through unclamped.
type AnalysisResult struct {
	Score    Score           `json:"score"`
	Feedback []FeedbackItem  `json:"feedback"`
	Keywords KeywordAnalysis `json:"keywords"`
	Sections []SectionScore  `json:"sections"`
	Roast    string          `json:"roast"`
}

// Score is a whole-number rating. Any JSON number decodes, rounded to the
// nearest integer; range checks are left to the strict schema.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("score must be a number: %w", err)
	}

	value, err := number.Float64()
	if err != nil {
		return fmt.Errorf("invalid score %s: %w", number, err)
	}

	rounded := math.Round(value)
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return fmt.Errorf("score %s out of range", number)
	}

	*s = Score(rounded)
	return nil
}

type FeedbackItem struct {
	Type     FeedbackType `json:"type"`
	Category string       `json:"category"`
	Message  string       `json:"message"`
}

type KeywordAnalysis struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

type SectionScore struct {
	Name         string `json:"name"`
	Score        Score  `json:"score"`
	Completeness Score  `json:"completeness"`
}

const FallbackRoast = "Your resume is like a participation trophy - it shows up, but nobody's really impressed. " +
	"The skills section reads like a shopping list from a discount store, and your experience section " +
	"could use more quantifiable achievements. Keep working on it!"

// FallbackAnalysis returns the fixed payload served when the AI output cannot
// be parsed. A fresh value is built on every call so callers may mutate it.
func FallbackAnalysis() *AnalysisResult {
	return &AnalysisResult{
		Score: 75,
		Feedback: []FeedbackItem{
			{
				Type:     FeedbackWarning,
				Category: "Analysis",
				Message:  "AI analysis failed, showing sample feedback.",
			},
		},
		Keywords: KeywordAnalysis{
			Found:   []string{"JavaScript", "React"},
			Missing: []string{"TypeScript", "Node.js"},
		},
		Sections: []SectionScore{
			{Name: "Contact Info", Score: 85, Completeness: 90},
			{Name: "Summary", Score: 70, Completeness: 75},
			{Name: "Experience", Score: 75, Completeness: 80},
			{Name: "Skills", Score: 65, Completeness: 60},
			{Name: "Education", Score: 90, Completeness: 95},
		},
		Roast: FallbackRoast,
	}
}
