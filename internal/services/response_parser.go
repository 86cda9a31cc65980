package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/resume-roaster/internal/models"
)

//go:embed schemas/analysis_result.schema.json
var analysisResultSchema string

// ResponseParser converts raw model output into an AnalysisResult, falling
// back to models.FallbackAnalysis whenever the output is unusable.
type ResponseParser struct {
	schema *gojsonschema.Schema
}

// NewResponseParser builds a parser. With strict set, output that parses but
// does not match the analysis schema is treated like unparseable output.
func NewResponseParser(strict bool) (*ResponseParser, error) {
	p := &ResponseParser{}
	if !strict {
		return p, nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisResultSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis schema: %w", err)
	}
	p.schema = schema

	return p, nil
}

// Parse never fails. The boolean reports whether the fallback payload was used.
func (p *ResponseParser) Parse(raw string) (*models.AnalysisResult, bool) {
	cleaned := CleanJSONBlock(raw)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		log.Printf("❌ Failed to parse AI response: %v\nResponse: %s", err, raw)
		return models.FallbackAnalysis(), true
	}

	if p.schema != nil {
		if err := p.validate(cleaned); err != nil {
			log.Printf("❌ AI response does not match analysis schema: %v\nResponse: %s", err, raw)
			return models.FallbackAnalysis(), true
		}
	}

	return &result, false
}

func (p *ResponseParser) validate(document string) error {
	result, err := p.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("failed to validate: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, fmt.Sprintf("%s: %s", field, desc.Description()))
	}

	return fmt.Errorf("%s", strings.Join(problems, "; "))
}

// CleanJSONBlock removes a surrounding markdown code fence, with or without
// a json language tag, and the whitespace around it.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "```json"):
		text = text[len("```json"):]
	case strings.HasPrefix(lower, "```"):
		text = text[len("```"):]
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text)
}
