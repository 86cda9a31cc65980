package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleResume = `Jane Doe
jane@example.com
Senior Engineer, Acme Corp (2019-2024)
- Built things with "quotes", 100% effort and {braces}`

func TestBuildAnalysisPrompt_EmbedsResumeVerbatim(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt(sampleResume)

	assert.Contains(t, prompt, sampleResume)
	assert.NotContains(t, prompt, "%!")
}

func TestBuildAnalysisPrompt_DescribesSchema(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt("resume")

	for _, field := range []string{`"score"`, `"feedback"`, `"keywords"`, `"found"`, `"missing"`, `"sections"`, `"completeness"`, `"roast"`} {
		assert.Contains(t, prompt, field)
	}
	for _, kind := range []string{`"good"`, `"warning"`, `"error"`} {
		assert.Contains(t, prompt, kind)
	}
	assert.Contains(t, prompt, `"Work Experience"`)
	assert.Contains(t, prompt, `"Contact Info"`)
	assert.Contains(t, prompt, "Return only valid JSON")
}

func TestBuildAnalysisPrompt_Deterministic(t *testing.T) {
	pb := NewPromptBuilder()

	first := pb.BuildAnalysisPrompt(sampleResume)
	second := NewPromptBuilder().BuildAnalysisPrompt(sampleResume)

	assert.Equal(t, first, second)
}

func TestBuildAnalysisPromptWithGuidance(t *testing.T) {
	pb := NewPromptBuilder()

	assert.Equal(t, pb.BuildAnalysisPrompt(sampleResume), pb.BuildAnalysisPromptWithGuidance(sampleResume, ""))
	assert.Equal(t, pb.BuildAnalysisPrompt(sampleResume), pb.BuildAnalysisPromptWithGuidance(sampleResume, "  \n"))

	withGuidance := pb.BuildAnalysisPromptWithGuidance(sampleResume, "Use action verbs.")
	assert.Contains(t, withGuidance, "Reference guidance")
	assert.Contains(t, withGuidance, "Use action verbs.")
	assert.Less(t, strings.Index(withGuidance, sampleResume), strings.Index(withGuidance, "Use action verbs."))
}

func TestBuildRoastPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildRoastPrompt(sampleResume)

	assert.True(t, strings.HasSuffix(prompt, sampleResume))
	assert.Contains(t, prompt, "plain text only")
}

func TestFormatGuidance(t *testing.T) {
	assert.Equal(t, "", FormatGuidance(nil))

	out := FormatGuidance([]SearchResult{
		{Text: "  Quantify achievements.  ", DocType: "resume_guide", Score: 0.91},
		{Text: "   ", DocType: "resume_guide", Score: 0.5},
		{Text: "Kubernetes, Terraform", DocType: "industry_keywords", Score: 0.8},
	})

	assert.Contains(t, out, "--- Reference 1 (resume_guide, score 0.91) ---\nQuantify achievements.")
	assert.Contains(t, out, "--- Reference 3 (industry_keywords, score 0.80) ---\nKubernetes, Terraform")
	assert.NotContains(t, out, "Reference 2")
}
