package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const analysisPromptTemplate = `
    Analyze this resume and provide a detailed assessment in the following JSON format only:

    {
      "score": <number between 0-100>,
      "feedback": [
        {
          "type": "good" | "warning" | "error",
          "category": "Contact Information" | "Work Experience" | "Skills" | "Education" | "Summary" | "Other",
          "message": "<specific feedback message>"
        }
      ],
      "keywords": {
        "found": ["keyword1", "keyword2", ...],
        "missing": ["keyword1", "keyword2", ...]
      },
      "sections": [
        {
          "name": "Contact Info" | "Summary" | "Experience" | "Skills" | "Education" | "Other",
          "score": <number between 0-100>,
          "completeness": <number between 0-100>
        }
      ],
      "roast": "<humorous, constructive roast of the resume>"
    }

    Resume content:
    %s
%s
    Provide realistic, constructive feedback that helps improve the resume. Focus on:
    - Completeness and relevance
    - Formatting and clarity
    - Industry-specific keywords
    - Quantifiable achievements
    - Overall impact and presentation

    For the roast section, provide a brief, humorous critique that's constructive and entertaining.
    You may use **bold** markup for emphasis inside the roast.

    Return only valid JSON, no additional text or explanations.
  `

// BuildAnalysisPrompt embeds the resume text verbatim into the structured
// analysis template.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText string) string {
	return pb.BuildAnalysisPromptWithGuidance(resumeText, "")
}

// BuildAnalysisPromptWithGuidance adds retrieved reference material after the
// resume. Empty guidance yields exactly BuildAnalysisPrompt.
func (pb *PromptBuilder) BuildAnalysisPromptWithGuidance(resumeText, guidance string) string {
	guidanceBlock := ""
	if strings.TrimSpace(guidance) != "" {
		guidanceBlock = fmt.Sprintf(`
    Reference guidance (use it to judge keywords and section quality, do not quote it):
    %s
`, guidance)
	}

	return fmt.Sprintf(analysisPromptTemplate, resumeText, guidanceBlock)
}

// BuildRoastPrompt creates the plain-text roast prompt
func (pb *PromptBuilder) BuildRoastPrompt(resumeText string) string {
	return fmt.Sprintf(`You are a witty career coach who roasts resumes.

Read the resume below and write a short roast of it: sharp, funny and specific to what is actually written.
Point out vague bullet points, buzzwords, missing numbers and formatting crimes, then end with two or three
concrete suggestions for improvement. Keep it under 250 words. Use **bold** for the punchlines.
Do not invent facts that are not in the resume. Respond with plain text only, no JSON and no headings.

RESUME:
%s`, resumeText)
}

// FormatGuidance joins retrieved reference chunks into a prompt block.
func FormatGuidance(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		text := strings.TrimSpace(result.Text)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Reference %d (%s, score %.2f) ---\n%s",
			i+1, result.DocType, result.Score, text))
	}

	return strings.Join(parts, "\n\n")
}
