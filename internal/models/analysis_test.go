package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackAnalysis_FixedPayload(t *testing.T) {
	fb := FallbackAnalysis()

	assert.Equal(t, Score(75), fb.Score)
	require.Len(t, fb.Feedback, 1)
	assert.Equal(t, FeedbackWarning, fb.Feedback[0].Type)
	assert.Equal(t, "Analysis", fb.Feedback[0].Category)
	assert.Equal(t, []string{"JavaScript", "React"}, fb.Keywords.Found)
	assert.Equal(t, []string{"TypeScript", "Node.js"}, fb.Keywords.Missing)
	assert.Equal(t, []SectionScore{
		{Name: "Contact Info", Score: 85, Completeness: 90},
		{Name: "Summary", Score: 70, Completeness: 75},
		{Name: "Experience", Score: 75, Completeness: 80},
		{Name: "Skills", Score: 65, Completeness: 60},
		{Name: "Education", Score: 90, Completeness: 95},
	}, fb.Sections)
	assert.Equal(t, FallbackRoast, fb.Roast)
}

func TestFallbackAnalysis_IndependentCopies(t *testing.T) {
	first := FallbackAnalysis()
	first.Score = 1
	first.Keywords.Found[0] = "COBOL"

	second := FallbackAnalysis()
	assert.Equal(t, Score(75), second.Score)
	assert.Equal(t, "JavaScript", second.Keywords.Found[0])
}

func TestAnalysisResult_WireFormat(t *testing.T) {
	body, err := json.Marshal(FallbackAnalysis())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))

	assert.ElementsMatch(t, []string{"score", "feedback", "keywords", "sections", "roast"}, keys(raw))
	feedback := raw["feedback"].([]any)[0].(map[string]any)
	assert.Equal(t, "warning", feedback["type"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestScore_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected Score
		wantErr  bool
	}{
		{input: `80`, expected: 80},
		{input: `72.5`, expected: 73},
		{input: `72.4`, expected: 72},
		{input: `-5`, expected: -5},
		{input: `1e2`, expected: 100},
		{input: `null`, expected: 0},
		{input: `"eighty"`, wantErr: true},
		{input: `true`, wantErr: true},
		{input: `1e300`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var score Score
			err := json.Unmarshal([]byte(tt.input), &score)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score)
		})
	}
}
