package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyquiz/internal/domain"
)

// ExtractQuestions recovers the question list from the model's free-form
// reply. The model is asked for a JSON array but routinely wraps it in
// markdown fences or surrounds it with prose, so recovery is:
//  1. drop every markdown code-fence token,
//  2. slice between the first '[' and the last ']' inclusive,
//  3. parse the slice as JSON.
// Anything that defeats this returns a MALFORMED_MODEL_OUTPUT error; there is
// no further repair attempt.
func ExtractQuestions(raw string) ([]domain.Question, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, domain.NewMalformedModelOutputError(
			fmt.Errorf("no JSON array found in model output: %s", truncate(cleaned, 200)))
	}

	var questions []domain.Question
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &questions); err != nil {
		return nil, domain.NewMalformedModelOutputError(
			fmt.Errorf("failed to parse model output as JSON: %w", err))
	}

	return questions, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
