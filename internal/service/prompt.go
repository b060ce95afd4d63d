package service

import (
	"fmt"
	"studyquiz/internal/domain"
)

// promptTemplate mirrors the instruction layout the model was tuned against:
// persona, language line, difficulty line, count + source text, output shape.
const promptTemplate = `
You are a multilingual quiz generator.
%s
%s

Generate %d multiple-choice questions from the following text:
%s

Return valid JSON like:
[
  {"question":"...","options":["A","B","C","D"],"answer":"A","explanation":"..."}
]
Ensure the JSON is valid.
`

// BuildPrompt renders the generation prompt. It is a pure function of the
// normalized request: same request, same prompt, byte for byte.
func BuildPrompt(req domain.GenerationRequest) string {
	langLine := "Generate the quiz in English."
	if req.Language != "" {
		langLine = fmt.Sprintf("Generate the quiz and its explanations entirely in %s.", req.Language)
	}

	difficultyLine := "Use balanced difficulty suitable for learning."
	if req.Difficulty == domain.DifficultyHard {
		difficultyLine = "Make questions challenging and reasoning-based."
	}

	return fmt.Sprintf(promptTemplate, langLine, difficultyLine, req.Count, req.SourceText)
}
