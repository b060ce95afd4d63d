// Package client drives a quiz run end to end: acquiring study text,
// requesting generation over HTTP, recording answers, and presenting
// analytics. Environment facilities such as speech and charts are injected
// behind small interfaces so the controller stays testable.
package client

import (
	"context"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
)

// Speaker reads text aloud. Speak replaces any utterance in progress.
type Speaker interface {
	Speak(text string, rate float64)
	Stop()
}

// Transcriber turns spoken input into text. Start begins a continuous
// capture session; each recognized transcript is delivered to onResult as
// the full text so far. Stop ends the session.
type Transcriber interface {
	Start(language string, onResult func(transcript string)) error
	Stop()
}

// ChartRenderer draws the analytics charts.
type ChartRenderer interface {
	RenderPie(title string, labels []string, values []float64)
	RenderBar(title string, labels []string, values []float64)
}

// Downloader hands a finished file to the user.
type Downloader interface {
	Download(filename string, data []byte) error
}

// Prompter covers the small interactive dialogs around a quiz run.
type Prompter interface {
	AskCount(question string, fallback int) int
	Confirm(question string) bool
	Warn(message string)
}

// QuizAPI is the generation backend as seen from the controller.
type QuizAPI interface {
	GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error)
}
