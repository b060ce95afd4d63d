package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/session"

	"go.uber.org/zap"
)

const (
	readAloudRate   = 1.05
	resultsFilename = "quiz_results.json"
)

var (
	ErrNoStudyMaterial = errors.New("client: no study material provided")
	ErrNoActiveQuiz    = errors.New("client: no active quiz")
)

// Capabilities bundles the injected environment facilities.
type Capabilities struct {
	Speaker     Speaker
	Transcriber Transcriber
	Charts      ChartRenderer
	Downloader  Downloader
	Prompter    Prompter
}

// Controller owns one quiz run: the draft study text, the active Session,
// and the source text the quiz was generated from. All state is explicit;
// generating a new quiz builds a fresh Session rather than mutating the old
// one.
type Controller struct {
	api  QuizAPI
	caps Capabilities

	now func() time.Time

	draft     string
	language  string
	dictating bool

	sess       *session.Session
	sourceText string
	count      int
}

// NewController wires a controller with its backend and capabilities.
func NewController(api QuizAPI, caps Capabilities) *Controller {
	return &Controller{api: api, caps: caps, now: time.Now}
}

// SetClock replaces the time source, for deterministic latency in tests.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

// SetSourceText replaces the draft study material.
func (c *Controller) SetSourceText(text string) { c.draft = text }

// SourceText returns the current draft study material.
func (c *Controller) SourceText() string { return c.draft }

// SetLanguage selects the quiz language. Empty means English.
func (c *Controller) SetLanguage(language string) { c.language = language }

// Session returns the active quiz session, nil before the first generation.
func (c *Controller) Session() *session.Session { return c.sess }

// StartDictation begins speech capture. Each recognized transcript replaces
// the draft text, mirroring live dictation into an input field.
func (c *Controller) StartDictation() error {
	if c.dictating {
		return nil
	}
	err := c.caps.Transcriber.Start(c.language, func(transcript string) {
		c.draft = strings.TrimSpace(transcript)
	})
	if err != nil {
		return fmt.Errorf("start dictation: %w", err)
	}
	c.dictating = true
	return nil
}

// StopDictation ends speech capture.
func (c *Controller) StopDictation() {
	if !c.dictating {
		return
	}
	c.caps.Transcriber.Stop()
	c.dictating = false
}

// Generate requests a level 1 quiz from the draft text. Empty material is
// reported through the prompter and leaves any existing session untouched,
// as does a failed generation.
func (c *Controller) Generate(ctx context.Context) error {
	text := strings.TrimSpace(c.draft)
	if text == "" {
		c.caps.Prompter.Warn("Please enter study material first!")
		return ErrNoStudyMaterial
	}

	count := c.caps.Prompter.AskCount("How many questions do you want? (1-15)", 5)
	if count <= 0 {
		count = 5
	}

	questions, err := c.api.GenerateQuiz(ctx, dto.GenerateQuizRequest{
		Text:     text,
		Count:    count,
		Language: c.language,
	})
	if err != nil {
		logger.Get().Error("Quiz generation failed", zap.Error(err))
		return err
	}

	c.sess = session.New(questions, session.LevelOne, c.now())
	c.sourceText = text
	c.count = count
	return nil
}

// ReadAloud speaks one question and its lettered options.
func (c *Controller) ReadAloud(question int) error {
	if c.sess == nil {
		return ErrNoActiveQuiz
	}
	qs := c.sess.Questions()
	if question < 0 || question >= len(qs) {
		return session.ErrQuestionOutOfRange
	}
	q := qs[question]

	parts := make([]string, 0, len(q.Options)+1)
	parts = append(parts, fmt.Sprintf("Question %d. %s", question+1, q.Question))
	for i, opt := range q.Options {
		parts = append(parts, fmt.Sprintf("Option %c: %s", 'A'+i, opt))
	}
	c.caps.Speaker.Speak(strings.Join(parts, ". "), readAloudRate)
	return nil
}

// StopSpeech cancels any utterance in progress.
func (c *Controller) StopSpeech() {
	c.caps.Speaker.Stop()
}

// Answer records the clicked option and returns the feedback line to show.
func (c *Controller) Answer(question, option int) (string, error) {
	if c.sess == nil {
		return "", ErrNoActiveQuiz
	}
	fb, err := c.sess.RecordAnswer(question, option, c.now())
	if err != nil {
		return "", err
	}
	if fb.Correct {
		return fmt.Sprintf("Correct (%gs). %s", fb.Seconds, fb.Explanation), nil
	}
	return fmt.Sprintf("Incorrect (%gs). Correct: %s", fb.Seconds, fb.CorrectAnswer), nil
}

// ShowAnalytics renders the score pie and per-question time bar, then offers
// the level 2 quiz when the score clears the threshold.
func (c *Controller) ShowAnalytics(ctx context.Context) error {
	if c.sess == nil {
		return ErrNoActiveQuiz
	}

	a := c.sess.Analytics()
	c.caps.Charts.RenderPie("Score",
		[]string{"Correct", "Incorrect"},
		[]float64{float64(a.Correct), float64(a.Incorrect)})

	labels := make([]string, a.Total)
	for i := range labels {
		labels[i] = fmt.Sprintf("Q%d", i+1)
	}
	c.caps.Charts.RenderBar("Time (s)", labels, c.sess.AnswerSeconds())

	if c.sess.OffersLevelTwo() {
		question := fmt.Sprintf("You scored %d%%. Want to try Level 2 (harder)?", a.ScorePercent)
		if c.caps.Prompter.Confirm(question) {
			return c.StartLevelTwo(ctx)
		}
	}
	return nil
}

// StartLevelTwo regenerates a harder quiz over the same source text with the
// same question count. A failed regeneration leaves the current session
// untouched.
func (c *Controller) StartLevelTwo(ctx context.Context) error {
	if c.sess == nil {
		return ErrNoActiveQuiz
	}
	c.caps.Speaker.Stop()

	questions, err := c.api.GenerateQuiz(ctx, dto.GenerateQuizRequest{
		Text:       c.sourceText,
		Count:      c.sess.Len(),
		Difficulty: string(domain.DifficultyHard),
	})
	if err != nil {
		logger.Get().Error("Level 2 generation failed", zap.Error(err))
		return err
	}

	c.sess = session.New(questions, session.LevelTwo, c.now())
	return nil
}

// DownloadResults exports the session summary as pretty-printed JSON.
func (c *Controller) DownloadResults() error {
	if c.sess == nil {
		return ErrNoActiveQuiz
	}
	data, err := json.MarshalIndent(c.sess.Summary(c.now()), "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return c.caps.Downloader.Download(resultsFilename, data)
}
