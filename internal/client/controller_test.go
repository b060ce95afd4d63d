package client_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"studyquiz/internal/client"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizAPI
type MockQuizAPI struct {
	GenerateQuizFunc func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error)
	Calls            []dto.GenerateQuizRequest
}

func (m *MockQuizAPI) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
	m.Calls = append(m.Calls, req)
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizAPI.GenerateQuizFunc not implemented")
}

type fakeSpeaker struct {
	spoken []string
	rates  []float64
	stops  int
}

func (f *fakeSpeaker) Speak(text string, rate float64) {
	f.spoken = append(f.spoken, text)
	f.rates = append(f.rates, rate)
}
func (f *fakeSpeaker) Stop() { f.stops++ }

type fakeTranscriber struct {
	started  bool
	language string
	onResult func(string)
	startErr error
}

func (f *fakeTranscriber) Start(language string, onResult func(string)) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	f.language = language
	f.onResult = onResult
	return nil
}
func (f *fakeTranscriber) Stop() { f.started = false }

type chartCall struct {
	kind   string
	title  string
	labels []string
	values []float64
}

type fakeCharts struct {
	calls []chartCall
}

func (f *fakeCharts) RenderPie(title string, labels []string, values []float64) {
	f.calls = append(f.calls, chartCall{"pie", title, labels, values})
}
func (f *fakeCharts) RenderBar(title string, labels []string, values []float64) {
	f.calls = append(f.calls, chartCall{"bar", title, labels, values})
}

type fakeDownloader struct {
	filename string
	data     []byte
}

func (f *fakeDownloader) Download(filename string, data []byte) error {
	f.filename = filename
	f.data = data
	return nil
}

type fakePrompter struct {
	countAnswer   int
	confirmAnswer bool
	warnings      []string
	confirms      []string
}

func (f *fakePrompter) AskCount(question string, fallback int) int {
	if f.countAnswer != 0 {
		return f.countAnswer
	}
	return fallback
}
func (f *fakePrompter) Confirm(question string) bool {
	f.confirms = append(f.confirms, question)
	return f.confirmAnswer
}
func (f *fakePrompter) Warn(message string) { f.warnings = append(f.warnings, message) }

type fixture struct {
	api        *MockQuizAPI
	speaker    *fakeSpeaker
	transcrib  *fakeTranscriber
	charts     *fakeCharts
	downloader *fakeDownloader
	prompter   *fakePrompter
	controller *client.Controller
}

func newFixture() *fixture {
	f := &fixture{
		api:        &MockQuizAPI{},
		speaker:    &fakeSpeaker{},
		transcrib:  &fakeTranscriber{},
		charts:     &fakeCharts{},
		downloader: &fakeDownloader{},
		prompter:   &fakePrompter{},
	}
	f.controller = client.NewController(f.api, client.Capabilities{
		Speaker:     f.speaker,
		Transcriber: f.transcrib,
		Charts:      f.charts,
		Downloader:  f.downloader,
		Prompter:    f.prompter,
	})
	return f
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Question:    "What is the capital of France?",
			Options:     []string{"Paris", "London", "Berlin", "Madrid"},
			Answer:      "Paris",
			Explanation: "Paris is the capital of France.",
		},
		{
			Question:    "Which planet is largest?",
			Options:     []string{"Mars", "Jupiter", "Venus", "Earth"},
			Answer:      "Jupiter",
			Explanation: "Jupiter is the largest planet.",
		},
	}
}

func TestController_Generate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.prompter.countAnswer = 2
		f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
			return sampleQuestions(), nil
		}

		f.controller.SetSourceText("  mitochondria are the powerhouse  ")
		f.controller.SetLanguage("Spanish")
		require.NoError(t, f.controller.Generate(context.Background()))

		require.Len(t, f.api.Calls, 1)
		assert.Equal(t, "mitochondria are the powerhouse", f.api.Calls[0].Text)
		assert.Equal(t, 2, f.api.Calls[0].Count)
		assert.Equal(t, "Spanish", f.api.Calls[0].Language)
		assert.Empty(t, f.api.Calls[0].Difficulty)

		require.NotNil(t, f.controller.Session())
		assert.Equal(t, session.LevelOne, f.controller.Session().Level())
		assert.Equal(t, 2, f.controller.Session().Len())
	})

	t.Run("EmptyTextWarnsAndSkipsCall", func(t *testing.T) {
		f := newFixture()
		f.controller.SetSourceText("   ")

		err := f.controller.Generate(context.Background())
		assert.ErrorIs(t, err, client.ErrNoStudyMaterial)
		assert.Empty(t, f.api.Calls)
		require.Len(t, f.prompter.warnings, 1)
		assert.Equal(t, "Please enter study material first!", f.prompter.warnings[0])
	})

	t.Run("FailureLeavesSessionUntouched", func(t *testing.T) {
		f := newFixture()
		f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
			return sampleQuestions(), nil
		}
		f.controller.SetSourceText("material")
		require.NoError(t, f.controller.Generate(context.Background()))
		existing := f.controller.Session()

		f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
			return nil, assert.AnError
		}
		err := f.controller.Generate(context.Background())
		assert.Error(t, err)
		assert.Same(t, existing, f.controller.Session())
	})
}

func TestController_Dictation(t *testing.T) {
	f := newFixture()
	f.controller.SetLanguage("German")

	require.NoError(t, f.controller.StartDictation())
	assert.True(t, f.transcrib.started)
	assert.Equal(t, "German", f.transcrib.language)

	// Each transcript replaces the draft, like live dictation into a field.
	f.transcrib.onResult("the krebs cycle ")
	assert.Equal(t, "the krebs cycle", f.controller.SourceText())
	f.transcrib.onResult("the krebs cycle produces ATP")
	assert.Equal(t, "the krebs cycle produces ATP", f.controller.SourceText())

	f.controller.StopDictation()
	assert.False(t, f.transcrib.started)
}

func TestController_ReadAloud(t *testing.T) {
	f := newFixture()
	f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
		return sampleQuestions(), nil
	}
	f.controller.SetSourceText("material")
	require.NoError(t, f.controller.Generate(context.Background()))

	require.NoError(t, f.controller.ReadAloud(0))
	require.Len(t, f.speaker.spoken, 1)
	assert.Equal(t,
		"Question 1. What is the capital of France?. Option A: Paris. Option B: London. Option C: Berlin. Option D: Madrid",
		f.speaker.spoken[0])
	assert.Equal(t, 1.05, f.speaker.rates[0])

	assert.ErrorIs(t, f.controller.ReadAloud(9), session.ErrQuestionOutOfRange)
}

func TestController_Answer(t *testing.T) {
	f := newFixture()
	f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
		return sampleQuestions(), nil
	}

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := base
	f.controller.SetClock(func() time.Time { return now })

	f.controller.SetSourceText("material")
	require.NoError(t, f.controller.Generate(context.Background()))

	now = base.Add(2300 * time.Millisecond)
	feedback, err := f.controller.Answer(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Correct (2.3s). Paris is the capital of France.", feedback)

	now = base.Add(4 * time.Second)
	feedback, err = f.controller.Answer(1, 0)
	require.NoError(t, err)
	assert.Equal(t, "Incorrect (4s). Correct: Jupiter", feedback)

	_, err = f.controller.Answer(0, 1)
	assert.ErrorIs(t, err, session.ErrAlreadyAnswered)
}

func TestController_ShowAnalytics(t *testing.T) {
	t.Run("RendersCharts", func(t *testing.T) {
		f := newFixture()
		f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
			return sampleQuestions(), nil
		}
		f.controller.SetSourceText("material")
		require.NoError(t, f.controller.Generate(context.Background()))
		_, err := f.controller.Answer(0, 0)
		require.NoError(t, err)

		require.NoError(t, f.controller.ShowAnalytics(context.Background()))

		require.Len(t, f.charts.calls, 2)
		pie := f.charts.calls[0]
		assert.Equal(t, "pie", pie.kind)
		assert.Equal(t, []string{"Correct", "Incorrect"}, pie.labels)
		assert.Equal(t, []float64{1, 1}, pie.values)

		bar := f.charts.calls[1]
		assert.Equal(t, "bar", bar.kind)
		assert.Equal(t, []string{"Q1", "Q2"}, bar.labels)

		// 50 percent does not reach the level 2 threshold.
		assert.Empty(t, f.prompter.confirms)
	})

	t.Run("HighScoreOffersLevelTwo", func(t *testing.T) {
		f := newFixture()
		f.prompter.confirmAnswer = true
		f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
			return sampleQuestions(), nil
		}
		f.controller.SetSourceText("material")
		require.NoError(t, f.controller.Generate(context.Background()))
		_, err := f.controller.Answer(0, 0)
		require.NoError(t, err)
		_, err = f.controller.Answer(1, 1)
		require.NoError(t, err)

		require.NoError(t, f.controller.ShowAnalytics(context.Background()))

		require.Len(t, f.prompter.confirms, 1)
		assert.Equal(t, "You scored 100%. Want to try Level 2 (harder)?", f.prompter.confirms[0])

		// The second generation call is the hard regeneration.
		require.Len(t, f.api.Calls, 2)
		level2 := f.api.Calls[1]
		assert.Equal(t, "material", level2.Text)
		assert.Equal(t, 2, level2.Count)
		assert.Equal(t, "hard", level2.Difficulty)

		assert.Equal(t, session.LevelTwo, f.controller.Session().Level())
		assert.Equal(t, 1, f.speaker.stops)
	})

	t.Run("DeclinedOfferKeepsSession", func(t *testing.T) {
		f := newFixture()
		f.prompter.confirmAnswer = false
		f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
			return sampleQuestions(), nil
		}
		f.controller.SetSourceText("material")
		require.NoError(t, f.controller.Generate(context.Background()))
		_, err := f.controller.Answer(0, 0)
		require.NoError(t, err)
		_, err = f.controller.Answer(1, 1)
		require.NoError(t, err)
		existing := f.controller.Session()

		require.NoError(t, f.controller.ShowAnalytics(context.Background()))
		require.Len(t, f.api.Calls, 1)
		assert.Same(t, existing, f.controller.Session())
	})
}

func TestController_StartLevelTwoFailureKeepsSession(t *testing.T) {
	f := newFixture()
	f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
		return sampleQuestions(), nil
	}
	f.controller.SetSourceText("material")
	require.NoError(t, f.controller.Generate(context.Background()))
	existing := f.controller.Session()

	f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
		return nil, assert.AnError
	}
	err := f.controller.StartLevelTwo(context.Background())
	assert.Error(t, err)
	assert.Same(t, existing, f.controller.Session())
	assert.Equal(t, session.LevelOne, f.controller.Session().Level())
}

func TestController_DownloadResults(t *testing.T) {
	f := newFixture()
	f.api.GenerateQuizFunc = func(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
		return sampleQuestions(), nil
	}

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	now := base
	f.controller.SetClock(func() time.Time { return now })

	f.controller.SetSourceText("material")
	require.NoError(t, f.controller.Generate(context.Background()))

	now = base.Add(2300 * time.Millisecond)
	_, err := f.controller.Answer(0, 0)
	require.NoError(t, err)

	require.NoError(t, f.controller.DownloadResults())
	assert.Equal(t, "quiz_results.json", f.downloader.filename)

	var summary session.Summary
	require.NoError(t, json.Unmarshal(f.downloader.data, &summary))
	assert.Equal(t, 2, summary.TotalQuestions)
	assert.Equal(t, 1, summary.CorrectAnswers)
	assert.Equal(t, 50, summary.ScorePercent)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, "Yes", summary.Results[0].UserCorrect)
	assert.Equal(t, 2.3, summary.Results[0].TimeSeconds)
	assert.Equal(t, "No", summary.Results[1].UserCorrect)
	assert.Equal(t, 0.0, summary.Results[1].TimeSeconds)

	// Pretty-printed with two-space indentation.
	assert.Contains(t, string(f.downloader.data), "\n  \"totalQuestions\": 2")
}

func TestController_NoActiveQuiz(t *testing.T) {
	f := newFixture()

	_, err := f.controller.Answer(0, 0)
	assert.ErrorIs(t, err, client.ErrNoActiveQuiz)
	assert.ErrorIs(t, f.controller.ReadAloud(0), client.ErrNoActiveQuiz)
	assert.ErrorIs(t, f.controller.ShowAnalytics(context.Background()), client.ErrNoActiveQuiz)
	assert.ErrorIs(t, f.controller.StartLevelTwo(context.Background()), client.ErrNoActiveQuiz)
	assert.ErrorIs(t, f.controller.DownloadResults(), client.ErrNoActiveQuiz)
}
