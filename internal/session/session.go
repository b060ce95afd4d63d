// Package session holds the client-local state of one quiz run: which
// questions were shown, when, and how they were answered. A Session is an
// explicit value owned by its caller; starting a new quiz means building a
// fresh Session, never clearing one in place.
package session

import (
	"errors"
	"math"
	"strings"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/util"
)

// QuestionState tracks the per-question state machine. The only transition
// is Unanswered to Answered; there is no way back.
type QuestionState int

const (
	Unanswered QuestionState = iota
	Answered
)

// Quiz levels. Level 2 is the harder regeneration over the same source text.
const (
	LevelOne = 1
	LevelTwo = 2
)

var (
	ErrQuestionOutOfRange = errors.New("session: question index out of range")
	ErrOptionOutOfRange   = errors.New("session: option index out of range")
	ErrAlreadyAnswered    = errors.New("session: question already answered")
)

type answerRecord struct {
	state   QuestionState
	correct bool
	seconds float64
}

// Session is the state of one rendered quiz.
type Session struct {
	id        string
	level     int
	questions []domain.Question
	startedAt []time.Time
	records   []answerRecord
}

// New builds a session for a freshly rendered quiz. The render time becomes
// every question's latency baseline, matching a quiz where all cards appear
// at once.
func New(questions []domain.Question, level int, now time.Time) *Session {
	s := &Session{
		id:        util.NewULID(),
		level:     level,
		questions: questions,
		startedAt: make([]time.Time, len(questions)),
		records:   make([]answerRecord, len(questions)),
	}
	for i := range s.startedAt {
		s.startedAt[i] = now
	}
	return s
}

// ID returns the session's ULID.
func (s *Session) ID() string { return s.id }

// Level returns 1 for the initial quiz, 2 for the harder regeneration.
func (s *Session) Level() int { return s.level }

// Questions returns the rendered questions in order.
func (s *Session) Questions() []domain.Question { return s.questions }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// State reports the state machine position for one question.
func (s *Session) State(question int) QuestionState {
	if question < 0 || question >= len(s.records) {
		return Unanswered
	}
	return s.records[question].state
}

// Feedback is what the UI shows after an answer is recorded.
type Feedback struct {
	Correct       bool
	Seconds       float64
	Explanation   string // set on correct answers
	CorrectAnswer string // set on incorrect answers
}

// RecordAnswer finalizes a question with the clicked option. The first
// answer wins: recording against an Answered question fails with
// ErrAlreadyAnswered and changes nothing. Latency is seconds since render,
// rounded to one decimal. Correctness is substring containment of the
// model's stated answer within the clicked option's text.
func (s *Session) RecordAnswer(question, option int, at time.Time) (Feedback, error) {
	if question < 0 || question >= len(s.questions) {
		return Feedback{}, ErrQuestionOutOfRange
	}
	q := s.questions[question]
	if option < 0 || option >= len(q.Options) {
		return Feedback{}, ErrOptionOutOfRange
	}
	if s.records[question].state == Answered {
		return Feedback{}, ErrAlreadyAnswered
	}

	elapsed := at.Sub(s.startedAt[question]).Seconds()
	seconds := math.Round(elapsed*10) / 10

	correct := strings.Contains(strings.TrimSpace(q.Options[option]), strings.TrimSpace(q.Answer))

	s.records[question] = answerRecord{state: Answered, correct: correct, seconds: seconds}

	fb := Feedback{Correct: correct, Seconds: seconds}
	if correct {
		fb.Explanation = q.Explanation
	} else {
		fb.CorrectAnswer = q.Answer
	}
	return fb, nil
}

// Analytics is the aggregate view of a session. Unanswered questions count
// as incorrect.
type Analytics struct {
	Total        int
	Correct      int
	Incorrect    int
	ScorePercent int
}

// Analytics computes the aggregate score.
func (s *Session) Analytics() Analytics {
	a := Analytics{Total: len(s.questions)}
	for _, r := range s.records {
		if r.state == Answered && r.correct {
			a.Correct++
		}
	}
	a.Incorrect = a.Total - a.Correct
	if a.Total > 0 {
		a.ScorePercent = int(math.Round(float64(a.Correct) / float64(a.Total) * 100))
	}
	return a
}

// AnswerSeconds returns the recorded latency per question, zero where
// unanswered. The slice is ordered like Questions.
func (s *Session) AnswerSeconds() []float64 {
	seconds := make([]float64, len(s.records))
	for i, r := range s.records {
		seconds[i] = r.seconds
	}
	return seconds
}

// OffersLevelTwo reports whether the score earns the harder follow-up quiz.
func (s *Session) OffersLevelTwo() bool {
	return s.Analytics().ScorePercent >= 80
}

// QuestionResult is one line of the exported summary.
type QuestionResult struct {
	Number        int     `json:"number"`
	Question      string  `json:"question"`
	CorrectAnswer string  `json:"correctAnswer"`
	UserCorrect   string  `json:"userCorrect"`
	TimeSeconds   float64 `json:"timeSeconds"`
}

// Summary is the write-once export snapshot. It is serialized for download
// and never read back.
type Summary struct {
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	ScorePercent   int              `json:"scorePercent"`
	Timestamp      string           `json:"timestamp"`
	Results        []QuestionResult `json:"results"`
}

// Summary builds the export snapshot at the given time.
func (s *Session) Summary(now time.Time) Summary {
	a := s.Analytics()
	summary := Summary{
		TotalQuestions: a.Total,
		CorrectAnswers: a.Correct,
		ScorePercent:   a.ScorePercent,
		Timestamp:      now.Format("2006-01-02 15:04:05"),
		Results:        make([]QuestionResult, 0, len(s.questions)),
	}
	for i, q := range s.questions {
		userCorrect := "No"
		if s.records[i].state == Answered && s.records[i].correct {
			userCorrect = "Yes"
		}
		summary.Results = append(summary.Results, QuestionResult{
			Number:        i + 1,
			Question:      q.Question,
			CorrectAnswer: q.Answer,
			UserCorrect:   userCorrect,
			TimeSeconds:   s.records[i].seconds,
		})
	}
	return summary
}
