package service

import (
	"context"
	"encoding/json"

	"studyquiz/internal/cache"
	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService defines the interface for quiz generation
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	generator domain.TextGenerator
	cache     domain.Cache // nil disables caching
	cfg       *config.Config
	group     singleflight.Group
}

// NewQuizService creates a new instance of quizService. A nil cache is
// allowed and turns caching off entirely.
func NewQuizService(generator domain.TextGenerator, quizCache domain.Cache, cfg *config.Config) QuizService {
	return &quizService{
		generator: generator,
		cache:     quizCache,
		cfg:       cfg,
	}
}

// GenerateQuiz implements QuizService. Identical concurrent requests share a
// single upstream call via singleflight; repeated requests within the cache
// TTL (the Level 2 flow re-sends the same source text) skip the model
// entirely. Cache trouble is logged and ignored, it never fails a request.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	genReq := domain.GenerationRequest{
		SourceText: req.Text,
		Count:      req.Count,
		Difficulty: domain.Difficulty(req.Difficulty),
		Language:   req.Language,
	}.Normalize()
	if s.cfg != nil && s.cfg.Quiz.DefaultQuestionCount > 0 && req.Count <= 0 {
		genReq.Count = s.cfg.Quiz.DefaultQuestionCount
	}

	key := cache.QuizGenerationKey(genReq)

	if questions, ok := s.lookupCache(ctx, key); ok {
		logger.Get().Info("Serving generated quiz from cache",
			zap.String("cache_key", key),
			zap.Int("question_count", len(questions)))
		return toResponse(questions), nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		questions, err := s.generate(ctx, genReq)
		if err != nil {
			return nil, err
		}
		s.fillCache(ctx, key, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(v.([]domain.Question)), nil
}

// generate is the uncached path: prompt, model call, extraction.
func (s *quizService) generate(ctx context.Context, genReq domain.GenerationRequest) ([]domain.Question, error) {
	prompt := BuildPrompt(genReq)
	logger.Get().Debug("Calling model for quiz generation",
		zap.Int("count", genReq.Count),
		zap.String("difficulty", string(genReq.Difficulty)),
		zap.String("language", genReq.Language),
		zap.Int("prompt_length", len(prompt)))

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Error("Model call failed during quiz generation", zap.Error(err))
		return nil, domain.NewUpstreamGenerationError(err)
	}

	questions, err := ExtractQuestions(raw)
	if err != nil {
		logger.Get().Error("Could not extract questions from model output",
			zap.Error(err),
			zap.Int("raw_length", len(raw)))
		return nil, err
	}

	logger.Get().Info("Quiz generated", zap.Int("question_count", len(questions)))
	return questions, nil
}

func (s *quizService) lookupCache(ctx context.Context, key string) ([]domain.Question, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Quiz cache read failed, generating fresh",
				zap.Error(err), zap.String("cache_key", key))
		}
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal([]byte(cached), &questions); err != nil {
		logger.Get().Warn("Discarding undecodable quiz cache entry",
			zap.Error(err), zap.String("cache_key", key))
		return nil, false
	}
	return questions, true
}

func (s *quizService) fillCache(ctx context.Context, key string, questions []domain.Question) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(questions)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cfg.Redis.QuizTTL); err != nil {
		logger.Get().Warn("Quiz cache write failed",
			zap.Error(err), zap.String("cache_key", key))
	}
}

func toResponse(questions []domain.Question) *dto.GenerateQuizResponse {
	resp := &dto.GenerateQuizResponse{Questions: make([]dto.QuestionResponse, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return resp
}
