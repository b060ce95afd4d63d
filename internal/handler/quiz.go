package handler

import (
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from study material
// @Description Builds a prompt from the given text, calls the model, and returns multiple-choice questions
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// No further validation: empty text, odd counts and unknown difficulty
	// values all fall through to the service defaults.
	resp, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.Int("text_length", len(req.Text)),
			zap.Int("count", req.Count),
		)
		return err
	}

	return c.JSON(resp)
}

// HealthCheck godoc
// @Summary Health check
// @Description Confirms the service is up
// @Tags health
// @Produce plain
// @Success 200 {string} string "Quiz API is running fine."
// @Router / [get]
func (h *QuizHandler) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("Quiz API is running fine.")
}
