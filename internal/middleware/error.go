package middleware

import (
	"errors"
	"net/http"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is a centralized error handling middleware.
//
// Generation failures deliberately collapse to a single 500 shape: the
// client contract is {error, details} regardless of whether the model call
// failed or its output could not be parsed. Other errors (bad JSON bodies,
// unknown routes) keep their fiber status codes.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			details := ""
			if domainErr.Cause != nil {
				details = domainErr.Cause.Error()
			}

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.String("path", c.Path()),
				zap.Error(domainErr.Cause),
			)

			return c.Status(mapDomainErrorToHTTPStatus(domainErr)).JSON(dto.ErrorResponse{
				Error:   domainErr.Message,
				Details: details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error: fiberErr.Message,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeInvalidInput:
		return http.StatusBadRequest
	case domain.CodeUpstreamGenerationFailure, domain.CodeMalformedModelOutput:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
