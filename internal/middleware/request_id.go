package middleware

import (
	"studyquiz/internal/util"

	"github.com/gofiber/fiber/v2"
)

// RequestIDHeader is the response header carrying the per-request ULID.
const RequestIDHeader = "X-Request-Id"

const requestIDKey = "request_id"

// RequestID attaches a ULID to every request so log lines for one
// generation round trip can be correlated.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = util.NewULID()
		}
		c.Locals(requestIDKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// GetRequestID returns the request's ULID, or "" outside RequestID.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
