package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

const maxRequestIDLength = 128

// RequestID reuses the caller's X-Request-ID or generates one, echoes it in the response
// and stores it in the user context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestid.Header)
		if id == "" || len(id) > maxRequestIDLength {
			id = requestid.New()
		}

		c.Set(requestid.Header, id)
		c.Locals("request_id", id)
		c.SetUserContext(requestid.WithContext(c.UserContext(), id))

		return c.Next()
	}
}
