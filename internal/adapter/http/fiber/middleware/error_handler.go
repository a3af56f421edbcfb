package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

// ErrorHandler renders errors that escaped a handler as {"error": ...}.
// Only fiber errors keep their message; anything else becomes a bare 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := utils.StatusMessage(code)

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("Internal Server Error",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("request_id", requestid.FromContext(c.UserContext())),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}
}
