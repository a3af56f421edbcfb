package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/internal/service/chat"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

// ChatFailed is the only detail a client sees when a chat reply could not be produced.
const ChatFailed = "Đã có lỗi xảy ra khi kết nối với AI."

type ChatHandler struct {
	service ports.ChatService
	log     *zap.Logger
}

func NewChatHandler(service ports.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log,
	}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req domain.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": chat.MessageRequired})
	}

	reply, err := h.service.Reply(c.UserContext(), req.Message)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		}

		h.log.Error("Failed to generate chat reply",
			zap.String("request_id", requestid.FromContext(c.UserContext())),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": ChatFailed})
	}

	return c.JSON(reply)
}
