package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/internal/service/voice"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

const VoiceFailed = "Đã có lỗi xảy ra khi tạo giọng nói."

type VoiceHandler struct {
	service ports.VoiceService
	log     *zap.Logger
}

func NewVoiceHandler(service ports.VoiceService, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		service: service,
		log:     log,
	}
}

// Synthesize handles POST /api/voice and answers with the raw audio bytes.
func (h *VoiceHandler) Synthesize(c *fiber.Ctx) error {
	var req domain.VoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": voice.TextRequired})
	}

	audio, err := h.service.Speak(c.UserContext(), req.Text)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		}

		h.log.Error("Failed to synthesize speech",
			zap.String("request_id", requestid.FromContext(c.UserContext())),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": VoiceFailed})
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = domain.AudioContentTypeMPEG
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(audio.Data)
}
