package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/autosqp-api/internal/application/chat"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/application/leads"
)

// WebhookHandler expone los webhooks públicos: verificación y entrada de
// WhatsApp Cloud API, y el webhook genérico de leads de campañas.
type WebhookHandler struct {
	chatUC      *chat.ChatUseCase
	webhookUC   *leads.WebhookUseCase
	verifyToken string
	log         zerolog.Logger
}

// NewWebhookHandler construye el handler. verifyToken es el valor acordado
// con Meta para la verificación del endpoint.
func NewWebhookHandler(chatUC *chat.ChatUseCase, webhookUC *leads.WebhookUseCase, verifyToken string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{chatUC: chatUC, webhookUC: webhookUC, verifyToken: verifyToken, log: log}
}

// whatsappPayload estructura mínima del POST de Cloud API que nos interesa.
type whatsappPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []struct {
					ID        string `json:"id"`
					From      string `json:"from"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
					Image struct {
						Link string `json:"link"`
					} `json:"image"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// VerifyWhatsApp godoc
// @Summary      Verificación del webhook de WhatsApp (challenge de Meta)
// @Tags         webhooks
// @Produce      plain
// @Param        hub.mode          query  string  true  "subscribe"
// @Param        hub.verify_token  query  string  true  "Token acordado"
// @Param        hub.challenge     query  string  true  "Challenge a devolver"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /webhooks/whatsapp [get]
func (h *WebhookHandler) VerifyWhatsApp(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	if mode != "subscribe" || token != h.verifyToken {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "token de verificación inválido",
		})
	}
	return c.SendString(c.Query("hub.challenge"))
}

// ReceiveWhatsApp godoc
// @Summary      Entrada de mensajes de WhatsApp Cloud API
// @Tags         webhooks
// @Accept       json
// @Success      200
// @Router       /webhooks/whatsapp [post]
func (h *WebhookHandler) ReceiveWhatsApp(c *fiber.Ctx) error {
	var payload whatsappPayload
	if err := c.BodyParser(&payload); err != nil {
		return badBody(c)
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			names := map[string]string{}
			for _, contact := range change.Value.Contacts {
				names[contact.WaID] = contact.Profile.Name
			}
			for _, msg := range change.Value.Messages {
				ev := chat.InboundEvent{
					FromPhone:   msg.From,
					DisplayName: names[msg.From],
					Body:        msg.Text.Body,
					MediaURL:    msg.Image.Link,
					MessageType: msg.Type,
					ExternalID:  msg.ID,
					Timestamp:   parseUnixSeconds(msg.Timestamp),
				}
				if err := h.chatUC.HandleInbound(c.Context(), ev); err != nil {
					// Meta reintenta ante cualquier no-200: registramos y
					// seguimos con el resto del lote.
					h.log.Error().Err(err).
						Str("from", msg.From).
						Str("external_id", msg.ID).
						Msg("Error procesando mensaje entrante de WhatsApp")
				}
			}
		}
	}
	return c.SendStatus(fiber.StatusOK)
}

// ReceiveLead godoc
// @Summary      Webhook genérico de leads de campañas externas
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        source  path  string                  true  "Origen del lead (facebook, web...)"
// @Param        body    body  dto.WebhookLeadRequest  true  "Datos del lead"
// @Success      201     {object}  dto.LeadResponse
// @Router       /webhooks/leads/{source} [post]
func (h *WebhookHandler) ReceiveLead(c *fiber.Ctx) error {
	var in dto.WebhookLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.webhookUC.CreateFromWebhook(c.Params("source"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// parseUnixSeconds convierte el timestamp en segundos que envía Cloud API.
func parseUnixSeconds(s string) time.Time {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil || secs <= 0 {
		return time.Now()
	}
	return time.Unix(secs, 0)
}
