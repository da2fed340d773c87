package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/autosqp-api/internal/application/chat"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
)

// ChatHandler maneja las conversaciones de WhatsApp y el chat interno.
type ChatHandler struct {
	uc         *chat.ChatUseCase
	internalUC *chat.InternalMessageUseCase
}

// NewChatHandler construye el handler inyectando los casos de uso.
func NewChatHandler(uc *chat.ChatUseCase, internalUC *chat.InternalMessageUseCase) *ChatHandler {
	return &ChatHandler{uc: uc, internalUC: internalUC}
}

// ListConversations godoc
// @Summary      Listar conversaciones (más reciente primero)
// @Tags         chat
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ConversationResponse
// @Router       /api/conversations [get]
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	list, err := h.uc.ListConversations(GetIdentity(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}

// ListMessages godoc
// @Summary      Mensajes de una conversación (orden cronológico)
// @Tags         chat
// @Produce      json
// @Param        id   path  string  true  "ID de la conversación"
// @Success      200  {array}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conversations/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	list, err := h.uc.ListMessages(GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}

// SendMessage godoc
// @Summary      Enviar mensaje de texto al lead de la conversación
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la conversación"
// @Param        body  body  dto.SendMessageRequest  true  "Contenido"
// @Success      201   {object}  dto.MessageResponse
// @Router       /api/conversations/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SendMessage(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SendInternal godoc
// @Summary      Enviar mensaje al chat interno (sin destinatario = difusión)
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendInternalMessageRequest  true  "Contenido"
// @Success      201   {object}  dto.InternalMessageResponse
// @Router       /api/internal-messages [post]
func (h *ChatHandler) SendInternal(c *fiber.Ctx) error {
	var in dto.SendInternalMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.internalUC.Send(GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInternal godoc
// @Summary      Mensajes internos visibles del día
// @Tags         chat
// @Produce      json
// @Param        date  query  string  false  "Día YYYY-MM-DD (por defecto hoy)"
// @Success      200  {array}  dto.InternalMessageResponse
// @Router       /api/internal-messages [get]
func (h *ChatHandler) ListInternal(c *fiber.Ctx) error {
	list, err := h.internalUC.List(GetIdentity(c), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}
