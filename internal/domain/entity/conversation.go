package entity

import "time"

// Tipos de remitente dentro de una conversación.
const (
	SenderTypeUser = "user" // alguien del concesionario
	SenderTypeLead = "lead" // el prospecto, vía WhatsApp
)

// Tipos de contenido de un mensaje.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeVideo    = "video"
	MessageTypeDocument = "document"
	MessageTypeAudio    = "audio"
	MessageTypeOther    = "other"
)

// Estados de entrega de un mensaje. "failed" se usa cuando el envío
// saliente al canal externo falla pero el mensaje igual se persiste.
const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
	MessageStatusFailed    = "failed"
)

// Conversation agrupa el hilo de mensajes de un lead (canal WhatsApp).
// Hay a lo sumo una conversación por lead.
type Conversation struct {
	ID            string
	LeadID        string
	CompanyID     string
	LastMessageAt time.Time
}

// Message es un mensaje individual de una conversación.
type Message struct {
	ID                string
	ConversationID    string
	SenderType        string // ver SenderType*
	Content           string // texto o caption del adjunto
	MediaURL          string
	MessageType       string // ver MessageType*
	WhatsAppMessageID string // id del mensaje en el canal externo
	Status            string // ver MessageStatus*
	CreatedAt         time.Time
}
