package dto

import "time"

// ConversationResponse hilo de conversación con un lead.
type ConversationResponse struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"lead_id"`
	CompanyID     string    `json:"company_id"`
	LastMessageAt time.Time `json:"last_message_at"`
	LeadName      string    `json:"lead_name,omitempty"`
	LeadPhone     string    `json:"lead_phone,omitempty"`
}

// MessageResponse un mensaje del hilo.
type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderType     string    `json:"sender_type"`
	Content        string    `json:"content,omitempty"`
	MediaURL       string    `json:"media_url,omitempty"`
	MessageType    string    `json:"message_type"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendMessageRequest mensaje saliente de un usuario hacia el lead.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// SendInternalMessageRequest mensaje del chat interno. RecipientID vacío
// lo convierte en difusión a toda la empresa.
type SendInternalMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content" validate:"required"`
}

// InternalMessageResponse un mensaje del chat interno.
type InternalMessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
