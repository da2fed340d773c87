package repository

import (
	"time"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
)

// ConversationRepository define el puerto de persistencia para Conversation.
type ConversationRepository interface {
	Create(conv *entity.Conversation) error
	GetByID(id string) (*entity.Conversation, error)
	// GetByLeadID devuelve nil si el lead aún no tiene conversación.
	GetByLeadID(leadID string) (*entity.Conversation, error)
	TouchLastMessage(id string, at time.Time) error
	// List devuelve las conversaciones de la empresa ordenadas por
	// last_message_at descendente. companyID vacío = todas.
	List(companyID string, limit, offset int) ([]*entity.Conversation, error)
}

// MessageRepository define el puerto de persistencia para Message.
type MessageRepository interface {
	Create(msg *entity.Message) error
	// ListByConversation devuelve los mensajes en orden cronológico ascendente.
	ListByConversation(conversationID string) ([]*entity.Message, error)
}
