package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var (
	_ repository.ConversationRepository = (*ConversationRepo)(nil)
	_ repository.MessageRepository      = (*MessageRepo)(nil)
)

const conversationColumns = `c.id::text, c.lead_id::text, c.company_id::text, c.last_message_at`

// ConversationRepo implementación del puerto ConversationRepository sobre PostgreSQL.
type ConversationRepo struct {
	q Querier
}

// NewConversationRepository construye el adaptador de persistencia para conversaciones.
func NewConversationRepository(q Querier) *ConversationRepo {
	return &ConversationRepo{q: q}
}

// Create persiste una nueva conversación.
func (r *ConversationRepo) Create(conv *entity.Conversation) error {
	query := `INSERT INTO conversations (id, lead_id, company_id, last_message_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		conv.ID, conv.LeadID, conv.CompanyID, conv.LastMessageAt)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetByID obtiene una conversación por ID. Devuelve nil si no existe.
func (r *ConversationRepo) GetByID(id string) (*entity.Conversation, error) {
	return r.getOne(`SELECT `+conversationColumns+` FROM conversations c WHERE c.id = $1`, id)
}

// GetByLeadID devuelve la conversación del lead, o nil si aún no tiene.
func (r *ConversationRepo) GetByLeadID(leadID string) (*entity.Conversation, error) {
	return r.getOne(`SELECT `+conversationColumns+` FROM conversations c WHERE c.lead_id = $1`, leadID)
}

func (r *ConversationRepo) getOne(query string, args ...any) (*entity.Conversation, error) {
	var c entity.Conversation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.LeadID, &c.CompanyID, &c.LastMessageAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// TouchLastMessage actualiza la marca de último mensaje de la conversación.
func (r *ConversationRepo) TouchLastMessage(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE conversations SET last_message_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

// List devuelve las conversaciones más recientes primero.
func (r *ConversationRepo) List(companyID string, limit, offset int) ([]*entity.Conversation, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		where += fmt.Sprintf(` AND c.company_id = $%d`, len(args))
	}
	query := fmt.Sprintf(`SELECT %s FROM conversations c%s ORDER BY c.last_message_at DESC LIMIT $%d OFFSET $%d`,
		conversationColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Conversation
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.LeadID, &c.CompanyID, &c.LastMessageAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

const messageColumns = `
	m.id::text, m.conversation_id::text, m.sender_type, COALESCE(m.content, ''),
	COALESCE(m.media_url, ''), m.message_type, COALESCE(m.whatsapp_message_id, ''),
	m.status, m.created_at`

// MessageRepo implementación del puerto MessageRepository sobre PostgreSQL.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador de persistencia para mensajes.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persiste un mensaje.
func (r *MessageRepo) Create(msg *entity.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_type, content, media_url, message_type, whatsapp_message_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.ConversationID, msg.SenderType, nullIfEmpty(msg.Content),
		nullIfEmpty(msg.MediaURL), msg.MessageType, nullIfEmpty(msg.WhatsAppMessageID),
		msg.Status, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListByConversation devuelve el hilo completo en orden cronológico.
func (r *MessageRepo) ListByConversation(conversationID string) ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages m WHERE m.conversation_id = $1 ORDER BY m.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderType, &m.Content,
			&m.MediaURL, &m.MessageType, &m.WhatsAppMessageID, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
