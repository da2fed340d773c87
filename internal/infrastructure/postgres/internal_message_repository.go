package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.InternalMessageRepository = (*InternalMessageRepo)(nil)

// InternalMessageRepo implementación del puerto InternalMessageRepository sobre PostgreSQL.
type InternalMessageRepo struct {
	q Querier
}

// NewInternalMessageRepository construye el adaptador de persistencia del chat interno.
func NewInternalMessageRepository(q Querier) *InternalMessageRepo {
	return &InternalMessageRepo{q: q}
}

// Create persiste un mensaje interno.
func (r *InternalMessageRepo) Create(msg *entity.InternalMessage) error {
	query := `
		INSERT INTO internal_messages (id, company_id, sender_id, recipient_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.CompanyID, msg.SenderID, nullIfEmpty(msg.RecipientID), msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert internal message: %w", err)
	}
	return nil
}

// ListVisible devuelve difusiones, mensajes recibidos y mensajes enviados
// por el usuario dentro de la ventana [from, to], más antiguos primero.
func (r *InternalMessageRepo) ListVisible(companyID, userID string, from, to time.Time) ([]*entity.InternalMessage, error) {
	query := `
		SELECT m.id::text, m.company_id::text, m.sender_id::text, COALESCE(m.recipient_id::text, ''), m.content, m.created_at
		FROM internal_messages m
		WHERE m.company_id = $1
		  AND m.created_at >= $3 AND m.created_at <= $4
		  AND (m.recipient_id IS NULL OR m.recipient_id = $2 OR m.sender_id = $2)
		ORDER BY m.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list internal messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.InternalMessage
	for rows.Next() {
		var m entity.InternalMessage
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan internal message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
