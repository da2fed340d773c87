package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// InternalMessageUseCase chat interno del concesionario: difusiones y
// mensajes directos entre usuarios de la misma empresa.
type InternalMessageUseCase struct {
	msgRepo  repository.InternalMessageRepository
	userRepo repository.UserRepository
}

// NewInternalMessageUseCase construye el caso de uso.
func NewInternalMessageUseCase(msgRepo repository.InternalMessageRepository, userRepo repository.UserRepository) *InternalMessageUseCase {
	return &InternalMessageUseCase{msgRepo: msgRepo, userRepo: userRepo}
}

// Send crea un mensaje interno. Sin recipient_id es difusión a toda la
// empresa; con recipient_id el destinatario debe existir y compartir empresa.
func (uc *InternalMessageUseCase) Send(id authz.Identity, in dto.SendInternalMessageRequest) (*dto.InternalMessageResponse, error) {
	if in.Content == "" {
		return nil, domain.ErrInvalidInput
	}
	if id.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.RecipientID != "" {
		recipient, err := uc.userRepo.GetByID(in.RecipientID)
		if err != nil {
			return nil, err
		}
		if recipient == nil {
			return nil, domain.ErrNotFound
		}
		if recipient.CompanyID != id.CompanyID {
			return nil, domain.ErrForbidden
		}
	}
	msg := &entity.InternalMessage{
		ID:          uuid.New().String(),
		CompanyID:   id.CompanyID,
		SenderID:    id.UserID,
		RecipientID: in.RecipientID,
		Content:     in.Content,
		CreatedAt:   time.Now(),
	}
	if err := uc.msgRepo.Create(msg); err != nil {
		return nil, err
	}
	return toInternalMessageResponse(msg), nil
}

// List devuelve los mensajes visibles para el caller en un día: difusiones,
// recibidos y enviados. date en formato YYYY-MM-DD; vacío = hoy (desde el
// inicio del día hasta ahora).
func (uc *InternalMessageUseCase) List(id authz.Identity, date string) ([]*dto.InternalMessageResponse, error) {
	if id.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var from, to time.Time
	if date == "" {
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = now
	} else {
		day, err := time.ParseInLocation("2006-01-02", date, now.Location())
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		from = day
		to = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	msgs, err := uc.msgRepo.ListVisible(id.CompanyID, id.UserID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InternalMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toInternalMessageResponse(m))
	}
	return out, nil
}

func toInternalMessageResponse(m *entity.InternalMessage) *dto.InternalMessageResponse {
	return &dto.InternalMessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}
