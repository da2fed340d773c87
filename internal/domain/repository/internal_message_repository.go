package repository

import (
	"time"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
)

// InternalMessageRepository define el puerto del chat interno.
type InternalMessageRepository interface {
	Create(msg *entity.InternalMessage) error
	// ListVisible devuelve, en orden cronológico ascendente, los mensajes de
	// la empresa dentro de [from, to] que el usuario puede ver: difusiones
	// (recipient vacío), los que recibió y los que envió.
	ListVisible(companyID, userID string, from, to time.Time) ([]*entity.InternalMessage, error)
}
