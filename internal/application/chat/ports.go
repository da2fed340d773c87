package chat

import (
	"context"

	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El upsert del webhook entrante persiste
// lead, conversación y mensaje juntos o ninguno.
type TxRunner interface {
	RunInbound(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		convRepo repository.ConversationRepository,
		msgRepo repository.MessageRepository,
	) error) error
}

// OutboundSender puerto hacia el canal saliente de mensajería. Devuelve el
// ID externo del mensaje. Un error de envío nunca debe impedir persistir
// el mensaje: el caso de uso lo guarda con estado failed.
type OutboundSender interface {
	SendText(ctx context.Context, toPhone, text string) (string, error)
}
