package leads

import (
	"context"

	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del lead y
// su fila de historial persistan juntas o ninguna.
type TxRunner interface {
	RunLeadUpdate(ctx context.Context, fn func(
		leadRepo repository.LeadRepository,
		historyRepo repository.LeadHistoryRepository,
	) error) error
}
