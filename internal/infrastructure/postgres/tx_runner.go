package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/autosqp-api/internal/application/chat"
	"github.com/tu-usuario/autosqp-api/internal/application/leads"
	"github.com/tu-usuario/autosqp-api/internal/application/sales"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ leads.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ chat.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLeadUpdate ejecuta fn con repos de lead e historial atados a la misma
// transacción: la fila de historial y la actualización del lead persisten
// juntas o ninguna.
func (r *TxRunner) RunLeadUpdate(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	historyRepo repository.LeadHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLeadRepository(tx), NewLeadHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale ejecuta fn con repos de venta, vehículo y lead en una transacción:
// la venta nunca queda persistida sin su cambio de estado de vehículo.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	vehicleRepo repository.VehicleRepository,
	leadRepo repository.LeadRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewVehicleRepository(tx), NewLeadRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInbound ejecuta fn con repos de lead, conversación y mensaje en una
// transacción (upsert del webhook entrante y envíos salientes).
func (r *TxRunner) RunInbound(ctx context.Context, fn func(
	leadRepo repository.LeadRepository,
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLeadRepository(tx), NewConversationRepository(tx), NewMessageRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
