package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// recordingQuerier captura el SQL y los argumentos que el repo le entrega.
type recordingQuerier struct {
	lastSQL  string
	lastArgs []any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL = sql
	q.lastArgs = args
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	q.lastArgs = args
	return nil, pgx.ErrNoRows
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	q.lastArgs = args
	return noRow{}
}

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// La aprobación mueve sale_date al momento de aprobar; si el UPDATE no
// escribe la columna, los reportes mensuales cuentan la venta en el mes de
// registro y no en el de cierre.
func TestSaleRepoUpdate_PersisteSaleDate(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewSaleRepository(q)

	approvedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:           "sale-1",
		Status:       entity.SaleStatusApproved,
		ApprovedByID: "admin-1",
		SaleDate:     approvedAt,
	}
	require.NoError(t, repo.Update(sale))

	assert.Contains(t, q.lastSQL, "sale_date",
		"el UPDATE debe escribir la fecha de venta")
	require.Len(t, q.lastArgs, 4)
	assert.Equal(t, "sale-1", q.lastArgs[0])
	assert.Equal(t, entity.SaleStatusApproved, q.lastArgs[1])
	assert.Equal(t, approvedAt, q.lastArgs[3])
}

func TestSaleRepoUpdate_AprobadorVacioVaComoNull(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewSaleRepository(q)

	require.NoError(t, repo.Update(&entity.Sale{
		ID:       "sale-1",
		Status:   entity.SaleStatusRejected,
		SaleDate: time.Now(),
	}))

	require.Len(t, q.lastArgs, 4)
	assert.Nil(t, q.lastArgs[2], "approved_by_id vacío debe persistirse como NULL")
}

// Sanity: el INSERT y el UPDATE nombran las mismas columnas críticas para que
// una venta creada y una aprobada queden con el mismo esquema efectivo.
func TestSaleRepoUpdate_ColumnasCriticas(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewSaleRepository(q)

	require.NoError(t, repo.Update(&entity.Sale{ID: "sale-1", SaleDate: time.Now()}))
	for _, col := range []string{"status", "approved_by_id", "sale_date"} {
		assert.True(t, strings.Contains(q.lastSQL, col), "falta la columna %s en el UPDATE", col)
	}
}
