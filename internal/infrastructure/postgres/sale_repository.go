package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `
	s.id::text, s.vehicle_id::text, COALESCE(s.lead_id::text, ''), s.seller_id::text,
	s.company_id::text, s.sale_price, s.commission_percentage, s.commission_amount,
	s.net_revenue, s.status, COALESCE(s.approved_by_id::text, ''), s.sale_date, s.created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta. El constraint único sobre vehicle_id es el
// árbitro ante una carrera: la segunda inserción recibe ErrConflict.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, vehicle_id, lead_id, seller_id, company_id, sale_price,
			commission_percentage, commission_amount, net_revenue, status, approved_by_id, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.VehicleID, nullIfEmpty(sale.LeadID), sale.SellerID, sale.CompanyID,
		sale.SalePrice, sale.CommissionPercentage, sale.CommissionAmount, sale.NetRevenue,
		sale.Status, nullIfEmpty(sale.ApprovedByID), sale.SaleDate, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales s WHERE s.id = $1`, id)
}

// GetByVehicleID devuelve la venta del vehículo, o nil si no tiene.
func (r *SaleRepo) GetByVehicleID(vehicleID string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales s WHERE s.vehicle_id = $1`, vehicleID)
}

func (r *SaleRepo) getOne(query string, args ...any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.VehicleID, &s.LeadID, &s.SellerID, &s.CompanyID,
		&s.SalePrice, &s.CommissionPercentage, &s.CommissionAmount, &s.NetRevenue,
		&s.Status, &s.ApprovedByID, &s.SaleDate, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update sobrescribe estado, aprobador y fecha de venta. La aprobación
// mueve sale_date al momento de aprobar: los reportes mensuales cuentan
// la venta en el mes en que se cerró, no en el que se registró.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `UPDATE sales SET status = $2, approved_by_id = $3, sale_date = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Status, nullIfEmpty(sale.ApprovedByID), sale.SaleDate)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// List lista ventas según filtro, con total para paginar.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	from := ` FROM sales s`
	where := ` WHERE 1=1`
	args := []any{}

	if filter.Query != "" {
		from += ` JOIN vehicles v ON v.id = s.vehicle_id`
		args = append(args, likePattern(filter.Query))
		n := len(args)
		where += fmt.Sprintf(` AND (v.make ILIKE $%d OR v.model ILIKE $%d OR v.plate ILIKE $%d)`, n, n, n)
	}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		where += fmt.Sprintf(` AND s.company_id = $%d`, len(args))
	}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		where += fmt.Sprintf(` AND s.seller_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND s.status = $%d`, len(args))
	}
	if filter.PeriodStart != nil && filter.PeriodEnd != nil {
		args = append(args, *filter.PeriodStart)
		where += fmt.Sprintf(` AND s.sale_date >= $%d`, len(args))
		args = append(args, *filter.PeriodEnd)
		where += fmt.Sprintf(` AND s.sale_date <= $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY s.sale_date DESC LIMIT $%d OFFSET $%d`,
		saleColumns, from, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.LeadID, &s.SellerID, &s.CompanyID,
			&s.SalePrice, &s.CommissionPercentage, &s.CommissionAmount, &s.NetRevenue,
			&s.Status, &s.ApprovedByID, &s.SaleDate, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}
