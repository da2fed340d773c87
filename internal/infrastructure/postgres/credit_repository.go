package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.CreditRepository = (*CreditRepo)(nil)

const creditColumns = `
	c.id::text, c.client_name, COALESCE(c.phone, ''), COALESCE(c.email, ''),
	COALESCE(c.desired_vehicle, ''), c.monthly_income, COALESCE(c.other_income, 0),
	COALESCE(c.occupation, ''), COALESCE(c.application_mode, ''), COALESCE(c.down_payment, 0),
	c.status, COALESCE(c.notes, ''), c.company_id::text, COALESCE(c.assigned_to_id::text, ''),
	c.created_at, c.updated_at`

// CreditRepo implementación del puerto CreditRepository sobre PostgreSQL.
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador de persistencia para solicitudes de crédito.
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

// Create persiste una nueva solicitud de crédito.
func (r *CreditRepo) Create(credit *entity.CreditApplication) error {
	query := `
		INSERT INTO credit_applications (id, client_name, phone, email, desired_vehicle, monthly_income,
			other_income, occupation, application_mode, down_payment, status, notes, company_id,
			assigned_to_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		credit.ID, credit.ClientName, nullIfEmpty(credit.Phone), nullIfEmpty(credit.Email),
		nullIfEmpty(credit.DesiredVehicle), credit.MonthlyIncome, credit.OtherIncome,
		nullIfEmpty(credit.Occupation), nullIfEmpty(credit.ApplicationMode), credit.DownPayment,
		credit.Status, nullIfEmpty(credit.Notes), credit.CompanyID,
		nullIfEmpty(credit.AssignedToID), credit.CreatedAt, credit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit application: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Devuelve nil si no existe.
func (r *CreditRepo) GetByID(id string) (*entity.CreditApplication, error) {
	var c entity.CreditApplication
	err := r.q.QueryRow(context.Background(),
		`SELECT `+creditColumns+` FROM credit_applications c WHERE c.id = $1`, id).Scan(
		&c.ID, &c.ClientName, &c.Phone, &c.Email, &c.DesiredVehicle, &c.MonthlyIncome,
		&c.OtherIncome, &c.Occupation, &c.ApplicationMode, &c.DownPayment, &c.Status,
		&c.Notes, &c.CompanyID, &c.AssignedToID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit application: %w", err)
	}
	return &c, nil
}

// Update sobrescribe los campos mutables de la solicitud.
func (r *CreditRepo) Update(credit *entity.CreditApplication) error {
	query := `
		UPDATE credit_applications
		SET client_name = $2, phone = $3, email = $4, desired_vehicle = $5, monthly_income = $6,
		    other_income = $7, occupation = $8, application_mode = $9, down_payment = $10,
		    status = $11, notes = $12, assigned_to_id = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		credit.ID, credit.ClientName, nullIfEmpty(credit.Phone), nullIfEmpty(credit.Email),
		nullIfEmpty(credit.DesiredVehicle), credit.MonthlyIncome, credit.OtherIncome,
		nullIfEmpty(credit.Occupation), nullIfEmpty(credit.ApplicationMode), credit.DownPayment,
		credit.Status, nullIfEmpty(credit.Notes), nullIfEmpty(credit.AssignedToID), credit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update credit application: %w", err)
	}
	return nil
}

// List lista solicitudes según filtro, con total para paginar.
func (r *CreditRepo) List(filter repository.CreditFilter) ([]*entity.CreditApplication, int, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		where += fmt.Sprintf(` AND c.company_id = $%d`, len(args))
	}
	if filter.AssignedToID != "" {
		args = append(args, filter.AssignedToID)
		where += fmt.Sprintf(` AND c.assigned_to_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND c.status = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		n := len(args)
		where += fmt.Sprintf(` AND (c.client_name ILIKE $%d OR c.email ILIKE $%d OR c.phone ILIKE $%d OR c.desired_vehicle ILIKE $%d)`, n, n, n, n)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM credit_applications c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count credit applications: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM credit_applications c%s ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d`,
		creditColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list credit applications: %w", err)
	}
	defer rows.Close()

	var list []*entity.CreditApplication
	for rows.Next() {
		var c entity.CreditApplication
		if err := rows.Scan(&c.ID, &c.ClientName, &c.Phone, &c.Email, &c.DesiredVehicle,
			&c.MonthlyIncome, &c.OtherIncome, &c.Occupation, &c.ApplicationMode, &c.DownPayment,
			&c.Status, &c.Notes, &c.CompanyID, &c.AssignedToID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan credit application: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}
