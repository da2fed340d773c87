package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// userColumns incluye el JOIN a roles para hidratar RoleName en una sola lectura.
const userColumns = `
	u.id::text, u.email, u.password_hash,
	COALESCE(u.role_id::text, ''), COALESCE(r.name, ''),
	COALESCE(u.company_id::text, ''),
	u.commission_percentage, u.base_salary, COALESCE(u.payment_dates, ''),
	u.last_active, u.created_at`

const userFrom = ` FROM users u LEFT JOIN roles r ON r.id = u.role_id`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado -> ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role_id, company_id, commission_percentage, base_salary, payment_dates, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash,
		nullIfEmpty(user.RoleID), nullIfEmpty(user.CompanyID),
		user.CommissionPercentage, user.BaseSalary, nullIfEmpty(user.PaymentDates),
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+userFrom+` WHERE u.id = $1`, id)
}

// GetByEmail obtiene un usuario por email. Devuelve nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+userFrom+` WHERE u.email = $1 LIMIT 1`, email)
}

func (r *UserRepo) getOne(query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.CompanyID,
		&u.CommissionPercentage, &u.BaseSalary, &u.PaymentDates, &u.LastActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza un usuario (todos los campos mutables).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, role_id = $4, company_id = $5,
		    commission_percentage = $6, base_salary = $7, payment_dates = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash,
		nullIfEmpty(user.RoleID), nullIfEmpty(user.CompanyID),
		user.CommissionPercentage, user.BaseSalary, nullIfEmpty(user.PaymentDates),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios según filtro. Devuelve página y total.
func (r *UserRepo) List(filter repository.UserFilter) ([]*entity.User, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		where += fmt.Sprintf(` AND u.company_id = $%d`, len(args))
	}
	if filter.RoleID != "" {
		args = append(args, filter.RoleID)
		where += fmt.Sprintf(` AND u.role_id = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		where += fmt.Sprintf(` AND u.email ILIKE $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*)`+userFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, userFrom, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.CompanyID,
			&u.CommissionPercentage, &u.BaseSalary, &u.PaymentDates, &u.LastActive, &u.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}

// ListAdvisors devuelve los usuarios de la empresa con rol asesor o vendedor
// (pool de candidatos de la auto-asignación).
func (r *UserRepo) ListAdvisors(companyID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + userFrom + ` WHERE u.company_id = $1 AND r.name = ANY($2) ORDER BY u.created_at`
	rows, err := r.q.Query(context.Background(), query, companyID,
		[]string{authz.RoleAsesor, authz.RoleVendedor})
	if err != nil {
		return nil, fmt.Errorf("list advisors: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.CompanyID,
			&u.CommissionPercentage, &u.BaseSalary, &u.PaymentDates, &u.LastActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan advisor: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// TouchLastActive marca actividad del usuario para el cálculo de presencia.
func (r *UserRepo) TouchLastActive(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(), `UPDATE users SET last_active = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch last_active: %w", err)
	}
	return nil
}

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo acceso de solo lectura al catálogo de roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador del catálogo de roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// List devuelve todos los roles ordenados por nombre.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id::text, name, COALESCE(label, '') FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Label); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// GetByID obtiene un rol por ID. Devuelve nil si no existe.
func (r *RoleRepo) GetByID(id string) (*entity.Role, error) {
	return r.getOne(`SELECT id::text, name, COALESCE(label, '') FROM roles WHERE id = $1`, id)
}

// GetByName obtiene un rol por nombre. Devuelve nil si no existe.
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	return r.getOne(`SELECT id::text, name, COALESCE(label, '') FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) getOne(query string, args ...any) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(context.Background(), query, args...).Scan(&role.ID, &role.Name, &role.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}
