package repository

import (
	"time"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
)

// UserFilter criterios del listado de usuarios.
type UserFilter struct {
	CompanyID string // vacío = sin restricción (caller global)
	RoleID    string
	Query     string // substring sobre email, case-insensitive
	Limit     int
	Offset    int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas hidratan RoleName con JOIN a roles.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(filter UserFilter) ([]*entity.User, int, error)
	// ListAdvisors devuelve los usuarios de la empresa con rol asesor o
	// vendedor: el pool de candidatos de la auto-asignación de leads.
	ListAdvisors(companyID string) ([]*entity.User, error)
	// TouchLastActive marca actividad del usuario (presencia).
	TouchLastActive(id string, at time.Time) error
}

// RoleRepository acceso al catálogo de roles.
type RoleRepository interface {
	List() ([]*entity.Role, error)
	GetByID(id string) (*entity.Role, error)
	GetByName(name string) (*entity.Role, error)
}
