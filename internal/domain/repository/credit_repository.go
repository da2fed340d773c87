package repository

import "github.com/tu-usuario/autosqp-api/internal/domain/entity"

// CreditFilter criterios del listado de solicitudes de crédito.
type CreditFilter struct {
	CompanyID    string // vacío = sin restricción
	AssignedToID string // asesor: solo las suyas
	Status       string
	Query        string // substring sobre client_name/email/phone/desired_vehicle
	Limit        int
	Offset       int
}

// CreditRepository define el puerto de persistencia para CreditApplication.
type CreditRepository interface {
	Create(credit *entity.CreditApplication) error
	GetByID(id string) (*entity.CreditApplication, error)
	Update(credit *entity.CreditApplication) error
	List(filter CreditFilter) ([]*entity.CreditApplication, int, error)
}
