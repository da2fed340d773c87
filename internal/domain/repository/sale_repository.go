package repository

import (
	"time"

	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
)

// SaleFilter criterios del listado de ventas.
type SaleFilter struct {
	CompanyID string // vacío = sin restricción
	SellerID  string // no-admin: solo sus ventas
	Status    string
	// PeriodStart/PeriodEnd acotan sale_date a un mes calendario (inclusive).
	// Ambos nil = sin filtro de período.
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Query       string // substring sobre make/model/plate del vehículo
	Limit       int
	Offset      int
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Create traduce la violación del único vehicle_id a ErrConflict: ante una
// carrera de dos ventas sobre el mismo vehículo decide el constraint, no
// la aplicación.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// GetByVehicleID devuelve nil si el vehículo no tiene venta.
	GetByVehicleID(vehicleID string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	List(filter SaleFilter) ([]*entity.Sale, int, error)
}
