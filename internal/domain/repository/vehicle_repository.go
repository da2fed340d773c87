package repository

import "github.com/tu-usuario/autosqp-api/internal/domain/entity"

// VehicleFilter criterios del listado de vehículos.
type VehicleFilter struct {
	CompanyID string // vacío = sin restricción
	Status    string
	// SoldBySellerID restringe vehículos vendidos a los que vendió ese
	// usuario (JOIN con sales); lo fija el caso de uso para asesores.
	SoldBySellerID string
	Query          string // substring sobre make/model/plate
	Limit          int
	Offset         int
}

// VehicleRepository define el puerto de persistencia para Vehicle (DIP).
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	Delete(id string) error
	List(filter VehicleFilter) ([]*entity.Vehicle, int, error)
}
