package entity

import "time"

// Estados del vehículo en inventario. Transiciones hacia adelante:
// available→reserved (venta pendiente), reserved→sold (venta aprobada),
// available→sold (edición directa, ver sales.UpdateVehicle). Nunca se
// retrocede automáticamente.
const (
	VehicleStatusAvailable = "available"
	VehicleStatusReserved  = "reserved"
	VehicleStatusSold      = "sold"
)

// ValidVehicleStatus reporta si status es uno de los estados conocidos.
func ValidVehicleStatus(status string) bool {
	switch status {
	case VehicleStatusAvailable, VehicleStatusReserved, VehicleStatusSold:
		return true
	}
	return false
}

// Vehicle representa un vehículo del inventario de un concesionario.
// Price está en pesos enteros (sin centavos).
type Vehicle struct {
	ID          string
	Make        string // Marca
	Model       string
	Year        int
	Price       int64
	Plate       string // Placa
	Mileage     int64  // Kilometraje
	Color       string
	Description string
	Status      string
	Photos      []string // URLs de imágenes
	CompanyID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
