package dto

import "time"

// CreateVehicleRequest alta de vehículo en inventario. Price en pesos enteros.
type CreateVehicleRequest struct {
	Make        string   `json:"make" validate:"required"`
	Model       string   `json:"model" validate:"required"`
	Year        int      `json:"year" validate:"required,min=1950"`
	Price       int64    `json:"price" validate:"required,min=0"`
	Plate       string   `json:"plate"`
	Mileage     int64    `json:"mileage" validate:"min=0"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
	CompanyID   string   `json:"company_id"`
}

// UpdateVehicleRequest edición parcial de vehículo. Status=sold sobre un
// vehículo disponible crea además la venta aprobada al precio de lista.
type UpdateVehicleRequest struct {
	Make        *string   `json:"make"`
	Model       *string   `json:"model"`
	Year        *int      `json:"year"`
	Price       *int64    `json:"price"`
	Plate       *string   `json:"plate"`
	Mileage     *int64    `json:"mileage"`
	Color       *string   `json:"color"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Photos      *[]string `json:"photos"`
}

// ListVehiclesRequest filtros del listado de vehículos.
type ListVehiclesRequest struct {
	Status string `query:"status"`
	Query  string `query:"q"`
	PageRequest
}

// VehicleResponse representación pública de un vehículo.
type VehicleResponse struct {
	ID          string    `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Price       int64     `json:"price"`
	Plate       string    `json:"plate,omitempty"`
	Mileage     int64     `json:"mileage"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Photos      []string  `json:"photos"`
	CompanyID   string    `json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
