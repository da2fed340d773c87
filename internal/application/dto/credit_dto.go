package dto

import "time"

// CreateCreditRequest alta de solicitud de crédito. Montos en pesos enteros.
type CreateCreditRequest struct {
	ClientName      string `json:"client_name" validate:"required"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	DesiredVehicle  string `json:"desired_vehicle"`
	MonthlyIncome   *int64 `json:"monthly_income"`
	OtherIncome     int64  `json:"other_income"`
	Occupation      string `json:"occupation"`
	ApplicationMode string `json:"application_mode"`
	DownPayment     int64  `json:"down_payment"`
	Notes           string `json:"notes"`
	CompanyID       string `json:"company_id"`
	AssignedToID    string `json:"assigned_to_id"`
}

// UpdateCreditRequest edición parcial de la solicitud.
type UpdateCreditRequest struct {
	ClientName      *string `json:"client_name"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	DesiredVehicle  *string `json:"desired_vehicle"`
	MonthlyIncome   *int64  `json:"monthly_income"`
	OtherIncome     *int64  `json:"other_income"`
	Occupation      *string `json:"occupation"`
	ApplicationMode *string `json:"application_mode"`
	DownPayment     *int64  `json:"down_payment"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
	AssignedToID    *string `json:"assigned_to_id"`
}

// ListCreditsRequest filtros del listado de solicitudes.
type ListCreditsRequest struct {
	Status string `query:"status"`
	Query  string `query:"q"`
	PageRequest
}

// CreditResponse representación pública de una solicitud de crédito.
type CreditResponse struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	DesiredVehicle  string    `json:"desired_vehicle,omitempty"`
	MonthlyIncome   *int64    `json:"monthly_income,omitempty"`
	OtherIncome     int64     `json:"other_income"`
	Occupation      string    `json:"occupation,omitempty"`
	ApplicationMode string    `json:"application_mode,omitempty"`
	DownPayment     int64     `json:"down_payment"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CompanyID       string    `json:"company_id"`
	AssignedToID    string    `json:"assigned_to_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
