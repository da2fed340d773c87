package dto

import "time"

// CreateCompanyRequest alta de concesionario (solo super admin).
type CreateCompanyRequest struct {
	Name           string `json:"name" validate:"required"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// UpdateCompanyRequest edición parcial de concesionario.
type UpdateCompanyRequest struct {
	Name           *string `json:"name"`
	LogoURL        *string `json:"logo_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
}

// CompanyResponse representación pública de un concesionario.
type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LogoURL        string    `json:"logo_url,omitempty"`
	PrimaryColor   string    `json:"primary_color,omitempty"`
	SecondaryColor string    `json:"secondary_color,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
