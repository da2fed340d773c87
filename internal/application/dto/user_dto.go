package dto

import "time"

// CreateUserRequest alta de usuario. CompanyID solo lo puede fijar un caller
// global; el resto hereda su propia empresa.
type CreateUserRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	RoleID               string `json:"role_id" validate:"required"`
	CompanyID            string `json:"company_id"`
	CommissionPercentage int64  `json:"commission_percentage" validate:"min=0,max=100"`
	BaseSalary           *int64 `json:"base_salary"`
	PaymentDates         string `json:"payment_dates"`
}

// UpdateUserRequest edición parcial de usuario: solo los campos presentes
// se aplican.
type UpdateUserRequest struct {
	Email                *string `json:"email"`
	Password             *string `json:"password"`
	RoleID               *string `json:"role_id"`
	CommissionPercentage *int64  `json:"commission_percentage"`
	BaseSalary           *int64  `json:"base_salary"`
	PaymentDates         *string `json:"payment_dates"`
}

// UserResponse representación pública de un usuario. IsOnline se calcula
// al momento de la lectura a partir de last_active.
type UserResponse struct {
	ID                   string     `json:"id"`
	Email                string     `json:"email"`
	RoleID               string     `json:"role_id"`
	Role                 string     `json:"role"`
	CompanyID            string     `json:"company_id,omitempty"`
	CommissionPercentage int64      `json:"commission_percentage"`
	BaseSalary           *int64     `json:"base_salary,omitempty"`
	PaymentDates         string     `json:"payment_dates,omitempty"`
	IsOnline             bool       `json:"is_online"`
	LastActive           *time.Time `json:"last_active,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// RoleResponse una fila del catálogo de roles.
type RoleResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}
