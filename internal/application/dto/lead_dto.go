package dto

import "time"

// CreateLeadRequest alta manual de lead. AssignedToID vacío dispara la
// auto-asignación entre los asesores de la empresa.
type CreateLeadRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Source       string `json:"source" validate:"required"`
	Message      string `json:"message"`
	CompanyID    string `json:"company_id"`
	AssignedToID string `json:"assigned_to_id"`
}

// UpdateLeadRequest edición parcial de lead. Un cambio de Status o un
// Comment no vacío generan una entrada en el historial.
type UpdateLeadRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Source       *string `json:"source"`
	Status       *string `json:"status"`
	AssignedToID *string `json:"assigned_to_id"`
	Message      *string `json:"message"`
	Comment      string  `json:"comment"`
}

// ListLeadsRequest filtros del listado de leads.
type ListLeadsRequest struct {
	Source string `query:"source"`
	Status string `query:"status"`
	Query  string `query:"q"`
	PageRequest
}

// BulkAssignRequest asignación masiva de leads a un asesor.
type BulkAssignRequest struct {
	LeadIDs      []string `json:"lead_ids" validate:"required,min=1"`
	AssignedToID string   `json:"assigned_to_id" validate:"required"`
}

// BulkAssignResponse cuántos leads quedaron asignados.
type BulkAssignResponse struct {
	Assigned int64 `json:"assigned"`
}

// WebhookLeadRequest lead entrante por el webhook genérico de campañas.
type WebhookLeadRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Message   string `json:"message"`
	CompanyID string `json:"company_id"`
}

// LeadResponse representación pública de un lead.
type LeadResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	CompanyID    string    `json:"company_id"`
	AssignedToID string    `json:"assigned_to_id,omitempty"`
	CreatedByID  string    `json:"created_by_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeadHistoryResponse una entrada del historial del lead.
type LeadHistoryResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LeadDetailResponse lead más su historial completo.
type LeadDetailResponse struct {
	LeadResponse
	History []LeadHistoryResponse `json:"history"`
}
