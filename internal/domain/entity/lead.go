package entity

import "time"

// Orígenes válidos de un lead.
const (
	LeadSourceFacebook  = "facebook"
	LeadSourceWhatsApp  = "whatsapp"
	LeadSourceInstagram = "instagram"
	LeadSourceTikTok    = "tiktok"
	LeadSourceWeb       = "web"
	LeadSourceOther     = "other"
)

// Estados del ciclo de vida de un lead.
const (
	LeadStatusNew        = "new"
	LeadStatusContacted  = "contacted"
	LeadStatusInterested = "interested"
	LeadStatusQualified  = "qualified"
	LeadStatusLost       = "lost"
	LeadStatusSold       = "sold"
)

// ValidLeadSource reporta si source es uno de los orígenes conocidos.
func ValidLeadSource(source string) bool {
	switch source {
	case LeadSourceFacebook, LeadSourceWhatsApp, LeadSourceInstagram,
		LeadSourceTikTok, LeadSourceWeb, LeadSourceOther:
		return true
	}
	return false
}

// ValidLeadStatus reporta si status es uno de los estados conocidos.
func ValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusInterested,
		LeadStatusQualified, LeadStatusLost, LeadStatusSold:
		return true
	}
	return false
}

// Lead representa un prospecto de venta. AssignedToID y CreatedByID vacíos
// significan sin asignar / sin creador registrado (webhooks).
type Lead struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Source       string
	Status       string
	Message      string
	CompanyID    string
	AssignedToID string // vacío = sin asignar
	CreatedByID  string // vacío = origen externo (webhook)
	CreatedAt    time.Time
}

// LeadHistory es el registro inmutable de cambios de estado y comentarios
// de un lead. Solo se insertan filas, nunca se modifican ni borran.
type LeadHistory struct {
	ID             string
	LeadID         string
	UserID         string // vacío = cambio de sistema
	PreviousStatus string
	NewStatus      string
	Comment        string
	CreatedAt      time.Time
}
