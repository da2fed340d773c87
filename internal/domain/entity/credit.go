package entity

import "time"

// Estados de una solicitud de crédito. No hay orden forzado de transición:
// cualquier estado puede seguir a cualquier otro.
const (
	CreditStatusPending   = "pending"   // Solicitud Recibida
	CreditStatusInReview  = "in_review" // En Estudio
	CreditStatusApproved  = "approved"
	CreditStatusRejected  = "rejected"
	CreditStatusCompleted = "completed" // Finalizado/Vendido
)

// ValidCreditStatus reporta si status es uno de los estados conocidos.
func ValidCreditStatus(status string) bool {
	switch status {
	case CreditStatusPending, CreditStatusInReview, CreditStatusApproved,
		CreditStatusRejected, CreditStatusCompleted:
		return true
	}
	return false
}

// CreditApplication es una solicitud de financiación. Montos en pesos enteros.
type CreditApplication struct {
	ID             string
	ClientName     string
	Phone          string
	Email          string
	DesiredVehicle string // texto libre, ej. "Mazda 3 2020"
	MonthlyIncome  *int64
	OtherIncome    int64
	Occupation     string // Empleado, Independiente, Pensionado
	ApplicationMode string // individual, conjoint
	DownPayment    int64  // cuota inicial disponible
	Status         string
	Notes          string
	CompanyID      string
	AssignedToID   string // vacío = sin asignar
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
