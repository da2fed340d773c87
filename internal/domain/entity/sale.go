package entity

import "time"

// Estados de una venta.
const (
	SaleStatusPending  = "pending"
	SaleStatusApproved = "approved"
	SaleStatusRejected = "rejected"
)

// Sale registra la venta de un vehículo. Existe a lo sumo una venta por
// vehículo (constraint único sobre vehicle_id). El porcentaje de comisión
// es un snapshot del perfil del vendedor al crear la venta: cambios
// posteriores al perfil no la afectan.
type Sale struct {
	ID        string
	VehicleID string
	LeadID    string // vacío = venta sin lead asociado
	SellerID  string
	CompanyID string
	// Montos en pesos enteros. Invariante: CommissionAmount + NetRevenue == SalePrice.
	SalePrice            int64
	CommissionPercentage int64
	CommissionAmount     int64
	NetRevenue           int64
	Status               string
	ApprovedByID         string // vacío hasta la aprobación
	SaleDate             time.Time
	CreatedAt            time.Time
}

// SplitCommission reparte el precio de venta entre comisión y utilidad neta.
// División entera truncada: el residuo queda del lado de la utilidad.
func SplitCommission(salePrice, commissionPct int64) (commission, net int64) {
	commission = salePrice * commissionPct / 100
	return commission, salePrice - commission
}
