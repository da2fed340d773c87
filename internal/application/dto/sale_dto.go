package dto

import "time"

// CreateSaleRequest registra la venta de un vehículo. SellerID vacío = el
// caller se registra a sí mismo; fijar otro vendedor requiere permiso de
// administración. SalePrice cero usa el precio de lista del vehículo.
type CreateSaleRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	LeadID    string `json:"lead_id"`
	SellerID  string `json:"seller_id"`
	SalePrice int64  `json:"sale_price" validate:"min=0"`
}

// ListSalesRequest filtros del listado de ventas. Month en formato YYYY-MM
// acota al mes calendario.
type ListSalesRequest struct {
	Status string `query:"status"`
	Month  string `query:"month"`
	Query  string `query:"q"`
	PageRequest
}

// SaleResponse representación pública de una venta. Montos en pesos enteros;
// commission_amount + net_revenue == sale_price siempre.
type SaleResponse struct {
	ID                   string    `json:"id"`
	VehicleID            string    `json:"vehicle_id"`
	LeadID               string    `json:"lead_id,omitempty"`
	SellerID             string    `json:"seller_id"`
	CompanyID            string    `json:"company_id"`
	SalePrice            int64     `json:"sale_price"`
	CommissionPercentage int64     `json:"commission_percentage"`
	CommissionAmount     int64     `json:"commission_amount"`
	NetRevenue           int64     `json:"net_revenue"`
	Status               string    `json:"status"`
	ApprovedByID         string    `json:"approved_by_id,omitempty"`
	SaleDate             time.Time `json:"sale_date"`
	CreatedAt            time.Time `json:"created_at"`
}
