package dto

// LeadStatsResponse agregados de leads para reportes. ConversionRate es
// sold/total en porcentaje, redondeado a dos decimales.
type LeadStatsResponse struct {
	Total          int64            `json:"total"`
	ConversionRate float64          `json:"conversion_rate"`
	ByStatus       map[string]int64 `json:"by_status"`
	BySource       map[string]int64 `json:"by_source"`
	ByAdvisor      map[string]int64 `json:"by_advisor"`
}

// AdvisorStatsResponse agregados de leads de un asesor.
type AdvisorStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// FinanceStatsResponse agregados financieros de la empresa. Montos en
// pesos enteros.
type FinanceStatsResponse struct {
	TotalRevenue       int64 `json:"total_revenue"`
	TotalCommissions   int64 `json:"total_commissions"`
	TotalSalesCount    int64 `json:"total_sales_count"`
	PendingSalesCount  int64 `json:"pending_sales_count"`
	MonthlyRevenue     int64 `json:"monthly_revenue"`
	MonthlyCommissions int64 `json:"monthly_commissions"`
	PayrollExpenses    int64 `json:"payroll_expenses"`
	NetProfit          int64 `json:"net_profit"`
}

// CreditStatsResponse agregados de solicitudes de crédito.
type CreditStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// DashboardResponse conteos globales para el super admin.
type DashboardResponse struct {
	Companies int64 `json:"companies"`
	Users     int64 `json:"users"`
}
