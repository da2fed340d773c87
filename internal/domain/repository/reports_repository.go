package repository

import (
	"context"
	"time"
)

// LeadBreakdown conteos agregados de leads para /reports/stats.
type LeadBreakdown struct {
	Total     int64
	SoldCount int64
	ByStatus  map[string]int64
	BySource  map[string]int64
	// ByAdvisor agrupa por email del asignado; los no asignados se
	// consolidan bajo "Sin Asignar".
	ByAdvisor map[string]int64
}

// AdvisorBreakdown conteos de leads asignados a un asesor.
type AdvisorBreakdown struct {
	Total    int64
	ByStatus map[string]int64
}

// FinanceTotals agregados financieros de la empresa.
type FinanceTotals struct {
	TotalRevenue       int64 // suma net_revenue de ventas aprobadas (histórico)
	TotalCommissions   int64 // suma commission_amount de ventas aprobadas
	TotalSalesCount    int64
	PendingSalesCount  int64
	MonthlyRevenue     int64 // mismas sumas, restringidas al mes en curso
	MonthlyCommissions int64
	PayrollExpenses    int64 // suma base_salary de los usuarios (null = 0)
}

// DashboardCounts conteos globales para el dashboard del super admin.
type DashboardCounts struct {
	Companies int64
	Users     int64
}

// ReportsRepository consultas de solo lectura para reportes y estadísticas.
// companyID vacío = sin restricción de empresa (caller global).
type ReportsRepository interface {
	LeadBreakdown(ctx context.Context, companyID string) (*LeadBreakdown, error)
	AdvisorBreakdown(ctx context.Context, userID string) (*AdvisorBreakdown, error)
	// FinanceTotals recibe los límites del mes en curso ya calculados para
	// que el corte de mes sea decisión del caso de uso, no del SQL.
	FinanceTotals(ctx context.Context, companyID string, monthStart, monthEnd time.Time) (*FinanceTotals, error)
	CreditCounts(ctx context.Context, companyID string) (total int64, byStatus map[string]int64, err error)
	DashboardCounts(ctx context.Context) (*DashboardCounts, error)
}
