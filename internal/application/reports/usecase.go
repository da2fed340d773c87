// Package reports arma las proyecciones de solo lectura: estadísticas de
// leads, asesores, finanzas, créditos y el dashboard global.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// ReportsUseCase casos de uso de reportes.
type ReportsUseCase struct {
	repo repository.ReportsRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(repo repository.ReportsRepository) *ReportsUseCase {
	return &ReportsUseCase{repo: repo}
}

// LeadStats agregados de leads de la empresa del caller (o globales para
// un caller sin empresa).
func (uc *ReportsUseCase) LeadStats(ctx context.Context, id authz.Identity) (*dto.LeadStatsResponse, error) {
	b, err := uc.repo.LeadBreakdown(ctx, id.CompanyID)
	if err != nil {
		return nil, err
	}
	return &dto.LeadStatsResponse{
		Total:          b.Total,
		ConversionRate: conversionRate(b.SoldCount, b.Total),
		ByStatus:       b.ByStatus,
		BySource:       b.BySource,
		ByAdvisor:      b.ByAdvisor,
	}, nil
}

// AdvisorStats distribución por estado de los leads asignados al caller.
func (uc *ReportsUseCase) AdvisorStats(ctx context.Context, id authz.Identity) (*dto.AdvisorStatsResponse, error) {
	b, err := uc.repo.AdvisorBreakdown(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.AdvisorStatsResponse{Total: b.Total, ByStatus: b.ByStatus}, nil
}

// FinanceStats agregados financieros: solo roles con permiso de finanzas.
// El corte del mes en curso se calcula aquí, no en SQL.
func (uc *ReportsUseCase) FinanceStats(ctx context.Context, id authz.Identity) (*dto.FinanceStatsResponse, error) {
	if !id.Role.Capabilities().CanViewFinance {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	t, err := uc.repo.FinanceTotals(ctx, id.CompanyID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	return &dto.FinanceStatsResponse{
		TotalRevenue:       t.TotalRevenue,
		TotalCommissions:   t.TotalCommissions,
		TotalSalesCount:    t.TotalSalesCount,
		PendingSalesCount:  t.PendingSalesCount,
		MonthlyRevenue:     t.MonthlyRevenue,
		MonthlyCommissions: t.MonthlyCommissions,
		PayrollExpenses:    t.PayrollExpenses,
		NetProfit:          t.TotalRevenue - t.TotalCommissions - t.PayrollExpenses,
	}, nil
}

// CreditStats conteos de solicitudes de crédito por estado.
func (uc *ReportsUseCase) CreditStats(ctx context.Context, id authz.Identity) (*dto.CreditStatsResponse, error) {
	total, byStatus, err := uc.repo.CreditCounts(ctx, id.CompanyID)
	if err != nil {
		return nil, err
	}
	return &dto.CreditStatsResponse{Total: total, ByStatus: byStatus}, nil
}

// DashboardStats conteos globales; solo el super admin sin empresa.
func (uc *ReportsUseCase) DashboardStats(ctx context.Context, id authz.Identity) (*dto.DashboardResponse, error) {
	if !id.IsGlobal() {
		return nil, domain.ErrForbidden
	}
	c, err := uc.repo.DashboardCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Companies: c.Companies, Users: c.Users}, nil
}

// conversionRate calcula sold/total en porcentaje con dos decimales.
func conversionRate(sold, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(sold).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := rate.Float64()
	return f
}
