package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas de solo lectura para reportes sobre PostgreSQL.
type ReportsRepo struct {
	q Querier
}

// NewReportsRepository construye el adaptador de reportes.
func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// LeadBreakdown agrega los leads por estado, fuente y asesor asignado.
func (r *ReportsRepo) LeadBreakdown(ctx context.Context, companyID string) (*repository.LeadBreakdown, error) {
	where := ``
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		where = ` WHERE l.company_id = $1`
	}

	out := &repository.LeadBreakdown{
		ByStatus:  map[string]int64{},
		BySource:  map[string]int64{},
		ByAdvisor: map[string]int64{},
	}

	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE l.status = 'sold') FROM leads l`+where,
		args...).Scan(&out.Total, &out.SoldCount); err != nil {
		return nil, fmt.Errorf("lead totals: %w", err)
	}

	if err := r.groupCount(ctx, `SELECT l.status, COUNT(*) FROM leads l`+where+` GROUP BY l.status`, args, out.ByStatus); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, `SELECT l.source, COUNT(*) FROM leads l`+where+` GROUP BY l.source`, args, out.BySource); err != nil {
		return nil, err
	}

	advisorQuery := `
		SELECT COALESCE(u.email, 'Sin Asignar'), COUNT(*)
		FROM leads l LEFT JOIN users u ON u.id = l.assigned_to_id` + where + `
		GROUP BY COALESCE(u.email, 'Sin Asignar')`
	if err := r.groupCount(ctx, advisorQuery, args, out.ByAdvisor); err != nil {
		return nil, err
	}
	return out, nil
}

// AdvisorBreakdown agrega los leads asignados a un asesor por estado.
func (r *ReportsRepo) AdvisorBreakdown(ctx context.Context, userID string) (*repository.AdvisorBreakdown, error) {
	out := &repository.AdvisorBreakdown{ByStatus: map[string]int64{}}
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads l WHERE l.assigned_to_id = $1`, userID).Scan(&out.Total); err != nil {
		return nil, fmt.Errorf("advisor total: %w", err)
	}
	if err := r.groupCount(ctx,
		`SELECT l.status, COUNT(*) FROM leads l WHERE l.assigned_to_id = $1 GROUP BY l.status`,
		[]any{userID}, out.ByStatus); err != nil {
		return nil, err
	}
	return out, nil
}

// FinanceTotals agrega ingresos, comisiones y nómina de la empresa.
func (r *ReportsRepo) FinanceTotals(ctx context.Context, companyID string, monthStart, monthEnd time.Time) (*repository.FinanceTotals, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		where += fmt.Sprintf(` AND s.company_id = $%d`, len(args))
	}
	args = append(args, monthStart)
	startIdx := len(args)
	args = append(args, monthEnd)
	endIdx := len(args)

	out := &repository.FinanceTotals{}
	salesQuery := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(s.net_revenue) FILTER (WHERE s.status = 'approved'), 0),
			COALESCE(SUM(s.commission_amount) FILTER (WHERE s.status = 'approved'), 0),
			COUNT(*) FILTER (WHERE s.status = 'approved'),
			COUNT(*) FILTER (WHERE s.status = 'pending'),
			COALESCE(SUM(s.net_revenue) FILTER (WHERE s.status = 'approved' AND s.sale_date >= $%d AND s.sale_date <= $%d), 0),
			COALESCE(SUM(s.commission_amount) FILTER (WHERE s.status = 'approved' AND s.sale_date >= $%d AND s.sale_date <= $%d), 0)
		FROM sales s`, startIdx, endIdx, startIdx, endIdx) + where
	if err := r.q.QueryRow(ctx, salesQuery, args...).Scan(
		&out.TotalRevenue, &out.TotalCommissions, &out.TotalSalesCount,
		&out.PendingSalesCount, &out.MonthlyRevenue, &out.MonthlyCommissions); err != nil {
		return nil, fmt.Errorf("finance sales totals: %w", err)
	}

	payrollQuery := `SELECT COALESCE(SUM(u.base_salary), 0) FROM users u`
	payrollArgs := []any{}
	if companyID != "" {
		payrollQuery += ` WHERE u.company_id = $1`
		payrollArgs = append(payrollArgs, companyID)
	}
	if err := r.q.QueryRow(ctx, payrollQuery, payrollArgs...).Scan(&out.PayrollExpenses); err != nil {
		return nil, fmt.Errorf("finance payroll: %w", err)
	}
	return out, nil
}

// CreditCounts agrega las solicitudes de crédito por estado.
func (r *ReportsRepo) CreditCounts(ctx context.Context, companyID string) (int64, map[string]int64, error) {
	where := ``
	args := []any{}
	if companyID != "" {
		args = append(args, companyID)
		where = ` WHERE c.company_id = $1`
	}
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM credit_applications c`+where, args...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("credit total: %w", err)
	}
	byStatus := map[string]int64{}
	if err := r.groupCount(ctx, `SELECT c.status, COUNT(*) FROM credit_applications c`+where+` GROUP BY c.status`, args, byStatus); err != nil {
		return 0, nil, err
	}
	return total, byStatus, nil
}

// DashboardCounts conteos globales de empresas y usuarios.
func (r *ReportsRepo) DashboardCounts(ctx context.Context) (*repository.DashboardCounts, error) {
	out := &repository.DashboardCounts{}
	if err := r.q.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM companies), (SELECT COUNT(*) FROM users)`).Scan(
		&out.Companies, &out.Users); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return out, nil
}

func (r *ReportsRepo) groupCount(ctx context.Context, query string, args []any, dest map[string]int64) error {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("group count: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan group count: %w", err)
		}
		dest[key] = count
	}
	return rows.Err()
}
