package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

const leadColumns = `
	l.id::text, l.name, COALESCE(l.email, ''), COALESCE(l.phone, ''),
	l.source, l.status, COALESCE(l.message, ''),
	l.company_id::text, COALESCE(l.assigned_to_id::text, ''), COALESCE(l.created_by_id::text, ''),
	l.created_at`

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador de persistencia para leads.
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// Create persiste un nuevo lead.
func (r *LeadRepo) Create(lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, source, status, message, company_id, assigned_to_id, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		lead.ID, lead.Name, nullIfEmpty(lead.Email), nullIfEmpty(lead.Phone),
		lead.Source, lead.Status, nullIfEmpty(lead.Message),
		lead.CompanyID, nullIfEmpty(lead.AssignedToID), nullIfEmpty(lead.CreatedByID),
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID. Devuelve nil si no existe.
func (r *LeadRepo) GetByID(id string) (*entity.Lead, error) {
	return r.getOne(`SELECT `+leadColumns+` FROM leads l WHERE l.id = $1`, id)
}

// FindByPhone busca un lead por teléfono exacto dentro de la empresa.
// Devuelve nil si no existe.
func (r *LeadRepo) FindByPhone(companyID, phone string) (*entity.Lead, error) {
	return r.getOne(`SELECT `+leadColumns+` FROM leads l WHERE l.company_id = $1 AND l.phone = $2 ORDER BY l.created_at ASC LIMIT 1`,
		companyID, phone)
}

func (r *LeadRepo) getOne(query string, args ...any) (*entity.Lead, error) {
	var l entity.Lead
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status, &l.Message,
		&l.CompanyID, &l.AssignedToID, &l.CreatedByID, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &l, nil
}

// Update sobrescribe los campos mutables del lead.
func (r *LeadRepo) Update(lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, source = $5, status = $6,
		    message = $7, assigned_to_id = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lead.ID, lead.Name, nullIfEmpty(lead.Email), nullIfEmpty(lead.Phone),
		lead.Source, lead.Status, nullIfEmpty(lead.Message), nullIfEmpty(lead.AssignedToID),
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// List lista leads según filtro. Devuelve página y total.
func (r *LeadRepo) List(filter repository.LeadFilter) ([]*entity.Lead, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.CompanyID != "" {
		args = append(args, filter.CompanyID)
		where += fmt.Sprintf(` AND l.company_id = $%d`, len(args))
	}
	if filter.AssignedToID != "" {
		args = append(args, filter.AssignedToID)
		where += fmt.Sprintf(` AND l.assigned_to_id = $%d`, len(args))
	}
	if filter.OwnOrReferredID != "" {
		args = append(args, filter.OwnOrReferredID)
		where += fmt.Sprintf(` AND (l.created_by_id = $%d OR l.assigned_to_id = $%d)`, len(args), len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		where += fmt.Sprintf(` AND l.source = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND l.status = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, likePattern(filter.Query))
		n := len(args)
		where += fmt.Sprintf(` AND (l.name ILIKE $%d OR l.email ILIKE $%d OR l.phone ILIKE $%d)`, n, n, n)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM leads l`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM leads l%s ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status, &l.Message,
			&l.CompanyID, &l.AssignedToID, &l.CreatedByID, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// BulkAssign asigna assignedToID a los leads de la lista que pertenezcan a
// companyID; los de otras empresas quedan excluidos en silencio por el WHERE.
func (r *LeadRepo) BulkAssign(leadIDs []string, assignedToID, companyID string) (int64, error) {
	query := `UPDATE leads SET assigned_to_id = $1 WHERE id = ANY($2)`
	args := []any{assignedToID, leadIDs}
	if companyID != "" {
		query += ` AND company_id = $3`
		args = append(args, companyID)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk assign leads: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.LeadHistoryRepository = (*LeadHistoryRepo)(nil)

// LeadHistoryRepo persiste el historial append-only de los leads.
type LeadHistoryRepo struct {
	q Querier
}

// NewLeadHistoryRepository construye el adaptador del historial.
func NewLeadHistoryRepository(q Querier) *LeadHistoryRepo {
	return &LeadHistoryRepo{q: q}
}

// Create inserta una fila de historial. Nunca hay updates ni deletes.
func (r *LeadHistoryRepo) Create(h *entity.LeadHistory) error {
	query := `
		INSERT INTO lead_history (id, lead_id, user_id, previous_status, new_status, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.LeadID, nullIfEmpty(h.UserID), h.PreviousStatus, h.NewStatus,
		nullIfEmpty(h.Comment), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead history: %w", err)
	}
	return nil
}

// ListByLead devuelve el historial de un lead, del más reciente al más antiguo.
func (r *LeadHistoryRepo) ListByLead(leadID string) ([]*entity.LeadHistory, error) {
	query := `
		SELECT id::text, lead_id::text, COALESCE(user_id::text, ''), previous_status, new_status, COALESCE(comment, ''), created_at
		FROM lead_history WHERE lead_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead history: %w", err)
	}
	defer rows.Close()

	var list []*entity.LeadHistory
	for rows.Next() {
		var h entity.LeadHistory
		if err := rows.Scan(&h.ID, &h.LeadID, &h.UserID, &h.PreviousStatus, &h.NewStatus, &h.Comment, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
