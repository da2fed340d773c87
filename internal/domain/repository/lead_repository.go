package repository

import "github.com/tu-usuario/autosqp-api/internal/domain/entity"

// LeadFilter criterios del listado de leads. Los campos de alcance
// (CompanyID, AssignedToID, OwnOrReferredID) los fija el caso de uso a
// partir de la identidad del caller, nunca el request directamente.
type LeadFilter struct {
	CompanyID      string // vacío = sin restricción (caller global)
	AssignedToID   string // asesor: solo sus leads asignados
	OwnOrReferredID string // aliado: creados por él O asignados a él
	Source         string
	Status         string
	Query          string // substring sobre name/email/phone, case-insensitive
	Limit          int
	Offset         int
}

// LeadRepository define el puerto de persistencia para Lead (DIP).
type LeadRepository interface {
	Create(lead *entity.Lead) error
	GetByID(id string) (*entity.Lead, error)
	// FindByPhone busca por coincidencia exacta de teléfono dentro de la
	// empresa (ruta webhook). Devuelve nil si no existe.
	FindByPhone(companyID, phone string) (*entity.Lead, error)
	Update(lead *entity.Lead) error
	List(filter LeadFilter) ([]*entity.Lead, int, error)
	// BulkAssign asigna assignedToID a los leads cuyos ids estén en la lista
	// Y pertenezcan a companyID (companyID vacío = sin restricción). Los ids
	// fuera de alcance se excluyen en silencio. Devuelve cuántos actualizó.
	BulkAssign(leadIDs []string, assignedToID, companyID string) (int64, error)
}

// LeadHistoryRepository persiste el historial append-only de los leads.
type LeadHistoryRepository interface {
	Create(h *entity.LeadHistory) error
	ListByLead(leadID string) ([]*entity.LeadHistory, error)
}
