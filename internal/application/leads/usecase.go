package leads

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/assign"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

// LeadUseCase casos de uso del motor de leads: creación con auto-asignación,
// listado con alcance por rol, actualización con historial y asignación masiva.
type LeadUseCase struct {
	leadRepo    repository.LeadRepository
	historyRepo repository.LeadHistoryRepository
	userRepo    repository.UserRepository
	txRunner    TxRunner
	selector    assign.Selector
}

// NewLeadUseCase construye el caso de uso. selector decide a qué asesor se
// asigna un lead nuevo sin asignación explícita.
func NewLeadUseCase(
	leadRepo repository.LeadRepository,
	historyRepo repository.LeadHistoryRepository,
	userRepo repository.UserRepository,
	txRunner TxRunner,
	selector assign.Selector,
) *LeadUseCase {
	return &LeadUseCase{
		leadRepo:    leadRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		txRunner:    txRunner,
		selector:    selector,
	}
}

// Create registra un lead. Sin assigned_to_id explícito corre la
// auto-asignación sobre los asesores de la empresa; sin asesores queda sin
// asignar. No genera historial: el historial empieza en la primera edición.
func (uc *LeadUseCase) Create(id authz.Identity, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	source := in.Source
	if source == "" {
		source = entity.LeadSourceOther
	}
	if !entity.ValidLeadSource(source) {
		return nil, domain.ErrInvalidInput
	}

	companyID := id.ResolveCompany(in.CompanyID)
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !id.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}

	assignedTo := in.AssignedToID
	if assignedTo != "" {
		target, err := uc.userRepo.GetByID(assignedTo)
		if err != nil {
			return nil, err
		}
		if target == nil || target.CompanyID != companyID {
			return nil, domain.ErrInvalidInput
		}
	} else {
		picked, err := uc.autoAssign(companyID)
		if err != nil {
			return nil, err
		}
		assignedTo = picked
	}

	lead := &entity.Lead{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        textutil.NormalizePhone(in.Phone),
		Source:       source,
		Status:       entity.LeadStatusNew,
		Message:      in.Message,
		CompanyID:    companyID,
		AssignedToID: assignedTo,
		CreatedByID:  id.UserID,
		CreatedAt:    time.Now(),
	}
	if err := uc.leadRepo.Create(lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

// autoAssign elige un asesor de la empresa con la estrategia inyectada.
// Devuelve vacío si no hay candidatos.
func (uc *LeadUseCase) autoAssign(companyID string) (string, error) {
	advisors, err := uc.userRepo.ListAdvisors(companyID)
	if err != nil {
		return "", err
	}
	idx := uc.selector.Pick(len(advisors))
	if idx < 0 {
		return "", nil
	}
	return advisors[idx].ID, nil
}

// Get devuelve el lead con su historial completo.
func (uc *LeadUseCase) Get(id authz.Identity, leadID string) (*dto.LeadDetailResponse, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(lead.CompanyID) {
		return nil, domain.ErrForbidden
	}
	history, err := uc.historyRepo.ListByLead(leadID)
	if err != nil {
		return nil, err
	}
	out := &dto.LeadDetailResponse{LeadResponse: *toLeadResponse(lead)}
	for _, h := range history {
		out.History = append(out.History, dto.LeadHistoryResponse{
			ID:             h.ID,
			UserID:         h.UserID,
			PreviousStatus: h.PreviousStatus,
			NewStatus:      h.NewStatus,
			Comment:        h.Comment,
			CreatedAt:      h.CreatedAt,
		})
	}
	return out, nil
}

// List lista leads con el alcance del rol del caller: asesores solo ven
// lo asignado; aliados lo propio o referido; admin toda su empresa.
func (uc *LeadUseCase) List(id authz.Identity, in dto.ListLeadsRequest) ([]*dto.LeadResponse, int, error) {
	in.DefaultPage()
	caps := id.Role.Capabilities()
	filter := repository.LeadFilter{
		CompanyID: id.CompanyID,
		Source:    in.Source,
		Status:    in.Status,
		Query:     textutil.FoldSearchTerm(in.Query),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if caps.SeesOnlyAssigned {
		filter.AssignedToID = id.UserID
	}
	if caps.SeesOwnOrReferred {
		filter.OwnOrReferredID = id.UserID
	}
	list, total, err := uc.leadRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLeadResponse(l))
	}
	return out, total, nil
}

// Update aplica una edición parcial. Un cambio de estado o un comentario no
// vacío generan una fila de historial en la misma transacción que la
// actualización: ambas persisten o ninguna.
func (uc *LeadUseCase) Update(ctx context.Context, id authz.Identity, leadID string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.leadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(lead.CompanyID) {
		return nil, domain.ErrForbidden
	}

	previousStatus := lead.Status
	statusChanged := false
	if in.Status != nil {
		if !entity.ValidLeadStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		statusChanged = *in.Status != lead.Status
		lead.Status = *in.Status
	}
	if in.Name != nil {
		lead.Name = *in.Name
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = textutil.NormalizePhone(*in.Phone)
	}
	if in.Source != nil {
		if !entity.ValidLeadSource(*in.Source) {
			return nil, domain.ErrInvalidInput
		}
		lead.Source = *in.Source
	}
	if in.Message != nil {
		lead.Message = *in.Message
	}
	if in.AssignedToID != nil {
		if *in.AssignedToID != "" {
			target, err := uc.userRepo.GetByID(*in.AssignedToID)
			if err != nil {
				return nil, err
			}
			if target == nil || target.CompanyID != lead.CompanyID {
				return nil, domain.ErrInvalidInput
			}
		}
		lead.AssignedToID = *in.AssignedToID
	}

	needsHistory := statusChanged || in.Comment != ""
	err = uc.txRunner.RunLeadUpdate(ctx, func(
		leadRepo repository.LeadRepository,
		historyRepo repository.LeadHistoryRepository,
	) error {
		if err := leadRepo.Update(lead); err != nil {
			return err
		}
		if !needsHistory {
			return nil
		}
		return historyRepo.Create(&entity.LeadHistory{
			ID:             uuid.New().String(),
			LeadID:         lead.ID,
			UserID:         id.UserID,
			PreviousStatus: previousStatus,
			NewStatus:      lead.Status,
			Comment:        in.Comment,
			CreatedAt:      time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

// BulkAssign asigna un asesor a un conjunto de leads. Los leads fuera de la
// empresa del caller se excluyen en silencio; el conteo refleja solo los
// realmente actualizados.
func (uc *LeadUseCase) BulkAssign(id authz.Identity, in dto.BulkAssignRequest) (*dto.BulkAssignResponse, error) {
	if len(in.LeadIDs) == 0 || in.AssignedToID == "" {
		return nil, domain.ErrInvalidInput
	}
	target, err := uc.userRepo.GetByID(in.AssignedToID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrInvalidInput
	}
	if !id.CanAccessCompany(target.CompanyID) {
		return nil, domain.ErrForbidden
	}
	count, err := uc.leadRepo.BulkAssign(in.LeadIDs, in.AssignedToID, id.CompanyID)
	if err != nil {
		return nil, err
	}
	return &dto.BulkAssignResponse{Assigned: count}, nil
}

func toLeadResponse(l *entity.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:           l.ID,
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
		Source:       l.Source,
		Status:       l.Status,
		Message:      l.Message,
		CompanyID:    l.CompanyID,
		AssignedToID: l.AssignedToID,
		CreatedByID:  l.CreatedByID,
		CreatedAt:    l.CreatedAt,
	}
}
