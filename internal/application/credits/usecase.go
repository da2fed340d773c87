// Package credits implementa el seguimiento de solicitudes de crédito.
// Es paralelo al motor de leads pero más simple: sin historial y con
// auto-asignación al propio asesor que la registra.
package credits

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

// CreditUseCase casos de uso de solicitudes de crédito.
type CreditUseCase struct {
	creditRepo repository.CreditRepository
	userRepo   repository.UserRepository
}

// NewCreditUseCase construye el caso de uso.
func NewCreditUseCase(creditRepo repository.CreditRepository, userRepo repository.UserRepository) *CreditUseCase {
	return &CreditUseCase{creditRepo: creditRepo, userRepo: userRepo}
}

// Create registra una solicitud. Si el caller es asesor y no fija asignado,
// la solicitud queda asignada a él mismo (sin sorteo, a diferencia de leads).
func (uc *CreditUseCase) Create(id authz.Identity, in dto.CreateCreditRequest) (*dto.CreditResponse, error) {
	if in.ClientName == "" {
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
	} else if id.Role.Capabilities().SeesOnlyAssigned {
		assignedTo = id.UserID
	}

	now := time.Now()
	credit := &entity.CreditApplication{
		ID:              uuid.New().String(),
		ClientName:      in.ClientName,
		Phone:           textutil.NormalizePhone(in.Phone),
		Email:           in.Email,
		DesiredVehicle:  in.DesiredVehicle,
		MonthlyIncome:   in.MonthlyIncome,
		OtherIncome:     in.OtherIncome,
		Occupation:      in.Occupation,
		ApplicationMode: in.ApplicationMode,
		DownPayment:     in.DownPayment,
		Status:          entity.CreditStatusPending,
		Notes:           in.Notes,
		CompanyID:       companyID,
		AssignedToID:    assignedTo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.creditRepo.Create(credit); err != nil {
		return nil, err
	}
	return toCreditResponse(credit), nil
}

// Get devuelve una solicitud dentro del alcance del caller.
func (uc *CreditUseCase) Get(id authz.Identity, creditID string) (*dto.CreditResponse, error) {
	credit, err := uc.loadScoped(id, creditID)
	if err != nil {
		return nil, err
	}
	return toCreditResponse(credit), nil
}

// List lista solicitudes. Asesores solo ven las asignadas a ellos.
func (uc *CreditUseCase) List(id authz.Identity, in dto.ListCreditsRequest) ([]*dto.CreditResponse, int, error) {
	in.DefaultPage()
	filter := repository.CreditFilter{
		CompanyID: id.CompanyID,
		Status:    in.Status,
		Query:     textutil.FoldSearchTerm(in.Query),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if id.Role.Capabilities().SeesOnlyAssigned {
		filter.AssignedToID = id.UserID
	}
	list, total, err := uc.creditRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.CreditResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCreditResponse(c))
	}
	return out, total, nil
}

// Update sobrescribe los campos presentes, sin historial y sin orden de
// transición entre estados.
func (uc *CreditUseCase) Update(id authz.Identity, creditID string, in dto.UpdateCreditRequest) (*dto.CreditResponse, error) {
	credit, err := uc.loadScoped(id, creditID)
	if err != nil {
		return nil, err
	}
	if in.ClientName != nil {
		credit.ClientName = *in.ClientName
	}
	if in.Phone != nil {
		credit.Phone = textutil.NormalizePhone(*in.Phone)
	}
	if in.Email != nil {
		credit.Email = *in.Email
	}
	if in.DesiredVehicle != nil {
		credit.DesiredVehicle = *in.DesiredVehicle
	}
	if in.MonthlyIncome != nil {
		credit.MonthlyIncome = in.MonthlyIncome
	}
	if in.OtherIncome != nil {
		credit.OtherIncome = *in.OtherIncome
	}
	if in.Occupation != nil {
		credit.Occupation = *in.Occupation
	}
	if in.ApplicationMode != nil {
		credit.ApplicationMode = *in.ApplicationMode
	}
	if in.DownPayment != nil {
		credit.DownPayment = *in.DownPayment
	}
	if in.Status != nil {
		if !entity.ValidCreditStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		credit.Status = *in.Status
	}
	if in.Notes != nil {
		credit.Notes = *in.Notes
	}
	if in.AssignedToID != nil {
		if *in.AssignedToID != "" {
			target, err := uc.userRepo.GetByID(*in.AssignedToID)
			if err != nil {
				return nil, err
			}
			if target == nil || target.CompanyID != credit.CompanyID {
				return nil, domain.ErrInvalidInput
			}
		}
		credit.AssignedToID = *in.AssignedToID
	}
	credit.UpdatedAt = time.Now()

	if err := uc.creditRepo.Update(credit); err != nil {
		return nil, err
	}
	return toCreditResponse(credit), nil
}

func (uc *CreditUseCase) loadScoped(id authz.Identity, creditID string) (*entity.CreditApplication, error) {
	credit, err := uc.creditRepo.GetByID(creditID)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(credit.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return credit, nil
}

func toCreditResponse(c *entity.CreditApplication) *dto.CreditResponse {
	return &dto.CreditResponse{
		ID:              c.ID,
		ClientName:      c.ClientName,
		Phone:           c.Phone,
		Email:           c.Email,
		DesiredVehicle:  c.DesiredVehicle,
		MonthlyIncome:   c.MonthlyIncome,
		OtherIncome:     c.OtherIncome,
		Occupation:      c.Occupation,
		ApplicationMode: c.ApplicationMode,
		DownPayment:     c.DownPayment,
		Status:          c.Status,
		Notes:           c.Notes,
		CompanyID:       c.CompanyID,
		AssignedToID:    c.AssignedToID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
