package leads

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/assign"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

// WebhookUseCase alta de leads desde campañas externas (formularios, pauta).
// No hay caller autenticado: la empresa se resuelve del payload o cae en la
// primera registrada, y la asignación corre igual que en el alta manual.
type WebhookUseCase struct {
	leadRepo    repository.LeadRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	selector    assign.Selector
}

// NewWebhookUseCase construye el caso de uso del webhook genérico.
func NewWebhookUseCase(
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	selector assign.Selector,
) *WebhookUseCase {
	return &WebhookUseCase{
		leadRepo:    leadRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		selector:    selector,
	}
}

// CreateFromWebhook registra un lead entrante. source viene de la ruta; un
// valor desconocido cae en "other" en lugar de rechazar el evento.
func (uc *WebhookUseCase) CreateFromWebhook(source string, in dto.WebhookLeadRequest) (*dto.LeadResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Source != "" {
		source = in.Source
	}
	if !entity.ValidLeadSource(source) {
		source = entity.LeadSourceOther
	}

	companyID, err := uc.resolveCompany(in.CompanyID)
	if err != nil {
		return nil, err
	}

	assignedTo := ""
	advisors, err := uc.userRepo.ListAdvisors(companyID)
	if err != nil {
		return nil, err
	}
	if idx := uc.selector.Pick(len(advisors)); idx >= 0 {
		assignedTo = advisors[idx].ID
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
		CreatedAt:    time.Now(),
	}
	if err := uc.leadRepo.Create(lead); err != nil {
		return nil, err
	}
	return toLeadResponse(lead), nil
}

// resolveCompany usa la empresa del payload si existe; si no, la más antigua
// registrada. Sin empresas no hay dónde colgar el lead.
func (uc *WebhookUseCase) resolveCompany(explicit string) (string, error) {
	if explicit != "" {
		company, err := uc.companyRepo.GetByID(explicit)
		if err != nil {
			return "", err
		}
		if company != nil {
			return company.ID, nil
		}
	}
	company, err := uc.companyRepo.First()
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", domain.ErrInvalidInput
	}
	return company.ID, nil
}
