package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// CompanyUseCase administración de concesionarios (tenants).
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra un concesionario; solo el super admin global. El nombre
// es único: un duplicado devuelve conflicto.
func (uc *CompanyUseCase) Create(id authz.Identity, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !id.IsGlobal() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           in.Name,
		LogoURL:        in.LogoURL,
		PrimaryColor:   in.PrimaryColor,
		SecondaryColor: in.SecondaryColor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get devuelve un concesionario. Un caller con empresa solo ve la suya.
func (uc *CompanyUseCase) Get(id authz.Identity, companyID string) (*dto.CompanyResponse, error) {
	if !id.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista concesionarios; solo el super admin global ve más de uno.
func (uc *CompanyUseCase) List(id authz.Identity, query string, page dto.PageRequest) ([]*dto.CompanyResponse, int, error) {
	page.DefaultPage()
	if !id.IsGlobal() {
		company, err := uc.Get(id, id.CompanyID)
		if err != nil {
			return nil, 0, err
		}
		return []*dto.CompanyResponse{company}, 1, nil
	}
	list, total, err := uc.companyRepo.List(query, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCompanyResponse(c))
	}
	return out, total, nil
}

// Update edita nombre y marca (logo, colores) del concesionario.
func (uc *CompanyUseCase) Update(id authz.Identity, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if !id.CanAccessCompany(companyID) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = *in.Name
	}
	if in.LogoURL != nil {
		company.LogoURL = *in.LogoURL
	}
	if in.PrimaryColor != nil {
		company.PrimaryColor = *in.PrimaryColor
	}
	if in.SecondaryColor != nil {
		company.SecondaryColor = *in.SecondaryColor
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		LogoURL:        c.LogoURL,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
