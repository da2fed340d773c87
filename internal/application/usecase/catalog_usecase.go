package usecase

import (
	"github.com/google/uuid"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

// CatalogUseCase catálogo compartido de marcas y modelos. Es global: no se
// filtra por empresa.
type CatalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(catalogRepo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalogRepo: catalogRepo}
}

// ListBrands devuelve todas las marcas.
func (uc *CatalogUseCase) ListBrands() ([]*dto.BrandResponse, error) {
	brands, err := uc.catalogRepo.ListBrands()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, &dto.BrandResponse{ID: b.ID, Name: b.Name, LogoURL: b.LogoURL})
	}
	return out, nil
}

// ListModels devuelve los modelos de una marca.
func (uc *CatalogUseCase) ListModels(brandID string) ([]*dto.ModelResponse, error) {
	models, err := uc.catalogRepo.ListModelsByBrand(brandID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, &dto.ModelResponse{ID: m.ID, BrandID: m.BrandID, Name: m.Name})
	}
	return out, nil
}

// Seed carga marcas y modelos faltantes. Es idempotente: lo ya existente
// se conserva tal cual.
func (uc *CatalogUseCase) Seed(brands map[string][]string) (int, error) {
	created := 0
	for brandName, models := range brands {
		brand, err := uc.catalogRepo.GetBrandByName(brandName)
		if err != nil {
			return created, err
		}
		if brand == nil {
			brand = &entity.CarBrand{ID: uuid.New().String(), Name: brandName}
			if err := uc.catalogRepo.CreateBrand(brand); err != nil {
				return created, err
			}
			created++
		}
		for _, modelName := range models {
			exists, err := uc.catalogRepo.ModelExists(brand.ID, modelName)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}
			if err := uc.catalogRepo.CreateModel(&entity.CarModel{
				ID:      uuid.New().String(),
				BrandID: brand.ID,
				Name:    modelName,
			}); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
