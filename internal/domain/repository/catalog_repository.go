package repository

import "github.com/tu-usuario/autosqp-api/internal/domain/entity"

// CatalogRepository acceso al catálogo compartido de marcas y modelos.
type CatalogRepository interface {
	ListBrands() ([]*entity.CarBrand, error)
	ListModelsByBrand(brandID string) ([]*entity.CarModel, error)
	GetBrandByName(name string) (*entity.CarBrand, error)
	CreateBrand(brand *entity.CarBrand) error
	// ModelExists verifica (brand_id, name) para que el seed sea idempotente.
	ModelExists(brandID, name string) (bool, error)
	CreateModel(model *entity.CarModel) error
}
