package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo acceso al catálogo compartido de marcas y modelos sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de persistencia del catálogo.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// ListBrands devuelve todas las marcas ordenadas por nombre.
func (r *CatalogRepo) ListBrands() ([]*entity.CarBrand, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT b.id::text, b.name, COALESCE(b.logo_url, '') FROM car_brands b ORDER BY b.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.CarBrand
	for rows.Next() {
		var b entity.CarBrand
		if err := rows.Scan(&b.ID, &b.Name, &b.LogoURL); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListModelsByBrand devuelve los modelos de una marca ordenados por nombre.
func (r *CatalogRepo) ListModelsByBrand(brandID string) ([]*entity.CarModel, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT m.id::text, m.brand_id::text, m.name FROM car_models m WHERE m.brand_id = $1 ORDER BY m.name ASC`,
		brandID)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var list []*entity.CarModel
	for rows.Next() {
		var m entity.CarModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// GetBrandByName busca una marca por nombre exacto. Devuelve nil si no existe.
func (r *CatalogRepo) GetBrandByName(name string) (*entity.CarBrand, error) {
	var b entity.CarBrand
	err := r.q.QueryRow(context.Background(),
		`SELECT b.id::text, b.name, COALESCE(b.logo_url, '') FROM car_brands b WHERE b.name = $1`,
		name).Scan(&b.ID, &b.Name, &b.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// CreateBrand persiste una nueva marca. El nombre es único.
func (r *CatalogRepo) CreateBrand(brand *entity.CarBrand) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO car_brands (id, name, logo_url) VALUES ($1, $2, $3)`,
		brand.ID, brand.Name, nullIfEmpty(brand.LogoURL))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// ModelExists verifica si la marca ya tiene un modelo con ese nombre.
func (r *CatalogRepo) ModelExists(brandID, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM car_models WHERE brand_id = $1 AND name = $2)`,
		brandID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("model exists: %w", err)
	}
	return exists, nil
}

// CreateModel persiste un nuevo modelo de una marca.
func (r *CatalogRepo) CreateModel(model *entity.CarModel) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO car_models (id, brand_id, name) VALUES ($1, $2, $3)`,
		model.ID, model.BrandID, model.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert model: %w", err)
	}
	return nil
}
