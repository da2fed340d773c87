package repository

import "github.com/tu-usuario/autosqp-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByName(name string) (*entity.Company, error)
	// First devuelve la empresa registrada más antigua; la usa el webhook
	// cuando no hay empresa configurada para el canal entrante.
	First() (*entity.Company, error)
	Update(company *entity.Company) error
	List(query string, limit, offset int) ([]*entity.Company, int, error)
}
