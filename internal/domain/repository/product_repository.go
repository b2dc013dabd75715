package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos de la carta.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndName(companyID, name string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
}
