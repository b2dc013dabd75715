package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// UpdateStatus persiste el nuevo estado y el historial acumulado.
	UpdateStatus(order *entity.Order) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Order, error)
}
