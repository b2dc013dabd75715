package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// IngredientFilter filtros para listados de ingredientes.
type IngredientFilter struct {
	Category     string // vacío = todas
	OnlyLowStock bool   // current_stock <= min_stock_level
	OnlyActive   bool
	Search       string // por nombre, case-insensitive
}

// IngredientRepository define el puerto de persistencia para ingredientes.
// UpdateStock es la única vía de escritura de current_stock y solo la usan los
// movimientos del libro de stock, dentro de una transacción que también
// registra la StockTransaction correspondiente.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	GetByName(companyID, name string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para relecturas dentro de una tx.
	GetForUpdate(id string) (*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	UpdateStock(id string, newStock decimal.Decimal) error
	UpdateCost(id string, costPerUnit decimal.Decimal) error
	List(companyID string, filter IngredientFilter) ([]*entity.Ingredient, error)
	Delete(id string) error
}
