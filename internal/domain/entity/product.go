package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un plato o producto de la carta. Su receta vive en
// RecipeLink; el producto en sí no lleva stock.
type Product struct {
	ID          string
	CompanyID   string
	Name        string // único por empresa
	Description string
	Price       decimal.Decimal
	Category    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
