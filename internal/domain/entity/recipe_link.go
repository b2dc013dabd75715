package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLink relaciona un producto de la carta con un ingrediente y la cantidad
// que consume una unidad del producto. A lo sumo un link por par (product, ingredient);
// la tabla lo respalda con un índice único.
type RecipeLink struct {
	ID           string
	ProductID    string
	IngredientID string
	Quantity     decimal.Decimal // consumo por unidad de producto, >= 0
	Unit         string          // ver constantes Unit*
	IsOptional   bool            // opcional no bloquea disponibilidad
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
