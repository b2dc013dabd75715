package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para ingredientes y recetas.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitPiece      = "unit"
	UnitPack       = "pack"
)

// Categorías de ingredientes.
const (
	CategoryMeat      = "meat"
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"
	CategoryDairy     = "dairy"
	CategorySpice     = "spice"
	CategoryDryGoods  = "dry_goods"
	CategoryBeverage  = "beverage"
	CategoryOther     = "other"
)

// ValidUnit indica si la unidad es una de las soportadas.
func ValidUnit(unit string) bool {
	switch unit {
	case UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitPiece, UnitPack:
		return true
	}
	return false
}

// ValidIngredientCategory indica si la categoría es una de las soportadas.
func ValidIngredientCategory(category string) bool {
	switch category {
	case CategoryMeat, CategoryVegetable, CategoryFruit, CategoryDairy,
		CategorySpice, CategoryDryGoods, CategoryBeverage, CategoryOther:
		return true
	}
	return false
}

// Ingredient representa un insumo de cocina con su stock actual.
// CurrentStock nunca se escribe directamente fuera del libro de stock:
// toda mutación pasa por un movimiento que deja su StockTransaction.
type Ingredient struct {
	ID            string
	CompanyID     string
	Name          string          // único por empresa
	Unit          string          // ver constantes Unit*
	CurrentStock  decimal.Decimal // invariante: >= 0
	MinStockLevel decimal.Decimal
	CostPerUnit   decimal.Decimal
	Category      string // ver constantes Category*
	ExpiryDate    *time.Time
	SupplierID    string // vacío si no tiene proveedor asignado
	Location      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo configurado.
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStockLevel)
}

// IsExpiringSoon indica si el ingrediente vence dentro del horizonte dado
// contado desde now. Sin fecha de vencimiento siempre es false.
func (i *Ingredient) IsExpiringSoon(now time.Time, horizonDays int) bool {
	if i.ExpiryDate == nil {
		return false
	}
	return !i.ExpiryDate.After(now.AddDate(0, 0, horizonDays))
}
