package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Location      string          `json:"location,omitempty"`
}

// UpdateIngredientRequest body para PUT /api/ingredients/:id. Campos nil no se tocan.
// CurrentStock pasa por un ajuste registrado, nunca por escritura directa.
type UpdateIngredientRequest struct {
	Name          *string          `json:"name,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	Category      *string          `json:"category,omitempty"`
	CurrentStock  *decimal.Decimal `json:"current_stock,omitempty"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
	CostPerUnit   *decimal.Decimal `json:"cost_per_unit,omitempty"`
	ExpiryDate    *time.Time       `json:"expiry_date,omitempty"`
	SupplierID    *string          `json:"supplier_id,omitempty"`
	Location      *string          `json:"location,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// IngredientResponse representación HTTP de un ingrediente.
type IngredientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Location      string          `json:"location,omitempty"`
	Active        bool            `json:"active"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IngredientListResponse listado de ingredientes.
type IngredientListResponse struct {
	Total       int                  `json:"total"`
	Ingredients []IngredientResponse `json:"ingredients"`
}
