package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRecipeLinkRequest body para POST /api/recipe-links.
type CreateRecipeLinkRequest struct {
	ProductID    string          `json:"product_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	IsOptional   bool            `json:"is_optional"`
	Notes        string          `json:"notes,omitempty"`
}

// UpdateRecipeLinkRequest body para PUT /api/recipe-links/:id.
type UpdateRecipeLinkRequest struct {
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Unit       *string          `json:"unit,omitempty"`
	IsOptional *bool            `json:"is_optional,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// RecipeLinkResponse representación HTTP de un link producto-ingrediente.
// IngredientName/ProductName van resueltos para análisis de impacto.
type RecipeLinkResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	IsOptional     bool            `json:"is_optional"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecipeLinkListResponse listado de links.
type RecipeLinkListResponse struct {
	Total int                  `json:"total"`
	Links []RecipeLinkResponse `json:"links"`
}
