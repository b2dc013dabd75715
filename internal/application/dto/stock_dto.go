package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/stock/movements.
type ApplyMovementRequest struct {
	IngredientID    string          `json:"ingredient_id"`
	Type            string          `json:"type"` // in, out, adjustment, count
	Quantity        decimal.Decimal `json:"quantity"`
	SupplierOrderID string          `json:"supplier_order_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// StockEntryRequest body para POST /api/ingredients/:id/stock-entry.
type StockEntryRequest struct {
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SupplierOrderID string          `json:"supplier_order_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/ingredients/:id/adjust.
type AdjustStockRequest struct {
	NewStock decimal.Decimal `json:"new_stock"`
	Notes    string          `json:"notes,omitempty"`
}

// StockTransactionResponse representación HTTP de una transacción de stock.
type StockTransactionResponse struct {
	ID              string           `json:"id"`
	IngredientID    string           `json:"ingredient_id"`
	Type            string           `json:"type"`
	Quantity        decimal.Decimal  `json:"quantity"`
	PreviousStock   decimal.Decimal  `json:"previous_stock"`
	NewStock        decimal.Decimal  `json:"new_stock"`
	OrderID         string           `json:"order_id,omitempty"`
	SupplierOrderID string           `json:"supplier_order_id,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       *decimal.Decimal `json:"total_cost,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	PerformedBy     string           `json:"performed_by"`
	CreatedAt       time.Time        `json:"created_at"`
}

// StockHistoryRequest query para GET /api/stock/history.
type StockHistoryRequest struct {
	IngredientID string     `query:"ingredient_id"`
	Type         string     `query:"type"`
	StartDate    *time.Time `query:"start_date"`
	EndDate      *time.Time `query:"end_date"`
	PageRequest
}

// StockHistoryResponse página del historial de transacciones.
type StockHistoryResponse struct {
	Transactions []StockTransactionResponse `json:"transactions"`
	Pagination   PageResponse               `json:"pagination"`
}

// OrderItemInput línea (producto, cantidad) para chequeo de disponibilidad.
type OrderItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CheckAvailabilityRequest body para POST /api/stock/check-availability.
type CheckAvailabilityRequest struct {
	Items []OrderItemInput `json:"items"`
}

// UnavailableItem producto que no puede prepararse y el motivo.
type UnavailableItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
}

// AvailabilityResponse resultado del chequeo de disponibilidad (solo lectura).
type AvailabilityResponse struct {
	Available        bool              `json:"available"`
	UnavailableItems []UnavailableItem `json:"unavailable_items"`
}

// LowStockIngredientDTO ingrediente que quedó en o bajo su mínimo tras una conciliación.
type LowStockIngredientDTO struct {
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// ReconcileResponse resultado de descontar stock por una orden completada.
type ReconcileResponse struct {
	LowStockIngredients []LowStockIngredientDTO `json:"low_stock_ingredients"`
}

// StockReportRequest query para GET /api/stock/report.
type StockReportRequest struct {
	Category     string `query:"category"`
	OnlyLowStock bool   `query:"low_stock"`
}

// StockReportResponse reporte agregado del stock actual.
type StockReportResponse struct {
	Ingredients   []IngredientResponse `json:"ingredients"`
	TotalItems    int                  `json:"total_items"`
	TotalValue    decimal.Decimal      `json:"total_value"`
	LowStockCount int                  `json:"low_stock_count"`
	ReportDate    time.Time            `json:"report_date"`
}
