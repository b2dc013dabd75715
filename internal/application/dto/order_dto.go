package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItem línea de una orden nueva. El precio se resuelve del producto.
type CreateOrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	TableID string            `json:"table_id,omitempty"`
	Items   []CreateOrderItem `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes,omitempty"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	TableID     string              `json:"table_id,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Status      string              `json:"status"`
	StaffID     string              `json:"staff_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// UpdateOrderStatusResponse orden actualizada; al completar incluye los
// ingredientes que quedaron bajo mínimo tras el descuento de stock.
type UpdateOrderStatusResponse struct {
	Order               OrderResponse           `json:"order"`
	LowStockIngredients []LowStockIngredientDTO `json:"low_stock_ingredients,omitempty"`
}

// OrderListResponse listado de órdenes.
type OrderListResponse struct {
	Total  int             `json:"total"`
	Orders []OrderResponse `json:"orders"`
}
