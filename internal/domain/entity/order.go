package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si el estado es uno de los soportados.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem es una línea de la orden. Se persiste como JSONB dentro de orders.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes,omitempty"`
}

// StatusChange es una entrada del historial de estados de la orden.
type StatusChange struct {
	Status    string    `json:"status"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Order representa una orden de la carta. El motor de stock la lee al pasar a
// completed pero nunca escribe sus campos.
type Order struct {
	ID            string
	CompanyID     string
	TableID       string // vacía para pedidos para llevar
	Items         []OrderItem
	TotalAmount   decimal.Decimal
	Status        string // ver constantes OrderStatus*
	StatusHistory []StatusChange
	StaffID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsClosed indica si la orden ya no admite cambios de estado.
func (o *Order) IsClosed() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// CalculateTotal recalcula el total desde las líneas.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(item.Quantity))
	}
	return total
}
