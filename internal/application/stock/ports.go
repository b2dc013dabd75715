package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// actualización del ingrediente + registro en el log en un solo commit, y la
// conciliación completa de una orden (N ingredientes) como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ingredientRepo repository.IngredientRepository,
		txnRepo repository.StockTransactionRepository,
		recipeRepo repository.RecipeLinkRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// LowStockIngredient ingrediente que quedó en o bajo su mínimo.
type LowStockIngredient struct {
	Name         string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
}

// NotificationSink recibe alertas de stock bajo. Es best-effort: el motor lo
// invoca fuera de la transacción, en una goroutine, y descarta sus errores.
type NotificationSink interface {
	NotifyLowStock(ctx context.Context, companyID string, ingredients []LowStockIngredient) error
}
