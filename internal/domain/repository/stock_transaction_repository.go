package repository

import (
	"time"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// TransactionFilter filtros para el historial de transacciones de stock.
type TransactionFilter struct {
	IngredientID string
	Type         string // vacío = todos
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// StockTransactionRepository define el puerto del log de transacciones de stock.
// Es append-only: no expone actualización ni borrado.
type StockTransactionRepository interface {
	Create(txn *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	// ExistsForOrder indica si ya hay salidas registradas para la orden
	// (candado de idempotencia de la conciliación).
	ExistsForOrder(orderID string) (bool, error)
	List(companyID string, filter TransactionFilter) ([]*entity.StockTransaction, error)
	Count(companyID string, filter TransactionFilter) (int64, error)
}
