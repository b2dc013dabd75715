package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const txnColumns = `id, company_id, ingredient_id, type, quantity, previous_stock, new_stock, order_id, supplier_order_id, unit_cost, total_cost, notes, performed_by, created_at`

// StockTransactionRepo implementación del log de transacciones de stock sobre
// PostgreSQL (usable con pool o tx). La tabla es append-only: este adaptador
// no expone UPDATE ni DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste una transacción de stock.
func (r *StockTransactionRepo) Create(txn *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	orderID := (*string)(nil)
	if txn.OrderID != "" {
		orderID = &txn.OrderID
	}
	supplierOrderID := (*string)(nil)
	if txn.SupplierOrderID != "" {
		supplierOrderID = &txn.SupplierOrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.CompanyID, txn.IngredientID, txn.Type, txn.Quantity,
		txn.PreviousStock, txn.NewStock, orderID, supplierOrderID,
		txn.UnitCost, txn.TotalCost, txn.Notes, txn.PerformedBy, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

func scanTxn(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	var orderID, supplierOrderID *string
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.IngredientID, &t.Type, &t.Quantity,
		&t.PreviousStock, &t.NewStock, &orderID, &supplierOrderID,
		&t.UnitCost, &t.TotalCost, &t.Notes, &t.PerformedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		t.OrderID = *orderID
	}
	if supplierOrderID != nil {
		t.SupplierOrderID = *supplierOrderID
	}
	return &t, nil
}

// GetByID obtiene una transacción por ID.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM stock_transactions WHERE id = $1`
	txn, err := scanTxn(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return txn, nil
}

// ExistsForOrder indica si la orden ya tiene salidas registradas.
func (r *StockTransactionRepo) ExistsForOrder(orderID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock_transactions WHERE order_id = $1 AND type = 'out')`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists for order: %w", err)
	}
	return exists, nil
}

// buildFilter arma la cláusula WHERE compartida entre List y Count.
func buildFilter(companyID string, f repository.TransactionFilter) (string, []any) {
	where := ` WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if f.IngredientID != "" {
		where += fmt.Sprintf(" AND ingredient_id = $%d", pos)
		args = append(args, f.IngredientID)
		pos++
	}
	if f.Type != "" {
		where += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	return where, args
}

// List devuelve una página del historial, de la más reciente a la más antigua.
func (r *StockTransactionRepo) List(companyID string, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	where, args := buildFilter(companyID, f)
	pos := len(args) + 1
	query := `SELECT ` + txnColumns + ` FROM stock_transactions` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransaction
	for rows.Next() {
		txn, err := scanTxn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, txn)
	}
	return list, rows.Err()
}

// Count cuenta las transacciones que cumplen el filtro.
func (r *StockTransactionRepo) Count(companyID string, f repository.TransactionFilter) (int64, error) {
	where, args := buildFilter(companyID, f)
	var total int64
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM stock_transactions`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count stock transactions: %w", err)
	}
	return total, nil
}
