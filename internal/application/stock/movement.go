package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// MovementUseCase aplica movimientos de stock sobre un ingrediente de forma
// transaccional: relee la fila con SELECT FOR UPDATE, calcula el nuevo stock
// según el tipo y persiste ledger + log en un solo commit.
type MovementUseCase struct {
	txRunner TxRunner
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner}
}

// MovementOptions campos opcionales de un movimiento.
type MovementOptions struct {
	Notes           string
	OrderID         string
	SupplierOrderID string
	// UnitCost presente en entradas de compra: además de registrar el costo en
	// la transacción, actualiza el costo por unidad del ingrediente.
	UnitCost *decimal.Decimal
}

// Apply aplica un movimiento al ingrediente según el tipo:
//   - in:  nuevo = anterior + cantidad
//   - out: nuevo = anterior - cantidad; falla con ErrInsufficientStock si queda negativo
//   - adjustment / count: cantidad es el valor objetivo absoluto; la magnitud
//     registrada en el log es |nuevo - anterior| (sin transacción si el delta es 0)
//
// Devuelve la transacción escrita, o nil en el caso no-op de ajuste sin delta.
func (uc *MovementUseCase) Apply(
	ctx context.Context,
	companyID, ingredientID string,
	quantity decimal.Decimal,
	txType, actorID string,
	opts MovementOptions,
) (*entity.StockTransaction, error) {
	if ingredientID == "" || actorID == "" || !entity.ValidTxType(txType) {
		return nil, domain.ErrInvalidInput
	}
	if quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if (txType == entity.TxTypeIn || txType == entity.TxTypeOut) && quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StockTransaction
	err := uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.RecipeLinkRepository,
		_ repository.OrderRepository,
	) error {
		// Bloquea la fila para que el cálculo use el valor vigente dentro de la tx
		ing, err := ingredientRepo.GetForUpdate(ingredientID)
		if err != nil {
			return err
		}
		if ing == nil || ing.CompanyID != companyID {
			return domain.ErrNotFound
		}

		previous := ing.CurrentStock
		var newStock, logged decimal.Decimal
		switch txType {
		case entity.TxTypeIn:
			newStock = previous.Add(quantity)
			logged = quantity
		case entity.TxTypeOut:
			newStock = previous.Sub(quantity)
			if newStock.IsNegative() {
				return domain.ErrInsufficientStock
			}
			logged = quantity
		case entity.TxTypeAdjust, entity.TxTypeCount:
			newStock = quantity
			logged = newStock.Sub(previous).Abs()
			if logged.IsZero() {
				// Sin delta no hay nada que corregir ni que registrar
				return nil
			}
		}

		txn := &entity.StockTransaction{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			IngredientID:    ingredientID,
			Type:            txType,
			Quantity:        logged,
			PreviousStock:   previous,
			NewStock:        newStock,
			OrderID:         opts.OrderID,
			SupplierOrderID: opts.SupplierOrderID,
			Notes:           opts.Notes,
			PerformedBy:     actorID,
			CreatedAt:       time.Now(),
		}
		if opts.UnitCost != nil {
			total := quantity.Mul(*opts.UnitCost)
			txn.UnitCost = opts.UnitCost
			txn.TotalCost = &total
		}

		if err := ingredientRepo.UpdateStock(ingredientID, newStock); err != nil {
			return err
		}
		if opts.UnitCost != nil {
			if err := ingredientRepo.UpdateCost(ingredientID, *opts.UnitCost); err != nil {
				return err
			}
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}
		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordStockEntry registra una entrada de compra: movimiento `in` con costo
// unitario, que también refresca el costo por unidad del ingrediente.
func (uc *MovementUseCase) RecordStockEntry(
	ctx context.Context,
	companyID, ingredientID string,
	quantity, unitCost decimal.Decimal,
	actorID, supplierOrderID, notes string,
) (*entity.StockTransaction, error) {
	if unitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if notes == "" {
		notes = "entrada de stock manual"
	}
	return uc.Apply(ctx, companyID, ingredientID, quantity, entity.TxTypeIn, actorID, MovementOptions{
		Notes:           notes,
		SupplierOrderID: supplierOrderID,
		UnitCost:        &unitCost,
	})
}

// AdjustStock corrige el stock al valor objetivo dado. Con delta cero es un
// no-op que no escribe transacción.
func (uc *MovementUseCase) AdjustStock(
	ctx context.Context,
	companyID, ingredientID string,
	newStock decimal.Decimal,
	actorID, notes string,
) (*entity.StockTransaction, error) {
	if notes == "" {
		notes = "corrección manual de stock"
	}
	return uc.Apply(ctx, companyID, ingredientID, newStock, entity.TxTypeAdjust, actorID, MovementOptions{
		Notes: notes,
	})
}
