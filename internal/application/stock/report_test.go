package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/stock"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func newReportUC(store *memStore) *stock.ReportUseCase {
	return stock.NewReportUseCase(&memIngredientRepo{store: store}, &memTransactionRepo{store: store})
}

// seedTxn inserta una transacción directa en el log (para tests de historial).
func seedTxn(store *memStore, ingredientID, txType string, createdAt time.Time) *entity.StockTransaction {
	txn := &entity.StockTransaction{
		ID:           uuid.New().String(),
		CompanyID:    movCompanyID,
		IngredientID: ingredientID,
		Type:         txType,
		Quantity:     decimal.NewFromFloat(1),
		PerformedBy:  movActorID,
		CreatedAt:    createdAt,
	}
	store.transactions[txn.ID] = txn
	store.txOrder = append(store.txOrder, txn.ID)
	return txn
}

// Reporte: valorización total, conteo de stock bajo y total de ítems.
func TestStockReport_ValorizacionYConteos(t *testing.T) {
	store := newMemStore()
	flour := seedIngredient(store, "Harina", 10, 5) // 10 × 2 = 20
	flour.CostPerUnit = decimal.NewFromFloat(2)
	meat := seedIngredient(store, "Carne", 1, 3) // bajo mínimo; 1 × 8 = 8
	meat.CostPerUnit = decimal.NewFromFloat(8)
	meat.Category = entity.CategoryMeat

	uc := newReportUC(store)
	resp, err := uc.GetStockReport(context.Background(), movCompanyID, dto.StockReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalItems)
	assert.True(t, decimal.NewFromFloat(28).Equal(resp.TotalValue),
		"valorización = Σ stock × costo unitario")
	assert.Equal(t, 1, resp.LowStockCount, "solo la carne está bajo mínimo")
	assert.False(t, resp.ReportDate.IsZero())
}

// Filtro por categoría y solo-stock-bajo.
func TestStockReport_Filtros(t *testing.T) {
	store := newMemStore()
	seedIngredient(store, "Harina", 10, 5)
	meat := seedIngredient(store, "Carne", 1, 3)
	meat.Category = entity.CategoryMeat

	uc := newReportUC(store)
	ctx := context.Background()

	resp, err := uc.GetStockReport(ctx, movCompanyID, dto.StockReportRequest{Category: entity.CategoryMeat})
	require.NoError(t, err)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, "Carne", resp.Ingredients[0].Name)

	resp, err = uc.GetStockReport(ctx, movCompanyID, dto.StockReportRequest{OnlyLowStock: true})
	require.NoError(t, err)
	require.Len(t, resp.Ingredients, 1)
	assert.True(t, resp.Ingredients[0].LowStock)

	_, err = uc.GetStockReport(ctx, movCompanyID, dto.StockReportRequest{Category: "plutonio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Historial: orden descendente por fecha y paginación.
func TestStockHistory_OrdenYPaginacion(t *testing.T) {
	store := newMemStore()
	ing := seedIngredient(store, "Harina", 10, 5)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedTxn(store, ing.ID, entity.TxTypeIn, base.Add(time.Duration(i)*time.Hour))
	}

	uc := newReportUC(store)
	resp, err := uc.GetStockHistory(context.Background(), movCompanyID, dto.StockHistoryRequest{
		PageRequest: dto.PageRequest{Page: 1, Limit: 2},
	})
	require.NoError(t, err)

	require.Len(t, resp.Transactions, 2)
	assert.True(t, resp.Transactions[0].CreatedAt.After(resp.Transactions[1].CreatedAt),
		"el historial va de la más reciente a la más antigua")
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)

	// Segunda página continúa donde terminó la primera
	resp2, err := uc.GetStockHistory(context.Background(), movCompanyID, dto.StockHistoryRequest{
		PageRequest: dto.PageRequest{Page: 2, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, resp2.Transactions, 2)
	assert.True(t, resp.Transactions[1].CreatedAt.After(resp2.Transactions[0].CreatedAt))
}

// Historial: filtros por tipo, ingrediente y rango de fechas.
func TestStockHistory_Filtros(t *testing.T) {
	store := newMemStore()
	flour := seedIngredient(store, "Harina", 10, 5)
	meat := seedIngredient(store, "Carne", 5, 1)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedTxn(store, flour.ID, entity.TxTypeIn, base)
	seedTxn(store, flour.ID, entity.TxTypeOut, base.Add(time.Hour))
	seedTxn(store, meat.ID, entity.TxTypeIn, base.Add(2*time.Hour))

	uc := newReportUC(store)
	ctx := context.Background()

	resp, err := uc.GetStockHistory(ctx, movCompanyID, dto.StockHistoryRequest{Type: entity.TxTypeOut})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, entity.TxTypeOut, resp.Transactions[0].Type)

	resp, err = uc.GetStockHistory(ctx, movCompanyID, dto.StockHistoryRequest{IngredientID: flour.ID})
	require.NoError(t, err)
	assert.Len(t, resp.Transactions, 2)

	from := base.Add(30 * time.Minute)
	resp, err = uc.GetStockHistory(ctx, movCompanyID, dto.StockHistoryRequest{StartDate: &from})
	require.NoError(t, err)
	assert.Len(t, resp.Transactions, 2, "solo las transacciones desde la fecha dada")

	_, err = uc.GetStockHistory(ctx, movCompanyID, dto.StockHistoryRequest{Type: "swap"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
