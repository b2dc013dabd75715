package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ReportUseCase lecturas agregadas sobre el libro de stock: reporte de
// valorización y el historial paginado de transacciones. No muta nada.
type ReportUseCase struct {
	ingredientRepo repository.IngredientRepository
	txnRepo        repository.StockTransactionRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	ingredientRepo repository.IngredientRepository,
	txnRepo repository.StockTransactionRepository,
) *ReportUseCase {
	return &ReportUseCase{ingredientRepo: ingredientRepo, txnRepo: txnRepo}
}

// GetStockReport arma el reporte del stock actual filtrado por categoría y/o
// solo-stock-bajo: total de ítems, valorización (stock * costo unitario) y
// conteo de ingredientes bajo mínimo.
func (uc *ReportUseCase) GetStockReport(
	_ context.Context,
	companyID string,
	in dto.StockReportRequest,
) (*dto.StockReportResponse, error) {
	if in.Category != "" && !entity.ValidIngredientCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	ingredients, err := uc.ingredientRepo.List(companyID, repository.IngredientFilter{
		Category:     in.Category,
		OnlyLowStock: in.OnlyLowStock,
	})
	if err != nil {
		return nil, err
	}

	totalValue := decimal.Zero
	lowStockCount := 0
	out := &dto.StockReportResponse{
		Ingredients: make([]dto.IngredientResponse, 0, len(ingredients)),
		ReportDate:  time.Now(),
	}
	for _, ing := range ingredients {
		totalValue = totalValue.Add(ing.CurrentStock.Mul(ing.CostPerUnit))
		if ing.IsLowStock() {
			lowStockCount++
		}
		out.Ingredients = append(out.Ingredients, ToIngredientResponse(ing))
	}
	out.TotalItems = len(ingredients)
	out.TotalValue = totalValue
	out.LowStockCount = lowStockCount
	return out, nil
}

// GetStockHistory devuelve una página del log de transacciones, de la más
// reciente a la más antigua, con filtros por rango de fechas, tipo e ingrediente.
func (uc *ReportUseCase) GetStockHistory(
	_ context.Context,
	companyID string,
	in dto.StockHistoryRequest,
) (*dto.StockHistoryResponse, error) {
	if in.Type != "" && !entity.ValidTxType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()

	filter := repository.TransactionFilter{
		IngredientID: in.IngredientID,
		Type:         in.Type,
		From:         in.StartDate,
		To:           in.EndDate,
		Limit:        in.Limit,
		Offset:       in.Offset(),
	}
	txns, err := uc.txnRepo.List(companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.txnRepo.Count(companyID, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.StockHistoryResponse{
		Transactions: make([]dto.StockTransactionResponse, 0, len(txns)),
		Pagination: dto.PageResponse{
			Page:       in.Page,
			Limit:      in.Limit,
			Total:      total,
			TotalPages: (total + int64(in.Limit) - 1) / int64(in.Limit),
		},
	}
	for _, txn := range txns {
		out.Transactions = append(out.Transactions, ToTransactionResponse(txn))
	}
	return out, nil
}

// ToIngredientResponse mapea la entidad al DTO HTTP.
func ToIngredientResponse(ing *entity.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:            ing.ID,
		Name:          ing.Name,
		Unit:          ing.Unit,
		Category:      ing.Category,
		CurrentStock:  ing.CurrentStock,
		MinStockLevel: ing.MinStockLevel,
		CostPerUnit:   ing.CostPerUnit,
		ExpiryDate:    ing.ExpiryDate,
		SupplierID:    ing.SupplierID,
		Location:      ing.Location,
		Active:        ing.Active,
		LowStock:      ing.IsLowStock(),
		CreatedAt:     ing.CreatedAt,
		UpdatedAt:     ing.UpdatedAt,
	}
}

// ToTransactionResponse mapea la entidad al DTO HTTP.
func ToTransactionResponse(txn *entity.StockTransaction) dto.StockTransactionResponse {
	return dto.StockTransactionResponse{
		ID:              txn.ID,
		IngredientID:    txn.IngredientID,
		Type:            txn.Type,
		Quantity:        txn.Quantity,
		PreviousStock:   txn.PreviousStock,
		NewStock:        txn.NewStock,
		OrderID:         txn.OrderID,
		SupplierOrderID: txn.SupplierOrderID,
		UnitCost:        txn.UnitCost,
		TotalCost:       txn.TotalCost,
		Notes:           txn.Notes,
		PerformedBy:     txn.PerformedBy,
		CreatedAt:       txn.CreatedAt,
	}
}
