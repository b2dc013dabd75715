package ingredient

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/stock"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// UseCase ciclo de vida de ingredientes. Las mutaciones de stock embebidas
// (stock inicial al crear, corrección al actualizar) pasan por el mismo
// TxRunner que usa el libro de stock: alta + transacción en un solo commit.
type UseCase struct {
	txRunner       stock.TxRunner
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeLinkRepository
	expiryHorizon  int // días
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner stock.TxRunner,
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeLinkRepository,
	expiryHorizonDays int,
) *UseCase {
	if expiryHorizonDays <= 0 {
		expiryHorizonDays = 7
	}
	return &UseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		expiryHorizon:  expiryHorizonDays,
	}
}

// Create valida y crea el ingrediente. Con initial_stock > 0 registra además
// una transacción `in` con previous_stock = 0 en la misma unidad de commit.
func (uc *UseCase) Create(ctx context.Context, companyID, actorID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if in.Name == "" || !entity.ValidUnit(in.Unit) || !entity.ValidIngredientCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock.IsNegative() || in.MinStockLevel.IsNegative() || in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.ingredientRepo.GetByName(companyID, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	ing := &entity.Ingredient{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		Unit:          in.Unit,
		Category:      in.Category,
		CurrentStock:  in.InitialStock,
		MinStockLevel: in.MinStockLevel,
		CostPerUnit:   in.CostPerUnit,
		ExpiryDate:    in.ExpiryDate,
		SupplierID:    in.SupplierID,
		Location:      in.Location,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.RecipeLinkRepository,
		_ repository.OrderRepository,
	) error {
		if err := ingredientRepo.Create(ing); err != nil {
			return err
		}
		if in.InitialStock.IsPositive() {
			return txnRepo.Create(&entity.StockTransaction{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				IngredientID:  ing.ID,
				Type:          entity.TxTypeIn,
				Quantity:      in.InitialStock,
				PreviousStock: decimal.Zero,
				NewStock:      in.InitialStock,
				Notes:         "carga de stock inicial",
				PerformedBy:   actorID,
				CreatedAt:     now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := stock.ToIngredientResponse(ing)
	return &resp, nil
}

// Update actualiza campos del ingrediente. Si viene current_stock y difiere
// del vigente, el cambio se registra como transacción `adjustment` de magnitud
// |delta| dentro de la misma tx (nunca como escritura directa del campo).
func (uc *UseCase) Update(ctx context.Context, companyID, actorID, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	if in.Unit != nil && !entity.ValidUnit(*in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.Category != nil && !entity.ValidIngredientCategory(*in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock != nil && in.CurrentStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStockLevel != nil && in.MinStockLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Ingredient
	err := uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.RecipeLinkRepository,
		_ repository.OrderRepository,
	) error {
		ing, err := ingredientRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if ing == nil || ing.CompanyID != companyID {
			return domain.ErrNotFound
		}

		if in.CurrentStock != nil && !in.CurrentStock.Equal(ing.CurrentStock) {
			delta := in.CurrentStock.Sub(ing.CurrentStock)
			if err := txnRepo.Create(&entity.StockTransaction{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				IngredientID:  ing.ID,
				Type:          entity.TxTypeAdjust,
				Quantity:      delta.Abs(),
				PreviousStock: ing.CurrentStock,
				NewStock:      *in.CurrentStock,
				Notes:         "corrección de stock durante actualización del ingrediente",
				PerformedBy:   actorID,
				CreatedAt:     time.Now(),
			}); err != nil {
				return err
			}
			ing.CurrentStock = *in.CurrentStock
		}

		if in.Name != nil {
			ing.Name = *in.Name
		}
		if in.Unit != nil {
			ing.Unit = *in.Unit
		}
		if in.Category != nil {
			ing.Category = *in.Category
		}
		if in.MinStockLevel != nil {
			ing.MinStockLevel = *in.MinStockLevel
		}
		if in.CostPerUnit != nil {
			ing.CostPerUnit = *in.CostPerUnit
		}
		if in.ExpiryDate != nil {
			ing.ExpiryDate = in.ExpiryDate
		}
		if in.SupplierID != nil {
			ing.SupplierID = *in.SupplierID
		}
		if in.Location != nil {
			ing.Location = *in.Location
		}
		if in.Active != nil {
			ing.Active = *in.Active
		}
		ing.UpdatedAt = time.Now()

		if err := ingredientRepo.Update(ing); err != nil {
			return err
		}
		updated = ing
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := stock.ToIngredientResponse(updated)
	return &resp, nil
}

// Delete borra el ingrediente solo si ninguna receta lo usa; si está
// referenciado devuelve ErrIngredientInUse con el conteo intacto.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ing == nil || ing.CompanyID != companyID {
		return domain.ErrNotFound
	}
	inUse, err := uc.recipeRepo.CountByIngredient(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrIngredientInUse
	}
	return uc.ingredientRepo.Delete(id)
}

// GetByID obtiene un ingrediente de la empresa.
func (uc *UseCase) GetByID(_ context.Context, companyID, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil || ing.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	resp := stock.ToIngredientResponse(ing)
	return &resp, nil
}

// List lista ingredientes de la empresa con filtros de búsqueda.
func (uc *UseCase) List(_ context.Context, companyID string, filter repository.IngredientFilter) (*dto.IngredientListResponse, error) {
	list, err := uc.ingredientRepo.List(companyID, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.IngredientListResponse{Ingredients: make([]dto.IngredientResponse, 0, len(list))}
	for _, ing := range list {
		out.Ingredients = append(out.Ingredients, stock.ToIngredientResponse(ing))
	}
	out.Total = len(out.Ingredients)
	return out, nil
}

// ListExpiringSoon lista ingredientes activos cuyo vencimiento cae dentro del
// horizonte configurado.
func (uc *UseCase) ListExpiringSoon(_ context.Context, companyID string) (*dto.IngredientListResponse, error) {
	list, err := uc.ingredientRepo.List(companyID, repository.IngredientFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := &dto.IngredientListResponse{Ingredients: []dto.IngredientResponse{}}
	for _, ing := range list {
		if ing.IsExpiringSoon(now, uc.expiryHorizon) {
			out.Ingredients = append(out.Ingredients, stock.ToIngredientResponse(ing))
		}
	}
	out.Total = len(out.Ingredients)
	return out, nil
}
