package recipe

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// UseCase administra el grafo de recetas (links producto-ingrediente).
// Los links se crean y borran de forma independiente a las órdenes; el motor
// de conciliación solo los lee.
type UseCase struct {
	recipeRepo     repository.RecipeLinkRepository
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	recipeRepo repository.RecipeLinkRepository,
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
) *UseCase {
	return &UseCase{
		recipeRepo:     recipeRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
	}
}

// Link crea la relación producto-ingrediente. Falla con ErrNotFound si alguna
// de las dos entidades no existe en la empresa y con ErrDuplicate si el par ya
// está vinculado (el índice único de la tabla lo respalda ante carreras).
func (uc *UseCase) Link(ctx context.Context, companyID string, in dto.CreateRecipeLinkRequest) (*dto.RecipeLinkResponse, error) {
	if in.ProductID == "" || in.IngredientID == "" || !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	ing, err := uc.ingredientRepo.GetByID(in.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil || ing.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	link := &entity.RecipeLink{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		IsOptional:   in.IsOptional,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.recipeRepo.Create(link); err != nil {
		return nil, err
	}
	resp := toResponse(link)
	resp.ProductName = product.Name
	resp.IngredientName = ing.Name
	return &resp, nil
}

// Update modifica cantidad, unidad, opcionalidad o notas de un link.
func (uc *UseCase) Update(ctx context.Context, companyID, linkID string, in dto.UpdateRecipeLinkRequest) (*dto.RecipeLinkResponse, error) {
	if in.Unit != nil && !entity.ValidUnit(*in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	link, err := uc.getOwned(companyID, linkID)
	if err != nil {
		return nil, err
	}

	if in.Quantity != nil {
		link.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		link.Unit = *in.Unit
	}
	if in.IsOptional != nil {
		link.IsOptional = *in.IsOptional
	}
	if in.Notes != nil {
		link.Notes = *in.Notes
	}
	link.UpdatedAt = time.Now()

	if err := uc.recipeRepo.Update(link); err != nil {
		return nil, err
	}
	resp := toResponse(link)
	return &resp, nil
}

// Unlink borra el link; ErrNotFound si no existe.
func (uc *UseCase) Unlink(ctx context.Context, companyID, linkID string) error {
	if _, err := uc.getOwned(companyID, linkID); err != nil {
		return err
	}
	return uc.recipeRepo.Delete(linkID)
}

// IngredientsForProduct lista los ingredientes que consume un producto con
// su cantidad por unidad. Un producto sin receta devuelve lista vacía.
func (uc *UseCase) IngredientsForProduct(ctx context.Context, companyID, productID string) (*dto.RecipeLinkListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	links, err := uc.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := &dto.RecipeLinkListResponse{Links: make([]dto.RecipeLinkResponse, 0, len(links))}
	for _, link := range links {
		resp := toResponse(link)
		resp.ProductName = product.Name
		if ing, err := uc.ingredientRepo.GetByID(link.IngredientID); err == nil && ing != nil {
			resp.IngredientName = ing.Name
		}
		out.Links = append(out.Links, resp)
	}
	out.Total = len(out.Links)
	return out, nil
}

// ProductsForIngredient lista los productos que usan un ingrediente
// (análisis de impacto antes de borrarlo).
func (uc *UseCase) ProductsForIngredient(ctx context.Context, companyID, ingredientID string) (*dto.RecipeLinkListResponse, error) {
	ing, err := uc.ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil || ing.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	links, err := uc.recipeRepo.ListByIngredient(ingredientID)
	if err != nil {
		return nil, err
	}
	out := &dto.RecipeLinkListResponse{Links: make([]dto.RecipeLinkResponse, 0, len(links))}
	for _, link := range links {
		resp := toResponse(link)
		resp.IngredientName = ing.Name
		if product, err := uc.productRepo.GetByID(link.ProductID); err == nil && product != nil {
			resp.ProductName = product.Name
		}
		out.Links = append(out.Links, resp)
	}
	out.Total = len(out.Links)
	return out, nil
}

// getOwned obtiene el link y valida que producto e ingrediente pertenezcan a la empresa.
func (uc *UseCase) getOwned(companyID, linkID string) (*entity.RecipeLink, error) {
	link, err := uc.recipeRepo.GetByID(linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(link.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return link, nil
}

func toResponse(link *entity.RecipeLink) dto.RecipeLinkResponse {
	return dto.RecipeLinkResponse{
		ID:           link.ID,
		ProductID:    link.ProductID,
		IngredientID: link.IngredientID,
		Quantity:     link.Quantity,
		Unit:         link.Unit,
		IsOptional:   link.IsOptional,
		Notes:        link.Notes,
		CreatedAt:    link.CreatedAt,
	}
}
