package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// RecipeLinkRepository define el puerto de persistencia para la relación
// producto-ingrediente. La unicidad de (product_id, ingredient_id) la respalda
// un índice único; Create devuelve domain.ErrDuplicate si se viola.
type RecipeLinkRepository interface {
	Create(link *entity.RecipeLink) error
	GetByID(id string) (*entity.RecipeLink, error)
	Update(link *entity.RecipeLink) error
	Delete(id string) error
	ListByProduct(productID string) ([]*entity.RecipeLink, error)
	ListByIngredient(ingredientID string) ([]*entity.RecipeLink, error)
	// CountByIngredient se usa como análisis de impacto antes de borrar un ingrediente.
	CountByIngredient(ingredientID string) (int64, error)
}
