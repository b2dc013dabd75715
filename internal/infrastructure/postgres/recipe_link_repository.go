package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.RecipeLinkRepository = (*RecipeLinkRepo)(nil)

const recipeLinkColumns = `id, product_id, ingredient_id, quantity, unit, is_optional, notes, created_at, updated_at`

// RecipeLinkRepo implementación del grafo de recetas sobre PostgreSQL (usable con pool o tx).
type RecipeLinkRepo struct {
	q Querier
}

// NewRecipeLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeLinkRepository(q Querier) *RecipeLinkRepo {
	return &RecipeLinkRepo{q: q}
}

// Create persiste un link producto-ingrediente. El índice único sobre
// (product_id, ingredient_id) convierte el duplicado en domain.ErrDuplicate.
func (r *RecipeLinkRepo) Create(link *entity.RecipeLink) error {
	query := `
		INSERT INTO recipe_links (` + recipeLinkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		link.ID, link.ProductID, link.IngredientID, link.Quantity, link.Unit,
		link.IsOptional, link.Notes, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe link: %w", err)
	}
	return nil
}

func scanRecipeLink(row pgx.Row) (*entity.RecipeLink, error) {
	var l entity.RecipeLink
	err := row.Scan(
		&l.ID, &l.ProductID, &l.IngredientID, &l.Quantity, &l.Unit,
		&l.IsOptional, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID obtiene un link por ID.
func (r *RecipeLinkRepo) GetByID(id string) (*entity.RecipeLink, error) {
	query := `SELECT ` + recipeLinkColumns + ` FROM recipe_links WHERE id = $1`
	link, err := scanRecipeLink(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe link: %w", err)
	}
	return link, nil
}

// Update modifica cantidad, unidad, opcionalidad y notas.
func (r *RecipeLinkRepo) Update(link *entity.RecipeLink) error {
	query := `
		UPDATE recipe_links
		SET quantity = $2, unit = $3, is_optional = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		link.ID, link.Quantity, link.Unit, link.IsOptional, link.Notes, link.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe link: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el link.
func (r *RecipeLinkRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM recipe_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe link: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeLinkRepo) list(query string, arg any) ([]*entity.RecipeLink, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list recipe links: %w", err)
	}
	defer rows.Close()

	var list []*entity.RecipeLink
	for rows.Next() {
		link, err := scanRecipeLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe link: %w", err)
		}
		list = append(list, link)
	}
	return list, rows.Err()
}

// ListByProduct lista la receta de un producto.
func (r *RecipeLinkRepo) ListByProduct(productID string) ([]*entity.RecipeLink, error) {
	query := `SELECT ` + recipeLinkColumns + ` FROM recipe_links WHERE product_id = $1 ORDER BY created_at ASC`
	return r.list(query, productID)
}

// ListByIngredient lista los productos que usan un ingrediente.
func (r *RecipeLinkRepo) ListByIngredient(ingredientID string) ([]*entity.RecipeLink, error) {
	query := `SELECT ` + recipeLinkColumns + ` FROM recipe_links WHERE ingredient_id = $1 ORDER BY created_at ASC`
	return r.list(query, ingredientID)
}

// CountByIngredient cuenta cuántas recetas referencian el ingrediente.
func (r *RecipeLinkRepo) CountByIngredient(ingredientID string) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM recipe_links WHERE ingredient_id = $1`, ingredientID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count recipe links: %w", err)
	}
	return total, nil
}
