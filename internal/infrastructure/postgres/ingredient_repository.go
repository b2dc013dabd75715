package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientColumns = `id, company_id, name, unit, current_stock, min_stock_level, cost_per_unit, category, expiry_date, supplier_id, location, active, created_at, updated_at`

// IngredientRepo implementación del puerto IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	supplierID := (*string)(nil)
	if ing.SupplierID != "" {
		supplierID = &ing.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.CompanyID, ing.Name, ing.Unit, ing.CurrentStock, ing.MinStockLevel,
		ing.CostPerUnit, ing.Category, ing.ExpiryDate, supplierID, ing.Location,
		ing.Active, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepo) scanOne(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	var supplierID *string
	err := row.Scan(
		&ing.ID, &ing.CompanyID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.MinStockLevel,
		&ing.CostPerUnit, &ing.Category, &ing.ExpiryDate, &supplierID, &ing.Location,
		&ing.Active, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if supplierID != nil {
		ing.SupplierID = *supplierID
	}
	return &ing, nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	ing, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// GetByName obtiene un ingrediente por empresa y nombre (case-insensitive).
func (r *IngredientRepo) GetByName(companyID, name string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE company_id = $1 AND lower(name) = lower($2)`
	ing, err := r.scanOne(r.q.QueryRow(context.Background(), query, companyID, name))
	if err != nil {
		return nil, fmt.Errorf("get ingredient by name: %w", err)
	}
	return ing, nil
}

// GetForUpdate obtiene el ingrediente y bloquea la fila (SELECT FOR UPDATE).
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 FOR UPDATE`
	ing, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get ingredient for update: %w", err)
	}
	return ing, nil
}

// Update actualiza los campos descriptivos y el stock/costo vigentes.
func (r *IngredientRepo) Update(ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, unit = $3, current_stock = $4, min_stock_level = $5, cost_per_unit = $6,
		    category = $7, expiry_date = $8, supplier_id = $9, location = $10, active = $11, updated_at = $12
		WHERE id = $1`
	supplierID := (*string)(nil)
	if ing.SupplierID != "" {
		supplierID = &ing.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.Name, ing.Unit, ing.CurrentStock, ing.MinStockLevel, ing.CostPerUnit,
		ing.Category, ing.ExpiryDate, supplierID, ing.Location, ing.Active, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo stock vigente. Solo lo invocan los movimientos
// del libro de stock dentro de una transacción.
func (r *IngredientRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	query := `UPDATE ingredients SET current_stock = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, newStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza el costo por unidad (entradas de compra).
func (r *IngredientRepo) UpdateCost(id string, costPerUnit decimal.Decimal) error {
	query := `UPDATE ingredients SET cost_per_unit = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, costPerUnit)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ingredientes de una empresa aplicando los filtros.
func (r *IngredientRepo) List(companyID string, filter repository.IngredientFilter) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.OnlyActive {
		query += " AND active = true"
	}
	if filter.OnlyLowStock {
		query += " AND current_stock <= min_stock_level"
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	query += " ORDER BY name ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Ingredient
	for rows.Next() {
		var ing entity.Ingredient
		var supplierID *string
		if err := rows.Scan(
			&ing.ID, &ing.CompanyID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.MinStockLevel,
			&ing.CostPerUnit, &ing.Category, &ing.ExpiryDate, &supplierID, &ing.Location,
			&ing.Active, &ing.CreatedAt, &ing.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		if supplierID != nil {
			ing.SupplierID = *supplierID
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}

// Delete borra el ingrediente. La regla de negocio (sin recetas que lo usen)
// vive en el caso de uso; la FK de recipe_links la respalda ante carreras.
func (r *IngredientRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
