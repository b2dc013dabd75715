package recipe_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/recipe"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

const testCompanyID = "00000000-0000-0000-0000-0000000000c4"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	links       map[string]*entity.RecipeLink
	products    map[string]*entity.Product
	ingredients map[string]*entity.Ingredient
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		links:       make(map[string]*entity.RecipeLink),
		products:    make(map[string]*entity.Product),
		ingredients: make(map[string]*entity.Ingredient),
	}
}

type fakeRecipeRepo struct{ s *fakeStore }

func (r *fakeRecipeRepo) Create(link *entity.RecipeLink) error {
	for _, existing := range r.s.links {
		if existing.ProductID == link.ProductID && existing.IngredientID == link.IngredientID {
			return domain.ErrDuplicate
		}
	}
	cp := *link
	r.s.links[link.ID] = &cp
	return nil
}

func (r *fakeRecipeRepo) GetByID(id string) (*entity.RecipeLink, error) {
	link, ok := r.s.links[id]
	if !ok {
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

func (r *fakeRecipeRepo) Update(link *entity.RecipeLink) error {
	if _, ok := r.s.links[link.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *link
	r.s.links[link.ID] = &cp
	return nil
}

func (r *fakeRecipeRepo) Delete(id string) error {
	delete(r.s.links, id)
	return nil
}

func (r *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeLink, error) {
	var out []*entity.RecipeLink
	for _, link := range r.s.links {
		if link.ProductID == productID {
			cp := *link
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRecipeRepo) ListByIngredient(ingredientID string) ([]*entity.RecipeLink, error) {
	var out []*entity.RecipeLink
	for _, link := range r.s.links {
		if link.IngredientID == ingredientID {
			cp := *link
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRecipeRepo) CountByIngredient(ingredientID string) (int64, error) {
	links, _ := r.ListByIngredient(ingredientID)
	return int64(len(links)), nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndName(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeIngredientGetter struct{ s *fakeStore }

func (r *fakeIngredientGetter) Create(*entity.Ingredient) error { return nil }

func (r *fakeIngredientGetter) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.s.ingredients[id]
	if !ok {
		return nil, nil
	}
	cp := *ing
	return &cp, nil
}

func (r *fakeIngredientGetter) GetByName(string, string) (*entity.Ingredient, error) {
	return nil, nil
}
func (r *fakeIngredientGetter) GetForUpdate(id string) (*entity.Ingredient, error) {
	return r.GetByID(id)
}
func (r *fakeIngredientGetter) Update(*entity.Ingredient) error                   { return nil }
func (r *fakeIngredientGetter) UpdateStock(string, decimal.Decimal) error         { return nil }
func (r *fakeIngredientGetter) UpdateCost(string, decimal.Decimal) error          { return nil }
func (r *fakeIngredientGetter) List(string, repository.IngredientFilter) ([]*entity.Ingredient, error) {
	return nil, nil
}
func (r *fakeIngredientGetter) Delete(string) error { return nil }

func newUC(s *fakeStore) *recipe.UseCase {
	return recipe.NewUseCase(&fakeRecipeRepo{s: s}, &fakeProductRepo{s: s}, &fakeIngredientGetter{s: s})
}

func seedProduct(s *fakeStore, name string) *entity.Product {
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: testCompanyID,
		Name:      name,
		Price:     decimal.NewFromFloat(10),
		Active:    true,
		CreatedAt: time.Now(),
	}
	s.products[p.ID] = p
	return p
}

func seedIngredient(s *fakeStore, name string) *entity.Ingredient {
	ing := &entity.Ingredient{
		ID:        uuid.New().String(),
		CompanyID: testCompanyID,
		Name:      name,
		Unit:      entity.UnitKilogram,
		Category:  entity.CategoryDryGoods,
		Active:    true,
	}
	s.ingredients[ing.ID] = ing
	return ing
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Link válido: crea la relación y resuelve nombres.
func TestLink_CreaRelacion(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	flour := seedIngredient(s, "Harina")
	uc := newUC(s)

	resp, err := uc.Link(context.Background(), testCompanyID, dto.CreateRecipeLinkRequest{
		ProductID:    pizza.ID,
		IngredientID: flour.ID,
		Quantity:     decimal.NewFromFloat(0.25),
		Unit:         entity.UnitKilogram,
	})
	require.NoError(t, err)
	assert.Equal(t, "Pizza", resp.ProductName)
	assert.Equal(t, "Harina", resp.IngredientName)
	assert.Len(t, s.links, 1)
}

// Par (producto, ingrediente) duplicado: ErrDuplicate.
func TestLink_ParDuplicado(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	flour := seedIngredient(s, "Harina")
	uc := newUC(s)
	ctx := context.Background()

	in := dto.CreateRecipeLinkRequest{
		ProductID:    pizza.ID,
		IngredientID: flour.ID,
		Quantity:     decimal.NewFromFloat(0.25),
		Unit:         entity.UnitKilogram,
	}
	_, err := uc.Link(ctx, testCompanyID, in)
	require.NoError(t, err)
	_, err = uc.Link(ctx, testCompanyID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Producto o ingrediente inexistente (o de otra empresa): ErrNotFound.
func TestLink_EntidadesInexistentes(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	flour := seedIngredient(s, "Harina")
	uc := newUC(s)
	ctx := context.Background()

	_, err := uc.Link(ctx, testCompanyID, dto.CreateRecipeLinkRequest{
		ProductID: "fantasma", IngredientID: flour.ID,
		Quantity: decimal.NewFromFloat(1), Unit: entity.UnitKilogram,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Link(ctx, testCompanyID, dto.CreateRecipeLinkRequest{
		ProductID: pizza.ID, IngredientID: "fantasma",
		Quantity: decimal.NewFromFloat(1), Unit: entity.UnitKilogram,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Link(ctx, "otra-empresa", dto.CreateRecipeLinkRequest{
		ProductID: pizza.ID, IngredientID: flour.ID,
		Quantity: decimal.NewFromFloat(1), Unit: entity.UnitKilogram,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Update modifica cantidad y opcionalidad.
func TestUpdate_ModificaCantidad(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	flour := seedIngredient(s, "Harina")
	uc := newUC(s)
	ctx := context.Background()

	created, err := uc.Link(ctx, testCompanyID, dto.CreateRecipeLinkRequest{
		ProductID: pizza.ID, IngredientID: flour.ID,
		Quantity: decimal.NewFromFloat(0.25), Unit: entity.UnitKilogram,
	})
	require.NoError(t, err)

	q := decimal.NewFromFloat(0.3)
	optional := true
	resp, err := uc.Update(ctx, testCompanyID, created.ID, dto.UpdateRecipeLinkRequest{
		Quantity: &q, IsOptional: &optional,
	})
	require.NoError(t, err)
	assert.True(t, q.Equal(resp.Quantity))
	assert.True(t, resp.IsOptional)
	assert.True(t, s.links[created.ID].IsOptional)
}

// Unlink borra el link; repetirlo devuelve ErrNotFound.
func TestUnlink_BorraYLuegoNotFound(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	flour := seedIngredient(s, "Harina")
	uc := newUC(s)
	ctx := context.Background()

	created, err := uc.Link(ctx, testCompanyID, dto.CreateRecipeLinkRequest{
		ProductID: pizza.ID, IngredientID: flour.ID,
		Quantity: decimal.NewFromFloat(0.25), Unit: entity.UnitKilogram,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Unlink(ctx, testCompanyID, created.ID))
	assert.Empty(t, s.links)
	assert.ErrorIs(t, uc.Unlink(ctx, testCompanyID, created.ID), domain.ErrNotFound)
}

// Receta de un producto: lista con nombres resueltos; sin receta, lista vacía.
func TestIngredientsForProduct(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	flour := seedIngredient(s, "Harina")
	cheese := seedIngredient(s, "Queso")
	uc := newUC(s)
	ctx := context.Background()

	for _, ing := range []*entity.Ingredient{flour, cheese} {
		_, err := uc.Link(ctx, testCompanyID, dto.CreateRecipeLinkRequest{
			ProductID: pizza.ID, IngredientID: ing.ID,
			Quantity: decimal.NewFromFloat(0.2), Unit: entity.UnitKilogram,
		})
		require.NoError(t, err)
	}

	resp, err := uc.IngredientsForProduct(ctx, testCompanyID, pizza.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	for _, link := range resp.Links {
		assert.NotEmpty(t, link.IngredientName, "los nombres de ingredientes deben resolverse")
	}

	empty := seedProduct(s, "Gaseosa")
	resp, err = uc.IngredientsForProduct(ctx, testCompanyID, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, resp.Total, "un producto sin receta devuelve lista vacía, no error")
}

// Análisis de impacto: productos que usan un ingrediente.
func TestProductsForIngredient(t *testing.T) {
	s := newFakeStore()
	pizza := seedProduct(s, "Pizza")
	lasagna := seedProduct(s, "Lasaña")
	cheese := seedIngredient(s, "Queso")
	uc := newUC(s)
	ctx := context.Background()

	for _, p := range []*entity.Product{pizza, lasagna} {
		_, err := uc.Link(ctx, testCompanyID, dto.CreateRecipeLinkRequest{
			ProductID: p.ID, IngredientID: cheese.ID,
			Quantity: decimal.NewFromFloat(0.3), Unit: entity.UnitKilogram,
		})
		require.NoError(t, err)
	}

	resp, err := uc.ProductsForIngredient(ctx, testCompanyID, cheese.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	names := []string{resp.Links[0].ProductName, resp.Links[1].ProductName}
	assert.ElementsMatch(t, []string{"Pizza", "Lasaña"}, names)
}
