package ingredient_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ingredient"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000c3"
	testActorID   = "00000000-0000-0000-0000-0000000000a3"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	ingredients map[string]*entity.Ingredient
	txns        []*entity.StockTransaction
	linksByIng  map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ingredients: make(map[string]*entity.Ingredient),
		linksByIng:  make(map[string]int64),
	}
}

type fakeIngredientRepo struct{ s *fakeStore }

func (r *fakeIngredientRepo) Create(ing *entity.Ingredient) error {
	cp := *ing
	r.s.ingredients[ing.ID] = &cp
	return nil
}

func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.s.ingredients[id]
	if !ok {
		return nil, nil
	}
	cp := *ing
	return &cp, nil
}

func (r *fakeIngredientRepo) GetByName(companyID, name string) (*entity.Ingredient, error) {
	for _, ing := range r.s.ingredients {
		if ing.CompanyID == companyID && strings.EqualFold(ing.Name, name) {
			cp := *ing
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return r.GetByID(id)
}

func (r *fakeIngredientRepo) Update(ing *entity.Ingredient) error {
	if _, ok := r.s.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ing
	r.s.ingredients[ing.ID] = &cp
	return nil
}

func (r *fakeIngredientRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	ing, ok := r.s.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.CurrentStock = newStock
	return nil
}

func (r *fakeIngredientRepo) UpdateCost(id string, cost decimal.Decimal) error {
	ing, ok := r.s.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.CostPerUnit = cost
	return nil
}

func (r *fakeIngredientRepo) List(companyID string, filter repository.IngredientFilter) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range r.s.ingredients {
		if ing.CompanyID != companyID {
			continue
		}
		if filter.OnlyActive && !ing.Active {
			continue
		}
		if filter.Category != "" && ing.Category != filter.Category {
			continue
		}
		if filter.OnlyLowStock && !ing.IsLowStock() {
			continue
		}
		cp := *ing
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeIngredientRepo) Delete(id string) error {
	delete(r.s.ingredients, id)
	return nil
}

type fakeTxnRepo struct{ s *fakeStore }

func (r *fakeTxnRepo) Create(txn *entity.StockTransaction) error {
	cp := *txn
	r.s.txns = append(r.s.txns, &cp)
	return nil
}

func (r *fakeTxnRepo) GetByID(string) (*entity.StockTransaction, error) { return nil, nil }

func (r *fakeTxnRepo) ExistsForOrder(string) (bool, error) { return false, nil }

func (r *fakeTxnRepo) List(string, repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func (r *fakeTxnRepo) Count(string, repository.TransactionFilter) (int64, error) { return 0, nil }

type fakeRecipeRepo struct{ s *fakeStore }

func (r *fakeRecipeRepo) Create(*entity.RecipeLink) error               { return nil }
func (r *fakeRecipeRepo) GetByID(string) (*entity.RecipeLink, error)    { return nil, nil }
func (r *fakeRecipeRepo) Update(*entity.RecipeLink) error               { return nil }
func (r *fakeRecipeRepo) Delete(string) error                           { return nil }
func (r *fakeRecipeRepo) ListByProduct(string) ([]*entity.RecipeLink, error) { return nil, nil }
func (r *fakeRecipeRepo) ListByIngredient(string) ([]*entity.RecipeLink, error) {
	return nil, nil
}
func (r *fakeRecipeRepo) CountByIngredient(id string) (int64, error) { return r.s.linksByIng[id], nil }

type fakeOrderRepo struct{}

func (fakeOrderRepo) Create(*entity.Order) error            { return nil }
func (fakeOrderRepo) GetByID(string) (*entity.Order, error) { return nil, nil }
func (fakeOrderRepo) UpdateStatus(*entity.Order) error      { return nil }
func (fakeOrderRepo) ListByCompany(string, string, int, int) ([]*entity.Order, error) {
	return nil, nil
}

type passthroughTxRunner struct{ s *fakeStore }

func (r *passthroughTxRunner) Run(_ context.Context, fn func(
	repository.IngredientRepository,
	repository.StockTransactionRepository,
	repository.RecipeLinkRepository,
	repository.OrderRepository,
) error) error {
	return fn(&fakeIngredientRepo{s: r.s}, &fakeTxnRepo{s: r.s}, &fakeRecipeRepo{s: r.s}, fakeOrderRepo{})
}

func newUC(s *fakeStore) *ingredient.UseCase {
	return ingredient.NewUseCase(&passthroughTxRunner{s: s}, &fakeIngredientRepo{s: s}, &fakeRecipeRepo{s: s}, 7)
}

func seed(s *fakeStore, name string, current, min float64) *entity.Ingredient {
	ing := &entity.Ingredient{
		ID:            uuid.New().String(),
		CompanyID:     testCompanyID,
		Name:          name,
		Unit:          entity.UnitKilogram,
		Category:      entity.CategoryDryGoods,
		CurrentStock:  decimal.NewFromFloat(current),
		MinStockLevel: decimal.NewFromFloat(min),
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.ingredients[ing.ID] = ing
	return ing
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Alta con stock inicial: ingrediente + transacción `in` con previous_stock 0.
func TestCreate_ConStockInicialSiembraTransaccion(t *testing.T) {
	s := newFakeStore()
	uc := newUC(s)

	resp, err := uc.Create(context.Background(), testCompanyID, testActorID, dto.CreateIngredientRequest{
		Name:         "Harina",
		Unit:         entity.UnitKilogram,
		Category:     entity.CategoryDryGoods,
		InitialStock: decimal.NewFromFloat(25),
		MinStockLevel: decimal.NewFromFloat(5),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, decimal.NewFromFloat(25).Equal(resp.CurrentStock))

	require.Len(t, s.txns, 1, "el stock inicial debe quedar en el log")
	txn := s.txns[0]
	assert.Equal(t, entity.TxTypeIn, txn.Type)
	assert.True(t, txn.PreviousStock.IsZero(), "previous_stock de la siembra es 0")
	assert.True(t, decimal.NewFromFloat(25).Equal(txn.NewStock))
	assert.Equal(t, "carga de stock inicial", txn.Notes)
	assert.Equal(t, testActorID, txn.PerformedBy)
}

// Alta sin stock inicial: no se escribe transacción.
func TestCreate_SinStockInicialNoEscribeLog(t *testing.T) {
	s := newFakeStore()
	uc := newUC(s)

	_, err := uc.Create(context.Background(), testCompanyID, testActorID, dto.CreateIngredientRequest{
		Name:     "Orégano",
		Unit:     entity.UnitGram,
		Category: entity.CategorySpice,
	})
	require.NoError(t, err)
	assert.Empty(t, s.txns)
}

// Nombre duplicado en la misma empresa: ErrDuplicate.
func TestCreate_NombreDuplicado(t *testing.T) {
	s := newFakeStore()
	seed(s, "Harina", 10, 5)
	uc := newUC(s)

	_, err := uc.Create(context.Background(), testCompanyID, testActorID, dto.CreateIngredientRequest{
		Name:     "harina", // case-insensitive
		Unit:     entity.UnitKilogram,
		Category: entity.CategoryDryGoods,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Validaciones de alta.
func TestCreate_EntradasInvalidas(t *testing.T) {
	s := newFakeStore()
	uc := newUC(s)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateIngredientRequest
	}{
		{"sin nombre", dto.CreateIngredientRequest{Unit: entity.UnitKilogram, Category: entity.CategoryMeat}},
		{"unidad inválida", dto.CreateIngredientRequest{Name: "x", Unit: "arroba", Category: entity.CategoryMeat}},
		{"categoría inválida", dto.CreateIngredientRequest{Name: "x", Unit: entity.UnitKilogram, Category: "mineral"}},
		{"stock inicial negativo", dto.CreateIngredientRequest{
			Name: "x", Unit: entity.UnitKilogram, Category: entity.CategoryMeat,
			InitialStock: decimal.NewFromFloat(-1),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, testCompanyID, testActorID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Update con current_stock distinto: el cambio queda como ajuste en el log.
func TestUpdate_CambioDeStockGeneraAjuste(t *testing.T) {
	s := newFakeStore()
	ing := seed(s, "Harina", 10, 5)
	uc := newUC(s)

	target := decimal.NewFromFloat(7)
	resp, err := uc.Update(context.Background(), testCompanyID, testActorID, ing.ID, dto.UpdateIngredientRequest{
		CurrentStock: &target,
	})
	require.NoError(t, err)
	assert.True(t, target.Equal(resp.CurrentStock))

	require.Len(t, s.txns, 1)
	txn := s.txns[0]
	assert.Equal(t, entity.TxTypeAdjust, txn.Type)
	assert.True(t, decimal.NewFromFloat(3).Equal(txn.Quantity), "el ajuste registra |delta|")
	assert.True(t, decimal.NewFromFloat(10).Equal(txn.PreviousStock))
	assert.True(t, target.Equal(txn.NewStock))
}

// Update sin tocar el stock: nada en el log.
func TestUpdate_SinCambioDeStockNoEscribeLog(t *testing.T) {
	s := newFakeStore()
	ing := seed(s, "Harina", 10, 5)
	uc := newUC(s)

	newName := "Harina 000"
	_, err := uc.Update(context.Background(), testCompanyID, testActorID, ing.ID, dto.UpdateIngredientRequest{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Empty(t, s.txns)
	assert.Equal(t, "Harina 000", s.ingredients[ing.ID].Name)
}

// Borrado bloqueado si hay recetas que usan el ingrediente.
func TestDelete_BloqueadoSiEstaEnRecetas(t *testing.T) {
	s := newFakeStore()
	ing := seed(s, "Harina", 10, 5)
	s.linksByIng[ing.ID] = 2
	uc := newUC(s)

	err := uc.Delete(context.Background(), testCompanyID, ing.ID)
	assert.ErrorIs(t, err, domain.ErrIngredientInUse)
	assert.Contains(t, s.ingredients, ing.ID, "el ingrediente debe seguir existiendo")
}

// Borrado permitido sin referencias.
func TestDelete_SinReferencias(t *testing.T) {
	s := newFakeStore()
	ing := seed(s, "Harina", 10, 5)
	uc := newUC(s)

	require.NoError(t, uc.Delete(context.Background(), testCompanyID, ing.ID))
	assert.NotContains(t, s.ingredients, ing.ID)
}

// Acceso cruzado entre empresas: ErrNotFound.
func TestGetByID_OtraEmpresa(t *testing.T) {
	s := newFakeStore()
	ing := seed(s, "Harina", 10, 5)
	uc := newUC(s)

	_, err := uc.GetByID(context.Background(), "otra-empresa", ing.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Próximos a vencer: dentro del horizonte sí, fuera no, sin fecha nunca.
func TestListExpiringSoon_RespetaHorizonte(t *testing.T) {
	s := newFakeStore()
	soon := time.Now().AddDate(0, 0, 3)
	far := time.Now().AddDate(0, 0, 30)
	a := seed(s, "Leche", 5, 1)
	a.ExpiryDate = &soon
	b := seed(s, "Arroz", 5, 1)
	b.ExpiryDate = &far
	seed(s, "Sal", 5, 1) // sin fecha

	uc := newUC(s)
	resp, err := uc.ListExpiringSoon(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, "Leche", resp.Ingredients[0].Name)
}
