package stock_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/stock"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria + TxRunner falso
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda las entidades en memoria. El fakeTxRunner trabaja sobre un
// clon y solo lo vuelca al almacén base si la función termina sin error, de
// modo que un fallo a mitad de conciliación deja el estado original intacto
// (misma semántica de rollback que la transacción real de Postgres).
type memStore struct {
	ingredients  map[string]*entity.Ingredient
	transactions map[string]*entity.StockTransaction
	txOrder      []string // orden de inserción de las transacciones
	recipeLinks  map[string]*entity.RecipeLink
	orders       map[string]*entity.Order
	products     map[string]*entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		ingredients:  make(map[string]*entity.Ingredient),
		transactions: make(map[string]*entity.StockTransaction),
		recipeLinks:  make(map[string]*entity.RecipeLink),
		orders:       make(map[string]*entity.Order),
		products:     make(map[string]*entity.Product),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, ing := range s.ingredients {
		cp := *ing
		c.ingredients[id] = &cp
	}
	for id, txn := range s.transactions {
		cp := *txn
		c.transactions[id] = &cp
	}
	c.txOrder = append(c.txOrder, s.txOrder...)
	for id, link := range s.recipeLinks {
		cp := *link
		c.recipeLinks[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		cp.Items = append([]entity.OrderItem(nil), o.Items...)
		cp.StatusHistory = append([]entity.StatusChange(nil), o.StatusHistory...)
		c.orders[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	return c
}

func (s *memStore) overwriteWith(other *memStore) {
	s.ingredients = other.ingredients
	s.transactions = other.transactions
	s.txOrder = other.txOrder
	s.recipeLinks = other.recipeLinks
	s.orders = other.orders
	s.products = other.products
}

// transactionsOrdered devuelve las transacciones en orden de inserción.
func (s *memStore) transactionsOrdered() []*entity.StockTransaction {
	out := make([]*entity.StockTransaction, 0, len(s.txOrder))
	for _, id := range s.txOrder {
		out = append(out, s.transactions[id])
	}
	return out
}

// fakeTxRunner implementa stock.TxRunner sobre un memStore clonado.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	ingredientRepo repository.IngredientRepository,
	txnRepo repository.StockTransactionRepository,
	recipeRepo repository.RecipeLinkRepository,
	orderRepo repository.OrderRepository,
) error) error {
	work := r.store.clone()
	err := fn(
		&memIngredientRepo{store: work},
		&memTransactionRepo{store: work},
		&memRecipeLinkRepo{store: work},
		&memOrderRepo{store: work},
	)
	if err != nil {
		return err // descarta el clon: rollback
	}
	r.store.overwriteWith(work)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memIngredientRepo struct {
	store *memStore
}

func (r *memIngredientRepo) Create(ing *entity.Ingredient) error {
	cp := *ing
	r.store.ingredients[ing.ID] = &cp
	return nil
}

func (r *memIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	ing, ok := r.store.ingredients[id]
	if !ok {
		return nil, nil
	}
	cp := *ing
	return &cp, nil
}

func (r *memIngredientRepo) GetByName(companyID, name string) (*entity.Ingredient, error) {
	for _, ing := range r.store.ingredients {
		if ing.CompanyID == companyID && strings.EqualFold(ing.Name, name) {
			cp := *ing
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return r.GetByID(id)
}

func (r *memIngredientRepo) Update(ing *entity.Ingredient) error {
	if _, ok := r.store.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ing
	r.store.ingredients[ing.ID] = &cp
	return nil
}

func (r *memIngredientRepo) UpdateStock(id string, newStock decimal.Decimal) error {
	ing, ok := r.store.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.CurrentStock = newStock
	return nil
}

func (r *memIngredientRepo) UpdateCost(id string, costPerUnit decimal.Decimal) error {
	ing, ok := r.store.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.CostPerUnit = costPerUnit
	return nil
}

func (r *memIngredientRepo) List(companyID string, filter repository.IngredientFilter) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range r.store.ingredients {
		if ing.CompanyID != companyID {
			continue
		}
		if filter.Category != "" && ing.Category != filter.Category {
			continue
		}
		if filter.OnlyActive && !ing.Active {
			continue
		}
		if filter.OnlyLowStock && !ing.IsLowStock() {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(ing.Name), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *ing
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memIngredientRepo) Delete(id string) error {
	delete(r.store.ingredients, id)
	return nil
}

type memTransactionRepo struct {
	store *memStore
}

func (r *memTransactionRepo) Create(txn *entity.StockTransaction) error {
	cp := *txn
	r.store.transactions[txn.ID] = &cp
	r.store.txOrder = append(r.store.txOrder, txn.ID)
	return nil
}

func (r *memTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	txn, ok := r.store.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *txn
	return &cp, nil
}

func (r *memTransactionRepo) ExistsForOrder(orderID string) (bool, error) {
	for _, txn := range r.store.transactions {
		if txn.OrderID == orderID && txn.Type == entity.TxTypeOut {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTransactionRepo) matches(companyID string, txn *entity.StockTransaction, f repository.TransactionFilter) bool {
	if txn.CompanyID != companyID {
		return false
	}
	if f.IngredientID != "" && txn.IngredientID != f.IngredientID {
		return false
	}
	if f.Type != "" && txn.Type != f.Type {
		return false
	}
	if f.From != nil && txn.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && txn.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func (r *memTransactionRepo) List(companyID string, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	var all []*entity.StockTransaction
	for _, txn := range r.store.transactionsOrdered() {
		if r.matches(companyID, txn, f) {
			cp := *txn
			all = append(all, &cp)
		}
	}
	// created_at descendente, como la consulta real
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if f.Offset > 0 {
		if f.Offset >= len(all) {
			return nil, nil
		}
		all = all[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, nil
}

func (r *memTransactionRepo) Count(companyID string, f repository.TransactionFilter) (int64, error) {
	var n int64
	for _, txn := range r.store.transactions {
		if r.matches(companyID, txn, f) {
			n++
		}
	}
	return n, nil
}

type memRecipeLinkRepo struct {
	store *memStore
}

func (r *memRecipeLinkRepo) Create(link *entity.RecipeLink) error {
	for _, existing := range r.store.recipeLinks {
		if existing.ProductID == link.ProductID && existing.IngredientID == link.IngredientID {
			return domain.ErrDuplicate
		}
	}
	cp := *link
	r.store.recipeLinks[link.ID] = &cp
	return nil
}

func (r *memRecipeLinkRepo) GetByID(id string) (*entity.RecipeLink, error) {
	link, ok := r.store.recipeLinks[id]
	if !ok {
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

func (r *memRecipeLinkRepo) Update(link *entity.RecipeLink) error {
	if _, ok := r.store.recipeLinks[link.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *link
	r.store.recipeLinks[link.ID] = &cp
	return nil
}

func (r *memRecipeLinkRepo) Delete(id string) error {
	delete(r.store.recipeLinks, id)
	return nil
}

func (r *memRecipeLinkRepo) ListByProduct(productID string) ([]*entity.RecipeLink, error) {
	var out []*entity.RecipeLink
	for _, link := range r.store.recipeLinks {
		if link.ProductID == productID {
			cp := *link
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRecipeLinkRepo) ListByIngredient(ingredientID string) ([]*entity.RecipeLink, error) {
	var out []*entity.RecipeLink
	for _, link := range r.store.recipeLinks {
		if link.IngredientID == ingredientID {
			cp := *link
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRecipeLinkRepo) CountByIngredient(ingredientID string) (int64, error) {
	links, _ := r.ListByIngredient(ingredientID)
	return int64(len(links)), nil
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	cp.StatusHistory = append([]entity.StatusChange(nil), o.StatusHistory...)
	r.store.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	cp.StatusHistory = append([]entity.StatusChange(nil), o.StatusHistory...)
	return &cp, nil
}

func (r *memOrderRepo) UpdateStatus(o *entity.Order) error {
	if _, ok := r.store.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	return r.Create(o)
}

func (r *memOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.store.orders {
		if o.CompanyID != companyID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		cp, _ := r.GetByID(o.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.CompanyID == companyID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.store.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Sink de notificaciones capturador
// ──────────────────────────────────────────────────────────────────────────────

// captureSink guarda las alertas recibidas y permite simular fallas.
type captureSink struct {
	mu        sync.Mutex
	calls     [][]stock.LowStockIngredient
	failWith  error
	delivered chan struct{}
}

func newCaptureSink() *captureSink {
	return &captureSink{delivered: make(chan struct{}, 8)}
}

func (s *captureSink) NotifyLowStock(_ context.Context, _ string, ingredients []stock.LowStockIngredient) error {
	s.mu.Lock()
	s.calls = append(s.calls, append([]stock.LowStockIngredient(nil), ingredients...))
	err := s.failWith
	s.mu.Unlock()
	s.delivered <- struct{}{}
	return err
}

func (s *captureSink) received() [][]stock.LowStockIngredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
