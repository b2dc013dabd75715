package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// notifyTimeout tope para el despacho best-effort de alertas de stock bajo.
const notifyTimeout = 5 * time.Second

// ReconcileUseCase es el motor de conciliación de stock: al completarse una
// orden recorre sus líneas, resuelve las recetas, agrega el consumo por
// ingrediente y aplica los descuentos + registros del log como una sola
// transacción. Las lecturas (CheckAvailability) usan repos fuera de tx.
type ReconcileUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	recipeRepo     repository.RecipeLinkRepository
	ingredientRepo repository.IngredientRepository
	sink           NotificationSink
	log            *logger.Logger
}

// NewReconcileUseCase construye el motor.
func NewReconcileUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeLinkRepository,
	ingredientRepo repository.IngredientRepository,
	sink NotificationSink,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		sink:           sink,
		log:            log,
	}
}

// CheckAvailability verifica, sin escribir nada, si hay stock para preparar
// los items dados. Los links opcionales nunca bloquean. Por producto se corta
// en la primera insuficiencia; el chequeo es consultivo: otra escritura puede
// invalidarlo antes de conciliar.
func (uc *ReconcileUseCase) CheckAvailability(
	ctx context.Context,
	companyID string,
	items []dto.OrderItemInput,
) (*dto.AvailabilityResponse, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var unavailable []dto.UnavailableItem
	for _, item := range items {
		if !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			unavailable = append(unavailable, dto.UnavailableItem{
				ProductID: item.ProductID,
				Name:      "desconocido",
				Reason:    fmt.Sprintf("producto no encontrado: %s", item.ProductID),
			})
			continue
		}
		links, err := uc.recipeRepo.ListByProduct(product.ID)
		if err != nil {
			return nil, err
		}
		// Un producto sin receta registrada no consume stock
		for _, link := range links {
			if link.IsOptional {
				continue
			}
			ing, err := uc.ingredientRepo.GetByID(link.IngredientID)
			if err != nil {
				return nil, err
			}
			if ing == nil {
				continue
			}
			required := link.Quantity.Mul(item.Quantity)
			if ing.CurrentStock.LessThan(required) {
				unavailable = append(unavailable, dto.UnavailableItem{
					ProductID: product.ID,
					Name:      product.Name,
					Reason: fmt.Sprintf("stock insuficiente de %s (disponible: %s, requerido: %s)",
						ing.Name, ing.CurrentStock.String(), required.String()),
				})
				break
			}
		}
	}

	return &dto.AvailabilityResponse{
		Available:        len(unavailable) == 0,
		UnavailableItems: unavailable,
	}, nil
}

// requirement consumo agregado de un ingrediente en una orden.
type requirement struct {
	ingredientID string
	quantity     decimal.Decimal
	optional     bool // true solo si todos los links que aportaron son opcionales
}

// ReconcileCompletedOrder descuenta el stock de una orden completada como una
// sola unidad atómica: o se descuentan todos los ingredientes y se escriben
// todas las transacciones, o ninguno. El consumo se agrega por ingrediente (una
// transacción `out` por ingrediente y orden, aunque varias líneas lo compartan).
// Una segunda conciliación de la misma orden falla con ErrOrderReconciled.
// Devuelve los ingredientes que quedaron en o bajo su mínimo; la notificación
// al sink se despacha después del commit y sus fallas solo se loguean.
func (uc *ReconcileUseCase) ReconcileCompletedOrder(
	ctx context.Context,
	companyID, orderID, actorID string,
) (*dto.ReconcileResponse, error) {
	if orderID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var lowStock []LowStockIngredient
	err := uc.txRunner.Run(ctx, func(
		ingredientRepo repository.IngredientRepository,
		txnRepo repository.StockTransactionRepository,
		recipeRepo repository.RecipeLinkRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}

		// Candado de idempotencia: una orden ya descontada no se vuelve a descontar
		already, err := txnRepo.ExistsForOrder(orderID)
		if err != nil {
			return err
		}
		if already {
			return domain.ErrOrderReconciled
		}

		reqs, err := uc.aggregateConsumption(recipeRepo, order)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, req := range reqs {
			ing, err := ingredientRepo.GetForUpdate(req.ingredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				// Receta apuntando a un ingrediente borrado: se omite, igual que el
				// resto de líneas sin receta
				uc.log.Warn().
					Str("order_id", orderID).
					Str("ingredient_id", req.ingredientID).
					Msg("ingrediente de la receta no existe, se omite en la conciliación")
				continue
			}

			previous := ing.CurrentStock
			newStock := previous.Sub(req.quantity)
			if newStock.IsNegative() {
				if req.optional {
					// Un ingrediente opcional sin stock no se consume ni bloquea la orden
					continue
				}
				return fmt.Errorf("ingrediente %s (disponible: %s, requerido: %s): %w",
					ing.Name, previous.String(), req.quantity.String(), domain.ErrInsufficientStock)
			}

			if err := ingredientRepo.UpdateStock(ing.ID, newStock); err != nil {
				return err
			}
			txn := &entity.StockTransaction{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				IngredientID:  ing.ID,
				Type:          entity.TxTypeOut,
				Quantity:      req.quantity,
				PreviousStock: previous,
				NewStock:      newStock,
				OrderID:       orderID,
				Notes:         fmt.Sprintf("orden #%s completada", orderID),
				PerformedBy:   actorID,
				CreatedAt:     now,
			}
			if err := txnRepo.Create(txn); err != nil {
				return err
			}

			if newStock.LessThanOrEqual(ing.MinStockLevel) {
				lowStock = append(lowStock, LowStockIngredient{
					Name:         ing.Name,
					CurrentStock: newStock,
					MinimumStock: ing.MinStockLevel,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(lowStock) > 0 {
		uc.dispatchLowStockAlert(companyID, orderID, lowStock)
	}

	out := &dto.ReconcileResponse{LowStockIngredients: []dto.LowStockIngredientDTO{}}
	for _, ls := range lowStock {
		out.LowStockIngredients = append(out.LowStockIngredients, dto.LowStockIngredientDTO{
			Name:         ls.Name,
			CurrentStock: ls.CurrentStock,
			MinimumStock: ls.MinimumStock,
		})
	}
	return out, nil
}

// aggregateConsumption suma el consumo requerido por ingrediente a través de
// todas las líneas de la orden, preservando el orden de primera aparición para
// que los bloqueos de fila se tomen en orden determinista.
func (uc *ReconcileUseCase) aggregateConsumption(
	recipeRepo repository.RecipeLinkRepository,
	order *entity.Order,
) ([]*requirement, error) {
	byIngredient := make(map[string]*requirement)
	var ordered []*requirement

	for _, item := range order.Items {
		links, err := recipeRepo.ListByProduct(item.ProductID)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			required := link.Quantity.Mul(item.Quantity)
			if !required.IsPositive() {
				continue
			}
			req, ok := byIngredient[link.IngredientID]
			if !ok {
				req = &requirement{ingredientID: link.IngredientID, quantity: decimal.Zero, optional: true}
				byIngredient[link.IngredientID] = req
				ordered = append(ordered, req)
			}
			req.quantity = req.quantity.Add(required)
			if !link.IsOptional {
				req.optional = false
			}
		}
	}
	return ordered, nil
}

// dispatchLowStockAlert envía la alerta en segundo plano. Nunca bloquea la
// respuesta ni participa del commit; un error del sink se loguea y se descarta.
func (uc *ReconcileUseCase) dispatchLowStockAlert(companyID, orderID string, ingredients []LowStockIngredient) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.sink.NotifyLowStock(ctx, companyID, ingredients); err != nil {
			uc.log.Error().Err(err).
				Str("order_id", orderID).
				Int("ingredients", len(ingredients)).
				Msg("no se pudo enviar la alerta de stock bajo")
		}
	}()
}
