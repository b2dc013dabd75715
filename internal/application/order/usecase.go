package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// Reconciler descuenta el stock de una orden completada. Lo implementa el
// motor de conciliación (stock.ReconcileUseCase).
type Reconciler interface {
	ReconcileCompletedOrder(ctx context.Context, companyID, orderID, actorID string) (*dto.ReconcileResponse, error)
}

// UseCase ciclo de vida de órdenes. El paso a completed descuenta stock ANTES
// de persistir el estado: si el descuento falla, la orden queda como estaba.
type UseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	reconciler  Reconciler
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	reconciler Reconciler,
) *UseCase {
	return &UseCase{orderRepo: orderRepo, productRepo: productRepo, reconciler: reconciler}
}

// Create crea la orden resolviendo el precio de cada producto y calculando el total.
func (uc *UseCase) Create(ctx context.Context, companyID, staffID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		TableID:   in.TableID,
		Status:    entity.OrderStatusPending,
		StatusHistory: []entity.StatusChange{
			{Status: entity.OrderStatusPending, UserID: staffID, Timestamp: now},
		},
		StaffID:   staffID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range in.Items {
		if !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		o.Items = append(o.Items, entity.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Notes:     item.Notes,
		})
	}
	o.TotalAmount = o.CalculateTotal()

	if err := uc.orderRepo.Create(o); err != nil {
		return nil, err
	}
	resp := toResponse(o)
	return &resp, nil
}

// GetByID obtiene una orden de la empresa.
func (uc *UseCase) GetByID(_ context.Context, companyID, id string) (*dto.OrderResponse, error) {
	o, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(o)
	return &resp, nil
}

// List lista órdenes de la empresa, opcionalmente por estado.
func (uc *UseCase) List(_ context.Context, companyID, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByCompany(companyID, status, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, toResponse(o))
	}
	out.Total = len(out.Orders)
	return out, nil
}

// UpdateStatus cambia el estado de la orden. Ordenes completed/cancelled son
// inmutables (ErrOrderNotEditable). El paso a completed ejecuta primero la
// conciliación de stock; solo si esta confirma se persiste el nuevo estado.
// Un fallo de stock (p. ej. ErrInsufficientStock) deja la orden intacta. Si el
// motor indica que la orden ya fue descontada (ErrOrderReconciled) se persiste
// igual el estado: así un reintento tras un fallo de escritura no queda atascado.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, orderID, actorID, newStatus string) (*dto.UpdateOrderStatusResponse, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.getOwned(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsClosed() {
		return nil, domain.ErrOrderNotEditable
	}
	if o.Status == newStatus {
		resp := toResponse(o)
		return &dto.UpdateOrderStatusResponse{Order: resp}, nil
	}

	var lowStock []dto.LowStockIngredientDTO
	if newStatus == entity.OrderStatusCompleted {
		result, err := uc.reconciler.ReconcileCompletedOrder(ctx, companyID, orderID, actorID)
		switch {
		case err == nil:
			lowStock = result.LowStockIngredients
		case errors.Is(err, domain.ErrOrderReconciled):
			// El stock ya fue descontado en un intento anterior cuyo persist de
			// estado falló: seguimos adelante y solo grabamos el estado. Sin esto
			// la orden quedaría imposible de completar.
		default:
			return nil, err
		}
	}

	o.Status = newStatus
	o.StatusHistory = append(o.StatusHistory, entity.StatusChange{
		Status:    newStatus,
		UserID:    actorID,
		Timestamp: time.Now(),
	})
	o.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(o); err != nil {
		return nil, err
	}

	resp := toResponse(o)
	return &dto.UpdateOrderStatusResponse{Order: resp, LowStockIngredients: lowStock}, nil
}

func (uc *UseCase) getOwned(companyID, id string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func toResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Notes:     item.Notes,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		TableID:     o.TableID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		StaffID:     o.StaffID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
