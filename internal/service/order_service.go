package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/cache"
	"tillpoint/pkg/logger"
)

// Request/response structs

type CreateOrderRequest struct {
	Items         []CreateOrderItemRequest `json:"items"`
	PaymentMethod string                   `json:"payment_method"`
	Notes         string                   `json:"notes"`
}

// CreateOrderItemRequest carries the caller-supplied snapshot for one line.
// Name and price are trusted as given and recorded verbatim; totals are
// computed from them, not re-fetched from the catalog. This enables
// point-in-time pricing and discounts.
type CreateOrderItemRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, ownerID string, req CreateOrderRequest) (*models.Order, error)
	GetAllOrders(ownerID string) ([]*models.Order, error)
	GetTodayOrders(ownerID string) ([]*models.Order, error)
	GetOrderByID(ownerID, id string) (*models.Order, error)
	CancelOrder(ctx context.Context, ownerID, id string) error
}

// OrderService is the order transaction engine: it validates requests,
// computes totals and stock movements, and drives the transactional
// persistence of orders together with their inventory debits.
type OrderService struct {
	orderRepo   repositories.OrderRepositoryInterface
	productRepo repositories.ProductRepositoryInterface
	cache       *cache.Cache
	logger      *logger.Logger
}

func NewOrderService(orderRepo repositories.OrderRepositoryInterface, productRepo repositories.ProductRepositoryInterface, productCache *cache.Cache, log *logger.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cache:       productCache,
		logger:      log.WithComponent("order_service"),
	}
}

// CreateOrder places an order: every line's product must exist for the
// owner, the total is the sum of caller-supplied price × quantity, and the
// order lands already completed. Product raw stock is debited by the line
// quantity unconditionally (even for recipe-tracked products, whose raw
// stock is informational only), and each recipe ingredient is debited by
// quantity required × line quantity. Nothing floors stock at zero.
func (s *OrderService) CreateOrder(ctx context.Context, ownerID string, req CreateOrderRequest) (*models.Order, error) {
	s.logger.Info("Creating new order", "items", len(req.Items))

	if err := s.validateOrderItems(req.Items); err != nil {
		s.logger.Warn("Create failed: invalid data", "error", err)
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		PaymentMethod: paymentMethod,
		PaymentStatus: models.PaymentStatusPaid,
		Status:        models.OrderStatusCompleted,
		Notes:         req.Notes,
		CreatedBy:     ownerID,
		Items:         make([]models.OrderItem, len(req.Items)),
	}

	productMoves := make([]models.ProductStockMove, 0, len(req.Items))
	ingredientMoves := []models.IngredientStockMove{}

	for i, item := range req.Items {
		if _, err := s.productRepo.GetByID(ownerID, item.ID); err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				s.logger.Warn("Create failed: unknown product", "product_id", item.ID)
				return nil, apperr.InvalidInput("item %d: product %s not found", i+1, item.ID)
			}
			return nil, err
		}

		subtotal := item.Price * float64(item.Quantity)
		order.Items[i] = models.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      order.ID,
			ProductID:    item.ID,
			ProductName:  item.Name,
			ProductPrice: item.Price,
			Quantity:     item.Quantity,
			Subtotal:     subtotal,
		}
		order.TotalAmount += subtotal

		productMoves = append(productMoves, models.ProductStockMove{
			ProductID: item.ID,
			Quantity:  item.Quantity,
		})

		recipe, err := s.productRepo.GetRecipe(ownerID, item.ID)
		if err != nil {
			return nil, err
		}
		for _, entry := range recipe {
			ingredientMoves = append(ingredientMoves, models.IngredientStockMove{
				IngredientID: entry.IngredientID,
				Amount:       entry.Quantity * float64(item.Quantity),
			})
		}
	}

	if err := s.persistWithFreshNumber(ownerID, order, productMoves, ingredientMoves); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))

	s.logger.Info("Order created", "order_id", order.ID,
		"order_number", order.OrderNumber, "total_amount", order.TotalAmount)
	return order, nil
}

// persistWithFreshNumber regenerates the order number and retries when the
// storage-level uniqueness constraint rejects a collision.
func (s *OrderService) persistWithFreshNumber(ownerID string, order *models.Order, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error {
	for attempt := 1; ; attempt++ {
		order.OrderNumber = generateDocumentNumber(orderNumberPrefix, time.Now())

		err := s.orderRepo.Create(ownerID, order, productMoves, ingredientMoves)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicateNumber) || attempt >= maxNumberAttempts {
			return err
		}

		s.logger.Warn("Order number collision, regenerating",
			"order_number", order.OrderNumber, "attempt", attempt)
	}
}

func (s *OrderService) GetAllOrders(ownerID string) ([]*models.Order, error) {
	orders, err := s.orderRepo.GetAll(ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch orders", "error", err)
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetTodayOrders(ownerID string) ([]*models.Order, error) {
	orders, err := s.orderRepo.GetToday(ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch today's orders", "error", err)
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ownerID, id string) (*models.Order, error) {
	if id == "" {
		return nil, apperr.InvalidInput("order ID is required")
	}

	order, err := s.orderRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Order not found", "order_id", id, "error", err)
		return nil, err
	}
	return order, nil
}

// CancelOrder restores exactly the quantities debited at creation: product
// raw stock by the line quantity, recipe ingredients by quantity required ×
// line quantity — the same multiplication with the sign reversed. Lines
// whose product was deleted contribute nothing. Cancelling twice fails with
// a conflict and leaves inventory untouched.
func (s *OrderService) CancelOrder(ctx context.Context, ownerID, id string) error {
	s.logger.Info("Cancelling order", "order_id", id)

	if id == "" {
		return apperr.InvalidInput("order ID is required")
	}

	order, err := s.orderRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Order not found for cancellation", "order_id", id, "error", err)
		return err
	}

	if order.Status == models.OrderStatusCancelled {
		s.logger.Warn("Attempted to cancel an already-cancelled order", "order_id", id)
		return apperr.Conflict("order %s is already cancelled", id)
	}

	productMoves := []models.ProductStockMove{}
	ingredientMoves := []models.IngredientStockMove{}

	for _, item := range order.Items {
		if item.ProductID == "" {
			// Product deleted after the order was placed; nothing to restore.
			continue
		}

		productMoves = append(productMoves, models.ProductStockMove{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})

		recipe, err := s.productRepo.GetRecipe(ownerID, item.ProductID)
		if err != nil {
			return err
		}
		for _, entry := range recipe {
			ingredientMoves = append(ingredientMoves, models.IngredientStockMove{
				IngredientID: entry.IngredientID,
				Amount:       entry.Quantity * float64(item.Quantity),
			})
		}
	}

	if err := s.orderRepo.Cancel(ownerID, id, productMoves, ingredientMoves); err != nil {
		s.logger.Error("Failed to cancel order", "order_id", id, "error", err)
		return err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))

	s.logger.Info("Order cancelled and inventory restored", "order_id", id)
	return nil
}

func (s *OrderService) validateOrderItems(items []CreateOrderItemRequest) error {
	if len(items) == 0 {
		return apperr.InvalidInput("order must have at least one item")
	}

	for i, item := range items {
		if item.ID == "" {
			return apperr.InvalidInput("item %d: product ID is required", i+1)
		}
		if item.Quantity <= 0 {
			return apperr.InvalidInput("item %d: quantity must be positive", i+1)
		}
		if item.Price < 0 {
			return apperr.InvalidInput("item %d: price cannot be negative", i+1)
		}
	}

	return nil
}
