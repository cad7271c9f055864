package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type OrderRepositoryInterface interface {
	Create(ownerID string, order *models.Order, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error
	GetAll(ownerID string) ([]*models.Order, error)
	GetToday(ownerID string) ([]*models.Order, error)
	GetByID(ownerID, id string) (*models.Order, error)
	Cancel(ownerID, id string, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error
}

type OrderRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewOrderRepository(log *logger.Logger, db *database.DB) *OrderRepository {
	return &OrderRepository{
		logger: log.WithComponent("order_repository"),
		db:     db,
	}
}

// Create persists the order, its line items and every stock debit in one
// transaction: a mid-sequence failure rolls the whole order back. Stock
// updates are atomic decrements at the storage layer, so concurrent orders
// against the same rows cannot lose updates. Stock is not floored at zero;
// overselling drives it negative.
func (r *OrderRepository) Create(ownerID string, order *models.Order, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error {
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		orderQuery := `
			INSERT INTO orders (id, owner_id, order_number, total_amount, payment_method,
			                    payment_status, status, notes, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`

		err := tx.QueryRow(orderQuery, order.ID, ownerID, order.OrderNumber, order.TotalAmount,
			order.PaymentMethod, order.PaymentStatus, order.Status, order.Notes, order.CreatedBy).
			Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, product_name, product_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		for _, item := range order.Items {
			_, err := tx.Exec(itemQuery, item.ID, order.ID, nullableID(item.ProductID),
				item.ProductName, item.ProductPrice, item.Quantity, item.Subtotal)
			if err != nil {
				return fmt.Errorf("failed to insert order item for product %s: %w", item.ProductID, err)
			}
		}

		if err := applyProductMoves(tx, ownerID, productMoves, -1); err != nil {
			return err
		}
		return applyIngredientMoves(tx, ownerID, ingredientMoves, -1)
	})
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Order number collision", "order_number", order.OrderNumber)
			return ErrDuplicateNumber
		}
		r.logger.Error("Failed to create order", "error", err, "order_number", order.OrderNumber)
		return apperr.Storage("failed to create order", err)
	}

	order.OwnerID = ownerID
	r.logger.Info("Created order", "order_id", order.ID, "order_number", order.OrderNumber,
		"total_amount", order.TotalAmount, "items", len(order.Items))
	return nil
}

func (r *OrderRepository) GetAll(ownerID string) ([]*models.Order, error) {
	return r.queryOrders(`WHERE o.owner_id = $1`, ownerID)
}

// GetToday returns the owner's orders created since local midnight.
func (r *OrderRepository) GetToday(ownerID string) ([]*models.Order, error) {
	return r.queryOrders(`WHERE o.owner_id = $1 AND o.created_at >= date_trunc('day', now())`, ownerID)
}

func (r *OrderRepository) GetByID(ownerID, id string) (*models.Order, error) {
	orders, err := r.queryOrders(`WHERE o.owner_id = $1 AND o.id = $2`, ownerID, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		r.logger.Warn("Order not found", "order_id", id)
		return nil, apperr.NotFound("order %s not found", id)
	}
	return orders[0], nil
}

// Cancel flips the order to cancelled and credits back every stock move in
// one transaction. The status predicate guards against a concurrent cancel
// applying the credits twice.
func (r *OrderRepository) Cancel(ownerID, id string, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error {
	var alreadyCancelled bool
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		query := `
			UPDATE orders
			SET status = $1, payment_status = $2, updated_at = now()
			WHERE id = $3 AND owner_id = $4 AND status <> $1
		`

		result, err := tx.Exec(query, models.OrderStatusCancelled, models.PaymentStatusCancelled, id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			alreadyCancelled = true
			return sql.ErrNoRows
		}

		if err := applyProductMoves(tx, ownerID, productMoves, 1); err != nil {
			return err
		}
		return applyIngredientMoves(tx, ownerID, ingredientMoves, 1)
	})
	if err != nil {
		if alreadyCancelled {
			return apperr.Conflict("order %s is already cancelled", id)
		}
		r.logger.Error("Failed to cancel order", "error", err, "order_id", id)
		return apperr.Storage("failed to cancel order", err)
	}

	r.logger.Info("Cancelled order", "order_id", id)
	return nil
}

func (r *OrderRepository) queryOrders(where string, args ...interface{}) ([]*models.Order, error) {
	query := `
		SELECT o.id, o.owner_id, o.order_number, o.total_amount, o.payment_method,
		       o.payment_status, o.status, o.notes, o.created_by, o.created_at, o.updated_at
		FROM orders o
		` + where + `
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", "error", err)
		return nil, apperr.Storage("failed to query orders", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	byID := map[string]*models.Order{}
	for rows.Next() {
		order := &models.Order{Items: []models.OrderItem{}}
		var createdBy sql.NullString
		err := rows.Scan(
			&order.ID,
			&order.OwnerID,
			&order.OrderNumber,
			&order.TotalAmount,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.Status,
			&order.Notes,
			&createdBy,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan order", "error", err)
			return nil, apperr.Storage("failed to scan order", err)
		}
		order.CreatedBy = createdBy.String
		orders = append(orders, order)
		byID[order.ID] = order
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("error iterating order rows", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachItems(byID); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) attachItems(orders map[string]*models.Order) error {
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}

	query := `
		SELECT id, order_id, product_id, product_name, product_price, quantity, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY product_name
	`

	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to query order items", "error", err)
		return apperr.Storage("failed to query order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.OrderItem{}
		var productID sql.NullString
		err := rows.Scan(&item.ID, &item.OrderID, &productID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &item.Subtotal)
		if err != nil {
			r.logger.Error("Failed to scan order item", "error", err)
			return apperr.Storage("failed to scan order item", err)
		}
		item.ProductID = productID.String

		if order, ok := orders[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return apperr.Storage("error iterating order item rows", err)
	}

	return nil
}

// applyProductMoves adjusts product stock by sign*quantity per move, as an
// atomic update rather than a read-modify-write.
func applyProductMoves(tx *sql.Tx, ownerID string, moves []models.ProductStockMove, sign int) error {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`

	for _, move := range moves {
		if _, err := tx.Exec(query, sign*move.Quantity, move.ProductID, ownerID); err != nil {
			return fmt.Errorf("failed to adjust stock for product %s: %w", move.ProductID, err)
		}
	}

	return nil
}

// applyIngredientMoves mirrors applyProductMoves for ingredient stock.
func applyIngredientMoves(tx *sql.Tx, ownerID string, moves []models.IngredientStockMove, sign int) error {
	query := `
		UPDATE ingredients
		SET stock = stock + $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`

	for _, move := range moves {
		if _, err := tx.Exec(query, float64(sign)*move.Amount, move.IngredientID, ownerID); err != nil {
			return fmt.Errorf("failed to adjust stock for ingredient %s: %w", move.IngredientID, err)
		}
	}

	return nil
}
