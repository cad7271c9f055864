package models

import "time"

const (
	OrderStatusPending   = "pending" // legal but unreachable through the engine
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

type Order struct {
	ID            string      `json:"id" db:"id"`
	OwnerID       string      `json:"-" db:"owner_id"`
	OrderNumber   string      `json:"order_number" db:"order_number"`
	TotalAmount   float64     `json:"total_amount" db:"total_amount"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	PaymentStatus string      `json:"payment_status" db:"payment_status"`
	Status        string      `json:"status" db:"status"`
	Notes         string      `json:"notes,omitempty" db:"notes"`
	CreatedBy     string      `json:"created_by" db:"created_by"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem snapshots name and price at transaction time; later catalog
// edits must not alter historical orders. ProductID goes empty when the
// product is deleted afterwards.
type OrderItem struct {
	ID           string  `json:"id" db:"id"`
	OrderID      string  `json:"order_id" db:"order_id"`
	ProductID    string  `json:"product_id,omitempty" db:"product_id"`
	ProductName  string  `json:"product_name" db:"product_name"`
	ProductPrice float64 `json:"product_price" db:"product_price"`
	Quantity     int     `json:"quantity" db:"quantity"`
	Subtotal     float64 `json:"subtotal" db:"subtotal"`
}

// ProductStockMove and IngredientStockMove carry the quantities an order
// debits at creation. Cancellation replays the same moves with the sign
// reversed, so the two paths stay exactly symmetric.
type ProductStockMove struct {
	ProductID string
	Quantity  int
}

type IngredientStockMove struct {
	IngredientID string
	Amount       float64
}
