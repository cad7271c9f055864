package models

import "time"

// Purchase records an ingredient stock credit. UnitPrice holds the total
// price paid for the whole quantity, not a per-unit rate; TotalPrice is
// recorded equal to it.
type Purchase struct {
	ID             string    `json:"id" db:"id"`
	OwnerID        string    `json:"-" db:"owner_id"`
	PurchaseNumber string    `json:"purchase_number" db:"purchase_number"`
	IngredientID   string    `json:"ingredient_id,omitempty" db:"ingredient_id"`
	IngredientName string    `json:"ingredient_name" db:"ingredient_name"`
	IngredientUnit string    `json:"ingredient_unit" db:"ingredient_unit"`
	Quantity       float64   `json:"quantity" db:"quantity"`
	UnitPrice      float64   `json:"unit_price" db:"unit_price"`
	TotalPrice     float64   `json:"total_price" db:"total_price"`
	Notes          string    `json:"notes,omitempty" db:"notes"`
	CreatedBy      string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
