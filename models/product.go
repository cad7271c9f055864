package models

import "time"

// Product is a sellable catalog entry. Stock is the raw column used for
// stock-tracked products; recipe-tracked products derive their sellable
// quantity from ingredient stocks instead (CalculatedStock).
type Product struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    string    `json:"-" db:"owner_id"`
	CategoryID string    `json:"category_id,omitempty" db:"category_id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	Stock      int       `json:"stock" db:"stock"`
	Available  bool      `json:"available" db:"available"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	Ingredients []RecipeEntry `json:"ingredients"`

	// Derived on read paths, never persisted. CalculatedStock is null for
	// stock-tracked products; callers prefer it over Stock whenever
	// HasIngredients is true.
	CalculatedStock *int `json:"calculated_stock"`
	HasIngredients  bool `json:"has_ingredients"`
}

// RecipeEntry links a product to one ingredient it consumes per unit sold.
type RecipeEntry struct {
	IngredientID   string  `json:"ingredient_id" db:"ingredient_id"`
	IngredientName string  `json:"name,omitempty" db:"name"`
	Unit           string  `json:"unit,omitempty" db:"unit"`
	Quantity       float64 `json:"quantity" db:"quantity"`

	// Current ingredient stock at query time, carried for availability math.
	Stock float64 `json:"stock" db:"stock"`
}
