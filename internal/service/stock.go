package service

import "tillpoint/models"

// CalculateSellable derives the maximum number of units sellable right now
// from a product's recipe entries and current ingredient stocks.
//
// Returns nil when the product has no recipe (stock-tracked product; the
// caller should use the raw stock column). Otherwise returns
// min over entries with quantity > 0 of floor(stock / quantity), clamped to
// zero. Entries requiring a zero quantity are non-limiting; a recipe with no
// positive-quantity entry yields 0.
func CalculateSellable(entries []models.RecipeEntry) *int {
	if len(entries) == 0 {
		return nil
	}

	best := -1
	for _, entry := range entries {
		if entry.Quantity <= 0 {
			continue
		}

		// Integer truncation of a possibly negative ratio: negative stock
		// (from overselling) floors straight to zero below.
		n := int(entry.Stock / entry.Quantity)
		if best == -1 || n < best {
			best = n
		}
	}

	if best < 0 {
		best = 0
	}

	return &best
}

// AnnotateAvailability attaches the derived sellable count and recipe flag
// to a product. Callers must prefer CalculatedStock over the raw stock
// column whenever HasIngredients is true.
func AnnotateAvailability(product *models.Product) {
	product.HasIngredients = len(product.Ingredients) > 0
	product.CalculatedStock = CalculateSellable(product.Ingredients)
}
