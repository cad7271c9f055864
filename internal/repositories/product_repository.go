package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type ProductRepositoryInterface interface {
	GetAll(ownerID string) ([]*models.Product, error)
	GetByID(ownerID, id string) (*models.Product, error)
	GetRecipe(ownerID, productID string) ([]models.RecipeEntry, error)
	Create(ownerID string, product *models.Product) error
	Update(ownerID, id string, product *models.Product) error
	SetStock(ownerID, id string, stock int) error
	Delete(ownerID, id string) error
}

type ProductRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewProductRepository(log *logger.Logger, db *database.DB) *ProductRepository {
	return &ProductRepository{
		logger: log.WithComponent("product_repository"),
		db:     db,
	}
}

// productSelect aggregates recipe entries per product as a JSON array. The
// ingredient join is owner-scoped so another tenant's ingredients can never
// leak into a recipe, and it carries current ingredient stock for the
// availability calculation.
const productSelect = `
	SELECT p.id, p.owner_id, p.category_id, p.name, p.price, p.stock, p.available,
	       p.created_at, p.updated_at,
	       COALESCE(
	           json_agg(
	               json_build_object(
	                   'ingredient_id', pi.ingredient_id,
	                   'name', i.name,
	                   'unit', i.unit,
	                   'quantity', pi.quantity,
	                   'stock', i.stock
	               )
	           ) FILTER (WHERE pi.ingredient_id IS NOT NULL), '[]'::json
	       ) AS ingredients
	FROM products p
	LEFT JOIN product_ingredients pi ON pi.product_id = p.id
	LEFT JOIN ingredients i ON i.id = pi.ingredient_id AND i.owner_id = p.owner_id
`

func (r *ProductRepository) GetAll(ownerID string) ([]*models.Product, error) {
	r.logger.Debug("Retrieving all products")

	query := productSelect + `
		WHERE p.owner_id = $1
		GROUP BY p.id
		ORDER BY p.name
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		r.logger.Error("Failed to query products", "error", err)
		return nil, apperr.Storage("failed to query products", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := r.scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating product rows", "error", err)
		return nil, apperr.Storage("error iterating product rows", err)
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ownerID, id string) (*models.Product, error) {
	query := productSelect + `
		WHERE p.id = $1 AND p.owner_id = $2
		GROUP BY p.id
	`

	row := r.db.QueryRow(query, id, ownerID)
	product, err := r.scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Product not found", "product_id", id)
			return nil, apperr.NotFound("product %s not found", id)
		}
		return nil, err
	}

	return product, nil
}

// GetRecipe returns the product's recipe entries joined with current
// ingredient stock, owner-scoped on both sides. An empty result is a valid
// state (stock-tracked product), not an error.
func (r *ProductRepository) GetRecipe(ownerID, productID string) ([]models.RecipeEntry, error) {
	query := `
		SELECT pi.ingredient_id, i.name, i.unit, pi.quantity, i.stock
		FROM product_ingredients pi
		JOIN products p ON p.id = pi.product_id AND p.owner_id = $2
		JOIN ingredients i ON i.id = pi.ingredient_id AND i.owner_id = $2
		WHERE pi.product_id = $1
	`

	rows, err := r.db.Query(query, productID, ownerID)
	if err != nil {
		r.logger.Error("Failed to query recipe", "error", err, "product_id", productID)
		return nil, apperr.Storage("failed to query recipe", err)
	}
	defer rows.Close()

	entries := []models.RecipeEntry{}
	for rows.Next() {
		entry := models.RecipeEntry{}
		err := rows.Scan(&entry.IngredientID, &entry.IngredientName, &entry.Unit, &entry.Quantity, &entry.Stock)
		if err != nil {
			r.logger.Error("Failed to scan recipe entry", "error", err, "product_id", productID)
			return nil, apperr.Storage("failed to scan recipe entry", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("error iterating recipe rows", err)
	}

	return entries, nil
}

func (r *ProductRepository) Create(ownerID string, product *models.Product) error {
	r.logger.Debug("Adding new product", "name", product.Name)

	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		query := `
			INSERT INTO products (owner_id, category_id, name, price, stock, available)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(query, ownerID, nullableID(product.CategoryID), product.Name,
			product.Price, product.Stock, product.Available).
			Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		return r.insertRecipeEntries(tx, product.ID, product.Ingredients)
	})
	if err != nil {
		r.logger.Error("Failed to create product", "error", err, "name", product.Name)
		return apperr.Storage("failed to create product", err)
	}

	product.OwnerID = ownerID
	r.logger.Info("Created product", "product_id", product.ID, "name", product.Name)
	return nil
}

func (r *ProductRepository) Update(ownerID, id string, product *models.Product) error {
	r.logger.Debug("Updating product", "product_id", id)

	var notFound bool
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		query := `
			UPDATE products
			SET category_id = $1, name = $2, price = $3, available = $4, updated_at = now()
			WHERE id = $5 AND owner_id = $6
		`

		result, err := tx.Exec(query, nullableID(product.CategoryID), product.Name,
			product.Price, product.Available, id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			notFound = true
			return sql.ErrNoRows
		}

		// Recipe entries are rewritten wholesale on every update.
		if err := r.deleteRecipeEntries(tx, id); err != nil {
			return err
		}
		return r.insertRecipeEntries(tx, id, product.Ingredients)
	})
	if err != nil {
		if notFound {
			r.logger.Warn("Attempted to update non-existent product", "product_id", id)
			return apperr.NotFound("product %s not found", id)
		}
		r.logger.Error("Failed to update product", "error", err, "product_id", id)
		return apperr.Storage("failed to update product", err)
	}

	r.logger.Info("Updated product", "product_id", id, "name", product.Name)
	return nil
}

// SetStock overwrites the raw stock column directly.
func (r *ProductRepository) SetStock(ownerID, id string, stock int) error {
	query := `
		UPDATE products
		SET stock = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`

	result, err := r.db.Exec(query, stock, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to set product stock", "error", err, "product_id", id)
		return apperr.Storage("failed to set product stock", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("product %s not found", id)
	}

	r.logger.Info("Set product stock", "product_id", id, "stock", stock)
	return nil
}

func (r *ProductRepository) Delete(ownerID, id string) error {
	query := `DELETE FROM products WHERE id = $1 AND owner_id = $2`

	result, err := r.db.Exec(query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete product", "error", err, "product_id", id)
		return apperr.Storage("failed to delete product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to delete non-existent product", "product_id", id)
		return apperr.NotFound("product %s not found", id)
	}

	r.logger.Info("Deleted product", "product_id", id)
	return nil
}

func (r *ProductRepository) scanProduct(scan func(...interface{}) error) (*models.Product, error) {
	product := &models.Product{}
	var categoryID sql.NullString
	var ingredientsJSON string

	err := scan(
		&product.ID,
		&product.OwnerID,
		&categoryID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.Available,
		&product.CreatedAt,
		&product.UpdatedAt,
		&ingredientsJSON,
	)
	if err != nil {
		return nil, apperr.Storage("failed to scan product", err)
	}

	if categoryID.Valid {
		product.CategoryID = categoryID.String
	}

	if err := parseRecipeEntries(ingredientsJSON, &product.Ingredients); err != nil {
		r.logger.Error("Failed to parse recipe entries", "error", err, "product_id", product.ID)
		return nil, apperr.Storage("failed to parse recipe entries", err)
	}

	return product, nil
}

func (r *ProductRepository) insertRecipeEntries(tx *sql.Tx, productID string, entries []models.RecipeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_ingredients (product_id, ingredient_id, quantity)
		VALUES ($1, $2, $3)
	`

	for _, entry := range entries {
		if _, err := tx.Exec(query, productID, entry.IngredientID, entry.Quantity); err != nil {
			return fmt.Errorf("failed to insert recipe entry %s: %w", entry.IngredientID, err)
		}
	}

	return nil
}

func (r *ProductRepository) deleteRecipeEntries(tx *sql.Tx, productID string) error {
	query := `DELETE FROM product_ingredients WHERE product_id = $1`
	if _, err := tx.Exec(query, productID); err != nil {
		return fmt.Errorf("failed to delete recipe entries: %w", err)
	}
	return nil
}

func parseRecipeEntries(entriesJSON string, entries *[]models.RecipeEntry) error {
	if entriesJSON == "" || entriesJSON == "[]" {
		*entries = []models.RecipeEntry{}
		return nil
	}

	parsed := []models.RecipeEntry{}
	if err := json.Unmarshal([]byte(entriesJSON), &parsed); err != nil {
		return fmt.Errorf("invalid JSON format for recipe entries: %v", err)
	}

	*entries = parsed
	return nil
}

// nullableID maps an empty id string to SQL NULL.
func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
