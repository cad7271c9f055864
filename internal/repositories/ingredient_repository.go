package repositories

import (
	"database/sql"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type IngredientRepositoryInterface interface {
	GetAll(ownerID string) ([]*models.Ingredient, error)
	GetByID(ownerID, id string) (*models.Ingredient, error)
	Create(ownerID string, ingredient *models.Ingredient) error
	Update(ownerID, id string, ingredient *models.Ingredient) error
	SetStock(ownerID, id string, stock float64) error
	Delete(ownerID, id string) error
}

type IngredientRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewIngredientRepository(log *logger.Logger, db *database.DB) *IngredientRepository {
	return &IngredientRepository{
		logger: log.WithComponent("ingredient_repository"),
		db:     db,
	}
}

func (r *IngredientRepository) GetAll(ownerID string) ([]*models.Ingredient, error) {
	r.logger.Debug("Retrieving all ingredients")

	query := `
		SELECT id, owner_id, name, unit, stock, created_at, updated_at
		FROM ingredients
		WHERE owner_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		r.logger.Error("Failed to query ingredients", "error", err)
		return nil, apperr.Storage("failed to query ingredients", err)
	}
	defer rows.Close()

	ingredients := []*models.Ingredient{}
	for rows.Next() {
		ingredient := &models.Ingredient{}
		err := rows.Scan(
			&ingredient.ID,
			&ingredient.OwnerID,
			&ingredient.Name,
			&ingredient.Unit,
			&ingredient.Stock,
			&ingredient.CreatedAt,
			&ingredient.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan ingredient", "error", err)
			return nil, apperr.Storage("failed to scan ingredient", err)
		}
		ingredients = append(ingredients, ingredient)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating ingredient rows", "error", err)
		return nil, apperr.Storage("error iterating ingredient rows", err)
	}

	return ingredients, nil
}

func (r *IngredientRepository) GetByID(ownerID, id string) (*models.Ingredient, error) {
	query := `
		SELECT id, owner_id, name, unit, stock, created_at, updated_at
		FROM ingredients
		WHERE id = $1 AND owner_id = $2
	`

	ingredient := &models.Ingredient{}
	err := r.db.QueryRow(query, id, ownerID).Scan(
		&ingredient.ID,
		&ingredient.OwnerID,
		&ingredient.Name,
		&ingredient.Unit,
		&ingredient.Stock,
		&ingredient.CreatedAt,
		&ingredient.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Warn("Ingredient not found", "ingredient_id", id)
			return nil, apperr.NotFound("ingredient %s not found", id)
		}
		r.logger.Error("Failed to retrieve ingredient", "error", err, "ingredient_id", id)
		return nil, apperr.Storage("failed to retrieve ingredient", err)
	}

	return ingredient, nil
}

func (r *IngredientRepository) Create(ownerID string, ingredient *models.Ingredient) error {
	query := `
		INSERT INTO ingredients (owner_id, name, unit, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(query, ownerID, ingredient.Name, ingredient.Unit, ingredient.Stock).
		Scan(&ingredient.ID, &ingredient.CreatedAt, &ingredient.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create ingredient", "error", err, "name", ingredient.Name)
		return apperr.Storage("failed to create ingredient", err)
	}

	ingredient.OwnerID = ownerID
	r.logger.Info("Created ingredient", "ingredient_id", ingredient.ID, "name", ingredient.Name)
	return nil
}

func (r *IngredientRepository) Update(ownerID, id string, ingredient *models.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $1, unit = $2, stock = $3, updated_at = now()
		WHERE id = $4 AND owner_id = $5
	`

	result, err := r.db.Exec(query, ingredient.Name, ingredient.Unit, ingredient.Stock, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to update ingredient", "error", err, "ingredient_id", id)
		return apperr.Storage("failed to update ingredient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected", "error", err, "ingredient_id", id)
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to update non-existent ingredient", "ingredient_id", id)
		return apperr.NotFound("ingredient %s not found", id)
	}

	r.logger.Info("Updated ingredient", "ingredient_id", id, "name", ingredient.Name)
	return nil
}

// SetStock overwrites the stock quantity directly.
func (r *IngredientRepository) SetStock(ownerID, id string, stock float64) error {
	query := `
		UPDATE ingredients
		SET stock = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`

	result, err := r.db.Exec(query, stock, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to set ingredient stock", "error", err, "ingredient_id", id)
		return apperr.Storage("failed to set ingredient stock", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("ingredient %s not found", id)
	}

	r.logger.Info("Set ingredient stock", "ingredient_id", id, "stock", stock)
	return nil
}

func (r *IngredientRepository) Delete(ownerID, id string) error {
	query := `DELETE FROM ingredients WHERE id = $1 AND owner_id = $2`

	result, err := r.db.Exec(query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete ingredient", "error", err, "ingredient_id", id)
		return apperr.Storage("failed to delete ingredient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to delete non-existent ingredient", "ingredient_id", id)
		return apperr.NotFound("ingredient %s not found", id)
	}

	r.logger.Info("Deleted ingredient", "ingredient_id", id)
	return nil
}
