package repositories

import (
	"database/sql"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type CategoryRepositoryInterface interface {
	GetAll(ownerID string) ([]*models.Category, error)
	GetByID(ownerID, id string) (*models.Category, error)
	Create(ownerID string, category *models.Category) error
	Update(ownerID, id string, category *models.Category) error
	Delete(ownerID, id string) error
}

type CategoryRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewCategoryRepository(log *logger.Logger, db *database.DB) *CategoryRepository {
	return &CategoryRepository{
		logger: log.WithComponent("category_repository"),
		db:     db,
	}
}

func (r *CategoryRepository) GetAll(ownerID string) ([]*models.Category, error) {
	query := `
		SELECT id, owner_id, name, created_at
		FROM categories
		WHERE owner_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		r.logger.Error("Failed to query categories", "error", err)
		return nil, apperr.Storage("failed to query categories", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.OwnerID, &category.Name, &category.CreatedAt); err != nil {
			r.logger.Error("Failed to scan category", "error", err)
			return nil, apperr.Storage("failed to scan category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating category rows", "error", err)
		return nil, apperr.Storage("error iterating category rows", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ownerID, id string) (*models.Category, error) {
	query := `
		SELECT id, owner_id, name, created_at
		FROM categories
		WHERE id = $1 AND owner_id = $2
	`

	category := &models.Category{}
	err := r.db.QueryRow(query, id, ownerID).
		Scan(&category.ID, &category.OwnerID, &category.Name, &category.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("category %s not found", id)
		}
		r.logger.Error("Failed to retrieve category", "error", err, "category_id", id)
		return nil, apperr.Storage("failed to retrieve category", err)
	}

	return category, nil
}

func (r *CategoryRepository) Create(ownerID string, category *models.Category) error {
	query := `
		INSERT INTO categories (owner_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(query, ownerID, category.Name).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to add duplicate category", "name", category.Name)
			return apperr.Conflict("category %s already exists", category.Name)
		}
		r.logger.Error("Failed to create category", "error", err, "name", category.Name)
		return apperr.Storage("failed to create category", err)
	}

	category.OwnerID = ownerID
	r.logger.Info("Created category", "category_id", category.ID, "name", category.Name)
	return nil
}

func (r *CategoryRepository) Update(ownerID, id string, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1
		WHERE id = $2 AND owner_id = $3
	`

	result, err := r.db.Exec(query, category.Name, id, ownerID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("category %s already exists", category.Name)
		}
		r.logger.Error("Failed to update category", "error", err, "category_id", id)
		return apperr.Storage("failed to update category", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected", "error", err, "category_id", id)
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to update non-existent category", "category_id", id)
		return apperr.NotFound("category %s not found", id)
	}

	r.logger.Info("Updated category", "category_id", id, "name", category.Name)
	return nil
}

func (r *CategoryRepository) Delete(ownerID, id string) error {
	query := `DELETE FROM categories WHERE id = $1 AND owner_id = $2`

	result, err := r.db.Exec(query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete category", "error", err, "category_id", id)
		return apperr.Storage("failed to delete category", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected", "error", err, "category_id", id)
		return apperr.Storage("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to delete non-existent category", "category_id", id)
		return apperr.NotFound("category %s not found", id)
	}

	r.logger.Info("Deleted category", "category_id", id)
	return nil
}
