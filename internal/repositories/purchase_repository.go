package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type PurchaseRepositoryInterface interface {
	CreateBatch(ownerID string, purchases []*models.Purchase, credits []models.IngredientStockMove) error
	GetAll(ownerID string) ([]*models.Purchase, error)
	GetByID(ownerID, id string) (*models.Purchase, error)
	Delete(ownerID string, purchase *models.Purchase) error
}

type PurchaseRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewPurchaseRepository(log *logger.Logger, db *database.DB) *PurchaseRepository {
	return &PurchaseRepository{
		logger: log.WithComponent("purchase_repository"),
		db:     db,
	}
}

// CreateBatch persists all purchase rows and their ingredient stock credits
// in one transaction, so a failure partway leaves nothing committed.
func (r *PurchaseRepository) CreateBatch(ownerID string, purchases []*models.Purchase, credits []models.IngredientStockMove) error {
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		query := `
			INSERT INTO purchases (id, owner_id, purchase_number, ingredient_id, ingredient_name,
			                       ingredient_unit, quantity, unit_price, total_price, notes, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at
		`

		for _, purchase := range purchases {
			err := tx.QueryRow(query, purchase.ID, ownerID, purchase.PurchaseNumber,
				nullableID(purchase.IngredientID), purchase.IngredientName, purchase.IngredientUnit,
				purchase.Quantity, purchase.UnitPrice, purchase.TotalPrice, purchase.Notes,
				purchase.CreatedBy).
				Scan(&purchase.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert purchase %s: %w", purchase.PurchaseNumber, err)
			}
		}

		return applyIngredientMoves(tx, ownerID, credits, 1)
	})
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Purchase number collision")
			return ErrDuplicateNumber
		}
		r.logger.Error("Failed to record purchases", "error", err, "count", len(purchases))
		return apperr.Storage("failed to record purchases", err)
	}

	for _, purchase := range purchases {
		purchase.OwnerID = ownerID
	}

	r.logger.Info("Recorded purchases", "count", len(purchases))
	return nil
}

func (r *PurchaseRepository) GetAll(ownerID string) ([]*models.Purchase, error) {
	query := `
		SELECT id, owner_id, purchase_number, ingredient_id, ingredient_name, ingredient_unit,
		       quantity, unit_price, total_price, notes, created_by, created_at
		FROM purchases
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		r.logger.Error("Failed to query purchases", "error", err)
		return nil, apperr.Storage("failed to query purchases", err)
	}
	defer rows.Close()

	purchases := []*models.Purchase{}
	for rows.Next() {
		purchase, err := r.scanPurchase(rows.Scan)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("error iterating purchase rows", err)
	}

	return purchases, nil
}

func (r *PurchaseRepository) GetByID(ownerID, id string) (*models.Purchase, error) {
	query := `
		SELECT id, owner_id, purchase_number, ingredient_id, ingredient_name, ingredient_unit,
		       quantity, unit_price, total_price, notes, created_by, created_at
		FROM purchases
		WHERE id = $1 AND owner_id = $2
	`

	row := r.db.QueryRow(query, id, ownerID)
	purchase, err := r.scanPurchase(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Purchase not found", "purchase_id", id)
			return nil, apperr.NotFound("purchase %s not found", id)
		}
		return nil, err
	}

	return purchase, nil
}

// Delete reverses the purchase's stock credit, clamped at zero, then removes
// the row; both statements share one transaction. The clamp is deliberately
// asymmetric with order debits, which are allowed to go negative.
func (r *PurchaseRepository) Delete(ownerID string, purchase *models.Purchase) error {
	err := r.db.ExecuteInTransaction(func(tx *sql.Tx) error {
		if purchase.IngredientID != "" {
			query := `
				UPDATE ingredients
				SET stock = GREATEST(stock - $1, 0), updated_at = now()
				WHERE id = $2 AND owner_id = $3
			`
			if _, err := tx.Exec(query, purchase.Quantity, purchase.IngredientID, ownerID); err != nil {
				return fmt.Errorf("failed to reverse stock credit for ingredient %s: %w", purchase.IngredientID, err)
			}
		}

		result, err := tx.Exec(`DELETE FROM purchases WHERE id = $1 AND owner_id = $2`, purchase.ID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return sql.ErrNoRows
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Attempted to delete non-existent purchase", "purchase_id", purchase.ID)
			return apperr.NotFound("purchase %s not found", purchase.ID)
		}
		r.logger.Error("Failed to delete purchase", "error", err, "purchase_id", purchase.ID)
		return apperr.Storage("failed to delete purchase", err)
	}

	r.logger.Info("Deleted purchase", "purchase_id", purchase.ID,
		"ingredient_id", purchase.IngredientID, "quantity", purchase.Quantity)
	return nil
}

func (r *PurchaseRepository) scanPurchase(scan func(...interface{}) error) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	var ingredientID, createdBy sql.NullString

	err := scan(
		&purchase.ID,
		&purchase.OwnerID,
		&purchase.PurchaseNumber,
		&ingredientID,
		&purchase.IngredientName,
		&purchase.IngredientUnit,
		&purchase.Quantity,
		&purchase.UnitPrice,
		&purchase.TotalPrice,
		&purchase.Notes,
		&createdBy,
		&purchase.CreatedAt,
	)
	if err != nil {
		return nil, apperr.Storage("failed to scan purchase", err)
	}

	purchase.IngredientID = ingredientID.String
	purchase.CreatedBy = createdBy.String
	return purchase, nil
}
