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

type RecordPurchasesRequest struct {
	Items []PurchaseItemRequest `json:"items"`
	Notes string                `json:"notes"`
}

// PurchaseItemRequest records restocking one ingredient. UnitPrice is the
// total amount paid for the whole quantity, not a per-unit rate.
type PurchaseItemRequest struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

type PurchaseServiceInterface interface {
	RecordPurchases(ctx context.Context, ownerID string, req RecordPurchasesRequest) ([]*models.Purchase, error)
	GetAllPurchases(ownerID string) ([]*models.Purchase, error)
	GetPurchaseByID(ownerID, id string) (*models.Purchase, error)
	DeletePurchase(ctx context.Context, ownerID, id string) error
}

type PurchaseService struct {
	purchaseRepo   repositories.PurchaseRepositoryInterface
	ingredientRepo repositories.IngredientRepositoryInterface
	cache          *cache.Cache
	logger         *logger.Logger
}

func NewPurchaseService(purchaseRepo repositories.PurchaseRepositoryInterface, ingredientRepo repositories.IngredientRepositoryInterface, productCache *cache.Cache, log *logger.Logger) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:   purchaseRepo,
		ingredientRepo: ingredientRepo,
		cache:          productCache,
		logger:         log.WithComponent("purchase_service"),
	}
}

// RecordPurchases stores one purchase row per item, each under its own
// purchase number, and credits each ingredient's stock by the purchased
// quantity, all in a single transaction.
func (s *PurchaseService) RecordPurchases(ctx context.Context, ownerID string, req RecordPurchasesRequest) ([]*models.Purchase, error) {
	s.logger.Info("Recording purchases", "items", len(req.Items))

	if len(req.Items) == 0 {
		return nil, apperr.InvalidInput("purchase must have at least one item")
	}

	purchases := make([]*models.Purchase, len(req.Items))
	credits := make([]models.IngredientStockMove, len(req.Items))

	for i, item := range req.Items {
		if item.IngredientID == "" {
			return nil, apperr.InvalidInput("item %d: ingredient ID is required", i+1)
		}
		if item.Quantity <= 0 {
			return nil, apperr.InvalidInput("item %d: quantity must be positive", i+1)
		}
		if item.UnitPrice <= 0 {
			return nil, apperr.InvalidInput("item %d: unit price must be positive", i+1)
		}

		ingredient, err := s.ingredientRepo.GetByID(ownerID, item.IngredientID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				s.logger.Warn("Record failed: unknown ingredient", "ingredient_id", item.IngredientID)
				return nil, apperr.InvalidInput("item %d: ingredient %s not found", i+1, item.IngredientID)
			}
			return nil, err
		}

		purchases[i] = &models.Purchase{
			ID:             uuid.NewString(),
			IngredientID:   ingredient.ID,
			IngredientName: ingredient.Name,
			IngredientUnit: ingredient.Unit,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TotalPrice:     item.UnitPrice,
			Notes:          req.Notes,
			CreatedBy:      ownerID,
		}
		credits[i] = models.IngredientStockMove{
			IngredientID: ingredient.ID,
			Amount:       item.Quantity,
		}
	}

	if err := s.persistWithFreshNumber(ownerID, purchases, credits); err != nil {
		return nil, err
	}

	// Cached product listings carry ingredient stock snapshots in their
	// recipes, which these credits just changed.
	s.cache.Invalidate(ctx, productListKey(ownerID))

	s.logger.Info("Purchases recorded", "count", len(purchases))
	return purchases, nil
}

// persistWithFreshNumber stamps every row in the batch with its own purchase
// number (the column is unique, so rows can never share one), regenerating
// the whole set and retrying when the insert hits a stored collision.
func (s *PurchaseService) persistWithFreshNumber(ownerID string, purchases []*models.Purchase, credits []models.IngredientStockMove) error {
	for attempt := 1; ; attempt++ {
		now := time.Now()
		seen := make(map[string]bool, len(purchases))
		for _, purchase := range purchases {
			number := generateDocumentNumber(purchaseNumberPrefix, now)
			for seen[number] {
				number = generateDocumentNumber(purchaseNumberPrefix, now)
			}
			seen[number] = true
			purchase.PurchaseNumber = number
		}

		err := s.purchaseRepo.CreateBatch(ownerID, purchases, credits)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicateNumber) || attempt >= maxNumberAttempts {
			return err
		}

		s.logger.Warn("Purchase number collision, regenerating", "attempt", attempt)
	}
}

func (s *PurchaseService) GetAllPurchases(ownerID string) ([]*models.Purchase, error) {
	purchases, err := s.purchaseRepo.GetAll(ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch purchases", "error", err)
		return nil, err
	}
	return purchases, nil
}

func (s *PurchaseService) GetPurchaseByID(ownerID, id string) (*models.Purchase, error) {
	if id == "" {
		return nil, apperr.InvalidInput("purchase ID is required")
	}

	purchase, err := s.purchaseRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Purchase not found", "purchase_id", id, "error", err)
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase removes the record and takes back its stock credit. The
// reversal never drives stock below zero: quantities consumed since the
// purchase stay consumed.
func (s *PurchaseService) DeletePurchase(ctx context.Context, ownerID, id string) error {
	s.logger.Info("Deleting purchase", "purchase_id", id)

	if id == "" {
		return apperr.InvalidInput("purchase ID is required")
	}

	purchase, err := s.purchaseRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Purchase not found for deletion", "purchase_id", id, "error", err)
		return err
	}

	if err := s.purchaseRepo.Delete(ownerID, purchase); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))

	s.logger.Info("Purchase deleted", "purchase_id", id)
	return nil
}
