package service

import (
	"context"

	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/cache"
	"tillpoint/pkg/logger"
)

type IngredientRequest struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Stock float64 `json:"stock"`
}

type IngredientServiceInterface interface {
	GetAllIngredients(ownerID string) ([]*models.Ingredient, error)
	GetIngredientByID(ownerID, id string) (*models.Ingredient, error)
	CreateIngredient(ownerID string, req IngredientRequest) (*models.Ingredient, error)
	UpdateIngredient(ctx context.Context, ownerID, id string, req IngredientRequest) (*models.Ingredient, error)
	SetIngredientStock(ctx context.Context, ownerID, id string, stock float64) error
	DeleteIngredient(ctx context.Context, ownerID, id string) error
}

type IngredientService struct {
	ingredientRepo repositories.IngredientRepositoryInterface
	cache          *cache.Cache
	logger         *logger.Logger
}

func NewIngredientService(ingredientRepo repositories.IngredientRepositoryInterface, productCache *cache.Cache, log *logger.Logger) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		cache:          productCache,
		logger:         log.WithComponent("ingredient_service"),
	}
}

func (s *IngredientService) GetAllIngredients(ownerID string) ([]*models.Ingredient, error) {
	ingredients, err := s.ingredientRepo.GetAll(ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch ingredients", "error", err)
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) GetIngredientByID(ownerID, id string) (*models.Ingredient, error) {
	if id == "" {
		return nil, apperr.InvalidInput("ingredient ID is required")
	}

	ingredient, err := s.ingredientRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Ingredient not found", "ingredient_id", id, "error", err)
		return nil, err
	}
	return ingredient, nil
}

func (s *IngredientService) CreateIngredient(ownerID string, req IngredientRequest) (*models.Ingredient, error) {
	s.logger.Info("Creating new ingredient", "name", req.Name)

	if err := validateIngredientRequest(req); err != nil {
		s.logger.Warn("Create failed: invalid data", "error", err)
		return nil, err
	}

	ingredient := &models.Ingredient{
		Name:  req.Name,
		Unit:  req.Unit,
		Stock: req.Stock,
	}

	if err := s.ingredientRepo.Create(ownerID, ingredient); err != nil {
		return nil, err
	}

	s.logger.Info("Ingredient created", "ingredient_id", ingredient.ID, "name", ingredient.Name)
	return ingredient, nil
}

// UpdateIngredient invalidates the product list cache: cached products carry
// recipe stock snapshots that this write may have changed.
func (s *IngredientService) UpdateIngredient(ctx context.Context, ownerID, id string, req IngredientRequest) (*models.Ingredient, error) {
	s.logger.Info("Updating ingredient", "ingredient_id", id)

	if id == "" {
		return nil, apperr.InvalidInput("ingredient ID is required")
	}
	if err := validateIngredientRequest(req); err != nil {
		s.logger.Warn("Update failed: invalid data", "error", err)
		return nil, err
	}

	ingredient := &models.Ingredient{
		Name:  req.Name,
		Unit:  req.Unit,
		Stock: req.Stock,
	}

	if err := s.ingredientRepo.Update(ownerID, id, ingredient); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))

	updated, err := s.ingredientRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *IngredientService) SetIngredientStock(ctx context.Context, ownerID, id string, stock float64) error {
	if id == "" {
		return apperr.InvalidInput("ingredient ID is required")
	}
	if stock < 0 {
		return apperr.InvalidInput("stock cannot be negative")
	}

	if err := s.ingredientRepo.SetStock(ownerID, id, stock); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))
	return nil
}

func (s *IngredientService) DeleteIngredient(ctx context.Context, ownerID, id string) error {
	s.logger.Info("Deleting ingredient", "ingredient_id", id)

	if id == "" {
		return apperr.InvalidInput("ingredient ID is required")
	}

	if err := s.ingredientRepo.Delete(ownerID, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))
	return nil
}

func validateIngredientRequest(req IngredientRequest) error {
	if req.Name == "" {
		return apperr.InvalidInput("ingredient name is required")
	}
	if req.Unit == "" {
		return apperr.InvalidInput("ingredient unit is required")
	}
	if req.Stock < 0 {
		return apperr.InvalidInput("stock cannot be negative")
	}
	return nil
}
