package service

import (
	"context"

	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/cache"
	"tillpoint/pkg/logger"
)

type ProductRequest struct {
	CategoryID  string               `json:"category_id"`
	Name        string               `json:"name"`
	Price       float64              `json:"price"`
	Stock       int                  `json:"stock"`
	Available   *bool                `json:"available"`
	Ingredients []RecipeEntryRequest `json:"ingredients"`
}

type RecipeEntryRequest struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type ProductServiceInterface interface {
	GetAllProducts(ctx context.Context, ownerID string) ([]*models.Product, error)
	GetProductByID(ownerID, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, ownerID string, req ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, ownerID, id string, req ProductRequest) (*models.Product, error)
	SetProductStock(ctx context.Context, ownerID, id string, stock int) error
	DeleteProduct(ctx context.Context, ownerID, id string) error
}

type ProductService struct {
	productRepo    repositories.ProductRepositoryInterface
	ingredientRepo repositories.IngredientRepositoryInterface
	cache          *cache.Cache
	logger         *logger.Logger
}

func NewProductService(productRepo repositories.ProductRepositoryInterface, ingredientRepo repositories.IngredientRepositoryInterface, productCache *cache.Cache, log *logger.Logger) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		cache:          productCache,
		logger:         log.WithComponent("product_service"),
	}
}

func productListKey(ownerID string) string {
	return "products:" + ownerID
}

// GetAllProducts returns the owner's catalog with availability annotations,
// served from the cache when a fresh copy exists. Any write through this
// service, the order engine, or the ingredient service invalidates the key.
func (s *ProductService) GetAllProducts(ctx context.Context, ownerID string) ([]*models.Product, error) {
	key := productListKey(ownerID)

	var cached []*models.Product
	if s.cache.GetJSON(ctx, key, &cached) {
		s.logger.Debug("Product list served from cache", "count", len(cached))
		return cached, nil
	}

	products, err := s.productRepo.GetAll(ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch products", "error", err)
		return nil, err
	}

	for _, product := range products {
		AnnotateAvailability(product)
	}

	s.cache.SetJSON(ctx, key, products)
	return products, nil
}

func (s *ProductService) GetProductByID(ownerID, id string) (*models.Product, error) {
	if id == "" {
		return nil, apperr.InvalidInput("product ID is required")
	}

	product, err := s.productRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Product not found", "product_id", id, "error", err)
		return nil, err
	}

	AnnotateAvailability(product)
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, ownerID string, req ProductRequest) (*models.Product, error) {
	s.logger.Info("Creating new product", "name", req.Name)

	product, err := s.buildProduct(ownerID, req)
	if err != nil {
		s.logger.Warn("Create failed: invalid data", "error", err)
		return nil, err
	}

	if err := s.productRepo.Create(ownerID, product); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))

	AnnotateAvailability(product)
	s.logger.Info("Product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, ownerID, id string, req ProductRequest) (*models.Product, error) {
	s.logger.Info("Updating product", "product_id", id)

	if id == "" {
		return nil, apperr.InvalidInput("product ID is required")
	}

	product, err := s.buildProduct(ownerID, req)
	if err != nil {
		s.logger.Warn("Update failed: invalid data", "error", err)
		return nil, err
	}

	if err := s.productRepo.Update(ownerID, id, product); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))

	// Re-read so the response carries timestamps, raw stock and joined
	// ingredient details, none of which the update request supplies.
	updated, err := s.productRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	AnnotateAvailability(updated)
	s.logger.Info("Product updated", "product_id", id, "name", updated.Name)
	return updated, nil
}

func (s *ProductService) SetProductStock(ctx context.Context, ownerID, id string, stock int) error {
	if id == "" {
		return apperr.InvalidInput("product ID is required")
	}
	if stock < 0 {
		return apperr.InvalidInput("stock cannot be negative")
	}

	if err := s.productRepo.SetStock(ownerID, id, stock); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, ownerID, id string) error {
	s.logger.Info("Deleting product", "product_id", id)

	if id == "" {
		return apperr.InvalidInput("product ID is required")
	}

	if err := s.productRepo.Delete(ownerID, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, productListKey(ownerID))
	return nil
}

// buildProduct validates the request and resolves every recipe entry against
// the owner's ingredients, so a recipe can never reference an ingredient the
// owner does not have.
func (s *ProductService) buildProduct(ownerID string, req ProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, apperr.InvalidInput("product name is required")
	}
	if req.Price < 0 {
		return nil, apperr.InvalidInput("price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, apperr.InvalidInput("stock cannot be negative")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Available:   available,
		Ingredients: make([]models.RecipeEntry, 0, len(req.Ingredients)),
	}

	seen := map[string]bool{}
	for i, entry := range req.Ingredients {
		if entry.IngredientID == "" {
			return nil, apperr.InvalidInput("recipe entry %d: ingredient ID is required", i+1)
		}
		if entry.Quantity < 0 {
			return nil, apperr.InvalidInput("recipe entry %d: quantity cannot be negative", i+1)
		}
		if seen[entry.IngredientID] {
			return nil, apperr.InvalidInput("recipe entry %d: duplicate ingredient %s", i+1, entry.IngredientID)
		}
		seen[entry.IngredientID] = true

		ingredient, err := s.ingredientRepo.GetByID(ownerID, entry.IngredientID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return nil, apperr.InvalidInput("recipe entry %d: ingredient %s not found", i+1, entry.IngredientID)
			}
			return nil, err
		}

		product.Ingredients = append(product.Ingredients, models.RecipeEntry{
			IngredientID:   ingredient.ID,
			IngredientName: ingredient.Name,
			Unit:           ingredient.Unit,
			Quantity:       entry.Quantity,
			Stock:          ingredient.Stock,
		})
	}

	return product, nil
}
