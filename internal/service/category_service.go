package service

import (
	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/logger"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryServiceInterface interface {
	GetAllCategories(ownerID string) ([]*models.Category, error)
	GetCategoryByID(ownerID, id string) (*models.Category, error)
	CreateCategory(ownerID string, req CategoryRequest) (*models.Category, error)
	UpdateCategory(ownerID, id string, req CategoryRequest) (*models.Category, error)
	DeleteCategory(ownerID, id string) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *logger.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, log *logger.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       log.WithComponent("category_service"),
	}
}

func (s *CategoryService) GetAllCategories(ownerID string) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ownerID)
	if err != nil {
		s.logger.Error("Failed to fetch categories", "error", err)
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) GetCategoryByID(ownerID, id string) (*models.Category, error) {
	if id == "" {
		return nil, apperr.InvalidInput("category ID is required")
	}

	category, err := s.categoryRepo.GetByID(ownerID, id)
	if err != nil {
		s.logger.Warn("Category not found", "category_id", id, "error", err)
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ownerID string, req CategoryRequest) (*models.Category, error) {
	s.logger.Info("Creating new category", "name", req.Name)

	if req.Name == "" {
		return nil, apperr.InvalidInput("category name is required")
	}

	category := &models.Category{Name: req.Name}
	if err := s.categoryRepo.Create(ownerID, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *CategoryService) UpdateCategory(ownerID, id string, req CategoryRequest) (*models.Category, error) {
	s.logger.Info("Updating category", "category_id", id)

	if id == "" {
		return nil, apperr.InvalidInput("category ID is required")
	}
	if req.Name == "" {
		return nil, apperr.InvalidInput("category name is required")
	}

	category := &models.Category{Name: req.Name}
	if err := s.categoryRepo.Update(ownerID, id, category); err != nil {
		return nil, err
	}

	return s.categoryRepo.GetByID(ownerID, id)
}

func (s *CategoryService) DeleteCategory(ownerID, id string) error {
	s.logger.Info("Deleting category", "category_id", id)

	if id == "" {
		return apperr.InvalidInput("category ID is required")
	}

	return s.categoryRepo.Delete(ownerID, id)
}
