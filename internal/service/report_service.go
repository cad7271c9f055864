package service

import (
	"time"

	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/logger"
)

const defaultPopularLimit = 5

type ReportServiceInterface interface {
	GetSalesSummary(ownerID string, start, end time.Time) (*models.SalesSummary, error)
	GetPopularProducts(ownerID string, limit int) ([]models.PopularProduct, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *logger.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, log *logger.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		logger:     log.WithComponent("report_service"),
	}
}

// GetSalesSummary aggregates completed orders in [start, end). The end bound
// is exclusive so adjacent ranges never double-count an order.
func (s *ReportService) GetSalesSummary(ownerID string, start, end time.Time) (*models.SalesSummary, error) {
	if end.Before(start) {
		return nil, apperr.InvalidInput("end date must not be before start date")
	}

	summary, err := s.reportRepo.GetSalesSummary(ownerID, start, end)
	if err != nil {
		s.logger.Error("Failed to build sales summary", "error", err)
		return nil, err
	}
	return summary, nil
}

func (s *ReportService) GetPopularProducts(ownerID string, limit int) ([]models.PopularProduct, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	popular, err := s.reportRepo.GetPopularProducts(ownerID, limit)
	if err != nil {
		s.logger.Error("Failed to build popular products report", "error", err)
		return nil, err
	}
	return popular, nil
}
