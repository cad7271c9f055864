package repositories

import (
	"time"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type ReportRepositoryInterface interface {
	GetSalesSummary(ownerID string, start, end time.Time) (*models.SalesSummary, error)
	GetPopularProducts(ownerID string, limit int) ([]models.PopularProduct, error)
}

// ReportRepository runs read-only SQL rollups over completed orders.
// Cancelled orders never count towards revenue.
type ReportRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewReportRepository(log *logger.Logger, db *database.DB) *ReportRepository {
	return &ReportRepository{
		logger: log.WithComponent("report_repository"),
		db:     db,
	}
}

func (r *ReportRepository) GetSalesSummary(ownerID string, start, end time.Time) (*models.SalesSummary, error) {
	summary := &models.SalesSummary{StartDate: start, EndDate: end}

	ordersQuery := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE owner_id = $1 AND status = $2 AND created_at >= $3 AND created_at < $4
	`
	err := r.db.QueryRow(ordersQuery, ownerID, models.OrderStatusCompleted, start, end).
		Scan(&summary.TotalRevenue, &summary.OrderCount)
	if err != nil {
		r.logger.Error("Failed to compute sales summary", "error", err)
		return nil, apperr.Storage("failed to compute sales summary", err)
	}

	itemsQuery := `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.owner_id = $1 AND o.status = $2 AND o.created_at >= $3 AND o.created_at < $4
	`
	err = r.db.QueryRow(itemsQuery, ownerID, models.OrderStatusCompleted, start, end).
		Scan(&summary.ItemsSold)
	if err != nil {
		r.logger.Error("Failed to compute items sold", "error", err)
		return nil, apperr.Storage("failed to compute items sold", err)
	}

	return summary, nil
}

func (r *ReportRepository) GetPopularProducts(ownerID string, limit int) ([]models.PopularProduct, error) {
	query := `
		SELECT COALESCE(oi.product_id::text, ''), oi.product_name,
		       SUM(oi.quantity) AS quantity_sold,
		       SUM(oi.subtotal) AS total_revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.owner_id = $1 AND o.status = $2
		GROUP BY oi.product_id, oi.product_name
		ORDER BY quantity_sold DESC, total_revenue DESC
		LIMIT $3
	`

	rows, err := r.db.Query(query, ownerID, models.OrderStatusCompleted, limit)
	if err != nil {
		r.logger.Error("Failed to query popular products", "error", err)
		return nil, apperr.Storage("failed to query popular products", err)
	}
	defer rows.Close()

	popular := []models.PopularProduct{}
	for rows.Next() {
		item := models.PopularProduct{}
		err := rows.Scan(&item.ProductID, &item.ProductName, &item.QuantitySold, &item.TotalRevenue)
		if err != nil {
			r.logger.Error("Failed to scan popular product", "error", err)
			return nil, apperr.Storage("failed to scan popular product", err)
		}
		popular = append(popular, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("error iterating popular product rows", err)
	}

	return popular, nil
}
