package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tillpoint/models"
	"tillpoint/pkg/logger"
)

type stubReportService struct {
	lastStart time.Time
	lastEnd   time.Time
	lastLimit int
}

func (s *stubReportService) GetSalesSummary(ownerID string, start, end time.Time) (*models.SalesSummary, error) {
	s.lastStart = start
	s.lastEnd = end
	return &models.SalesSummary{StartDate: start, EndDate: end}, nil
}

func (s *stubReportService) GetPopularProducts(ownerID string, limit int) ([]models.PopularProduct, error) {
	s.lastLimit = limit
	return []models.PopularProduct{}, nil
}

func newReportFixture() (*ReportHandler, *stubReportService) {
	svc := &stubReportService{}
	h := NewReportHandler(svc, logger.New(logger.Config{Output: "discard"}))
	return h, svc
}

func TestGetSalesSummary_ParsesDateRange(t *testing.T) {
	h, svc := newReportFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?start=2026-08-01&end=2026-08-31", nil)
	rec := httptest.NewRecorder()
	h.GetSalesSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.August, svc.lastStart.Month())
	assert.Equal(t, 1, svc.lastStart.Day())
	// End date is inclusive: the service receives midnight after it.
	assert.Equal(t, time.September, svc.lastEnd.Month())
	assert.Equal(t, 1, svc.lastEnd.Day())
}

func TestGetSalesSummary_DefaultsToToday(t *testing.T) {
	h, svc := newReportFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	rec := httptest.NewRecorder()
	h.GetSalesSummary(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 24*time.Hour, svc.lastEnd.Sub(svc.lastStart))
}

func TestGetSalesSummary_RejectsBadDate(t *testing.T) {
	h, _ := newReportFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary?start=yesterday", nil)
	rec := httptest.NewRecorder()
	h.GetSalesSummary(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "invalid start date")
}

func TestGetPopularProducts_ParsesLimit(t *testing.T) {
	h, svc := newReportFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/popular?limit=3", nil)
	rec := httptest.NewRecorder()
	h.GetPopularProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.lastLimit)
}

func TestGetPopularProducts_RejectsBadLimit(t *testing.T) {
	h, _ := newReportFixture()

	for _, raw := range []string{"0", "-2", "lots"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/popular?limit="+raw, nil)
		rec := httptest.NewRecorder()
		h.GetPopularProducts(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", raw)
	}
}
