package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tillpoint/internal/service"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/logger"
)

type stubOrderService struct {
	cancelErr   error
	cancelledID string
	getCalls    int
}

var _ service.OrderServiceInterface = (*stubOrderService)(nil)

func (s *stubOrderService) CreateOrder(ctx context.Context, ownerID string, req service.CreateOrderRequest) (*models.Order, error) {
	return nil, nil
}

func (s *stubOrderService) GetAllOrders(ownerID string) ([]*models.Order, error) {
	return []*models.Order{}, nil
}

func (s *stubOrderService) GetTodayOrders(ownerID string) ([]*models.Order, error) {
	return []*models.Order{}, nil
}

func (s *stubOrderService) GetOrderByID(ownerID, id string) (*models.Order, error) {
	s.getCalls++
	return &models.Order{ID: id}, nil
}

func (s *stubOrderService) CancelOrder(ctx context.Context, ownerID, id string) error {
	s.cancelledID = id
	return s.cancelErr
}

func newOrderFixture() (*OrderHandler, *stubOrderService) {
	svc := &stubOrderService{}
	h := NewOrderHandler(svc, logger.New(logger.Config{Output: "discard"}))
	return h, svc
}

func TestCancelOrder_ReturnsConfirmationMessage(t *testing.T) {
	h, svc := newOrderFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/ord-7", nil)
	req.SetPathValue("id", "ord-7")
	rec := httptest.NewRecorder()
	h.CancelOrder(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ord-7", svc.cancelledID)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "ord-7")
	assert.Contains(t, body["message"], "cancelled")

	// The confirmation is built locally, not from a second fetch.
	assert.Zero(t, svc.getCalls)
}

func TestCancelOrder_AlreadyCancelled(t *testing.T) {
	h, svc := newOrderFixture()
	svc.cancelErr = apperr.Conflict("order ord-7 is already cancelled")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/ord-7", nil)
	req.SetPathValue("id", "ord-7")
	rec := httptest.NewRecorder()
	h.CancelOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "already cancelled")
}
