package handler

import (
	"net/http"

	"tillpoint/internal/middleware"
	"tillpoint/internal/service"
	"tillpoint/pkg/logger"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseServiceInterface
	logger          *logger.Logger
}

func NewPurchaseHandler(purchaseService service.PurchaseServiceInterface, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		logger:          log.WithComponent("purchase_handler"),
	}
}

// RecordPurchases handles POST /api/v1/purchases
func (h *PurchaseHandler) RecordPurchases(w http.ResponseWriter, r *http.Request) {
	var req service.RecordPurchasesRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for record purchases", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	purchases, err := h.purchaseService.RecordPurchases(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, purchases)
}

// GetAllPurchases handles GET /api/v1/purchases
func (h *PurchaseHandler) GetAllPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchaseService.GetAllPurchases(middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, purchases)
}

// GetPurchaseByID handles GET /api/v1/purchases/{id}
func (h *PurchaseHandler) GetPurchaseByID(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.purchaseService.GetPurchaseByID(middleware.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, purchase)
}

// DeletePurchase handles DELETE /api/v1/purchases/{id}
func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	err := h.purchaseService.DeletePurchase(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
