package handler

import (
	"net/http"

	"tillpoint/internal/middleware"
	"tillpoint/internal/service"
	"tillpoint/pkg/logger"
)

type IngredientHandler struct {
	ingredientService service.IngredientServiceInterface
	logger            *logger.Logger
}

func NewIngredientHandler(ingredientService service.IngredientServiceInterface, log *logger.Logger) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		logger:            log.WithComponent("ingredient_handler"),
	}
}

// GetAllIngredients handles GET /api/v1/ingredients
func (h *IngredientHandler) GetAllIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredientService.GetAllIngredients(middleware.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, ingredients)
}

// GetIngredientByID handles GET /api/v1/ingredients/{id}
func (h *IngredientHandler) GetIngredientByID(w http.ResponseWriter, r *http.Request) {
	ingredient, err := h.ingredientService.GetIngredientByID(middleware.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, ingredient)
}

// CreateIngredient handles POST /api/v1/ingredients
func (h *IngredientHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req service.IngredientRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for create ingredient", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ingredient, err := h.ingredientService.CreateIngredient(middleware.UserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, ingredient)
}

// UpdateIngredient handles PUT /api/v1/ingredients/{id}
func (h *IngredientHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	var req service.IngredientRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for update ingredient", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ingredient, err := h.ingredientService.UpdateIngredient(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, ingredient)
}

// SetIngredientStock handles PUT /api/v1/ingredients/{id}/stock
func (h *IngredientHandler) SetIngredientStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stock float64 `json:"stock"`
	}
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for set ingredient stock", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerID := middleware.UserID(r.Context())
	id := r.PathValue("id")
	if err := h.ingredientService.SetIngredientStock(r.Context(), ownerID, id, req.Stock); err != nil {
		writeServiceError(w, err)
		return
	}

	ingredient, err := h.ingredientService.GetIngredientByID(ownerID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, ingredient)
}

// DeleteIngredient handles DELETE /api/v1/ingredients/{id}
func (h *IngredientHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	err := h.ingredientService.DeleteIngredient(r.Context(), middleware.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
