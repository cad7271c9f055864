package handler

import (
	"net/http"

	"tillpoint/internal/service"
	"tillpoint/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
	logger      *logger.Logger
}

func NewAuthHandler(authService service.AuthServiceInterface, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log.WithComponent("auth_handler"),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for register", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for login", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, resp)
}
