package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tillpoint/internal/service"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/logger"
)

type stubAuthService struct {
	validToken string
	userID     string
}

var _ service.AuthServiceInterface = (*stubAuthService)(nil)

func (s *stubAuthService) Register(service.RegisterRequest) (*service.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(service.LoginRequest) (*service.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) VerifyToken(token string) (string, error) {
	if token == s.validToken {
		return s.userID, nil
	}
	return "", apperr.InvalidInput("invalid or expired token")
}

type stubUserRepo struct {
	existingID string
}

func (r *stubUserRepo) Create(*models.User) error { return nil }

func (r *stubUserRepo) GetByUsername(username string) (*models.User, error) {
	return nil, apperr.NotFound("user %s not found", username)
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	if id == r.existingID {
		return &models.User{ID: id}, nil
	}
	return nil, apperr.NotFound("user %s not found", id)
}

func newAuthFixture() *Auth {
	log := logger.New(logger.Config{Output: "discard"})
	return NewAuth(
		&stubAuthService{validToken: "good-token", userID: "user-1"},
		&stubUserRepo{existingID: "user-1"},
		log,
	)
}

func doRequest(auth *Auth, authorization string) (*httptest.ResponseRecorder, string) {
	var seenUserID string
	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seenUserID
}

func TestRequireAuth_ValidToken(t *testing.T) {
	rec, userID := doRequest(newAuthFixture(), "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userID)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, _ := doRequest(newAuthFixture(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	rec, _ := doRequest(newAuthFixture(), "Basic Zm9vOmJhcg==")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	rec, _ := doRequest(newAuthFixture(), "Bearer forged-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	log := logger.New(logger.Config{Output: "discard"})
	auth := NewAuth(
		&stubAuthService{validToken: "good-token", userID: "user-gone"},
		&stubUserRepo{existingID: "user-1"},
		log,
	)

	rec, _ := doRequest(auth, "Bearer good-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserID_EmptyWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserID(req.Context()))
}
