package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/envconfig"
	"tillpoint/pkg/logger"
)

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthServiceInterface interface {
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(req LoginRequest) (*AuthResponse, error)
	VerifyToken(token string) (string, error)
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	config   envconfig.AuthConfig
	logger   *logger.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, config envconfig.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		config:   config,
		logger:   log.WithComponent("auth_service"),
	}
}

// Register creates an account and signs the caller straight in. The
// username also acts as the tenant key, so taking one is first come, first
// served.
func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	s.logger.Info("Registering new user", "username", req.Username)

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperr.InvalidInput("username is required")
	}
	if len(req.Password) < 6 {
		return nil, apperr.InvalidInput("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, apperr.Storage("failed to hash password", err)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a signed token. Unknown usernames
// and wrong passwords produce the same error, so callers cannot probe for
// which accounts exist.
func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	s.logger.Info("Login attempt", "username", req.Username)

	if req.Username == "" || req.Password == "" {
		return nil, apperr.InvalidInput("username and password are required")
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			s.logger.Warn("Login failed: unknown username", "username", req.Username)
			return nil, apperr.InvalidInput("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login failed: wrong password", "username", req.Username)
		return nil, apperr.InvalidInput("invalid username or password")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	return &AuthResponse{Token: token, User: user}, nil
}

// VerifyToken validates the signature and expiry and returns the user ID the
// token was issued for. It does not hit storage; callers who need to know
// the user still exists check the repository themselves.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.InvalidInput("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", apperr.InvalidInput("invalid or expired token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", apperr.InvalidInput("token has no subject")
	}

	return subject, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign token", "error", err)
		return "", apperr.Storage("failed to sign token", err)
	}

	return signed, nil
}
