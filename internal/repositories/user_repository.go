package repositories

import (
	"database/sql"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/database"
	"tillpoint/pkg/logger"
)

type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

type UserRepository struct {
	logger *logger.Logger
	db     *database.DB
}

func NewUserRepository(log *logger.Logger, db *database.DB) *UserRepository {
	return &UserRepository{
		logger: log.WithComponent("user_repository"),
		db:     db,
	}
}

// Create inserts a new user, letting the database generate the id.
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(query, user.Username, user.PasswordHash, user.DisplayName).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to register duplicate username", "username", user.Username)
			return apperr.Conflict("username %s is already taken", user.Username)
		}
		r.logger.Error("Failed to create user", "error", err, "username", user.Username)
		return apperr.Storage("failed to create user", err)
	}

	r.logger.Info("Created user", "user_id", user.ID, "username", user.Username)
	return nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, created_at
		FROM users
		WHERE username = $1
	`

	user := &models.User{}
	err := r.db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("user %s not found", username)
		}
		r.logger.Error("Failed to retrieve user", "error", err, "username", username)
		return nil, apperr.Storage("failed to retrieve user", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, created_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("user %s not found", id)
		}
		r.logger.Error("Failed to retrieve user", "error", err, "user_id", id)
		return nil, apperr.Storage("failed to retrieve user", err)
	}

	return user, nil
}
