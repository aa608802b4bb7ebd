package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/dberrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// UserRepository handles database operations for users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	SetImage(ctx context.Context, id int64, imageURL *string) error
	Delete(ctx context.Context, id int64) error
	GetAverageRating(ctx context.Context, id int64) (*float64, error)
}

type userRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) UserRepository {
	return &userRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const userColumns = "id, username, email, password, image, phone, bio, interests, role, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Image, &u.Phone,
		&u.Bio, &u.Interests, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "password", "phone", "bio", "interests", "role").
		Values(user.Username, user.Email, user.Password, user.Phone, user.Bio, user.Interests, user.Role).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create user query: %w", err)
	}

	created, err := scanUser(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getByField(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByField(ctx, "email", email)
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByField(ctx, "username", username)
}

func (r *userRepository) getByField(ctx context.Context, field string, value interface{}) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{field: value}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u, err := scanUser(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by %s: %w", field, err)
	}

	return u, nil
}

// Update updates a user's profile fields
func (r *userRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	sql, args, err := r.sb.Update("users").
		Set("username", user.Username).
		Set("phone", user.Phone).
		Set("bio", user.Bio).
		Set("interests", user.Interests).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update user query: %w", err)
	}

	updated, err := scanUser(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("username is already taken")
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error updating user")
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`,
		id, hashedPassword)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetImage sets or clears the profile image URL
func (r *userRepository) SetImage(ctx context.Context, id int64, imageURL *string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET image = $2, updated_at = NOW() WHERE id = $1`,
		id, imageURL)
	if err != nil {
		return fmt.Errorf("error updating user image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user and, through cascades, their dependent rows
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetAverageRating returns the mean score received by the user, or nil when
// the user has no ratings yet.
func (r *userRepository) GetAverageRating(ctx context.Context, id int64) (*float64, error) {
	var avg *float64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT AVG(score)::float8 FROM ratings WHERE rated_user_id = $1`, id).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("error getting average rating: %w", err)
	}
	return avg, nil
}
