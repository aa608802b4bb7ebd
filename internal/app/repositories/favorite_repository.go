package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/dberrors"
)

// FavoriteRepository handles database operations for trip bookmarks
type FavoriteRepository interface {
	Create(ctx context.Context, userID, tripID int64) (*models.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error)
	Delete(ctx context.Context, userID, tripID int64) error
	Exists(ctx context.Context, userID, tripID int64) (bool, error)
}

type favoriteRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(database *db.PostgresDB) FavoriteRepository {
	return &favoriteRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create bookmarks a trip for a user
func (r *favoriteRepository) Create(ctx context.Context, userID, tripID int64) (*models.Favorite, error) {
	f := &models.Favorite{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO favorites (user_id, trip_id)
		 VALUES ($1, $2)
		 RETURNING id, user_id, trip_id, created_at`,
		userID, tripID).Scan(&f.ID, &f.UserID, &f.TripID, &f.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("trip is already in favorites")
		}
		if dberrors.IsForeignKeyError(err) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("error creating favorite: %w", err)
	}
	return f, nil
}

// ListByUser retrieves a user's bookmarked trips with trip summaries
func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	sql, args, err := r.sb.Select(
		"f.id", "f.user_id", "f.trip_id", "f.created_at",
		"t.id", "t.title", "t.origin", "t.destination", "t.start_date", "t.end_date",
	).
		From("favorites f").
		Join("trips t ON t.id = f.trip_id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list favorites query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		f := models.Favorite{Trip: &models.TripSummary{}}
		err := rows.Scan(
			&f.ID, &f.UserID, &f.TripID, &f.CreatedAt,
			&f.Trip.ID, &f.Trip.Title, &f.Trip.Origin, &f.Trip.Destination,
			&f.Trip.StartDate, &f.Trip.EndDate,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning favorite row: %w", err)
		}
		favorites = append(favorites, f)
	}

	return favorites, rows.Err()
}

// Delete removes a bookmark
func (r *favoriteRepository) Delete(ctx context.Context, userID, tripID int64) error {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND trip_id = $2`, userID, tripID)
	if err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("favorite not found")
	}
	return nil
}

// Exists reports whether the user has bookmarked the trip
func (r *favoriteRepository) Exists(ctx context.Context, userID, tripID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND trip_id = $2)`,
		userID, tripID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite existence: %w", err)
	}
	return exists, nil
}
