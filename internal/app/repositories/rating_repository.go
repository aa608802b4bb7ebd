package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/dberrors"
)

// RatingRepository handles database operations for ratings
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	List(ctx context.Context, filter *dto.RatingFilter) ([]models.Rating, int64, error)
	Update(ctx context.Context, id int64, score int, comment *string) (*models.Rating, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, tripID, authorID, ratedUserID int64) (bool, error)
}

type ratingRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(database *db.PostgresDB) RatingRepository {
	return &ratingRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const ratingColumns = "id, trip_id, author_id, rated_user_id, score, comment, created_at"

func scanRating(row pgx.Row) (*models.Rating, error) {
	rt := &models.Rating{}
	err := row.Scan(&rt.ID, &rt.TripID, &rt.AuthorID, &rt.RatedUserID, &rt.Score, &rt.Comment, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Create inserts a new rating. One rating per (trip, author, rated user) is
// enforced by a unique constraint.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	sql, args, err := r.sb.Insert("ratings").
		Columns("trip_id", "author_id", "rated_user_id", "score", "comment").
		Values(rating.TripID, rating.AuthorID, rating.RatedUserID, rating.Score, rating.Comment).
		Suffix("RETURNING " + ratingColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create rating query: %w", err)
	}

	created, err := scanRating(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflictError("you have already rated this user for this trip")
		}
		if dberrors.IsForeignKeyError(err) {
			return nil, apperrors.NewBadRequestError("trip or user does not exist")
		}
		return nil, fmt.Errorf("error creating rating: %w", err)
	}

	return created, nil
}

// GetByID retrieves a rating by ID
func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	sql, args, err := r.sb.Select(ratingColumns).
		From("ratings").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get rating query: %w", err)
	}

	rt, err := scanRating(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("rating not found")
		}
		return nil, fmt.Errorf("error getting rating by ID: %w", err)
	}

	return rt, nil
}

// List retrieves ratings matching the filter, newest first
func (r *ratingRepository) List(ctx context.Context, filter *dto.RatingFilter) ([]models.Rating, int64, error) {
	base := r.sb.Select().From("ratings")
	if filter.TripID != nil {
		base = base.Where(squirrel.Eq{"trip_id": *filter.TripID})
	}
	if filter.RatedUserID != nil {
		base = base.Where(squirrel.Eq{"rated_user_id": *filter.RatedUserID})
	}
	if filter.AuthorID != nil {
		base = base.Where(squirrel.Eq{"author_id": *filter.AuthorID})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count ratings query: %w", err)
	}
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting ratings: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.PerPage)
	sql, args, err := base.Columns(ratingColumns).
		OrderBy("created_at DESC").
		Limit(uint64(filter.PerPage)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list ratings query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning rating row: %w", err)
		}
		ratings = append(ratings, *rt)
	}

	return ratings, total, rows.Err()
}

// Update replaces the score and comment of a rating
func (r *ratingRepository) Update(ctx context.Context, id int64, score int, comment *string) (*models.Rating, error) {
	rt, err := scanRating(r.db.Pool.QueryRow(ctx,
		`UPDATE ratings SET score = $2, comment = $3 WHERE id = $1 RETURNING `+ratingColumns,
		id, score, comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("rating not found")
		}
		return nil, fmt.Errorf("error updating rating: %w", err)
	}
	return rt, nil
}

// Delete removes a rating
func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("rating not found")
	}
	return nil
}

// Exists reports whether the author already rated this user for this trip
func (r *ratingRepository) Exists(ctx context.Context, tripID, authorID, ratedUserID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ratings WHERE trip_id = $1 AND author_id = $2 AND rated_user_id = $3)`,
		tripID, authorID, ratedUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking rating existence: %w", err)
	}
	return exists, nil
}
