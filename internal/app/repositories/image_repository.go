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
)

// ImageRepository handles database operations for image metadata
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
	GetByID(ctx context.Context, id int64) (*models.Image, error)
	ListByTrip(ctx context.Context, tripID int64) ([]models.Image, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Image, error)
	SetMain(ctx context.Context, id, tripID int64) error
	Delete(ctx context.Context, id int64) (*models.Image, error)
}

type imageRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(database *db.PostgresDB) ImageRepository {
	return &imageRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const imageColumns = "id, description, url, trip_id, user_id, main_img, created_at"

func scanImage(row pgx.Row) (*models.Image, error) {
	img := &models.Image{}
	err := row.Scan(&img.ID, &img.Description, &img.URL, &img.TripID, &img.UserID, &img.MainImg, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Create inserts image metadata. When the new image is flagged as the main
// image of a trip, the previous main image is demoted in the same
// transaction.
func (r *imageRepository) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	var created *models.Image

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if image.MainImg && image.TripID != nil {
			_, err := tx.Exec(ctx,
				`UPDATE images SET main_img = FALSE WHERE trip_id = $1 AND main_img = TRUE`,
				*image.TripID)
			if err != nil {
				return fmt.Errorf("error demoting previous main image: %w", err)
			}
		}

		var err error
		created, err = scanImage(tx.QueryRow(ctx,
			`INSERT INTO images (description, url, trip_id, user_id, main_img)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+imageColumns,
			image.Description, image.URL, image.TripID, image.UserID, image.MainImg))
		if err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.NewBadRequestError("trip or user does not exist")
			}
			return fmt.Errorf("error creating image: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID retrieves image metadata by ID
func (r *imageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	sql, args, err := r.sb.Select(imageColumns).
		From("images").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get image query: %w", err)
	}

	img, err := scanImage(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("image not found")
		}
		return nil, fmt.Errorf("error getting image by ID: %w", err)
	}

	return img, nil
}

// ListByTrip retrieves all images attached to a trip, main image first
func (r *imageRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Image, error) {
	return r.list(ctx, squirrel.Eq{"trip_id": tripID})
}

// ListByUser retrieves all images attached to a user profile
func (r *imageRepository) ListByUser(ctx context.Context, userID int64) ([]models.Image, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *imageRepository) list(ctx context.Context, where squirrel.Eq) ([]models.Image, error) {
	sql, args, err := r.sb.Select(imageColumns).
		From("images").
		Where(where).
		OrderBy("main_img DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list images query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning image row: %w", err)
		}
		images = append(images, *img)
	}

	return images, rows.Err()
}

// SetMain promotes an image to the trip's main image, demoting the rest
func (r *imageRepository) SetMain(ctx context.Context, id, tripID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE images SET main_img = FALSE WHERE trip_id = $1 AND main_img = TRUE`, tripID)
		if err != nil {
			return fmt.Errorf("error demoting previous main image: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE images SET main_img = TRUE WHERE id = $1 AND trip_id = $2`, id, tripID)
		if err != nil {
			return fmt.Errorf("error promoting main image: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewResourceNotFoundError("image not found")
		}

		return nil
	})
}

// Delete removes image metadata and returns the deleted record so the
// caller can remove the stored file.
func (r *imageRepository) Delete(ctx context.Context, id int64) (*models.Image, error) {
	img, err := scanImage(r.db.Pool.QueryRow(ctx,
		`DELETE FROM images WHERE id = $1 RETURNING `+imageColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("image not found")
		}
		return nil, fmt.Errorf("error deleting image: %w", err)
	}
	return img, nil
}
