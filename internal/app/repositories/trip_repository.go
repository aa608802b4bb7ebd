package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/app/models/dto"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// TripRepository handles trip database operations. Creation and date updates
// are invariant-guarded writes: they lock the owning user row and verify the
// date-overlap rule inside a single transaction.
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	GetByID(ctx context.Context, id int64) (*models.Trip, error)
	Search(ctx context.Context, filter *dto.TripSearchFilter) ([]*models.Trip, int64, error)
	Update(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]*models.Trip, error)

	// Capacity oracle: capacity, creator and accepted non-creator count,
	// read in a single statement.
	GetCapacityAndCount(ctx context.Context, tripID int64) (*models.TripCapacity, error)
	// Trip ownership check
	IsCreator(ctx context.Context, tripID, userID int64) (bool, error)
	// Overlap checker: first trip of userID (created or accepted participant)
	// whose date range intersects [start, end], excluding excludeTripID when
	// non-nil. Returns 0 when there is no conflict.
	FindDateConflict(ctx context.Context, userID int64, start, end time.Time, excludeTripID *int64) (int64, error)
}

type tripRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(database *db.PostgresDB) TripRepository {
	return &tripRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const tripColumns = "id, origin, destination, title, description, creator_id, start_date, end_date, " +
	"estimated_cost, min_participants, transport, accommodation, itinerary, status, latitude, longitude, " +
	"created_at, updated_at"

func scanTrip(row pgx.Row) (*models.Trip, error) {
	trip := &models.Trip{}
	err := row.Scan(
		&trip.ID, &trip.Origin, &trip.Destination, &trip.Title, &trip.Description,
		&trip.CreatorID, &trip.StartDate, &trip.EndDate, &trip.EstimatedCost,
		&trip.MinParticipants, &trip.Transport, &trip.Accommodation, &trip.Itinerary,
		&trip.Status, &trip.Latitude, &trip.Longitude, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Create inserts the trip and materializes the creator's accepted
// participation row, after verifying the creator has no overlapping
// commitment. The creator's user row is locked for the duration of the
// transaction so two concurrent creations cannot both pass the check.
func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	var created *models.Trip

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockUserRow(ctx, tx, trip.CreatorID); err != nil {
			return err
		}

		conflictID, err := findDateConflict(ctx, tx, trip.CreatorID, trip.StartDate, trip.EndDate, nil)
		if err != nil {
			return err
		}
		if conflictID != 0 {
			return apperrors.NewDateConflictError(conflictID)
		}

		sql, args, err := r.sb.Insert("trips").
			Columns("origin", "destination", "title", "description", "creator_id", "start_date", "end_date",
				"estimated_cost", "min_participants", "transport", "accommodation", "itinerary", "status",
				"latitude", "longitude").
			Values(trip.Origin, trip.Destination, trip.Title, trip.Description, trip.CreatorID,
				trip.StartDate, trip.EndDate, trip.EstimatedCost, trip.MinParticipants, trip.Transport,
				trip.Accommodation, trip.Itinerary, trip.Status, trip.Latitude, trip.Longitude).
			Suffix("RETURNING " + tripColumns).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create trip query: %w", err)
		}

		created, err = scanTrip(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			return fmt.Errorf("error creating trip: %w", err)
		}

		// The creator occupies an accepted slot from the start
		_, err = tx.Exec(ctx,
			`INSERT INTO participations (trip_id, user_id, status, response_date)
			 VALUES ($1, $2, 'accepted', NOW())`,
			created.ID, created.CreatorID)
		if err != nil {
			return fmt.Errorf("error creating creator participation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID retrieves a trip by ID
func (r *tripRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	sql, args, err := r.sb.Select(tripColumns).
		From("trips").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get trip query: %w", err)
	}

	trip, err := scanTrip(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTripNotFound
		}
		logger.Error().Err(err).Int64("tripID", id).Msg("Error scanning trip row")
		return nil, fmt.Errorf("error getting trip by ID: %w", err)
	}

	return trip, nil
}

// Search lists trips matching the filter, with pagination
func (r *tripRepository) Search(ctx context.Context, filter *dto.TripSearchFilter) ([]*models.Trip, int64, error) {
	where := squirrel.And{}
	if filter.CreatorID != nil {
		where = append(where, squirrel.Eq{"creator_id": *filter.CreatorID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.Destination != nil {
		where = append(where, squirrel.ILike{"destination": "%" + *filter.Destination + "%"})
	}

	countQuery := r.sb.Select("COUNT(*)").From("trips")
	if len(where) > 0 {
		countQuery = countQuery.Where(where)
	}
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count trips query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting trips: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.PerPage)
	listQuery := r.sb.Select(tripColumns).
		From("trips").
		OrderBy("id DESC").
		Limit(uint64(filter.PerPage)).
		Offset(offset)
	if len(where) > 0 {
		listQuery = listQuery.Where(where)
	}
	sql, args, err = listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search trips query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching trips: %w", err)
	}
	defer rows.Close()

	trips := []*models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning trip row: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, total, rows.Err()
}

// Update persists the trip's mutable fields. When the date range moves, the
// overlap invariant is re-verified against the creator's other commitments
// under the same user-row lock used at creation.
func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	var updated *models.Trip

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockUserRow(ctx, tx, trip.CreatorID); err != nil {
			return err
		}

		excludeID := trip.ID
		conflictID, err := findDateConflict(ctx, tx, trip.CreatorID, trip.StartDate, trip.EndDate, &excludeID)
		if err != nil {
			return err
		}
		if conflictID != 0 {
			return apperrors.NewDateConflictError(conflictID)
		}

		sql, args, err := r.sb.Update("trips").
			SetMap(map[string]interface{}{
				"origin":           trip.Origin,
				"destination":      trip.Destination,
				"title":            trip.Title,
				"description":      trip.Description,
				"start_date":       trip.StartDate,
				"end_date":         trip.EndDate,
				"estimated_cost":   trip.EstimatedCost,
				"min_participants": trip.MinParticipants,
				"transport":        trip.Transport,
				"accommodation":    trip.Accommodation,
				"itinerary":        trip.Itinerary,
				"status":           trip.Status,
				"latitude":         trip.Latitude,
				"longitude":        trip.Longitude,
			}).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": trip.ID}).
			Suffix("RETURNING " + tripColumns).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update trip query: %w", err)
		}

		updated, err = scanTrip(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrTripNotFound
			}
			return fmt.Errorf("error updating trip: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a trip. Participations cascade at the schema level.
func (r *tripRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("tripID", id).Msg("Error deleting trip")
		return false, fmt.Errorf("error deleting trip: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByCreator retrieves all trips created by a user, newest first
func (r *tripRepository) ListByCreator(ctx context.Context, creatorID int64) ([]*models.Trip, error) {
	sql, args, err := r.sb.Select(tripColumns).
		From("trips").
		Where(squirrel.Eq{"creator_id": creatorID}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list trips query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing trips by creator: %w", err)
	}
	defer rows.Close()

	trips := []*models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trip row: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// GetCapacityAndCount reads the trip's capacity, creator and accepted
// non-creator participant count as one statement, so concurrent callers see
// a count that was valid at a single instant.
func (r *tripRepository) GetCapacityAndCount(ctx context.Context, tripID int64) (*models.TripCapacity, error) {
	return getCapacityAndCount(ctx, r.db.Pool, tripID)
}

func getCapacityAndCount(ctx context.Context, q querier, tripID int64) (*models.TripCapacity, error) {
	capacity := &models.TripCapacity{TripID: tripID}
	err := q.QueryRow(ctx,
		`SELECT t.min_participants, t.creator_id,
		        (SELECT COUNT(*) FROM participations p
		          WHERE p.trip_id = t.id AND p.status = 'accepted' AND p.user_id <> t.creator_id)
		   FROM trips t
		  WHERE t.id = $1`,
		tripID).Scan(&capacity.Capacity, &capacity.CreatorID, &capacity.AcceptedCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("error reading trip capacity: %w", err)
	}
	return capacity, nil
}

// IsCreator answers "is user X the creator of trip Y"
func (r *tripRepository) IsCreator(ctx context.Context, tripID, userID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1 AND creator_id = $2)`,
		tripID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking trip ownership: %w", err)
	}
	return exists, nil
}

// FindDateConflict searches the user's commitments for a date overlap
func (r *tripRepository) FindDateConflict(ctx context.Context, userID int64, start, end time.Time, excludeTripID *int64) (int64, error) {
	return findDateConflict(ctx, r.db.Pool, userID, start, end, excludeTripID)
}

// findDateConflict implements the overlap predicate
// A.start <= B.end AND B.start <= A.end over the union of trips the user
// created and trips the user is an accepted participant in. Pending,
// rejected and cancelled participations do not block.
func findDateConflict(ctx context.Context, q querier, userID int64, start, end time.Time, excludeTripID *int64) (int64, error) {
	query := `
		SELECT t.id FROM trips t
		 WHERE (t.creator_id = $1
		        OR t.id IN (SELECT p.trip_id FROM participations p
		                     WHERE p.user_id = $1 AND p.status = 'accepted'))
		   AND t.start_date <= $3 AND t.end_date >= $2`
	args := []any{userID, start, end}

	if excludeTripID != nil {
		query += ` AND t.id <> $4`
		args = append(args, *excludeTripID)
	}
	query += ` LIMIT 1`

	var conflictID int64
	err := q.QueryRow(ctx, query, args...).Scan(&conflictID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error checking date conflicts: %w", err)
	}

	return conflictID, nil
}

// lockUserRow takes a row lock on the user, serializing overlap-guarded
// writes for that user's commitments.
func lockUserRow(ctx context.Context, tx pgx.Tx, userID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error locking user row: %w", err)
	}
	return nil
}
