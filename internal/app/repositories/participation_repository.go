package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/traveltogether/api/internal/app/models"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/pkg/apperrors"
	"github.com/traveltogether/api/internal/pkg/dberrors"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// ParticipationRepository owns participation rows and their status field.
// CreatePending and Accept are invariant-guarded writes: the capacity and
// duplicate checks run inside one transaction holding a lock on the trip
// row, so two racing requests cannot both pass the same check.
type ParticipationRepository interface {
	CreatePending(ctx context.Context, tripID, userID int64) (*models.Participation, error)
	GetByID(ctx context.Context, id int64) (*models.Participation, error)
	GetActiveByTripAndUser(ctx context.Context, tripID, userID int64) (*models.Participation, error)
	ListByTrip(ctx context.Context, tripID int64) ([]models.ParticipantProfile, error)
	ListByUserWithTrips(ctx context.Context, userID int64) ([]models.UserParticipation, error)
	ListPendingForCreator(ctx context.Context, creatorID int64) ([]models.UserParticipation, error)
	Accept(ctx context.Context, id int64) (*models.Participation, error)
	UpdateStatus(ctx context.Context, id int64, status models.ParticipationStatus) (*models.Participation, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type participationRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(database *db.PostgresDB) ParticipationRepository {
	return &participationRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const participationColumns = "id, trip_id, user_id, status, request_date, response_date"

func scanParticipation(row pgx.Row) (*models.Participation, error) {
	p := &models.Participation{}
	err := row.Scan(&p.ID, &p.TripID, &p.UserID, &p.Status, &p.RequestDate, &p.ResponseDate)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePending inserts a pending join request after re-verifying, under a
// lock on the trip row, that the trip exists, the requester is not the
// creator, the trip has room and no active request already occupies the
// (trip, user) slot. The partial unique index backs the duplicate check in
// case two transactions race on different trips' orderings.
func (r *participationRepository) CreatePending(ctx context.Context, tripID, userID int64) (*models.Participation, error) {
	var created *models.Participation

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		capacity, err := lockTripRow(ctx, tx, tripID)
		if err != nil {
			return err
		}

		if capacity.CreatorID == userID {
			return apperrors.ErrOwnTrip
		}
		if !capacity.HasRoom() {
			return apperrors.ErrTripFull
		}

		existing, err := getActiveByTripAndUser(ctx, tx, tripID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status == models.ParticipationAccepted {
				return apperrors.ErrAlreadyAccepted
			}
			return apperrors.ErrAlreadyPending
		}

		created, err = scanParticipation(tx.QueryRow(ctx,
			`INSERT INTO participations (trip_id, user_id, status)
			 VALUES ($1, $2, 'pending')
			 RETURNING `+participationColumns,
			tripID, userID))
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, ActiveParticipationConstraint) {
				return apperrors.ErrAlreadyPending
			}
			return fmt.Errorf("error creating participation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID retrieves a participation by ID
func (r *participationRepository) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	sql, args, err := r.sb.Select(participationColumns).
		From("participations").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get participation query: %w", err)
	}

	p, err := scanParticipation(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		logger.Error().Err(err).Int64("participationID", id).Msg("Error scanning participation row")
		return nil, fmt.Errorf("error getting participation by ID: %w", err)
	}

	return p, nil
}

// GetActiveByTripAndUser returns the pending or accepted participation for
// the (trip, user) pair, or nil when the slot is free. Historical rejected
// and cancelled rows are deliberately ignored.
func (r *participationRepository) GetActiveByTripAndUser(ctx context.Context, tripID, userID int64) (*models.Participation, error) {
	return getActiveByTripAndUser(ctx, r.db.Pool, tripID, userID)
}

func getActiveByTripAndUser(ctx context.Context, q querier, tripID, userID int64) (*models.Participation, error) {
	p, err := scanParticipation(q.QueryRow(ctx,
		`SELECT `+participationColumns+`
		   FROM participations
		  WHERE trip_id = $1 AND user_id = $2 AND status IN ('pending', 'accepted')
		  LIMIT 1`,
		tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting participation by trip and user: %w", err)
	}
	return p, nil
}

// ListByTrip retrieves all participations of a trip enriched with the
// requester's profile and average rating. Pending requests sort first,
// earliest request first within each tier.
func (r *participationRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.ParticipantProfile, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.trip_id", "p.user_id", "p.status", "p.request_date", "p.response_date",
		"u.username", "u.email", "u.image", "r.avg_rating",
	).
		From("participations p").
		Join("users u ON u.id = p.user_id").
		LeftJoin(avgRatingJoin + " ON r.rated_user_id = p.user_id").
		Where(squirrel.Eq{"p.trip_id": tripID}).
		OrderBy("CASE WHEN p.status = 'pending' THEN 0 ELSE 1 END", "p.request_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participations query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing participations by trip: %w", err)
	}
	defer rows.Close()

	participants := []models.ParticipantProfile{}
	for rows.Next() {
		var pp models.ParticipantProfile
		err := rows.Scan(
			&pp.ID, &pp.TripID, &pp.UserID, &pp.Status, &pp.RequestDate, &pp.ResponseDate,
			&pp.Username, &pp.Email, &pp.Image, &pp.AvgRating,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		participants = append(participants, pp)
	}

	return participants, rows.Err()
}

const avgRatingJoin = "(SELECT rated_user_id, AVG(score)::float8 AS avg_rating FROM ratings GROUP BY rated_user_id) r"

// ListByUserWithTrips retrieves all of a user's participations together with
// the trip and the trip creator's profile and average rating.
func (r *participationRepository) ListByUserWithTrips(ctx context.Context, userID int64) ([]models.UserParticipation, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.trip_id", "p.user_id", "p.status", "p.request_date", "p.response_date",
		"t.id", "t.origin", "t.destination", "t.title", "t.description", "t.creator_id",
		"t.start_date", "t.end_date", "t.estimated_cost", "t.min_participants", "t.transport",
		"t.accommodation", "t.itinerary", "t.status", "t.latitude", "t.longitude", "t.created_at", "t.updated_at",
		"u.username", "u.image", "r.avg_rating",
	).
		From("participations p").
		Join("trips t ON t.id = p.trip_id").
		Join("users u ON u.id = t.creator_id").
		LeftJoin(avgRatingJoin + " ON r.rated_user_id = t.creator_id").
		Where(squirrel.Eq{"p.user_id": userID}).
		Where("p.user_id <> t.creator_id").
		OrderBy("p.request_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list user participations query: %w", err)
	}

	return r.queryUserParticipations(ctx, sql, args)
}

// ListPendingForCreator retrieves all pending join requests across the
// trips created by creatorID, enriched with the requester's profile.
func (r *participationRepository) ListPendingForCreator(ctx context.Context, creatorID int64) ([]models.UserParticipation, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.trip_id", "p.user_id", "p.status", "p.request_date", "p.response_date",
		"t.id", "t.origin", "t.destination", "t.title", "t.description", "t.creator_id",
		"t.start_date", "t.end_date", "t.estimated_cost", "t.min_participants", "t.transport",
		"t.accommodation", "t.itinerary", "t.status", "t.latitude", "t.longitude", "t.created_at", "t.updated_at",
		"u.username", "u.image", "r.avg_rating",
	).
		From("participations p").
		Join("trips t ON t.id = p.trip_id").
		Join("users u ON u.id = p.user_id").
		LeftJoin(avgRatingJoin + " ON r.rated_user_id = p.user_id").
		Where(squirrel.Eq{"t.creator_id": creatorID, "p.status": models.ParticipationPending}).
		OrderBy("p.request_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending requests query: %w", err)
	}

	return r.queryUserParticipations(ctx, sql, args)
}

func (r *participationRepository) queryUserParticipations(ctx context.Context, sql string, args []interface{}) ([]models.UserParticipation, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing participations: %w", err)
	}
	defer rows.Close()

	participations := []models.UserParticipation{}
	for rows.Next() {
		var up models.UserParticipation
		err := rows.Scan(
			&up.ID, &up.TripID, &up.UserID, &up.Status, &up.RequestDate, &up.ResponseDate,
			&up.Trip.ID, &up.Trip.Origin, &up.Trip.Destination, &up.Trip.Title, &up.Trip.Description,
			&up.Trip.CreatorID, &up.Trip.StartDate, &up.Trip.EndDate, &up.Trip.EstimatedCost,
			&up.Trip.MinParticipants, &up.Trip.Transport, &up.Trip.Accommodation, &up.Trip.Itinerary,
			&up.Trip.Status, &up.Trip.Latitude, &up.Trip.Longitude, &up.Trip.CreatedAt, &up.Trip.UpdatedAt,
			&up.CreatorUsername, &up.CreatorImage, &up.CreatorRating,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning participation row: %w", err)
		}
		participations = append(participations, up)
	}

	return participations, rows.Err()
}

// Accept transitions a pending participation to accepted after re-checking
// capacity and the subject's date commitments under a trip-row lock. The
// final UPDATE is itself guarded on status = 'pending', so a row raced into
// a terminal status is never resurrected.
func (r *participationRepository) Accept(ctx context.Context, id int64) (*models.Participation, error) {
	var accepted *models.Participation

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := scanParticipation(tx.QueryRow(ctx,
			`SELECT `+participationColumns+` FROM participations WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrParticipationNotFound
			}
			return fmt.Errorf("error locking participation row: %w", err)
		}

		if current.Status != models.ParticipationPending {
			return apperrors.ErrTerminalStatus
		}

		capacity, err := lockTripRow(ctx, tx, current.TripID)
		if err != nil {
			return err
		}
		if !capacity.HasRoom() {
			return apperrors.ErrTripFull
		}

		// Accepting adds the trip to the subject's commitments, so the
		// overlap invariant has to hold for them as well. The user row lock
		// serializes concurrent accepts for the same user across trips.
		if err := lockUserRow(ctx, tx, current.UserID); err != nil {
			return err
		}
		conflictID, err := findDateConflict(ctx, tx, current.UserID, capacity.StartDate, capacity.EndDate, &current.TripID)
		if err != nil {
			return err
		}
		if conflictID != 0 {
			return apperrors.NewDateConflictError(conflictID)
		}

		accepted, err = scanParticipation(tx.QueryRow(ctx,
			`UPDATE participations
			    SET status = 'accepted', response_date = NOW()
			  WHERE id = $1 AND status = 'pending'
			  RETURNING `+participationColumns,
			id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrTerminalStatus
			}
			return fmt.Errorf("error accepting participation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return accepted, nil
}

// UpdateStatus sets the status and stamps response_date. Used for the
// unguarded transitions (reject, cancel); accepts go through Accept.
func (r *participationRepository) UpdateStatus(ctx context.Context, id int64, status models.ParticipationStatus) (*models.Participation, error) {
	p, err := scanParticipation(r.db.Pool.QueryRow(ctx,
		`UPDATE participations
		    SET status = $2, response_date = NOW()
		  WHERE id = $1
		  RETURNING `+participationColumns,
		id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		logger.Error().Err(err).Int64("participationID", id).Msg("Error updating participation status")
		return nil, fmt.Errorf("error updating participation status: %w", err)
	}

	return p, nil
}

// Delete physically removes a participation row
func (r *participationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM participations WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("participationID", id).Msg("Error deleting participation")
		return false, fmt.Errorf("error deleting participation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// lockedTripCapacity is the capacity oracle read taken under FOR UPDATE,
// extended with the trip dates needed for the overlap re-check on accept.
type lockedTripCapacity struct {
	models.TripCapacity
	StartDate time.Time
	EndDate   time.Time
}

// lockTripRow locks the trip row and reads capacity, creator, dates and the
// accepted non-creator count within the same transaction.
func lockTripRow(ctx context.Context, tx pgx.Tx, tripID int64) (*lockedTripCapacity, error) {
	capacity := &lockedTripCapacity{}
	capacity.TripID = tripID

	err := tx.QueryRow(ctx,
		`SELECT min_participants, creator_id, start_date, end_date
		   FROM trips WHERE id = $1 FOR UPDATE`,
		tripID).Scan(&capacity.Capacity, &capacity.CreatorID, &capacity.StartDate, &capacity.EndDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("error locking trip row: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM participations
		  WHERE trip_id = $1 AND status = 'accepted' AND user_id <> $2`,
		tripID, capacity.CreatorID).Scan(&capacity.AcceptedCount)
	if err != nil {
		return nil, fmt.Errorf("error counting accepted participations: %w", err)
	}

	return capacity, nil
}
