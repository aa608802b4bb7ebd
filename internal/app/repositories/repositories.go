package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/traveltogether/api/internal/db"
)

// ErrNotFound is the shared not-found error for all repositories
var ErrNotFound = errors.New("record not found")

// Active participation constraint name, used to map unique violations
// raced through the duplicate-join check.
const ActiveParticipationConstraint = "uq_participations_active"

// querier is the subset of pgx operations shared by pgxpool.Pool and pgx.Tx,
// so guarded queries can run either standalone or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          UserRepository
	TripRepository          TripRepository
	ParticipationRepository ParticipationRepository
	MessageRepository       MessageRepository
	RatingRepository        RatingRepository
	NotificationRepository  NotificationRepository
	ImageRepository         ImageRepository
	FavoriteRepository      FavoriteRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(database),
		TripRepository:          NewTripRepository(database),
		ParticipationRepository: NewParticipationRepository(database),
		MessageRepository:       NewMessageRepository(database),
		RatingRepository:        NewRatingRepository(database),
		NotificationRepository:  NewNotificationRepository(database),
		ImageRepository:         NewImageRepository(database),
		FavoriteRepository:      NewFavoriteRepository(database),
	}
}
