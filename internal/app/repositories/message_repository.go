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
	"github.com/traveltogether/api/internal/pkg/dberrors"
)

// MessageRepository handles database operations for direct messages
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	List(ctx context.Context, filter *dto.MessageFilter) ([]models.Message, int64, error)
	ListConversation(ctx context.Context, userA, userB int64) ([]models.Message, error)
	Update(ctx context.Context, id int64, text string) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
}

type messageRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(database *db.PostgresDB) MessageRepository {
	return &messageRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const messageColumns = "id, message, sender_id, receiver_id, trip_id, created_at"

func scanMessage(row pgx.Row) (*models.Message, error) {
	m := &models.Message{}
	err := row.Scan(&m.ID, &m.Message, &m.SenderID, &m.ReceiverID, &m.TripID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a new message
func (r *messageRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	sql, args, err := r.sb.Insert("messages").
		Columns("message", "sender_id", "receiver_id", "trip_id").
		Values(message.Message, message.SenderID, message.ReceiverID, message.TripID).
		Suffix("RETURNING " + messageColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create message query: %w", err)
	}

	created, err := scanMessage(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return nil, apperrors.NewBadRequestError("receiver or trip does not exist")
		}
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	return created, nil
}

// GetByID retrieves a message by ID
func (r *messageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	sql, args, err := r.sb.Select(messageColumns).
		From("messages").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get message query: %w", err)
	}

	m, err := scanMessage(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("message not found")
		}
		return nil, fmt.Errorf("error getting message by ID: %w", err)
	}

	return m, nil
}

// List retrieves messages matching the filter, enriched with sender,
// receiver and trip summaries, newest first.
func (r *messageRepository) List(ctx context.Context, filter *dto.MessageFilter) ([]models.Message, int64, error) {
	base := r.sb.Select().From("messages m")
	if filter.SenderID != nil {
		base = base.Where(squirrel.Eq{"m.sender_id": *filter.SenderID})
	}
	if filter.ReceiverID != nil {
		base = base.Where(squirrel.Eq{"m.receiver_id": *filter.ReceiverID})
	}
	if filter.TripID != nil {
		base = base.Where(squirrel.Eq{"m.trip_id": *filter.TripID})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count messages query: %w", err)
	}
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting messages: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.PerPage)
	sql, args, err := base.Columns(
		"m.id", "m.message", "m.sender_id", "m.receiver_id", "m.trip_id", "m.created_at",
		"s.id", "s.username", "s.email", "s.image",
		"rc.id", "rc.username", "rc.email", "rc.image",
		"t.id", "t.title", "t.origin", "t.destination", "t.start_date", "t.end_date",
	).
		Join("users s ON s.id = m.sender_id").
		Join("users rc ON rc.id = m.receiver_id").
		LeftJoin("trips t ON t.id = m.trip_id").
		OrderBy("m.created_at DESC").
		Limit(uint64(filter.PerPage)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanEnrichedMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, *m)
	}

	return messages, total, rows.Err()
}

// ListConversation retrieves the full two-way thread between two users,
// oldest first.
func (r *messageRepository) ListConversation(ctx context.Context, userA, userB int64) ([]models.Message, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT m.id, m.message, m.sender_id, m.receiver_id, m.trip_id, m.created_at,
		        s.id, s.username, s.email, s.image,
		        rc.id, rc.username, rc.email, rc.image,
		        t.id, t.title, t.origin, t.destination, t.start_date, t.end_date
		   FROM messages m
		   JOIN users s ON s.id = m.sender_id
		   JOIN users rc ON rc.id = m.receiver_id
		   LEFT JOIN trips t ON t.id = m.trip_id
		  WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		     OR (m.sender_id = $2 AND m.receiver_id = $1)
		  ORDER BY m.created_at ASC`,
		userA, userB)
	if err != nil {
		return nil, fmt.Errorf("error listing conversation: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanEnrichedMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}

	return messages, rows.Err()
}

func scanEnrichedMessage(row pgx.Row) (*models.Message, error) {
	m := &models.Message{Sender: &models.UserSummary{}, Receiver: &models.UserSummary{}}
	var tripID *int64
	var tripTitle, tripOrigin, tripDestination *string
	var tripStart, tripEnd *time.Time

	err := row.Scan(
		&m.ID, &m.Message, &m.SenderID, &m.ReceiverID, &m.TripID, &m.CreatedAt,
		&m.Sender.ID, &m.Sender.Username, &m.Sender.Email, &m.Sender.Image,
		&m.Receiver.ID, &m.Receiver.Username, &m.Receiver.Email, &m.Receiver.Image,
		&tripID, &tripTitle, &tripOrigin, &tripDestination, &tripStart, &tripEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("error scanning message row: %w", err)
	}

	if tripID != nil {
		m.Trip = &models.TripSummary{
			ID:          *tripID,
			Title:       *tripTitle,
			Origin:      *tripOrigin,
			Destination: *tripDestination,
			StartDate:   *tripStart,
			EndDate:     *tripEnd,
		}
	}

	return m, nil
}

// Update replaces the message text. Ownership is checked by the service.
func (r *messageRepository) Update(ctx context.Context, id int64, text string) (*models.Message, error) {
	m, err := scanMessage(r.db.Pool.QueryRow(ctx,
		`UPDATE messages SET message = $2 WHERE id = $1 RETURNING `+messageColumns,
		id, text))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("message not found")
		}
		return nil, fmt.Errorf("error updating message: %w", err)
	}
	return m, nil
}

// Delete removes a message
func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("message not found")
	}
	return nil
}
