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
)

// NotificationRepository handles database operations for notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	ListByReceiver(ctx context.Context, receiverID int64, filter *dto.NotificationFilter) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, receiverID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type notificationRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(database *db.PostgresDB) NotificationRepository {
	return &notificationRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const notificationColumns = "id, title, message, type, is_read, sender_id, receiver_id, created_at"

func scanNotification(row pgx.Row) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.SenderID, &n.ReceiverID, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Create inserts a new notification
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("title", "message", "type", "sender_id", "receiver_id").
		Values(notification.Title, notification.Message, notification.Type,
			notification.SenderID, notification.ReceiverID).
		Suffix("RETURNING " + notificationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create notification query: %w", err)
	}

	created, err := scanNotification(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("error creating notification: %w", err)
	}

	return created, nil
}

// GetByID retrieves a notification by ID
func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sql, args, err := r.sb.Select(notificationColumns).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notification query: %w", err)
	}

	n, err := scanNotification(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("notification not found")
		}
		return nil, fmt.Errorf("error getting notification by ID: %w", err)
	}

	return n, nil
}

// ListByReceiver retrieves a user's notifications, newest first
func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID int64, filter *dto.NotificationFilter) ([]models.Notification, int64, error) {
	base := r.sb.Select().From("notifications").Where(squirrel.Eq{"receiver_id": receiverID})
	if filter.OnlyUnread {
		base = base.Where(squirrel.Eq{"is_read": false})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count notifications query: %w", err)
	}
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	offset := uint64((filter.Page - 1) * filter.PerPage)
	sql, args, err := base.Columns(notificationColumns).
		OrderBy("created_at DESC").
		Limit(uint64(filter.PerPage)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, *n)
	}

	return notifications, total, rows.Err()
}

// CountUnread returns the number of unread notifications for a user
func (r *notificationRepository) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND is_read = FALSE`,
		receiverID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a single notification as read
func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("notification not found")
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read and returns how
// many rows changed.
func (r *notificationRepository) MarkAllRead(ctx context.Context, receiverID int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE receiver_id = $1 AND is_read = FALSE`,
		receiverID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a notification
func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("notification not found")
	}
	return nil
}
