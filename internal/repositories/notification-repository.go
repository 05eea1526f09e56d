package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"roombook/internal/entities"
	"roombook/internal/infrastructure/bd"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/types"
)

var notificationMap = map[string]string{
	"id":         "n.id",
	"type":       "n.type",
	"read":       "n.read",
	"user_id":    "n.user_id",
	"booking_id": "n.booking_id",
	"created_at": "n.created_at",
}

type NotificationRepositoryInterface interface {
	GetForUser(ctx context.Context, userID uint64, filter types.Filter) ([]entities.Notification, uint64, error)
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error)
	FindForUser(ctx context.Context, userID, id uint64) (*entities.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (uint64, error)
	SetRead(ctx context.Context, userID, id uint64, read bool) error
	MarkAllRead(ctx context.Context, userID uint64) error
	MarkAllReadGlobal(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, userID, id uint64) error
	HardDelete(ctx context.Context, id uint64) error
	Create(ctx context.Context, notification entities.Notification) (uint64, error)
	CreateBatch(ctx context.Context, notifications []entities.Notification) error
	ExistsForBooking(ctx context.Context, userID, bookingID uint64, notificationType string) (bool, error)
}

type NotificationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewNotificationRepository(storage *pgxpool.Pool, logger *zap.Logger) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage, logger: logger}
}

const notificationColumns = "n.id, n.user_id, n.type, n.title, n.message, n.booking_id, n.read, n.deleted, n.created_at"

func scanNotification(row pgx.Row) (*entities.Notification, error) {
	var n entities.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.BookingID, &n.Read, &n.Deleted, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) list(ctx context.Context, filter types.Filter, where ...sq.Sqlizer) ([]entities.Notification, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(n.id)").From("notifications AS n")
	for _, w := range where {
		countBuilder = countBuilder.Where(w)
	}
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, notificationMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Notification{}, 0, nil
	}

	baseBuilder := psql.Select(notificationColumns).From("notifications AS n")
	for _, w := range where {
		baseBuilder = baseBuilder.Where(w)
	}
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("n.created_at DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, notificationMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0, filter.Limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, total, rows.Err()
}

func (r *NotificationRepository) GetForUser(ctx context.Context, userID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	return r.list(ctx, filter, sq.Eq{"n.user_id": userID}, sq.Eq{"n.deleted": false})
}

// GetAll is the admin view: every row across users, soft-deleted ones
// included.
func (r *NotificationRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error) {
	return r.list(ctx, filter)
}

func (r *NotificationRepository) FindForUser(ctx context.Context, userID, id uint64) (*entities.Notification, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(notificationColumns).
		From("notifications AS n").
		Where(sq.Eq{"n.id": id, "n.user_id": userID, "n.deleted": false}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanNotification(r.storage.QueryRow(ctx, query, args...))
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM notifications WHERE user_id = $1 AND read = FALSE AND deleted = FALSE`,
		userID,
	).Scan(&count)
	return count, err
}

func (r *NotificationRepository) SetRead(ctx context.Context, userID, id uint64, read bool) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = $1 WHERE id = $2 AND user_id = $3 AND deleted = FALSE`,
		read, id, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE AND deleted = FALSE`,
		userID,
	)
	return err
}

// MarkAllReadGlobal flips every unread notification system-wide and reports
// how many rows changed. Admin cleanup operation.
func (r *NotificationRepository) MarkAllReadGlobal(ctx context.Context) (int64, error) {
	result, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE read = FALSE`,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *NotificationRepository) SoftDelete(ctx context.Context, userID, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE notifications SET deleted = TRUE WHERE id = $1 AND user_id = $2 AND deleted = FALSE`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) HardDelete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Create(ctx context.Context, n entities.Notification) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, title, message, booking_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		n.UserID, n.Type, n.Title, n.Message, n.BookingID,
	).Scan(&id)
	return id, err
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []entities.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Insert("notifications").
		Columns("user_id", "type", "title", "message", "booking_id")
	for _, n := range notifications {
		builder = builder.Values(n.UserID, n.Type, n.Title, n.Message, n.BookingID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.storage.Exec(ctx, query, args...)
	return err
}

func (r *NotificationRepository) ExistsForBooking(ctx context.Context, userID, bookingID uint64, notificationType string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND booking_id = $2 AND type = $3
		)`,
		userID, bookingID, notificationType,
	).Scan(&exists)
	return exists, err
}
