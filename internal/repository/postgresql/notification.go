package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/notification"
	"github.com/partflow/partflow-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `id, recipient_id, sender_id, type, title, message,
	related_id, related_type, is_read, read_at, created_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.SenderID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.RelatedID,
		&n.RelatedType,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create implements notification.Repository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.RelatedID, n.RelatedType,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// CreateBatch implements notification.Repository.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, n := range ns {
		batch.Queue(query, n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.RelatedID, n.RelatedType)
	}

	// Batch needs the concrete pool/tx, not the Querier interface
	switch conn := q.(type) {
	case pgx.Tx:
		results := conn.SendBatch(ctx, batch)
		defer results.Close()
		for range ns {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to batch insert notifications: %w", err)
			}
		}
	default:
		results := r.db.Pool.SendBatch(ctx, batch)
		defer results.Close()
		for range ns {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to batch insert notifications: %w", err)
			}
		}
	}

	return nil
}

// GetByID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1`, notificationColumns)
	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// GetByUserID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE recipient_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM notifications %s`, where)
	if err := q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	offset := (page - 1) * pageSize
	listQuery := fmt.Sprintf(`
		SELECT %s FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, notificationColumns, where)

	rows, err := q.Query(ctx, listQuery, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return notifications, total, nil
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND is_read = FALSE
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository. Scoped to the recipient so
// one user cannot mark another's notifications.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1) AND recipient_id = $2 AND is_read = FALSE
	`, ids, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
