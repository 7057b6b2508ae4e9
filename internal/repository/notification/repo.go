package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/routes"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Repository provides methods to interact with the notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a new notification and returns its ID.
func (r *Repository) Append(ctx context.Context, n model.Notification) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
		    account, type, title, message, priority, action, data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
    `

	action, err := marshalNullable(n.Action)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal action: %w", err)
	}

	data, err := marshalNullable(n.Data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal data: %w", err)
	}

	err = r.db.QueryRowContext(
		ctx, query, n.Account, n.Type, n.Title, n.Message, n.Priority, action, data, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to append notification: %w", err)
	}

	return n.ID, nil
}

// List retrieves all notifications for an account, newest first.
func (r *Repository) List(ctx context.Context, account string) ([]model.Notification, error) {
	query := `
		SELECT id, account, type, title, message, priority, read, action, data, created_at
		FROM notifications
		WHERE account = $1
		ORDER BY created_at DESC;
    `

	rows, err := r.db.QueryContext(ctx, query, account)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var (
			n      model.Notification
			action sql.NullString
			data   sql.NullString
		)

		if err := rows.Scan(
			&n.ID, &n.Account, &n.Type, &n.Title, &n.Message, &n.Priority, &n.Read, &action, &data, &n.CreatedAt,
		); err != nil {
			return nil, err
		}

		if action.Valid {
			if err := json.Unmarshal([]byte(action.String), &n.Action); err != nil {
				// Unreadable persisted action degrades to the type default.
				fallback := routes.ActionForType(n.Type)
				n.Action = &fallback
			}
		}
		if data.Valid {
			_ = json.Unmarshal([]byte(data.String), &n.Data)
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead marks a single notification as read.
func (r *Repository) MarkRead(ctx context.Context, account string, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE account = $1 AND id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, account, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every notification for an account as read.
func (r *Repository) MarkAllRead(ctx context.Context, account string) error {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE account = $1;
    `

	if _, err := r.db.ExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}

// Remove deletes one notification.
func (r *Repository) Remove(ctx context.Context, account string, id uuid.UUID) error {
	query := `
		DELETE FROM notifications
		WHERE account = $1 AND id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, account, id)
	if err != nil {
		return fmt.Errorf("failed to remove notification: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// Clear deletes every notification for an account.
func (r *Repository) Clear(ctx context.Context, account string) error {
	query := `
		DELETE FROM notifications
		WHERE account = $1;
    `

	if _, err := r.db.ExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}

	return nil
}

// UnreadCount returns the number of unread notifications for an account.
func (r *Repository) UnreadCount(ctx context.Context, account string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE account = $1 AND read = FALSE;
    `

	var count int
	if err := r.db.QueryRowContext(ctx, query, account).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// Pending returns recent unread high-priority notifications, oldest first,
// for the background sync channel.
func (r *Repository) Pending(ctx context.Context, account string, limit int) ([]model.Notification, error) {
	query := `
		SELECT id, account, type, title, message, priority, read, action, data, created_at
		FROM notifications
		WHERE account = $1 AND read = FALSE AND priority = 'high'
		ORDER BY created_at ASC
		LIMIT $2;
    `

	rows, err := r.db.QueryContext(ctx, query, account, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var (
			n      model.Notification
			action sql.NullString
			data   sql.NullString
		)

		if err := rows.Scan(
			&n.ID, &n.Account, &n.Type, &n.Title, &n.Message, &n.Priority, &n.Read, &action, &data, &n.CreatedAt,
		); err != nil {
			return nil, err
		}

		if action.Valid {
			_ = json.Unmarshal([]byte(action.String), &n.Action)
		}
		if data.Valid {
			_ = json.Unmarshal([]byte(data.String), &n.Data)
		}

		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MigrateActions backfills a routing action onto legacy rows persisted before
// actions existed, using the fixed type-to-route table. Rows that already
// carry an action are never touched, so running it on every startup is safe.
func (r *Repository) MigrateActions(ctx context.Context) error {
	query := `
		UPDATE notifications
		SET action = $1
		WHERE type = $2 AND action IS NULL;
    `

	for notificationType, action := range routes.TypeRoutes() {
		encoded, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("failed to marshal action for %s: %w", notificationType, err)
		}

		if _, err := r.db.ExecContext(ctx, query, encoded, notificationType); err != nil {
			return fmt.Errorf("failed to backfill action for %s: %w", notificationType, err)
		}
	}

	return nil
}

// marshalNullable encodes v as JSON, mapping nil pointers and nil maps to
// SQL NULL.
func marshalNullable(v interface{}) (interface{}, error) {
	switch value := v.(type) {
	case *model.Action:
		if value == nil {
			return nil, nil
		}
	case map[string]string:
		if value == nil {
			return nil, nil
		}
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return encoded, nil
}
