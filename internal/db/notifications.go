package db

import (
	"context"
	"fmt"

	"github.com/careerlens/careerlens/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetNotificationPreferences retrieves a user's preference row.
// Returns (nil, nil) when the user has never saved preferences; callers
// fall back to the plan defaults.
func (db *DB) GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*types.NotificationPreferences, error) {
	var p types.NotificationPreferences

	err := db.pool.QueryRow(ctx,
		`SELECT email_enabled, in_app_enabled, digest_mode, report_ready,
		        task_reminders, billing, security, product_updates
		 FROM notification_preferences WHERE user_id = $1`,
		userID,
	).Scan(&p.EmailEnabled, &p.InAppEnabled, &p.DigestMode, &p.ReportReady,
		&p.TaskReminders, &p.Billing, &p.Security, &p.ProductUpdates)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}

	return &p, nil
}

// UpsertNotificationPreferences saves a user's preference row. The caller is
// responsible for sanitizing the record for the user's plan first.
func (db *DB) UpsertNotificationPreferences(ctx context.Context, userID uuid.UUID, p types.NotificationPreferences) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO notification_preferences
		   (user_id, email_enabled, in_app_enabled, digest_mode, report_ready,
		    task_reminders, billing, security, product_updates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		   email_enabled = $2, in_app_enabled = $3, digest_mode = $4,
		   report_ready = $5, task_reminders = $6, billing = $7,
		   security = $8, product_updates = $9, updated_at = NOW()`,
		userID, p.EmailEnabled, p.InAppEnabled, p.DigestMode, p.ReportReady,
		p.TaskReminders, p.Billing, p.Security, p.ProductUpdates,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification preferences: %w", err)
	}
	return nil
}

// CreateNotification inserts a dispatched notification row.
func (db *DB) CreateNotification(ctx context.Context, userID uuid.UUID, notifType types.NotificationType, title, body string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, string(notifType), title, body,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return id, nil
}

// ListNotifications retrieves a user's notifications, newest first.
func (db *DB) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]types.Notification, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, type, title, COALESCE(body, ''), created_at
		 FROM notifications WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var result []types.Notification
	for rows.Next() {
		var n types.Notification
		var notifType string
		if err := rows.Scan(&n.ID, &n.UserID, &notifType, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = types.NotificationType(notifType)
		result = append(result, n)
	}
	return result, nil
}
