package notifications

import (
	"context"
	"log"
	"time"

	"github.com/careerlens/careerlens/internal/types"
	"github.com/google/uuid"
)

// Store persists notification rows. Implemented by db.DB.
type Store interface {
	GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*types.NotificationPreferences, error)
	CreateNotification(ctx context.Context, userID uuid.UUID, notifType types.NotificationType, title, body string) (uuid.UUID, error)
}

// Dispatcher writes notification rows for users whose plan and preferences
// allow them. Dispatch is an explicit fire-and-forget contract: failures are
// logged and observed, never propagated to the caller.
type Dispatcher struct {
	store   Store
	timeout time.Duration
}

// NewDispatcher creates a dispatcher backed by the given store.
func NewDispatcher(store Store) *Dispatcher {
	return &Dispatcher{
		store:   store,
		timeout: 10 * time.Second,
	}
}

// Dispatch evaluates the gate and, when allowed, persists the notification.
// Returns whether the notification was dispatched; errors are returned for
// observability but callers on the primary workflow should use DispatchAsync.
func (d *Dispatcher) Dispatch(ctx context.Context, userID uuid.UUID, plan types.PlanType, notifType types.NotificationType, title, body string) (bool, error) {
	prefs, err := d.store.GetNotificationPreferences(ctx, userID)
	if err != nil {
		return false, err
	}
	if prefs == nil {
		defaults := DefaultPreferences(plan)
		prefs = &defaults
	}

	if !ShouldDispatch(plan, *prefs, notifType) {
		return false, nil
	}

	if _, err := d.store.CreateNotification(ctx, userID, notifType, title, body); err != nil {
		return false, err
	}
	return true, nil
}

// DispatchAsync runs Dispatch on a detached goroutine with its own timeout,
// decoupled from the caller's context so request completion never cancels
// the side channel. Failure is logged, never returned.
func (d *Dispatcher) DispatchAsync(userID uuid.UUID, plan types.PlanType, notifType types.NotificationType, title, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if _, err := d.Dispatch(ctx, userID, plan, notifType, title, body); err != nil {
			log.Printf("[notifications] dispatch %s for user %s failed: %v", notifType, userID, err)
		}
	}()
}
