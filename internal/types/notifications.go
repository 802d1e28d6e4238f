package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NotificationType identifies a kind of notification the system can send.
type NotificationType string

// Notification types. The first five are deliverable on the free tier;
// the rest are pro-only.
const (
	NotifIntelligenceReady   NotificationType = "intelligence_ready"
	NotifRecalibrationReady  NotificationType = "recalibration_ready"
	NotifResumeAnalysisReady NotificationType = "resume_analysis_ready"
	NotifBillingEvent        NotificationType = "billing_event"
	NotifSecurityAlert       NotificationType = "security_alert"
	NotifSideProjectsReady   NotificationType = "side_projects_ready"
	NotifTaskReminder        NotificationType = "task_reminder"
	NotifProductUpdate       NotificationType = "product_update"
)

// Digest modes for notification delivery.
const (
	DigestInstant = "instant"
	DigestDaily   = "daily"
	DigestWeekly  = "weekly"
)

// NotificationPreferences is the per-user settings record. Allowed value
// ranges are plan-dependent; free-tier values are clamped on read and write.
type NotificationPreferences struct {
	EmailEnabled   bool   `json:"email_enabled"`
	InAppEnabled   bool   `json:"in_app_enabled"`
	DigestMode     string `json:"digest_mode" validate:"omitempty,oneof=instant daily weekly"`
	ReportReady    bool   `json:"report_ready"`
	TaskReminders  bool   `json:"task_reminders"`
	Billing        bool   `json:"billing"`
	Security       bool   `json:"security"`
	ProductUpdates bool   `json:"product_updates"`
}

// Validate validates the preferences using the validator.
func (p *NotificationPreferences) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Notification is a dispatched notification row.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
