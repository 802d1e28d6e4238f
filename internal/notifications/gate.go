// Package notifications gates notification delivery by plan tier and user
// preferences, and dispatches notification rows as a best-effort side
// channel that never blocks the primary workflow.
package notifications

import (
	"github.com/careerlens/careerlens/internal/types"
)

// freeAllowedTypes is the fixed allow-list of notification types deliverable
// on the free tier. Everything else is pro-only.
var freeAllowedTypes = map[types.NotificationType]bool{
	types.NotifIntelligenceReady:   true,
	types.NotifRecalibrationReady:  true,
	types.NotifResumeAnalysisReady: true,
	types.NotifBillingEvent:        true,
	types.NotifSecurityAlert:       true,
}

// DefaultPreferences returns the default preference record for a plan tier.
// Free-tier defaults already satisfy the free-tier clamps.
func DefaultPreferences(plan types.PlanType) types.NotificationPreferences {
	prefs := types.NotificationPreferences{
		EmailEnabled:   true,
		InAppEnabled:   true,
		DigestMode:     types.DigestInstant,
		ReportReady:    true,
		TaskReminders:  true,
		Billing:        true,
		Security:       true,
		ProductUpdates: false,
	}
	return SanitizeForPlan(plan, prefs)
}

// SanitizeForPlan clamps a preference record to the value ranges the plan
// allows. Free tier forces the email channel off, task reminders off, and
// downgrades instant digests to daily. Pro imposes no restrictions.
// Idempotent: sanitizing twice yields the same record as sanitizing once.
func SanitizeForPlan(plan types.PlanType, prefs types.NotificationPreferences) types.NotificationPreferences {
	if prefs.DigestMode == "" {
		prefs.DigestMode = types.DigestDaily
	}
	if plan == types.PlanPro {
		return prefs
	}

	prefs.EmailEnabled = false
	prefs.TaskReminders = false
	if prefs.DigestMode == types.DigestInstant {
		prefs.DigestMode = types.DigestDaily
	}
	return prefs
}

// AllowedForPlan reports whether a notification type is deliverable on the
// given plan tier.
func AllowedForPlan(plan types.PlanType, notifType types.NotificationType) bool {
	if plan == types.PlanPro {
		return true
	}
	return freeAllowedTypes[notifType]
}

// ShouldDispatch decides whether a single notification goes out: the type
// must be allowed for the plan, an enabled channel must exist, and the
// relevant category flag must be on. Side-effect free.
func ShouldDispatch(plan types.PlanType, prefs types.NotificationPreferences, notifType types.NotificationType) bool {
	if !AllowedForPlan(plan, notifType) {
		return false
	}

	prefs = SanitizeForPlan(plan, prefs)
	if !prefs.EmailEnabled && !prefs.InAppEnabled {
		return false
	}

	return categoryEnabled(prefs, notifType)
}

// categoryEnabled maps a notification type to its preference category flag.
func categoryEnabled(prefs types.NotificationPreferences, notifType types.NotificationType) bool {
	switch notifType {
	case types.NotifIntelligenceReady, types.NotifRecalibrationReady,
		types.NotifResumeAnalysisReady, types.NotifSideProjectsReady:
		return prefs.ReportReady
	case types.NotifTaskReminder:
		return prefs.TaskReminders
	case types.NotifBillingEvent:
		return prefs.Billing
	case types.NotifSecurityAlert:
		return prefs.Security
	case types.NotifProductUpdate:
		return prefs.ProductUpdates
	default:
		return false
	}
}
