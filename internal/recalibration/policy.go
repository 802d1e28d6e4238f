// Package recalibration decides whether a user may resubmit their
// assessment. The decision is a pure function of (plan tier, timestamp of
// the latest assessment, current time); nothing here is persisted.
package recalibration

import (
	"math"
	"time"

	"github.com/careerlens/careerlens/internal/types"
)

// Window lengths per plan tier. The free window is a short correction
// window open immediately after submission; the pro window is a cooldown
// that opens once enough time has passed for the score to settle.
const (
	freeWindow = 24 * time.Hour
	proWindow  = 90 * 24 * time.Hour
)

// Status classifies the user's recalibration eligibility at the given time.
// A nil lastAssessmentAt means no prior assessment exists and recalibration
// is always allowed.
func Status(plan types.PlanType, lastAssessmentAt *time.Time, now time.Time) types.RecalibrationStatus {
	if lastAssessmentAt == nil {
		return types.RecalibrationStatus{
			CanRecalibrate: true,
			RemainingDays:  0,
			Reason:         types.RecalReasonAllowed,
		}
	}

	elapsed := now.Sub(*lastAssessmentAt)

	if plan == types.PlanPro {
		if elapsed >= proWindow {
			return types.RecalibrationStatus{
				CanRecalibrate: true,
				RemainingDays:  0,
				Reason:         types.RecalReasonAllowed,
			}
		}
		return types.RecalibrationStatus{
			CanRecalibrate: false,
			RemainingDays:  ceilDays(proWindow - elapsed),
			Reason:         types.RecalReasonProWaiting,
		}
	}

	// Free tier: allowed only within the first day after submission.
	if elapsed < freeWindow {
		return types.RecalibrationStatus{
			CanRecalibrate: true,
			RemainingDays:  ceilDays(freeWindow - elapsed),
			Reason:         types.RecalReasonAllowed,
		}
	}
	return types.RecalibrationStatus{
		CanRecalibrate: false,
		RemainingDays:  0,
		Reason:         types.RecalReasonFreeExpired,
	}
}

// ceilDays converts a remaining duration to whole days, minimum 1.
func ceilDays(remaining time.Duration) int {
	days := int(math.Ceil(remaining.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
