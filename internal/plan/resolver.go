// Package plan resolves a user's subscription tier from account metadata.
package plan

import (
	"strings"

	"github.com/careerlens/careerlens/internal/types"
)

// Resolve extracts the plan tier from account metadata, checking the
// user-level bag first, then the app-level bag, and defaulting to free when
// neither holds a recognized value. Total: never fails.
func Resolve(userMeta, appMeta types.Metadata) types.PlanType {
	if plan, ok := planFromMetadata(userMeta); ok {
		return plan
	}
	if plan, ok := planFromMetadata(appMeta); ok {
		return plan
	}
	return types.PlanFree
}

func planFromMetadata(meta types.Metadata) (types.PlanType, bool) {
	if meta == nil {
		return "", false
	}
	raw, ok := meta[types.MetadataPlanKey].(string)
	if !ok {
		return "", false
	}
	plan := types.PlanType(strings.ToLower(strings.TrimSpace(raw)))
	if !plan.Valid() {
		return "", false
	}
	return plan, true
}
