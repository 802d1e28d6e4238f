package types

// PlanType is the subscription tier that gates feature access.
type PlanType string

// Supported plan tiers.
const (
	PlanFree PlanType = "free"
	PlanPro  PlanType = "pro"
)

// Valid reports whether p is a recognized plan tier.
func (p PlanType) Valid() bool {
	return p == PlanFree || p == PlanPro
}

// Metadata is a free-form JSONB metadata bag attached to a user account.
// The plan marker is stored under the "plan_type" key.
type Metadata map[string]any

// MetadataPlanKey is the metadata key holding the plan marker.
const MetadataPlanKey = "plan_type"
