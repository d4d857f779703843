package compile

import "github.com/mosaicboard/mosaic/internal/chart/spec"

// PlanTier identifies the entitlement level of the current session.
// The source of truth is the host's entitlement collaborator; the
// engine only consumes it for branding.
type PlanTier string

const (
	TierFree       PlanTier = "free"
	TierPro        PlanTier = "pro"
	TierEnterprise PlanTier = "enterprise"
)

// ParseTier normalizes an external tier string; anything unrecognized
// is treated as free.
func ParseTier(s string) PlanTier {
	switch PlanTier(s) {
	case TierPro, TierEnterprise:
		return PlanTier(s)
	default:
		return TierFree
	}
}

// ApplyBranding stamps the free-tier watermark onto a compiled
// specification. Pure decorator: the input is never mutated; paid tiers
// get an unmarked clone.
func ApplyBranding(s *spec.Specification, tier PlanTier) *spec.Specification {
	out := s.Clone()
	if out == nil {
		return nil
	}
	if tier == TierFree {
		out.Watermark = &spec.Watermark{Text: "mosaic free", Opacity: 0.3}
	} else {
		out.Watermark = nil
	}
	return out
}
