package audit

import (
	"context"

	"github.com/grovehealth/appaudit/internal/snapshot"
)

// Tier groups checks for execution order. Critical-tier checks run first so
// the most foundational findings appear at the top of the report. Tiers
// carry no scoring weight; only issue severity does.
type Tier int

const (
	TierCritical Tier = iota
	TierHigh
	TierMedium
	TierLow
)

// String returns the lowercase tier label used in logs and reports.
func (t Tier) String() string {
	switch t {
	case TierCritical:
		return "critical"
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// Check is one independent unit of analysis. Implementations are stateless:
// running a check twice against an unchanged snapshot must yield identical
// issue sequences.
//
// Checks are heuristic by contract. They flag patterns, they do not prove
// defects; false positives and negatives are expected.
type Check interface {
	// Name returns the unique identifier for this check, e.g. "imports".
	Name() string

	// Category is the label stamped on every issue this check emits.
	Category() string

	// Tier determines execution order within the registry.
	Tier() Tier

	// Run examines the snapshot and returns discovered issues. Recoverable
	// conditions (missing file, unreadable file, unparsable config) are
	// handled inside the check: either skipped or converted into a single
	// issue describing the failure. A returned error means the check itself
	// could not run; the Runner converts it into one CRITICAL issue rather
	// than aborting the run.
	Run(ctx context.Context, snap *snapshot.Snapshot) ([]Issue, error)
}
