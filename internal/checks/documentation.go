package checks

import (
	"context"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// DocumentationCheck verifies that at least one README exists at the
// project root.
type DocumentationCheck struct{}

// NewDocumentationCheck creates the check.
func NewDocumentationCheck() *DocumentationCheck {
	return &DocumentationCheck{}
}

// Name implements audit.Check.
func (c *DocumentationCheck) Name() string { return "documentation" }

// Category implements audit.Check.
func (c *DocumentationCheck) Category() string { return "Documentation" }

// Tier implements audit.Check.
func (c *DocumentationCheck) Tier() audit.Tier { return audit.TierLow }

// Run implements audit.Check.
func (c *DocumentationCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	if len(snap.RootMatches("README*")) > 0 {
		return nil, nil
	}
	return []audit.Issue{{
		File:        "README.md",
		Severity:    audit.SeverityLow,
		Category:    c.Category(),
		Description: "README file not found",
		Remediation: "Create README.md with project documentation",
	}}, nil
}
