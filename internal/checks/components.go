package checks

import (
	"context"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// ComponentsCheck applies structural conventions to client components:
// every component file exports a default, and the explicit React import is
// unnecessary under the JSX transform unless React itself is referenced.
type ComponentsCheck struct {
	ClientDir string
}

// NewComponentsCheck creates the check against the conventional client layout.
func NewComponentsCheck() *ComponentsCheck {
	return &ComponentsCheck{ClientDir: "client/src"}
}

// Name implements audit.Check.
func (c *ComponentsCheck) Name() string { return "components" }

// Category implements audit.Check.
func (c *ComponentsCheck) Category() string { return "React" }

// Tier implements audit.Check.
func (c *ComponentsCheck) Tier() audit.Tier { return audit.TierHigh }

// Run implements audit.Check.
func (c *ComponentsCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, rel := range snap.Under(c.ClientDir, "*.tsx") {
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}

		if !strings.Contains(content, "export default") {
			issues = append(issues, audit.Issue{
				File:        rel,
				Severity:    audit.SeverityMedium,
				Category:    c.Category(),
				Description: "Component missing default export",
				Remediation: "Add default export for React component",
			})
		}

		if strings.Contains(content, "import React") &&
			!strings.Contains(content, "React.") &&
			!strings.Contains(content, "createElement") {
			issues = append(issues, audit.Issue{
				File:        rel,
				Severity:    audit.SeverityLow,
				Category:    c.Category(),
				Description: "Unnecessary React import (using JSX transform)",
				Remediation: "Remove explicit React import",
			})
		}
	}
	return issues, nil
}
