package checks

import (
	"context"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// SchemaCheck verifies that the shared database schema file exists and
// exports both table definitions and their derived types. The shape checks
// are substring heuristics, not a TypeScript parse.
type SchemaCheck struct {
	// Path is the schema file location relative to the project root.
	Path string
}

// NewSchemaCheck creates the check against the conventional schema location.
func NewSchemaCheck() *SchemaCheck {
	return &SchemaCheck{Path: "shared/schema.ts"}
}

// Name implements audit.Check.
func (c *SchemaCheck) Name() string { return "schema" }

// Category implements audit.Check.
func (c *SchemaCheck) Category() string { return "Database" }

// Tier implements audit.Check.
func (c *SchemaCheck) Tier() audit.Tier { return audit.TierCritical }

// Run implements audit.Check.
func (c *SchemaCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	content, ok := snap.Read(c.Path)
	if !ok {
		if snap.Exists(c.Path) {
			// Present on disk but unreadable at capture time.
			return []audit.Issue{{
				File:        c.Path,
				Severity:    audit.SeverityHigh,
				Category:    c.Category(),
				Description: "Failed to read schema file",
				Remediation: "Fix schema file accessibility",
			}}, nil
		}
		return []audit.Issue{{
			File:        c.Path,
			Severity:    audit.SeverityCritical,
			Category:    c.Category(),
			Description: "Database schema file not found",
			Remediation: "Create shared/schema.ts with Drizzle schema definitions",
		}}, nil
	}

	var issues []audit.Issue
	if !strings.Contains(content, "export const") {
		issues = append(issues, audit.Issue{
			File:        c.Path,
			Severity:    audit.SeverityHigh,
			Category:    c.Category(),
			Description: "No table exports found in schema",
			Remediation: "Add proper table exports",
		})
	}
	if !strings.Contains(content, "export type") {
		issues = append(issues, audit.Issue{
			File:        c.Path,
			Severity:    audit.SeverityMedium,
			Category:    c.Category(),
			Description: "No type exports found in schema",
			Remediation: "Add proper type exports for InsertUser, User, etc.",
		})
	}
	return issues, nil
}
