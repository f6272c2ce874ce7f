package checks

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// defaultRequiredDeps are the packages the application cannot function
// without. Missing entries are HIGH; a missing or unparsable manifest is
// CRITICAL because every other manifest check depends on it.
var defaultRequiredDeps = []string{
	"@types/react",
	"@types/react-dom",
	"typescript",
	"drizzle-orm",
	"@tanstack/react-query",
	"wouter",
}

// DependenciesCheck validates that package.json exists, parses, and declares
// the required dependencies in either dependencies or devDependencies.
type DependenciesCheck struct {
	Required []string
}

// NewDependenciesCheck creates the check with the default required set.
func NewDependenciesCheck(required []string) *DependenciesCheck {
	if len(required) == 0 {
		required = defaultRequiredDeps
	}
	return &DependenciesCheck{Required: required}
}

// Name implements audit.Check.
func (c *DependenciesCheck) Name() string { return "dependencies" }

// Category implements audit.Check.
func (c *DependenciesCheck) Category() string { return "Dependencies" }

// Tier implements audit.Check.
func (c *DependenciesCheck) Tier() audit.Tier { return audit.TierCritical }

// Run implements audit.Check.
func (c *DependenciesCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	content, ok := snap.Read("package.json")
	if !ok {
		return []audit.Issue{{
			File:        "package.json",
			Severity:    audit.SeverityCritical,
			Category:    c.Category(),
			Description: "package.json not found",
			Remediation: "Create package.json with proper dependencies",
		}}, nil
	}

	if !gjson.Valid(content) {
		return []audit.Issue{{
			File:        "package.json",
			Severity:    audit.SeverityCritical,
			Category:    c.Category(),
			Description: "Failed to parse package.json: invalid JSON",
			Remediation: "Fix package.json syntax",
		}}, nil
	}

	declared := make(map[string]bool)
	for _, section := range []string{"dependencies", "devDependencies"} {
		gjson.Get(content, section).ForEach(func(key, _ gjson.Result) bool {
			declared[key.String()] = true
			return true
		})
	}

	var issues []audit.Issue
	for _, dep := range c.Required {
		if !declared[dep] {
			issues = append(issues, audit.Issue{
				File:        "package.json",
				Severity:    audit.SeverityHigh,
				Category:    c.Category(),
				Description: fmt.Sprintf("Missing required dependency: %s", dep),
				Remediation: fmt.Sprintf("Add %s to dependencies or devDependencies", dep),
			})
		}
	}
	return issues, nil
}
