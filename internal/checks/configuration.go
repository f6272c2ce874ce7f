package checks

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// requiredScripts are the manifest script entries every project needs.
var requiredScripts = []string{"dev", "build", "start"}

// ConfigurationCheck validates the declarative configs: tsconfig.json must
// exist, parse, enable strict mode, and configure path mappings, and
// package.json must carry the standard lifecycle scripts.
type ConfigurationCheck struct{}

// NewConfigurationCheck creates the check.
func NewConfigurationCheck() *ConfigurationCheck {
	return &ConfigurationCheck{}
}

// Name implements audit.Check.
func (c *ConfigurationCheck) Name() string { return "configuration" }

// Category implements audit.Check.
func (c *ConfigurationCheck) Category() string { return "Configuration" }

// Tier implements audit.Check.
func (c *ConfigurationCheck) Tier() audit.Tier { return audit.TierMedium }

// Run implements audit.Check.
func (c *ConfigurationCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	issues := c.checkTSConfig(snap)
	issues = append(issues, c.checkScripts(snap)...)
	return issues, nil
}

func (c *ConfigurationCheck) checkTSConfig(snap *snapshot.Snapshot) []audit.Issue {
	content, ok := snap.Read("tsconfig.json")
	if !ok {
		return []audit.Issue{{
			File:        "tsconfig.json",
			Severity:    audit.SeverityHigh,
			Category:    c.Category(),
			Description: "tsconfig.json not found",
			Remediation: "Create tsconfig.json with proper TypeScript configuration",
		}}
	}
	if !gjson.Valid(content) {
		return []audit.Issue{{
			File:        "tsconfig.json",
			Severity:    audit.SeverityHigh,
			Category:    c.Category(),
			Description: "Failed to parse tsconfig.json: invalid JSON",
			Remediation: "Fix JSON syntax in tsconfig.json",
		}}
	}

	var issues []audit.Issue
	if !gjson.Get(content, "compilerOptions.strict").Bool() {
		issues = append(issues, audit.Issue{
			File:        "tsconfig.json",
			Severity:    audit.SeverityMedium,
			Category:    c.Category(),
			Description: "TypeScript strict mode not enabled",
			Remediation: "Enable strict mode in compilerOptions",
		})
	}
	if !gjson.Get(content, "compilerOptions.paths").Exists() {
		issues = append(issues, audit.Issue{
			File:        "tsconfig.json",
			Severity:    audit.SeverityLow,
			Category:    c.Category(),
			Description: "No path mappings configured",
			Remediation: "Add path mappings for cleaner imports",
		})
	}
	return issues
}

// checkScripts flags missing lifecycle scripts. A missing or unparsable
// manifest produces nothing here: the dependencies check already reports it
// as CRITICAL, and cascading a second finding for the same artifact would
// only add noise.
func (c *ConfigurationCheck) checkScripts(snap *snapshot.Snapshot) []audit.Issue {
	content, ok := snap.Read("package.json")
	if !ok || !gjson.Valid(content) {
		return nil
	}

	scripts := gjson.Get(content, "scripts")
	var issues []audit.Issue
	for _, name := range requiredScripts {
		if scripts.Get(name).Exists() {
			continue
		}
		issues = append(issues, audit.Issue{
			File:        "package.json",
			Severity:    audit.SeverityLow,
			Category:    c.Category(),
			Description: fmt.Sprintf("Missing %s script", name),
			Remediation: fmt.Sprintf("Add %s script to package.json", name),
		})
	}
	return issues
}
