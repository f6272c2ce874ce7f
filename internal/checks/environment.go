package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// vitePrefix is required on any environment variable read from client code;
// the bundler only exposes prefixed variables to the browser.
const vitePrefix = "VITE_"

var processEnvVar = regexp.MustCompile(`process\.env\.([A-Z_]+)`)

// EnvironmentCheck flags client-side environment variable reads that the
// bundler will silently resolve to undefined at runtime.
type EnvironmentCheck struct {
	ClientDir string
}

// NewEnvironmentCheck creates the check against the conventional client layout.
func NewEnvironmentCheck() *EnvironmentCheck {
	return &EnvironmentCheck{ClientDir: "client/src"}
}

// Name implements audit.Check.
func (c *EnvironmentCheck) Name() string { return "environment" }

// Category implements audit.Check.
func (c *EnvironmentCheck) Category() string { return "Environment" }

// Tier implements audit.Check.
func (c *EnvironmentCheck) Tier() audit.Tier { return audit.TierMedium }

// Run implements audit.Check.
func (c *EnvironmentCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, rel := range sourceFiles(snap) {
		if !strings.HasPrefix(rel, c.ClientDir+"/") {
			continue
		}
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}
		for _, m := range processEnvVar.FindAllStringSubmatch(content, -1) {
			name := m[1]
			if strings.HasPrefix(name, vitePrefix) {
				continue
			}
			issues = append(issues, audit.Issue{
				File:        rel,
				Severity:    audit.SeverityHigh,
				Category:    c.Category(),
				Description: fmt.Sprintf("Frontend env var %s missing VITE_ prefix", name),
				Remediation: fmt.Sprintf("Rename to VITE_%s or use import.meta.env", name),
			})
		}
	}
	return issues, nil
}
