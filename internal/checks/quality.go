package checks

import (
	"context"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// keepMarker exempts a debug statement from the scan.
const keepMarker = "// @keep"

// QualityCheck scans for leftover debug output and open-work markers. Both
// are LOW: they never block a release but accumulate as noise.
type QualityCheck struct{}

// NewQualityCheck creates the check.
func NewQualityCheck() *QualityCheck {
	return &QualityCheck{}
}

// Name implements audit.Check.
func (c *QualityCheck) Name() string { return "quality" }

// Category implements audit.Check.
func (c *QualityCheck) Category() string { return "Code Quality" }

// Tier implements audit.Check.
func (c *QualityCheck) Tier() audit.Tier { return audit.TierLow }

// Run implements audit.Check.
func (c *QualityCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, rel := range sourceFiles(snap) {
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}
		for i, line := range strings.Split(content, "\n") {
			if strings.Contains(line, "console.log") && !strings.Contains(line, keepMarker) {
				issues = append(issues, audit.Issue{
					File:        rel,
					Line:        i + 1,
					Severity:    audit.SeverityLow,
					Category:    c.Category(),
					Description: "console.log found",
					Remediation: "Remove console.log or replace with proper logging",
				})
			}

			upper := strings.ToUpper(line)
			if strings.Contains(upper, "TODO") || strings.Contains(upper, "FIXME") {
				issues = append(issues, audit.Issue{
					File:        rel,
					Line:        i + 1,
					Severity:    audit.SeverityLow,
					Category:    c.Category(),
					Description: "TODO/FIXME comment found",
					Remediation: "Complete or remove TODO/FIXME comment",
				})
			}
		}
	}
	return issues, nil
}
