package checks

import (
	"context"
	"regexp"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// suppressionMarker exempts a line from the escape-hatch scan.
const suppressionMarker = "// @ts-ignore"

var (
	anyType         = regexp.MustCompile(`:\s*any\b`)
	functionDecl    = regexp.MustCompile(`function\s+\w+\([^)]*\)\s*{`)
	returnTypeToken = "):"
)

// TypeSafetyCheck scans for type-looseness escape hatches: explicit any
// annotations and function declarations without a return type. The any scan
// honors an inline suppression marker.
type TypeSafetyCheck struct{}

// NewTypeSafetyCheck creates the check.
func NewTypeSafetyCheck() *TypeSafetyCheck {
	return &TypeSafetyCheck{}
}

// Name implements audit.Check.
func (c *TypeSafetyCheck) Name() string { return "typesafety" }

// Category implements audit.Check.
func (c *TypeSafetyCheck) Category() string { return "Type Safety" }

// Tier implements audit.Check.
func (c *TypeSafetyCheck) Tier() audit.Tier { return audit.TierHigh }

// Run implements audit.Check.
func (c *TypeSafetyCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, rel := range sourceFiles(snap) {
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}
		for i, raw := range strings.Split(content, "\n") {
			line := strings.TrimSpace(raw)

			if anyType.MatchString(line) && !strings.Contains(line, suppressionMarker) {
				issues = append(issues, audit.Issue{
					File:        rel,
					Line:        i + 1,
					Severity:    audit.SeverityMedium,
					Category:    c.Category(),
					Description: "Using 'any' type",
					Remediation: "Replace 'any' with specific type",
					Snippet:     line,
				})
			}

			if functionDecl.MatchString(line) && !strings.Contains(line, returnTypeToken) {
				issues = append(issues, audit.Issue{
					File:        rel,
					Line:        i + 1,
					Severity:    audit.SeverityLow,
					Category:    c.Category(),
					Description: "Function missing return type",
					Remediation: "Add explicit return type to function",
					Snippet:     line,
				})
			}
		}
	}
	return issues, nil
}
