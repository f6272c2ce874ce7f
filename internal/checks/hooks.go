package checks

import (
	"context"
	"regexp"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// Token patterns for a conditional guard preceding a stateful hook call.
// These are line-level heuristics, not data-flow analysis: a hook name
// appearing after "if" on the same line, or followed by a ternary, is enough
// to flag the line.
var conditionalHookPatterns = []*regexp.Regexp{
	regexp.MustCompile(`if.*use[A-Z]`),
	regexp.MustCompile(`use[A-Z].*\?\s*`),
}

// HooksCheck flags hook calls that appear inside conditional logic. React
// requires hooks to be called unconditionally in the same order on every
// render; a conditional call is a correctness hazard.
type HooksCheck struct {
	ClientDir string
}

// NewHooksCheck creates the check against the conventional client layout.
func NewHooksCheck() *HooksCheck {
	return &HooksCheck{ClientDir: "client/src"}
}

// Name implements audit.Check.
func (c *HooksCheck) Name() string { return "hooks" }

// Category implements audit.Check.
func (c *HooksCheck) Category() string { return "React Hooks" }

// Tier implements audit.Check.
func (c *HooksCheck) Tier() audit.Tier { return audit.TierHigh }

// Run implements audit.Check.
func (c *HooksCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	for _, rel := range snap.Under(c.ClientDir, "*.tsx") {
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}
		for i, line := range strings.Split(content, "\n") {
			if !matchesConditionalHook(line) {
				continue
			}
			issues = append(issues, audit.Issue{
				File:        rel,
				Line:        i + 1,
				Severity:    audit.SeverityHigh,
				Category:    c.Category(),
				Description: "Hook called conditionally",
				Remediation: "Move hook call outside conditional logic",
				Snippet:     strings.TrimSpace(line),
			})
		}
	}
	return issues, nil
}

func matchesConditionalHook(line string) bool {
	for _, pattern := range conditionalHookPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
