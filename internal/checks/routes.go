package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

// apiPrefix is the naming convention every endpoint and query key must follow.
const apiPrefix = "/api/"

var (
	// serverRoutePatterns match Express-style route declarations.
	serverRoutePatterns = []*regexp.Regexp{
		regexp.MustCompile(`app\.(get|post|put|delete)\(['"]([^'"]+)['"]`),
		regexp.MustCompile(`router\.(get|post|put|delete)\(['"]([^'"]+)['"]`),
	}

	// queryKeyPattern matches the first element of a react-query key array.
	queryKeyPattern = regexp.MustCompile(`queryKey:\s*\[['"]([^'"]+)['"]`)
)

// RoutesCheck cross-checks the API route naming convention on both sides:
// endpoints declared in the server routes file (producer) and query keys
// referenced from client components (consumer). Both must start with /api/.
type RoutesCheck struct {
	// RoutesPath is the server route declaration file.
	RoutesPath string

	// ClientDir is the directory holding client components.
	ClientDir string
}

// NewRoutesCheck creates the check against the conventional layout.
func NewRoutesCheck() *RoutesCheck {
	return &RoutesCheck{
		RoutesPath: "server/routes.ts",
		ClientDir:  "client/src",
	}
}

// Name implements audit.Check.
func (c *RoutesCheck) Name() string { return "routes" }

// Category implements audit.Check.
func (c *RoutesCheck) Category() string { return "API Routes" }

// Tier implements audit.Check.
func (c *RoutesCheck) Tier() audit.Tier { return audit.TierCritical }

// Run implements audit.Check.
func (c *RoutesCheck) Run(_ context.Context, snap *snapshot.Snapshot) ([]audit.Issue, error) {
	var issues []audit.Issue
	issues = append(issues, c.checkServerRoutes(snap)...)
	issues = append(issues, c.checkClientCalls(snap)...)
	return issues, nil
}

// checkServerRoutes flags declared endpoints outside the /api/ namespace.
// A missing routes file produces no findings: the schema of this check is
// convention compliance, not file presence. A file that exists but could not
// be captured is HIGH.
func (c *RoutesCheck) checkServerRoutes(snap *snapshot.Snapshot) []audit.Issue {
	content, ok := snap.Read(c.RoutesPath)
	if !ok {
		if snap.Exists(c.RoutesPath) {
			// Present on disk but unreadable at capture time.
			return []audit.Issue{{
				File:        c.RoutesPath,
				Severity:    audit.SeverityHigh,
				Category:    c.Category(),
				Description: "Failed to parse routes file",
				Remediation: "Fix routes file accessibility",
			}}
		}
		return nil
	}

	var issues []audit.Issue
	for _, pattern := range serverRoutePatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			route := m[2]
			if strings.HasPrefix(route, apiPrefix) {
				continue
			}
			issues = append(issues, audit.Issue{
				File:        c.RoutesPath,
				Severity:    audit.SeverityMedium,
				Category:    c.Category(),
				Description: fmt.Sprintf("Route %s doesn't follow /api/ convention", route),
				Remediation: "Update route to start with /api/",
			})
		}
	}
	return issues
}

// checkClientCalls flags react-query keys outside the /api/ namespace.
func (c *RoutesCheck) checkClientCalls(snap *snapshot.Snapshot) []audit.Issue {
	var issues []audit.Issue
	for _, rel := range snap.Under(c.ClientDir, "*.tsx") {
		content, ok := snap.Read(rel)
		if !ok {
			continue
		}
		for _, m := range queryKeyPattern.FindAllStringSubmatch(content, -1) {
			key := m[1]
			if strings.HasPrefix(key, apiPrefix) {
				continue
			}
			issues = append(issues, audit.Issue{
				File:        rel,
				Severity:    audit.SeverityMedium,
				Category:    "API Calls",
				Description: fmt.Sprintf("Query key %s doesn't follow /api/ convention", key),
				Remediation: "Update query key to start with /api/",
			})
		}
	}
	return issues
}

