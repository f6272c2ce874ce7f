package loop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grovehealth/appaudit/internal/audit"
)

// Advisories produces remediation suggestions for the CRITICAL and HIGH
// issues of one iteration, sorted severity-first and stable within a
// severity. Suggestions are templated from known category/description
// patterns; issues matching no template contribute nothing. The generator
// never touches the file system.
func Advisories(issues []audit.Issue) []string {
	blocking := make([]audit.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity == audit.SeverityCritical || issue.Severity == audit.SeverityHigh {
			blocking = append(blocking, issue)
		}
	}
	sort.SliceStable(blocking, func(i, j int) bool {
		return blocking[i].Severity.Rank() < blocking[j].Severity.Rank()
	})

	var advisories []string
	for _, issue := range blocking {
		if text, ok := adviseFor(issue); ok {
			advisories = append(advisories, text)
		}
	}
	return advisories
}

// adviseFor maps one issue to a templated suggestion, if a template exists
// for its category/description pattern.
func adviseFor(issue audit.Issue) (string, bool) {
	switch {
	case issue.Category == "TypeScript" && strings.Contains(issue.Description, "Missing"):
		return fmt.Sprintf("# Fix missing dependency: %s", issue.Description), true
	case issue.Category == "Dependencies" && strings.Contains(issue.Description, "Missing"):
		return fmt.Sprintf("# Fix missing dependency: %s", issue.Description), true
	case issue.Category == "Imports" && strings.Contains(issue.Description, "not found"):
		return fmt.Sprintf("# Fix import path in %s:%d", issue.File, issue.Line), true
	case issue.Category == "Brand Colors":
		return fmt.Sprintf("# Update colors in %s to use brand palette", issue.File), true
	}
	return "", false
}
