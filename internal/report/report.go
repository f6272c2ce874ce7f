// Package report renders audit results as human-readable text and persists
// one report file per iteration. It consumes a finished audit.Result and
// never feeds back into scoring.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/grovehealth/appaudit/internal/audit"
)

var severityHeading = map[audit.Severity]func(a ...interface{}) string{
	audit.SeverityCritical: color.New(color.FgRed).SprintFunc(),
	audit.SeverityHigh:     color.New(color.FgYellow).SprintFunc(),
	audit.SeverityMedium:   color.New(color.FgCyan).SprintFunc(),
	audit.SeverityLow:      color.New(color.FgGreen).SprintFunc(),
}

// Render produces the full plain-text report for one run: overall pass rate,
// counts by severity, and every issue grouped severity-first in the stable
// order the checks emitted them.
func Render(result *audit.Result) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 60)

	sb.WriteString(rule + "\n")
	sb.WriteString("APPLICATION AUDIT REPORT\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("OVERALL PASS RATE: %.1f%%\n\n", result.PassRate))

	sb.WriteString("ISSUE BREAKDOWN:\n")
	for _, sev := range audit.Severities {
		sb.WriteString(fmt.Sprintf("  %-9s %d\n", string(sev)+":", result.Count(sev)))
	}
	sb.WriteString(fmt.Sprintf("\nFiles scanned: %d\n\n", result.FilesScanned))

	if len(result.Issues) == 0 {
		sb.WriteString("No issues found!\n")
		return sb.String()
	}

	grouped := result.IssuesBySeverity()
	for _, sev := range audit.Severities {
		issues := grouped[sev]
		if len(issues) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s ISSUES (%d):\n", sev, len(issues)))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, issue := range issues {
			sb.WriteString(fmt.Sprintf("%d. %s:%d\n", i+1, issue.File, issue.Line))
			sb.WriteString(fmt.Sprintf("   Category: %s\n", issue.Category))
			sb.WriteString(fmt.Sprintf("   Issue: %s\n", issue.Description))
			sb.WriteString(fmt.Sprintf("   Fix: %s\n", issue.Remediation))
			if issue.Snippet != "" {
				sb.WriteString(fmt.Sprintf("   Code: %s\n", issue.Snippet))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// PrintSummary writes a short colorized summary for terminal use.
func PrintSummary(result *audit.Result) {
	fmt.Printf("Pass rate: %.1f%%\n", result.PassRate)
	for _, sev := range audit.Severities {
		count := result.Count(sev)
		if count == 0 {
			continue
		}
		heading := severityHeading[sev]
		fmt.Printf("  %s %d\n", heading(string(sev)), count)
	}
}

// IterationPath returns the per-iteration report file name. The iteration
// number is part of the name so successive iterations never overwrite each
// other.
func IterationPath(dir string, iteration int) string {
	return filepath.Join(dir, fmt.Sprintf("audit_report_iteration_%d.txt", iteration))
}

// WriteIteration renders the result and persists it for the given iteration,
// returning the written path.
func WriteIteration(dir string, iteration int, result *audit.Result) (string, error) {
	path := IterationPath(dir, iteration)
	if err := os.WriteFile(path, []byte(Render(result)), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
