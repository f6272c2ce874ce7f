package audit

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies how urgent a finding is. The ordering is significant:
// CRITICAL and HIGH subtract from the pass rate, MEDIUM and LOW do not.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Severities lists all severities in descending order of urgency.
// Report sections and fix generation iterate in this order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns the sort position of the severity (0 = most urgent).
// Unknown severities sort last.
func (s Severity) Rank() int {
	for i, sev := range Severities {
		if s == sev {
			return i
		}
	}
	return len(Severities)
}

// Issue is one finding produced by a rule check. Issues are values and are
// never mutated after being appended to a Result.
type Issue struct {
	// File is the path the finding refers to, relative to the project root
	// where possible.
	File string

	// Line is 1-based. Zero means the finding is file-level.
	Line int

	Severity Severity

	// Category names the subsystem that produced the finding,
	// e.g. "Dependencies", "Imports", "Brand Colors".
	Category string

	// Description states the problem. It is deterministic for a given input.
	Description string

	// Remediation is advisory text only; the engine never applies it.
	Remediation string

	// Snippet is an optional excerpt of the offending code.
	Snippet string
}

// Result is the outcome of one complete audit run. A fresh Result is built
// for every iteration; results are never merged across iterations.
type Result struct {
	// RunID uniquely identifies this run for the history store.
	RunID string

	// Issues in check-execution order. The order is stable for reporting
	// but carries no scoring weight.
	Issues []Issue

	// FilesScanned counts distinct files in the snapshot. Informational.
	FilesScanned int

	// CountsBySeverity always equals the partition of Issues by severity.
	CountsBySeverity map[Severity]int

	// PassRate is in [0,100] and is derived from Issues by Score; it is
	// never set independently.
	PassRate float64

	// StartedAt and Duration describe the run for the history store.
	StartedAt time.Time
	Duration  time.Duration
}

// NewResult creates an empty result with a fresh run ID.
func NewResult() *Result {
	return &Result{
		RunID:            uuid.New().String(),
		CountsBySeverity: make(map[Severity]int),
		StartedAt:        time.Now(),
	}
}

// Count returns the number of issues with the given severity.
func (r *Result) Count(s Severity) int {
	return r.CountsBySeverity[s]
}

// IssuesBySeverity partitions the issue list by severity, preserving the
// original order within each bucket.
func (r *Result) IssuesBySeverity() map[Severity][]Issue {
	grouped := make(map[Severity][]Issue, len(Severities))
	for _, issue := range r.Issues {
		grouped[issue.Severity] = append(grouped[issue.Severity], issue)
	}
	return grouped
}
