package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/grovehealth/appaudit/internal/snapshot"
)

// Runner holds the ordered check registry and executes one full audit pass.
// Checks are appended per tier; within a run they execute sequentially in
// registration order. A check that fails (error or panic) contributes a
// single CRITICAL issue and never prevents the remaining checks from running.
type Runner struct {
	checks []Check
	log    *zap.SugaredLogger
}

// NewRunner creates an empty runner. The logger may be nil.
func NewRunner(log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{log: log}
}

// Register appends checks to the registry. Callers register tiers in
// critical-first order; registration order is execution and report order
// only, never scoring weight.
func (r *Runner) Register(checks ...Check) {
	r.checks = append(r.checks, checks...)
}

// Checks returns the registered checks in execution order.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes every registered check against the snapshot and returns a
// fresh Result with derived counts and pass rate.
func (r *Runner) Run(ctx context.Context, snap *snapshot.Snapshot) *Result {
	result := NewResult()
	result.FilesScanned = len(snap.Files())

	for _, check := range r.checks {
		issues := r.runOne(ctx, check, snap)
		r.log.Debugw("check complete", "check", check.Name(), "issues", len(issues))
		result.Issues = append(result.Issues, issues...)
	}

	result.CountsBySeverity, result.PassRate = Score(result.Issues)
	result.Duration = time.Since(result.StartedAt)
	return result
}

// runOne executes a single check behind a recovery boundary. An error or
// panic from a check becomes one CRITICAL issue in the check's category.
func (r *Runner) runOne(ctx context.Context, check Check, snap *snapshot.Snapshot) (issues []Issue) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warnw("check panicked", "check", check.Name(), "panic", rec)
			issues = []Issue{checkFailureIssue(check, fmt.Sprintf("panic: %v", rec))}
		}
	}()

	issues, err := check.Run(ctx, snap)
	if err != nil {
		r.log.Warnw("check failed", "check", check.Name(), "error", err)
		return []Issue{checkFailureIssue(check, err.Error())}
	}
	return issues
}

func checkFailureIssue(check Check, detail string) Issue {
	return Issue{
		File:        ".",
		Severity:    SeverityCritical,
		Category:    check.Category(),
		Description: fmt.Sprintf("%s check failed to run: %s", check.Name(), detail),
		Remediation: fmt.Sprintf("Investigate why the %s check cannot analyze this project", check.Name()),
	}
}
