// Package loop drives repeated audit→score cycles until the project
// converges to a 100% pass rate or the iteration bound is exhausted. The
// loop handles iteration mechanics only; remediation stays advisory text and
// is never applied by the controller.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/grovehealth/appaudit/internal/audit"
)

// DefaultMaxIterations bounds the remediation loop when no limit is
// configured.
const DefaultMaxIterations = 5

// State is the controller's lifecycle state. RUNNING transitions to exactly
// one of the two terminal states.
type State string

const (
	// StateRunning means the loop has more iterations available.
	StateRunning State = "RUNNING"

	// StateConverged means an iteration reached a 100% pass rate.
	StateConverged State = "CONVERGED"

	// StateExhausted means the iteration bound was reached without
	// convergence. This is a reported outcome, not a failure of the loop.
	StateExhausted State = "EXHAUSTED"
)

// Auditor produces one fresh audit result per call. The production
// implementation captures a new snapshot and runs the full registry; tests
// substitute fakes.
type Auditor interface {
	Audit(ctx context.Context) (*audit.Result, error)
}

// AuditorFunc adapts a function to the Auditor interface.
type AuditorFunc func(ctx context.Context) (*audit.Result, error)

// Audit implements Auditor.
func (f AuditorFunc) Audit(ctx context.Context) (*audit.Result, error) {
	return f(ctx)
}

// Config controls the iteration behavior.
type Config struct {
	// MaxIterations is the hard bound on executed iterations.
	// Zero selects DefaultMaxIterations.
	MaxIterations int
}

// IterationHook observes each completed iteration: its 1-based number, the
// fresh result, and the advisory fix suggestions generated for it (empty on
// the final iteration). Returning an error stops the loop.
type IterationHook func(iteration int, result *audit.Result, advisories []string) error

// Outcome summarizes a finished loop.
type Outcome struct {
	// State is CONVERGED or EXHAUSTED; never RUNNING.
	State State

	// Iterations is the number of audit runs actually executed.
	Iterations int

	// Final is the last iteration's result. Earlier results are discarded:
	// each iteration re-scans the project from scratch and keeps no
	// cumulative issue memory.
	Final *audit.Result

	// Elapsed is the total loop duration.
	Elapsed time.Duration
}

// Converged reports whether the loop ended in the success state.
func (o *Outcome) Converged() bool {
	return o.State == StateConverged
}

// Run executes the bounded remediation loop. Every iteration builds a fresh
// result; a pass rate of 100 converges immediately, and reaching the bound
// without convergence exhausts the loop after that iteration's result is
// recorded. The hook may be nil.
func Run(ctx context.Context, auditor Auditor, cfg Config, hook IterationHook) (*Outcome, error) {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	start := time.Now()
	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("audit loop canceled after %d iterations: %w", iteration-1, err)
		}

		result, err := auditor.Audit(ctx)
		if err != nil {
			return nil, fmt.Errorf("audit failed at iteration %d: %w", iteration, err)
		}

		converged := result.PassRate >= 100.0
		exhausted := iteration == maxIterations

		var advisories []string
		if !converged && !exhausted {
			advisories = Advisories(result.Issues)
		}

		if hook != nil {
			if err := hook(iteration, result, advisories); err != nil {
				return nil, fmt.Errorf("iteration %d hook: %w", iteration, err)
			}
		}

		if converged {
			return &Outcome{
				State:      StateConverged,
				Iterations: iteration,
				Final:      result,
				Elapsed:    time.Since(start),
			}, nil
		}
		if exhausted {
			return &Outcome{
				State:      StateExhausted,
				Iterations: iteration,
				Final:      result,
				Elapsed:    time.Since(start),
			}, nil
		}
	}

	// Unreachable: the loop always returns from a terminal state above.
	return nil, fmt.Errorf("audit loop ended without a terminal state")
}
