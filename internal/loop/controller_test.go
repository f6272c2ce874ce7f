package loop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovehealth/appaudit/internal/audit"
)

// countingAuditor returns canned pass rates in sequence and records how many
// times it was called.
type countingAuditor struct {
	rates []float64
	calls int
}

func (a *countingAuditor) Audit(ctx context.Context) (*audit.Result, error) {
	rate := a.rates[len(a.rates)-1]
	if a.calls < len(a.rates) {
		rate = a.rates[a.calls]
	}
	a.calls++

	result := audit.NewResult()
	result.PassRate = rate
	if rate < 100.0 {
		result.Issues = []audit.Issue{{
			File:        "server/routes.ts",
			Severity:    audit.SeverityHigh,
			Category:    "Dependencies",
			Description: "Missing required dependency: typescript",
		}}
		result.CountsBySeverity[audit.SeverityHigh] = 1
	}
	return result, nil
}

func TestRun_ExhaustsAtBound(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{50.0}}

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 3}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, outcome.State)
	assert.Equal(t, 3, outcome.Iterations)
	assert.Equal(t, 3, auditor.calls, "auditor must not run past the bound")
	assert.False(t, outcome.Converged())
	require.NotNil(t, outcome.Final)
	assert.Equal(t, 50.0, outcome.Final.PassRate)
}

func TestRun_ConvergesEarly(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{50.0, 100.0}}

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 5}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, outcome.State)
	assert.Equal(t, 2, outcome.Iterations)
	assert.Equal(t, 2, auditor.calls, "loop must stop as soon as an iteration passes")
	assert.True(t, outcome.Converged())
}

func TestRun_ConvergesOnFirstCleanIteration(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{100.0}}

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 5}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, outcome.State)
	assert.Equal(t, 1, outcome.Iterations)
	assert.Equal(t, 1, auditor.calls)
}

func TestRun_DefaultBound(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{50.0}}

	outcome, err := Run(context.Background(), auditor, Config{}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, outcome.State)
	assert.Equal(t, DefaultMaxIterations, outcome.Iterations)
	assert.Equal(t, DefaultMaxIterations, auditor.calls)
}

func TestRun_AdvisoriesOnlyBetweenIterations(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{50.0, 50.0, 100.0}}

	var perIteration [][]string
	hook := func(iteration int, result *audit.Result, advisories []string) error {
		perIteration = append(perIteration, advisories)
		return nil
	}

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 3}, hook)
	require.NoError(t, err)
	require.Equal(t, StateConverged, outcome.State)
	require.Len(t, perIteration, 3)

	// Failing non-final iterations carry suggestions; the converged final
	// iteration has nothing left to suggest.
	assert.NotEmpty(t, perIteration[0])
	assert.NotEmpty(t, perIteration[1])
	assert.Empty(t, perIteration[2])
}

func TestRun_NoAdvisoriesOnExhaustedFinal(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{50.0}}

	var last []string
	hook := func(iteration int, result *audit.Result, advisories []string) error {
		last = advisories
		return nil
	}

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 2}, hook)
	require.NoError(t, err)
	require.Equal(t, StateExhausted, outcome.State)
	assert.Empty(t, last, "no suggestions after the last chance to act on them")
}

func TestRun_HookErrorStopsLoop(t *testing.T) {
	auditor := &countingAuditor{rates: []float64{50.0}}
	hookErr := errors.New("report write failed")

	hook := func(iteration int, result *audit.Result, advisories []string) error {
		return hookErr
	}

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 3}, hook)
	require.Error(t, err)
	assert.ErrorIs(t, err, hookErr)
	assert.Nil(t, outcome)
	assert.Equal(t, 1, auditor.calls)
}

func TestRun_AuditorErrorAborts(t *testing.T) {
	auditErr := errors.New("snapshot root missing")
	auditor := AuditorFunc(func(ctx context.Context) (*audit.Result, error) {
		return nil, auditErr
	})

	outcome, err := Run(context.Background(), auditor, Config{MaxIterations: 3}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, auditErr)
	assert.Nil(t, outcome)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	auditor := &countingAuditor{rates: []float64{50.0}}
	outcome, err := Run(ctx, auditor, Config{MaxIterations: 3}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcome)
	assert.Zero(t, auditor.calls)
}
