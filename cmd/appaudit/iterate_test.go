package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/config"
	"github.com/grovehealth/appaudit/internal/history"
	"github.com/grovehealth/appaudit/internal/loop"
)

// runIterate must release the history store before returning so the caller's
// exit path never leaves the database handle open.
func TestRunIterate_HistoryClosedBeforeReturn(t *testing.T) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	dir, err := os.MkdirTemp("", "appaudit-iterate-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	cfg := config.Default()
	cfg.MaxIterations = 2
	cfg.ReportDir = dir
	cfg.HistoryPath = filepath.Join(dir, "history.db")

	auditor := loop.AuditorFunc(func(ctx context.Context) (*audit.Result, error) {
		result := audit.NewResult()
		result.Issues = []audit.Issue{{
			File:        "package.json",
			Severity:    audit.SeverityHigh,
			Category:    "Dependencies",
			Description: "Missing required dependency: typescript",
		}}
		result.CountsBySeverity, result.PassRate = audit.Score(result.Issues)
		return result, nil
	})

	outcome, err := runIterate(context.Background(), cfg, auditor)
	require.NoError(t, err)
	assert.Equal(t, loop.StateExhausted, outcome.State)

	// Reopening the database proves both iterations were recorded and the
	// store was released on the non-converged path.
	store, err := history.Open(cfg.HistoryPath)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, string(loop.StateExhausted), records[0].State)
	assert.Equal(t, string(loop.StateRunning), records[1].State)

	// The per-iteration reports were written as a side effect of the hook.
	_, err = os.Stat(filepath.Join(dir, "audit_report_iteration_2.txt"))
	assert.NoError(t, err)
}
