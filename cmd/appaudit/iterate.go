package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/config"
	"github.com/grovehealth/appaudit/internal/history"
	"github.com/grovehealth/appaudit/internal/loop"
	"github.com/grovehealth/appaudit/internal/report"
)

var iterateCmd = &cobra.Command{
	Use:   "iterate [path]",
	Short: "Run the bounded audit loop until convergence",
	Long: `Repeatedly audit the project until it reaches a 100% pass rate or
the iteration bound is exhausted. Each iteration re-scans the project from
scratch, writes its report to audit_report_iteration_<N>.txt, and prints
advisory fix suggestions for the blocking issues. Suggestions are text only;
nothing is ever applied automatically.

Examples:
  # Up to 5 iterations (default) in the current directory
  appaudit iterate

  # Tighter bound on a specific project
  appaudit iterate ./clinic-portal --max-iterations 3

Exit codes:
  0 - converged (an iteration reached 100%)
  1 - exhausted the iteration bound without converging`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxIterations, _ := cmd.Flags().GetInt("max-iterations")

		root := projectRootArg(args)
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		if maxIterations > 0 {
			cfg.MaxIterations = maxIterations
		}

		auditor := loop.AuditorFunc(func(ctx context.Context) (*audit.Result, error) {
			return runAudit(ctx, root, cfg, log)
		})

		outcome, err := runIterate(cmd.Context(), cfg, auditor)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Println()
		if outcome.Converged() {
			fmt.Printf("%s 100%% pass rate achieved in %d iteration(s)\n", green("✓"), outcome.Iterations)
			return nil
		}
		fmt.Printf("%s Audit completed with %.1f%% pass rate after %d iterations\n",
			yellow("⚠"), outcome.Final.PassRate, outcome.Iterations)
		fmt.Println("Manual intervention may be required for remaining issues.")
		os.Exit(1)
		return nil
	},
}

func init() {
	iterateCmd.Flags().Int("max-iterations", 0, "Override the iteration bound (default from config, 5)")
	rootCmd.AddCommand(iterateCmd)
}

// runIterate opens the history store, runs the bounded loop with the
// per-iteration reporting hook, and closes the store before returning.
// The caller decides the process exit code on the outcome; all cleanup has
// already run by then.
func runIterate(ctx context.Context, cfg config.Config, auditor loop.Auditor) (*loop.Outcome, error) {
	store := openHistory(ctx, cfg.HistoryPath, cfg.HistoryRetentionDays)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	hook := func(iteration int, result *audit.Result, advisories []string) error {
		fmt.Printf("\n%s AUDIT ITERATION %d/%d\n", cyan("▶"), iteration, cfg.MaxIterations)
		report.PrintSummary(result)

		path, err := report.WriteIteration(cfg.ReportDir, iteration, result)
		if err != nil {
			return err
		}
		fmt.Printf("Report saved to: %s\n", path)

		recordIteration(ctx, store, iteration, cfg.MaxIterations, result)

		if len(advisories) > 0 {
			fmt.Printf("\nGenerated %d fix suggestion(s):\n", len(advisories))
			for _, advisory := range advisories {
				fmt.Printf("  - %s\n", advisory)
			}
		}
		return nil
	}

	return loop.Run(ctx, auditor, loop.Config{MaxIterations: cfg.MaxIterations}, hook)
}

// openHistory opens the iteration log, or returns nil when persistence is
// disabled or unavailable. History failures are warnings, never run failures.
func openHistory(ctx context.Context, path string, retentionDays int) *history.Store {
	if path == "" {
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.Warnw("history disabled", "path", path, "error", err)
		return nil
	}
	if removed, err := store.Prune(ctx, retentionDays); err != nil {
		log.Warnw("history prune failed", "error", err)
	} else if removed > 0 {
		log.Debugw("pruned old history", "rows", removed, "retention_days", retentionDays)
	}
	return store
}

func recordIteration(ctx context.Context, store *history.Store, iteration, maxIterations int, result *audit.Result) {
	if store == nil {
		return
	}
	state := string(loop.StateRunning)
	switch {
	case result.PassRate >= 100.0:
		state = string(loop.StateConverged)
	case iteration == maxIterations:
		state = string(loop.StateExhausted)
	}
	if err := store.RecordIteration(ctx, iteration, state, result); err != nil {
		log.Warnw("failed to record iteration", "iteration", iteration, "error", err)
	}
}
