package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grovehealth/appaudit/internal/audit"
	"github.com/grovehealth/appaudit/internal/checks"
	"github.com/grovehealth/appaudit/internal/config"
	"github.com/grovehealth/appaudit/internal/report"
	"github.com/grovehealth/appaudit/internal/snapshot"
)

var auditCmd = &cobra.Command{
	Use:   "audit [path]",
	Short: "Run one audit pass and print the report",
	Long: `Run every registered check once against a fresh snapshot of the
project tree and print the full report.

Examples:
  # Audit the current directory
  appaudit audit

  # Audit a specific project
  appaudit audit ./clinic-portal

Exit codes:
  0 - pass rate is 100% (no CRITICAL or HIGH issues)
  1 - pass rate below 100%`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := projectRootArg(args)
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}

		result, err := runAudit(cmd.Context(), root, cfg, log)
		if err != nil {
			return err
		}

		fmt.Print(report.Render(result))
		if result.PassRate < 100.0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

// runAudit captures a fresh snapshot and executes the full check registry.
// Every call re-scans the project from scratch; nothing carries over from
// earlier runs.
func runAudit(ctx context.Context, root string, cfg config.Config, log *zap.SugaredLogger) (*audit.Result, error) {
	opts := snapshot.DefaultOptions()
	if len(cfg.ExcludeDirs) > 0 {
		opts.ExcludeDirs = cfg.ExcludeDirs
	}

	snap, err := snapshot.Capture(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("capturing project snapshot: %w", err)
	}
	log.Debugw("snapshot captured", "root", snap.Root(), "files", len(snap.Files()))

	runner := audit.NewRunner(log)
	runner.Register(checks.All(checks.Options{
		RequiredDeps:    cfg.RequiredDeps,
		BrandPalette:    cfg.BrandPalette,
		ForbiddenColors: cfg.ForbiddenColors,
	})...)

	return runner.Run(ctx, snap), nil
}
