package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/grovehealth/appaudit/internal/history"
	"github.com/grovehealth/appaudit/internal/loop"
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "List recent audit iterations",
	Long: `Show the most recent persisted audit iterations: run id, iteration
number, pass rate, counts by severity, and terminal state.

Examples:
  appaudit history
  appaudit history ./clinic-portal --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		root := projectRootArg(args)
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		if cfg.HistoryPath == "" {
			return fmt.Errorf("history persistence is disabled (history_path is empty)")
		}

		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		records, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No recorded audit iterations.")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		for _, rec := range records {
			state := rec.State
			switch loop.State(rec.State) {
			case loop.StateConverged:
				state = green(rec.State)
			case loop.StateExhausted:
				state = yellow(rec.State)
			}
			fmt.Printf("%s  iter %d  %6.1f%%  C:%d H:%d M:%d L:%d  %d files  %s  %s\n",
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Iteration, rec.PassRate,
				rec.Critical, rec.High, rec.Medium, rec.Low,
				rec.FilesScanned, state, rec.RunID[:8])
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of iterations to show")
	rootCmd.AddCommand(historyCmd)
}
