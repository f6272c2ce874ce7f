package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grovehealth/appaudit/internal/config"
	"github.com/grovehealth/appaudit/internal/logging"
)

var (
	configPath string
	debug      bool

	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "appaudit",
	Short: "Heuristic audit engine for TypeScript/React projects",
	Long: `appaudit scans a project tree with a fixed battery of heuristic rule
checks, aggregates the findings into severity-classified issues, and computes
a pass rate. The iterate command repeats the audit up to a bound, emitting
advisory fix suggestions between iterations.

Checks are best-effort heuristics: they flag patterns, they do not prove
defects. Expect false positives and negatives.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logging.New(debug)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .appaudit.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// loadConfig resolves the config file relative to the audited project root
// unless an explicit path was given.
func loadConfig(projectRoot string) (config.Config, error) {
	path := configPath
	if path == "" {
		path = projectRoot + "/" + config.DefaultConfigPath
	}
	return config.Load(path)
}

// projectRootArg returns the positional project root, defaulting to the
// current directory.
func projectRootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
