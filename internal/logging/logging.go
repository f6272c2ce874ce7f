// Package logging configures the process-wide logger. Production level is
// warn-and-above on a console encoder so audit reports stay the primary
// output; debug mode switches to the development config.
package logging

import (
	"go.uber.org/zap"
)

// New builds a sugared logger for the CLI.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
