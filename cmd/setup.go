package cmd

import (
	"context"
	"fmt"

	"github.com/campuskit/advisor/internal/app"
	"github.com/campuskit/advisor/internal/config"
)

// setup loads configuration and assembles the application for a command run.
func setup(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if debugFlag {
		cfg.Debug = true
	}

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return a, nil
}
