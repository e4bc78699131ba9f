package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/campuskit/advisor/internal/rag"
	"github.com/campuskit/advisor/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the full-screen chat interface",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.Pipeline.Ingest(ctx); err != nil {
		return err
	}

	session := rag.NewSession()
	if err := tui.Run(a.Pipeline, session); err != nil {
		return err
	}

	if err := a.Store.Export(ctx, a.SnapshotPath()); err != nil {
		a.Logger.Warn("snapshot export failed", "error", err)
	}
	return nil
}
