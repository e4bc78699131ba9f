package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot of the vector store",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "snapshot file path (defaults to the configured snapshot_path)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path := exportOut
	if path == "" {
		path = a.SnapshotPath()
	}

	if err := a.Store.Export(ctx, path); err != nil {
		return err
	}
	fmt.Printf("Exported %d entries to %s\n", a.Store.Count(), path)
	return nil
}
