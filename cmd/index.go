package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the catalog and index new documents",
	Long: `Index loads every document under the catalog directory, chunks it and
adds each chunk to the vector store. Chunks that are already indexed are
skipped, so re-running after adding documents only embeds the new ones.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.Pipeline.Ingest(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Documents loaded:  %d\n", stats.Documents)
	fmt.Printf("Chunks produced:   %d\n", stats.Chunks)
	fmt.Printf("Chunks added:      %d\n", stats.Added)
	fmt.Printf("Already indexed:   %d\n", stats.Skipped)
	fmt.Printf("Index size:        %d\n", a.Store.Count())
	return nil
}
