package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campuskit/advisor/internal/rag"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Chat runs a question loop on stdin. Each answer draws on the catalog
index and everything said earlier in the session. Type "exit" or "quit"
to leave; a snapshot of the index is written on the way out.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
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
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("\nQuestion (type 'exit' to quit): ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		if lower := strings.ToLower(q); lower == "exit" || lower == "quit" {
			break
		}

		fmt.Println(a.Pipeline.Answer(ctx, session, q))
	}

	if err := a.Store.Export(ctx, a.SnapshotPath()); err != nil {
		a.Logger.Warn("snapshot export failed", "error", err)
	}
	return scanner.Err()
}
