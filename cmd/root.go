// Package cmd defines the advisor command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Advisor - a course catalog assistant for your terminal",
	Long: `Advisor answers questions about a course catalog.

It indexes catalog documents into a local vector store, retrieves the
passages most relevant to each question, and asks a language model to
answer from them while keeping track of the conversation.

Running advisor with no arguments starts an interactive chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}
