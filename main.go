package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/campuskit/advisor/cmd"
)

func main() {
	// Provider API keys are commonly kept in a local .env during development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
