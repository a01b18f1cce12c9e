// Package main provides the entry point for the spiderweb survey risk scorer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spiderweb",
		Short: "Survey risk scorer with radar chart PDF reports",
		Long: `spiderweb scores yes-answer counts for eleven weighted survey sections, normalizes them,
measures the radar polygons they span and writes a two-page PDF report with a radar chart and
a pie chart of raw scores.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newScoreCmd(),
		newCategoriesCmd(),
		newVerifyCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
