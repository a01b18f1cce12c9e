package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/input"
	"github.com/jonathan/spiderweb/internal/observability"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// isTerminal is replaced in tests
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}
	var plain bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Answer the survey interactively and write the PDF report",
		Long: `Prompts for the respondent's name and the number of yes answers in each section, re-asking
until every answer is a whole number within the section's range, then writes the report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, flags, plain)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Use line prompts even when stdin is a terminal")
	return cmd
}

func choosePrompter(in io.Reader, out io.Writer, plain bool, logger *zap.Logger) input.Prompter {
	if !plain && isTerminal(in) {
		return input.NewFormPrompter()
	}
	return input.NewLinePrompter(in, out, logger)
}

func runInteractive(cmd *cobra.Command, flags *runFlags, plain bool) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	table := categories.Default()
	prompter := choosePrompter(cmd.InOrStdin(), out, plain, logger)

	name, err := prompter.Name(ctx)
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	input.PrintMaxima(out, table)
	counts, err := input.Collect(ctx, prompter, table)
	if err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}

	assessment, outPath, err := generate(ctx, cfg, table, name, counts, logger)
	if err != nil {
		return err
	}

	observability.NewPrinter(out).PrintAssessment(assessment, outPath)
	return nil
}
