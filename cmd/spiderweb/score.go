package main

import (
	"fmt"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/input"
	"github.com/jonathan/spiderweb/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScoreCmd() *cobra.Command {
	flags := &runFlags{}
	var answersPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answer sheet file and write the PDF report",
		Long: `Reads a JSON or YAML answer sheet of the form {"name": "...", "yes_counts": {"1A": 3, ...}},
validates it and writes the report. Sections missing from yes_counts count as zero.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, flags, answersPath)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "Path to the answer sheet (.json, .yaml or .yml)")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func runScore(cmd *cobra.Command, flags *runFlags, answersPath string) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	table := categories.Default()
	sheet, err := input.LoadSheet(answersPath, table)
	if err != nil {
		return err
	}
	logger.Debug("answer sheet loaded", zap.String("path", answersPath), zap.Int("sections", len(sheet.YesCounts)))

	assessment, outPath, err := generate(cmd.Context(), cfg, table, sheet.Name, sheet.YesCounts, logger)
	if err != nil {
		return fmt.Errorf("failed to score %s: %w", answersPath, err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintAssessment(assessment, outPath)
	return nil
}
