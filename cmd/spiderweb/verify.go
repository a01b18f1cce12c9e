package main

import (
	"errors"

	"github.com/jonathan/spiderweb/internal/export"
	"github.com/jonathan/spiderweb/internal/observability"
	"github.com/jonathan/spiderweb/internal/validation"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var (
		inPath      string
		summaryPath string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a report PDF or an assessment summary",
		Long: `Counts report pages with pdfinfo, then ghostscript, then a scan of the PDF page objects,
and fails unless there are exactly two. With --summary, also checks a JSON or YAML summary
against schemas/assessment.schema.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := observability.NewPrinter(cmd.OutOrStdout())
			var errs []error

			if inPath != "" {
				pages, err := validation.VerifyReport(cmd.Context(), inPath)
				printer.PrintVerification(inPath, pages, err)
				errs = append(errs, err)
			}
			if summaryPath != "" {
				err := export.ValidateFile(summaryPath)
				printer.PrintSchemaCheck(summaryPath, err)
				errs = append(errs, err)
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Path to the report PDF")
	cmd.Flags().StringVarP(&summaryPath, "summary", "s", "", "Path to an assessment summary (.json, .yaml or .yml)")
	cmd.MarkFlagsOneRequired("in", "summary")
	return cmd
}
