package validation

import (
	"context"
	"fmt"
)

// ReportPages is the page count of every report: radar page and pie chart page
const ReportPages = 2

// VerifyReport checks that the PDF at path has exactly ReportPages pages
func VerifyReport(ctx context.Context, path string) (int, error) {
	count, err := CountPDFPages(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to verify report: %w", err)
	}
	if count != ReportPages {
		return count, &PageCountError{Path: path, Expected: ReportPages, Actual: count}
	}
	return count, nil
}
