package validation

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// pageObject matches uncompressed page dictionaries but not the /Pages tree node
var pageObject = regexp.MustCompile(`/Type\s*/Page[^s]`)

// CountPDFPages counts the pages of a PDF file. It tries pdfinfo first, then
// ghostscript, then a scan of uncompressed page objects.
func CountPDFPages(ctx context.Context, pdfPath string) (int, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return 0, &Error{Message: fmt.Sprintf("PDF not found: %s", pdfPath), Cause: err}
	}

	if count, err := countPagesWithPdfinfo(ctx, pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesWithGhostscript(ctx, pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesByScan(pdfPath); err == nil {
		return count, nil
	}

	return 0, &Error{
		Message: "failed to count PDF pages: install poppler-utils (pdfinfo) or ghostscript",
	}
}

// countPagesWithPdfinfo uses pdfinfo to count PDF pages
func countPagesWithPdfinfo(ctx context.Context, pdfPath string) (int, error) {
	cmd := exec.CommandContext(ctx, "pdfinfo", pdfPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

// countPagesWithGhostscript uses ghostscript to count PDF pages
func countPagesWithGhostscript(ctx context.Context, pdfPath string) (int, error) {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", pdfPath)
	cmd := exec.CommandContext(ctx, "gs", "-q", "-dNODISPLAY", "-dNOSAFER", "-c", script)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}

	return count, nil
}

// countPagesByScan counts page dictionaries in the raw file. PDFs that keep
// their objects in compressed object streams yield no matches and an error.
func countPagesByScan(pdfPath string) (int, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return 0, err
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, fmt.Errorf("%s is not a PDF file", pdfPath)
	}

	count := len(pageObject.FindAll(data, -1))
	if count == 0 {
		return 0, fmt.Errorf("no uncompressed page objects in %s", pdfPath)
	}
	return count, nil
}
