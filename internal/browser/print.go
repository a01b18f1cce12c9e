// Package browser prints HTML documents to PDF with headless Chrome.
package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper size in inches
const (
	PaperWidth  = 8.27
	PaperHeight = 11.69
)

// DefaultTimeout bounds a single print job
const DefaultTimeout = 60 * time.Second

// executables are the binary names chromedp looks for on PATH
var executables = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

// Available reports whether a Chrome or Chromium binary is on PATH
func Available() bool {
	for _, name := range executables {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// PrintToPDF loads an HTML document in a headless browser and returns the
// printed PDF bytes. Requires Chrome/Chromium to be installed.
func PrintToPDF(ctx context.Context, html []byte, timeout time.Duration, logger *zap.Logger) ([]byte, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	workDir, err := os.MkdirTemp("", "spiderweb-html-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	htmlPath := filepath.Join(workDir, "report.html")
	if err := os.WriteFile(htmlPath, html, 0600); err != nil {
		return nil, fmt.Errorf("failed to write HTML document: %w", err)
	}

	logger.Debug("starting headless browser", zap.String("document", htmlPath))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(PaperWidth).
				WithPaperHeight(PaperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser printing failed: %w", err)
	}

	logger.Debug("browser printed PDF", zap.Int("bytes", len(pdf)))
	return pdf, nil
}
