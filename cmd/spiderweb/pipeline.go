package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/config"
	"github.com/jonathan/spiderweb/internal/export"
	"github.com/jonathan/spiderweb/internal/observability"
	"github.com/jonathan/spiderweb/internal/rendering"
	"github.com/jonathan/spiderweb/internal/risk"
	"github.com/jonathan/spiderweb/internal/types"
	"github.com/jonathan/spiderweb/internal/validation"
	"go.uber.org/zap"
)

// now is replaced in tests for stable report dates
var now = time.Now

func newLogger(cfg config.Config, w io.Writer) *zap.Logger {
	return observability.NewLogger(observability.LogOptions{
		Verbose: cfg.Verbose,
		Writer:  w,
		File:    cfg.LogFile,
	})
}

// generate scores one respondent, writes the PDF report and, when configured,
// verifies its page count and writes the summary. It returns the assessment
// and the report path.
func generate(ctx context.Context, cfg config.Config, table *categories.Table, name string, counts map[string]int, logger *zap.Logger) (*types.Assessment, string, error) {
	assessment, err := risk.Assess(table, name, counts, now())
	if err != nil {
		return nil, "", fmt.Errorf("failed to score answers: %w", err)
	}
	logger = logger.With(zap.String("report_id", assessment.ID))
	logger.Debug("assessment computed",
		zap.Float64("total_raw", assessment.TotalRaw),
		zap.Float64("exposure_percent", assessment.Full.Percent),
		zap.String("state", assessment.State))

	renderer, err := rendering.New(cfg.Renderer, rendering.Options{
		TemplatePath:   cfg.Template,
		BrowserTimeout: time.Duration(cfg.BrowserTimeout) * time.Second,
		Logger:         logger,
	})
	if err != nil {
		return nil, "", err
	}

	outPath := filepath.Join(cfg.OutDir, rendering.Filename(name))
	if err := renderer.Render(ctx, rendering.NewReport(assessment), outPath); err != nil {
		return nil, "", err
	}
	logger.Info("report written",
		zap.String("renderer", renderer.Name()),
		zap.String("path", outPath))

	if cfg.VerifyPages {
		pages, err := validation.VerifyReport(ctx, outPath)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("report verified", zap.Int("pages", pages))
	}

	if cfg.Summary != "" {
		if err := export.WriteSummary(cfg.Summary, assessment, logger); err != nil {
			return nil, "", err
		}
		logger.Info("summary written", zap.String("path", cfg.Summary))
	}

	return assessment, outPath, nil
}
