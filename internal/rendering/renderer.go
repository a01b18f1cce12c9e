package rendering

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Renderer names accepted by New
const (
	RendererPDF     = "pdf"
	RendererLaTeX   = "latex"
	RendererBrowser = "browser"
)

// Renderers lists every available backend
var Renderers = []string{RendererPDF, RendererLaTeX, RendererBrowser}

// Renderer writes a report document to outPath
type Renderer interface {
	Name() string
	Render(ctx context.Context, report *Report, outPath string) error
}

// Options configures renderer construction
type Options struct {
	// TemplatePath overrides the embedded template of the latex and browser backends
	TemplatePath string
	// BrowserTimeout bounds headless Chrome printing
	BrowserTimeout time.Duration
	Logger         *zap.Logger
}

// New returns the renderer registered under name
func New(name string, opts Options) (Renderer, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = 60 * time.Second
	}

	switch name {
	case RendererPDF, "":
		return NewPDFRenderer(opts.Logger), nil
	case RendererLaTeX:
		return NewLaTeXRenderer(opts.TemplatePath, opts.Logger), nil
	case RendererBrowser:
		return NewHTMLRenderer(opts.TemplatePath, opts.BrowserTimeout, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (want one of %v)", name, Renderers)
	}
}
