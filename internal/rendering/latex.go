package rendering

import (
	"context"
	"embed"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/spiderweb/internal/fileio"
	"github.com/jonathan/spiderweb/internal/geometry"
	"github.com/jonathan/spiderweb/internal/validation"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	latexTemplateName = "templates/report.tex.tmpl"
	latexRadarRadius  = 5.5 // cm
	latexPieRadius    = 6.0 // cm
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes LaTeX special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

// latexData is the template input; every string is already escaped
type latexData struct {
	Colors    []latexColor
	Title     []string
	Rings     []latexRing
	Spokes    []latexSpoke
	Layers    []latexLayer
	Info      []string
	PieTitle  []string
	PieRadius string
	Slices    []latexSlice
}

type latexColor struct {
	Name string
	RGB  string
}

type latexRing struct {
	Radius, LabelX, LabelY, Label string
}

type latexSpoke struct {
	X, Y, LabelX, LabelY, Label string
}

type latexLayer struct {
	Name, ColorName, Path string
}

type latexSlice struct {
	ColorName, Start, End string
	LabelX, LabelY, Label string
	PctX, PctY, PctText   string
}

// LaTeXRenderer fills a TikZ template and compiles it with pdflatex
type LaTeXRenderer struct {
	templatePath string
	logger       *zap.Logger
}

// NewLaTeXRenderer creates the LaTeX backend. An empty templatePath uses the
// embedded template.
func NewLaTeXRenderer(templatePath string, logger *zap.Logger) *LaTeXRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LaTeXRenderer{templatePath: templatePath, logger: logger}
}

// Name implements Renderer
func (r *LaTeXRenderer) Name() string {
	return RendererLaTeX
}

// Source renders the LaTeX document for a report
func (r *LaTeXRenderer) Source(report *Report) (string, error) {
	tmpl, err := parseTemplate(r.templatePath, latexTemplateName, func(name, content string) (executor, error) {
		return template.New(name).Parse(content)
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, buildLaTeXData(report)); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return sb.String(), nil
}

// Render implements Renderer
func (r *LaTeXRenderer) Render(ctx context.Context, report *Report, outPath string) error {
	source, err := r.Source(report)
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "spiderweb-latex-*")
	if err != nil {
		return &RenderError{Renderer: r.Name(), Message: "failed to create work directory", Cause: err}
	}
	baseName := "report"
	defer func() {
		if cleanupErr := validation.CleanupCompilationArtifacts(workDir, baseName); cleanupErr != nil {
			r.logger.Warn("failed to clean LaTeX work directory", zap.Error(cleanupErr))
		}
	}()

	pdfPath, logOutput, err := validation.CompileLaTeX(ctx, source, baseName, workDir)
	if err != nil {
		r.logger.Debug("pdflatex output", zap.String("log", logOutput))
		return &RenderError{Renderer: r.Name(), Message: "failed to compile report", Cause: err}
	}

	compiled, err := os.Open(pdfPath)
	if err != nil {
		return &RenderError{Renderer: r.Name(), Message: "failed to open compiled PDF", Cause: err}
	}
	defer compiled.Close()

	err = fileio.WriteAtomic(outPath, func(w io.Writer) error {
		_, copyErr := io.Copy(w, compiled)
		return copyErr
	})
	if err != nil {
		return &RenderError{Renderer: r.Name(), Message: "failed to write PDF", Cause: err}
	}

	r.logger.Debug("latex report written", zap.String("path", outPath))
	return nil
}

// executor is the subset shared by text/template and html/template
type executor interface {
	Execute(w io.Writer, data any) error
}

// parseTemplate reads a template override from disk, or the embedded default
func parseTemplate(path, embedded string, parse func(name, content string) (executor, error)) (executor, error) {
	var content []byte
	var err error
	if path != "" {
		content, err = os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{Message: fmt.Sprintf("template file not found: %s", path), Cause: err}
			}
			return nil, &TemplateError{Message: fmt.Sprintf("failed to read template file: %s", path), Cause: err}
		}
	} else {
		content, err = templateFS.ReadFile(embedded)
		if err != nil {
			return nil, &TemplateError{Message: "failed to read embedded template", Cause: err}
		}
	}

	tmpl, err := parse("report", string(content))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

func cm(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func colorName(c Color) string {
	return "c" + strings.TrimPrefix(c.Hex(), "#")
}

func buildLaTeXData(report *Report) latexData {
	data := latexData{PieRadius: cm(latexPieRadius)}
	seen := make(map[string]bool)
	addColor := func(c Color) string {
		name := colorName(c)
		if !seen[name] {
			seen[name] = true
			data.Colors = append(data.Colors, latexColor{Name: name, RGB: fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)})
		}
		return name
	}

	for _, line := range report.Title {
		data.Title = append(data.Title, EscapeLaTeX(line))
	}
	for _, line := range report.Info {
		data.Info = append(data.Info, EscapeLaTeX(line))
	}
	for _, line := range report.PieTitle {
		data.PieTitle = append(data.PieTitle, EscapeLaTeX(line))
	}

	rings, labels := RingLabels()
	for i, ring := range rings {
		deg := RingLabelAngle(i) * math.Pi / 180
		data.Rings = append(data.Rings, latexRing{
			Radius: cm(ring * latexRadarRadius),
			LabelX: cm(ring * latexRadarRadius * math.Cos(deg)),
			LabelY: cm(ring * latexRadarRadius * math.Sin(deg)),
			Label:  EscapeLaTeX(labels[i]),
		})
	}

	n := len(report.Axes)
	for i, axis := range report.Axes {
		theta := geometry.Angle(i, n)
		data.Spokes = append(data.Spokes, latexSpoke{
			X:      cm(latexRadarRadius * math.Cos(theta)),
			Y:      cm(latexRadarRadius * math.Sin(theta)),
			LabelX: cm((latexRadarRadius + 0.5) * math.Cos(theta)),
			LabelY: cm((latexRadarRadius + 0.5) * math.Sin(theta)),
			Label:  EscapeLaTeX(axis),
		})
	}

	for _, layer := range report.Layers {
		parts := make([]string, 0, len(layer.Values)+1)
		for _, p := range geometry.Vertices(layer.Values) {
			parts = append(parts, fmt.Sprintf("(%s,%s)", cm(p.X*latexRadarRadius), cm(p.Y*latexRadarRadius)))
		}
		parts = append(parts, "cycle")
		data.Layers = append(data.Layers, latexLayer{
			Name:      EscapeLaTeX(layer.Name),
			ColorName: addColor(layer.Color),
			Path:      strings.Join(parts, " -- "),
		})
	}

	for _, s := range report.Slices {
		mid := s.MidAngle() * math.Pi / 180
		data.Slices = append(data.Slices, latexSlice{
			ColorName: addColor(s.Color),
			Start:     cm(s.StartAngle),
			End:       cm(s.EndAngle),
			LabelX:    cm(latexPieRadius * 1.1 * math.Cos(mid)),
			LabelY:    cm(latexPieRadius * 1.1 * math.Sin(mid)),
			Label:     EscapeLaTeX(s.Label),
			PctX:      cm(latexPieRadius * 0.6 * math.Cos(mid)),
			PctY:      cm(latexPieRadius * 0.6 * math.Sin(mid)),
			PctText:   strings.ReplaceAll(EscapeLaTeX(s.PercentLabel(report.RawTotal)), "\n", `\\`),
		})
	}

	return data
}
