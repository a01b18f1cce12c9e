package rendering

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"
	"time"

	"github.com/jonathan/spiderweb/internal/browser"
	"github.com/jonathan/spiderweb/internal/fileio"
	"github.com/jonathan/spiderweb/internal/geometry"
	"go.uber.org/zap"
)

const htmlTemplateName = "templates/report.html.tmpl"

// SVG canvas in CSS pixels; the page content box is 190mm wide
const (
	svgWidth       = 718.0
	svgRadarHeight = 620.0
	svgRadarRadius = 240.0
	svgPieHeight   = 760.0
	svgPieRadius   = 260.0
)

type htmlData struct {
	Title       string
	Heading     []string
	Width       string
	RadarHeight string
	CX          string
	RadarCY     string
	Rings       []htmlRing
	Spokes      []htmlSpoke
	Layers      []htmlLayer
	LegendX     string
	LegendTextX string
	LegendY     []string
	Info        []string
	PieTitle    []string
	PieHeight   string
	Slices      []htmlSlice
}

type htmlRing struct {
	Radius, LabelX, LabelY, Label string
}

type htmlSpoke struct {
	X, Y, LabelX, LabelY, Label string
}

type htmlLayer struct {
	Name, Color, Points string
}

type htmlSlice struct {
	Label, Color, Path string
	LabelX, LabelY     string
	PctX, PctY         string
	PctLines           []string
}

// HTMLRenderer fills an HTML/SVG template and prints it with headless Chrome
type HTMLRenderer struct {
	templatePath string
	timeout      time.Duration
	logger       *zap.Logger
}

// NewHTMLRenderer creates the browser backend. An empty templatePath uses
// the embedded template.
func NewHTMLRenderer(templatePath string, timeout time.Duration, logger *zap.Logger) *HTMLRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLRenderer{templatePath: templatePath, timeout: timeout, logger: logger}
}

// Name implements Renderer
func (r *HTMLRenderer) Name() string {
	return RendererBrowser
}

// HTML renders the two-page HTML document for a report
func (r *HTMLRenderer) HTML(report *Report) ([]byte, error) {
	tmpl, err := parseTemplate(r.templatePath, htmlTemplateName, func(name, content string) (executor, error) {
		return template.New(name).Parse(content)
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildHTMLData(report)); err != nil {
		return nil, &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return buf.Bytes(), nil
}

// Render implements Renderer
func (r *HTMLRenderer) Render(ctx context.Context, report *Report, outPath string) error {
	doc, err := r.HTML(report)
	if err != nil {
		return err
	}

	pdf, err := browser.PrintToPDF(ctx, doc, r.timeout, r.logger)
	if err != nil {
		return &RenderError{Renderer: r.Name(), Message: "failed to print report", Cause: err}
	}

	err = fileio.WriteAtomic(outPath, func(w io.Writer) error {
		_, writeErr := w.Write(pdf)
		return writeErr
	})
	if err != nil {
		return &RenderError{Renderer: r.Name(), Message: "failed to write PDF", Cause: err}
	}

	r.logger.Debug("browser report written", zap.String("path", outPath))
	return nil
}

func px(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// svgPoint maps unit-radar coordinates onto the canvas; the SVG y axis points down
func svgPoint(cx, cy, radius, degrees float64) (float64, float64) {
	rad := degrees * math.Pi / 180
	return cx + radius*math.Cos(rad), cy - radius*math.Sin(rad)
}

func buildHTMLData(report *Report) htmlData {
	cx := svgWidth / 2
	radarCY := svgRadarHeight / 2
	pieCY := svgPieHeight / 2

	data := htmlData{
		Title:       strings.Join(report.PieTitle, " "),
		Heading:     report.Title,
		Width:       px(svgWidth),
		RadarHeight: px(svgRadarHeight),
		CX:          px(cx),
		RadarCY:     px(radarCY),
		LegendX:     px(svgWidth - 130),
		LegendTextX: px(svgWidth - 110),
		Info:        report.Info,
		PieTitle:    report.PieTitle,
		PieHeight:   px(svgPieHeight),
	}

	rings, labels := RingLabels()
	for i, ring := range rings {
		x, y := svgPoint(cx, radarCY, ring*svgRadarRadius, RingLabelAngle(i))
		data.Rings = append(data.Rings, htmlRing{
			Radius: px(ring * svgRadarRadius),
			LabelX: px(x),
			LabelY: px(y),
			Label:  labels[i],
		})
	}

	n := len(report.Axes)
	for i, axis := range report.Axes {
		deg := geometry.Angle(i, n) * 180 / math.Pi
		x, y := svgPoint(cx, radarCY, svgRadarRadius, deg)
		lx, ly := svgPoint(cx, radarCY, svgRadarRadius+22, deg)
		data.Spokes = append(data.Spokes, htmlSpoke{X: px(x), Y: px(y), LabelX: px(lx), LabelY: px(ly), Label: axis})
	}

	for i, layer := range report.Layers {
		points := make([]string, 0, len(layer.Values))
		for _, p := range geometry.Vertices(layer.Values) {
			points = append(points, px(cx+p.X*svgRadarRadius)+","+px(radarCY-p.Y*svgRadarRadius))
		}
		data.Layers = append(data.Layers, htmlLayer{
			Name:   layer.Name,
			Color:  layer.Color.Hex(),
			Points: strings.Join(points, " "),
		})
		data.LegendY = append(data.LegendY, px(10+float64(i)*16))
	}

	for _, s := range report.Slices {
		lx, ly := svgPoint(cx, pieCY, svgPieRadius*1.1, s.MidAngle())
		tx, ty := svgPoint(cx, pieCY, svgPieRadius*0.6, s.MidAngle())
		data.Slices = append(data.Slices, htmlSlice{
			Label:    s.Label,
			Color:    s.Color.Hex(),
			Path:     arcPath(cx, pieCY, svgPieRadius, s.StartAngle, s.EndAngle),
			LabelX:   px(lx),
			LabelY:   px(ly),
			PctX:     px(tx),
			PctY:     px(ty),
			PctLines: strings.Split(s.PercentLabel(report.RawTotal), "\n"),
		})
	}

	return data
}

// arcPath is an SVG wedge path. A full circle is drawn as two half arcs
// because a single arc with equal endpoints renders nothing.
func arcPath(cx, cy, radius, start, end float64) string {
	sx, sy := svgPoint(cx, cy, radius, start)
	if end-start >= 359.999 {
		mx, my := svgPoint(cx, cy, radius, start+180)
		return fmt.Sprintf("M %s %s A %s %s 0 1 0 %s %s A %s %s 0 1 0 %s %s Z",
			px(sx), px(sy), px(radius), px(radius), px(mx), px(my),
			px(radius), px(radius), px(sx), px(sy))
	}

	ex, ey := svgPoint(cx, cy, radius, end)
	large := 0
	if end-start > 180 {
		large = 1
	}
	// counterclockwise on screen is sweep-flag 0
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 0 %s %s Z",
		px(cx), px(cy), px(sx), px(sy), px(radius), px(radius), large, px(ex), px(ey))
}
