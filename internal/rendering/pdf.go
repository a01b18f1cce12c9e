package rendering

import (
	"context"
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/spiderweb/internal/fileio"
	"github.com/jonathan/spiderweb/internal/geometry"
	"go.uber.org/zap"
)

// A4 portrait page geometry in millimetres
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 10.0

	radarCenterX = pageWidth / 2
	radarCenterY = 118.0
	radarRadius  = 62.0

	pieCenterX = pageWidth / 2
	pieCenterY = 140.0
	pieRadius  = 70.0

	layerAlpha = 0.4
	arcStep    = 2.0 // degrees per wedge edge segment
)

// PDFRenderer draws the report directly into a PDF document
type PDFRenderer struct {
	logger *zap.Logger
}

// NewPDFRenderer creates the native PDF backend
func NewPDFRenderer(logger *zap.Logger) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFRenderer{logger: logger}
}

// Name implements Renderer
func (r *PDFRenderer) Name() string {
	return RendererPDF
}

// Render implements Renderer
func (r *PDFRenderer) Render(ctx context.Context, report *Report, outPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := r.Document(report)
	if err != nil {
		return err
	}

	err = fileio.WriteAtomic(outPath, func(w io.Writer) error {
		return doc.Output(w)
	})
	if err != nil {
		return &RenderError{Renderer: r.Name(), Message: "failed to write PDF", Cause: err}
	}

	r.logger.Debug("pdf written", zap.String("path", outPath), zap.Int("pages", doc.PageCount()))
	return nil
}

// Document lays out both report pages without writing them anywhere
func (r *PDFRenderer) Document(report *Report) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(strings.Join(report.PieTitle, " "), true)
	pdf.SetSubject(ReportTitle, true)
	pdf.SetAuthor(report.Name, true)
	pdf.SetCreator("spiderweb", true)
	pdf.SetKeywords(report.Assessment.ID, true)
	pdf.SetCreationDate(report.Assessment.Date)
	pdf.SetModificationDate(report.Assessment.Date)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.radarPage(pdf, report, tr)
	r.piePage(pdf, report, tr)

	if err := pdf.Error(); err != nil {
		return nil, &RenderError{Renderer: r.Name(), Message: "failed to lay out PDF", Cause: err}
	}
	return pdf, nil
}

// toPage maps unit-radar coordinates onto the page; the page y axis points down
func toPage(cx, cy, radius float64, p geometry.Point) fpdf.PointType {
	return fpdf.PointType{X: cx + radius*p.X, Y: cy - radius*p.Y}
}

func polar(cx, cy, radius, degrees float64) fpdf.PointType {
	rad := degrees * math.Pi / 180
	return fpdf.PointType{X: cx + radius*math.Cos(rad), Y: cy - radius*math.Sin(rad)}
}

func centeredText(pdf *fpdf.Fpdf, x, y float64, text string) {
	pdf.Text(x-pdf.GetStringWidth(text)/2, y, text)
}

func (r *PDFRenderer) radarPage(pdf *fpdf.Fpdf, report *Report, tr func(string) string) {
	pdf.AddPage()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	y := margin + 4
	for _, line := range report.Title {
		centeredText(pdf, pageWidth/2, y, tr(line))
		y += 5
		pdf.SetFont("Helvetica", "", 10)
	}

	// grid rings and spokes
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	rings, ringLabels := RingLabels()
	for _, ring := range rings {
		pdf.Circle(radarCenterX, radarCenterY, radarRadius*ring, "D")
	}
	n := len(report.Axes)
	pdf.SetFont("Helvetica", "", 9)
	for i, label := range report.Axes {
		deg := geometry.Angle(i, n) * 180 / math.Pi
		edge := polar(radarCenterX, radarCenterY, radarRadius, deg)
		pdf.Line(radarCenterX, radarCenterY, edge.X, edge.Y)

		at := polar(radarCenterX, radarCenterY, radarRadius+6, deg)
		centeredText(pdf, at.X, at.Y+1.5, label)
	}

	for _, layer := range report.Layers {
		points := make([]fpdf.PointType, 0, len(layer.Values))
		for _, p := range geometry.Vertices(layer.Values) {
			points = append(points, toPage(radarCenterX, radarCenterY, radarRadius, p))
		}

		c := layer.Color
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		pdf.SetAlpha(layerAlpha, "Normal")
		pdf.Polygon(points, "F")
		pdf.SetAlpha(1, "Normal")
		pdf.SetLineWidth(0.6)
		pdf.Polygon(points, "D")
	}

	pdf.SetFont("Helvetica", "", 7)
	for i, ring := range rings {
		at := polar(radarCenterX, radarCenterY, radarRadius*ring, RingLabelAngle(i))
		centeredText(pdf, at.X, at.Y+1, ringLabels[i])
	}

	r.legend(pdf, report)
	r.infoBlock(pdf, report, tr)
}

func (r *PDFRenderer) legend(pdf *fpdf.Fpdf, report *Report) {
	pdf.SetFont("Helvetica", "", 8)
	x := pageWidth - margin - 38
	y := radarCenterY - radarRadius - 4
	for _, layer := range report.Layers {
		c := layer.Color
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(x, y-2.5, 4, 3, "F")
		pdf.Text(x+6, y, layer.Name)
		y += 4.5
	}
}

func (r *PDFRenderer) infoBlock(pdf *fpdf.Fpdf, report *Report, tr func(string) string) {
	top := radarCenterY + radarRadius + 12
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	pdf.SetXY(margin, top)
	pdf.MultiCell(pageWidth-2*margin, 3.6, tr(strings.Join(report.Info, "\n")), "1", "L", false)
}

func (r *PDFRenderer) piePage(pdf *fpdf.Fpdf, report *Report, tr func(string) string) {
	pdf.AddPage()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	y := margin + 8
	for _, line := range report.PieTitle {
		centeredText(pdf, pageWidth/2, y, tr(line))
		y += 6
		pdf.SetFont("Helvetica", "", 11)
	}

	if len(report.Slices) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		centeredText(pdf, pieCenterX, pieCenterY, "No positive answers: every section scored 0.")
		return
	}

	for _, s := range report.Slices {
		c := s.Color
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Polygon(wedge(pieCenterX, pieCenterY, pieRadius, s.StartAngle, s.EndAngle), "F")
	}

	for _, s := range report.Slices {
		pdf.SetFont("Helvetica", "", 10)
		at := polar(pieCenterX, pieCenterY, pieRadius*1.1, s.MidAngle())
		centeredText(pdf, at.X, at.Y+1.5, s.Label)

		pdf.SetFont("Helvetica", "", 9)
		at = polar(pieCenterX, pieCenterY, pieRadius*0.6, s.MidAngle())
		lines := strings.Split(s.PercentLabel(report.RawTotal), "\n")
		for i, line := range lines {
			centeredText(pdf, at.X, at.Y+float64(i)*3.6, line)
		}
	}
}

// wedge approximates a pie slice as a polygon fanned from the centre
func wedge(cx, cy, radius, start, end float64) []fpdf.PointType {
	points := []fpdf.PointType{{X: cx, Y: cy}}
	steps := int(math.Ceil((end - start) / arcStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		deg := start + (end-start)*float64(i)/float64(steps)
		points = append(points, polar(cx, cy, radius, deg))
	}
	return points
}
