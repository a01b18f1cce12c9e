// Package rendering turns an assessment into the two-page PDF report.
package rendering

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/jonathan/spiderweb/internal/types"
)

// ReportTitle is the heading printed under the respondent's name
const ReportTitle = "Normalized Risk Assessment"

// DateLayout formats report dates as day-month-year
const DateLayout = "02-01-2006"

// Color is an sRGB color
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Colorblind-safe layer colors
var (
	ColorSections = Color{0xE6, 0x9F, 0x00}
	ColorLevels   = Color{0x00, 0x72, 0xB2}
	ColorTier     = Color{0xCC, 0x79, 0xA7}
)

// piePalette is the 20-color categorical palette used for pie slices
var piePalette = []Color{
	{0x1f, 0x77, 0xb4}, {0xae, 0xc7, 0xe8}, {0xff, 0x7f, 0x0e}, {0xff, 0xbb, 0x78},
	{0x2c, 0xa0, 0x2c}, {0x98, 0xdf, 0x8a}, {0xd6, 0x27, 0x28}, {0xff, 0x98, 0x96},
	{0x94, 0x67, 0xbd}, {0xc5, 0xb0, 0xd5}, {0x8c, 0x56, 0x4b}, {0xc4, 0x9c, 0x94},
	{0xe3, 0x77, 0xc2}, {0xf7, 0xb6, 0xd2}, {0x7f, 0x7f, 0x7f}, {0xc7, 0xc7, 0xc7},
	{0xbc, 0xbd, 0x22}, {0xdb, 0xdb, 0x8d}, {0x17, 0xbe, 0xcf}, {0x9e, 0xda, 0xe5},
}

// Layer is one filled polygon on the radar chart
type Layer struct {
	Name   string
	Color  Color
	Labels []string
	Values []float64
}

// Slice is one pie wedge. Angles are in degrees, counterclockwise from the
// positive x axis.
type Slice struct {
	Label      string
	Value      float64
	Percent    float64
	StartAngle float64
	EndAngle   float64
	Color      Color
}

// MidAngle is the bisector of the wedge
func (s Slice) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// PercentLabel is the wedge caption: share and truncated raw value
func (s Slice) PercentLabel(total float64) string {
	return fmt.Sprintf("%.1f%%\n(%d)", s.Percent, int(s.Percent/100*total))
}

// Report is the renderer-neutral view of an assessment
type Report struct {
	Assessment *types.Assessment
	Name       string
	Date       string
	Axes       []string
	Layers     []Layer
	Title      []string
	Info       []string
	PieTitle   []string
	Slices     []Slice
	RawTotal   float64
}

// NewReport builds the view model for the radar page and the pie chart page
func NewReport(a *types.Assessment) *Report {
	date := a.Date.Format(DateLayout)

	r := &Report{
		Assessment: a,
		Name:       a.Name,
		Date:       date,
		Axes:       a.Labels(),
		RawTotal:   a.TotalRaw,
	}

	r.Layers = []Layer{
		{Name: "Sections", Color: ColorSections, Labels: a.Full.Labels, Values: a.Full.Values},
		{Name: "Level Averages", Color: ColorLevels, Labels: a.LevelPolygon.Labels, Values: a.LevelPolygon.Values},
	}
	if a.HighRiskTier != nil {
		r.Layers = append(r.Layers, Layer{
			Name:   "High Risk Tier",
			Color:  ColorTier,
			Labels: a.HighRiskTier.Polygon.Labels,
			Values: a.HighRiskTier.Polygon.Values,
		})
	}

	r.Title = []string{
		a.Name,
		"Date d-m-y: " + date,
		ReportTitle,
		"(Each axis: 0=No Risk, 1=Maximum Risk)",
		fmt.Sprintf("Section Polygon Area: %.3f sq units (%.3f%% of max)", a.Full.Area, a.Full.Percent),
	}
	r.Info = infoLines(a)
	r.PieTitle = []string{
		"Raw Score Distribution per Section",
		fmt.Sprintf("%s (%s)", a.Name, date),
	}
	r.Slices = pieSlices(a)

	return r
}

func infoLines(a *types.Assessment) []string {
	normalized := make([]string, len(a.Sections))
	positives := make([]string, len(a.Sections))
	for i, s := range a.Sections {
		normalized[i] = fmt.Sprintf("%s: %s%%", s.ID, trimFloat(round(s.Normalized*100, 3)))
		share := 0.0
		if s.QuestionCount > 0 {
			share = float64(s.YesCount) / float64(s.QuestionCount) * 100
		}
		positives[i] = fmt.Sprintf("%s: %d/%d (%s%%)", s.ID, s.YesCount, s.QuestionCount, trimFloat(round(share, 3)))
	}

	levels := make([]string, len(a.Levels))
	for i, l := range a.Levels {
		levels[i] = fmt.Sprintf("%s: %s%%", l.Name, trimFloat(round(l.Score, 3)))
	}

	lines := []string{
		"Detailed evaluation (orange):",
		"Normalized scores of sections: " + strings.Join(normalized, ", "),
		fmt.Sprintf("Section polygon area: %.4f square units", a.Full.Area),
		fmt.Sprintf("Detailed Risk Exposure (orange): %.3f%% of maximum possible", a.Full.Percent),
		fmt.Sprintf("Raw total score and max score: %.3f / %.3f", a.TotalRaw, a.TotalMax),
		"",
		fmt.Sprintf("Positive answers of total: %d / %d", a.TotalYes, a.TotalQuestions),
		"Positive answers per section: " + strings.Join(positives, ", "),
		"",
		"Pyramid Levels (blue):",
		"Normalized scores of levels: " + strings.Join(levels, ", "),
		fmt.Sprintf("General Risk Exposure (blue): %.3f%% of maximum possible", a.LevelPolygon.Percent),
		fmt.Sprintf("Max severe score before 3C: %s", trimFloat(round(a.MaxBeforeTier, 3))),
	}

	if t := a.HighRiskTier; t != nil {
		lines = append(lines,
			"",
			"High Risk Tier (purple):",
			fmt.Sprintf("Polygon area: %.4f sq units", t.Polygon.Area),
			fmt.Sprintf("Risk Exposure (purple): %.2f%% of max possible for this tier", t.Polygon.Percent),
		)
	}

	return lines
}

// pieSlices lays out non-zero raw scores counterclockwise from 12 o'clock
func pieSlices(a *types.Assessment) []Slice {
	if a.TotalRaw <= 0 {
		return nil
	}

	slices := make([]Slice, 0, len(a.Sections))
	angle := 90.0
	for i, s := range a.Sections {
		if s.Raw <= 0 {
			continue
		}
		share := s.Raw / a.TotalRaw
		sweep := share * 360
		slices = append(slices, Slice{
			Label:      s.ID,
			Value:      s.Raw,
			Percent:    share * 100,
			StartAngle: angle,
			EndAngle:   angle + sweep,
			Color:      piePalette[i%len(piePalette)],
		})
		angle += sweep
	}
	return slices
}

// Filename returns the report file name for a display name
func Filename(name string) string {
	return "spiderweb_report_" + SanitizeName(name) + ".pdf"
}

// SanitizeName keeps letters, numeric runes, spaces, '_' and '-', trims trailing
// whitespace and replaces spaces with underscores
func SanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' || r == '-' {
			sb.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimRightFunc(sb.String(), unicode.IsSpace), " ", "_")
}

// RingLabels are the radial grid fractions and their captions
func RingLabels() ([]float64, []string) {
	rings := make([]float64, 10)
	labels := make([]string, 10)
	for i := range rings {
		rings[i] = float64(i+1) / 10
		labels[i] = fmt.Sprintf("%d%%", (i+1)*10)
	}
	return rings, labels
}

// RingLabelAngle staggers ring captions so neighbours do not overlap
func RingLabelAngle(i int) float64 {
	if i%2 == 0 {
		return -5
	}
	return -10
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// trimFloat prints a rounded value without trailing zeros, keeping one decimal
func trimFloat(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.3f", v), "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
