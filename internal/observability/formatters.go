// Package observability provides the CLI logger and formatted console summaries.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/scoring"
	"github.com/jonathan/spiderweb/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// barWidth is the width of the per-section exposure bars
	barWidth = 20
)

var (
	colorAccent  = lipgloss.Color("#E69F00")
	colorLevels  = lipgloss.Color("#0072B2")
	colorWarning = lipgloss.Color("#CC79A7")
	colorSuccess = lipgloss.Color("#009E73")
	colorMuted   = lipgloss.Color("#7F7F7F")
)

// Printer handles formatted console output
type Printer struct {
	out   io.Writer
	box   lipgloss.Style
	title lipgloss.Style
	bar   lipgloss.Style
	level lipgloss.Style
	warn  lipgloss.Style
	ok    lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer. Colors
// are dropped automatically when the writer is not a terminal.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out: out,
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(boxWidth),
		title: r.NewStyle().Bold(true),
		bar:   r.NewStyle().Foreground(colorAccent),
		level: r.NewStyle().Foreground(colorLevels),
		warn:  r.NewStyle().Bold(true).Foreground(colorWarning),
		ok:    r.NewStyle().Foreground(colorSuccess),
		muted: r.NewStyle().Foreground(colorMuted),
	}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	body := p.title.Render(title) + "\n\n" + content
	fmt.Fprintln(p.out, p.box.Render(body))
}

func bar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintAssessment outputs the per-section scores, exposures and tier state
// of an assessment, with the path of the written report
func (p *Printer) PrintAssessment(a *types.Assessment, reportPath string) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", a.Name))
	sb.WriteString(fmt.Sprintf("Date:     %s\n", a.Date.Format("02-01-2006")))
	sb.WriteString(fmt.Sprintf("Report:   %s\n", a.ID))
	sb.WriteString("\n")

	for _, s := range a.Sections {
		sb.WriteString(fmt.Sprintf("%-3s %s %6.1f%%  %2d/%-2d  raw %.2f\n",
			s.ID, p.bar.Render(bar(s.Normalized)), s.Normalized*100, s.YesCount, s.QuestionCount, s.Raw))
	}
	sb.WriteString("\n")

	levels := make([]string, len(a.Levels))
	for i, l := range a.Levels {
		levels[i] = fmt.Sprintf("%s: %.1f%%", l.Name, l.Score)
	}
	sb.WriteString(p.level.Render("Levels:   "+strings.Join(levels, "  ")) + "\n")
	sb.WriteString(fmt.Sprintf("Detailed exposure: %.3f%%   General exposure: %.3f%%\n", a.Full.Percent, a.LevelPolygon.Percent))
	sb.WriteString(fmt.Sprintf("Raw total: %.3f / %.3f   Positive answers: %d / %d\n", a.TotalRaw, a.TotalMax, a.TotalYes, a.TotalQuestions))
	sb.WriteString("\n")

	if t := a.HighRiskTier; t != nil {
		var reasons []string
		if t.PairTriggered {
			reasons = append(reasons, "3C+4A")
		}
		if t.SingleTriggered {
			reasons = append(reasons, "single section")
		}
		sb.WriteString(p.warn.Render(fmt.Sprintf("⚠ HIGH RISK TIER ACTIVE (%s): %.2f%% of tier maximum",
			strings.Join(reasons, ", "), t.Polygon.Percent)))
	} else {
		sb.WriteString(p.ok.Render("✓ High risk tier not reached"))
	}
	sb.WriteString(p.muted.Render(fmt.Sprintf(" (threshold %.2f)", a.MaxBeforeTier)))

	if reportPath != "" {
		sb.WriteString("\n\nPDF:      " + reportPath)
	}

	p.printBox("NORMALIZED RISK ASSESSMENT", sb.String())
}

// PrintCategories outputs the section table with maximum scores and level groupings
func (p *Printer) PrintCategories(table *categories.Table) {
	if table == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %7s %9s %6s %10s\n", "ID", "Weight", "Questions", "Bonus", "Max score"))
	for _, s := range table.Sections() {
		sb.WriteString(fmt.Sprintf("%-4s %7g %9d %5.0f%% %10.2f\n",
			s.ID, s.Weight, s.QuestionCount, s.BonusFraction*100, scoring.SectionMax(s)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal questions: %d\n\n", table.TotalQuestions()))

	for _, l := range table.Levels() {
		sb.WriteString(p.level.Render(fmt.Sprintf("Level %s: %s", l.Name, strings.Join(l.Sections, ", "))) + "\n")
	}
	tier := table.Tier()
	sb.WriteString(p.muted.Render(fmt.Sprintf("High risk tier: pair %s, singles %s",
		strings.Join(tier.Pair, "+"), strings.Join(tier.Singles, ", "))))

	p.printBox("SURVEY SECTIONS", sb.String())
}

// PrintVerification outputs the page count check for a report
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintVerification(path string, pages int, err error) {
	if err != nil {
		fmt.Fprintln(p.out, p.warn.Render(fmt.Sprintf("✗ %s: %v", path, err)))
		return
	}
	fmt.Fprintln(p.out, p.ok.Render(fmt.Sprintf("✓ %s: %d pages", path, pages)))
}

// PrintSchemaCheck outputs the schema check for a summary file
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSchemaCheck(path string, err error) {
	if err != nil {
		fmt.Fprintln(p.out, p.warn.Render(fmt.Sprintf("✗ %s: %v", path, err)))
		return
	}
	fmt.Fprintln(p.out, p.ok.Render(fmt.Sprintf("✓ %s: matches assessment schema", path)))
}
