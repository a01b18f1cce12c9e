package observability

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestPrintAssessment(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a, err := risk.Assess(categories.Default(), "Jane Doe", map[string]int{"4A": 11}, fixedNow)
	require.NoError(t, err)

	p.PrintAssessment(a, "out/spiderweb_report_Jane_Doe.pdf")
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED RISK ASSESSMENT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "14-03-2025")
	assert.Contains(t, output, "50.0%")
	assert.Contains(t, output, "11/22")
	assert.Contains(t, output, "High risk tier not reached")
	assert.Contains(t, output, "spiderweb_report_Jane_Doe.pdf")
}

func TestPrintAssessment_Tier(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a, err := risk.Assess(categories.Default(), "Jane Doe", map[string]int{"4A": 19}, fixedNow)
	require.NoError(t, err)

	p.PrintAssessment(a, "")
	output := buf.String()

	assert.Contains(t, output, "HIGH RISK TIER ACTIVE")
	assert.Contains(t, output, "single section")
	assert.NotContains(t, output, "PDF:")
}

func TestPrintAssessment_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAssessment(nil, "")

	assert.Empty(t, buf.String())
}

func TestPrintCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCategories(categories.Default())
	output := buf.String()

	assert.Contains(t, output, "SURVEY SECTIONS")
	assert.Contains(t, output, "5B")
	assert.Contains(t, output, "3961.00")
	assert.Contains(t, output, "Total questions: 210")
	assert.Contains(t, output, "Level 3: 3A, 3B, 3C")
}

func TestPrintVerification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerification("a.pdf", 2, nil)
	p.PrintVerification("b.pdf", 0, errors.New("not a PDF"))
	output := buf.String()

	assert.Contains(t, output, "a.pdf: 2 pages")
	assert.Contains(t, output, "b.pdf: not a PDF")
}

func TestPrintSchemaCheck(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSchemaCheck("summary.json", nil)
	p.PrintSchemaCheck("bad.yaml", errors.New("state must be one of"))
	output := buf.String()

	assert.Contains(t, output, "summary.json: matches assessment schema")
	assert.Contains(t, output, "bad.yaml: state must be one of")
}

func TestBar(t *testing.T) {
	assert.Equal(t, 20, len([]rune(bar(0.5))))
	assert.Equal(t, "░░░░░░░░░░░░░░░░░░░░", bar(0))
	assert.Equal(t, "████████████████████", bar(1.5))
}
