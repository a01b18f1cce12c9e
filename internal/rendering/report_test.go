package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/risk"
	"github.com/jonathan/spiderweb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func assess(t *testing.T, name string, counts map[string]int) *types.Assessment {
	t.Helper()
	a, err := risk.Assess(categories.Default(), name, counts, fixedNow)
	require.NoError(t, err)
	return a
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "Jane Doe", "Jane_Doe"},
		{"trailing whitespace", "Jane Doe  ", "Jane_Doe"},
		{"punctuation dropped", "a/b:c*d?", "abcd"},
		{"keeps dash and underscore", "x-y_z", "x-y_z"},
		{"unicode letters", "José Ñandú", "José_Ñandú"},
		{"numeric runes", "Ann ²½ x  ", "Ann_²½_x"},
		{"roman numeral", "Henry Ⅷ", "Henry_Ⅷ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "spiderweb_report_Jane_Doe.pdf", Filename("Jane Doe"))
	assert.Equal(t, "spiderweb_report_.pdf", Filename("///"))
}

func TestNewReport_AllZero(t *testing.T) {
	r := NewReport(assess(t, "Jane Doe", map[string]int{}))

	assert.Equal(t, "14-03-2025", r.Date)
	assert.Len(t, r.Axes, 11)
	require.Len(t, r.Layers, 2)
	assert.Equal(t, "Sections", r.Layers[0].Name)
	assert.Equal(t, "Level Averages", r.Layers[1].Name)
	assert.Len(t, r.Layers[1].Values, 5)
	assert.Nil(t, r.Slices)

	assert.Equal(t, "Jane Doe", r.Title[0])
	assert.Equal(t, "Date d-m-y: 14-03-2025", r.Title[1])
	assert.Equal(t, ReportTitle, r.Title[2])
	assert.Equal(t, "Jane Doe (14-03-2025)", r.PieTitle[1])
}

func TestNewReport_TierLayer(t *testing.T) {
	r := NewReport(assess(t, "Jane Doe", map[string]int{"4A": 19}))

	require.Len(t, r.Layers, 3)
	tier := r.Layers[2]
	assert.Equal(t, "High Risk Tier", tier.Name)
	assert.Equal(t, ColorTier, tier.Color)
	assert.Equal(t, 0.0, tier.Values[0])

	info := strings.Join(r.Info, "\n")
	assert.Contains(t, info, "High Risk Tier (purple):")
	assert.Contains(t, info, "of max possible for this tier")
}

func TestNewReport_NoTierLayerBelowThreshold(t *testing.T) {
	r := NewReport(assess(t, "Jane Doe", map[string]int{"4A": 18}))
	assert.Len(t, r.Layers, 2)
	assert.NotContains(t, strings.Join(r.Info, "\n"), "High Risk Tier")
}

func TestInfoLines(t *testing.T) {
	r := NewReport(assess(t, "Jane Doe", map[string]int{"4A": 11}))
	info := strings.Join(r.Info, "\n")

	assert.Contains(t, info, "Normalized scores of sections: 1A: 0.0%, 1B: 0.0%")
	assert.Contains(t, info, "4A: 50.0%")
	assert.Contains(t, info, "Positive answers of total: 11 / 210")
	assert.Contains(t, info, "4A: 11/22 (50.0%)")
	assert.Contains(t, info, "Max severe score before 3C: 1039.75")
}

func TestPieSlices_SingleSection(t *testing.T) {
	r := NewReport(assess(t, "Jane Doe", map[string]int{"1A": 30}))

	require.Len(t, r.Slices, 1)
	s := r.Slices[0]
	assert.Equal(t, "1A", s.Label)
	assert.InDelta(t, 100.0, s.Percent, 1e-9)
	assert.InDelta(t, 90.0, s.StartAngle, 1e-9)
	assert.InDelta(t, 450.0, s.EndAngle, 1e-9)
}

func TestPieSlices_SkipsZeroAndCoversCircle(t *testing.T) {
	r := NewReport(assess(t, "Jane Doe", map[string]int{"1A": 10, "3B": 5, "5B": 1}))

	require.Len(t, r.Slices, 3)
	assert.Equal(t, []string{"1A", "3B", "5B"}, []string{r.Slices[0].Label, r.Slices[1].Label, r.Slices[2].Label})

	total := 0.0
	for i, s := range r.Slices {
		total += s.Percent
		if i > 0 {
			assert.InDelta(t, r.Slices[i-1].EndAngle, s.StartAngle, 1e-9, "slices are contiguous")
		}
	}
	assert.InDelta(t, 100.0, total, 1e-9)
	assert.InDelta(t, 450.0, r.Slices[2].EndAngle, 1e-9)
	// palette follows table position, not slice position
	assert.Equal(t, piePalette[5], r.Slices[1].Color)
}

func TestSlice_PercentLabel(t *testing.T) {
	s := Slice{Percent: 50}
	assert.Equal(t, "50.0%\n(100)", s.PercentLabel(200))

	s = Slice{Percent: 33.3333}
	assert.Equal(t, "33.3%\n(33)", s.PercentLabel(100))
}

func TestRingLabels(t *testing.T) {
	rings, labels := RingLabels()
	require.Len(t, rings, 10)
	assert.InDelta(t, 0.1, rings[0], 1e-12)
	assert.InDelta(t, 1.0, rings[9], 1e-12)
	assert.Equal(t, "10%", labels[0])
	assert.Equal(t, "100%", labels[9])
	assert.Equal(t, -5.0, RingLabelAngle(0))
	assert.Equal(t, -10.0, RingLabelAngle(1))
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "1.0", trimFloat(1))
	assert.Equal(t, "0.5", trimFloat(0.5))
	assert.Equal(t, "12.345", trimFloat(12.345))
	assert.Equal(t, "1039.75", trimFloat(round(1039.75, 3)))
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#e69f00", ColorSections.Hex())
	assert.Equal(t, "#0072b2", ColorLevels.Hex())
}
