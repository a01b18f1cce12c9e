// Package risk turns yes counts into a complete assessment, including the
// conditional high risk tier.
package risk

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/geometry"
	"github.com/jonathan/spiderweb/internal/scoring"
	"github.com/jonathan/spiderweb/internal/types"
)

// State is the outcome of the tier trigger evaluation
type State string

const (
	// StateNormal means neither trigger fired
	StateNormal State = "normal"
	// StateHighRiskTier means the tier polygon is computed and reported
	StateHighRiskTier State = "high-risk-tier-active"
)

// Triggers records which tier conditions fired
type Triggers struct {
	Pair   bool
	Single bool
}

// Active reports whether the tier should be produced
func (t Triggers) Active() bool {
	return t.Pair || t.Single
}

// State maps the triggers onto the two-state outcome
func (t Triggers) State() State {
	if t.Active() {
		return StateHighRiskTier
	}
	return StateNormal
}

// MaxBeforeTier sums the maximum possible scores of the tier baseline sections
func MaxBeforeTier(table *categories.Table) float64 {
	total := 0.0
	for _, id := range table.Tier().Baseline {
		s, _ := table.Lookup(id)
		total += scoring.SectionMax(s)
	}
	return total
}

// Evaluate checks both triggers against raw scores keyed by section ID
func Evaluate(table *categories.Table, raw map[string]float64, threshold float64) Triggers {
	tier := table.Tier()

	pair := 0.0
	for _, id := range tier.Pair {
		pair += raw[id]
	}

	single := false
	for _, id := range tier.Singles {
		if raw[id] >= threshold {
			single = true
			break
		}
	}

	return Triggers{Pair: pair >= threshold, Single: single}
}

// TierValues lays the tier members' normalized scores onto the full axis order,
// with every other axis set to 0
func TierValues(table *categories.Table, normalized map[string]float64) []float64 {
	values := make([]float64, table.Len())
	for _, id := range table.Tier().Members {
		values[table.Position(id)] = normalized[id]
	}
	return values
}

// TierReferenceArea is the area of the tier layout with every member at 1
func TierReferenceArea(table *categories.Table) (float64, error) {
	reference := make(map[string]float64)
	for _, id := range table.Tier().Members {
		reference[id] = 1
	}
	return geometry.PolygonArea(TierValues(table, reference))
}

// Assess runs scoring, normalization, geometry and tier evaluation for one
// respondent.
func Assess(table *categories.Table, name string, counts map[string]int, now time.Time) (*types.Assessment, error) {
	scores, err := scoring.Evaluate(table, counts)
	if err != nil {
		return nil, err
	}

	labels := table.IDs()
	normalized := make([]float64, len(scores))
	normByID := make(map[string]float64, len(scores))
	rawByID := make(map[string]float64, len(scores))
	for i, s := range scores {
		normalized[i] = s.Normalized
		normByID[s.ID] = s.Normalized
		rawByID[s.ID] = s.Raw
	}

	full, err := geometry.SummarizeRegular(labels, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to compute section polygon: %w", err)
	}

	levels := scoring.Levels(table, scores)
	levelLabels := make([]string, len(levels))
	levelValues := make([]float64, len(levels))
	for i, l := range levels {
		levelLabels[i] = l.Name
		levelValues[i] = l.Average
	}
	levelPolygon, err := geometry.SummarizeRegular(levelLabels, levelValues)
	if err != nil {
		return nil, fmt.Errorf("failed to compute level polygon: %w", err)
	}

	threshold := MaxBeforeTier(table)
	triggers := Evaluate(table, rawByID, threshold)

	totalRaw, totalMax, totalYes, totalQuestions := scoring.Totals(scores)

	assessment := &types.Assessment{
		ID:             uuid.New().String(),
		Name:           name,
		Date:           now,
		Sections:       scores,
		Levels:         levels,
		Full:           full,
		LevelPolygon:   levelPolygon,
		MaxBeforeTier:  threshold,
		State:          string(triggers.State()),
		TotalRaw:       totalRaw,
		TotalMax:       totalMax,
		TotalYes:       totalYes,
		TotalQuestions: totalQuestions,
	}

	if triggers.Active() {
		referenceArea, err := TierReferenceArea(table)
		if err != nil {
			return nil, fmt.Errorf("failed to compute tier reference area: %w", err)
		}
		tierPolygon, err := geometry.Summarize(labels, TierValues(table, normByID), referenceArea)
		if err != nil {
			return nil, fmt.Errorf("failed to compute tier polygon: %w", err)
		}
		assessment.HighRiskTier = &types.HighRiskTier{
			PairTriggered:   triggers.Pair,
			SingleTriggered: triggers.Single,
			Polygon:         tierPolygon,
		}
	}

	return assessment, nil
}
