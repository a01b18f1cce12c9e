// Package scoring computes weighted section scores, normalizes them and aggregates levels.
package scoring

import (
	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/types"
)

// BonusApplies reports whether yes reaches two thirds of questionCount.
// The comparison is exact: 3·yes ≥ 2·q.
func BonusApplies(yes, questionCount int, bonusFraction float64) bool {
	return bonusFraction > 0 && 3*yes >= 2*questionCount
}

// Score returns the raw score for a section: weight per yes answer, plus a bonus of
// bonusFraction of the section's base maximum once the bonus threshold is reached.
// yes is expected to be validated by the caller.
func Score(yes int, weight float64, questionCount int, bonusFraction float64) float64 {
	subtotal := weight * float64(yes)
	bonus := 0.0
	if BonusApplies(yes, questionCount, bonusFraction) {
		bonus = bonusFraction * (weight * float64(questionCount))
	}
	return subtotal + bonus
}

// MaxPossibleScore is the raw score reached when every question is answered yes
func MaxPossibleScore(weight float64, questionCount int, bonusFraction float64) float64 {
	baseMax := weight * float64(questionCount)
	bonusMax := 0.0
	if bonusFraction > 0 {
		bonusMax = bonusFraction * baseMax
	}
	return baseMax + bonusMax
}

// Normalize maps a raw score onto [0,1] against the section maximum.
// A zero maximum yields 0.
func Normalize(raw, weight float64, questionCount int, bonusFraction float64) float64 {
	maxPossible := MaxPossibleScore(weight, questionCount, bonusFraction)
	if maxPossible <= 0 {
		return 0
	}
	return raw / maxPossible
}

// SectionMax is MaxPossibleScore for a table section
func SectionMax(s types.Section) float64 {
	return MaxPossibleScore(s.Weight, s.QuestionCount, s.BonusFraction)
}

// Evaluate scores every section of the table in order. Sections missing from counts
// score zero. Counts for unknown sections or outside [0, question count] are rejected.
func Evaluate(table *categories.Table, counts map[string]int) ([]types.SectionScore, error) {
	for id := range counts {
		if _, ok := table.Lookup(id); !ok {
			return nil, &CountError{Section: id, Message: "unknown section"}
		}
	}

	sections := table.Sections()
	scores := make([]types.SectionScore, 0, len(sections))
	for _, s := range sections {
		yes := counts[s.ID]
		if yes < 0 || yes > s.QuestionCount {
			return nil, &CountError{
				Section: s.ID,
				Count:   yes,
				Max:     s.QuestionCount,
				Message: "count out of range",
			}
		}

		raw := Score(yes, s.Weight, s.QuestionCount, s.BonusFraction)
		scores = append(scores, types.SectionScore{
			ID:            s.ID,
			YesCount:      yes,
			QuestionCount: s.QuestionCount,
			Raw:           raw,
			Max:           SectionMax(s),
			Normalized:    Normalize(raw, s.Weight, s.QuestionCount, s.BonusFraction),
			BonusApplied:  BonusApplies(yes, s.QuestionCount, s.BonusFraction),
		})
	}

	return scores, nil
}

// Levels aggregates normalized section scores into the table's level groups.
// Average is the mean normalized score; Score rescales the member sum by
// 100/len(members) so it reads as a percentage.
func Levels(table *categories.Table, scores []types.SectionScore) []types.LevelScore {
	byID := make(map[string]float64, len(scores))
	for _, s := range scores {
		byID[s.ID] = s.Normalized
	}

	groups := table.Levels()
	levels := make([]types.LevelScore, 0, len(groups))
	for _, g := range groups {
		sum := 0.0
		for _, id := range g.Sections {
			sum += byID[id]
		}
		n := float64(len(g.Sections))
		levels = append(levels, types.LevelScore{
			Name:     g.Name,
			Sections: g.Sections,
			Average:  sum / n,
			Score:    sum * (100 / n),
		})
	}

	return levels
}

// Totals sums raw and maximum scores and yes answers across sections
func Totals(scores []types.SectionScore) (raw, maxScore float64, yes, questions int) {
	for _, s := range scores {
		raw += s.Raw
		maxScore += s.Max
		yes += s.YesCount
		questions += s.QuestionCount
	}
	return raw, maxScore, yes, questions
}
