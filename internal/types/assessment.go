// Package types provides type definitions for structured data used throughout the spiderweb system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Section is one scored survey category
type Section struct {
	ID            string  `json:"id" yaml:"id"`
	Weight        float64 `json:"weight" yaml:"weight"`
	QuestionCount int     `json:"question_count" yaml:"question_count"`
	BonusFraction float64 `json:"bonus_fraction" yaml:"bonus_fraction"`
}

// SectionScore holds the computed scores for a single section
type SectionScore struct {
	ID            string  `json:"id" yaml:"id"`
	YesCount      int     `json:"yes_count" yaml:"yes_count"`
	QuestionCount int     `json:"question_count" yaml:"question_count"`
	Raw           float64 `json:"raw" yaml:"raw"`
	Max           float64 `json:"max" yaml:"max"`
	Normalized    float64 `json:"normalized" yaml:"normalized"`
	BonusApplied  bool    `json:"bonus_applied" yaml:"bonus_applied"`
}

// LevelScore is the aggregate of a group of sections
type LevelScore struct {
	Name     string   `json:"name" yaml:"name"`
	Sections []string `json:"sections" yaml:"sections"`
	Average  float64  `json:"average" yaml:"average"` // mean normalized score, 0-1
	Score    float64  `json:"score" yaml:"score"`     // percentage, 0-100
}

// Polygon is a closed radar polygon together with its area statistics
type Polygon struct {
	Labels  []string  `json:"labels" yaml:"labels"`
	Values  []float64 `json:"values" yaml:"values"`
	Area    float64   `json:"area" yaml:"area"`
	MaxArea float64   `json:"max_area" yaml:"max_area"`
	Percent float64   `json:"percent" yaml:"percent"`
}

// HighRiskTier is present on an assessment only when a tier trigger fired
type HighRiskTier struct {
	PairTriggered   bool    `json:"pair_triggered" yaml:"pair_triggered"`
	SingleTriggered bool    `json:"single_triggered" yaml:"single_triggered"`
	Polygon         Polygon `json:"polygon" yaml:"polygon"`
}

// Assessment is the complete numeric result of one survey run
type Assessment struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Date           time.Time      `json:"date" yaml:"date"`
	Sections       []SectionScore `json:"sections" yaml:"sections"`
	Levels         []LevelScore   `json:"levels" yaml:"levels"`
	Full           Polygon        `json:"full" yaml:"full"`
	LevelPolygon   Polygon        `json:"level_polygon" yaml:"level_polygon"`
	MaxBeforeTier  float64        `json:"max_before_tier" yaml:"max_before_tier"`
	State          string         `json:"state" yaml:"state"`
	HighRiskTier   *HighRiskTier  `json:"high_risk_tier,omitempty" yaml:"high_risk_tier,omitempty"`
	TotalRaw       float64        `json:"total_raw" yaml:"total_raw"`
	TotalMax       float64        `json:"total_max" yaml:"total_max"`
	TotalYes       int            `json:"total_yes" yaml:"total_yes"`
	TotalQuestions int            `json:"total_questions" yaml:"total_questions"`
}

// Labels returns the section IDs in table order
func (a *Assessment) Labels() []string {
	labels := make([]string, len(a.Sections))
	for i, s := range a.Sections {
		labels[i] = s.ID
	}
	return labels
}

// AnswerSheet is the non-interactive input format
type AnswerSheet struct {
	Name      string         `json:"name" yaml:"name" validate:"required"`
	YesCounts map[string]int `json:"yes_counts" yaml:"yes_counts" validate:"required,dive,keys,required,endkeys,gte=0"`
}
