// Package categories defines the fixed survey section table and its groupings.
package categories

import (
	"fmt"

	"github.com/jonathan/spiderweb/internal/types"
)

// Level is a named group of sections aggregated into one derived score
type Level struct {
	Name     string
	Sections []string
}

// Table is an ordered, read-only set of sections. The order is the order of
// radar axes, pie slices and every per-section listing.
type Table struct {
	sections []types.Section
	index    map[string]int
	levels   []Level
	tier     TierLayout
}

// TierLayout describes which sections feed the high risk tier triggers
type TierLayout struct {
	// Baseline sections whose summed maximum is the trigger threshold
	Baseline []string
	// Pair sections whose combined raw score is compared to the threshold
	Pair []string
	// Singles are compared to the threshold individually
	Singles []string
	// Members are plotted on the tier polygon; all other axes are zero
	Members []string
}

var defaultSections = []types.Section{
	{ID: "1A", Weight: 2, QuestionCount: 30, BonusFraction: 0.35},
	{ID: "1B", Weight: 3, QuestionCount: 12, BonusFraction: 0.30},
	{ID: "2A", Weight: 5, QuestionCount: 21, BonusFraction: 0.25},
	{ID: "2B", Weight: 8, QuestionCount: 23, BonusFraction: 0.20},
	{ID: "3A", Weight: 13, QuestionCount: 22, BonusFraction: 0.15},
	{ID: "3B", Weight: 21, QuestionCount: 10, BonusFraction: 0.10},
	{ID: "3C", Weight: 34, QuestionCount: 14, BonusFraction: 0.02},
	{ID: "4A", Weight: 55, QuestionCount: 22, BonusFraction: 0},
	{ID: "4B", Weight: 89, QuestionCount: 19, BonusFraction: 0},
	{ID: "5A", Weight: 144, QuestionCount: 20, BonusFraction: 0},
	{ID: "5B", Weight: 233, QuestionCount: 17, BonusFraction: 0},
}

var defaultLevels = []Level{
	{Name: "1", Sections: []string{"1A", "1B"}},
	{Name: "2", Sections: []string{"2A", "2B"}},
	{Name: "3", Sections: []string{"3A", "3B", "3C"}},
	{Name: "4", Sections: []string{"4A", "4B"}},
	{Name: "5", Sections: []string{"5A", "5B"}},
}

var defaultTier = TierLayout{
	Baseline: []string{"1A", "1B", "2A", "2B", "3A", "3B"},
	Pair:     []string{"3C", "4A"},
	Singles:  []string{"4A", "4B", "5A", "5B"},
	Members:  []string{"3C", "4A", "4B", "5A", "5B"},
}

var defaultTable = mustNew(defaultSections, defaultLevels, defaultTier)

// Default returns the built-in eleven-section table
func Default() *Table {
	return defaultTable
}

// New builds a table, checking that IDs are unique and that every level and tier
// reference names a known section.
func New(sections []types.Section, levels []Level, tier TierLayout) (*Table, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}

	t := &Table{
		sections: make([]types.Section, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	copy(t.sections, sections)

	for i, s := range t.sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section %d has an empty ID", i)
		}
		if _, dup := t.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section ID %q", s.ID)
		}
		if s.Weight <= 0 || s.QuestionCount <= 0 || s.BonusFraction < 0 {
			return nil, fmt.Errorf("section %s has invalid weight, question count or bonus", s.ID)
		}
		t.index[s.ID] = i
	}

	for _, l := range levels {
		if len(l.Sections) == 0 {
			return nil, fmt.Errorf("level %s has no sections", l.Name)
		}
		if err := t.checkKnown("level "+l.Name, l.Sections); err != nil {
			return nil, err
		}
		t.levels = append(t.levels, Level{Name: l.Name, Sections: append([]string(nil), l.Sections...)})
	}

	for name, ids := range map[string][]string{
		"tier baseline": tier.Baseline,
		"tier pair":     tier.Pair,
		"tier singles":  tier.Singles,
		"tier members":  tier.Members,
	} {
		if err := t.checkKnown(name, ids); err != nil {
			return nil, err
		}
	}
	t.tier = TierLayout{
		Baseline: append([]string(nil), tier.Baseline...),
		Pair:     append([]string(nil), tier.Pair...),
		Singles:  append([]string(nil), tier.Singles...),
		Members:  append([]string(nil), tier.Members...),
	}

	return t, nil
}

func mustNew(sections []types.Section, levels []Level, tier TierLayout) *Table {
	t, err := New(sections, levels, tier)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in category table: %v", err))
	}
	return t
}

func (t *Table) checkKnown(owner string, ids []string) error {
	for _, id := range ids {
		if _, ok := t.index[id]; !ok {
			return fmt.Errorf("%s references unknown section %q", owner, id)
		}
	}
	return nil
}

// Len returns the number of sections
func (t *Table) Len() int {
	return len(t.sections)
}

// Sections returns a copy of the sections in table order
func (t *Table) Sections() []types.Section {
	out := make([]types.Section, len(t.sections))
	copy(out, t.sections)
	return out
}

// IDs returns the section identifiers in table order
func (t *Table) IDs() []string {
	ids := make([]string, len(t.sections))
	for i, s := range t.sections {
		ids[i] = s.ID
	}
	return ids
}

// Lookup returns the section with the given ID
func (t *Table) Lookup(id string) (types.Section, bool) {
	i, ok := t.index[id]
	if !ok {
		return types.Section{}, false
	}
	return t.sections[i], true
}

// Position returns the axis index of a section, or -1 if unknown
func (t *Table) Position(id string) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}

// Levels returns a copy of the level groups
func (t *Table) Levels() []Level {
	out := make([]Level, len(t.levels))
	for i, l := range t.levels {
		out[i] = Level{Name: l.Name, Sections: append([]string(nil), l.Sections...)}
	}
	return out
}

// Tier returns a copy of the high risk tier layout
func (t *Table) Tier() TierLayout {
	return TierLayout{
		Baseline: append([]string(nil), t.tier.Baseline...),
		Pair:     append([]string(nil), t.tier.Pair...),
		Singles:  append([]string(nil), t.tier.Singles...),
		Members:  append([]string(nil), t.tier.Members...),
	}
}

// TotalQuestions sums the question counts of every section
func (t *Table) TotalQuestions() int {
	total := 0
	for _, s := range t.sections {
		total += s.QuestionCount
	}
	return total
}
