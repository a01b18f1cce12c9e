package categories

import (
	"testing"

	"github.com/jonathan/spiderweb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_OrderAndValues(t *testing.T) {
	table := Default()

	assert.Equal(t, 11, table.Len())
	assert.Equal(t, []string{"1A", "1B", "2A", "2B", "3A", "3B", "3C", "4A", "4B", "5A", "5B"}, table.IDs())

	s, ok := table.Lookup("5B")
	require.True(t, ok)
	assert.Equal(t, 233.0, s.Weight)
	assert.Equal(t, 17, s.QuestionCount)
	assert.Equal(t, 0.0, s.BonusFraction)

	s, ok = table.Lookup("1A")
	require.True(t, ok)
	assert.Equal(t, 2.0, s.Weight)
	assert.Equal(t, 30, s.QuestionCount)
	assert.Equal(t, 0.35, s.BonusFraction)
}

func TestDefault_Levels(t *testing.T) {
	levels := Default().Levels()
	require.Len(t, levels, 5)
	assert.Equal(t, []string{"3A", "3B", "3C"}, levels[2].Sections)
	for i, l := range levels {
		if i == 2 {
			continue
		}
		assert.Len(t, l.Sections, 2, "level %s", l.Name)
	}
}

func TestDefault_TotalQuestions(t *testing.T) {
	assert.Equal(t, 210, Default().TotalQuestions())
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Default().Lookup("9Z")
	assert.False(t, ok)
	assert.Equal(t, -1, Default().Position("9Z"))
}

func TestSections_ReturnsCopy(t *testing.T) {
	table := Default()
	sections := table.Sections()
	sections[0].Weight = 1000

	s, _ := table.Lookup("1A")
	assert.Equal(t, 2.0, s.Weight, "mutating the returned slice must not change the table")

	levels := table.Levels()
	levels[0].Sections[0] = "XX"
	assert.Equal(t, "1A", table.Levels()[0].Sections[0])
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]types.Section{
		{ID: "A", Weight: 1, QuestionCount: 1},
		{ID: "A", Weight: 1, QuestionCount: 1},
	}, nil, TierLayout{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate section ID")
}

func TestNew_UnknownLevelSection(t *testing.T) {
	_, err := New([]types.Section{
		{ID: "A", Weight: 1, QuestionCount: 1},
	}, []Level{{Name: "1", Sections: []string{"B"}}}, TierLayout{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section")
}

func TestNew_InvalidSection(t *testing.T) {
	_, err := New([]types.Section{{ID: "A", Weight: 0, QuestionCount: 1}}, nil, TierLayout{})
	assert.Error(t, err)

	_, err = New(nil, nil, TierLayout{})
	assert.Error(t, err)
}
