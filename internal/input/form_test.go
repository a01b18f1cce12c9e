package input

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/jonathan/spiderweb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormPrompter_CancelWhileOpen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opened := make(chan struct{}, 2)

	p := &FormPrompter{run: func(ctx context.Context, form *huh.Form) error {
		require.NotNil(t, form)
		opened <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	}}

	go func() {
		<-opened
		cancel()
	}()

	_, err := p.Count(ctx, types.Section{ID: "1A", QuestionCount: 30})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "count prompt failed")

	_, err = p.Name(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "a cancelled context skips the form")
}

func TestFormPrompter_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "run")

	p := &FormPrompter{run: func(got context.Context, _ *huh.Form) error {
		assert.Equal(t, "run", got.Value(key{}))
		return nil
	}}

	name, err := p.Name(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	_, err = p.Count(ctx, types.Section{ID: "1A", QuestionCount: 30})
	var countErr *CountError
	assert.True(t, errors.As(err, &countErr), "an unsubmitted field does not parse")
}

func TestCountValidator(t *testing.T) {
	validate := countValidator(types.Section{ID: "2B", QuestionCount: 12})

	assert.NoError(t, validate("12"))
	assert.NoError(t, validate(" 0 "))
	assert.Error(t, validate("13"))
	assert.Error(t, validate("abc"))
}
