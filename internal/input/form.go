package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/jonathan/spiderweb/internal/types"
)

// FormPrompter asks through terminal form fields that validate as the operator types.
// Use it only when stdin is a terminal.
type FormPrompter struct {
	// run drives a form until it is submitted or ctx is done
	run func(ctx context.Context, form *huh.Form) error
}

// NewFormPrompter creates a terminal form prompter
func NewFormPrompter() *FormPrompter {
	return &FormPrompter{run: func(ctx context.Context, form *huh.Form) error {
		return form.RunWithContext(ctx)
	}}
}

// Name asks for the respondent's display name
func (p *FormPrompter) Name(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var name string
	if err := p.run(ctx, nameForm(&name)); err != nil {
		return "", fmt.Errorf("name prompt failed: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// Count asks for the yes count of one section; the field will not submit until
// ParseCount accepts the text
func (p *FormPrompter) Count(ctx context.Context, section types.Section) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var raw string
	if err := p.run(ctx, countForm(section, &raw)); err != nil {
		return 0, fmt.Errorf("count prompt failed: %w", err)
	}

	return ParseCount(raw, section.QuestionCount)
}

func nameForm(name *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Please enter your name").
			Value(name),
	))
}

func countForm(section types.Section, raw *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("%s (max %d)", section.ID, section.QuestionCount)).
			Value(raw).
			Validate(countValidator(section)),
	))
}

func countValidator(section types.Section) func(string) error {
	return func(s string) error {
		_, err := ParseCount(s, section.QuestionCount)
		return err
	}
}
