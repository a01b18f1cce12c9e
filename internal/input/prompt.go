package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/types"
	"go.uber.org/zap"
)

// ErrNoInput is returned when the input stream ends before a valid answer
var ErrNoInput = errors.New("input ended before all answers were collected")

// Prompter asks the operator for a name and one count per section
type Prompter interface {
	Name(ctx context.Context) (string, error)
	Count(ctx context.Context, section types.Section) (int, error)
}

// LinePrompter reads answers line by line, re-prompting until each one is valid
type LinePrompter struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// NewLinePrompter creates a prompter over plain reader/writer streams
func NewLinePrompter(in io.Reader, out io.Writer, logger *zap.Logger) *LinePrompter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinePrompter{in: bufio.NewScanner(in), out: out, logger: logger}
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrNoInput
	}
	return p.in.Text(), nil
}

// Name asks for the respondent's display name
//
//nolint:errcheck // prompts go to the terminal
func (p *LinePrompter) Name(ctx context.Context) (string, error) {
	fmt.Fprint(p.out, "Please enter your name: ")
	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Count asks for the yes count of one section until a valid value is entered
//
//nolint:errcheck // prompts go to the terminal
func (p *LinePrompter) Count(ctx context.Context, section types.Section) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s (max %d): ", section.ID, section.QuestionCount)
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}

		value, err := ParseCount(line, section.QuestionCount)
		if err == nil {
			return value, nil
		}

		p.logger.Debug("rejected answer",
			zap.String("section", section.ID),
			zap.String("input", line),
			zap.Error(err))
		fmt.Fprintln(p.out, err.Error())
	}
}

// Collect prompts for every section of the table in order
func Collect(ctx context.Context, p Prompter, table *categories.Table) (map[string]int, error) {
	counts := make(map[string]int, table.Len())
	for _, s := range table.Sections() {
		value, err := p.Count(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", s.ID, err)
		}
		counts[s.ID] = value
	}
	return counts, nil
}

// PrintMaxima lists the question count of every section
//
//nolint:errcheck // writing to the terminal
func PrintMaxima(out io.Writer, table *categories.Table) {
	fmt.Fprintln(out, "Max number of questions per section:")
	for _, s := range table.Sections() {
		fmt.Fprintf(out, "%s: %d\n", s.ID, s.QuestionCount)
	}
	fmt.Fprintln(out, "Enter the number of 'yes' answers for each section (max shown):")
}
