//go:build cucumber

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/config"
	"github.com/jonathan/spiderweb/internal/types"
	"github.com/jonathan/spiderweb/internal/validation"
)

// TestAssessmentScenarios runs the end-to-end assessment feature scenarios.
func TestAssessmentScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "assessment.feature")
	suite := godog.TestSuite{
		Name:                "assessment",
		ScenarioInitializer: InitializeAssessmentScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeAssessmentScenario wires steps for assessment scenarios.
func InitializeAssessmentScenario(ctx *godog.ScenarioContext) {
	state := &assessmentScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		return ctx, os.RemoveAll(state.outDir)
	})

	ctx.Step(`^the default survey table$`, state.givenDefaultTable)
	ctx.Step(`^no positive answers$`, state.givenNoAnswers)
	ctx.Step(`^section "([^"]+)" has (\d+) positive answers$`, state.givenAnswers)
	ctx.Step(`^"([^"]*)" is assessed$`, state.whenAssessed)
	ctx.Step(`^every normalized score is 0$`, state.thenAllNormalizedZero)
	ctx.Step(`^the section polygon area is 0$`, state.thenSectionAreaZero)
	ctx.Step(`^the level polygon area is 0$`, state.thenLevelAreaZero)
	ctx.Step(`^section "([^"]+)" has raw score ([\d.]+)$`, state.thenRawScore)
	ctx.Step(`^section "([^"]+)" has normalized score ([\d.]+)$`, state.thenNormalizedScore)
	ctx.Step(`^the high risk tier is active$`, state.thenTierActive)
	ctx.Step(`^the high risk tier is not active$`, state.thenTierInactive)
	ctx.Step(`^only the pair trigger fired$`, state.thenOnlyPair)
	ctx.Step(`^the report file is named "([^"]+)"$`, state.thenReportNamed)
	ctx.Step(`^the report has (\d+) pages$`, state.thenReportPages)
}

type assessmentScenarioState struct {
	table      *categories.Table
	counts     map[string]int
	outDir     string
	assessment *types.Assessment
	reportPath string
}

// reset clears scenario state and creates a fresh output directory.
func (s *assessmentScenarioState) reset() error {
	dir, err := os.MkdirTemp("", "spiderweb-feature-*")
	if err != nil {
		return err
	}
	*s = assessmentScenarioState{counts: map[string]int{}, outDir: dir}
	return nil
}

func (s *assessmentScenarioState) givenDefaultTable() error {
	s.table = categories.Default()
	return nil
}

func (s *assessmentScenarioState) givenNoAnswers() error {
	s.counts = map[string]int{}
	return nil
}

func (s *assessmentScenarioState) givenAnswers(section string, yes int) error {
	s.counts[section] = yes
	return nil
}

func (s *assessmentScenarioState) whenAssessed(ctx context.Context, name string) error {
	cfg := config.Config{OutDir: s.outDir, Renderer: "pdf"}
	a, path, err := generate(ctx, cfg, s.table, name, s.counts, zap.NewNop())
	if err != nil {
		return err
	}
	s.assessment = a
	s.reportPath = path
	return nil
}

func (s *assessmentScenarioState) section(id string) (types.SectionScore, error) {
	for _, sc := range s.assessment.Sections {
		if sc.ID == id {
			return sc, nil
		}
	}
	return types.SectionScore{}, fmt.Errorf("section %s not in assessment", id)
}

func (s *assessmentScenarioState) thenAllNormalizedZero() error {
	for _, sc := range s.assessment.Sections {
		if sc.Normalized != 0 {
			return fmt.Errorf("section %s normalized %v, want 0", sc.ID, sc.Normalized)
		}
	}
	return nil
}

func (s *assessmentScenarioState) thenSectionAreaZero() error {
	if s.assessment.Full.Area != 0 || s.assessment.Full.Percent != 0 {
		return fmt.Errorf("section polygon area %v (%v%%), want 0", s.assessment.Full.Area, s.assessment.Full.Percent)
	}
	return nil
}

func (s *assessmentScenarioState) thenLevelAreaZero() error {
	if s.assessment.LevelPolygon.Area != 0 {
		return fmt.Errorf("level polygon area %v, want 0", s.assessment.LevelPolygon.Area)
	}
	return nil
}

func (s *assessmentScenarioState) thenRawScore(id string, want float64) error {
	sc, err := s.section(id)
	if err != nil {
		return err
	}
	if math.Abs(sc.Raw-want) > 1e-9 {
		return fmt.Errorf("section %s raw %v, want %v", id, sc.Raw, want)
	}
	return nil
}

func (s *assessmentScenarioState) thenNormalizedScore(id string, want float64) error {
	sc, err := s.section(id)
	if err != nil {
		return err
	}
	if math.Abs(sc.Normalized-want) > 1e-12 {
		return fmt.Errorf("section %s normalized %v, want %v", id, sc.Normalized, want)
	}
	return nil
}

func (s *assessmentScenarioState) thenTierActive() error {
	if s.assessment.HighRiskTier == nil {
		return fmt.Errorf("high risk tier not active (state %s)", s.assessment.State)
	}
	return nil
}

func (s *assessmentScenarioState) thenTierInactive() error {
	if s.assessment.HighRiskTier != nil {
		return fmt.Errorf("high risk tier active (state %s)", s.assessment.State)
	}
	return nil
}

func (s *assessmentScenarioState) thenOnlyPair() error {
	t := s.assessment.HighRiskTier
	if t == nil || !t.PairTriggered || t.SingleTriggered {
		return fmt.Errorf("want pair trigger only, got %+v", t)
	}
	return nil
}

func (s *assessmentScenarioState) thenReportNamed(want string) error {
	if got := filepath.Base(s.reportPath); got != want {
		return fmt.Errorf("report named %s, want %s", got, want)
	}
	return nil
}

func (s *assessmentScenarioState) thenReportPages(ctx context.Context, want int) error {
	pages, err := validation.CountPDFPages(ctx, s.reportPath)
	if err != nil {
		return err
	}
	if pages != want {
		return fmt.Errorf("report has %d pages, want %d", pages, want)
	}
	return nil
}
