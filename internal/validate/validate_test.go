package validate

import (
	"strings"
	"testing"

	"github.com/forgelab/gamegen-go/internal/spec"
)

// wellFormed builds the smallest specification that satisfies every check.
func wellFormed() *spec.GameSpecification {
	return &spec.GameSpecification{
		Verbs: []string{"jump"},
		Systems: []spec.System{
			{ID: "sys-jump", Verb: "jump"},
		},
		Rules: []spec.Rule{
			{ID: "r1", Category: spec.RuleScoring, Verbs: []string{"jump"}, Effect: "+5 score, landing flash"},
			{ID: "r2", Category: spec.RuleProgression, Effect: "advance stage"},
		},
		Loops: []spec.FeedbackLoop{
			{ID: "l1", Polarity: "positive", Source: "score", Target: "momentum"},
		},
		Narrative: spec.NarrativeGraph{
			StartID: "a",
			Nodes:   []spec.NarrativeNode{{ID: "a", ClueIndex: -1, Ending: true}},
		},
		Difficulty: spec.DifficultyConfig{
			Curve: []float64{0.2, 0.35, 0.3, 0.45, 0.4},
		},
	}
}

func TestWellFormedSpecPasses(t *testing.T) {
	report := Check(wellFormed())
	if !report.Valid {
		t.Fatalf("Well-formed spec flagged invalid: %v", report.Warnings)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", report.Warnings)
	}
}

func TestUnboundVerbWarns(t *testing.T) {
	s := wellFormed()
	s.Verbs = append(s.Verbs, "dash")

	report := CheckMeaningfulPlay(s)
	if report.Valid {
		t.Fatal("Verb without a system should invalidate")
	}
	assertWarningContains(t, report, `"dash"`)
}

func TestMissingFeedbackWarns(t *testing.T) {
	s := wellFormed()
	s.Rules[0].Effect = "+5 score"

	report := CheckMeaningfulPlay(s)
	assertWarningContains(t, report, "visible feedback")
}

func TestMissingVerbScoringWarns(t *testing.T) {
	s := wellFormed()
	s.Rules[0].Verbs = nil

	report := CheckMeaningfulPlay(s)
	assertWarningContains(t, report, "scoring rule")
}

func TestMissingProgressionWarns(t *testing.T) {
	s := wellFormed()
	s.Rules = s.Rules[:1]

	report := CheckMeaningfulPlay(s)
	assertWarningContains(t, report, "progression")
}

func TestEmptyLoopsAndNarrativeWarn(t *testing.T) {
	s := wellFormed()
	s.Loops = nil
	s.Narrative.Nodes = nil

	report := CheckMeaningfulPlay(s)
	assertWarningContains(t, report, "feedback loops")
	assertWarningContains(t, report, "narrative graph")
}

func TestSteepOpeningWarns(t *testing.T) {
	s := wellFormed()
	s.Difficulty.Curve = []float64{0.5, 0.4, 0.55, 0.45, 0.6}

	report := CheckDifficulty(s)
	assertWarningContains(t, report, "accessible")
}

func TestFlatCurveWarns(t *testing.T) {
	s := wellFormed()
	s.Difficulty.Curve = []float64{0.3, 0.32, 0.31, 0.33, 0.3}

	report := CheckDifficulty(s)
	assertWarningContains(t, report, "range")
}

func TestSpikeWarns(t *testing.T) {
	s := wellFormed()
	s.Difficulty.Curve = []float64{0.2, 0.6, 0.5, 0.55, 0.45}

	report := CheckDifficulty(s)
	assertWarningContains(t, report, "jumps")
}

func TestLongClimbWarns(t *testing.T) {
	s := wellFormed()
	s.Difficulty.Curve = []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4}

	report := CheckDifficulty(s)
	assertWarningContains(t, report, "increasing")
}

func TestNoDecreaseSuggestsOnly(t *testing.T) {
	s := wellFormed()
	s.Difficulty.Curve = []float64{0.1, 0.2, 0.3, 0.3, 0.4}

	report := CheckDifficulty(s)
	if !report.Valid {
		t.Fatalf("Suggestions must not invalidate: %v", report.Warnings)
	}
	if len(report.Suggestions) == 0 {
		t.Error("Curve without a decrease should draw a breathing-room suggestion")
	}
}

func TestEmptyCurveWarns(t *testing.T) {
	s := wellFormed()
	s.Difficulty.Curve = nil

	report := CheckDifficulty(s)
	if report.Valid {
		t.Error("Empty curve should invalidate")
	}
}

func assertWarningContains(t *testing.T, report Report, substr string) {
	t.Helper()
	for _, w := range report.Warnings {
		if strings.Contains(w, substr) {
			return
		}
	}
	t.Errorf("No warning contains %q; got %v", substr, report.Warnings)
}
