// Package validate holds the advisory post-generation checks. Validators are
// pure functions over a finished specification: they never mutate it and
// their findings never block generation. Callers log the report and move on.
package validate

import (
	"fmt"
	"strings"

	"github.com/forgelab/gamegen-go/internal/spec"
)

// Report is the outcome of one validator pass. Warnings mark likely design
// problems; suggestions are softer nudges. Only warnings clear Valid.
type Report struct {
	Valid       bool     `json:"valid"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (r *Report) warn(format string, args ...any) {
	r.Valid = false
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) suggest(format string, args ...any) {
	r.Suggestions = append(r.Suggestions, fmt.Sprintf(format, args...))
}

// merge folds another report into this one.
func (r *Report) merge(other Report) {
	r.Valid = r.Valid && other.Valid
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Suggestions = append(r.Suggestions, other.Suggestions...)
}

// Check runs every validator and returns the combined report.
func Check(s *spec.GameSpecification) Report {
	report := CheckMeaningfulPlay(s)
	report.merge(CheckDifficulty(s))
	return report
}

// feedbackKeywords are the visible-feedback markers the meaningful-play
// check looks for in rule effects and descriptions.
var feedbackKeywords = []string{
	"flash", "shake", "particle", "sparkle", "glow", "sound", "pulse",
}

// CheckMeaningfulPlay verifies the specification gives the player's actions
// visible consequences: every verb drives a system, rules produce visible
// feedback, scoring ties to a verb, progression exists, and the loops and
// narrative are non-empty.
func CheckMeaningfulPlay(s *spec.GameSpecification) Report {
	report := Report{Valid: true}

	for _, verb := range s.Verbs {
		found := false
		for _, sys := range s.Systems {
			if sys.Verb == verb {
				found = true
				break
			}
		}
		if !found {
			report.warn("verb %q has no system driving it", verb)
		}
	}

	hasFeedback := false
	hasVerbScoring := false
	hasProgression := false
	for _, rule := range s.Rules {
		text := strings.ToLower(rule.Effect + " " + rule.Description)
		for _, kw := range feedbackKeywords {
			if strings.Contains(text, kw) {
				hasFeedback = true
				break
			}
		}
		if rule.Category == spec.RuleScoring && len(rule.Verbs) > 0 {
			hasVerbScoring = true
		}
		if rule.Category == spec.RuleProgression {
			hasProgression = true
		}
	}
	if !hasFeedback {
		report.warn("no rule produces visible feedback (%s)", strings.Join(feedbackKeywords, ", "))
	}
	if !hasVerbScoring {
		report.warn("no scoring rule is tied to a verb")
	}
	if !hasProgression {
		report.warn("no rule links play to progression")
	}

	if len(s.Loops) == 0 {
		report.warn("specification has no feedback loops")
	}
	if len(s.Narrative.Nodes) == 0 {
		report.warn("narrative graph is empty")
	}

	return report
}

// CheckDifficulty sanity-checks the difficulty curve: an accessible opening,
// enough dynamic range, no punishing unbroken climbs or spikes, and at least
// one breather in longer curves.
func CheckDifficulty(s *spec.GameSpecification) Report {
	report := Report{Valid: true}
	curve := s.Difficulty.Curve
	if len(curve) == 0 {
		report.warn("difficulty curve is empty")
		return report
	}

	if curve[0] > 0.4 {
		report.warn("opening difficulty %.2f exceeds 0.4; the first moments should be accessible", curve[0])
	}

	min, max := curve[0], curve[0]
	for _, v := range curve[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max-min < 0.15 {
		report.warn("curve range %.2f is below 0.15; difficulty barely changes", max-min)
	}

	rising := 0
	hasDecrease := false
	for i := 1; i < len(curve); i++ {
		step := curve[i] - curve[i-1]
		if step > 0.35 {
			report.warn("difficulty jumps %.2f between steps %d and %d", step, i-1, i)
		}
		if step > 0 {
			rising++
			if rising > 5 {
				report.warn("more than 5 strictly increasing steps in a row ending at step %d", i)
				rising = 0 // report each unbroken climb once
			}
		} else {
			rising = 0
			if step < 0 {
				hasDecrease = true
			}
		}
	}

	if len(curve) >= 5 && !hasDecrease {
		report.suggest("curve never decreases; consider a breathing-room dip")
	}

	return report
}
