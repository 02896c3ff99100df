package pipeline

import (
	"fmt"

	"github.com/forgelab/gamegen-go/internal/chaos"
	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/spec"
)

func gravityScale(g choices.GravityMode) float64 {
	switch g {
	case choices.GravityLow:
		return 0.4
	case choices.GravityHeavy:
		return 1.6
	case choices.GravityZero:
		return 0
	case choices.GravityInverted:
		return -1
	default:
		return 1
	}
}

// Verb-conditional systems for the common verb vocabulary. Unlisted verbs get
// a generic action system so the meaningful-play check always has a binding.
var verbSystems = map[string]spec.System{
	"jump":    {ID: "sys-jump", Name: "jump control", Params: map[string]float64{"impulse": 420, "coyote_ms": 90}},
	"shoot":   {ID: "sys-projectile", Name: "projectile", Params: map[string]float64{"speed": 560, "cooldown_ms": 250}},
	"dash":    {ID: "sys-dash", Name: "dash", Params: map[string]float64{"distance": 140, "cooldown_ms": 800}},
	"collect": {ID: "sys-magnet", Name: "pickup magnet", Params: map[string]float64{"radius": 48}},
	"climb":   {ID: "sys-climb", Name: "climb", Params: map[string]float64{"speed": 90}},
	"swim":    {ID: "sys-swim", Name: "swim", Params: map[string]float64{"speed": 110, "buoyancy": 0.6}},
	"talk":    {ID: "sys-dialogue", Name: "dialogue", Params: map[string]float64{"radius": 64}},
	"build":   {ID: "sys-build", Name: "build", Params: map[string]float64{"reach": 96}},
}

// buildSystems is fully determined by the choice vector; no draws. The base
// five systems always lead, verb systems follow in verb order, and the chaos
// system closes the list when chaos is on.
func buildSystems(cv choices.ChoiceVector) []spec.System {
	systems := []spec.System{
		{ID: "sys-physics", Name: "physics", Params: map[string]float64{"gravity_scale": gravityScale(cv.Gravity)}},
		{ID: "sys-movement", Name: "movement", Params: map[string]float64{"base_speed": 200}},
		{ID: "sys-collision", Name: "collision"},
		{ID: "sys-rendering", Name: "rendering"},
		{ID: "sys-scoring", Name: "scoring"},
	}

	for _, verb := range cv.Verbs {
		sys, ok := verbSystems[verb]
		if !ok {
			sys = spec.System{
				ID:   "sys-verb-" + verb,
				Name: verb + " action",
			}
		}
		sys.Verb = verb
		systems = append(systems, sys)
	}

	if cv.ChaosLevel > 0 {
		tier := chaos.TierFor(cv.ChaosLevel)
		systems = append(systems, spec.System{
			ID:   "sys-chaos",
			Name: "chaos scheduler",
			Params: map[string]float64{
				"frequency_ms": float64(tier.Frequency.Milliseconds()),
				"max_active":   float64(tier.MaxActive),
			},
		})
	}

	return systems
}

// Per-verb rule templates. The effect text carries a visible-feedback marker
// so play stays legible on screen.
var verbRules = map[string]spec.Rule{
	"jump":    {Category: spec.RuleScoring, Trigger: "land a jump on a higher platform", Effect: "+5 score, landing dust particle"},
	"shoot":   {Category: spec.RuleScoring, Trigger: "projectile hits an enemy", Effect: "+10 score, impact flash"},
	"dash":    {Category: spec.RuleScoring, Trigger: "dash through a tight gap", Effect: "+8 score, speed-line particle trail"},
	"collect": {Category: spec.RuleScoring, Trigger: "pick up a collectible", Effect: "+10 score, sparkle burst"},
	"climb":   {Category: spec.RuleScoring, Trigger: "reach a ledge by climbing", Effect: "+5 score, grip sound"},
	"swim":    {Category: spec.RuleScoring, Trigger: "surface with a carried item", Effect: "+8 score, splash particle"},
	"talk":    {Category: spec.RuleScoring, Trigger: "resolve a conversation", Effect: "+12 score, speech glow"},
	"build":   {Category: spec.RuleScoring, Trigger: "complete a structure", Effect: "+15 score, assembly flash"},
}

// Combo rules arise when two specific verbs co-occur; the pair table keeps
// verb interactions emergent instead of hard-coding every combination at the
// call sites. Pairs are checked in a fixed order.
var comboPairs = []struct {
	a, b    string
	id      string
	trigger string
	effect  string
}{
	{"jump", "shoot", "rule-combo-aerial", "shoot while airborne", "aerial bonus: x2 score, muzzle flash"},
	{"jump", "dash", "rule-combo-airdash", "dash at the top of a jump", "air dash: extended reach, afterimage particle"},
	{"dash", "shoot", "rule-combo-driveby", "shoot during a dash", "drive-by bonus: +15 score, tracer glow"},
	{"collect", "dash", "rule-combo-slipstream", "collect three items in one dash", "slipstream: pickup chain x3, sparkle trail"},
	{"climb", "jump", "rule-combo-wallleap", "jump from a climb", "wall leap: extra height, kick-off dust"},
}

// buildRules is fully determined by the choice vector; no draws. Order: base
// collision rules, one scoring rule per verb, combo rules for co-occurring
// pairs, then the progression rule.
func buildRules(cv choices.ChoiceVector) []spec.Rule {
	rules := []spec.Rule{
		{
			ID:       "rule-enemy-contact",
			Category: spec.RuleCollision,
			Trigger:  "protagonist touches an enemy",
			Effect:   "lose 1 health, screen shake, hit flash",
		},
		{
			ID:       "rule-pickup-contact",
			Category: spec.RuleCollision,
			Trigger:  "protagonist touches a collectible",
			Effect:   "collect it, sparkle particle, pickup sound",
		},
	}

	for _, verb := range cv.Verbs {
		rule, ok := verbRules[verb]
		if !ok {
			rule = spec.Rule{
				Category: spec.RuleScoring,
				Trigger:  fmt.Sprintf("use %s effectively", verb),
				Effect:   "+5 score, highlight glow",
			}
		}
		rule.ID = "rule-verb-" + verb
		rule.Verbs = []string{verb}
		rules = append(rules, rule)
	}

	for _, pair := range comboPairs {
		if cv.HasVerb(pair.a) && cv.HasVerb(pair.b) {
			rules = append(rules, spec.Rule{
				ID:       pair.id,
				Category: spec.RuleCombo,
				Trigger:  pair.trigger,
				Effect:   pair.effect,
				Verbs:    []string{pair.a, pair.b},
				Combo:    true,
			})
		}
	}

	rules = append(rules, spec.Rule{
		ID:       "rule-progression",
		Category: spec.RuleProgression,
		Trigger:  "score reaches the stage threshold",
		Effect:   "advance to the next stage, fanfare sound",
	})

	return rules
}

// buildLoops is fully determined by the choice vector; no draws. One
// universal reinforcing loop, one universal balancing loop, then one loop per
// verb tying its use to a tracked quantity.
func buildLoops(cv choices.ChoiceVector) []spec.FeedbackLoop {
	loops := []spec.FeedbackLoop{
		{
			ID:          "loop-momentum",
			Polarity:    "positive",
			Source:      "score",
			Target:      "momentum",
			Description: "scoring builds momentum, which multiplies further scoring",
		},
		{
			ID:          "loop-pressure",
			Polarity:    "negative",
			Source:      "damage_taken",
			Target:      "move_speed",
			Description: "taking damage slows the protagonist until health recovers",
		},
	}

	for _, verb := range cv.Verbs {
		loops = append(loops, spec.FeedbackLoop{
			ID:          "loop-verb-" + verb,
			Polarity:    "positive",
			Source:      verb + "_streak",
			Target:      verb + "_payoff",
			Description: fmt.Sprintf("repeated %s use raises its payoff until the streak breaks", verb),
		})
	}

	return loops
}
