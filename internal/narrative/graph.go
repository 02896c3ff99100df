// Package narrative builds the branching story graph embedded in every
// generated specification. Graphs are built once and traversed externally;
// choice gating conditions are expr-lang expressions over the runtime's
// story state, compiled here at build time so malformed gates never ship.
package narrative

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// Env is the variable set gating conditions may reference. The runtime layer
// evaluates conditions against a concrete instance of this shape.
type Env struct {
	Clues    int            `expr:"clues"`
	Score    int            `expr:"score"`
	Momentum int            `expr:"momentum"`
	Flags    map[string]bool `expr:"flags"`
}

var worldOpenings = map[string]string{
	choices.WorldTimeLoop:        "The same morning again. You remember all the others.",
	choices.WorldMirrorWorld:     "Everything here is familiar, and everything is backwards.",
	choices.WorldFloatingIslands: "Below the shattered islands there is only sky.",
	choices.WorldEternalNight:    "The sun set years ago and never came back.",
	choices.WorldDreamLogic:      "The rules change when you stop looking at them.",
	choices.WorldMachineUprising: "The machines stopped asking permission last week.",
}

var moodsByStyle = map[string][]string{
	"neon":   {"electric", "restless", "wired"},
	"pastel": {"gentle", "wistful", "calm"},
	"mono":   {"stark", "grim", "severe"},
	"retro":  {"playful", "nostalgic", "bright"},
}

// Archetype-specific bonus choices: each archetype unlocks one extra gated
// option on the second beat.
var archetypeBonus = map[choices.Archetype]spec.NarrativeChoice{
	choices.ArchetypeExplorer: {
		Text: "Scout the area nobody mentions", Condition: "momentum >= 1",
		Effect: "reveal_secret",
	},
	choices.ArchetypeWarrior: {
		Text: "Force the issue head-on", Condition: "score >= 10",
		Effect: "start_fight",
	},
	choices.ArchetypeTrickster: {
		Text: "Talk your way somewhere you shouldn't be", Condition: `flags["suspicious"] == false`,
		Effect: "gain_disguise",
	},
	choices.ArchetypeGuardian: {
		Text: "Put yourself between them and the danger", Condition: "clues >= 1",
		Effect: "earn_trust",
	},
	choices.ArchetypeScholar: {
		Text: "Consult what you wrote down earlier", Condition: "clues >= 2",
		Effect: "cross_reference",
	},
}

// BuildGraph synthesizes the generic narrative graph every genre carries:
// an opening keyed to the world difference, a fixed number of middle beats
// whose choices are informed by the verb set, the archetype bonus choice,
// and a terminal ending node appended last. Draw order is fixed for a given
// input shape; all branching below depends only on choice fields, never on
// draw results, so replays stay byte-identical.
func BuildGraph(r *engine.Rand, cv choices.ChoiceVector) spec.NarrativeGraph {
	moods := moodsByStyle[cv.VisualStyle]
	if moods == nil {
		moods = []string{"curious", "tense", "quiet"}
	}

	opening, ok := worldOpenings[cv.WorldKey]
	if !ok {
		opening = fmt.Sprintf("This world has one difference: %s.", cv.WorldKey)
	}

	beats := 2
	if cv.Pace == choices.PaceSlow {
		beats = 3
	}

	var nodes []spec.NarrativeNode

	start := spec.NarrativeNode{
		ID:        "n-start",
		Text:      opening,
		Mood:      moods[r.Intn(len(moods))],
		ClueIndex: -1,
	}

	prev := &start
	nodes = append(nodes, start)
	for i := 0; i < beats; i++ {
		id := fmt.Sprintf("n-beat-%d", i+1)
		node := spec.NarrativeNode{
			ID:        id,
			Text:      beatText(r, cv, i),
			Mood:      moods[r.Intn(len(moods))],
			ClueIndex: -1,
		}

		// Link the previous node forward: one choice per beat plus one
		// verb-flavored alternative.
		link := &nodes[len(nodes)-1]
		link.Choices = append(link.Choices, spec.NarrativeChoice{
			Text:   "Press on",
			Target: id,
		})
		verb := cv.Verbs[i%len(cv.Verbs)]
		link.Choices = append(link.Choices, spec.NarrativeChoice{
			Text:      fmt.Sprintf("Find a way to %s through", verb),
			Target:    id,
			Condition: "momentum >= 0",
			Effect:    "verb:" + verb,
		})

		nodes = append(nodes, node)
		prev = &nodes[len(nodes)-1]
	}

	// Archetype bonus choice on the second node.
	if bonus, ok := archetypeBonus[cv.Archetype]; ok && len(nodes) > 1 {
		bonus.Target = nodes[len(nodes)-1].ID
		nodes[1].Choices = append(nodes[1].Choices, bonus)
	}

	// Ending node is always appended last and flagged terminal.
	ending := spec.NarrativeNode{
		ID:        "n-ending",
		Text:      endingText(r, cv),
		Mood:      moods[r.Intn(len(moods))],
		ClueIndex: -1,
		Ending:    true,
	}
	prev.Choices = append(prev.Choices, spec.NarrativeChoice{
		Text:   "See how it ends",
		Target: ending.ID,
	})
	nodes = append(nodes, ending)

	return spec.NarrativeGraph{StartID: start.ID, Nodes: nodes}
}

var beatTemplates = []string{
	"Something %s blocks the way forward.",
	"A stranger offers help, for a price that is never named.",
	"The %s you carried starts behaving strangely.",
	"You find a place the world difference has not touched yet.",
	"Someone has been here before you, and recently.",
}

func beatText(r *engine.Rand, cv choices.ChoiceVector, beat int) string {
	tmpl := beatTemplates[r.Intn(len(beatTemplates))]
	filler := "unfamiliar"
	if len(cv.ObjectTypes) > 0 {
		filler = cv.ObjectTypes[beat%len(cv.ObjectTypes)]
	}
	if cv.CustomElement != "" && beat == 0 {
		filler = cv.CustomElement
	}
	return sprintfIfNeeded(tmpl, filler)
}

var endingTemplates = []string{
	"The difference was never the world's. It was yours.",
	"It does not go back to normal. It goes forward to something new.",
	"You leave a map for whoever comes next.",
}

func endingText(r *engine.Rand, cv choices.ChoiceVector) string {
	return endingTemplates[r.Intn(len(endingTemplates))]
}

// sprintfIfNeeded only formats templates that declare a verb slot, so
// template authors can mix plain and parameterized strings freely.
func sprintfIfNeeded(tmpl, arg string) string {
	for i := 0; i+1 < len(tmpl); i++ {
		if tmpl[i] == '%' && tmpl[i+1] == 's' {
			return fmt.Sprintf(tmpl, arg)
		}
	}
	return tmpl
}

// CompileConditions compiles every gating condition in the graph against the
// Env shape and returns the first failure. Generation treats a failure as a
// generator defect, not user error.
func CompileConditions(g spec.NarrativeGraph) error {
	for _, n := range g.Nodes {
		for _, c := range n.Choices {
			if c.Condition == "" {
				continue
			}
			_, err := expr.Compile(c.Condition, expr.Env(Env{}), expr.AsBool())
			if err != nil {
				return fmt.Errorf("node %s choice %q: compile condition: %w", n.ID, c.Text, err)
			}
		}
	}
	return nil
}

// Validate checks structural invariants: the start node exists, every choice
// targets an existing node, and at least one terminal ending node (no
// outgoing choices) is present.
func Validate(g spec.NarrativeGraph) error {
	if g.Node(g.StartID) == nil {
		return fmt.Errorf("start node %q missing", g.StartID)
	}

	hasEnding := false
	for _, n := range g.Nodes {
		if n.Ending && len(n.Choices) == 0 {
			hasEnding = true
		}
		for _, c := range n.Choices {
			if g.Node(c.Target) == nil {
				return fmt.Errorf("node %s choice %q targets missing node %q", n.ID, c.Text, c.Target)
			}
		}
	}
	if !hasEnding {
		return fmt.Errorf("graph has no terminal ending node")
	}
	return nil
}
