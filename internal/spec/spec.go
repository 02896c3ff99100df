// Package spec defines the GameSpecification document: the complete,
// immutable artifact one generation run produces and the runtime and
// presentation layers consume read-only.
package spec

import "github.com/forgelab/gamegen-go/internal/choices"

// GameSpecification is the output of one pipeline run. Exactly one of
// Entities (action genre) or GenreData (the other five genres) is populated
// beyond the protagonist record.
type GameSpecification struct {
	ID          string          `json:"id"`
	SeedCode    string          `json:"seed_code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Genre       choices.Genre   `json:"genre"`
	VisualStyle string          `json:"visual_style"`
	Verbs       []string        `json:"verbs"`
	World       WorldConfig     `json:"world"`
	Entities    []Entity        `json:"entities,omitempty"`
	GenreData   *GenreData      `json:"genre_data,omitempty"`
	Systems     []System        `json:"systems"`
	Rules       []Rule          `json:"rules"`
	Loops       []FeedbackLoop  `json:"feedback_loops"`
	Narrative   NarrativeGraph  `json:"narrative"`
	Difficulty  DifficultyConfig `json:"difficulty"`
	Chaos       ChaosConfig     `json:"chaos"`
	Seed        uint32          `json:"seed"`
}

// WorldConfig describes the playfield the runtime layer instantiates.
type WorldConfig struct {
	Width          int                  `json:"width"`
	Height         int                  `json:"height"`
	Gravity        choices.GravityMode  `json:"gravity"`
	Boundary       choices.BoundaryMode `json:"boundary"`
	SpecialPhysics string               `json:"special_physics,omitempty"`
	CustomPhysics  string               `json:"custom_physics,omitempty"`
	Palette        []string             `json:"palette"`
	Background     string               `json:"background"`
}

// Entity is a placed world object for the action genre (and the protagonist
// record for every genre).
type Entity struct {
	ID     string             `json:"id"`
	Kind   string             `json:"kind"` // protagonist, platform, enemy, collectible
	X      float64            `json:"x"`
	Y      float64            `json:"y"`
	Width  float64            `json:"width"`
	Height float64            `json:"height"`
	Traits map[string]float64 `json:"traits,omitempty"`
	Tags   []string           `json:"tags,omitempty"`
}

// System is a runtime subsystem the rendering layer must drive each frame.
type System struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Verb   string             `json:"verb,omitempty"` // set for verb-conditional systems
	Params map[string]float64 `json:"params,omitempty"`
}

// Rule categories. The validators key off these.
const (
	RuleCollision   = "collision"
	RuleScoring     = "scoring"
	RuleProgression = "progression"
	RuleFeedback    = "feedback"
	RuleCombo       = "combo"
)

// Rule binds a trigger to an effect. Combo rules arise when two specific
// verbs co-occur, keeping verb interactions emergent rather than hard-coded
// per combination.
type Rule struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Trigger     string   `json:"trigger"`
	Effect      string   `json:"effect"`
	Verbs       []string `json:"verbs,omitempty"`
	Combo       bool     `json:"combo,omitempty"`
	Description string   `json:"description,omitempty"`
}

// FeedbackLoop is a reinforcing or balancing relationship between two
// quantities the runtime tracks.
type FeedbackLoop struct {
	ID          string `json:"id"`
	Polarity    string `json:"polarity"` // positive or negative
	Source      string `json:"source"`
	Target      string `json:"target"`
	Description string `json:"description"`
}

// NarrativeGraph is a node set with one designated start and at least one
// terminal node flagged as an ending. Built once, traversed externally.
type NarrativeGraph struct {
	StartID string          `json:"start_id"`
	Nodes   []NarrativeNode `json:"nodes"`
}

// NarrativeNode is one story beat. ClueIndex, when >= 0, references an entry
// in the owning generator's clue chain.
type NarrativeNode struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Mood      string            `json:"mood,omitempty"`
	Choices   []NarrativeChoice `json:"choices,omitempty"`
	ClueIndex int               `json:"clue_index"` // -1 when the node carries no clue
	Ending    bool              `json:"ending,omitempty"`
}

// NarrativeChoice is an outgoing edge. Condition is an expr-lang expression
// over the runtime's story state; empty means always available.
type NarrativeChoice struct {
	Text      string `json:"text"`
	Target    string `json:"target"`
	Condition string `json:"condition,omitempty"`
	Effect    string `json:"effect,omitempty"`
}

// Node returns the node with the given id, or nil.
func (g NarrativeGraph) Node(id string) *NarrativeNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Endings returns every terminal node flagged as an ending.
func (g NarrativeGraph) Endings() []NarrativeNode {
	var out []NarrativeNode
	for _, n := range g.Nodes {
		if n.Ending {
			out = append(out, n)
		}
	}
	return out
}

// DifficultyConfig carries the synthesized difficulty-over-time curve.
type DifficultyConfig struct {
	Style choices.DifficultyStyle `json:"style"`
	Pace  choices.Pace            `json:"pace"`
	Curve []float64               `json:"curve"`
}

// ChaosConfig is the stored projection of the chaos tier for the chosen
// level. It is derived, never authored: the chaos engine recomputes the tier
// from Level and must agree with these fields.
type ChaosConfig struct {
	Level       int      `json:"level"`
	FrequencyMs int64    `json:"frequency_ms"` // 0 when disabled
	MaxActive   int      `json:"max_active"`   // -1 means unbounded
	Categories  []string `json:"categories,omitempty"`
	MutationIDs []string `json:"mutation_ids,omitempty"`
}
