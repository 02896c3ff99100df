package chaos

import (
	"time"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
)

// Config is the derived scheduling view of a chaos level. It is recomputed
// from the level via the tier function, never stored independently.
type Config struct {
	Level       int           `json:"level"`
	Frequency   time.Duration `json:"frequency"`
	MaxActive   int           `json:"max_active"`
	Categories  []Category    `json:"categories"`
	MutationIDs []string      `json:"mutation_ids"`
}

// Engine selects and schedules mutations for one session. It owns its random
// stream and does not own a clock: the hosting session supplies elapsed time.
type Engine struct {
	level   int
	catalog []Mutation
	rand    *engine.Rand
}

// NewEngine creates an engine for a clamped chaos level, seeded for
// deterministic selection order in replays.
func NewEngine(level int, seed uint32) *Engine {
	return &Engine{
		level:   choices.ClampChaos(level),
		catalog: Catalog(),
		rand:    engine.NewRand(seed),
	}
}

// Level returns the current chaos level.
func (e *Engine) Level() int {
	return e.level
}

// SetLevel changes the chaos level mid-session, clamped to [0,100].
func (e *Engine) SetLevel(level int) {
	e.level = choices.ClampChaos(level)
}

// Config returns the derived scheduling parameters for the current level.
func (e *Engine) Config() Config {
	tier := TierFor(e.level)
	return Config{
		Level:       e.level,
		Frequency:   tier.Frequency,
		MaxActive:   tier.MaxActive,
		Categories:  tier.Categories,
		MutationIDs: EligibleIDs(e.level),
	}
}

// Eligible returns every mutation eligible at the current level.
func (e *Engine) Eligible() []Mutation {
	tier := TierFor(e.level)
	var out []Mutation
	for _, m := range e.catalog {
		if tier.Allows(m.Category) && m.MinLevel <= e.level {
			out = append(out, m)
		}
	}
	return out
}

// SelectNextMutation uniformly picks one eligible mutation that is not
// already active. The second return is false when none remain.
func (e *Engine) SelectNextMutation(activeIDs []string) (Mutation, bool) {
	active := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}

	var candidates []Mutation
	for _, m := range e.Eligible() {
		if !active[m.ID] {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return Mutation{}, false
	}
	return candidates[e.rand.Intn(len(candidates))], true
}

// ShouldTrigger reports whether a new mutation is due: the level is nonzero,
// the tier frequency is finite, and at least one full period has elapsed
// since the last trigger.
func (e *Engine) ShouldTrigger(elapsed, lastTrigger time.Duration) bool {
	if e.level <= 0 {
		return false
	}
	freq := TierFor(e.level).Frequency
	if freq <= 0 {
		return false
	}
	return elapsed-lastTrigger >= freq
}
