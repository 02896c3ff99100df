// Package genres holds the genre-specific content generators. Each generator
// consumes the run's random stream in a fixed, documented call order for a
// given code path: conditional branching that changes which draws occur for
// the same inputs is a reproducibility defect.
package genres

import (
	"sort"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// Generator produces the structured data for one genre. The action genre is
// not represented here; it synthesizes a placed entity list in the pipeline
// instead of structured genre data.
type Generator interface {
	// Genre returns the generator's identifier.
	Genre() choices.Genre

	// Generate consumes the owned random stream and returns the genre data
	// with exactly one union field populated. Output must be self-consistent
	// under the genre's own rules.
	Generate(r *engine.Rand, cv choices.ChoiceVector) *spec.GenreData
}

var registry = make(map[choices.Genre]Generator)

// Register adds a generator to the registry.
func Register(g Generator) {
	registry[g.Genre()] = g
}

// Get retrieves a generator by genre.
func Get(genre choices.Genre) (Generator, bool) {
	g, ok := registry[genre]
	return g, ok
}

// List returns the registered genres in stable order.
func List() []choices.Genre {
	out := make([]choices.Genre, 0, len(registry))
	for g := range registry {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func init() {
	Register(&NarrativeGenerator{})
	Register(&CardGenerator{})
	Register(&BoardGenerator{})
	Register(&PuzzleGenerator{})
	Register(&RhythmGenerator{})
}
