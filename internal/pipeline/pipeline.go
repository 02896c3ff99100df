// Package pipeline orchestrates one generation run: a normalized choice
// vector in, an immutable specification out. The stage order is a correctness
// invariant: every stage draws from the single owned random stream, so
// reordering stages changes every downstream draw and silently breaks replay.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/forgelab/gamegen-go/internal/chaos"
	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/difficulty"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/genres"
	"github.com/forgelab/gamegen-go/internal/narrative"
	"github.com/forgelab/gamegen-go/internal/spec"
	"github.com/forgelab/gamegen-go/internal/validate"
)

// idNamespace keys the deterministic UUIDv5 derivation for specification IDs.
// Replaying a seed code must reproduce the document byte for byte, ID
// included, so IDs come from the seed code rather than fresh randomness.
var idNamespace = uuid.MustParse("9b1f2a34-7c05-4b8e-a6d1-3e92c40f88aa")

// Result bundles the generated specification with its advisory validator
// report. Findings never block or alter the specification.
type Result struct {
	Spec   *spec.GameSpecification
	Report validate.Report
}

// Generate derives a fresh salted seed for the vector and builds a
// specification. Two calls with identical choices yield different games;
// replay happens only through the seed code.
func Generate(cv choices.ChoiceVector) Result {
	cv = cv.Normalize()
	return build(cv, engine.DeriveSeed(cv))
}

// GenerateWithSeed is the replay path: the realized seed is supplied instead
// of derived, so the output is byte-identical across invocations and process
// restarts.
func GenerateWithSeed(cv choices.ChoiceVector, seed uint32) Result {
	return build(cv.Normalize(), seed)
}

// DefaultSpec is the fallback when a seed code fails to decode: a minimal
// action game built from the zero vector's defaults at seed 0. Deterministic,
// so every fallback looks the same.
func DefaultSpec() *spec.GameSpecification {
	return GenerateWithSeed(choices.ChoiceVector{}, 0).Spec
}

// build runs the stages in their fixed order. Per-stage draw counts are
// documented at each builder; stages not listed there consume no draws.
func build(cv choices.ChoiceVector, seed uint32) Result {
	r := engine.NewRand(seed)

	protagonist := buildProtagonist(cv)
	world := buildWorld(cv)
	name, description := buildTitle(r, cv)

	var entities []spec.Entity
	var genreData *spec.GenreData
	if cv.Genre == choices.GenreAction {
		entities = buildActionEntities(r, cv, world, protagonist)
	} else {
		entities = []spec.Entity{protagonist}
		gen, ok := genres.Get(cv.Genre)
		if ok {
			genreData = gen.Generate(r, cv)
		}
	}

	systems := buildSystems(cv)
	rules := buildRules(cv)
	loops := buildLoops(cv)

	graph := narrative.BuildGraph(r, cv)

	tier := chaos.TierFor(cv.ChaosLevel)
	chaosCfg := spec.ChaosConfig{
		Level:       cv.ChaosLevel,
		FrequencyMs: tier.Frequency.Milliseconds(),
		MaxActive:   tier.MaxActive,
		MutationIDs: chaos.EligibleIDs(cv.ChaosLevel),
	}
	for _, c := range tier.Categories {
		chaosCfg.Categories = append(chaosCfg.Categories, string(c))
	}

	curve := difficulty.GenerateCurve(cv.Difficulty, cv.Pace, curvePoints(cv.Pace))

	seedCode := engine.EncodeSeedCode(cv, seed)

	s := &spec.GameSpecification{
		ID:          uuid.NewSHA1(idNamespace, []byte(seedCode)).String(),
		SeedCode:    seedCode,
		Name:        name,
		Description: description,
		Genre:       cv.Genre,
		VisualStyle: cv.VisualStyle,
		Verbs:       cv.Verbs,
		World:       world,
		Entities:    entities,
		GenreData:   genreData,
		Systems:     systems,
		Rules:       rules,
		Loops:       loops,
		Narrative:   graph,
		Difficulty: spec.DifficultyConfig{
			Style: cv.Difficulty,
			Pace:  cv.Pace,
			Curve: curve,
		},
		Chaos: chaosCfg,
		Seed:  seed,
	}

	return Result{Spec: s, Report: validate.Check(s)}
}

// curvePoints sizes the difficulty curve: slower games get longer arcs.
func curvePoints(p choices.Pace) int {
	switch p {
	case choices.PaceSlow:
		return 12
	case choices.PaceFast:
		return 8
	default:
		return 10
	}
}

// Protagonist trait baselines per archetype. Verbs ride along as tags so the
// runtime can bind controls without re-reading the choice vector.
func buildProtagonist(cv choices.ChoiceVector) spec.Entity {
	traits := map[string]float64{
		"speed":   1.0,
		"agility": 1.0,
		"defense": 1.0,
		"insight": 1.0,
	}
	switch cv.Archetype {
	case choices.ArchetypeWarrior:
		traits["speed"] = 1.1
		traits["defense"] = 1.3
	case choices.ArchetypeGuardian:
		traits["defense"] = 1.5
		traits["speed"] = 0.9
	case choices.ArchetypeTrickster:
		traits["agility"] = 1.4
		traits["defense"] = 0.8
	case choices.ArchetypeScholar:
		traits["insight"] = 1.5
		traits["speed"] = 0.9
	default: // explorer
		traits["speed"] = 1.2
		traits["agility"] = 1.1
	}
	traits["luck"] = 1.0 - cv.SkillLuck // luck-leaning vectors get the bonus

	return spec.Entity{
		ID:     "protagonist",
		Kind:   "protagonist",
		X:      160,
		Y:      0, // grounded by the runtime against the world config
		Width:  32,
		Height: 48,
		Traits: traits,
		Tags:   cv.Verbs,
	}
}

var titleAdjectives = map[string][]string{
	"neon":   {"Neon", "Electric", "Chrome", "Midnight"},
	"pastel": {"Soft", "Drifting", "Paper", "Quiet"},
	"mono":   {"Stark", "Hollow", "Iron", "Silent"},
	"retro":  {"Pixel", "Turbo", "Super", "Arcade"},
}

var titleNouns = map[choices.Genre][]string{
	choices.GenreAction:    {"Runner", "Vault", "Circuit", "Ascent"},
	choices.GenreNarrative: {"Testimony", "Cipher", "Alibi", "Account"},
	choices.GenreCard:      {"Gambit", "Wager", "Hand", "Draw"},
	choices.GenreBoard:     {"Stratagem", "Gridlock", "Vanguard", "March"},
	choices.GenrePuzzle:    {"Riddle", "Lattice", "Knot", "Key"},
	choices.GenreRhythm:    {"Cadence", "Pulse", "Tempo", "Measure"},
}

// buildTitle consumes exactly two draws: one adjective, one noun.
func buildTitle(r *engine.Rand, cv choices.ChoiceVector) (name, description string) {
	adjectives := titleAdjectives[cv.VisualStyle]
	if adjectives == nil {
		adjectives = []string{"Strange", "Lost", "Hidden", "Last"}
	}
	name = fmt.Sprintf("%s %s", r.Pick(adjectives), r.Pick(titleNouns[cv.Genre]))
	description = fmt.Sprintf("A %s %s game set in a world shaped by %s.",
		cv.VisualStyle, cv.Genre, cv.WorldKey)
	return name, description
}
