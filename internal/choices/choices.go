package choices

import "strings"

// Genre identifies one of the six supported game archetypes. Each genre has
// its own content generator and output shape.
type Genre string

const (
	GenreAction    Genre = "action"
	GenreNarrative Genre = "narrative"
	GenreCard      Genre = "card"
	GenreBoard     Genre = "board"
	GenrePuzzle    Genre = "puzzle"
	GenreRhythm    Genre = "rhythm"
)

// Genres lists every supported genre in canonical order.
var Genres = []Genre{
	GenreAction, GenreNarrative, GenreCard, GenreBoard, GenrePuzzle, GenreRhythm,
}

// GravityMode selects the world's vertical physics behavior.
type GravityMode string

const (
	GravityNormal   GravityMode = "normal"
	GravityLow      GravityMode = "low"
	GravityHeavy    GravityMode = "heavy"
	GravityZero     GravityMode = "zero"
	GravityInverted GravityMode = "inverted"
)

// BoundaryMode selects what happens at the world edge.
type BoundaryMode string

const (
	BoundaryWalls  BoundaryMode = "walls"
	BoundaryWrap   BoundaryMode = "wrap"
	BoundaryFall   BoundaryMode = "fall"
	BoundaryBounce BoundaryMode = "bounce"
)

// Archetype is the protagonist's character archetype. It biases narrative
// choices, card effect pools, and board piece rosters.
type Archetype string

const (
	ArchetypeExplorer Archetype = "explorer"
	ArchetypeWarrior  Archetype = "warrior"
	ArchetypeTrickster Archetype = "trickster"
	ArchetypeGuardian Archetype = "guardian"
	ArchetypeScholar  Archetype = "scholar"
)

// DifficultyStyle names the shape of the difficulty-over-time curve.
type DifficultyStyle string

const (
	DifficultyRelaxed       DifficultyStyle = "relaxed"
	DifficultySteady        DifficultyStyle = "steady"
	DifficultyHardcore      DifficultyStyle = "hardcore"
	DifficultyRollercoaster DifficultyStyle = "rollercoaster"
)

// Pace controls session tempo: puzzle counts, BPM, curve steepness.
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceMedium Pace = "medium"
	PaceFast   Pace = "fast"
)

// Canonical world-difference template keys. Free text is also accepted in
// ChoiceVector.WorldKey; these keys get dedicated treatment in generators
// and a stable short code in the seed code.
const (
	WorldTimeLoop        = "time-loop"
	WorldMirrorWorld     = "mirror-world"
	WorldFloatingIslands = "floating-islands"
	WorldEternalNight    = "eternal-night"
	WorldDreamLogic      = "dream-logic"
	WorldMachineUprising = "machine-uprising"
)

// WorldKeys lists the canonical world-difference templates.
var WorldKeys = []string{
	WorldTimeLoop, WorldMirrorWorld, WorldFloatingIslands,
	WorldEternalNight, WorldDreamLogic, WorldMachineUprising,
}

// ChoiceVector is the canonical structured preference input to generation.
// It is treated as immutable once it enters the pipeline. The verb set is
// never empty at that point; Normalize enforces the invariant.
type ChoiceVector struct {
	Genre          Genre           `json:"genre"`
	VisualStyle    string          `json:"visual_style"`
	Verbs          []string        `json:"verbs"`
	ObjectTypes    []string        `json:"object_types,omitempty"`
	CustomElement  string          `json:"custom_element,omitempty"`
	Gravity        GravityMode     `json:"gravity"`
	Boundary       BoundaryMode    `json:"boundary"`
	SpecialPhysics string          `json:"special_physics,omitempty"`
	CustomPhysics  string          `json:"custom_physics,omitempty"`
	WorldKey       string          `json:"world_key"`
	Archetype      Archetype       `json:"archetype"`
	Difficulty     DifficultyStyle `json:"difficulty"`
	Pace           Pace            `json:"pace"`
	SkillLuck      float64         `json:"skill_luck"`
	ChaosLevel     int             `json:"chaos_level"`
}

// ClampChaos forces a chaos level into [0,100].
func ClampChaos(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// Normalize returns a copy of the vector with every field forced into its
// documented domain: chaos clamped, verbs deduplicated (order preserved) and
// defaulted when empty, enums defaulted when blank, skill/luck clamped to
// [0,1]. The result satisfies the pipeline's input contract.
func (cv ChoiceVector) Normalize() ChoiceVector {
	out := cv

	out.ChaosLevel = ClampChaos(cv.ChaosLevel)

	if out.SkillLuck < 0 {
		out.SkillLuck = 0
	} else if out.SkillLuck > 1 {
		out.SkillLuck = 1
	}

	out.Verbs = dedupeVerbs(cv.Verbs)
	if len(out.Verbs) == 0 {
		out.Verbs = []string{"jump"}
	}

	if !validGenre(out.Genre) {
		out.Genre = GenreAction
	}
	if out.VisualStyle == "" {
		out.VisualStyle = "neon"
	}
	switch out.Gravity {
	case GravityNormal, GravityLow, GravityHeavy, GravityZero, GravityInverted:
	default:
		out.Gravity = GravityNormal
	}
	switch out.Boundary {
	case BoundaryWalls, BoundaryWrap, BoundaryFall, BoundaryBounce:
	default:
		out.Boundary = BoundaryWalls
	}
	switch out.Archetype {
	case ArchetypeExplorer, ArchetypeWarrior, ArchetypeTrickster, ArchetypeGuardian, ArchetypeScholar:
	default:
		out.Archetype = ArchetypeExplorer
	}
	switch out.Difficulty {
	case DifficultyRelaxed, DifficultySteady, DifficultyHardcore, DifficultyRollercoaster:
	default:
		out.Difficulty = DifficultySteady
	}
	switch out.Pace {
	case PaceSlow, PaceMedium, PaceFast:
	default:
		out.Pace = PaceMedium
	}
	if strings.TrimSpace(out.WorldKey) == "" {
		out.WorldKey = WorldFloatingIslands
	} else {
		out.WorldKey = strings.ToLower(strings.TrimSpace(out.WorldKey))
	}

	return out
}

func validGenre(g Genre) bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

func dedupeVerbs(verbs []string) []string {
	seen := make(map[string]bool, len(verbs))
	out := make([]string, 0, len(verbs))
	for _, v := range verbs {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// HasVerb reports whether the vector contains the verb. Vectors are
// normalized to lowercase so the check is a plain comparison.
func (cv ChoiceVector) HasVerb(verb string) bool {
	for _, v := range cv.Verbs {
		if v == verb {
			return true
		}
	}
	return false
}

// CanonicalWorldKey reports whether the world key is one of the canonical
// templates rather than free text.
func (cv ChoiceVector) CanonicalWorldKey() bool {
	for _, k := range WorldKeys {
		if cv.WorldKey == k {
			return true
		}
	}
	return false
}
