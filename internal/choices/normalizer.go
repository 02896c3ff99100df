package choices

import (
	"strconv"
	"strings"
)

// ScenarioAnswers is the raw output of the scenario-style questionnaire the
// presentation layer runs: one free-form answer token per question id.
type ScenarioAnswers map[string]string

// Question ids the normalizer understands. Unknown ids are ignored so the
// questionnaire can grow without breaking older clients.
const (
	QuestionWorld   = "world"   // what makes this world different
	QuestionRole    = "role"    // who are you in it
	QuestionPowers  = "powers"  // comma-separated verbs
	QuestionObjects = "objects" // comma-separated object types
	QuestionMood    = "mood"    // visual style
	QuestionGround  = "ground"  // gravity feel
	QuestionEdge    = "edge"    // world edge behavior
	QuestionShape   = "shape"   // genre
	QuestionTempo   = "tempo"   // pace
	QuestionGrind   = "grind"   // difficulty style
	QuestionFate    = "fate"    // skill vs luck, 0..100 (luck..skill)
	QuestionWild    = "wild"    // chaos level, 0..100
	QuestionSpark   = "spark"   // custom element free text
	QuestionBend    = "bend"    // custom physics free text
)

// FromScenario converts questionnaire answers into a normalized ChoiceVector.
// This is the "DNA mapper": every answer is mapped onto the canonical domain
// and the result always satisfies the pipeline contract (non-empty verbs,
// clamped chaos), even for an empty answer set.
func FromScenario(answers ScenarioAnswers) ChoiceVector {
	cv := ChoiceVector{
		Genre:          Genre(token(answers, QuestionShape)),
		VisualStyle:    mood(token(answers, QuestionMood)),
		Verbs:          splitList(answers[QuestionPowers]),
		ObjectTypes:    splitList(answers[QuestionObjects]),
		CustomElement:  strings.TrimSpace(answers[QuestionSpark]),
		Gravity:        gravityFor(token(answers, QuestionGround)),
		Boundary:       boundaryFor(token(answers, QuestionEdge)),
		CustomPhysics:  strings.TrimSpace(answers[QuestionBend]),
		WorldKey:       token(answers, QuestionWorld),
		Archetype:      archetypeFor(token(answers, QuestionRole)),
		Difficulty:     DifficultyStyle(token(answers, QuestionGrind)),
		Pace:           Pace(token(answers, QuestionTempo)),
		SkillLuck:      ratio(answers[QuestionFate]),
		ChaosLevel:     intAnswer(answers[QuestionWild]),
	}
	return cv.Normalize()
}

func token(answers ScenarioAnswers, id string) string {
	return strings.ToLower(strings.TrimSpace(answers[id]))
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func intAnswer(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ratio maps a 0..100 luck-to-skill answer onto [0,1]. Missing answers land
// in the middle rather than at an extreme.
func ratio(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0.5
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0.5
	}
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return float64(n) / 100
}

func mood(answer string) string {
	switch answer {
	case "electric", "neon", "night-city":
		return "neon"
	case "soft", "gentle", "pastel":
		return "pastel"
	case "stark", "mono", "ink":
		return "mono"
	case "old-school", "retro", "arcade":
		return "retro"
	case "":
		return ""
	default:
		return answer
	}
}

func gravityFor(answer string) GravityMode {
	switch answer {
	case "floaty", "moon", "light":
		return GravityLow
	case "crushing", "heavy", "dense":
		return GravityHeavy
	case "weightless", "drift", "space":
		return GravityZero
	case "upside-down", "ceiling", "inverted":
		return GravityInverted
	default:
		return GravityMode(answer)
	}
}

func boundaryFor(answer string) BoundaryMode {
	switch answer {
	case "sealed", "box", "walls":
		return BoundaryWalls
	case "loop", "wrap", "pacman":
		return BoundaryWrap
	case "void", "abyss", "fall":
		return BoundaryFall
	case "rubber", "bounce", "springs":
		return BoundaryBounce
	default:
		return BoundaryMode(answer)
	}
}

func archetypeFor(answer string) Archetype {
	switch answer {
	case "wanderer", "scout", "explorer":
		return ArchetypeExplorer
	case "fighter", "soldier", "warrior":
		return ArchetypeWarrior
	case "thief", "fox", "trickster":
		return ArchetypeTrickster
	case "protector", "shield", "guardian":
		return ArchetypeGuardian
	case "sage", "librarian", "scholar":
		return ArchetypeScholar
	default:
		return Archetype(answer)
	}
}
