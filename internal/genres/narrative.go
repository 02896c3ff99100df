package genres

import (
	"fmt"
	"hash/fnv"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// Scenario templates for the narrative genre.
const (
	TemplateDetective   = "detective"
	TemplateEscapeRoom  = "escape-room"
	TemplateTimeParadox = "time-paradox"
	TemplateIdentity    = "identity"
)

// NarrativeGenerator builds a scenario-driven scene graph with a clue chain.
type NarrativeGenerator struct{}

func (g *NarrativeGenerator) Genre() choices.Genre {
	return choices.GenreNarrative
}

// templateFor maps the world-difference field onto a scenario template.
// Selection is deterministic from the key, never a draw: the same world
// difference always tells the same kind of story.
func templateFor(worldKey string) string {
	switch worldKey {
	case choices.WorldTimeLoop, choices.WorldDreamLogic:
		return TemplateTimeParadox
	case choices.WorldMirrorWorld:
		return TemplateIdentity
	case choices.WorldEternalNight, choices.WorldMachineUprising:
		return TemplateDetective
	case choices.WorldFloatingIslands:
		return TemplateEscapeRoom
	}
	h := fnv.New32a()
	h.Write([]byte(worldKey))
	templates := []string{TemplateDetective, TemplateEscapeRoom, TemplateTimeParadox, TemplateIdentity}
	return templates[h.Sum32()%uint32(len(templates))]
}

// Cast pools. Slot names double as keys in NarrativeData.Cast.
var castPools = map[string]map[string][]string{
	TemplateDetective: {
		"victim":  {"the archivist", "the night porter", "the cartographer", "the broadcaster"},
		"setting": {"the flooded library", "the funicular station", "the observatory", "the printing floor"},
		"trick":   {"a clock wound backwards", "a borrowed coat", "a mirrored corridor", "a forged timetable"},
		"motive":  {"an unpaid debt", "a stolen manuscript", "an old humiliation", "a secret sibling"},
		"suspect": {"the understudy", "the locksmith", "the retired inspector", "the twin"},
	},
	TemplateEscapeRoom: {
		"chamber":  {"the brass vault", "the inverted greenhouse", "the silent theater", "the tide room"},
		"lock":     {"a four-tone chime", "a weighted floor", "a star chart", "a pressure maze"},
		"builder":  {"a vanished horologist", "a paranoid curator", "an exiled engineer", "a rival escapist"},
		"deadline": {"the rising water", "the sealing doors", "the failing air", "the returning owner"},
	},
	TemplateTimeParadox: {
		"anchor":  {"a pocket watch", "a photograph", "a train ticket", "a voicemail"},
		"moment":  {"the bridge collapse", "the blackout", "the last broadcast", "the first loop"},
		"cost":    {"a forgotten name", "a borrowed year", "someone else's memory", "tomorrow"},
		"witness": {"your older self", "the station clerk", "a child who remembers", "the loop itself"},
	},
	TemplateIdentity: {
		"mask":   {"a borrowed face", "a duplicated badge", "an inherited diary", "a mirrored twin"},
		"doubt":  {"a scar that moved", "a language you never learned", "a locked room key", "a stranger's dog that knows you"},
		"seeker": {"the registrar", "an old friend", "the other you", "a private auditor"},
		"truth":  {"a swapped childhood", "a staged accident", "a willing trade", "an experiment"},
	},
}

// essentialBeats is the number of clue-bearing scenes; the clue chain has
// exactly this many entries and each scene references one, in order.
const essentialBeats = 4

var optionalBeatTexts = []string{
	"A detour that explains nothing and unsettles everything.",
	"Someone lies to you, badly, on purpose.",
	"You find the previous investigator's notes. They stopped mid-sentence.",
	"A quiet scene. The world difference hums in the background.",
	"You are followed for three streets and then abruptly not.",
	"An object from the cast's past surfaces where it should not be.",
}

// keptOptionalBeats converts pace into how many non-essential scenes survive.
func keptOptionalBeats(pace choices.Pace) int {
	switch pace {
	case choices.PaceSlow:
		return 4
	case choices.PaceFast:
		return 1
	default:
		return 2
	}
}

// Generate builds the scenario. Draw order: one draw per cast slot (slots
// visited in a fixed per-template order), one per clue, one per kept
// optional beat, one per essential beat's flavor line.
func (g *NarrativeGenerator) Generate(r *engine.Rand, cv choices.ChoiceVector) *spec.GenreData {
	template := templateFor(cv.WorldKey)
	pool := castPools[template]

	cast := make(map[string]string, len(pool))
	for _, slot := range castSlotOrder(template) {
		cast[slot] = r.Pick(pool[slot])
	}

	clues := buildClueChain(r, template, cast)
	graph := g.buildSceneGraph(r, cv, template, cast, clues)

	return &spec.GenreData{
		Narrative: &spec.NarrativeData{
			Template: template,
			Cast:     cast,
			Clues:    clues,
			Graph:    graph,
		},
	}
}

// castSlotOrder fixes the draw order per template; map iteration order would
// break reproducibility.
func castSlotOrder(template string) []string {
	switch template {
	case TemplateDetective:
		return []string{"victim", "setting", "trick", "motive", "suspect"}
	case TemplateEscapeRoom:
		return []string{"chamber", "lock", "builder", "deadline"}
	case TemplateTimeParadox:
		return []string{"anchor", "moment", "cost", "witness"}
	default:
		return []string{"mask", "doubt", "seeker", "truth"}
	}
}

var clueShapes = []string{
	"%s does not fit the timeline.",
	"%s was moved after the fact.",
	"%s points at someone who could not have been there.",
	"%s only makes sense read backwards.",
	"%s is a copy. The original is missing.",
}

func buildClueChain(r *engine.Rand, template string, cast map[string]string) []string {
	slots := castSlotOrder(template)
	clues := make([]string, essentialBeats)
	for i := range clues {
		shape := clueShapes[r.Intn(len(clueShapes))]
		subject := cast[slots[i%len(slots)]]
		clues[i] = fmt.Sprintf(shape, subject)
	}
	return clues
}

var essentialFlavors = []string{
	"The scene is wrong in a way you can almost name.",
	"Everything here was arranged for an audience of one.",
	"You are meant to find this. That is what worries you.",
	"The air changes when you step inside.",
}

func (g *NarrativeGenerator) buildSceneGraph(
	r *engine.Rand,
	cv choices.ChoiceVector,
	template string,
	cast map[string]string,
	clues []string,
) spec.NarrativeGraph {
	showHints := cv.Difficulty == choices.DifficultyRelaxed || cv.Difficulty == choices.DifficultySteady

	var nodes []spec.NarrativeNode
	start := spec.NarrativeNode{
		ID:        "s-open",
		Text:      openingLine(template, cast),
		Mood:      "uneasy",
		ClueIndex: -1,
	}
	nodes = append(nodes, start)

	// Essential clue scenes: the chain is fully referenced, in order, by the
	// time the graph ends.
	for i := 0; i < essentialBeats; i++ {
		id := fmt.Sprintf("s-clue-%d", i+1)
		node := spec.NarrativeNode{
			ID:        id,
			Text:      essentialFlavors[r.Intn(len(essentialFlavors))],
			Mood:      "focused",
			ClueIndex: i,
		}

		link := &nodes[len(nodes)-1]
		link.Choices = append(link.Choices, spec.NarrativeChoice{
			Text:   "Follow the thread",
			Target: id,
			Effect: fmt.Sprintf("clue:%d", i),
		})
		if showHints {
			link.Choices = append(link.Choices, spec.NarrativeChoice{
				Text:   "Ask for a hint",
				Target: id,
				Effect: "hint",
			})
		} else {
			// Hardcore and rollercoaster runs gate hints behind earned clues.
			link.Choices = append(link.Choices, spec.NarrativeChoice{
				Text:      "Ask for a hint",
				Target:    id,
				Condition: fmt.Sprintf("clues >= %d", i+1),
				Effect:    "hint",
			})
		}

		nodes = append(nodes, node)
	}

	// Optional beats, thinned by pace. The kept count is fixed before any
	// draw so the draw sequence is a pure function of the inputs.
	kept := keptOptionalBeats(cv.Pace)
	for i := 0; i < kept; i++ {
		id := fmt.Sprintf("s-side-%d", i+1)
		node := spec.NarrativeNode{
			ID:        id,
			Text:      optionalBeatTexts[r.Intn(len(optionalBeatTexts))],
			Mood:      "drifting",
			ClueIndex: -1,
		}

		link := &nodes[len(nodes)-1]
		link.Choices = append(link.Choices, spec.NarrativeChoice{
			Text:   "Take the long way",
			Target: id,
		})
		nodes = append(nodes, node)
	}

	// Archetype bonus choice on the first clue scene.
	bonus := archetypeSceneBonus(cv.Archetype)
	if len(nodes) > 1 {
		bonus.Target = nodes[len(nodes)-1].ID
		nodes[1].Choices = append(nodes[1].Choices, bonus)
	}

	ending := spec.NarrativeNode{
		ID:        "s-ending",
		Text:      endingLine(template, cast),
		Mood:      "resolved",
		ClueIndex: -1,
		Ending:    true,
	}
	last := &nodes[len(nodes)-1]
	last.Choices = append(last.Choices, spec.NarrativeChoice{
		Text:      "Name the truth",
		Target:    ending.ID,
		Condition: fmt.Sprintf("clues >= %d", essentialBeats),
		Effect:    "resolve",
	})
	last.Choices = append(last.Choices, spec.NarrativeChoice{
		Text:   "Walk away",
		Target: ending.ID,
		Effect: "abandon",
	})
	nodes = append(nodes, ending)

	return spec.NarrativeGraph{StartID: start.ID, Nodes: nodes}
}

func archetypeSceneBonus(a choices.Archetype) spec.NarrativeChoice {
	switch a {
	case choices.ArchetypeWarrior:
		return spec.NarrativeChoice{Text: "Kick the door instead", Effect: "force", Condition: "momentum >= 1"}
	case choices.ArchetypeTrickster:
		return spec.NarrativeChoice{Text: "Pose as someone expected", Effect: "disguise", Condition: `flags["exposed"] == false`}
	case choices.ArchetypeGuardian:
		return spec.NarrativeChoice{Text: "Secure the exit first", Effect: "protect", Condition: "clues >= 1"}
	case choices.ArchetypeScholar:
		return spec.NarrativeChoice{Text: "Re-read everything before moving", Effect: "study", Condition: "clues >= 2"}
	default:
		return spec.NarrativeChoice{Text: "Check the place no one else would", Effect: "explore", Condition: "momentum >= 0"}
	}
}

func openingLine(template string, cast map[string]string) string {
	switch template {
	case TemplateDetective:
		return fmt.Sprintf("%s was found in %s. Nobody heard anything, which is itself a clue.",
			title(cast["victim"]), cast["setting"])
	case TemplateEscapeRoom:
		return fmt.Sprintf("The door of %s closes behind you. %s has already begun.",
			cast["chamber"], title(cast["deadline"]))
	case TemplateTimeParadox:
		return fmt.Sprintf("You wake holding %s, moments before %s. Again.",
			cast["anchor"], cast["moment"])
	default:
		return fmt.Sprintf("Your papers say you are someone else. %s proves it.",
			title(cast["mask"]))
	}
}

func endingLine(template string, cast map[string]string) string {
	switch template {
	case TemplateDetective:
		return fmt.Sprintf("It was %s, over %s. The trick was %s.",
			cast["suspect"], cast["motive"], cast["trick"])
	case TemplateEscapeRoom:
		return fmt.Sprintf("The last lock was %s all along. %s built it to be solved.",
			cast["lock"], title(cast["builder"]))
	case TemplateTimeParadox:
		return fmt.Sprintf("You let go of %s. The price is %s. The loop lets go of you.",
			cast["anchor"], cast["cost"])
	default:
		return fmt.Sprintf("The truth was %s. %s knew before you did.",
			cast["truth"], title(cast["seeker"]))
	}
}

// title upper-cases the first rune of a cast entry for sentence starts.
func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
