package genres

import (
	"github.com/shopspring/decimal"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// RhythmGenerator builds a note chart: pace sets the BPM, difficulty sets
// density and chord/hold probabilities, the skill/luck ratio sets scroll
// speed, and the world difference biases lane selection.
type RhythmGenerator struct{}

func (g *RhythmGenerator) Genre() choices.Genre {
	return choices.GenreRhythm
}

const rhythmLanes = 4

func bpmFor(p choices.Pace) int {
	switch p {
	case choices.PaceSlow:
		return 84
	case choices.PaceFast:
		return 148
	default:
		return 112
	}
}

type chartShape struct {
	notes     int
	chordProb float64
	holdProb  float64
	maxChord  int
	// gapChoices are beat multiples the cursor may advance by; denser charts
	// favor shorter gaps.
	gapChoices []string
}

func chartFor(d choices.DifficultyStyle) chartShape {
	switch d {
	case choices.DifficultyRelaxed:
		return chartShape{
			notes: 48, chordProb: 0.05, holdProb: 0.15, maxChord: 1,
			gapChoices: []string{"1", "1", "2", "1.5"},
		}
	case choices.DifficultyHardcore:
		return chartShape{
			notes: 96, chordProb: 0.30, holdProb: 0.20, maxChord: 3,
			gapChoices: []string{"0.5", "0.5", "1", "0.25"},
		}
	case choices.DifficultyRollercoaster:
		return chartShape{
			notes: 72, chordProb: 0.20, holdProb: 0.25, maxChord: 2,
			gapChoices: []string{"0.5", "1", "2", "0.25"},
		}
	default: // steady
		return chartShape{
			notes: 64, chordProb: 0.12, holdProb: 0.18, maxChord: 2,
			gapChoices: []string{"0.5", "1", "1", "2"},
		}
	}
}

// scrollFor rewards skill-leaning choices with faster, tighter charts.
func scrollFor(skillLuck float64) float64 {
	return 1.0 + 1.5*skillLuck
}

// laneWeights biases lane selection by world difference: a mirror world
// leans outward-symmetric, a time loop hammers the same lanes, and so on.
func laneWeights(worldKey string) [rhythmLanes]float64 {
	switch worldKey {
	case choices.WorldMirrorWorld:
		return [rhythmLanes]float64{3, 1, 1, 3}
	case choices.WorldTimeLoop:
		return [rhythmLanes]float64{4, 2, 1, 1}
	case choices.WorldFloatingIslands:
		return [rhythmLanes]float64{1, 3, 3, 1}
	case choices.WorldEternalNight:
		return [rhythmLanes]float64{2, 1, 2, 3}
	case choices.WorldMachineUprising:
		return [rhythmLanes]float64{1, 2, 1, 2}
	default:
		return [rhythmLanes]float64{1, 1, 1, 1}
	}
}

func pickLane(r *engine.Rand, weights [rhythmLanes]float64, taken map[int]bool) int {
	total := 0.0
	for lane, w := range weights {
		if !taken[lane] {
			total += w
		}
	}
	roll := r.Float64() * total
	for lane, w := range weights {
		if taken[lane] {
			continue
		}
		roll -= w
		if roll < 0 {
			return lane
		}
	}
	for lane := rhythmLanes - 1; lane > 0; lane-- {
		if !taken[lane] {
			return lane
		}
	}
	return 0
}

// Generate advances a millisecond cursor by a drawn beat-multiple gap per
// step and places one or more notes at each stop. The grid is computed in
// decimal so timestamps never drift with host float behavior. Per step the
// draw order is: gap draw, lane draw, hold draw, then chord draw plus one
// lane draw per extra chord note. No timestamp carries two notes in the same
// lane, and simultaneous notes never exceed the difficulty's chord cap.
func (g *RhythmGenerator) Generate(r *engine.Rand, cv choices.ChoiceVector) *spec.GenreData {
	bpm := bpmFor(cv.Pace)
	shape := chartFor(cv.Difficulty)
	weights := laneWeights(cv.WorldKey)

	beatMs := decimal.NewFromInt(60000).Div(decimal.NewFromInt(int64(bpm)))
	cursor := beatMs.Mul(decimal.RequireFromString("4")) // one lead-in bar

	notes := make([]spec.Note, 0, shape.notes)
	for len(notes) < shape.notes {
		gap := decimal.RequireFromString(shape.gapChoices[r.Intn(len(shape.gapChoices))])
		cursor = cursor.Add(beatMs.Mul(gap))
		timeMs := cursor.IntPart()

		taken := map[int]bool{}
		lane := pickLane(r, weights, taken)
		taken[lane] = true

		note := spec.Note{TimeMs: timeMs, Lane: lane}
		if r.Chance(shape.holdProb) {
			note.Hold = true
			note.DurationMs = beatMs.Mul(decimal.RequireFromString("2")).IntPart()
		}
		notes = append(notes, note)

		if shape.maxChord > 1 && r.Chance(shape.chordProb) {
			extra := 1 + r.Intn(shape.maxChord-1)
			for i := 0; i < extra && len(notes) < shape.notes; i++ {
				chordLane := pickLane(r, weights, taken)
				taken[chordLane] = true
				notes = append(notes, spec.Note{TimeMs: timeMs, Lane: chordLane})
			}
		}
	}

	return &spec.GenreData{
		Rhythm: &spec.RhythmData{
			BPM:         bpm,
			Lanes:       rhythmLanes,
			ScrollSpeed: scrollFor(cv.SkillLuck),
			MaxChord:    shape.maxChord,
			Notes:       notes,
		},
	}
}
