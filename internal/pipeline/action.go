package pipeline

import (
	"fmt"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// Horizontal gaps stay within reach of a standard jump and vertical deltas
// within climb range, so the layout is traversable without checking it after
// the fact.
const (
	gapMin = 90
	gapMax = 170

	platformWidthMin = 96
	platformWidthMax = 192

	riseMax = 70

	platformYMin = 120 // headroom below the ceiling
	platformYMax = 640 // clearance above the floor
)

type actionShape struct {
	platforms   int
	enemyStride int // every Nth platform carries an enemy
}

func actionFor(d choices.DifficultyStyle) actionShape {
	switch d {
	case choices.DifficultyRelaxed:
		return actionShape{platforms: 10, enemyStride: 4}
	case choices.DifficultyHardcore:
		return actionShape{platforms: 14, enemyStride: 2}
	default:
		return actionShape{platforms: 12, enemyStride: 3}
	}
}

// buildActionEntities lays platforms left to right by incremental placement:
// each platform sits one bounded gap past the previous one, one bounded rise
// or drop away. Platforms are assigned an enemy or a collectible by position
// alone, so the draw sequence per platform is fixed: width, gap, rise, then
// one stat draw for its occupant. The protagonist leads the list and a goal
// marker ends it.
func buildActionEntities(r *engine.Rand, cv choices.ChoiceVector, world spec.WorldConfig, protagonist spec.Entity) []spec.Entity {
	shape := actionFor(cv.Difficulty)

	entities := make([]spec.Entity, 0, 2*shape.platforms+2)
	protagonist.Y = float64(platformYMax - protagonist.Height)
	entities = append(entities, protagonist)

	x := protagonist.X + 80
	y := float64(platformYMax - 40)
	for i := 0; i < shape.platforms; i++ {
		width := r.Between(platformWidthMin, platformWidthMax)
		gap := r.Between(gapMin, gapMax)
		rise := r.Between(-riseMax, riseMax)

		y += rise
		if y < platformYMin {
			y = platformYMin
		}
		if y > platformYMax {
			y = platformYMax
		}

		platform := spec.Entity{
			ID:     fmt.Sprintf("platform-%02d", i+1),
			Kind:   "platform",
			X:      x,
			Y:      y,
			Width:  width,
			Height: 16,
		}
		entities = append(entities, platform)

		// Occupant: enemies on stride positions, collectibles elsewhere.
		// Both cost exactly one draw.
		if (i+1)%shape.enemyStride == 0 {
			entities = append(entities, spec.Entity{
				ID:     fmt.Sprintf("enemy-%02d", i+1),
				Kind:   "enemy",
				X:      x + width/2 - 14,
				Y:      y - 28,
				Width:  28,
				Height: 28,
				Traits: map[string]float64{"patrol_speed": r.Between(40, 90)},
			})
		} else {
			entities = append(entities, spec.Entity{
				ID:     fmt.Sprintf("collectible-%02d", i+1),
				Kind:   "collectible",
				X:      x + width/2 - 8,
				Y:      y - 48,
				Width:  16,
				Height: 16,
				Traits: map[string]float64{"value": float64(r.IntBetween(1, 3))},
			})
		}

		x += width + gap
	}

	entities = append(entities, spec.Entity{
		ID:     "goal",
		Kind:   "goal",
		X:      x,
		Y:      y - 64,
		Width:  32,
		Height: 64,
	})

	return entities
}
