// Package chaos schedules and reverses randomized runtime perturbations
// ("mutations") during a live game session, under tiered budget constraints
// keyed purely on the 0-100 chaos level.
package chaos

import "time"

// Category classifies what a mutation perturbs. Higher tiers unlock more
// categories; narrative mutations only exist in the top band.
type Category string

const (
	CategoryPhysics   Category = "physics"
	CategoryVisual    Category = "visual"
	CategoryEntity    Category = "entity"
	CategoryRule      Category = "rule"
	CategoryNarrative Category = "narrative"
)

// Unbounded is the MaxActive sentinel for the 91-100 band.
const Unbounded = -1

// Tier is a contiguous chaos-level band's scheduling budget.
type Tier struct {
	Frequency  time.Duration `json:"frequency"`  // 0 when disabled
	MaxActive  int           `json:"max_active"` // Unbounded (-1) in the top band
	Categories []Category    `json:"categories"`
}

// Unbounded reports whether the tier has no active-mutation cap.
func (t Tier) Unbounded() bool {
	return t.MaxActive == Unbounded
}

// AllowsMore reports whether a tier admits another active mutation on top of
// the given count.
func (t Tier) AllowsMore(active int) bool {
	return t.Unbounded() || active < t.MaxActive
}

// Allows reports whether the tier admits the category.
func (t Tier) Allows(c Category) bool {
	for _, allowed := range t.Categories {
		if allowed == c {
			return true
		}
	}
	return false
}

// TierFor maps a chaos level onto its band. Levels outside [0,100] are
// clamped first. The table (inclusive ranges):
//
//	0      disabled
//	1-30   90s, 1 active,  physics+visual
//	31-60  60s, 2 active,  +entity
//	61-90  30s, 3 active,  +rule
//	91-100 15s, unbounded, +narrative
func TierFor(level int) Tier {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}

	switch {
	case level == 0:
		return Tier{}
	case level <= 30:
		return Tier{
			Frequency:  90 * time.Second,
			MaxActive:  1,
			Categories: []Category{CategoryPhysics, CategoryVisual},
		}
	case level <= 60:
		return Tier{
			Frequency:  60 * time.Second,
			MaxActive:  2,
			Categories: []Category{CategoryPhysics, CategoryVisual, CategoryEntity},
		}
	case level <= 90:
		return Tier{
			Frequency:  30 * time.Second,
			MaxActive:  3,
			Categories: []Category{CategoryPhysics, CategoryVisual, CategoryEntity, CategoryRule},
		}
	default:
		return Tier{
			Frequency: 15 * time.Second,
			MaxActive: Unbounded,
			Categories: []Category{
				CategoryPhysics, CategoryVisual, CategoryEntity,
				CategoryRule, CategoryNarrative,
			},
		}
	}
}
