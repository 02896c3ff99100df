package chaos

import "time"

// Permanent marks a mutation that stays active until explicitly replaced or
// the session is torn down.
const Permanent time.Duration = -1

// Mutation is a timed, reversible perturbation. Changes builds the effect
// records for one application; the session applies them in order and reverts
// them in reverse order. Every apply is paired with exactly one revert unless
// the duration is Permanent.
type Mutation struct {
	ID          string
	Name        string
	Description string
	Category    Category
	MinLevel    int
	Duration    time.Duration
	Changes     func() []Change
}

// Permanent reports whether the mutation carries the permanent sentinel.
func (m Mutation) Permanent() bool {
	return m.Duration == Permanent
}

// Catalog returns the fixed mutation registry, ordered by id. The set is
// closed: runtime layers pick from it, they never define their own.
func Catalog() []Mutation {
	return []Mutation{
		{
			ID: "low-gravity", Name: "Low Gravity",
			Description: "Everything floats for a while.",
			Category:    CategoryPhysics, MinLevel: 1, Duration: 12 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: GravityScale, Factor: 0.4}}
			},
		},
		{
			ID: "heavy-gravity", Name: "Heavy Gravity",
			Description: "The world presses down.",
			Category:    CategoryPhysics, MinLevel: 10, Duration: 12 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: GravityScale, Factor: 1.8}}
			},
		},
		{
			ID: "time-dilation", Name: "Time Dilation",
			Description: "Time crawls.",
			Category:    CategoryPhysics, MinLevel: 20, Duration: 8 * time.Second,
			Changes: func() []Change {
				return []Change{&SetNum{Field: TimeScale, To: 0.6}}
			},
		},
		{
			ID: "ice-floor", Name: "Ice Floor",
			Description: "Traction is a memory.",
			Category:    CategoryPhysics, MinLevel: 25, Duration: 10 * time.Second,
			Changes: func() []Change {
				return []Change{&SetNum{Field: Friction, To: 0.2}}
			},
		},
		{
			ID: "time-rush", Name: "Time Rush",
			Description: "Everything runs hot.",
			Category:    CategoryPhysics, MinLevel: 55, Duration: 8 * time.Second,
			Changes: func() []Change {
				return []Change{&SetNum{Field: TimeScale, To: 1.5}}
			},
		},
		{
			ID: "gravity-flip", Name: "Gravity Flip",
			Description: "Down is up.",
			Category:    CategoryPhysics, MinLevel: 75, Duration: 6 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: GravityScale, Factor: -1}}
			},
		},
		{
			ID: "palette-shift", Name: "Palette Shift",
			Description: "The world changes hue until something replaces it.",
			Category:    CategoryVisual, MinLevel: 1, Duration: Permanent,
			Changes: func() []Change {
				return []Change{&SetNum{Field: PaletteShift, To: 0.5}}
			},
		},
		{
			ID: "blackout-pulse", Name: "Blackout Pulse",
			Description: "The lights dim.",
			Category:    CategoryVisual, MinLevel: 15, Duration: 5 * time.Second,
			Changes: func() []Change {
				return []Change{&SetNum{Field: Brightness, To: 0.3}}
			},
		},
		{
			ID: "mirror-view", Name: "Mirror View",
			Description: "The camera flips horizontally.",
			Category:    CategoryVisual, MinLevel: 35, Duration: 9 * time.Second,
			Changes: func() []Change {
				return []Change{&SetFlag{Field: ControlsMirrored, To: true}}
			},
		},
		{
			ID: "enemy-rush", Name: "Enemy Rush",
			Description: "Enemies move faster.",
			Category:    CategoryEntity, MinLevel: 31, Duration: 10 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: EnemySpeed, Factor: 1.6}}
			},
		},
		{
			ID: "shrink-player", Name: "Shrink",
			Description: "You are suddenly small.",
			Category:    CategoryEntity, MinLevel: 40, Duration: 10 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: PlayerScale, Factor: 0.6}}
			},
		},
		{
			ID: "giant-enemies", Name: "Giant Enemies",
			Description: "They grew.",
			Category:    CategoryEntity, MinLevel: 45, Duration: 10 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: EnemyScale, Factor: 1.5}}
			},
		},
		{
			ID: "swarm", Name: "Swarm",
			Description: "Spawns double.",
			Category:    CategoryEntity, MinLevel: 50, Duration: 12 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: SpawnRate, Factor: 2}}
			},
		},
		{
			ID: "score-frenzy", Name: "Score Frenzy",
			Description: "Points are doubled.",
			Category:    CategoryRule, MinLevel: 61, Duration: 15 * time.Second,
			Changes: func() []Change {
				return []Change{&ScaleNum{Field: ScoreMultiplier, Factor: 2}}
			},
		},
		{
			ID: "inverted-controls", Name: "Inverted Controls",
			Description: "Left is right.",
			Category:    CategoryRule, MinLevel: 70, Duration: 7 * time.Second,
			Changes: func() []Change {
				return []Change{&SetFlag{Field: ControlsMirrored, To: true}}
			},
		},
		{
			ID: "rule-inversion", Name: "Rule Inversion",
			Description: "Hazards heal, pickups hurt.",
			Category:    CategoryRule, MinLevel: 80, Duration: 10 * time.Second,
			Changes: func() []Change {
				return []Change{&SetFlag{Field: RulesInverted, To: true}}
			},
		},
		{
			ID: "mood-swing", Name: "Mood Swing",
			Description: "The story turns ominous until replaced.",
			Category:    CategoryNarrative, MinLevel: 91, Duration: Permanent,
			Changes: func() []Change {
				return []Change{&SetText{Field: NarrativeMood, To: "ominous"}}
			},
		},
		{
			ID: "plot-twist", Name: "Plot Twist",
			Description: "Arms a narrative twist the runtime fires at the next beat.",
			Category:    CategoryNarrative, MinLevel: 95, Duration: 20 * time.Second,
			Changes: func() []Change {
				return []Change{&SetFlag{Field: TwistArmed, To: true}}
			},
		},
	}
}

// EligibleIDs returns the ids of every mutation eligible at the level, in
// catalog order. Eligibility requires the tier to allow the category and the
// mutation's MinLevel to be reached; it is monotonic in level within a tier
// band, since raising the level can only satisfy more MinLevel gates.
func EligibleIDs(level int) []string {
	tier := TierFor(level)
	var ids []string
	for _, m := range Catalog() {
		if tier.Allows(m.Category) && m.MinLevel <= level {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
