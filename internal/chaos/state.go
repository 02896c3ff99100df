package chaos

// State is the live session state mutations perturb. It is explicit and
// strongly typed: mutations record field-level diffs against it instead of
// probing a bag for sentinel backup keys, and revert replays the inverse of
// the recorded diff. One State is exclusively owned by one Session; it is
// never shared across sessions.
type State struct {
	GravityScale    float64
	TimeScale       float64
	Friction        float64
	PlayerSpeed     float64
	PlayerScale     float64
	EnemySpeed      float64
	EnemyScale      float64
	SpawnRate       float64
	ScoreMultiplier float64
	PaletteShift    float64
	Brightness      float64
	ControlsMirrored bool
	RulesInverted    bool
	NarrativeMood    string
	TwistArmed       bool
}

// NewState returns the neutral baseline every session starts from.
func NewState() *State {
	return &State{
		GravityScale:    1,
		TimeScale:       1,
		Friction:        1,
		PlayerSpeed:     1,
		PlayerScale:     1,
		EnemySpeed:      1,
		EnemyScale:      1,
		SpawnRate:       1,
		ScoreMultiplier: 1,
		Brightness:      1,
		NarrativeMood:   "neutral",
	}
}

// NumField identifies a numeric state field.
type NumField int

const (
	GravityScale NumField = iota
	TimeScale
	Friction
	PlayerSpeed
	PlayerScale
	EnemySpeed
	EnemyScale
	SpawnRate
	ScoreMultiplier
	PaletteShift
	Brightness
)

// FlagField identifies a boolean state field.
type FlagField int

const (
	ControlsMirrored FlagField = iota
	RulesInverted
	TwistArmed
)

// TextField identifies a string state field.
type TextField int

const (
	NarrativeMood TextField = iota
)

func (s *State) num(f NumField) *float64 {
	switch f {
	case GravityScale:
		return &s.GravityScale
	case TimeScale:
		return &s.TimeScale
	case Friction:
		return &s.Friction
	case PlayerSpeed:
		return &s.PlayerSpeed
	case PlayerScale:
		return &s.PlayerScale
	case EnemySpeed:
		return &s.EnemySpeed
	case EnemyScale:
		return &s.EnemyScale
	case SpawnRate:
		return &s.SpawnRate
	case ScoreMultiplier:
		return &s.ScoreMultiplier
	case PaletteShift:
		return &s.PaletteShift
	case Brightness:
		return &s.Brightness
	}
	panic("chaos: unknown numeric field")
}

func (s *State) flag(f FlagField) *bool {
	switch f {
	case ControlsMirrored:
		return &s.ControlsMirrored
	case RulesInverted:
		return &s.RulesInverted
	case TwistArmed:
		return &s.TwistArmed
	}
	panic("chaos: unknown flag field")
}

func (s *State) text(f TextField) *string {
	switch f {
	case NarrativeMood:
		return &s.NarrativeMood
	}
	panic("chaos: unknown text field")
}

// Change is one effect record in a mutation's diff: applying it captures the
// previous value, reverting restores exactly that value.
type Change interface {
	Apply(*State)
	Revert(*State)
}

// SetNum sets a numeric field to a fixed value.
type SetNum struct {
	Field NumField
	To    float64
	from  float64
}

func (c *SetNum) Apply(s *State) {
	p := s.num(c.Field)
	c.from = *p
	*p = c.To
}

func (c *SetNum) Revert(s *State) {
	*s.num(c.Field) = c.from
}

// ScaleNum multiplies a numeric field, so stacked mutations compose.
type ScaleNum struct {
	Field  NumField
	Factor float64
	from   float64
}

func (c *ScaleNum) Apply(s *State) {
	p := s.num(c.Field)
	c.from = *p
	*p = c.from * c.Factor
}

func (c *ScaleNum) Revert(s *State) {
	*s.num(c.Field) = c.from
}

// SetFlag sets a boolean field.
type SetFlag struct {
	Field FlagField
	To    bool
	from  bool
}

func (c *SetFlag) Apply(s *State) {
	p := s.flag(c.Field)
	c.from = *p
	*p = c.To
}

func (c *SetFlag) Revert(s *State) {
	*s.flag(c.Field) = c.from
}

// SetText sets a string field.
type SetText struct {
	Field TextField
	To    string
	from  string
}

func (c *SetText) Apply(s *State) {
	p := s.text(c.Field)
	c.from = *p
	*p = c.To
}

func (c *SetText) Revert(s *State) {
	*s.text(c.Field) = c.from
}
