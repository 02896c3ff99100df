package spec

// GenreData is a tagged union: exactly one field is non-nil, matching the
// specification's genre. The action genre never populates it.
type GenreData struct {
	Narrative *NarrativeData `json:"narrative,omitempty"`
	Card      *CardData      `json:"card,omitempty"`
	Board     *BoardData     `json:"board,omitempty"`
	Puzzle    *PuzzleData    `json:"puzzle,omitempty"`
	Rhythm    *RhythmData    `json:"rhythm,omitempty"`
}

// NarrativeData is the rich scene graph the narrative genre produces.
// Scenario templates: detective, escape-room, time-paradox, identity.
type NarrativeData struct {
	Template string            `json:"template"`
	Cast     map[string]string `json:"cast"`
	Clues    []string          `json:"clues"`
	Graph    NarrativeGraph    `json:"graph"`
}

// CardData describes a deck duel.
type CardData struct {
	Deck               []Card  `json:"deck"`
	EnemyHP            int     `json:"enemy_hp"`
	StartingMana       int     `json:"starting_mana"`
	HandSize           int     `json:"hand_size"`
	RareThreshold      float64 `json:"rare_threshold"`
	LegendaryThreshold float64 `json:"legendary_threshold"`
}

// Card rarities.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cost   int    `json:"cost"`
	Rarity string `json:"rarity"`
	Effect string `json:"effect"` // damage, heal, buff, draw, shield, curse
	Value  int    `json:"value"`
	Unique bool   `json:"unique,omitempty"`
}

// BoardData describes a tactics match on a terrain grid. Terrain is
// row-major, Terrain[y][x]; the two rows nearest each player's edge are
// always plain.
type BoardData struct {
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Terrain        [][]string `json:"terrain"`
	PlayerPieces   []Piece    `json:"player_pieces"`
	EnemyPieces    []Piece    `json:"enemy_pieces"`
	StatMultiplier float64    `json:"stat_multiplier"`
}

type Piece struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	HP     int    `json:"hp"`
	Attack int    `json:"attack"`
	Move   int    `json:"move"`
}

// PuzzleData is an ordered set of solvable puzzle instances.
type PuzzleData struct {
	Puzzles []Puzzle `json:"puzzles"`
}

// Puzzle kinds.
const (
	PuzzleGridFill = "grid-fill"
	PuzzleGrouping = "grouping"
	PuzzleSequence = "sequence"
)

// Puzzle is a tagged union over the three kinds. Every instance carries its
// full solution alongside the partially hidden presentation.
type Puzzle struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	GridFill *GridFillPuzzle `json:"grid_fill,omitempty"`
	Grouping *GroupingPuzzle `json:"grouping,omitempty"`
	Sequence *SequencePuzzle `json:"sequence,omitempty"`
}

// GridFillPuzzle is a Latin-square fill: Solution has no duplicate value in
// any row, column, or block; Given uses 0 for hidden cells.
type GridFillPuzzle struct {
	Size     int     `json:"size"`
	Block    int     `json:"block"` // block edge length; Block*Block == Size
	Given    [][]int `json:"given"`
	Solution [][]int `json:"solution"`
}

// GroupingPuzzle presents shuffled items the player sorts back into groups.
type GroupingPuzzle struct {
	Items  []string   `json:"items"`  // shuffled presentation
	Groups [][]string `json:"groups"` // solution grouping
	Labels []string   `json:"labels"`
}

// SequencePuzzle shows a numeric sequence with hidden positions.
type SequencePuzzle struct {
	Shown     []int  `json:"shown"` // 0 at hidden positions
	Solution  []int  `json:"solution"`
	HiddenIdx []int  `json:"hidden_idx"`
	Kind      string `json:"kind"` // arithmetic, geometric, fibonacci
}

// RhythmData is a note chart.
type RhythmData struct {
	BPM         int     `json:"bpm"`
	Lanes       int     `json:"lanes"`
	ScrollSpeed float64 `json:"scroll_speed"`
	MaxChord    int     `json:"max_chord"` // difficulty-allowed simultaneous notes
	Notes       []Note  `json:"notes"`
}

type Note struct {
	TimeMs     int64 `json:"time_ms"`
	Lane       int   `json:"lane"`
	Hold       bool  `json:"hold,omitempty"`
	DurationMs int64 `json:"duration_ms,omitempty"`
}

// Active reports which single genre field is populated, or "" for none.
func (g *GenreData) Active() string {
	if g == nil {
		return ""
	}
	switch {
	case g.Narrative != nil:
		return "narrative"
	case g.Card != nil:
		return "card"
	case g.Board != nil:
		return "board"
	case g.Puzzle != nil:
		return "puzzle"
	case g.Rhythm != nil:
		return "rhythm"
	}
	return ""
}
