package genres

import (
	"fmt"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// BoardGenerator builds a tactics match: a terrain grid whose distribution is
// keyed to the world difference, with archetype piece rosters and
// difficulty-driven opposition.
type BoardGenerator struct{}

func (g *BoardGenerator) Genre() choices.Genre {
	return choices.GenreBoard
}

// Terrain types, common to rare.
const (
	TerrainPlain  = "plain"
	TerrainForest = "forest"
	TerrainWater  = "water"
	TerrainRuin   = "ruin"
	TerrainRift   = "rift"
)

// terrainTable is a cumulative-threshold row: a draw in [0,1) walks the
// thresholds and lands on the first one it falls under.
type terrainTable struct {
	thresholds [4]float64 // plain, forest, water, ruin; remainder is rift
}

// Terrain mixes per world difference. The rift share is what remains above
// the final threshold.
func terrainFor(worldKey string) terrainTable {
	switch worldKey {
	case choices.WorldFloatingIslands:
		return terrainTable{[4]float64{0.45, 0.60, 0.85, 0.95}}
	case choices.WorldEternalNight:
		return terrainTable{[4]float64{0.50, 0.75, 0.82, 0.95}}
	case choices.WorldTimeLoop:
		return terrainTable{[4]float64{0.55, 0.70, 0.80, 0.90}}
	case choices.WorldMachineUprising:
		return terrainTable{[4]float64{0.50, 0.60, 0.70, 0.92}}
	case choices.WorldDreamLogic:
		return terrainTable{[4]float64{0.40, 0.60, 0.75, 0.88}}
	case choices.WorldMirrorWorld:
		return terrainTable{[4]float64{0.50, 0.68, 0.84, 0.94}}
	default:
		return terrainTable{[4]float64{0.55, 0.72, 0.85, 0.95}}
	}
}

// perturb shifts every threshold down proportionally to the chaos level,
// moving probability mass toward the rarer terrain types. Level 100 shifts
// each cutoff down by 20%.
func (t terrainTable) perturb(chaosLevel int) terrainTable {
	scale := 1 - 0.2*float64(chaosLevel)/100
	for i := range t.thresholds {
		t.thresholds[i] *= scale
	}
	return t
}

func (t terrainTable) roll(r *engine.Rand) string {
	draw := r.Float64()
	switch {
	case draw < t.thresholds[0]:
		return TerrainPlain
	case draw < t.thresholds[1]:
		return TerrainForest
	case draw < t.thresholds[2]:
		return TerrainWater
	case draw < t.thresholds[3]:
		return TerrainRuin
	default:
		return TerrainRift
	}
}

// pieceTemplate rows are archetype roster pools; counts come from difficulty.
type pieceTemplate struct {
	name   string
	kind   string
	hp     int
	attack int
	move   int
}

func rosterFor(a choices.Archetype) []pieceTemplate {
	switch a {
	case choices.ArchetypeWarrior:
		return []pieceTemplate{
			{"Vanguard", "heavy", 14, 5, 2},
			{"Lancer", "striker", 9, 6, 3},
			{"Drummer", "support", 7, 2, 3},
		}
	case choices.ArchetypeGuardian:
		return []pieceTemplate{
			{"Warden", "heavy", 16, 3, 2},
			{"Aegis Bearer", "support", 10, 2, 2},
			{"Sentinel", "striker", 8, 5, 3},
		}
	case choices.ArchetypeTrickster:
		return []pieceTemplate{
			{"Shade", "skirmisher", 6, 5, 5},
			{"Decoy", "support", 5, 1, 4},
			{"Knifewind", "striker", 7, 6, 4},
		}
	case choices.ArchetypeScholar:
		return []pieceTemplate{
			{"Archivist", "support", 8, 2, 2},
			{"Geometer", "striker", 7, 5, 3},
			{"Golem Draft", "heavy", 13, 4, 2},
		}
	default: // explorer
		return []pieceTemplate{
			{"Pathfinder", "skirmisher", 8, 4, 4},
			{"Cartwright", "support", 9, 2, 3},
			{"Trailblade", "striker", 8, 5, 3},
		}
	}
}

var enemyRoster = []pieceTemplate{
	{"Hollow Pawn", "striker", 7, 4, 3},
	{"Rust Colossus", "heavy", 15, 5, 2},
	{"Whisper", "skirmisher", 6, 4, 5},
	{"Herald", "support", 8, 2, 3},
}

type matchShape struct {
	playerPieces int
	enemyPieces  int
	statMult     float64
}

func matchFor(d choices.DifficultyStyle) matchShape {
	switch d {
	case choices.DifficultyRelaxed:
		return matchShape{playerPieces: 5, enemyPieces: 4, statMult: 0.85}
	case choices.DifficultyHardcore:
		return matchShape{playerPieces: 4, enemyPieces: 6, statMult: 1.3}
	case choices.DifficultyRollercoaster:
		return matchShape{playerPieces: 5, enemyPieces: 5, statMult: 1.15}
	default:
		return matchShape{playerPieces: 5, enemyPieces: 5, statMult: 1.0}
	}
}

const (
	boardWidth  = 9
	boardHeight = 9
	// Rows forced to plain on each side so neither opening is terrain-locked.
	fairRows = 2
)

// Generate draw order: width*height terrain rolls (row-major), then one
// roster draw per player piece, then one per enemy piece.
func (g *BoardGenerator) Generate(r *engine.Rand, cv choices.ChoiceVector) *spec.GenreData {
	table := terrainFor(cv.WorldKey).perturb(cv.ChaosLevel)

	terrain := make([][]string, boardHeight)
	for y := 0; y < boardHeight; y++ {
		row := make([]string, boardWidth)
		for x := 0; x < boardWidth; x++ {
			row[x] = table.roll(r)
		}
		terrain[y] = row
	}

	// Starting rows are overwritten after rolling, not skipped, so the draw
	// count stays identical for every input.
	for y := 0; y < fairRows; y++ {
		for x := 0; x < boardWidth; x++ {
			terrain[y][x] = TerrainPlain
			terrain[boardHeight-1-y][x] = TerrainPlain
		}
	}

	match := matchFor(cv.Difficulty)
	roster := rosterFor(cv.Archetype)

	players := make([]spec.Piece, match.playerPieces)
	for i := range players {
		t := roster[r.Intn(len(roster))]
		players[i] = pieceFrom(t, fmt.Sprintf("p-%d", i+1), 1.0)
	}

	enemies := make([]spec.Piece, match.enemyPieces)
	for i := range enemies {
		t := enemyRoster[r.Intn(len(enemyRoster))]
		enemies[i] = pieceFrom(t, fmt.Sprintf("e-%d", i+1), match.statMult)
	}

	return &spec.GenreData{
		Board: &spec.BoardData{
			Width:          boardWidth,
			Height:         boardHeight,
			Terrain:        terrain,
			PlayerPieces:   players,
			EnemyPieces:    enemies,
			StatMultiplier: match.statMult,
		},
	}
}

func pieceFrom(t pieceTemplate, id string, mult float64) spec.Piece {
	return spec.Piece{
		ID:     id,
		Name:   t.name,
		Kind:   t.kind,
		HP:     scaleStat(t.hp, mult),
		Attack: scaleStat(t.attack, mult),
		Move:   t.move,
	}
}

func scaleStat(base int, mult float64) int {
	v := int(float64(base) * mult)
	if v < 1 {
		v = 1
	}
	return v
}
