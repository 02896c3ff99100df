package genres

import (
	"fmt"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// PuzzleGenerator builds a set of solvable puzzle instances with partially
// hidden presentations. Every instance stores the exact solution it hid, so
// solvability is verifiable without re-solving.
type PuzzleGenerator struct{}

func (g *PuzzleGenerator) Genre() choices.Genre {
	return choices.GenrePuzzle
}

func puzzleCount(p choices.Pace) int {
	switch p {
	case choices.PaceSlow:
		return 3
	case choices.PaceFast:
		return 5
	default:
		return 4
	}
}

// hideRate is the probability a cell or position is hidden in the
// presentation: difficulty sets the base and the skill/luck ratio nudges it,
// skill-leaning players getting slightly more hidden material.
func hideRate(d choices.DifficultyStyle, skillLuck float64) float64 {
	base := 0.45
	switch d {
	case choices.DifficultyRelaxed:
		base = 0.35
	case choices.DifficultyHardcore:
		base = 0.60
	case choices.DifficultyRollercoaster:
		base = 0.50
	}
	rate := base + 0.1*(skillLuck-0.5)
	if rate < 0.2 {
		rate = 0.2
	}
	if rate > 0.75 {
		rate = 0.75
	}
	return rate
}

// Generate builds puzzleCount instances cycling through the three kinds in a
// fixed order. Each kind's builder has its own fixed draw order.
func (g *PuzzleGenerator) Generate(r *engine.Rand, cv choices.ChoiceVector) *spec.GenreData {
	count := puzzleCount(cv.Pace)
	rate := hideRate(cv.Difficulty, cv.SkillLuck)

	kinds := []string{spec.PuzzleGridFill, spec.PuzzleGrouping, spec.PuzzleSequence}
	puzzles := make([]spec.Puzzle, 0, count)
	for i := 0; i < count; i++ {
		kind := kinds[i%len(kinds)]
		p := spec.Puzzle{
			ID:   fmt.Sprintf("puzzle-%d", i+1),
			Kind: kind,
		}
		switch kind {
		case spec.PuzzleGridFill:
			p.GridFill = buildGridFill(r, rate)
		case spec.PuzzleGrouping:
			p.Grouping = buildGrouping(r)
		case spec.PuzzleSequence:
			p.Sequence = buildSequence(r, rate)
		}
		puzzles = append(puzzles, p)
	}

	return &spec.GenreData{Puzzle: &spec.PuzzleData{Puzzles: puzzles}}
}

const (
	gridSize  = 4
	gridBlock = 2
)

// buildGridFill generates a 4x4 Latin square with 2x2 block constraints from
// the canonical base pattern, randomized by a digit permutation, a row swap
// within each band, and a column swap within each stack, then hides cells at
// the given rate. Draw order: 3 digit-permutation draws, 2 row draws, 2
// column draws, 16 hide draws.
func buildGridFill(r *engine.Rand, rate float64) *spec.GridFillPuzzle {
	// Base pattern: value(y,x) = (y*block + y/block + x) mod size, which
	// satisfies row, column, and block uniqueness by construction.
	solution := make([][]int, gridSize)
	for y := range solution {
		solution[y] = make([]int, gridSize)
		for x := range solution[y] {
			solution[y][x] = (y*gridBlock+y/gridBlock+x)%gridSize + 1
		}
	}

	// Relabel digits.
	digits := []int{1, 2, 3, 4}
	r.Shuffle(len(digits), func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
	for y := range solution {
		for x := range solution[y] {
			solution[y][x] = digits[solution[y][x]-1]
		}
	}

	// Swap rows within each band and columns within each stack; both
	// preserve all three uniqueness constraints.
	for band := 0; band < gridSize/gridBlock; band++ {
		if r.Chance(0.5) {
			a, b := band*gridBlock, band*gridBlock+1
			solution[a], solution[b] = solution[b], solution[a]
		}
	}
	for stack := 0; stack < gridSize/gridBlock; stack++ {
		if r.Chance(0.5) {
			a, b := stack*gridBlock, stack*gridBlock+1
			for y := range solution {
				solution[y][a], solution[y][b] = solution[y][b], solution[y][a]
			}
		}
	}

	given := make([][]int, gridSize)
	for y := range given {
		given[y] = make([]int, gridSize)
		for x := range given[y] {
			if r.Chance(rate) {
				given[y][x] = 0
			} else {
				given[y][x] = solution[y][x]
			}
		}
	}

	return &spec.GridFillPuzzle{
		Size:     gridSize,
		Block:    gridBlock,
		Given:    given,
		Solution: solution,
	}
}

// VerifyGridFill checks that the solution is a valid Latin square with block
// uniqueness and agrees with every visible given cell.
func VerifyGridFill(p *spec.GridFillPuzzle) error {
	n := p.Size
	for y := 0; y < n; y++ {
		rowSeen := make(map[int]bool, n)
		colSeen := make(map[int]bool, n)
		for x := 0; x < n; x++ {
			rv, cv := p.Solution[y][x], p.Solution[x][y]
			if rv < 1 || rv > n || rowSeen[rv] {
				return fmt.Errorf("row %d: bad or duplicate value %d", y, rv)
			}
			if colSeen[cv] {
				return fmt.Errorf("column %d: duplicate value %d", y, cv)
			}
			rowSeen[rv] = true
			colSeen[cv] = true

			if p.Given[y][x] != 0 && p.Given[y][x] != p.Solution[y][x] {
				return fmt.Errorf("cell %d,%d: given %d disagrees with solution %d",
					x, y, p.Given[y][x], p.Solution[y][x])
			}
		}
	}
	for by := 0; by < n; by += p.Block {
		for bx := 0; bx < n; bx += p.Block {
			seen := make(map[int]bool, n)
			for y := by; y < by+p.Block; y++ {
				for x := bx; x < bx+p.Block; x++ {
					v := p.Solution[y][x]
					if seen[v] {
						return fmt.Errorf("block %d,%d: duplicate value %d", bx, by, v)
					}
					seen[v] = true
				}
			}
		}
	}
	return nil
}

var groupingPools = []struct {
	label string
	items []string
}{
	{"things that float", []string{"lantern", "cork", "iceberg", "balloon", "driftwood"}},
	{"things that tick", []string{"metronome", "geiger counter", "turn signal", "bomb", "clock"}},
	{"things that echo", []string{"canyon", "stairwell", "empty hall", "cave", "tunnel"}},
	{"things that fold", []string{"map", "chair", "origami crane", "poker hand", "umbrella"}},
	{"things that orbit", []string{"moon", "satellite", "electron", "comet", "debris"}},
	{"things that rust", []string{"anchor", "gate", "tractor", "bridge", "blade"}},
}

const (
	groupingGroups = 3
	groupingItems  = 3
)

// buildGrouping picks three pools, three items from each, and shuffles the
// combined presentation. Draw order: pool shuffle (len-1 draws), per group an
// item shuffle (len-1 draws), one final shuffle of the 9 items (8 draws).
func buildGrouping(r *engine.Rand) *spec.GroupingPuzzle {
	order := make([]int, len(groupingPools))
	for i := range order {
		order[i] = i
	}
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	labels := make([]string, groupingGroups)
	groups := make([][]string, groupingGroups)
	var all []string
	for gi := 0; gi < groupingGroups; gi++ {
		pool := groupingPools[order[gi]]
		labels[gi] = pool.label

		items := append([]string(nil), pool.items...)
		r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		groups[gi] = items[:groupingItems]
		all = append(all, groups[gi]...)
	}

	r.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	return &spec.GroupingPuzzle{
		Items:  all,
		Groups: groups,
		Labels: labels,
	}
}

// VerifyGrouping checks that the shuffled items are exactly the union of the
// solution groups.
func VerifyGrouping(p *spec.GroupingPuzzle) error {
	want := make(map[string]int)
	for _, g := range p.Groups {
		for _, item := range g {
			want[item]++
		}
	}
	got := make(map[string]int)
	for _, item := range p.Items {
		got[item]++
	}
	if len(want) != len(got) {
		return fmt.Errorf("item multiset mismatch: %d grouped vs %d presented", len(want), len(got))
	}
	for item, n := range want {
		if got[item] != n {
			return fmt.Errorf("item %q: grouped %d times, presented %d", item, n, got[item])
		}
	}
	return nil
}

const sequenceLength = 7

// buildSequence generates an arithmetic, geometric, or fibonacci-style
// sequence and hides a rate-scaled number of interior positions. Draw order:
// one kind draw, two parameter draws, one shuffle of hideable positions
// (len-1 draws).
func buildSequence(r *engine.Rand, rate float64) *spec.SequencePuzzle {
	kinds := []string{"arithmetic", "geometric", "fibonacci"}
	kind := kinds[r.Intn(len(kinds))]

	solution := make([]int, sequenceLength)
	switch kind {
	case "arithmetic":
		start := r.IntBetween(1, 9)
		step := r.IntBetween(2, 7)
		for i := range solution {
			solution[i] = start + i*step
		}
	case "geometric":
		start := r.IntBetween(1, 4)
		factor := r.IntBetween(2, 3)
		v := start
		for i := range solution {
			solution[i] = v
			v *= factor
		}
	default: // fibonacci-style with drawn starters
		a := r.IntBetween(1, 5)
		b := r.IntBetween(1, 5)
		solution[0], solution[1] = a, b
		for i := 2; i < sequenceLength; i++ {
			solution[i] = solution[i-1] + solution[i-2]
		}
	}

	// The first and last values always stay visible so the pattern is
	// anchored; interior positions are hidden per the rate.
	interior := make([]int, sequenceLength-2)
	for i := range interior {
		interior[i] = i + 1
	}
	r.Shuffle(len(interior), func(i, j int) { interior[i], interior[j] = interior[j], interior[i] })

	hideCount := int(rate * float64(len(interior)))
	if hideCount < 1 {
		hideCount = 1
	}
	hidden := append([]int(nil), interior[:hideCount]...)

	shown := append([]int(nil), solution...)
	for _, idx := range hidden {
		shown[idx] = 0
	}

	return &spec.SequencePuzzle{
		Shown:     shown,
		Solution:  solution,
		HiddenIdx: hidden,
		Kind:      kind,
	}
}

// VerifySequence checks the stored solution satisfies the sequence rule and
// fills every hidden position consistently with the presentation.
func VerifySequence(p *spec.SequencePuzzle) error {
	n := len(p.Solution)
	if n < 3 {
		return fmt.Errorf("sequence too short: %d", n)
	}
	switch p.Kind {
	case "arithmetic":
		step := p.Solution[1] - p.Solution[0]
		for i := 2; i < n; i++ {
			if p.Solution[i]-p.Solution[i-1] != step {
				return fmt.Errorf("index %d breaks arithmetic step %d", i, step)
			}
		}
	case "geometric":
		if p.Solution[0] == 0 {
			return fmt.Errorf("geometric sequence starts at zero")
		}
		factor := p.Solution[1] / p.Solution[0]
		for i := 1; i < n; i++ {
			if p.Solution[i] != p.Solution[i-1]*factor {
				return fmt.Errorf("index %d breaks geometric factor %d", i, factor)
			}
		}
	case "fibonacci":
		for i := 2; i < n; i++ {
			if p.Solution[i] != p.Solution[i-1]+p.Solution[i-2] {
				return fmt.Errorf("index %d breaks fibonacci rule", i)
			}
		}
	default:
		return fmt.Errorf("unknown sequence kind %q", p.Kind)
	}

	hidden := make(map[int]bool, len(p.HiddenIdx))
	for _, idx := range p.HiddenIdx {
		hidden[idx] = true
	}
	for i, v := range p.Shown {
		if hidden[i] {
			if v != 0 {
				return fmt.Errorf("hidden index %d is visible", i)
			}
			continue
		}
		if v != p.Solution[i] {
			return fmt.Errorf("visible index %d disagrees with solution", i)
		}
	}
	return nil
}
