package difficulty

import (
	"testing"

	"github.com/forgelab/gamegen-go/internal/choices"
)

func TestRelaxedSlowGolden(t *testing.T) {
	got := GenerateCurve(choices.DifficultyRelaxed, choices.PaceSlow, 5)
	want := []float64{0.2, 0.2525, 0.305, 0.3575, 0.41}

	if len(got) != len(want) {
		t.Fatalf("Length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Index %d: got %.17f, want %.17f", i, got[i], want[i])
		}
	}
}

func TestCurveLengthFloor(t *testing.T) {
	for _, n := range []int{-5, 0, 1, 2, 3} {
		got := GenerateCurve(choices.DifficultySteady, choices.PaceMedium, n)
		if len(got) != 3 {
			t.Errorf("Count %d: expected floor length 3, got %d", n, len(got))
		}
	}
	if got := GenerateCurve(choices.DifficultySteady, choices.PaceMedium, 12); len(got) != 12 {
		t.Errorf("Expected length 12, got %d", len(got))
	}
}

func TestCurveBoundsAllStylesPaces(t *testing.T) {
	styles := []choices.DifficultyStyle{
		choices.DifficultyRelaxed, choices.DifficultySteady,
		choices.DifficultyHardcore, choices.DifficultyRollercoaster,
	}
	paces := []choices.Pace{choices.PaceSlow, choices.PaceMedium, choices.PaceFast}

	for _, style := range styles {
		for _, pace := range paces {
			t.Run(string(style)+"/"+string(pace), func(t *testing.T) {
				curve := GenerateCurve(style, pace, 20)
				for i, v := range curve {
					if v < 0 || v > 1 {
						t.Errorf("Index %d out of [0,1]: %.17f", i, v)
					}
				}
			})
		}
	}
}

func TestCurveDeterministic(t *testing.T) {
	a := GenerateCurve(choices.DifficultyRollercoaster, choices.PaceFast, 16)
	b := GenerateCurve(choices.DifficultyRollercoaster, choices.PaceFast, 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Index %d differs across calls: %.17f vs %.17f", i, a[i], b[i])
		}
	}
}

func TestHardcoreStartsHigh(t *testing.T) {
	curve := GenerateCurve(choices.DifficultyHardcore, choices.PaceMedium, 8)
	if curve[0] != 0.6 {
		t.Errorf("Hardcore should open at 0.6, got %.17f", curve[0])
	}
	if curve[len(curve)-1] <= curve[0] {
		t.Errorf("Hardcore should still ramp up: first %.4f, last %.4f", curve[0], curve[len(curve)-1])
	}
}

func TestRollercoasterHasDips(t *testing.T) {
	curve := GenerateCurve(choices.DifficultyRollercoaster, choices.PaceMedium, 24)
	decreases := 0
	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] {
			decreases++
		}
	}
	if decreases == 0 {
		t.Error("Rollercoaster curve has no decreases; the sine swell is missing")
	}
}

func TestUnknownStylePaceFallBack(t *testing.T) {
	got := GenerateCurve("mystery", "warp", 5)
	want := GenerateCurve(choices.DifficultySteady, choices.PaceMedium, 5)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Unknown style/pace should fall back to steady/medium; index %d: %.17f vs %.17f", i, got[i], want[i])
		}
	}
}
