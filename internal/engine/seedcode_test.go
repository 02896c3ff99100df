package engine

import (
	"strings"
	"testing"

	"github.com/forgelab/gamegen-go/internal/choices"
)

func TestSeedCodeRoundTrip(t *testing.T) {
	gravities := []choices.GravityMode{
		choices.GravityNormal, choices.GravityLow, choices.GravityHeavy,
		choices.GravityZero, choices.GravityInverted,
	}
	boundaries := []choices.BoundaryMode{
		choices.BoundaryWalls, choices.BoundaryWrap,
		choices.BoundaryFall, choices.BoundaryBounce,
	}
	chaosLevels := []int{0, 1, 30, 31, 60, 61, 90, 91, 100}

	for _, g := range gravities {
		for _, b := range boundaries {
			for _, level := range chaosLevels {
				for _, world := range choices.WorldKeys {
					cv := choices.ChoiceVector{
						Verbs:      []string{"dash"},
						Gravity:    g,
						Boundary:   b,
						ChaosLevel: level,
						WorldKey:   world,
					}
					seed := uint32(0xC0FFEE) ^ uint32(level)

					code := EncodeSeedCode(cv, seed)
					d := DecodeSeedCode(code)

					if !d.OK {
						t.Fatalf("Decode failed for %q", code)
					}
					if d.Verb != "dash" || d.Gravity != g || d.Boundary != b ||
						d.Chaos != level || d.WorldKey != world || d.Seed != seed {
						t.Errorf("Round trip mismatch for %q: got %+v", code, d)
					}
				}
			}
		}
	}
}

func TestSeedCodeCaseInsensitive(t *testing.T) {
	cv := choices.ChoiceVector{
		Verbs:      []string{"Jump"},
		Gravity:    choices.GravityNormal,
		Boundary:   choices.BoundaryWalls,
		WorldKey:   choices.WorldEternalNight,
		ChaosLevel: 55,
	}
	code := EncodeSeedCode(cv.Normalize(), 123456789)

	upper := DecodeSeedCode(strings.ToUpper(code))
	lower := DecodeSeedCode(strings.ToLower(code))
	if upper != lower {
		t.Errorf("Case-sensitive decode: %+v vs %+v", upper, lower)
	}
}

func TestSeedCodeURLSafe(t *testing.T) {
	cv := choices.ChoiceVector{Verbs: []string{"sw!m fast"}, WorldKey: "a weird place"}
	code := EncodeSeedCode(cv.Normalize(), 4294967295)

	for _, r := range code {
		ok := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			t.Fatalf("Code %q contains non-URL-safe rune %q", code, r)
		}
	}
}

func TestDecodeMalformedReturnsSentinel(t *testing.T) {
	malformed := []string{
		"",
		"garbage",
		"GG1",
		"GG1-JUMP-NW-11-TL",            // missing seed
		"GG1-JUMP-NW-11-TL-ZZZ-EXTRA",  // too many parts
		"ZZ9-JUMP-NW-11-TL-1A2B3C",     // wrong prefix
		"GG1--NW-11-TL-1A2B3C",         // empty verb
		"GG1-JU.MP-NW-11-TL-1A2B3C",    // bad verb rune
		"GG1-JUMP-QW-11-TL-1A2B3C",     // unknown gravity
		"GG1-JUMP-NQ-11-TL-1A2B3C",     // unknown boundary
		"GG1-JUMP-NW-99-TL-1A2B3C",     // chaos out of range (9*36+9)
		"GG1-JUMP-NW-11-QQ-1A2B3C",     // unknown world
		"GG1-JUMP-NW-11-TL-!!!!",       // unparsable seed
		"GG1-JUMP-NW-11-TL-ZZZZZZZZZZ", // seed overflows 32 bits
	}

	for _, code := range malformed {
		d := DecodeSeedCode(code)
		if d.OK || d.Seed != 0 || d.Verb != "" {
			t.Errorf("Decode(%q) should be the zero sentinel, got %+v", code, d)
		}
	}
}

func TestDecodeFreeTextWorld(t *testing.T) {
	cv := choices.ChoiceVector{Verbs: []string{"sing"}, WorldKey: "everything is made of glass"}
	code := EncodeSeedCode(cv.Normalize(), 42)

	d := DecodeSeedCode(code)
	if !d.OK {
		t.Fatalf("Decode failed for free-text world: %q", code)
	}
	if d.WorldKey != "" {
		t.Errorf("Free-text world should decode to empty key, got %q", d.WorldKey)
	}
	if d.Seed != 42 {
		t.Errorf("Seed mismatch: got %d", d.Seed)
	}
}

func TestDecodedChoiceVectorNormalized(t *testing.T) {
	cv := choices.ChoiceVector{
		Verbs:      []string{"climb"},
		Gravity:    choices.GravityInverted,
		Boundary:   choices.BoundaryBounce,
		WorldKey:   choices.WorldDreamLogic,
		ChaosLevel: 77,
	}
	d := DecodeSeedCode(EncodeSeedCode(cv.Normalize(), 1))

	got := d.ChoiceVector()
	if len(got.Verbs) != 1 || got.Verbs[0] != "climb" {
		t.Errorf("Verbs not carried through: %v", got.Verbs)
	}
	if got.ChaosLevel != 77 || got.Gravity != choices.GravityInverted {
		t.Errorf("Fields not carried through: %+v", got)
	}
	if got.Genre != choices.GenreAction {
		t.Errorf("Fallback genre should be action, got %s", got.Genre)
	}
}
