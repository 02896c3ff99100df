package engine

import (
	"strconv"
	"strings"

	"github.com/forgelab/gamegen-go/internal/choices"
)

// Seed code format, uppercased and URL-path safe:
//
//	GG1-<verb>-<gravity><boundary>-<chaos base36, 2 digits>-<world>-<seed base36>
//
// The code binds a subset of the choice vector to the realized internal seed
// so a generation can be shared and replayed exactly. Decoding is total:
// malformed or foreign input yields the zero Decoded value instead of an
// error, and callers fall back to a default minimal specification.
const codePrefix = "gg1"

// Decoded is the partial reconstruction recovered from a seed code. The zero
// value (Seed 0, empty Verb, OK false) is the "unreconstructible" sentinel.
type Decoded struct {
	Verb     string
	Gravity  choices.GravityMode
	Boundary choices.BoundaryMode
	Chaos    int
	WorldKey string
	Seed     uint32
	OK       bool
}

var gravityCodes = map[choices.GravityMode]string{
	choices.GravityNormal:   "n",
	choices.GravityLow:      "l",
	choices.GravityHeavy:    "h",
	choices.GravityZero:     "z",
	choices.GravityInverted: "i",
}

var boundaryCodes = map[choices.BoundaryMode]string{
	choices.BoundaryWalls:  "w",
	choices.BoundaryWrap:   "p",
	choices.BoundaryFall:   "f",
	choices.BoundaryBounce: "b",
}

var worldCodes = map[string]string{
	choices.WorldTimeLoop:        "tl",
	choices.WorldMirrorWorld:     "mw",
	choices.WorldFloatingIslands: "fi",
	choices.WorldEternalNight:    "en",
	choices.WorldDreamLogic:      "dl",
	choices.WorldMachineUprising: "mu",
}

// freeTextWorld marks a world key the code format does not capture.
const freeTextWorld = "xx"

// EncodeSeedCode builds the shareable code for a realized generation.
func EncodeSeedCode(cv choices.ChoiceVector, seed uint32) string {
	verb := "go"
	if len(cv.Verbs) > 0 {
		if v := sanitizeToken(cv.Verbs[0]); v != "" {
			verb = v
		}
	}

	grav, ok := gravityCodes[cv.Gravity]
	if !ok {
		grav = "n"
	}
	bound, ok := boundaryCodes[cv.Boundary]
	if !ok {
		bound = "w"
	}

	world, ok := worldCodes[cv.WorldKey]
	if !ok {
		world = freeTextWorld
	}

	chaos := strconv.FormatInt(int64(choices.ClampChaos(cv.ChaosLevel)), 36)
	if len(chaos) < 2 {
		chaos = "0" + chaos
	}

	parts := []string{
		codePrefix,
		verb,
		grav + bound,
		chaos,
		world,
		strconv.FormatUint(uint64(seed), 36),
	}
	return strings.ToUpper(strings.Join(parts, "-"))
}

// DecodeSeedCode recovers the captured fields from a code. Case-insensitive.
// Never panics and never returns an error: anything it cannot parse comes
// back as the zero Decoded sentinel.
func DecodeSeedCode(code string) Decoded {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(code)), "-")
	if len(parts) != 6 || parts[0] != codePrefix {
		return Decoded{}
	}

	verb := parts[1]
	if verb == "" || sanitizeToken(verb) != verb {
		return Decoded{}
	}

	if len(parts[2]) != 2 {
		return Decoded{}
	}
	grav, ok := gravityFromCode(parts[2][:1])
	if !ok {
		return Decoded{}
	}
	bound, ok := boundaryFromCode(parts[2][1:])
	if !ok {
		return Decoded{}
	}

	chaos, err := strconv.ParseInt(parts[3], 36, 32)
	if err != nil || chaos < 0 || chaos > 100 {
		return Decoded{}
	}

	world, ok := worldFromCode(parts[4])
	if !ok {
		return Decoded{}
	}

	seed, err := strconv.ParseUint(parts[5], 36, 32)
	if err != nil {
		return Decoded{}
	}

	return Decoded{
		Verb:     verb,
		Gravity:  grav,
		Boundary: bound,
		Chaos:    int(chaos),
		WorldKey: world,
		Seed:     uint32(seed),
		OK:       true,
	}
}

// ChoiceVector expands a decoded code back into a normalized vector suitable
// for the replay path. Fields the code does not capture take their defaults.
func (d Decoded) ChoiceVector() choices.ChoiceVector {
	cv := choices.ChoiceVector{
		Genre:      choices.GenreAction,
		Verbs:      []string{d.Verb},
		Gravity:    d.Gravity,
		Boundary:   d.Boundary,
		WorldKey:   d.WorldKey,
		ChaosLevel: d.Chaos,
	}
	return cv.Normalize()
}

func gravityFromCode(c string) (choices.GravityMode, bool) {
	for mode, code := range gravityCodes {
		if code == c {
			return mode, true
		}
	}
	return "", false
}

func boundaryFromCode(c string) (choices.BoundaryMode, bool) {
	for mode, code := range boundaryCodes {
		if code == c {
			return mode, true
		}
	}
	return "", false
}

func worldFromCode(c string) (string, bool) {
	if c == freeTextWorld {
		return "", true
	}
	for key, code := range worldCodes {
		if code == c {
			return key, true
		}
	}
	return "", false
}

// sanitizeToken strips everything but lowercase letters and digits.
func sanitizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
