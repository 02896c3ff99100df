package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/forgelab/gamegen-go/internal/choices"
)

// CanonicalString flattens the salient choice fields into a stable string.
// Field order is part of the format and must not change.
func CanonicalString(cv choices.ChoiceVector) string {
	fields := []string{
		string(cv.Genre),
		cv.VisualStyle,
		strings.Join(cv.Verbs, ","),
		string(cv.Gravity),
		string(cv.Boundary),
		cv.WorldKey,
		string(cv.Archetype),
		string(cv.Difficulty),
		string(cv.Pace),
		strconv.Itoa(cv.ChaosLevel),
	}
	return strings.Join(fields, "|")
}

// HashChoices returns the FNV-1a 32 hash of the canonical choice string.
func HashChoices(cv choices.ChoiceVector) uint32 {
	h := fnv.New32a()
	h.Write([]byte(CanonicalString(cv)))
	return h.Sum32()
}

// DeriveSeed turns a choice vector into an internal seed by salting the
// choice hash with wall-clock time and an independent random draw. Two calls
// with identical choices therefore yield different seeds: regenerating is
// meant to produce a different game each time. Replay goes through the seed
// code, which freezes the realized seed, never through re-derivation.
func DeriveSeed(cv choices.ChoiceVector) uint32 {
	return HashChoices(cv) ^ salt()
}

func salt() uint32 {
	var buf [4]byte
	// crypto/rand failure falls through to the time component alone; the
	// salt only needs variety, not unpredictability.
	_, _ = crand.Read(buf[:])
	return uint32(time.Now().UnixNano()) ^ binary.LittleEndian.Uint32(buf[:])
}
