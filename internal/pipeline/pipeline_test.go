package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/forgelab/gamegen-go/internal/chaos"
	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
)

func testVector(genre choices.Genre) choices.ChoiceVector {
	return choices.ChoiceVector{
		Genre:       genre,
		VisualStyle: "neon",
		Verbs:       []string{"jump", "shoot", "collect"},
		Gravity:     choices.GravityLow,
		Boundary:    choices.BoundaryWrap,
		WorldKey:    choices.WorldEternalNight,
		Archetype:   choices.ArchetypeTrickster,
		Difficulty:  choices.DifficultyRollercoaster,
		Pace:        choices.PaceFast,
		SkillLuck:   0.7,
		ChaosLevel:  45,
	}
}

func TestReplayIsByteIdentical(t *testing.T) {
	for _, genre := range choices.Genres {
		t.Run(string(genre), func(t *testing.T) {
			cv := testVector(genre)
			a := GenerateWithSeed(cv, 987654321)
			b := GenerateWithSeed(cv, 987654321)

			ja, err := json.Marshal(a.Spec)
			if err != nil {
				t.Fatal(err)
			}
			jb, _ := json.Marshal(b.Spec)
			if string(ja) != string(jb) {
				t.Error("Replay with the same seed produced a different document")
			}
		})
	}
}

func TestFreshGenerationsDiffer(t *testing.T) {
	cv := testVector(choices.GenreAction)
	a := Generate(cv)
	b := Generate(cv)
	if a.Spec.Seed == b.Spec.Seed {
		t.Error("Two fresh generations from identical choices realized the same seed")
	}
	if a.Spec.SeedCode == b.Spec.SeedCode {
		t.Error("Two fresh generations shared a seed code")
	}
}

func TestEntitiesAndGenreDataMutuallyExclusive(t *testing.T) {
	for _, genre := range choices.Genres {
		t.Run(string(genre), func(t *testing.T) {
			res := GenerateWithSeed(testVector(genre), 42)
			s := res.Spec

			if genre == choices.GenreAction {
				if s.GenreData != nil {
					t.Error("Action genre must not carry genre data")
				}
				if len(s.Entities) < 3 {
					t.Errorf("Action genre should build a full entity list, got %d", len(s.Entities))
				}
				return
			}

			if len(s.Entities) != 1 || s.Entities[0].Kind != "protagonist" {
				t.Errorf("Non-action genre should carry only the protagonist record, got %d entities", len(s.Entities))
			}
			if s.GenreData == nil || s.GenreData.Active() != string(genre) {
				t.Errorf("Genre %s: wrong genre data union field %q", genre, s.GenreData.Active())
			}
		})
	}
}

func TestSeedCodeDecodesBackToSeed(t *testing.T) {
	res := GenerateWithSeed(testVector(choices.GenreAction), 777)
	dec := engine.DecodeSeedCode(res.Spec.SeedCode)
	if !dec.OK {
		t.Fatalf("Generated seed code %q failed to decode", res.Spec.SeedCode)
	}
	if dec.Seed != 777 {
		t.Errorf("Decoded seed %d, want 777", dec.Seed)
	}
	if dec.Chaos != 45 {
		t.Errorf("Decoded chaos %d, want 45", dec.Chaos)
	}
}

func TestChaosConfigAgreesWithTier(t *testing.T) {
	levels := []int{0, 15, 45, 75, 95}
	for _, level := range levels {
		cv := testVector(choices.GenreAction)
		cv.ChaosLevel = level
		s := GenerateWithSeed(cv, 1).Spec

		tier := chaos.TierFor(level)
		if s.Chaos.FrequencyMs != tier.Frequency.Milliseconds() {
			t.Errorf("Level %d: frequency %dms, want %dms", level, s.Chaos.FrequencyMs, tier.Frequency.Milliseconds())
		}
		if s.Chaos.MaxActive != tier.MaxActive {
			t.Errorf("Level %d: max active %d, want %d", level, s.Chaos.MaxActive, tier.MaxActive)
		}
		if level == 0 && len(s.Chaos.MutationIDs) != 0 {
			t.Error("Level 0 should have no eligible mutations")
		}
		if level > 0 && len(s.Chaos.MutationIDs) == 0 {
			t.Errorf("Level %d should have eligible mutations", level)
		}
	}
}

func TestChaosSystemOnlyWhenEnabled(t *testing.T) {
	hasChaosSystem := func(level int) bool {
		cv := testVector(choices.GenreAction)
		cv.ChaosLevel = level
		for _, sys := range GenerateWithSeed(cv, 1).Spec.Systems {
			if sys.ID == "sys-chaos" {
				return true
			}
		}
		return false
	}
	if hasChaosSystem(0) {
		t.Error("Chaos system present at level 0")
	}
	if !hasChaosSystem(45) {
		t.Error("Chaos system missing at level 45")
	}
}

func TestEveryVerbGetsSystemRuleAndLoop(t *testing.T) {
	cv := testVector(choices.GenreAction)
	cv.Verbs = []string{"jump", "shoot", "yodel"} // yodel exercises the generic fallback
	s := GenerateWithSeed(cv, 9).Spec

	for _, verb := range s.Verbs {
		foundSys, foundRule, foundLoop := false, false, false
		for _, sys := range s.Systems {
			if sys.Verb == verb {
				foundSys = true
			}
		}
		for _, rule := range s.Rules {
			if len(rule.Verbs) == 1 && rule.Verbs[0] == verb {
				foundRule = true
			}
		}
		for _, loop := range s.Loops {
			if loop.ID == "loop-verb-"+verb {
				foundLoop = true
			}
		}
		if !foundSys || !foundRule || !foundLoop {
			t.Errorf("Verb %q: system=%v rule=%v loop=%v", verb, foundSys, foundRule, foundLoop)
		}
	}
}

func TestComboRulesFromCoOccurringVerbs(t *testing.T) {
	cv := testVector(choices.GenreAction)
	cv.Verbs = []string{"jump", "shoot"}
	s := GenerateWithSeed(cv, 3).Spec

	found := false
	for _, rule := range s.Rules {
		if rule.ID == "rule-combo-aerial" {
			found = true
			if !rule.Combo || len(rule.Verbs) != 2 {
				t.Error("Aerial combo rule malformed")
			}
		}
		if rule.ID == "rule-combo-driveby" {
			t.Error("Drive-by combo requires dash, which is absent")
		}
	}
	if !found {
		t.Error("jump+shoot should produce the aerial combo rule")
	}
}

func TestActionLayoutTraversable(t *testing.T) {
	for seed := uint32(1); seed <= 20; seed++ {
		s := GenerateWithSeed(testVector(choices.GenreAction), seed).Spec

		var platforms []int
		for i, e := range s.Entities {
			if e.Kind == "platform" {
				platforms = append(platforms, i)
			}
		}
		if len(platforms) == 0 {
			t.Fatal("No platforms generated")
		}

		for n := 1; n < len(platforms); n++ {
			prev := s.Entities[platforms[n-1]]
			cur := s.Entities[platforms[n]]
			gap := cur.X - (prev.X + prev.Width)
			if gap < gapMin-1 || gap > gapMax+1 {
				t.Errorf("Seed %d: gap %.1f outside [%d,%d]", seed, gap, gapMin, gapMax)
			}
			if cur.Y < platformYMin || cur.Y > platformYMax {
				t.Errorf("Seed %d: platform height %.1f out of bounds", seed, cur.Y)
			}
		}

		last := s.Entities[len(s.Entities)-1]
		if last.Kind != "goal" {
			t.Errorf("Seed %d: entity list should end with the goal marker", seed)
		}
	}
}

func TestValidatorsPassForRollercoasterVectors(t *testing.T) {
	// Linear styles climb without a dip and draw an advisory warning on long
	// curves; the rollercoaster style satisfies every difficulty check.
	for _, genre := range choices.Genres {
		cv := testVector(genre)
		cv.Pace = choices.PaceMedium
		res := GenerateWithSeed(cv, 12345)
		if !res.Report.Valid {
			t.Errorf("Genre %s: rollercoaster vector flagged invalid: %v", genre, res.Report.Warnings)
		}
	}
}

func TestValidatorFindingsNeverBlockGeneration(t *testing.T) {
	cv := testVector(choices.GenreAction)
	cv.Difficulty = choices.DifficultyHardcore // monotone climb, draws warnings
	res := GenerateWithSeed(cv, 8)
	if res.Spec == nil {
		t.Fatal("Generation must succeed regardless of validator findings")
	}
	if res.Report.Valid {
		t.Error("Hardcore monotone curve should draw advisory warnings")
	}
}

func TestDefaultSpecIsStable(t *testing.T) {
	a, _ := json.Marshal(DefaultSpec())
	b, _ := json.Marshal(DefaultSpec())
	if string(a) != string(b) {
		t.Error("Fallback specification is not deterministic")
	}

	s := DefaultSpec()
	if s.Genre != choices.GenreAction || s.Seed != 0 {
		t.Errorf("Fallback should be an action game at seed 0, got %s seed %d", s.Genre, s.Seed)
	}
	if len(s.Entities) == 0 {
		t.Error("Fallback specification has no entities")
	}
}

func TestCurveLengthFollowsPace(t *testing.T) {
	want := map[choices.Pace]int{
		choices.PaceSlow:   12,
		choices.PaceMedium: 10,
		choices.PaceFast:   8,
	}
	for pace, n := range want {
		cv := testVector(choices.GenreAction)
		cv.Pace = pace
		s := GenerateWithSeed(cv, 2).Spec
		if len(s.Difficulty.Curve) != n {
			t.Errorf("Pace %s: curve length %d, want %d", pace, len(s.Difficulty.Curve), n)
		}
	}
}
