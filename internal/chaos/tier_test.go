package chaos

import (
	"testing"
	"time"
)

func TestTierTable(t *testing.T) {
	zero := TierFor(0)
	if zero.Frequency != 0 || zero.MaxActive != 0 || len(zero.Categories) != 0 {
		t.Errorf("Level 0 should be disabled, got %+v", zero)
	}

	mid := TierFor(45)
	if mid.Frequency != 60*time.Second {
		t.Errorf("Level 45 frequency: got %v, want 60s", mid.Frequency)
	}
	if mid.MaxActive != 2 {
		t.Errorf("Level 45 max active: got %d, want 2", mid.MaxActive)
	}
	wantCats := []Category{CategoryPhysics, CategoryVisual, CategoryEntity}
	if len(mid.Categories) != len(wantCats) {
		t.Fatalf("Level 45 categories: got %v, want %v", mid.Categories, wantCats)
	}
	for i, c := range wantCats {
		if mid.Categories[i] != c {
			t.Errorf("Level 45 category %d: got %s, want %s", i, mid.Categories[i], c)
		}
	}

	top := TierFor(95)
	if !top.Unbounded() {
		t.Errorf("Level 95 should be unbounded, got MaxActive=%d", top.MaxActive)
	}
	if !top.Allows(CategoryNarrative) {
		t.Errorf("Level 95 should allow narrative mutations: %v", top.Categories)
	}
	if top.Frequency != 15*time.Second {
		t.Errorf("Level 95 frequency: got %v, want 15s", top.Frequency)
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		level     int
		frequency time.Duration
		maxActive int
	}{
		{1, 90 * time.Second, 1},
		{30, 90 * time.Second, 1},
		{31, 60 * time.Second, 2},
		{60, 60 * time.Second, 2},
		{61, 30 * time.Second, 3},
		{90, 30 * time.Second, 3},
		{91, 15 * time.Second, Unbounded},
		{100, 15 * time.Second, Unbounded},
	}
	for _, c := range cases {
		tier := TierFor(c.level)
		if tier.Frequency != c.frequency || tier.MaxActive != c.maxActive {
			t.Errorf("Level %d: got {%v %d}, want {%v %d}",
				c.level, tier.Frequency, tier.MaxActive, c.frequency, c.maxActive)
		}
	}
}

func TestTierClampsInput(t *testing.T) {
	if got := TierFor(-10); got.MaxActive != 0 {
		t.Errorf("Negative level should clamp to disabled, got %+v", got)
	}
	if got := TierFor(500); !got.Unbounded() {
		t.Errorf("Level above 100 should clamp to top band, got %+v", got)
	}
}

func TestEligibilityMonotonicWithinBands(t *testing.T) {
	bands := [][2]int{{1, 30}, {31, 60}, {61, 90}, {91, 100}}
	for _, band := range bands {
		for l1 := band[0]; l1 < band[1]; l1++ {
			set1 := EligibleIDs(l1)
			set2 := EligibleIDs(l1 + 1)

			have := make(map[string]bool, len(set2))
			for _, id := range set2 {
				have[id] = true
			}
			for _, id := range set1 {
				if !have[id] {
					t.Fatalf("Eligibility not monotonic: %q eligible at %d but not at %d", id, l1, l1+1)
				}
			}
		}
	}
}

func TestEligibilityRespectsMinLevel(t *testing.T) {
	for _, level := range []int{0, 1, 15, 30, 45, 60, 75, 90, 95, 100} {
		tier := TierFor(level)
		ids := make(map[string]bool)
		for _, id := range EligibleIDs(level) {
			ids[id] = true
		}
		for _, m := range Catalog() {
			want := tier.Allows(m.Category) && m.MinLevel <= level
			if ids[m.ID] != want {
				t.Errorf("Level %d mutation %s: eligible=%v, want %v", level, m.ID, ids[m.ID], want)
			}
		}
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Catalog() {
		if seen[m.ID] {
			t.Errorf("Duplicate mutation id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Changes == nil {
			t.Errorf("Mutation %q has no changes", m.ID)
		}
		if m.Duration == 0 {
			t.Errorf("Mutation %q has zero duration; use Permanent or a finite duration", m.ID)
		}
	}
}
