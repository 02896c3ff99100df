package genres

import (
	"fmt"

	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/engine"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// CardGenerator builds a deck duel: archetype shapes the effect pool,
// difficulty shapes the opposition, pace shapes the opening hand, and the
// skill/luck ratio shapes rarity rolls.
type CardGenerator struct{}

func (g *CardGenerator) Genre() choices.Genre {
	return choices.GenreCard
}

type weightedEffect struct {
	effect string
	weight float64
}

// Effect pools are weighted per archetype; a guardian deck leans heal/shield,
// a warrior deck leans damage, and so on. Weights are cumulative-sampled so
// each card costs exactly one draw to pick its effect.
func effectPool(a choices.Archetype) []weightedEffect {
	switch a {
	case choices.ArchetypeGuardian:
		return []weightedEffect{
			{"heal", 3}, {"shield", 3}, {"buff", 2}, {"damage", 1}, {"draw", 1},
		}
	case choices.ArchetypeWarrior:
		return []weightedEffect{
			{"damage", 4}, {"buff", 2}, {"shield", 1}, {"heal", 1}, {"draw", 1},
		}
	case choices.ArchetypeTrickster:
		return []weightedEffect{
			{"curse", 3}, {"draw", 3}, {"damage", 2}, {"buff", 1}, {"heal", 1},
		}
	case choices.ArchetypeScholar:
		return []weightedEffect{
			{"draw", 4}, {"buff", 2}, {"curse", 2}, {"heal", 1}, {"damage", 1},
		}
	default: // explorer
		return []weightedEffect{
			{"draw", 2}, {"damage", 2}, {"heal", 2}, {"buff", 2}, {"shield", 1},
		}
	}
}

func pickEffect(r *engine.Rand, pool []weightedEffect) string {
	total := 0.0
	for _, w := range pool {
		total += w.weight
	}
	roll := r.Float64() * total
	for _, w := range pool {
		roll -= w.weight
		if roll < 0 {
			return w.effect
		}
	}
	return pool[len(pool)-1].effect
}

type duelShape struct {
	enemyHP    int
	deckSize   int
	extraPool  []weightedEffect // appended to the archetype pool
}

func duelFor(d choices.DifficultyStyle) duelShape {
	switch d {
	case choices.DifficultyRelaxed:
		return duelShape{enemyHP: 20, deckSize: 16}
	case choices.DifficultyHardcore:
		return duelShape{
			enemyHP: 45, deckSize: 24,
			extraPool: []weightedEffect{{"curse", 2}, {"shield", 1}},
		}
	case choices.DifficultyRollercoaster:
		return duelShape{
			enemyHP: 35, deckSize: 20,
			extraPool: []weightedEffect{{"curse", 1}, {"draw", 1}},
		}
	default: // steady
		return duelShape{enemyHP: 30, deckSize: 20}
	}
}

func openingHand(p choices.Pace) (mana, hand int) {
	switch p {
	case choices.PaceFast:
		return 3, 5
	case choices.PaceSlow:
		return 1, 3
	default:
		return 2, 4
	}
}

// rarityThresholds converts the skill/luck ratio into roll cutoffs. More luck
// (lower ratio) lowers the legendary threshold, making jackpot cards likelier.
func rarityThresholds(skillLuck float64) (rare, legendary float64) {
	rare = 0.60 + 0.15*skillLuck      // 0.60 (pure luck) .. 0.75 (pure skill)
	legendary = 0.85 + 0.12*skillLuck // 0.85 .. 0.97
	return rare, legendary
}

var cardNamesByEffect = map[string][]string{
	"damage": {"Ember Lash", "Fault Line", "Pike Rush", "Static Bite"},
	"heal":   {"Slow Dawn", "Field Dressing", "Warm Ration", "Second Wind"},
	"buff":   {"Whetstone", "War Paint", "Tail Wind", "Overclock"},
	"draw":   {"Foresight", "Dead Drop", "Margin Notes", "Lucky Find"},
	"shield": {"Tower Stance", "Bulwark", "Stone Skin", "Locked Door"},
	"curse":  {"Cold Read", "Bad Omen", "Rigged Dice", "Hex Mark"},
}

// Generate draw order per card: one effect draw, one rarity draw, one name
// draw, one cost draw. The unique custom card consumes no draws and is
// prepended after the deck is rolled.
func (g *CardGenerator) Generate(r *engine.Rand, cv choices.ChoiceVector) *spec.GenreData {
	duel := duelFor(cv.Difficulty)
	mana, hand := openingHand(cv.Pace)
	rareAt, legendaryAt := rarityThresholds(cv.SkillLuck)

	pool := append(effectPool(cv.Archetype), duel.extraPool...)

	deck := make([]spec.Card, 0, duel.deckSize+1)
	for i := 0; i < duel.deckSize; i++ {
		effect := pickEffect(r, pool)

		rarity := spec.RarityCommon
		roll := r.Float64()
		if roll >= legendaryAt {
			rarity = spec.RarityLegendary
		} else if roll >= rareAt {
			rarity = spec.RarityRare
		}

		name := r.Pick(cardNamesByEffect[effect])
		cost := r.IntBetween(1, 4)

		value := cost * 2
		switch rarity {
		case spec.RarityRare:
			value += 2
		case spec.RarityLegendary:
			value += 5
		}

		deck = append(deck, spec.Card{
			ID:     fmt.Sprintf("card-%02d", i+1),
			Name:   name,
			Cost:   cost,
			Rarity: rarity,
			Effect: effect,
			Value:  value,
		})
	}

	// A custom free-text element becomes one guaranteed unique high-value
	// card at the top of the deck.
	if cv.CustomElement != "" {
		deck = append([]spec.Card{{
			ID:     "card-custom",
			Name:   title(cv.CustomElement),
			Cost:   3,
			Rarity: spec.RarityLegendary,
			Effect: "damage",
			Value:  12,
			Unique: true,
		}}, deck...)
	}

	return &spec.GenreData{
		Card: &spec.CardData{
			Deck:               deck,
			EnemyHP:            duel.enemyHP,
			StartingMana:       mana,
			HandSize:           hand,
			RareThreshold:      rareAt,
			LegendaryThreshold: legendaryAt,
		},
	}
}
