package pipeline

import (
	"github.com/forgelab/gamegen-go/internal/choices"
	"github.com/forgelab/gamegen-go/internal/spec"
)

// World dimensions per genre. The action playfield is sized to hold the
// longest possible platform layout; the other genres render board-style
// content in a fixed viewport.
func worldDimensions(g choices.Genre) (width, height int) {
	switch g {
	case choices.GenreAction:
		return 6000, 720
	case choices.GenreRhythm:
		return 960, 720
	default:
		return 960, 640
	}
}

// Base palettes per visual style. The world difference contributes one accent
// color appended last.
var stylePalettes = map[string][]string{
	"neon":   {"#0b0b1a", "#ff2975", "#29ffce", "#f6f740"},
	"pastel": {"#fdf6f0", "#f7c5cc", "#a8d8ea", "#b5e2b5"},
	"mono":   {"#101010", "#3c3c3c", "#9a9a9a", "#e8e8e8"},
	"retro":  {"#1a1c2c", "#ef7d57", "#38b764", "#ffcd75"},
}

var worldAccents = map[string]string{
	choices.WorldTimeLoop:        "#c0a060",
	choices.WorldMirrorWorld:     "#8fd4e8",
	choices.WorldFloatingIslands: "#7ec8a0",
	choices.WorldEternalNight:    "#3d2c6e",
	choices.WorldDreamLogic:      "#d88fd0",
	choices.WorldMachineUprising: "#b0b8c0",
}

var worldBackgrounds = map[string]string{
	choices.WorldTimeLoop:        "a city square mid-morning, always",
	choices.WorldMirrorWorld:     "a skyline duplicated upside down",
	choices.WorldFloatingIslands: "islands adrift over open sky",
	choices.WorldEternalNight:    "streetlights against a starless dark",
	choices.WorldDreamLogic:      "architecture that forgets its own shape",
	choices.WorldMachineUprising: "factories running with the lights off",
}

// buildWorld is fully determined by the choice vector; it consumes no draws.
func buildWorld(cv choices.ChoiceVector) spec.WorldConfig {
	width, height := worldDimensions(cv.Genre)

	palette := stylePalettes[cv.VisualStyle]
	if palette == nil {
		palette = []string{"#222034", "#45283c", "#ba6156", "#ead4aa"}
	}
	palette = append(append([]string(nil), palette...), accentFor(cv.WorldKey))

	background, ok := worldBackgrounds[cv.WorldKey]
	if !ok {
		background = "a place answering to: " + cv.WorldKey
	}

	return spec.WorldConfig{
		Width:          width,
		Height:         height,
		Gravity:        cv.Gravity,
		Boundary:       cv.Boundary,
		SpecialPhysics: cv.SpecialPhysics,
		CustomPhysics:  cv.CustomPhysics,
		Palette:        palette,
		Background:     background,
	}
}

func accentFor(worldKey string) string {
	if accent, ok := worldAccents[worldKey]; ok {
		return accent
	}
	return "#888888"
}
