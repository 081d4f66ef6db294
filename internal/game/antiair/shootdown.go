package antiair

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/battle"
	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
)

// Side modifiers of the fixed shoot-down.
const (
	playerSideModifier = 0.8
	enemySideModifier  = 0.75
)

// CombinedModifier is the shoot-down multiplier of a ship's place in a
// combined fleet; single fleets use 1.
func CombinedModifier(p battle.Position) float64 {
	if !p.FleetType.Combined() {
		return 1
	}
	if p.Role == battle.Escort {
		return 0.48
	}
	if p.Side == battle.Enemy {
		return 0.8
	}
	return 0.72
}

// Input is the defending ship's side of a shoot-down.
type Input struct {
	AdjustedAntiAir float64
	FleetAntiAir    float64
	Side            battle.Side
	// Combined is the combined fleet modifier; 0 means 1.
	Combined float64
	// Resist is the attacking plane's resistance; 0 means 1.
	Resist float64
	// Cutin is the triggered anti-air cutin, if any.
	Cutin *Def
}

// ShootDown is the shoot-down distribution against one squadron.
type ShootDown struct {
	// Proportional is the fraction of the squadron shot down.
	Proportional float64 `json:"proportional"`
	// Fixed is the fixed number of planes shot down.
	Fixed int `json:"fixed"`
	// Minimum is the guaranteed shoot-down.
	Minimum int `json:"minimum"`
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// Calculate evaluates the proportional and fixed shoot-down of in.
func Calculate(in Input) ShootDown {
	resist := orOne(in.Resist)
	combined := orOne(in.Combined)
	side := playerSideModifier
	minimum := 1
	if in.Side == battle.Enemy {
		side = enemySideModifier
		minimum = 0
	}
	cutinMod := 1.0
	if in.Cutin != nil {
		cutinMod = in.Cutin.FixedModifier
		minimum = in.Cutin.MinBonus
	}

	adjusted := math.Floor(in.AdjustedAntiAir * resist)
	fleetAA := math.Floor(in.FleetAntiAir * resist)
	return ShootDown{
		Proportional: adjusted * combined * 0.5 * 0.25 * 0.02,
		Fixed:        int(math.Floor((adjusted + fleetAA) * 0.5 * 0.25 * side * combined * cutinMod)),
		Minimum:      minimum,
	}
}

// Sample draws one shoot-down against a squadron of slot planes. The
// proportional and fixed parts each apply with probability one half; the
// minimum always applies.
//
// Precondition: src must be non-nil.
// Postcondition: 0 <= result <= slot.
func (sd ShootDown) Sample(slot int, src roll.Source) int {
	total := sd.Minimum
	if roll.Chance(0.5, src) {
		total += int(math.Floor(float64(slot) * sd.Proportional))
	}
	if roll.Chance(0.5, src) {
		total += sd.Fixed
	}
	return min(max(total, 0), max(slot, 0))
}
