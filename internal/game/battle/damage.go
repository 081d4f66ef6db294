package battle

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// DamageRange is the span of damage one hit can deal. Scratch is set when
// the weakest roll falls to zero or below, which the game replaces with
// scratch damage.
type DamageRange struct {
	Min     int  `json:"min"`
	Max     int  `json:"max"`
	Scratch bool `json:"scratch"`
}

// DamageRangeOf returns the damage range of power against the defender's
// effective armor. The armor roll spans [0.7a, 0.7a + 0.6(a-1)].
//
// Precondition: def must be non-nil.
// Postcondition: 0 <= Min <= Max.
func DamageRangeOf(power float64, def *ship.Ship, ammo float64) DamageRange {
	armor := float64(def.Armor.Total()) + def.ImprovementBonus(improvement.DefensePower)
	return DamageRangeFor(power, armor, ammo)
}

// DamageRangeFor is DamageRangeOf over a raw armor value. Zero ammo means 1.
func DamageRangeFor(power, armor, ammo float64) DamageRange {
	if ammo == 0 {
		ammo = 1
	}
	minDef := 0.7 * armor
	maxDef := minDef + 0.6*math.Max(armor-1, 0)
	hi := int(math.Floor((power - minDef) * ammo))
	lo := int(math.Floor((power - maxDef) * ammo))
	return DamageRange{
		Min:     max(lo, 0),
		Max:     max(hi, 0),
		Scratch: lo <= 0,
	}
}
