// Package ship composes master ship specifications, player state and
// equipment into live ships with displayed stats.
package ship

import "github.com/cory-johannsen/fleetcalc/internal/game/gear"

// Modernization holds the stat deltas a player has applied to a ship.
type Modernization struct {
	Firepower int `json:"firepower,omitempty"`
	Torpedo   int `json:"torpedo,omitempty"`
	AntiAir   int `json:"anti_air,omitempty"`
	Armor     int `json:"armor,omitempty"`
	Luck      int `json:"luck,omitempty"`
	MaxHP     int `json:"max_hp,omitempty"`
	Asw       int `json:"asw,omitempty"`
}

// State is the caller-supplied state of one ship. Zero Level means level 1;
// nil CurrentHP means full health; nil Morale means DefaultMorale.
type State struct {
	ShipID    int                         `json:"ship_id"`
	Level     int                         `json:"level,omitempty"`
	CurrentHP *int                        `json:"current_hp,omitempty"`
	Morale    *int                        `json:"morale,omitempty"`
	Mod       Modernization               `json:"mod,omitempty"`
	Gears     map[gear.SlotKey]gear.State `json:"gears,omitempty"`
	SlotSizes map[gear.SlotKey]int        `json:"slot_sizes,omitempty"`
}
