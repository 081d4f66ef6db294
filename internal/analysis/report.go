package analysis

import (
	"github.com/cory-johannsen/fleetcalc/internal/game/antiair"
	"github.com/cory-johannsen/fleetcalc/internal/game/battle"
	"github.com/cory-johannsen/fleetcalc/internal/game/cutin"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
)

// Stats are the displayed stats of one ship.
type Stats struct {
	HP        int `json:"hp"`
	Firepower int `json:"firepower"`
	Torpedo   int `json:"torpedo"`
	AntiAir   int `json:"anti_air"`
	Armor     int `json:"armor"`
	Asw       int `json:"asw"`
	Los       int `json:"los"`
	Evasion   int `json:"evasion"`
	Luck      int `json:"luck"`
	Accuracy  int `json:"accuracy"`
	Speed     int `json:"speed"`
	Range     int `json:"range"`
}

// SpecialAttack is one special attack a ship can roll with its evaluated
// attack.
type SpecialAttack[T ~string] struct {
	Type   T             `json:"type"`
	Rate   float64       `json:"rate"`
	Attack battle.Attack `json:"attack"`
}

// CutinShootDown is the shoot-down of a ship when cutin ID fires.
type CutinShootDown struct {
	ID   int     `json:"id"`
	Rate float64 `json:"rate"`
	antiair.ShootDown
}

// ShootDownReport is the shoot-down a ship inflicts on one enemy squadron.
// Cutin is the most likely anti-air cutin, nil when none can fire.
type ShootDownReport struct {
	Base  antiair.ShootDown `json:"base"`
	Cutin *CutinShootDown   `json:"cutin,omitempty"`
}

// ShipReport is the analysis of one ship. Attack sections are nil when the
// phase does not apply against the target.
type ShipReport struct {
	Key         string         `json:"key"`
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Level       int            `json:"level"`
	Stats       Stats          `json:"stats"`
	DamageState string         `json:"damage_state"`
	Morale      int            `json:"morale"`
	Invalid     []gear.SlotKey `json:"invalid_slots,omitempty"`
	MapBonus    float64        `json:"map_bonus,omitempty"`

	FighterPower    int             `json:"fighter_power"`
	AdjustedAntiAir float64         `json:"adjusted_anti_air"`
	ShootDown       ShootDownReport `json:"shoot_down"`

	Shelling *battle.Attack `json:"shelling,omitempty"`
	Torpedo  *battle.Attack `json:"torpedo,omitempty"`
	Night    *battle.Attack `json:"night,omitempty"`
	Asw      *battle.Attack `json:"asw,omitempty"`

	DayCutins     *cutin.RateMap[rules.DayAttack]    `json:"day_cutins"`
	NightCutins   *cutin.RateMap[rules.NightAttack]  `json:"night_cutins"`
	DaySpecials   []SpecialAttack[rules.DayAttack]   `json:"day_specials,omitempty"`
	NightSpecials []SpecialAttack[rules.NightAttack] `json:"night_specials,omitempty"`
	AntiAirCutins *cutin.RateMap[int]                `json:"anti_air_cutins"`
}

// FleetReport aggregates the analysed fleet.
type FleetReport struct {
	Key            string  `json:"key"`
	Formation      string  `json:"formation"`
	Engagement     string  `json:"engagement"`
	AirState       string  `json:"air_state"`
	FighterPower   int     `json:"fighter_power"`
	AntiAir        float64 `json:"anti_air"`
	LosModifier    int     `json:"los_modifier"`
	EffectiveLos   float64 `json:"effective_los"`
	ContactTrigger float64 `json:"contact_trigger"`
	NightContact   float64 `json:"night_contact"`

	Contact       *cutin.RateMap[float64] `json:"contact"`
	AntiAirCutins *cutin.RateMap[int]     `json:"anti_air_cutins"`
}

// AirbaseReport is the analysis of one land-based air group.
type AirbaseReport struct {
	Key             string `json:"key"`
	Mode            string `json:"mode"`
	FighterPower    int    `json:"fighter_power"`
	AirDefensePower int    `json:"air_defense_power"`
	Radius          int    `json:"radius"`
}

// TargetReport names the defender the attack sections were evaluated
// against.
type TargetReport struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Formation string `json:"formation"`
}

// Report is the full analysis of one plan request.
type Report struct {
	Plan     string          `json:"plan,omitempty"`
	Fleet    FleetReport     `json:"fleet"`
	Target   *TargetReport   `json:"target,omitempty"`
	Ships    []ShipReport    `json:"ships"`
	Airbases []AirbaseReport `json:"airbases,omitempty"`
}
