// Package battle holds the attack-power and hit-rate pipelines and the
// per-phase calculators that feed them from composed ships.
package battle

import (
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// Side distinguishes the player from the enemy.
type Side int

const (
	Player Side = iota
	Enemy
)

func (s Side) String() string {
	if s == Enemy {
		return "enemy"
	}
	return "player"
}

// FleetType is the kind of fleet a ship sorties in.
type FleetType int

const (
	Single FleetType = iota
	CarrierTaskForce
	SurfaceTaskForce
	TransportEscort
	// EnemyCombined is any combined fleet on the enemy side.
	EnemyCombined
)

var fleetTypeNames = [...]string{"single", "carrier_task_force", "surface_task_force", "transport_escort", "enemy_combined"}

func (t FleetType) String() string {
	if int(t) < len(fleetTypeNames) {
		return fleetTypeNames[t]
	}
	return "unknown"
}

// ParseFleetType resolves a fleet type key.
func ParseFleetType(s string) (FleetType, bool) {
	for i, n := range fleetTypeNames {
		if n == s {
			return FleetType(i), true
		}
	}
	return Single, false
}

// Combined reports whether t is a combined fleet.
func (t FleetType) Combined() bool { return t != Single }

// Role is a ship's place within a combined fleet.
type Role int

const (
	Main Role = iota
	Escort
)

func (r Role) String() string {
	if r == Escort {
		return "escort"
	}
	return "main"
}

// Engagement is the relative heading of the two fleets.
type Engagement int

const (
	Parallel Engagement = iota
	HeadOn
	TAdvantage
	TDisadvantage
)

var engagementNames = [...]string{"parallel", "head_on", "t_advantage", "t_disadvantage"}

func (e Engagement) String() string {
	if int(e) < len(engagementNames) {
		return engagementNames[e]
	}
	return "unknown"
}

// ParseEngagement resolves an engagement key.
func ParseEngagement(s string) (Engagement, bool) {
	for i, n := range engagementNames {
		if n == s {
			return Engagement(i), true
		}
	}
	return Parallel, false
}

// Modifier returns the pre-cap power multiplier of the engagement.
func (e Engagement) Modifier() float64 {
	switch e {
	case HeadOn:
		return 0.8
	case TAdvantage:
		return 1.2
	case TDisadvantage:
		return 0.6
	default:
		return 1
	}
}

// Position describes where a ship sits in its fleet.
type Position struct {
	Side      Side
	FleetType FleetType
	Role      Role
	Index     int
	FleetSize int
}

// Flagship reports whether the ship leads its fleet.
func (p Position) Flagship() bool { return p.Index == 0 }

// TopHalf reports whether the ship is in the first half of its fleet,
// rounding the midpoint towards the top.
func (p Position) TopHalf() bool { return p.Index < (p.FleetSize+1)/2 }

// Combatant is a ship placed in a fleet with its formation.
type Combatant struct {
	Ship      *ship.Ship
	Position  Position
	Formation rules.Formation
}

// FleetSpec is the battle-level description of one fleet.
type FleetSpec struct {
	Side      Side
	Type      FleetType
	Role      Role
	Formation rules.Formation
}

// Combatants places every ship of f according to spec. Index counts only
// occupied positions.
//
// Precondition: f must be non-nil.
// Postcondition: len(result) == f.Len().
func Combatants(f *fleet.Fleet, spec FleetSpec) []Combatant {
	ships := f.Ships()
	out := make([]Combatant, 0, len(ships))
	for i, s := range ships {
		out = append(out, Combatant{
			Ship: s,
			Position: Position{
				Side:      spec.Side,
				FleetType: spec.Type,
				Role:      spec.Role,
				Index:     i,
				FleetSize: len(ships),
			},
			Formation: spec.Formation,
		})
	}
	return out
}

var neutral = rules.Modifiers{Power: 1, Accuracy: 1, Evasion: 1}

// Phases returns the formation modifiers that apply to c, falling back to
// neutral modifiers for an unknown formation.
//
// Precondition: set must be non-nil.
func (c Combatant) Phases(set *rules.Set) rules.PhaseModifiers {
	d, ok := set.Formation(c.Formation)
	if !ok {
		return rules.PhaseModifiers{Shelling: neutral, Torpedo: neutral, Night: neutral, Asw: neutral}
	}
	return d.For(c.Position.TopHalf())
}
