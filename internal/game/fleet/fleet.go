// Package fleet aggregates ships and land-based air groups into fleets and
// plans and computes fleet-level figures.
package fleet

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// MaxShips is the number of ship positions in a fleet.
const MaxShips = 7

// ShipKey identifies a ship position: s1..s7.
type ShipKey string

// ShipKeyAt returns the key of the zero-based position i.
func ShipKeyAt(i int) ShipKey { return ShipKey(fmt.Sprintf("s%d", i+1)) }

// State maps ship positions to ship states.
type State map[ShipKey]ship.State

// Entry is one occupied fleet position.
type Entry struct {
	Key   ShipKey
	Index int
	Ship  *ship.Ship
}

// Fleet is an ordered set of optional ships.
type Fleet struct {
	ships [MaxShips]*ship.Ship
}

// New builds a fleet from composed ships. Keys outside s1..s7 are ignored.
func New(ships map[ShipKey]*ship.Ship) *Fleet {
	f := &Fleet{}
	for i := range f.ships {
		f.ships[i] = ships[ShipKeyAt(i)]
	}
	return f
}

// Compose composes every ship in st. Unknown ship ids leave their position
// empty.
//
// Precondition: c must be non-nil.
func Compose(c *ship.Composer, st State) *Fleet {
	ships := make(map[ShipKey]*ship.Ship, len(st))
	for key, ss := range st {
		if s, ok := c.Ship(ss); ok {
			ships[key] = s
		}
	}
	return New(ships)
}

// Ship returns the ship at key, nil when empty.
func (f *Fleet) Ship(key ShipKey) *ship.Ship {
	for i := range f.ships {
		if ShipKeyAt(i) == key {
			return f.ships[i]
		}
	}
	return nil
}

// Entries returns the occupied positions in order.
func (f *Fleet) Entries() []Entry {
	var out []Entry
	for i, s := range f.ships {
		if s != nil {
			out = append(out, Entry{Key: ShipKeyAt(i), Index: i, Ship: s})
		}
	}
	return out
}

// Ships returns the occupied ships in order.
func (f *Fleet) Ships() []*ship.Ship {
	var out []*ship.Ship
	for _, s := range f.ships {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of occupied positions.
func (f *Fleet) Len() int { return len(f.Ships()) }

// Flagship returns the first occupied ship, nil for an empty fleet.
func (f *Fleet) Flagship() *ship.Ship {
	for _, s := range f.ships {
		if s != nil {
			return s
		}
	}
	return nil
}

// State returns the state that reproduces f.
func (f *Fleet) State() State {
	st := make(State)
	for _, e := range f.Entries() {
		st[e.Key] = e.Ship.State()
	}
	return st
}

// SpottingLos returns the fleet line of sight used for artillery spotting:
// the sum of naked LoS plus, for every observation seaplane with planes
// remaining, LoS * floor(sqrt(slot)).
func (f *Fleet) SpottingLos() int {
	total := 0
	for _, s := range f.Ships() {
		total += s.NakedLos()
		total += int(s.Equipment.SumAircraft(func(g *gear.Gear, size int) float64 {
			if !g.Is(master.GearObservationSeaplane) {
				return 0
			}
			return float64(g.Los) * math.Floor(math.Sqrt(float64(size)))
		}))
	}
	return total
}

// LosModifier returns floor(sqrt(L) + L/10) with L = SpottingLos.
func (f *Fleet) LosModifier() int {
	l := float64(f.SpottingLos())
	return int(math.Floor(math.Sqrt(l) + l/10))
}

// FighterPower sums the sortie air power of every ship.
func (f *Fleet) FighterPower() int {
	total := 0
	for _, s := range f.Ships() {
		total += s.Equipment.FighterPower()
	}
	return total
}

// AntiAir returns the fleet anti-air value:
// floor(formationMultiplier * sum of per-ship contributions), scaled by
// 2/1.3 for own fleets and 2 for enemy fleets.
func (f *Fleet) AntiAir(formationMultiplier float64, enemy bool) float64 {
	sum := 0
	for _, s := range f.Ships() {
		sum += s.FleetAntiAirContribution()
	}
	base := math.Floor(formationMultiplier * float64(sum))
	if enemy {
		return base * 2
	}
	return base * 2 / 1.3
}

// losCoefficient returns the formula 33 gear coefficient.
func losCoefficient(g *gear.Gear) float64 {
	switch {
	case g.Category.Is(master.CbTorpedoBomber, master.JetTorpedoBomber):
		return 0.8
	case g.Category.Is(master.CbRecon, master.CbReconII, master.JetRecon):
		return 1
	case g.Category == master.ReconSeaplane:
		return 1.2
	case g.Category == master.SeaplaneBomber:
		return 1.1
	}
	return 0.6
}

// EffectiveLos returns the formula 33 line of sight with node factor cn:
// sum sqrt(naked LoS) + cn * sum coef * (LoS + improvement)
// - ceil(0.4 * hqLevel) + 2 * (6 - ships).
func (f *Fleet) EffectiveLos(cn float64, hqLevel int) float64 {
	var shipTerm, gearTerm float64
	ships := f.Ships()
	for _, s := range ships {
		shipTerm += math.Sqrt(float64(s.NakedLos()))
		gearTerm += s.Equipment.Sum(func(g *gear.Gear) float64 {
			if g.Los == 0 {
				return 0
			}
			return losCoefficient(g) * (float64(g.Los) + g.Bonus(improvement.EffectiveLos))
		})
	}
	hq := math.Ceil(0.4 * float64(hqLevel))
	return shipTerm + cn*gearTerm - hq + 2*float64(6-len(ships))
}
