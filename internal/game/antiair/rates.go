package antiair

import (
	"github.com/cory-johannsen/fleetcalc/internal/game/cutin"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// ShipRates composes the anti-air cutin rates of s. Special cutins are
// composed first; normal cutins share what the specials leave.
//
// Postcondition: result.Total() <= 1.
func ShipRates(s *ship.Ship) *cutin.RateMap[int] {
	var special, normal []cutin.Candidate[int]
	for _, id := range Eligible(s) {
		d, ok := Lookup(id)
		if !ok {
			continue
		}
		c := cutin.Candidate[int]{Type: id, Rate: d.BaseRate}
		if d.Special {
			special = append(special, c)
		} else {
			normal = append(normal, c)
		}
	}
	sp := cutin.Compose(special)
	nm := cutin.Compose(normal).Scale(sp.Complement())

	out := cutin.NewRateMap[int]()
	for _, e := range sp.Entries() {
		out.Add(e.Type, e.Rate)
	}
	for _, e := range nm.Entries() {
		out.Add(e.Type, e.Rate)
	}
	return out
}

// FleetRates combines the per-ship rates of every ship in f. A cutin with a
// higher id preempts every lower one.
//
// Precondition: f must be non-nil.
func FleetRates(f *fleet.Fleet) *cutin.RateMap[int] {
	var maps []*cutin.RateMap[int]
	for _, s := range f.Ships() {
		maps = append(maps, ShipRates(s))
	}
	return cutin.ComposeFleet(maps)
}
