package cutin

import (
	"cmp"
	"math"
	"slices"

	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// ContactTriggerRate returns min((Σ trigger factors + 1) / denominator, 1)
// over every plane of f, or 0 when contact cannot trigger.
func ContactTriggerRate(f *fleet.Fleet, state fleet.AirState) float64 {
	denom := state.ContactTriggerDenominator()
	if denom == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range f.Ships() {
		sum += s.Equipment.SumAircraft(func(g *gear.Gear, size int) float64 {
			return g.ContactTriggerFactor(size)
		})
	}
	if sum == 0 {
		return 0
	}
	return min((sum+1)/denom, 1)
}

// Contact composes the contact rate map of f keyed by the air-strike power
// multiplier of the selected plane. Selection visits planes by descending
// accuracy and each plane takes complement * its selection rate; the whole
// map is scaled by the trigger rate.
//
// Precondition: f must be non-nil.
func Contact(f *fleet.Fleet, state fleet.AirState) *RateMap[float64] {
	trigger := ContactTriggerRate(f, state)
	if trigger == 0 {
		return NewRateMap[float64]()
	}
	var planes []*gear.Gear
	for _, s := range f.Ships() {
		for _, it := range s.Equipment.Items() {
			if it.Gear != nil && it.CurrentSize > 0 && it.Gear.CanBeSelectedForContact() {
				planes = append(planes, it.Gear)
			}
		}
	}
	slices.SortStableFunc(planes, func(a, b *gear.Gear) int { return cmp.Compare(b.Accuracy, a.Accuracy) })

	divisor := state.ContactSelectionDivisor()
	cands := make([]Candidate[float64], 0, len(planes))
	for _, g := range planes {
		cands = append(cands, Candidate[float64]{Type: g.ContactMultiplier(), Rate: g.ContactSelectionRate(divisor)})
	}
	return Compose(cands).Scale(trigger)
}

// NightContactRate returns the chance that a night reconnaissance plane of f
// makes contact. Each carried night recon plane triggers independently with
// min(floor(sqrt(los * level)) / 25, 1); no plane triggers under air
// incapability.
//
// Precondition: f must be non-nil.
func NightContactRate(f *fleet.Fleet, state fleet.AirState) float64 {
	if state == fleet.AirIncapability {
		return 0
	}
	miss := 1.0
	for _, s := range f.Ships() {
		for _, it := range s.Equipment.Items() {
			if it.Gear == nil || it.CurrentSize <= 0 || !it.Gear.Is(master.GearNightRecon) {
				continue
			}
			r := math.Floor(math.Sqrt(float64(it.Gear.Los*s.Level))) / 25
			miss *= 1 - min(r, 1)
		}
	}
	return 1 - miss
}
