package cutin

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// DayInput is the fleet-level context of a day special attack roll.
type DayInput struct {
	AirState fleet.AirState
	// FleetLos is the fleet LoS modifier of the attacker's fleet.
	FleetLos int
	Flagship bool
}

// flagshipSpottingBonus is added to the spotting term of a flagship.
const flagshipSpottingBonus = 15

func countAircraft(s *ship.Ship, a master.GearAttr) int {
	return s.Equipment.CountAircraft(func(g *gear.Gear) bool { return g.Is(a) })
}

// ArtilleryTypes returns the artillery spotting attacks s can perform, in
// table order. Spotting needs an observation seaplane with planes left.
func ArtilleryTypes(s *ship.Ship) []rules.DayAttack {
	if s.IsCarrierShelling() || !s.HasAircraft(master.GearObservationSeaplane) {
		return nil
	}
	main := s.Count(master.GearMainGun)
	secondary := s.Count(master.GearSecondaryGun)
	ap := s.Has(master.GearApShell)
	radar := s.Has(master.GearRadar)

	var out []rules.DayAttack
	if s.Class == master.ClassIse && main >= 1 {
		if countAircraft(s, master.GearZuiun) >= 2 {
			out = append(out, rules.DayZuiun)
		}
		if countAircraft(s, master.GearSuisei634) >= 2 {
			out = append(out, rules.DaySuisei)
		}
	}
	if main >= 2 && ap {
		out = append(out, rules.DayMainMain)
	}
	if main >= 1 && secondary >= 1 && ap {
		out = append(out, rules.DayMainApShell)
	}
	if main >= 1 && secondary >= 1 && radar {
		out = append(out, rules.DayMainRadar)
	}
	if main >= 1 && secondary >= 1 {
		out = append(out, rules.DayMainSecond)
	}
	if main >= 2 {
		out = append(out, rules.DayDoubleAttack)
	}
	return out
}

// CarrierTypes returns the carrier cutins s can perform, in table order.
func CarrierTypes(s *ship.Ship) []rules.DayAttack {
	if !s.IsCarrierShelling() {
		return nil
	}
	fighter := countAircraft(s, master.GearFighter) > 0
	dive := countAircraft(s, master.GearDiveBomber)
	torpedo := countAircraft(s, master.GearTorpedoBomber)

	var out []rules.DayAttack
	if fighter && dive >= 1 && torpedo >= 1 {
		out = append(out, rules.DayFBA)
	}
	if dive >= 2 && torpedo >= 1 {
		out = append(out, rules.DayBBA)
	}
	if dive >= 1 && torpedo >= 1 {
		out = append(out, rules.DayBA)
	}
	return out
}

// DayTypes returns every day special attack s is eligible for.
func DayTypes(s *ship.Ship) []rules.DayAttack {
	if s.IsCarrierShelling() {
		return CarrierTypes(s)
	}
	return ArtilleryTypes(s)
}

// SpottingTerm returns the day special attack term of s. Only air supremacy
// and superiority produce a term; other air states return 0.
func SpottingTerm(s *ship.Ship, in DayInput) float64 {
	luck := math.Floor(math.Sqrt(float64(max(s.Luck.Total(), 0))) + 10)
	gearLos := float64(s.Los.Equipment)
	fleetLos := float64(in.FleetLos)

	var term float64
	switch in.AirState {
	case fleet.AirSupremacy:
		term = math.Floor(luck + 10 + 0.7*(fleetLos+1.6*gearLos))
	case fleet.AirSuperiority:
		term = math.Floor(luck + 0.6*(fleetLos+1.2*gearLos))
	default:
		return 0
	}
	if in.Flagship {
		term += flagshipSpottingBonus
	}
	return term
}

// Day composes the day special attack rates of s.
//
// Precondition: set and s must be non-nil.
// Postcondition: the result is empty below air superiority or when s is
// heavily damaged.
func Day(set *rules.Set, s *ship.Ship, in DayInput) *RateMap[rules.DayAttack] {
	if s.DamageState() >= ship.Taiha {
		return NewRateMap[rules.DayAttack]()
	}
	term := SpottingTerm(s, in)
	if term <= 0 {
		return NewRateMap[rules.DayAttack]()
	}
	var cands []Candidate[rules.DayAttack]
	for _, t := range DayTypes(s) {
		def, ok := set.DaySpecial(t)
		if !ok {
			continue
		}
		cands = append(cands, Candidate[rules.DayAttack]{
			Type:     t,
			Priority: def.Priority,
			Rate:     IndividualRate(term, def.BaseRate),
		})
	}
	return Compose(cands)
}
