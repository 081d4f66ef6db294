package cutin

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// NightInput is the battle-level context of a night special attack roll.
type NightInput struct {
	Flagship         bool
	OwnSearchlight   bool
	EnemySearchlight bool
	OwnStarShell     bool
	EnemyStarShell   bool
}

// Night term modifiers.
const (
	nightFlagship         = 15
	nightChuuha           = 18
	nightOwnSearchlight   = 7
	nightEnemySearchlight = -5
	nightOwnStarShell     = 4
	nightEnemyStarShell   = -10
	nightSkilledLookouts  = 5
)

func submarineTypes(s *ship.Ship) []rules.NightAttack {
	late := s.Count(master.GearLateModelTorpedo)
	var out []rules.NightAttack
	if late >= 1 && s.Has(master.GearSubmarineRadar) {
		out = append(out, rules.NightSubLateTorpRadar)
	}
	if late >= 2 {
		out = append(out, rules.NightSubLateTorpTorp)
	}
	return out
}

func destroyerTypes(s *ship.Ship) []rules.NightAttack {
	main := s.Count(master.GearMainGun)
	torp := s.Count(master.GearTorpedo)
	radar := s.Has(master.GearSurfaceRadar)
	var out []rules.NightAttack
	if main >= 1 && torp >= 1 && radar {
		out = append(out, rules.NightDDMainTorpRadar)
	}
	if torp >= 1 && radar && s.Has(master.GearLookouts) {
		out = append(out, rules.NightDDTorpLookoutRadar)
	}
	return out
}

func commonTypes(s *ship.Ship) []rules.NightAttack {
	main := s.Count(master.GearMainGun)
	secondary := s.Count(master.GearSecondaryGun)
	torp := s.Count(master.GearTorpedo)
	var out []rules.NightAttack
	if main >= 3 {
		out = append(out, rules.NightMainMainMain)
	}
	if main == 2 && secondary >= 1 {
		out = append(out, rules.NightMainMainSecond)
	}
	if torp >= 2 {
		out = append(out, rules.NightTorpTorp)
	}
	if main >= 1 && torp >= 1 {
		out = append(out, rules.NightMainTorp)
	}
	if main >= 2 || (main >= 1 && secondary >= 1) || secondary >= 2 {
		out = append(out, rules.NightDoubleAttack)
	}
	return out
}

// CanAttackAtNight reports whether s takes part in the night battle.
// Carriers need the night carrier attribute.
func CanAttackAtNight(s *ship.Ship) bool {
	if s.DamageState() >= ship.Taiha {
		return false
	}
	return !s.IsCarrierShelling() || s.Is(master.ShipNightCarrier)
}

// NightTypes returns the night special attacks s is eligible for. The
// submarine and destroyer branches are exclusive with the common branch: a
// ship with any type of its own branch uses only that branch.
func NightTypes(s *ship.Ship) []rules.NightAttack {
	if !CanAttackAtNight(s) {
		return nil
	}
	if s.Is(master.ShipSubmarine) {
		if out := submarineTypes(s); len(out) > 0 {
			return out
		}
	}
	if s.Type == master.DD {
		if out := destroyerTypes(s); len(out) > 0 {
			return out
		}
	}
	return commonTypes(s)
}

// NightTerm returns the night special attack term of s.
func NightTerm(s *ship.Ship, in NightInput) float64 {
	luck := float64(max(s.Luck.Total(), 0))
	level := float64(s.Level)
	var term float64
	if luck < 50 {
		term = math.Floor(15 + luck + 0.75*math.Sqrt(level))
	} else {
		term = math.Floor(65 + math.Sqrt(luck-50) + 0.8*math.Sqrt(level))
	}
	if in.Flagship {
		term += nightFlagship
	}
	if s.DamageState() == ship.Chuuha {
		term += nightChuuha
	}
	if in.OwnSearchlight {
		term += nightOwnSearchlight
	}
	if in.EnemySearchlight {
		term += nightEnemySearchlight
	}
	if in.OwnStarShell {
		term += nightOwnStarShell
	}
	if in.EnemyStarShell {
		term += nightEnemyStarShell
	}
	if s.Has(master.GearSkilledLookouts) {
		term += nightSkilledLookouts
	}
	return term
}

// Night composes the night special attack rates of s.
//
// Precondition: set and s must be non-nil.
func Night(set *rules.Set, s *ship.Ship, in NightInput) *RateMap[rules.NightAttack] {
	term := NightTerm(s, in)
	var cands []Candidate[rules.NightAttack]
	for _, t := range NightTypes(s) {
		def, ok := set.NightSpecial(t)
		if !ok {
			continue
		}
		cands = append(cands, Candidate[rules.NightAttack]{
			Type:     t,
			Priority: def.Priority,
			Rate:     IndividualRate(term, def.BaseRate),
		})
	}
	return Compose(cands)
}
