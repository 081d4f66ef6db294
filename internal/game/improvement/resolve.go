package improvement

import (
	"fmt"

	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// Table maps each bonus kind to its formula. Kinds without a bonus are absent.
type Table map[Kind]*Formula

// Bonuses is a Table evaluated at a star level.
type Bonuses map[Kind]float64

// Get returns the bonus for k, 0 when absent.
func (b Bonuses) Get(k Kind) float64 { return b[k] }

// At evaluates every formula in t at stars.
//
// Postcondition: the result holds an entry for every kind present in t.
func (t Table) At(stars int) Bonuses {
	out := make(Bonuses, len(t))
	for k, f := range t {
		out[k] = Apply(f, stars)
	}
	return out
}

// chainRule is one link of a predicate chain. The first matching link of a
// chain decides the formula.
type chainRule struct {
	match   func(g *master.MasterGear) bool
	formula *Formula
}

func cat(cs ...master.Category) func(g *master.MasterGear) bool {
	return func(g *master.MasterGear) bool { return g.Category.Is(cs...) }
}

func attr(a master.GearAttr) func(g *master.MasterGear) bool {
	return func(g *master.MasterGear) bool { return g.Is(a) }
}

func attrAny(as ...master.GearAttr) func(g *master.MasterGear) bool {
	return func(g *master.MasterGear) bool {
		for _, a := range as {
			if g.Is(a) {
				return true
			}
		}
		return false
	}
}

var chains = map[Kind][]chainRule{
	ContactSelection: {
		{cat(master.ReconSeaplane, master.LargeFlyingBoat), sqrt(0.14)},
		{cat(master.CbRecon, master.CbReconII, master.JetRecon), sqrt(0.25)},
	},
	FighterPower: {
		{attr(master.GearFighter), linear(0.2)},
		{func(g *master.MasterGear) bool {
			return g.Category == master.CbDiveBomber && g.AntiAir > 0
		}, linear(0.25)},
		{cat(master.LandBasedAttackAircraft, master.HeavyBomber), sqrt(0.5)},
	},
	AdjustedAntiAir: {
		{func(g *master.MasterGear) bool { return g.Is(master.GearAntiAirGun) && g.AntiAir >= 8 }, sqrt(3)},
		{attr(master.GearAntiAirGun), sqrt(2)},
		{func(g *master.MasterGear) bool {
			return (g.Is(master.GearHighAngleMount) || g.Is(master.GearFireDirector)) && g.AntiAir >= 8
		}, sqrt(1.5)},
		{attrAny(master.GearHighAngleMount, master.GearFireDirector), sqrt(1)},
	},
	FleetAntiAir: {
		{func(g *master.MasterGear) bool {
			return (g.Is(master.GearHighAngleMount) || g.Is(master.GearFireDirector)) && g.AntiAir >= 8
		}, sqrt(3)},
		{attrAny(master.GearHighAngleMount, master.GearFireDirector), sqrt(2)},
		{attr(master.GearAirRadar), sqrt(1.5)},
	},
	ShellingPower: {
		{cat(master.CbTorpedoBomber), linear(0.2)},
		{cat(master.CbDiveBomber), linear(0.2)},
		{func(g *master.MasterGear) bool {
			return g.Category == master.SecondaryGun && g.Is(master.GearHighAngleMount)
		}, linear(0.2)},
		{func(g *master.MasterGear) bool { return g.Firepower > 12 }, sqrt(1.5)},
		{attrAny(master.GearMainGun, master.GearSecondaryGun, master.GearApShell, master.GearFireDirector,
			master.GearSearchlight, master.GearAntiAirGun, master.GearSonar, master.GearDepthCharge,
			master.GearDepthChargeProjector), sqrt(1)},
	},
	ShellingAccuracy: {
		{attr(master.GearSurfaceRadar), sqrt(1.7)},
		{attr(master.GearRadar), sqrt(1)},
		{attrAny(master.GearMainGun, master.GearSecondaryGun, master.GearApShell, master.GearAntiAirShell), sqrt(1)},
	},
	TorpedoPower: {
		{attrAny(master.GearTorpedo, master.GearAntiAirGun), sqrt(1.2)},
	},
	TorpedoAccuracy: {
		{attr(master.GearTorpedo), sqrt(2)},
	},
	TorpedoEvasion: {
		{attr(master.GearSonar), sqrt(1.5)},
	},
	NightPower: {
		{attrAny(master.GearMainGun, master.GearSecondaryGun, master.GearTorpedo, master.GearApShell,
			master.GearSearchlight, master.GearFireDirector, master.GearAntiAirGun), sqrt(1)},
	},
	NightAccuracy: {
		{attr(master.GearSurfaceRadar), sqrt(1.6)},
		{attrAny(master.GearMainGun, master.GearSecondaryGun), sqrt(1.3)},
	},
	AswPower: {
		{attrAny(master.GearSonar, master.GearDepthCharge, master.GearDepthChargeProjector), sqrt(2.0 / 3)},
	},
	AswAccuracy: {
		{attr(master.GearSonar), sqrt(1.3)},
	},
	DefensePower: {
		{cat(master.ExtraArmorMedium), linear(0.2)},
		{cat(master.ExtraArmorLarge), linear(0.3)},
	},
	EffectiveLos: {
		{cat(master.LargeRadar, master.LargeRadarII), sqrt(1.4)},
		{attr(master.GearRadar), sqrt(1.25)},
		{cat(master.ReconSeaplane), sqrt(1.2)},
		{cat(master.SeaplaneBomber), sqrt(1.15)},
		{cat(master.CbRecon, master.CbReconII), sqrt(1.2)},
	},
}

// Resolve runs every predicate chain against g.
//
// Precondition: g must be non-nil.
// Postcondition: the result holds one entry per kind whose chain matched.
func Resolve(g *master.MasterGear) Table {
	out := make(Table)
	for kind, chain := range chains {
		for _, rule := range chain {
			if rule.match(g) {
				out[kind] = rule.formula
				break
			}
		}
	}
	return out
}

// Resolver resolves formulas with per-gear overrides taking precedence over the
// built-in chains.
type Resolver struct {
	overrides map[int]Table
}

// NewResolver builds a Resolver from serialised overrides keyed by gear id and
// bonus kind.
//
// Postcondition: Returns an error naming the first unknown kind or shape.
func NewResolver(overrides map[int]map[string]master.FormulaRecord) (*Resolver, error) {
	r := &Resolver{overrides: make(map[int]Table, len(overrides))}
	for gearID, byKind := range overrides {
		t := make(Table, len(byKind))
		for key, rec := range byKind {
			kind, ok := ParseKind(key)
			if !ok {
				return nil, fmt.Errorf("improvement override for gear %d: unknown kind %q", gearID, key)
			}
			f, err := FromRecord(rec)
			if err != nil {
				return nil, fmt.Errorf("improvement override for gear %d %s: %w", gearID, key, err)
			}
			t[kind] = f
		}
		r.overrides[gearID] = t
	}
	return r, nil
}

// Resolve returns the formula table for g. Override entries replace the chain
// result kind by kind; a zero multiplier override removes the bonus.
//
// Precondition: g must be non-nil.
func (r *Resolver) Resolve(g *master.MasterGear) Table {
	t := Resolve(g)
	if r == nil {
		return t
	}
	for kind, f := range r.overrides[g.ID] {
		if f.Multiplier == 0 {
			delete(t, kind)
			continue
		}
		t[kind] = f
	}
	return t
}
