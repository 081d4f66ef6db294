package battle

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// Critical rate multipliers per phase.
const (
	shellingCritical = 1.3
	torpedoCritical  = 1.5
	nightCritical    = 1.5
	aswCritical      = 1.1
)

// Formula constants.
const (
	nightContactPower    = 5
	starShellAccuracy    = 5
	searchlightAccuracy  = 7
	nightAccuracyBase    = 69
	torpedoAccuracyBase  = 85
	aswAccuracyBase      = 80
	shellingPowerBase    = 5
	carrierAirPowerBase  = 15
	depthChargeConstant  = 13
	aswAircraftConstant  = 8
	sonarDepthSynergy    = 1.15
	depthChargePairBonus = 1.1
)

// ApShellModifiers returns the armor-piercing shell power and accuracy
// multipliers of s. A ship needs both a main gun and an AP shell; a
// secondary gun and a radar each raise the multipliers.
func ApShellModifiers(s *ship.Ship) (power, accuracy float64) {
	if !s.Has(master.GearMainGun) || !s.Has(master.GearApShell) {
		return 1, 1
	}
	secondary := s.Has(master.GearSecondaryGun)
	radar := s.Has(master.GearRadar)
	switch {
	case secondary && radar:
		return 1.15, 1.3
	case secondary:
		return 1.15, 1.2
	case radar:
		return 1.1, 1.25
	default:
		return 1.08, 1.1
	}
}

// ApShellApplies reports whether AP shell multipliers apply against s.
func ApShellApplies(s *ship.Ship) bool {
	return s.Is(master.ShipBattleship) || s.Is(master.ShipCarrier) ||
		s.Is(master.ShipInstallation) || s.Type.Is(master.CA, master.CAV)
}

// Options carry the per-attack switches of a calculator call.
type Options struct {
	// Special is the special attack being evaluated; nil for a normal attack.
	Special *rules.SpecialDef
	// MapBonus is a post-cap multiplier; 0 means none.
	MapBonus float64
	// Ammo scales damage; 0 means 1.
	Ammo float64

	Contact     bool
	StarShell   bool
	Searchlight bool
}

func (o Options) postcap() (a5, a6 *Affine) {
	if o.Special != nil {
		a5 = Scale(o.Special.Power)
	}
	if o.MapBonus != 0 {
		a6 = Scale(o.MapBonus)
	}
	return a5, a6
}

func (o Options) specialAccuracy() float64 {
	if o.Special == nil || o.Special.Accuracy == 0 {
		return 1
	}
	return o.Special.Accuracy
}

// Attack is the evaluated power, hit distribution and damage of one attack.
type Attack struct {
	Power  AttackPowerResult `json:"power"`
	Hit    HitRateResult     `json:"hit"`
	Damage DamageRange       `json:"damage"`
}

// Calculator evaluates attacks under one rule set and engagement.
type Calculator struct {
	Rules      *rules.Set
	Engagement Engagement
}

// NewCalculator returns a Calculator over set, using rules.Default when set
// is nil.
func NewCalculator(set *rules.Set, e Engagement) *Calculator {
	if set == nil {
		set = rules.Default()
	}
	return &Calculator{Rules: set, Engagement: e}
}

func levelLuckTerm(s *ship.Ship) float64 {
	return 2*math.Sqrt(float64(s.Level)) + 1.5*math.Sqrt(float64(max(s.Luck.Total(), 0)))
}

func (c *Calculator) evasion(def Combatant, pick func(rules.PhaseModifiers) rules.Modifiers, extra float64) float64 {
	raw := (float64(def.Ship.Evasion.Total()) + extra) * pick(def.Phases(c.Rules)).Evasion
	return EvasionTerm(raw)
}

// Shelling evaluates a day shelling attack from att on def. Carriers and
// carrier-like oilers use the carrier shelling formula.
//
// Precondition: att.Ship and def.Ship must be non-nil.
func (c *Calculator) Shelling(att, def Combatant, opt Options) Attack {
	s := att.Ship
	ff := FleetFactorsFor(att.Position, def.Position.FleetType)
	ph := att.Phases(c.Rules).Shelling

	basic := float64(s.Firepower.Total()) + s.ImprovementBonus(improvement.ShellingPower) + ff.ShellingPower + shellingPowerBase
	m := Modifiers{
		A12:     Scale(ph.Power),
		A13:     Scale(c.Engagement.Modifier()),
		A13Next: Scale(s.DamageState().ShellingModifier()),
	}
	if s.IsCarrierShelling() {
		bombing := s.Equipment.SumAircraft(func(g *gear.Gear, _ int) float64 { return float64(g.Bombing) })
		air := float64(s.Torpedo.Total()) + math.Floor(bombing*1.3) + carrierAirPowerBase
		m.AirPower = &air
		m.ProficiencyCritical = s.Equipment.ProficiencyCriticalModifier()
	}
	m.A5, m.A6 = opt.postcap()

	apAccuracy := 1.0
	if ApShellApplies(def.Ship) {
		var apPower float64
		apPower, apAccuracy = ApShellModifiers(s)
		if apPower != 1 {
			m.ApShell = apPower
		}
	}

	acc := math.Floor((ff.ShellingAccuracy + levelLuckTerm(s) + float64(s.Accuracy.Total()) +
		s.ImprovementBonus(improvement.ShellingAccuracy)) *
		ph.Accuracy * s.MoraleState().AccuracyModifier() * apAccuracy * opt.specialAccuracy())

	power := AttackPower(basic, ShellingCap, m)
	return Attack{
		Power: power,
		Hit: HitRate(HitRateParams{
			AccuracyTerm:           acc,
			EvasionTerm:            c.evasion(def, func(p rules.PhaseModifiers) rules.Modifiers { return p.Shelling }, 0),
			MoraleModifier:         def.Ship.MoraleState().DefenderModifier(),
			CriticalRateMultiplier: shellingCritical,
		}),
		Damage: DamageRangeOf(power.Normal, def.Ship, opt.Ammo),
	}
}

// Torpedo evaluates a closing torpedo attack from att on def.
//
// Precondition: att.Ship and def.Ship must be non-nil.
func (c *Calculator) Torpedo(att, def Combatant, opt Options) Attack {
	s := att.Ship
	ff := FleetFactorsFor(att.Position, def.Position.FleetType)
	ph := att.Phases(c.Rules).Torpedo

	basic := float64(s.Torpedo.Total()) + s.ImprovementBonus(improvement.TorpedoPower) + ff.TorpedoPower
	m := Modifiers{
		A12:     Scale(ph.Power),
		A13:     Scale(c.Engagement.Modifier()),
		A13Next: Scale(s.DamageState().TorpedoModifier()),
	}
	m.A5, m.A6 = opt.postcap()

	acc := math.Floor((torpedoAccuracyBase + levelLuckTerm(s) + math.Floor(float64(s.Torpedo.Equipment)*0.2) +
		s.ImprovementBonus(improvement.TorpedoAccuracy)) *
		ph.Accuracy * s.MoraleState().AccuracyModifier())

	evasionBonus := def.Ship.ImprovementBonus(improvement.TorpedoEvasion)
	power := AttackPower(basic, TorpedoCap, m)
	return Attack{
		Power: power,
		Hit: HitRate(HitRateParams{
			AccuracyTerm:           acc,
			EvasionTerm:            c.evasion(def, func(p rules.PhaseModifiers) rules.Modifiers { return p.Torpedo }, evasionBonus),
			MoraleModifier:         def.Ship.MoraleState().DefenderModifier(),
			CriticalRateMultiplier: torpedoCritical,
		}),
		Damage: DamageRangeOf(power.Normal, def.Ship, opt.Ammo),
	}
}

// Night evaluates a night battle attack from att on def. Engagement does
// not apply at night.
//
// Precondition: att.Ship and def.Ship must be non-nil.
func (c *Calculator) Night(att, def Combatant, opt Options) Attack {
	s := att.Ship
	ph := att.Phases(c.Rules).Night

	basic := float64(s.Firepower.Total()+s.Torpedo.Total()) + s.ImprovementBonus(improvement.NightPower)
	if opt.Contact {
		basic += nightContactPower
	}
	m := Modifiers{
		A12:     Scale(ph.Power),
		A13Next: Scale(s.DamageState().NightModifier()),
	}
	m.A5, m.A6 = opt.postcap()

	base := nightAccuracyBase + levelLuckTerm(s) + float64(s.Accuracy.Total()) + s.ImprovementBonus(improvement.NightAccuracy)
	if opt.StarShell {
		base += starShellAccuracy
	}
	if opt.Searchlight {
		base += searchlightAccuracy
	}
	acc := math.Floor(base * ph.Accuracy * s.MoraleState().AccuracyModifier() * opt.specialAccuracy())

	power := AttackPower(basic, NightCap, m)
	return Attack{
		Power: power,
		Hit: HitRate(HitRateParams{
			AccuracyTerm:           acc,
			EvasionTerm:            c.evasion(def, func(p rules.PhaseModifiers) rules.Modifiers { return p.Night }, 0),
			MoraleModifier:         def.Ship.MoraleState().DefenderModifier(),
			CriticalRateMultiplier: nightCritical,
		}),
		Damage: DamageRangeOf(power.Normal, def.Ship, opt.Ammo),
	}
}

// UsesAswAircraft reports whether s attacks submarines with aircraft rather
// than depth charges.
func UsesAswAircraft(s *ship.Ship) bool {
	return s.IsCarrierShelling() || s.Type.Is(master.CVL, master.AV, master.CAV, master.BBV, master.LHA)
}

// AswSynergy returns the anti-submarine equipment synergy multiplier of s.
func AswSynergy(s *ship.Ship) float64 {
	dc := s.Has(master.GearDepthCharge)
	dcp := s.Has(master.GearDepthChargeProjector)
	out := 1.0
	if s.Has(master.GearSonar) && (dc || dcp) {
		out *= sonarDepthSynergy
	}
	if dc && dcp {
		out *= depthChargePairBonus
	}
	return out
}

// Asw evaluates an anti-submarine attack from att on def.
//
// Precondition: att.Ship and def.Ship must be non-nil.
func (c *Calculator) Asw(att, def Combatant, opt Options) Attack {
	s := att.Ship
	ph := att.Phases(c.Rules).Asw

	constant := float64(depthChargeConstant)
	if UsesAswAircraft(s) {
		constant = aswAircraftConstant
	}
	basic := 2*math.Sqrt(float64(s.Asw.Naked)) + 1.5*float64(s.Asw.Equipment) +
		s.ImprovementBonus(improvement.AswPower) + constant
	m := Modifiers{
		A12:     Scale(ph.Power),
		A13:     Scale(c.Engagement.Modifier()),
		A13Next: Scale(s.DamageState().ShellingModifier()),
		A14:     Scale(AswSynergy(s)),
	}
	m.A5, m.A6 = opt.postcap()

	sonar := s.Equipment.Sum(func(g *gear.Gear) float64 {
		if g.Is(master.GearSonar) {
			return float64(g.Asw)
		}
		return 0
	})
	acc := math.Floor((aswAccuracyBase + levelLuckTerm(s) + 2*sonar + s.ImprovementBonus(improvement.AswAccuracy)) *
		ph.Accuracy * s.MoraleState().AccuracyModifier())

	power := AttackPower(basic, AswCap, m)
	return Attack{
		Power: power,
		Hit: HitRate(HitRateParams{
			AccuracyTerm:           acc,
			EvasionTerm:            c.evasion(def, func(p rules.PhaseModifiers) rules.Modifiers { return p.Asw }, 0),
			MoraleModifier:         def.Ship.MoraleState().DefenderModifier(),
			CriticalRateMultiplier: aswCritical,
		}),
		Damage: DamageRangeOf(power.Normal, def.Ship, opt.Ammo),
	}
}
