package ship

import (
	"math"
	"sort"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// Ship is a MasterShip combined with player state and equipment.
type Ship struct {
	*master.MasterShip
	Level     int
	Morale    int
	Mod       Modernization
	Health    Health
	Equipment *gear.Equipment

	MaxHP     Stat
	Firepower Stat
	Torpedo   Stat
	AntiAir   Stat
	Armor     Stat
	Asw       Stat
	Los       Stat
	Evasion   Stat
	Luck      Stat
	Accuracy  Stat

	// Bonus is the total of every equipment bonus rule that applied.
	Bonus StatDelta
	Speed int
	Range int
	// InvalidSlots lists slots whose gear the ship cannot mount.
	InvalidSlots []gear.SlotKey
}

// Compose builds a live Ship. Gears whose id is unknown are dropped from
// their slot.
//
// Precondition: reg must be non-nil; resolver may be nil.
// Postcondition: ok is false iff st.ShipID is unknown.
func Compose(reg *master.Registry, resolver *improvement.Resolver, rules BonusRules, st State) (*Ship, bool) {
	m, ok := reg.Ship(st.ShipID)
	if !ok {
		return nil, false
	}
	gears := make(map[gear.SlotKey]*gear.Gear, len(st.Gears))
	for key, gs := range st.Gears {
		if g, ok := gear.Compose(reg, resolver, gs); ok {
			gears[key] = g
		}
	}
	equip := gear.NewEquipment(m.Slots, st.SlotSizes, gears, !m.IsAbyssal())

	level := st.Level
	if level <= 0 {
		level = 1
	}
	s := &Ship{
		MasterShip: m,
		Level:      level,
		Morale:     DefaultMorale,
		Mod:        st.Mod,
		Equipment:  equip,
	}
	if st.Morale != nil {
		s.Morale = *st.Morale
	}

	s.MaxHP = hpStat(m.MaxHP, level, st.Mod.MaxHP)
	s.Firepower = fixedStat(m.Firepower, st.Mod.Firepower)
	s.Torpedo = fixedStat(m.Torpedo, st.Mod.Torpedo)
	s.AntiAir = fixedStat(m.AntiAir, st.Mod.AntiAir)
	s.Armor = fixedStat(m.Armor, st.Mod.Armor)
	s.Luck = fixedStat(m.Luck, st.Mod.Luck)
	s.Asw = levelStat(m.Asw, level, st.Mod.Asw)
	s.Los = levelStat(m.Los, level, 0)
	s.Evasion = levelStat(m.Evasion, level, 0)

	sum := func(fn func(g *gear.Gear) int) int {
		return int(equip.Sum(func(g *gear.Gear) float64 { return float64(fn(g)) }))
	}
	s.Firepower.Equipment = sum(func(g *gear.Gear) int { return g.Firepower })
	s.Torpedo.Equipment = sum(func(g *gear.Gear) int { return g.Torpedo })
	s.AntiAir.Equipment = sum(func(g *gear.Gear) int { return g.AntiAir })
	s.Armor.Equipment = sum(func(g *gear.Gear) int { return g.Armor })
	s.Asw.Equipment = sum(func(g *gear.Gear) int { return g.Asw })
	s.Los.Equipment = sum(func(g *gear.Gear) int { return g.Los })
	s.Evasion.Equipment = sum(func(g *gear.Gear) int { return g.Evasion })
	s.Accuracy = Stat{Known: true, Equipment: sum(func(g *gear.Gear) int { return g.Accuracy })}

	s.Bonus = rules.Evaluate(m, equip)
	s.Firepower.Bonus = s.Bonus.Firepower
	s.Torpedo.Bonus = s.Bonus.Torpedo
	s.AntiAir.Bonus = s.Bonus.AntiAir
	s.Armor.Bonus = s.Bonus.Armor
	s.Asw.Bonus = s.Bonus.Asw
	s.Los.Bonus = s.Bonus.Los
	s.Evasion.Bonus = s.Bonus.Evasion
	s.Accuracy.Bonus = s.Bonus.Accuracy

	s.Health = Health{Max: s.MaxHP.Total(), Current: s.MaxHP.Total()}
	if st.CurrentHP != nil {
		s.Health.Current = min(max(*st.CurrentHP, 0), s.Health.Max)
	}
	s.Speed = Speed(m.Speed, equip)
	s.Range = shipRange(m.Range, equip) + s.Bonus.Range
	s.InvalidSlots = invalidSlots(reg.Equippability(), m, equip)
	return s, true
}

// Speed applies the engine upgrade rule: an improved turbine with at least
// one boiler adds one speed step, and with a new model boiler plus a second
// boiler adds two. Speed never exceeds SpeedFastest.
func Speed(base int, e *gear.Equipment) int {
	if base == master.SpeedLand || !e.Has(is(master.GearTurbine)) {
		return base
	}
	boilers := e.Count(is(master.GearBoiler))
	newModel := e.Count(is(master.GearNewModelBoiler))
	step := 0
	switch {
	case newModel >= 1 && boilers+newModel >= 2:
		step = 2
	case boilers+newModel >= 1:
		step = 1
	}
	return min(base+step*5, master.SpeedFastest)
}

func shipRange(base int, e *gear.Equipment) int {
	r, ok := e.Max(func(g *gear.Gear) float64 { return float64(g.Range) })
	if ok && int(r) > base {
		return int(r)
	}
	return base
}

func invalidSlots(eq *master.Equippability, m *master.MasterShip, e *gear.Equipment) []gear.SlotKey {
	var out []gear.SlotKey
	for _, it := range e.Items() {
		if it.Gear != nil && !eq.CanEquip(m, it.Gear.MasterGear, it.Exclusive()) {
			out = append(out, it.Key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func is(a master.GearAttr) func(g *gear.Gear) bool {
	return func(g *gear.Gear) bool { return g.Is(a) }
}

// DamageState returns the current damage band.
func (s *Ship) DamageState() DamageState { return s.Health.State() }

// MoraleState returns the current morale band.
func (s *Ship) MoraleState() MoraleState { return MoraleStateOf(s.Morale) }

// NakedLos returns the naked line of sight, 0 when unknown.
func (s *Ship) NakedLos() int { return s.Los.Naked }

// Count counts equipped gears carrying attribute a.
func (s *Ship) Count(a master.GearAttr) int { return s.Equipment.Count(is(a)) }

// Has reports whether any equipped gear carries attribute a.
func (s *Ship) Has(a master.GearAttr) bool { return s.Count(a) > 0 }

// CountCategory counts equipped gears of the given categories.
func (s *Ship) CountCategory(cs ...master.Category) int {
	return s.Equipment.Count(func(g *gear.Gear) bool { return g.Category.Is(cs...) })
}

// CountGear counts equipped gears whose id is any of ids.
func (s *Ship) CountGear(ids ...int) int {
	return s.Equipment.Count(func(g *gear.Gear) bool {
		for _, id := range ids {
			if g.ID == id {
				return true
			}
		}
		return false
	})
}

// HasAircraft reports whether a slot with planes remaining carries attribute a.
func (s *Ship) HasAircraft(a master.GearAttr) bool { return s.Equipment.HasAircraft(is(a)) }

// GearIDs returns the ids of equipped gears in slot order.
func (s *Ship) GearIDs() []int {
	var out []int
	for _, g := range s.Equipment.Gears() {
		out = append(out, g.ID)
	}
	return out
}

// IsCarrierShelling reports whether the ship attacks with carrier shelling
// during the day: carriers, and fleet oilers carrying attack planes.
func (s *Ship) IsCarrierShelling() bool {
	if s.Is(master.ShipCarrier) {
		return true
	}
	return s.Type == master.AO && s.Equipment.Has(func(g *gear.Gear) bool {
		return g.Category.Is(master.CbTorpedoBomber, master.CbDiveBomber)
	})
}

// ImprovementBonus sums improvement bonuses of kind k over every equipped gear.
func (s *Ship) ImprovementBonus(k improvement.Kind) float64 {
	return s.Equipment.Sum(func(g *gear.Gear) float64 { return g.Bonus(k) })
}

// AdjustedAntiAir returns the ship's adjusted anti-air: naked AA plus the
// gear contributions, rounded down to an even number for own-side ships.
// Enemy ships use 2 * floor(sqrt(naked AA)) and no rounding.
func (s *Ship) AdjustedAntiAir() float64 {
	gearAA := s.Equipment.Sum(func(g *gear.Gear) float64 { return g.AdjustedAntiAir() })
	if s.IsAbyssal() {
		return 2*math.Floor(math.Sqrt(float64(s.AntiAir.Naked))) + gearAA
	}
	total := float64(s.AntiAir.Naked) + gearAA
	return 2 * math.Floor(total/2)
}

// FleetAntiAirContribution returns floor of the ship's gear contributions to
// fleet anti-air.
func (s *Ship) FleetAntiAirContribution() int {
	return floorInt(s.Equipment.Sum(func(g *gear.Gear) float64 { return g.FleetAntiAir() }))
}
