package deck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

var modeNames = map[int]fleet.AirbaseMode{
	ModeStandby:    fleet.Standby,
	ModeSortie:     fleet.Sortie,
	ModeAirDefense: fleet.AirDefense,
}

// slotKey maps a deck item key to an equipment slot key: i1..i5 to g1..g5
// and ix to gx.
func slotKey(item string) (gear.SlotKey, bool) {
	if item == "ix" {
		return gear.ExclusiveKey, true
	}
	n, err := strconv.Atoi(strings.TrimPrefix(item, "i"))
	if err != nil || n < 1 {
		return "", false
	}
	return gear.StandardKey(n - 1), true
}

func itemKeyOf(k gear.SlotKey) string {
	if k == gear.ExclusiveKey {
		return "ix"
	}
	return "i" + strings.TrimPrefix(string(k), "g")
}

func gearStates(items map[string]Item) map[gear.SlotKey]gear.State {
	out := make(map[gear.SlotKey]gear.State, len(items))
	for key, it := range items {
		k, ok := slotKey(key)
		if !ok {
			continue
		}
		st := gear.State{GearID: it.ID, Stars: it.Rf}
		if it.Mas != nil {
			st.Exp = gear.ExpFromAce(*it.Mas)
		}
		out[k] = st
	}
	return out
}

func itemsOf(e *gear.Equipment) map[string]Item {
	out := make(map[string]Item)
	for _, it := range e.Items() {
		if it.Gear == nil {
			continue
		}
		item := Item{ID: it.Gear.ID, Rf: it.Gear.Stars}
		if ace := it.Gear.Ace(); ace > 0 {
			item.Mas = &ace
		}
		out[itemKeyOf(it.Key)] = item
	}
	return out
}

// delta returns the modernization that turns base into the displayed value
// v. An unknown base counts as zero.
func delta(v *int, base int, known bool) int {
	if v == nil {
		return 0
	}
	if !known {
		return *v
	}
	return *v - base
}

func shipState(reg *master.Registry, s Ship) ship.State {
	st := ship.State{ShipID: s.ID, Level: s.Lv, Gears: gearStates(s.Items)}
	m, ok := reg.Ship(s.ID)
	if !ok {
		return st
	}
	luck, luckOK := m.Luck.Base()
	hp, hpOK := ship.LevelHP(m.MaxHP, s.Lv)
	asw, aswOK := m.Asw.At(s.Lv)
	st.Mod = ship.Modernization{
		Luck:  delta(s.Luck, luck, luckOK),
		MaxHP: delta(s.HP, hp, hpOK),
		Asw:   delta(s.Asw, asw, aswOK),
	}
	return st
}

// ToPlanState converts d into a plan state. Luck, HP and ASW are stored as
// deltas against the level-derived master values so composing the state
// reproduces the deck's numbers. Ships unknown to reg keep their id and
// level and are dropped later by the composer.
//
// Precondition: reg must be non-nil.
func (d *Deck) ToPlanState(reg *master.Registry) (fleet.PlanState, error) {
	st := fleet.PlanState{
		HQLevel:  d.HQLevel,
		Fleets:   make(map[fleet.FleetKey]fleet.State),
		Airbases: make(map[fleet.AirbaseKey]fleet.AirbaseState),
	}
	for key, f := range d.Fleets {
		fs := make(fleet.State, len(f.Ships))
		for sk, s := range f.Ships {
			fs[fleet.ShipKey(sk)] = shipState(reg, s)
		}
		st.Fleets[fleet.FleetKey(key)] = fs
		if key == "f1" {
			st.Name = f.Name
		}
	}
	for key, a := range d.Airbases {
		mode, ok := modeNames[a.Mode]
		if !ok {
			return fleet.PlanState{}, fmt.Errorf("%w: %s: air base mode %d", ErrMalformed, key, a.Mode)
		}
		st.Airbases[fleet.AirbaseKey(key)] = fleet.AirbaseState{Mode: mode, Gears: gearStates(a.Items)}
	}
	return st, nil
}

func intPtr(v int) *int { return &v }

func deckShip(s *ship.Ship) Ship {
	out := Ship{ID: s.ID, Lv: s.Level, Items: itemsOf(s.Equipment)}
	if s.Luck.Known || s.Mod.Luck != 0 {
		out.Luck = intPtr(s.Luck.Naked)
	}
	if s.MaxHP.Known || s.Mod.MaxHP != 0 {
		out.HP = intPtr(s.MaxHP.Naked)
	}
	if s.Asw.Known || s.Mod.Asw != 0 {
		out.Asw = intPtr(s.Asw.Naked)
	}
	return out
}

// FromPlan converts a composed plan into a deck. Empty fleets and air groups
// are omitted; the first fleet carries the plan name.
//
// Precondition: p must be non-nil.
func FromPlan(p *fleet.Plan) *Deck {
	d := &Deck{
		HQLevel:  p.HQLevel,
		Fleets:   make(map[string]Fleet),
		Airbases: make(map[string]Airbase),
	}
	for i, f := range p.Fleets {
		if f == nil || f.Len() == 0 {
			continue
		}
		df := Fleet{Ships: make(map[string]Ship)}
		if i == 0 {
			df.Name = p.Name
		}
		for _, e := range f.Entries() {
			df.Ships[string(e.Key)] = deckShip(e.Ship)
		}
		d.Fleets[string(fleet.FleetKeyAt(i))] = df
	}
	for i, a := range p.Airbases {
		if a == nil || len(a.Equipment.Gears()) == 0 {
			continue
		}
		mode := ModeSortie
		for n, m := range modeNames {
			if m == a.Mode {
				mode = n
			}
		}
		d.Airbases[string(fleet.AirbaseKeyAt(i))] = Airbase{Mode: mode, Items: itemsOf(a.Equipment)}
	}
	return d
}

// Import parses data and converts it into a plan state.
func Import(data []byte, reg *master.Registry) (fleet.PlanState, error) {
	d, err := Parse(data)
	if err != nil {
		return fleet.PlanState{}, err
	}
	return d.ToPlanState(reg)
}
