package fleet

import (
	"fmt"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// AirbaseSlots is the number of squadrons in a land-based air group.
const AirbaseSlots = 4

// Squadron sizes of a land-based air group.
const (
	SquadronSize      = 18
	ReconSquadronSize = 4
)

// AirbaseMode is the assignment of a land-based air group.
type AirbaseMode string

const (
	Sortie     AirbaseMode = "sortie"
	AirDefense AirbaseMode = "air_defense"
	Standby    AirbaseMode = "standby"
)

// AirbaseKey identifies an air group: a1..a3.
type AirbaseKey string

// AirbaseKeyAt returns the key of the zero-based air group i.
func AirbaseKeyAt(i int) AirbaseKey { return AirbaseKey(fmt.Sprintf("a%d", i+1)) }

// AirbaseState is the caller-supplied state of one air group.
type AirbaseState struct {
	Mode      AirbaseMode                 `json:"mode,omitempty"`
	Gears     map[gear.SlotKey]gear.State `json:"gears,omitempty"`
	SlotSizes map[gear.SlotKey]int        `json:"slot_sizes,omitempty"`
}

// Airbase is a land-based air group with four uniform slots and no
// exclusive slot.
type Airbase struct {
	Mode      AirbaseMode
	Equipment *gear.Equipment
}

func isReconPlane(g *gear.Gear) bool {
	return g.Category.Is(master.CbRecon, master.CbReconII, master.ReconSeaplane, master.LargeFlyingBoat,
		master.LandBasedRecon, master.JetRecon)
}

// ComposeAirbase builds an air group. Recon squadrons default to
// ReconSquadronSize planes, everything else to SquadronSize.
//
// Precondition: c must be non-nil.
func ComposeAirbase(c *ship.Composer, st AirbaseState) *Airbase {
	gears := make(map[gear.SlotKey]*gear.Gear, len(st.Gears))
	sizes := make([]int, AirbaseSlots)
	for i := range sizes {
		key := gear.StandardKey(i)
		sizes[i] = SquadronSize
		gs, ok := st.Gears[key]
		if !ok {
			continue
		}
		if g, ok := c.Gear(gs); ok {
			gears[key] = g
			if isReconPlane(g) {
				sizes[i] = ReconSquadronSize
			}
		}
	}
	mode := st.Mode
	if mode == "" {
		mode = Sortie
	}
	return &Airbase{Mode: mode, Equipment: gear.NewEquipment(sizes, st.SlotSizes, gears, false)}
}

// State returns the state that reproduces a.
func (a *Airbase) State() AirbaseState {
	st := AirbaseState{Mode: a.Mode, Gears: make(map[gear.SlotKey]gear.State)}
	for _, it := range a.Equipment.Items() {
		if it.Gear != nil {
			st.Gears[it.Key] = it.Gear.State()
		}
		if it.CurrentSize != it.MaxSize {
			if st.SlotSizes == nil {
				st.SlotSizes = make(map[gear.SlotKey]int)
			}
			st.SlotSizes[it.Key] = it.CurrentSize
		}
	}
	return st
}

// sortieReconModifier is the sortie air power multiplier granted by the best
// land-based recon plane in the group.
func (a *Airbase) sortieReconModifier() float64 {
	mod := 1.0
	for _, it := range a.Equipment.Items() {
		g := it.Gear
		if g == nil || g.Category != master.LandBasedRecon {
			continue
		}
		m := 1.15
		if g.Los >= 9 {
			m = 1.18
		}
		mod = max(mod, m)
	}
	return mod
}

// defenseReconModifier is the air defense multiplier granted by the best
// recon plane in the group.
func (a *Airbase) defenseReconModifier() float64 {
	mod := 1.0
	for _, it := range a.Equipment.Items() {
		g := it.Gear
		if g == nil {
			continue
		}
		var m float64
		switch {
		case g.Category.Is(master.CbRecon, master.CbReconII, master.JetRecon):
			m = 1.2
			if g.Los >= 9 {
				m = 1.3
			}
		case g.Category.Is(master.ReconSeaplane, master.LargeFlyingBoat):
			m = 1.1
			switch {
			case g.Los >= 9:
				m = 1.16
			case g.Los == 8:
				m = 1.13
			}
		case g.Category == master.LandBasedRecon:
			m = 1.18
			if g.Los >= 9 {
				m = 1.24
			}
		default:
			continue
		}
		mod = max(mod, m)
	}
	return mod
}

// FighterPower returns the sortie air power of the group.
func (a *Airbase) FighterPower() int {
	return floorInt(float64(a.Equipment.FighterPower()) * a.sortieReconModifier())
}

// AirDefensePower returns the interception power of the group defending the
// base.
func (a *Airbase) AirDefensePower() int {
	return floorInt(float64(a.Equipment.InterceptionPower()) * a.defenseReconModifier())
}

// Radius returns the combat radius: the smallest radius among its planes.
func (a *Airbase) Radius() int {
	r, ok := a.Equipment.Max(func(g *gear.Gear) float64 { return -float64(g.Radius) })
	if !ok {
		return 0
	}
	return -int(r)
}
