package gear

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// SlotKey identifies a slot within an Equipment: g1..g5 for standard slots
// and gx for the exclusive slot.
type SlotKey string

// ExclusiveKey is the key of the capacity-less exclusive slot.
const ExclusiveKey SlotKey = "gx"

// StandardKey returns the key of the standard slot at zero-based index i.
func StandardKey(i int) SlotKey { return SlotKey(fmt.Sprintf("g%d", i+1)) }

// Index returns the zero-based index of a standard key, or -1 for the
// exclusive key and malformed keys.
func (k SlotKey) Index() int {
	var i int
	if _, err := fmt.Sscanf(string(k), "g%d", &i); err != nil || i < 1 {
		return -1
	}
	return i - 1
}

// Item is one slot of an Equipment.
type Item struct {
	Key         SlotKey
	Gear        *Gear
	CurrentSize int
	MaxSize     int
}

// Exclusive reports whether the item is the exclusive slot.
func (it Item) Exclusive() bool { return it.Key == ExclusiveKey }

// Equipment is an ordered, fixed-capacity set of slots.
type Equipment struct {
	items []Item
}

// NewEquipment lays out len(maxSizes) standard slots followed by the
// exclusive slot when exclusive is true. current overrides the current size
// of a standard slot; absent entries start full.
//
// Postcondition: Items() has len(maxSizes) (+1 when exclusive) entries in key order.
func NewEquipment(maxSizes []int, current map[SlotKey]int, gears map[SlotKey]*Gear, exclusive bool) *Equipment {
	e := &Equipment{items: make([]Item, 0, len(maxSizes)+1)}
	for i, max := range maxSizes {
		key := StandardKey(i)
		size := max
		if c, ok := current[key]; ok {
			size = c
		}
		e.items = append(e.items, Item{Key: key, Gear: gears[key], CurrentSize: size, MaxSize: max})
	}
	if exclusive {
		e.items = append(e.items, Item{Key: ExclusiveKey, Gear: gears[ExclusiveKey]})
	}
	return e
}

// Items returns a copy of the slots in key order.
func (e *Equipment) Items() []Item {
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Gear returns the gear in slot key, nil if empty or absent.
func (e *Equipment) Gear(key SlotKey) *Gear {
	for _, it := range e.items {
		if it.Key == key {
			return it.Gear
		}
	}
	return nil
}

// Gears returns every equipped gear in key order.
func (e *Equipment) Gears() []*Gear {
	var out []*Gear
	for _, it := range e.items {
		if it.Gear != nil {
			out = append(out, it.Gear)
		}
	}
	return out
}

// HasExclusive reports whether the equipment has an exclusive slot.
func (e *Equipment) HasExclusive() bool {
	for _, it := range e.items {
		if it.Exclusive() {
			return true
		}
	}
	return false
}

// Sum adds fn over every equipped gear.
func (e *Equipment) Sum(fn func(g *Gear) float64) float64 {
	var total float64
	for _, it := range e.items {
		if it.Gear != nil {
			total += fn(it.Gear)
		}
	}
	return total
}

// Count counts equipped gears matching pred.
func (e *Equipment) Count(pred func(g *Gear) bool) int {
	n := 0
	for _, it := range e.items {
		if it.Gear != nil && pred(it.Gear) {
			n++
		}
	}
	return n
}

// Has reports whether any equipped gear matches pred.
func (e *Equipment) Has(pred func(g *Gear) bool) bool {
	return e.Count(pred) > 0
}

// Max returns the largest fn over equipped gears and whether any gear was
// equipped.
func (e *Equipment) Max(fn func(g *Gear) float64) (float64, bool) {
	best, found := math.Inf(-1), false
	for _, it := range e.items {
		if it.Gear == nil {
			continue
		}
		if v := fn(it.Gear); v > best {
			best = v
		}
		found = true
	}
	if !found {
		return 0, false
	}
	return best, true
}

// aircraftItems yields standard slots that carry an aircraft with at least
// one plane remaining.
func (e *Equipment) aircraftItems() []Item {
	var out []Item
	for _, it := range e.items {
		if it.Gear != nil && it.Gear.Is(master.GearAircraft) && it.CurrentSize > 0 {
			out = append(out, it)
		}
	}
	return out
}

// SumAircraft adds fn over aircraft slots with a non-zero current size.
func (e *Equipment) SumAircraft(fn func(g *Gear, size int) float64) float64 {
	var total float64
	for _, it := range e.aircraftItems() {
		total += fn(it.Gear, it.CurrentSize)
	}
	return total
}

// CountAircraft counts aircraft slots with a non-zero current size matching pred.
func (e *Equipment) CountAircraft(pred func(g *Gear) bool) int {
	n := 0
	for _, it := range e.aircraftItems() {
		if pred(it.Gear) {
			n++
		}
	}
	return n
}

// HasAircraft reports whether any aircraft slot with planes remaining matches pred.
func (e *Equipment) HasAircraft(pred func(g *Gear) bool) bool {
	return e.CountAircraft(pred) > 0
}

// FighterPower sums the sortie air power of every slot.
func (e *Equipment) FighterPower() int {
	return int(e.SumAircraft(func(g *Gear, size int) float64 { return float64(g.FighterPower(size)) }))
}

// InterceptionPower sums the air defense power of every slot.
func (e *Equipment) InterceptionPower() int {
	return int(e.SumAircraft(func(g *Gear, size int) float64 { return float64(g.InterceptionPower(size)) }))
}

// ProficiencyCriticalModifier returns the carrier-attack critical power
// modifier: 1 + the first slot's critical bonus + half the bonus of every
// other attacking plane slot.
func (e *Equipment) ProficiencyCriticalModifier() float64 {
	mod := 1.0
	for _, it := range e.aircraftItems() {
		if !it.Gear.IsAttacker() {
			continue
		}
		b := it.Gear.Proficiency.CriticalBonus()
		if it.Key == StandardKey(0) {
			mod += b
		} else {
			mod += b / 2
		}
	}
	return mod
}
