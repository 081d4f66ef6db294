package master

import "fmt"

// Equippability answers whether a ship may mount a gear in a standard slot or
// in the exclusive slot.
type Equippability struct {
	byType           map[ShipType]map[Category]bool
	byShip           map[int]map[Category]bool
	exslotCategories map[Category]bool
	exslotGearIDs    map[int]bool
	exslotByShip     map[int]map[int]bool
}

func newEquippability(t EquippableTable) (*Equippability, error) {
	e := &Equippability{
		byType:           make(map[ShipType]map[Category]bool),
		byShip:           make(map[int]map[Category]bool),
		exslotCategories: make(map[Category]bool),
		exslotGearIDs:    make(map[int]bool),
		exslotByShip:     make(map[int]map[int]bool),
	}
	for key, cats := range t.ByType {
		st, ok := ParseShipType(key)
		if !ok {
			return nil, fmt.Errorf("equippable: unknown ship type %q", key)
		}
		set, err := categorySet(cats)
		if err != nil {
			return nil, fmt.Errorf("equippable %s: %w", key, err)
		}
		e.byType[st] = set
	}
	for id, cats := range t.ByShip {
		set, err := categorySet(cats)
		if err != nil {
			return nil, fmt.Errorf("equippable ship %d: %w", id, err)
		}
		e.byShip[id] = set
	}
	set, err := categorySet(t.ExslotCategories)
	if err != nil {
		return nil, fmt.Errorf("equippable exslot: %w", err)
	}
	e.exslotCategories = set
	for _, id := range t.ExslotGearIDs {
		e.exslotGearIDs[id] = true
	}
	for shipID, ids := range t.ExslotByShip {
		m := make(map[int]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		e.exslotByShip[shipID] = m
	}
	return e, nil
}

func categorySet(keys []string) (map[Category]bool, error) {
	out := make(map[Category]bool, len(keys))
	for _, k := range keys {
		c, ok := ParseCategory(k)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", k)
		}
		out[c] = true
	}
	return out, nil
}

// CanEquip reports whether ship may mount gear. exclusive selects the
// exclusive slot rules instead of the standard slot rules. Abyssal ships may
// mount anything.
//
// Precondition: ship and gear must be non-nil.
func (e *Equippability) CanEquip(ship *MasterShip, gear *MasterGear, exclusive bool) bool {
	if ship.IsAbyssal() {
		return true
	}
	if exclusive {
		if e.exslotCategories[gear.Category] || e.exslotGearIDs[gear.ID] {
			return true
		}
		return e.exslotByShip[ship.ID][gear.ID]
	}
	if set, ok := e.byShip[ship.ID]; ok {
		return set[gear.Category]
	}
	return e.byType[ship.Type][gear.Category]
}
