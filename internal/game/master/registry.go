package master

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownGear is returned when a gear id is not in the registry.
	ErrUnknownGear = errors.New("unknown gear")
	// ErrUnknownShip is returned when a ship id is not in the registry.
	ErrUnknownShip = errors.New("unknown ship")
)

// Registry holds every MasterGear and MasterShip indexed by id, together with
// the tables they were built from.
type Registry struct {
	gears  map[int]*MasterGear
	ships  map[int]*MasterShip
	tables Tables
	equip  *Equippability
}

// NewRegistry indexes gears and ships.
//
// Precondition: every element of gears and ships must be non-nil.
// Postcondition: Returns an error if an id is duplicated within its kind or
// the equippability table does not resolve.
func NewRegistry(gears []*MasterGear, ships []*MasterShip, tables Tables) (*Registry, error) {
	equip, err := newEquippability(tables.Equippable)
	if err != nil {
		return nil, fmt.Errorf("master: NewRegistry: %w", err)
	}
	r := &Registry{
		gears:  make(map[int]*MasterGear, len(gears)),
		ships:  make(map[int]*MasterShip, len(ships)),
		tables: tables,
		equip:  equip,
	}
	for _, g := range gears {
		if _, exists := r.gears[g.ID]; exists {
			return nil, fmt.Errorf("master: NewRegistry: gear id %d already registered", g.ID)
		}
		r.gears[g.ID] = g
	}
	for _, s := range ships {
		if _, exists := r.ships[s.ID]; exists {
			return nil, fmt.Errorf("master: NewRegistry: ship id %d already registered", s.ID)
		}
		r.ships[s.ID] = s
	}
	return r, nil
}

// Gear returns the gear with the given id.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Gear(id int) (*MasterGear, bool) {
	g, ok := r.gears[id]
	return g, ok
}

// Ship returns the ship with the given id.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Ship(id int) (*MasterShip, bool) {
	s, ok := r.ships[id]
	return s, ok
}

// MustGear returns the gear with the given id or an error wrapping ErrUnknownGear.
func (r *Registry) MustGear(id int) (*MasterGear, error) {
	g, ok := r.gears[id]
	if !ok {
		return nil, fmt.Errorf("gear %d: %w", id, ErrUnknownGear)
	}
	return g, nil
}

// MustShip returns the ship with the given id or an error wrapping ErrUnknownShip.
func (r *Registry) MustShip(id int) (*MasterShip, error) {
	s, ok := r.ships[id]
	if !ok {
		return nil, fmt.Errorf("ship %d: %w", id, ErrUnknownShip)
	}
	return s, nil
}

// Equippability returns the resolved equippability table.
func (r *Registry) Equippability() *Equippability { return r.equip }

// Tables returns the auxiliary tables the registry was built from.
func (r *Registry) Tables() Tables { return r.tables }

// GearIDs returns every registered gear id in ascending order.
func (r *Registry) GearIDs() []int {
	ids := make([]int, 0, len(r.gears))
	for id := range r.gears {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ShipIDs returns every registered ship id in ascending order.
func (r *Registry) ShipIDs() []int {
	ids := make([]int, 0, len(r.ships))
	for id := range r.ships {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
