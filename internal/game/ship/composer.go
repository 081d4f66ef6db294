package ship

import (
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// Composer bundles the read-only inputs shared by every composition call.
type Composer struct {
	Registry *master.Registry
	Resolver *improvement.Resolver
	Rules    BonusRules
}

// NewComposer builds a Composer over reg. Improvement overrides are taken
// from the registry's tables.
//
// Precondition: reg must be non-nil.
// Postcondition: Returns an error if an improvement override does not resolve.
func NewComposer(reg *master.Registry, rules BonusRules) (*Composer, error) {
	resolver, err := improvement.NewResolver(reg.Tables().ImprovementOverrides)
	if err != nil {
		return nil, err
	}
	return &Composer{Registry: reg, Resolver: resolver, Rules: rules}, nil
}

// Ship composes st.
//
// Postcondition: ok is false iff the ship id is unknown.
func (c *Composer) Ship(st State) (*Ship, bool) {
	return Compose(c.Registry, c.Resolver, c.Rules, st)
}

// Gear composes st.
//
// Postcondition: ok is false iff the gear id is unknown.
func (c *Composer) Gear(st gear.State) (*gear.Gear, bool) {
	return gear.Compose(c.Registry, c.Resolver, st)
}

// State returns the caller-level state that reproduces s.
func (s *Ship) State() State {
	st := State{
		ShipID: s.ID,
		Level:  s.Level,
		Mod:    s.Mod,
		Gears:  make(map[gear.SlotKey]gear.State),
	}
	if s.Morale != DefaultMorale {
		m := s.Morale
		st.Morale = &m
	}
	if s.Health.Current != s.Health.Max {
		hp := s.Health.Current
		st.CurrentHP = &hp
	}
	for _, it := range s.Equipment.Items() {
		if it.Gear != nil {
			st.Gears[it.Key] = it.Gear.State()
		}
		if !it.Exclusive() && it.CurrentSize != it.MaxSize {
			if st.SlotSizes == nil {
				st.SlotSizes = make(map[gear.SlotKey]int)
			}
			st.SlotSizes[it.Key] = it.CurrentSize
		}
	}
	return st
}
