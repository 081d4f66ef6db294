package fleet

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// Plan capacities.
const (
	MaxFleets   = 4
	MaxAirbases = 3
)

// FleetKey identifies a fleet: f1..f4.
type FleetKey string

// FleetKeyAt returns the key of the zero-based fleet i.
func FleetKeyAt(i int) FleetKey { return FleetKey(fmt.Sprintf("f%d", i+1)) }

// NodeState is one map node of a plan.
type NodeState struct {
	Type      string `json:"type"`
	Formation string `json:"formation,omitempty"`
	Enemy     State  `json:"enemy,omitempty"`
}

// PlanState is the caller-supplied order of battle.
type PlanState struct {
	Name     string                      `json:"name,omitempty"`
	HQLevel  int                         `json:"hq_level,omitempty"`
	Fleets   map[FleetKey]State          `json:"fleets,omitempty"`
	Airbases map[AirbaseKey]AirbaseState `json:"airbases,omitempty"`
	Nodes    []NodeState                 `json:"nodes,omitempty"`
}

// Node is a composed map node.
type Node struct {
	Type      string
	Formation string
	Enemy     *Fleet
}

// Plan is a complete order of battle.
type Plan struct {
	Name     string
	HQLevel  int
	Fleets   [MaxFleets]*Fleet
	Airbases [MaxAirbases]*Airbase
	Nodes    []Node
}

// DefaultHQLevel is used when a plan records no headquarters level.
const DefaultHQLevel = 120

// ComposePlan composes every fleet, air group and node in st.
//
// Precondition: c must be non-nil.
// Postcondition: Every position of Fleets and Airbases is non-nil.
func ComposePlan(c *ship.Composer, st PlanState) *Plan {
	p := &Plan{Name: st.Name, HQLevel: st.HQLevel}
	if p.HQLevel <= 0 {
		p.HQLevel = DefaultHQLevel
	}
	for i := range p.Fleets {
		p.Fleets[i] = Compose(c, st.Fleets[FleetKeyAt(i)])
	}
	for i := range p.Airbases {
		p.Airbases[i] = ComposeAirbase(c, st.Airbases[AirbaseKeyAt(i)])
	}
	for _, n := range st.Nodes {
		node := Node{Type: n.Type, Formation: n.Formation}
		if len(n.Enemy) > 0 {
			node.Enemy = Compose(c, n.Enemy)
		}
		p.Nodes = append(p.Nodes, node)
	}
	return p
}

// Fleet returns the fleet at key, nil for an unknown key.
func (p *Plan) Fleet(key FleetKey) *Fleet {
	for i := range p.Fleets {
		if FleetKeyAt(i) == key {
			return p.Fleets[i]
		}
	}
	return nil
}

// State returns the state that reproduces p.
func (p *Plan) State() PlanState {
	st := PlanState{
		Name:     p.Name,
		HQLevel:  p.HQLevel,
		Fleets:   make(map[FleetKey]State),
		Airbases: make(map[AirbaseKey]AirbaseState),
	}
	for i, f := range p.Fleets {
		if f != nil && f.Len() > 0 {
			st.Fleets[FleetKeyAt(i)] = f.State()
		}
	}
	for i, a := range p.Airbases {
		if a != nil && len(a.Equipment.Gears()) > 0 {
			st.Airbases[AirbaseKeyAt(i)] = a.State()
		}
	}
	for _, n := range p.Nodes {
		ns := NodeState{Type: n.Type, Formation: n.Formation}
		if n.Enemy != nil {
			ns.Enemy = n.Enemy.State()
		}
		st.Nodes = append(st.Nodes, ns)
	}
	return st
}

func floorInt(v float64) int { return int(math.Floor(v)) }
