// Package improvement maps a gear specification and its improvement level
// ("stars") to additive combat bonuses.
package improvement

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// Shape selects how a Formula scales with stars.
type Shape int

const (
	// Linear evaluates multiplier * stars.
	Linear Shape = iota
	// Sqrt evaluates multiplier * sqrt(stars).
	Sqrt
)

// String returns the serialised shape name.
func (s Shape) String() string {
	if s == Sqrt {
		return "sqrt"
	}
	return "linear"
}

// ParseShape resolves "linear" or "sqrt".
func ParseShape(s string) (Shape, error) {
	switch s {
	case "linear", "":
		return Linear, nil
	case "sqrt":
		return Sqrt, nil
	}
	return Linear, fmt.Errorf("improvement: unknown formula shape %q", s)
}

// Formula is a serialisable bonus curve.
type Formula struct {
	Multiplier float64
	Shape      Shape
}

// Apply evaluates f at stars. A nil formula yields 0.
//
// Postcondition: Returns 0 when f is nil or stars <= 0.
func Apply(f *Formula, stars int) float64 {
	if f == nil || stars <= 0 {
		return 0
	}
	if f.Shape == Sqrt {
		return f.Multiplier * math.Sqrt(float64(stars))
	}
	return f.Multiplier * float64(stars)
}

// Record converts f into its serialised form.
func (f Formula) Record() master.FormulaRecord {
	return master.FormulaRecord{Multiplier: f.Multiplier, Shape: f.Shape.String()}
}

// FromRecord converts a serialised formula.
func FromRecord(r master.FormulaRecord) (*Formula, error) {
	shape, err := ParseShape(r.Shape)
	if err != nil {
		return nil, err
	}
	return &Formula{Multiplier: r.Multiplier, Shape: shape}, nil
}

func linear(m float64) *Formula { return &Formula{Multiplier: m, Shape: Linear} }

func sqrt(m float64) *Formula { return &Formula{Multiplier: m, Shape: Sqrt} }
