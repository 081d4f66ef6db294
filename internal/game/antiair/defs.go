// Package antiair computes anti-air cutin eligibility and rates and the
// shoot-down figures of a ship against an enemy squadron.
package antiair

import "sort"

// Def is one anti-air cutin definition.
type Def struct {
	ID int `json:"id"`
	// MinBonus is the guaranteed shoot-down when the cutin fires.
	MinBonus int `json:"min_bonus"`
	// FixedModifier multiplies the fixed shoot-down.
	FixedModifier float64 `json:"fixed_modifier"`
	// BaseRate is the trigger rate in [0,1].
	BaseRate float64 `json:"base_rate"`
	// Special cutins are rolled before every normal cutin.
	Special bool `json:"special,omitempty"`
}

var defs = map[int]Def{
	1:  {ID: 1, MinBonus: 7, FixedModifier: 1.7, BaseRate: 0.65},
	2:  {ID: 2, MinBonus: 6, FixedModifier: 1.7, BaseRate: 0.58},
	3:  {ID: 3, MinBonus: 4, FixedModifier: 1.6, BaseRate: 0.5},
	4:  {ID: 4, MinBonus: 6, FixedModifier: 1.5, BaseRate: 0.52},
	5:  {ID: 5, MinBonus: 4, FixedModifier: 1.5, BaseRate: 0.55},
	6:  {ID: 6, MinBonus: 4, FixedModifier: 1.45, BaseRate: 0.4},
	7:  {ID: 7, MinBonus: 3, FixedModifier: 1.35, BaseRate: 0.45},
	8:  {ID: 8, MinBonus: 4, FixedModifier: 1.4, BaseRate: 0.5},
	9:  {ID: 9, MinBonus: 2, FixedModifier: 1.3, BaseRate: 0.4},
	10: {ID: 10, MinBonus: 8, FixedModifier: 1.65, BaseRate: 0.6},
	11: {ID: 11, MinBonus: 6, FixedModifier: 1.5, BaseRate: 0.55},
	12: {ID: 12, MinBonus: 3, FixedModifier: 1.25, BaseRate: 0.45},
	13: {ID: 13, MinBonus: 4, FixedModifier: 1.35, BaseRate: 0.35},
	14: {ID: 14, MinBonus: 4, FixedModifier: 1.45, BaseRate: 0.63},
	15: {ID: 15, MinBonus: 3, FixedModifier: 1.3, BaseRate: 0.54},
	16: {ID: 16, MinBonus: 4, FixedModifier: 1.4, BaseRate: 0.62},
	17: {ID: 17, MinBonus: 2, FixedModifier: 1.25, BaseRate: 0.55},
	18: {ID: 18, MinBonus: 2, FixedModifier: 1.2, BaseRate: 0.6},
	19: {ID: 19, MinBonus: 5, FixedModifier: 1.45, BaseRate: 0.55},
	20: {ID: 20, MinBonus: 3, FixedModifier: 1.25, BaseRate: 0.65},
	21: {ID: 21, MinBonus: 5, FixedModifier: 1.45, BaseRate: 0.6},
	22: {ID: 22, MinBonus: 2, FixedModifier: 1.2, BaseRate: 0.65},
	23: {ID: 23, MinBonus: 1, FixedModifier: 1.05, BaseRate: 0.8},
	24: {ID: 24, MinBonus: 3, FixedModifier: 1.25, BaseRate: 0.6},
	25: {ID: 25, MinBonus: 7, FixedModifier: 1.55, BaseRate: 0.6},
	26: {ID: 26, MinBonus: 6, FixedModifier: 1.4, BaseRate: 0.6},
	27: {ID: 27, MinBonus: 5, FixedModifier: 1.55, BaseRate: 0.55},
	28: {ID: 28, MinBonus: 4, FixedModifier: 1.4, BaseRate: 0.55},
	29: {ID: 29, MinBonus: 5, FixedModifier: 1.55, BaseRate: 0.6},
	30: {ID: 30, MinBonus: 3, FixedModifier: 1.3, BaseRate: 0.44},
	31: {ID: 31, MinBonus: 2, FixedModifier: 1.25, BaseRate: 0.53},
	32: {ID: 32, MinBonus: 3, FixedModifier: 1.2, BaseRate: 0.5},
	33: {ID: 33, MinBonus: 3, FixedModifier: 1.35, BaseRate: 0.42},
	34: {ID: 34, MinBonus: 7, FixedModifier: 1.6, BaseRate: 0.6, Special: true},
	35: {ID: 35, MinBonus: 6, FixedModifier: 1.55, BaseRate: 0.55, Special: true},
	36: {ID: 36, MinBonus: 6, FixedModifier: 1.55, BaseRate: 0.5, Special: true},
	37: {ID: 37, MinBonus: 4, FixedModifier: 1.45, BaseRate: 0.4, Special: true},
	38: {ID: 38, MinBonus: 10, FixedModifier: 1.85, BaseRate: 0.6, Special: true},
	39: {ID: 39, MinBonus: 10, FixedModifier: 1.7, BaseRate: 0.57, Special: true},
	40: {ID: 40, MinBonus: 10, FixedModifier: 1.7, BaseRate: 0.56, Special: true},
	41: {ID: 41, MinBonus: 9, FixedModifier: 1.65, BaseRate: 0.65, Special: true},
	42: {ID: 42, MinBonus: 10, FixedModifier: 1.65, BaseRate: 0.65},
	43: {ID: 43, MinBonus: 8, FixedModifier: 1.6, BaseRate: 0.6},
	44: {ID: 44, MinBonus: 6, FixedModifier: 1.6, BaseRate: 0.55},
	45: {ID: 45, MinBonus: 5, FixedModifier: 1.55, BaseRate: 0.55},
}

// Lookup returns the definition of cutin id.
func Lookup(id int) (Def, bool) {
	d, ok := defs[id]
	return d, ok
}

// Defs returns every definition ordered by id.
func Defs() []Def {
	out := make([]Def, 0, len(defs))
	for _, d := range defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
