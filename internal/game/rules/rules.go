// Package rules holds the runtime-replaceable battle definitions: formations
// and the day and night special attack tables.
package rules

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition is wrapped by every validation failure.
var ErrInvalidDefinition = errors.New("invalid rule definition")

// Modifiers are the multipliers a formation applies in one phase.
type Modifiers struct {
	Power    float64 `yaml:"power,omitempty" json:"power,omitempty"`
	Accuracy float64 `yaml:"accuracy,omitempty" json:"accuracy,omitempty"`
	Evasion  float64 `yaml:"evasion,omitempty" json:"evasion,omitempty"`
}

// PhaseModifiers groups Modifiers per attack phase.
type PhaseModifiers struct {
	Shelling Modifiers `yaml:"shelling,omitempty" json:"shelling,omitempty"`
	Torpedo  Modifiers `yaml:"torpedo,omitempty" json:"torpedo,omitempty"`
	Night    Modifiers `yaml:"night,omitempty" json:"night,omitempty"`
	Asw      Modifiers `yaml:"asw,omitempty" json:"asw,omitempty"`
}

// FormationDef defines one formation. When Split is set, ships in the bottom
// half of the fleet use Bottom instead of Phases.
type FormationDef struct {
	Protection   float64        `yaml:"protection,omitempty" json:"protection,omitempty"`
	FleetAntiAir float64        `yaml:"fleet_anti_air,omitempty" json:"fleet_anti_air,omitempty"`
	Phases       PhaseModifiers `yaml:"phases,omitempty" json:"phases,omitempty"`
	Split        bool           `yaml:"split,omitempty" json:"split,omitempty"`
	Bottom       PhaseModifiers `yaml:"bottom,omitempty" json:"bottom,omitempty"`
}

// For returns the phase modifiers of a ship in the top or bottom half.
func (d FormationDef) For(topHalf bool) PhaseModifiers {
	if d.Split && !topHalf {
		return d.Bottom
	}
	return d.Phases
}

// SpecialDef is one special attack definition. Lower Priority is tried first.
type SpecialDef struct {
	Priority int     `yaml:"priority,omitempty" json:"priority,omitempty"`
	BaseRate float64 `yaml:"base_rate,omitempty" json:"base_rate,omitempty"`
	Power    float64 `yaml:"power,omitempty" json:"power,omitempty"`
	Accuracy float64 `yaml:"accuracy,omitempty" json:"accuracy,omitempty"`
}

// Set is one complete active configuration.
type Set struct {
	Formations map[Formation]FormationDef `yaml:"formations,omitempty" json:"formations,omitempty"`
	Day        map[DayAttack]SpecialDef   `yaml:"day,omitempty" json:"day,omitempty"`
	Night      map[NightAttack]SpecialDef `yaml:"night,omitempty" json:"night,omitempty"`
}

// Formation returns the definition of f.
func (s *Set) Formation(f Formation) (FormationDef, bool) {
	d, ok := s.Formations[f]
	return d, ok
}

// DaySpecial returns the definition of a.
func (s *Set) DaySpecial(a DayAttack) (SpecialDef, bool) {
	d, ok := s.Day[a]
	return d, ok
}

// NightSpecial returns the definition of a.
func (s *Set) NightSpecial(a NightAttack) (SpecialDef, bool) {
	d, ok := s.Night[a]
	return d, ok
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	out := &Set{
		Formations: make(map[Formation]FormationDef, len(s.Formations)),
		Day:        make(map[DayAttack]SpecialDef, len(s.Day)),
		Night:      make(map[NightAttack]SpecialDef, len(s.Night)),
	}
	for k, v := range s.Formations {
		out.Formations[k] = v
	}
	for k, v := range s.Day {
		out.Day[k] = v
	}
	for k, v := range s.Night {
		out.Night[k] = v
	}
	return out
}

// ModifiersOverride is a partial Modifiers: only non-nil fields apply.
type ModifiersOverride struct {
	Power    *float64 `yaml:"power" json:"power,omitempty"`
	Accuracy *float64 `yaml:"accuracy" json:"accuracy,omitempty"`
	Evasion  *float64 `yaml:"evasion" json:"evasion,omitempty"`
}

// PhaseOverride is a partial PhaseModifiers.
type PhaseOverride struct {
	Shelling ModifiersOverride `yaml:"shelling" json:"shelling"`
	Torpedo  ModifiersOverride `yaml:"torpedo" json:"torpedo"`
	Night    ModifiersOverride `yaml:"night" json:"night"`
	Asw      ModifiersOverride `yaml:"asw" json:"asw"`
}

// FormationOverride is a partial FormationDef.
type FormationOverride struct {
	Protection   *float64      `yaml:"protection" json:"protection,omitempty"`
	FleetAntiAir *float64      `yaml:"fleet_anti_air" json:"fleet_anti_air,omitempty"`
	Phases       PhaseOverride `yaml:"phases" json:"phases"`
	Split        *bool         `yaml:"split" json:"split,omitempty"`
	Bottom       PhaseOverride `yaml:"bottom" json:"bottom"`
}

// SpecialOverride is a partial SpecialDef.
type SpecialOverride struct {
	Priority *int     `yaml:"priority" json:"priority,omitempty"`
	BaseRate *float64 `yaml:"base_rate" json:"base_rate,omitempty"`
	Power    *float64 `yaml:"power" json:"power,omitempty"`
	Accuracy *float64 `yaml:"accuracy" json:"accuracy,omitempty"`
}

// Override is a partial Set as read from a rules file. A field that is
// present replaces the active value even when it is zero or false.
type Override struct {
	Formations map[Formation]FormationOverride `yaml:"formations" json:"formations,omitempty"`
	Day        map[DayAttack]SpecialOverride   `yaml:"day" json:"day,omitempty"`
	Night      map[NightAttack]SpecialOverride `yaml:"night" json:"night,omitempty"`
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (o ModifiersOverride) apply(m *Modifiers) {
	assign(&m.Power, o.Power)
	assign(&m.Accuracy, o.Accuracy)
	assign(&m.Evasion, o.Evasion)
}

func (o PhaseOverride) apply(p *PhaseModifiers) {
	o.Shelling.apply(&p.Shelling)
	o.Torpedo.apply(&p.Torpedo)
	o.Night.apply(&p.Night)
	o.Asw.apply(&p.Asw)
}

func (o FormationOverride) apply(d *FormationDef) {
	assign(&d.Protection, o.Protection)
	assign(&d.FleetAntiAir, o.FleetAntiAir)
	o.Phases.apply(&d.Phases)
	assign(&d.Split, o.Split)
	o.Bottom.apply(&d.Bottom)
}

func (o SpecialOverride) apply(d *SpecialDef) {
	assign(&d.Priority, o.Priority)
	assign(&d.BaseRate, o.BaseRate)
	assign(&d.Power, o.Power)
	assign(&d.Accuracy, o.Accuracy)
}

func mergeInto[K comparable, V any, O interface{ apply(*V) }](dst map[K]V, src map[K]O) {
	for k, o := range src {
		cur := dst[k]
		o.apply(&cur)
		dst[k] = cur
	}
}

// Merge deep-merges the partial override o onto a copy of s: every field
// present in o replaces the field in s, last write wins.
//
// Postcondition: s is unchanged; the result is validated.
func (s *Set) Merge(o *Override) (*Set, error) {
	out := s.Clone()
	if o == nil {
		return out, nil
	}
	mergeInto(out.Formations, o.Formations)
	mergeInto(out.Day, o.Day)
	mergeInto(out.Night, o.Night)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Parse decodes a YAML partial override.
func Parse(data []byte) (*Override, error) {
	var o Override
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("rules: parsing: %w", err)
	}
	return &o, nil
}

// LoadFile reads a YAML partial override and merges it over Default.
//
// Precondition: path names a readable YAML file.
// Postcondition: Returns a validated Set or a non-nil error.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: reading %q: %w", path, err)
	}
	o, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Default().Merge(o)
}

func positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidDefinition, name, v)
	}
	return nil
}

func validatePhase(prefix string, p PhaseModifiers) []error {
	var errs []error
	for name, m := range map[string]Modifiers{
		"shelling": p.Shelling, "torpedo": p.Torpedo, "night": p.Night, "asw": p.Asw,
	} {
		if err := positive(prefix+"."+name+".power", m.Power); err != nil {
			errs = append(errs, err)
		}
		if err := positive(prefix+"."+name+".accuracy", m.Accuracy); err != nil {
			errs = append(errs, err)
		}
		if err := positive(prefix+"."+name+".evasion", m.Evasion); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Validate checks every definition.
//
// Postcondition: Returns nil iff every key is known and every value is in
// range; otherwise the error wraps ErrInvalidDefinition once per violation.
func (s *Set) Validate() error {
	var errs []error
	for f, d := range s.Formations {
		if !f.Known() {
			errs = append(errs, fmt.Errorf("%w: unknown formation %q", ErrInvalidDefinition, f))
			continue
		}
		if d.Protection < 0 || d.Protection > 1 {
			errs = append(errs, fmt.Errorf("%w: %s.protection must be in [0,1], got %v", ErrInvalidDefinition, f, d.Protection))
		}
		if err := positive(string(f)+".fleet_anti_air", d.FleetAntiAir); err != nil {
			errs = append(errs, err)
		}
		errs = append(errs, validatePhase(string(f), d.Phases)...)
		if d.Split {
			errs = append(errs, validatePhase(string(f)+".bottom", d.Bottom)...)
		}
	}
	for a, d := range s.Day {
		if !a.Known() {
			errs = append(errs, fmt.Errorf("%w: unknown day attack %q", ErrInvalidDefinition, a))
			continue
		}
		errs = append(errs, validateSpecial("day."+string(a), d)...)
	}
	for a, d := range s.Night {
		if !a.Known() {
			errs = append(errs, fmt.Errorf("%w: unknown night attack %q", ErrInvalidDefinition, a))
			continue
		}
		errs = append(errs, validateSpecial("night."+string(a), d)...)
	}
	return errors.Join(errs...)
}

func validateSpecial(prefix string, d SpecialDef) []error {
	var errs []error
	for name, v := range map[string]float64{"base_rate": d.BaseRate, "power": d.Power, "accuracy": d.Accuracy} {
		if err := positive(prefix+"."+name, v); err != nil {
			errs = append(errs, err)
		}
	}
	if d.Priority < 0 {
		errs = append(errs, fmt.Errorf("%w: %s.priority must be non-negative", ErrInvalidDefinition, prefix))
	}
	return errs
}
