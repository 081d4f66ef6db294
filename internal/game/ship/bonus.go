package ship

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// StatDelta is a set of additive stat changes.
type StatDelta struct {
	Firepower int `yaml:"firepower,omitempty" json:"firepower,omitempty"`
	Torpedo   int `yaml:"torpedo,omitempty" json:"torpedo,omitempty"`
	AntiAir   int `yaml:"anti_air,omitempty" json:"anti_air,omitempty"`
	Armor     int `yaml:"armor,omitempty" json:"armor,omitempty"`
	Asw       int `yaml:"asw,omitempty" json:"asw,omitempty"`
	Los       int `yaml:"los,omitempty" json:"los,omitempty"`
	Evasion   int `yaml:"evasion,omitempty" json:"evasion,omitempty"`
	Accuracy  int `yaml:"accuracy,omitempty" json:"accuracy,omitempty"`
	Range     int `yaml:"range,omitempty" json:"range,omitempty"`
}

// Add returns d + o.
func (d StatDelta) Add(o StatDelta) StatDelta {
	return StatDelta{
		Firepower: d.Firepower + o.Firepower,
		Torpedo:   d.Torpedo + o.Torpedo,
		AntiAir:   d.AntiAir + o.AntiAir,
		Armor:     d.Armor + o.Armor,
		Asw:       d.Asw + o.Asw,
		Los:       d.Los + o.Los,
		Evasion:   d.Evasion + o.Evasion,
		Accuracy:  d.Accuracy + o.Accuracy,
		Range:     d.Range + o.Range,
	}
}

// Scale returns d * n.
func (d StatDelta) Scale(n int) StatDelta {
	return StatDelta{
		Firepower: d.Firepower * n,
		Torpedo:   d.Torpedo * n,
		AntiAir:   d.AntiAir * n,
		Armor:     d.Armor * n,
		Asw:       d.Asw * n,
		Los:       d.Los * n,
		Evasion:   d.Evasion * n,
		Accuracy:  d.Accuracy * n,
		Range:     d.Range * n,
	}
}

// ShipFilter selects ships by id, class or hull code. An empty filter
// matches every ship; otherwise any listed criterion suffices.
type ShipFilter struct {
	IDs     []int    `yaml:"ids,omitempty"`
	Classes []int    `yaml:"classes,omitempty"`
	Types   []string `yaml:"types,omitempty"`
}

func (f ShipFilter) empty() bool { return len(f.IDs) == 0 && len(f.Classes) == 0 && len(f.Types) == 0 }

func (f ShipFilter) match(s *master.MasterShip) bool {
	if f.empty() {
		return true
	}
	return slices.Contains(f.IDs, s.ID) ||
		slices.Contains(f.Classes, int(s.Class)) ||
		slices.Contains(f.Types, s.Type.String())
}

// GearFilter selects gears by id, category key or attribute key; any listed
// criterion suffices.
type GearFilter struct {
	IDs        []int    `yaml:"ids,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Attrs      []string `yaml:"attrs,omitempty"`
}

func (f GearFilter) empty() bool {
	return len(f.IDs) == 0 && len(f.Categories) == 0 && len(f.Attrs) == 0
}

func (f GearFilter) match(g *gear.Gear) bool {
	if slices.Contains(f.IDs, g.ID) || slices.Contains(f.Categories, g.Category.String()) {
		return true
	}
	for _, key := range f.Attrs {
		if a, ok := master.ParseGearAttr(key); ok && g.Is(a) {
			return true
		}
	}
	return false
}

// BonusRule grants Bonus to a matching ship that carries at least MinCount
// matching gears improved to at least MinStars. With PerGear the bonus is
// granted once per matching gear.
type BonusRule struct {
	Name     string     `yaml:"name"`
	Ships    ShipFilter `yaml:"ships"`
	Gears    GearFilter `yaml:"gears"`
	MinCount int        `yaml:"min_count,omitempty"`
	MinStars int        `yaml:"min_stars,omitempty"`
	PerGear  bool       `yaml:"per_gear,omitempty"`
	Bonus    StatDelta  `yaml:"bonus"`
}

// BonusRules is an ordered equipment bonus table.
type BonusRules []BonusRule

type bonusFile struct {
	Rules BonusRules `yaml:"rules"`
}

// LoadBonusRules reads a YAML file holding a top-level "rules" list.
//
// Precondition: path names a readable YAML file.
// Postcondition: Returns validated rules or a non-nil error.
func LoadBonusRules(path string) (BonusRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bonus rules %q: %w", path, err)
	}
	var f bonusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing bonus rules %q: %w", path, err)
	}
	if err := f.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("bonus rules %q: %w", path, err)
	}
	return f.Rules, nil
}

// Validate checks every rule.
//
// Postcondition: Returns nil iff every rule names a gear filter and every
// key resolves.
func (r BonusRules) Validate() error {
	var errs []error
	for i, rule := range r {
		if rule.Gears.empty() {
			errs = append(errs, fmt.Errorf("rule %d (%s): gear filter is empty", i, rule.Name))
		}
		for _, key := range rule.Ships.Types {
			if _, ok := master.ParseShipType(key); !ok {
				errs = append(errs, fmt.Errorf("rule %d (%s): unknown ship type %q", i, rule.Name, key))
			}
		}
		for _, key := range rule.Gears.Categories {
			if _, ok := master.ParseCategory(key); !ok {
				errs = append(errs, fmt.Errorf("rule %d (%s): unknown category %q", i, rule.Name, key))
			}
		}
		for _, key := range rule.Gears.Attrs {
			if _, ok := master.ParseGearAttr(key); !ok {
				errs = append(errs, fmt.Errorf("rule %d (%s): unknown attribute %q", i, rule.Name, key))
			}
		}
		if rule.MinCount < 0 || rule.MinStars < 0 {
			errs = append(errs, fmt.Errorf("rule %d (%s): thresholds must be non-negative", i, rule.Name))
		}
	}
	return errors.Join(errs...)
}

// Evaluate sums the bonus of every rule that applies to s equipped with e.
func (r BonusRules) Evaluate(s *master.MasterShip, e *gear.Equipment) StatDelta {
	var total StatDelta
	for _, rule := range r {
		if !rule.Ships.match(s) {
			continue
		}
		n := e.Count(func(g *gear.Gear) bool {
			return g.Stars >= rule.MinStars && rule.Gears.match(g)
		})
		if n == 0 || n < rule.MinCount {
			continue
		}
		if rule.PerGear {
			total = total.Add(rule.Bonus.Scale(n))
		} else {
			total = total.Add(rule.Bonus)
		}
	}
	return total
}

// DefaultBonusRules returns the built-in equipment bonus table.
func DefaultBonusRules() BonusRules {
	return BonusRules{
		{
			Name:  "skilled lookouts on escorts",
			Ships: ShipFilter{Types: []string{"DE", "DD"}},
			Gears: GearFilter{IDs: []int{129}},
			Bonus: StatDelta{Firepower: 1, Torpedo: 2, Evasion: 2},
		},
		{
			Name:  "skilled lookouts on light cruisers",
			Ships: ShipFilter{Types: []string{"CL", "CLT", "CT"}},
			Gears: GearFilter{IDs: []int{129}},
			Bonus: StatDelta{Firepower: 1, Torpedo: 1, Evasion: 3},
		},
		{
			Name:    "Akizuki class high-angle mounts",
			Ships:   ShipFilter{Classes: []int{int(master.ClassAkizuki)}},
			Gears:   GearFilter{IDs: []int{122}},
			PerGear: true,
			Bonus:   StatDelta{Firepower: 1, AntiAir: 2},
		},
		{
			Name:     "improved 10cm high-angle mounts on Akizuki class",
			Ships:    ShipFilter{Classes: []int{int(master.ClassAkizuki)}},
			Gears:    GearFilter{IDs: []int{122}},
			MinStars: 4,
			Bonus:    StatDelta{Evasion: 1},
		},
		{
			Name:    "634 air group dive bombers on Ise class",
			Ships:   ShipFilter{Classes: []int{int(master.ClassIse)}},
			Gears:   GearFilter{IDs: []int{291}},
			PerGear: true,
			Bonus:   StatDelta{Firepower: 2, Evasion: 1},
		},
		{
			Name:  "submarine radar",
			Ships: ShipFilter{Types: []string{"SS", "SSV"}},
			Gears: GearFilter{IDs: []int{210}},
			Bonus: StatDelta{Evasion: 3},
		},
		{
			Name:     "surface radar pair on Nagato class",
			Ships:    ShipFilter{Classes: []int{int(master.ClassNagato)}},
			Gears:    GearFilter{Attrs: []string{"surface_radar"}},
			MinCount: 2,
			Bonus:    StatDelta{Accuracy: 1, Evasion: 1},
		},
	}
}
