package master

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FormulaRecord is the serialised form of an improvement formula override.
type FormulaRecord struct {
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	Shape      string  `yaml:"shape" json:"shape"`
}

// EquippableTable lists allowed gear categories per ship type and per ship,
// plus the exclusive-slot exceptions.
type EquippableTable struct {
	ByType           map[string][]string `yaml:"by_type"`
	ByShip           map[int][]string    `yaml:"by_ship"`
	ExslotCategories []string            `yaml:"exslot_categories"`
	ExslotGearIDs    []int               `yaml:"exslot_gear_ids"`
	ExslotByShip     map[int][]int       `yaml:"exslot_by_ship"`
}

// Tables holds the auxiliary lookup tables that accompany the raw gear and
// ship records.
type Tables struct {
	CategoryIDs          map[int]string                   `yaml:"category_ids"`
	GearAttributeIDs     map[string][]int                 `yaml:"gear_attribute_ids"`
	ShipAttributeIDs     map[string][]int                 `yaml:"ship_attribute_ids"`
	ShipTypes            map[int]string                   `yaml:"ship_types"`
	ShipClasses          map[int]string                   `yaml:"ship_classes"`
	Equippable           EquippableTable                  `yaml:"equippable"`
	ImprovementOverrides map[int]map[string]FormulaRecord `yaml:"improvement_overrides"`
}

// LoadTables reads a YAML tables file. Keys absent from the file keep their
// zero value; callers normally merge the result over DefaultTables.
//
// Precondition: path names a readable YAML file.
// Postcondition: Returns the parsed Tables or a non-nil error.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tables %q: %w", path, err)
	}
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parsing tables %q: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, fmt.Errorf("tables %q: %w", path, err)
	}
	return t, nil
}

// Validate checks that every key referenced by the tables resolves.
//
// Postcondition: Returns nil iff every category, attribute and ship type key is known.
func (t Tables) Validate() error {
	var errs []error
	for id, key := range t.CategoryIDs {
		if _, ok := ParseCategory(key); !ok {
			errs = append(errs, fmt.Errorf("category_ids[%d]: unknown category %q", id, key))
		}
	}
	for key := range t.GearAttributeIDs {
		if _, ok := ParseGearAttr(key); !ok {
			errs = append(errs, fmt.Errorf("gear_attribute_ids: unknown attribute %q", key))
		}
	}
	for key := range t.ShipAttributeIDs {
		if _, ok := ParseShipAttr(key); !ok {
			errs = append(errs, fmt.Errorf("ship_attribute_ids: unknown attribute %q", key))
		}
	}
	for id, key := range t.ShipTypes {
		if _, ok := ParseShipType(key); !ok {
			errs = append(errs, fmt.Errorf("ship_types[%d]: unknown ship type %q", id, key))
		}
	}
	for key, cats := range t.Equippable.ByType {
		if _, ok := ParseShipType(key); !ok {
			errs = append(errs, fmt.Errorf("equippable.by_type: unknown ship type %q", key))
		}
		errs = append(errs, unknownCategories("equippable.by_type."+key, cats)...)
	}
	for id, cats := range t.Equippable.ByShip {
		errs = append(errs, unknownCategories(fmt.Sprintf("equippable.by_ship[%d]", id), cats)...)
	}
	errs = append(errs, unknownCategories("equippable.exslot_categories", t.Equippable.ExslotCategories)...)
	return errors.Join(errs...)
}

func unknownCategories(path string, keys []string) []error {
	var errs []error
	for _, k := range keys {
		if _, ok := ParseCategory(k); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown category %q", path, k))
		}
	}
	return errs
}

// Merge overlays o onto t. Map entries in o replace entries with the same key;
// non-empty lists in o replace the list in t.
//
// Postcondition: t is not modified; the returned Tables shares no maps with t.
func (t Tables) Merge(o Tables) Tables {
	out := Tables{
		CategoryIDs:          mergeMap(t.CategoryIDs, o.CategoryIDs),
		GearAttributeIDs:     mergeMap(t.GearAttributeIDs, o.GearAttributeIDs),
		ShipAttributeIDs:     mergeMap(t.ShipAttributeIDs, o.ShipAttributeIDs),
		ShipTypes:            mergeMap(t.ShipTypes, o.ShipTypes),
		ShipClasses:          mergeMap(t.ShipClasses, o.ShipClasses),
		ImprovementOverrides: mergeMap(t.ImprovementOverrides, o.ImprovementOverrides),
		Equippable: EquippableTable{
			ByType:           mergeMap(t.Equippable.ByType, o.Equippable.ByType),
			ByShip:           mergeMap(t.Equippable.ByShip, o.Equippable.ByShip),
			ExslotCategories: t.Equippable.ExslotCategories,
			ExslotGearIDs:    t.Equippable.ExslotGearIDs,
			ExslotByShip:     mergeMap(t.Equippable.ExslotByShip, o.Equippable.ExslotByShip),
		},
	}
	if len(o.Equippable.ExslotCategories) > 0 {
		out.Equippable.ExslotCategories = o.Equippable.ExslotCategories
	}
	if len(o.Equippable.ExslotGearIDs) > 0 {
		out.Equippable.ExslotGearIDs = o.Equippable.ExslotGearIDs
	}
	return out
}

func mergeMap[K comparable, V any](base, over map[K]V) map[K]V {
	out := make(map[K]V, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

var (
	surfaceCommon = []string{
		"small_radar", "engine_improvement", "anti_air_gun", "searchlight", "star_shell",
		"surface_ship_personnel", "emergency_repair", "combat_ration", "supplies",
		"anti_air_fire_director", "command_facility",
	}
	destroyerGear = []string{
		"small_main_gun", "torpedo", "sonar", "depth_charge", "supply_container",
		"landing_craft", "transport_materials",
	}
	cruiserGear = []string{
		"small_main_gun", "medium_main_gun", "secondary_gun", "torpedo", "recon_seaplane",
		"seaplane_bomber", "sonar", "depth_charge", "anti_air_shell", "ap_shell",
		"extra_armor_medium", "large_radar",
	}
	battleshipGear = []string{
		"medium_main_gun", "large_main_gun", "large_main_gun_ii", "secondary_gun",
		"recon_seaplane", "seaplane_bomber", "large_radar", "large_radar_ii",
		"anti_air_shell", "ap_shell", "extra_armor_large", "large_searchlight",
	}
	carrierGear = []string{
		"cb_fighter", "cb_dive_bomber", "cb_torpedo_bomber", "cb_recon", "cb_recon_ii",
		"jet_fighter", "jet_fighter_bomber", "jet_torpedo_bomber", "jet_recon",
		"extra_armor_medium", "extra_armor_large", "aviation_personnel", "large_radar",
		"secondary_gun",
	}
	submarineGear = []string{"submarine_torpedo", "submarine_equipment", "torpedo"}
)

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// DefaultTables returns the built-in auxiliary tables.
func DefaultTables() Tables {
	return Tables{
		CategoryIDs: map[int]string{},
		GearAttributeIDs: map[string][]int{
			"late_model_torpedo":     {213, 214, 383, 441, 443, 457, 461},
			"submarine_radar":        {210, 211, 384, 458},
			"depth_charge_projector": {44, 287, 288, 377, 472},
			"depth_charge":           {45, 226, 227, 378, 439},
			"zuiun":                  {26, 79, 80, 81, 207, 237, 322, 323, 490},
			"suisei_634":             {291, 292, 319},
			"turbine":                {33},
			"boiler":                 {34},
			"new_model_boiler":       {87},
			"skilled_lookouts":       {129, 412},
			"night_aircraft":         {254, 255, 257, 338, 339, 345},
			"night_recon":            {102, 469},
		},
		ShipAttributeIDs: map[string][]int{
			"kai2": {141, 418, 428, 470, 477, 478, 487, 488, 546, 548, 553, 554, 622, 623, 624, 911, 916},
		},
		ShipTypes:   map[int]string{},
		ShipClasses: map[int]string{},
		Equippable: EquippableTable{
			ByType: map[string][]string{
				"DE":  concat(surfaceCommon, destroyerGear),
				"DD":  concat(surfaceCommon, destroyerGear),
				"CL":  concat(surfaceCommon, cruiserGear),
				"CLT": concat(surfaceCommon, cruiserGear),
				"CA":  concat(surfaceCommon, cruiserGear),
				"CAV": concat(surfaceCommon, cruiserGear, []string{"seaplane_fighter", "autogyro"}),
				"CT":  concat(surfaceCommon, cruiserGear),
				"FBB": concat(surfaceCommon, battleshipGear),
				"BB":  concat(surfaceCommon, battleshipGear),
				"XBB": concat(surfaceCommon, battleshipGear),
				"BBV": concat(surfaceCommon, battleshipGear, []string{"seaplane_fighter", "autogyro"}),
				"CVL": concat(surfaceCommon, carrierGear, []string{"sonar", "depth_charge", "autogyro"}),
				"CV":  concat(surfaceCommon, carrierGear),
				"CVB": concat(surfaceCommon, carrierGear),
				"SS":  submarineGear,
				"SSV": concat(submarineGear, []string{"recon_seaplane", "seaplane_bomber"}),
				"AV":  concat(surfaceCommon, cruiserGear, []string{"seaplane_fighter", "midget_submarine", "large_flying_boat"}),
				"AO":  concat(surfaceCommon, []string{"small_main_gun", "anti_air_shell", "cb_torpedo_bomber"}),
				"AS":  concat(surfaceCommon, []string{"secondary_gun", "large_flying_boat"}),
				"AR":  concat(surfaceCommon, []string{"secondary_gun", "repair_facility"}),
				"LHA": concat(surfaceCommon, []string{"landing_craft", "autogyro", "amphibious_tank"}),
			},
			ByShip:           map[int][]string{},
			ExslotCategories: []string{"anti_air_gun", "engine_improvement", "emergency_repair", "searchlight", "supplies"},
			ExslotGearIDs:    []int{33},
			ExslotByShip:     map[int][]int{},
		},
		ImprovementOverrides: map[int]map[string]FormulaRecord{},
	}
}
