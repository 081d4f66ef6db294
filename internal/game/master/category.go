// Package master holds the immutable gear and ship specifications and the
// adapter that builds them from raw master tables.
package master

import "fmt"

// Category is the single enumerated equipment category of a gear.
type Category int

const (
	CategoryUnknown Category = iota
	SmallMainGun
	MediumMainGun
	LargeMainGun
	SecondaryGun
	Torpedo
	CbFighter
	CbDiveBomber
	CbTorpedoBomber
	CbRecon
	ReconSeaplane
	SeaplaneBomber
	SmallRadar
	LargeRadar
	Sonar
	DepthCharge
	ExtraArmor
	EngineImprovement
	AntiAirShell
	ApShell
	VtFuze
	AntiAirGun
	MidgetSubmarine
	EmergencyRepair
	LandingCraft
	Autogyro
	AntiSubPatrolAircraft
	ExtraArmorMedium
	ExtraArmorLarge
	Searchlight
	SupplyContainer
	RepairFacility
	SubmarineTorpedo
	StarShell
	CommandFacility
	AviationPersonnel
	AntiAirFireDirector
	AntiGroundEquipment
	LargeMainGunII
	SurfaceShipPersonnel
	LargeSonar
	LargeFlyingBoat
	LargeSearchlight
	CombatRation
	Supplies
	SeaplaneFighter
	AmphibiousTank
	LandBasedAttackAircraft
	InterceptorFighter
	LandBasedRecon
	TransportMaterials
	SubmarineEquipment
	HeavyBomber
	JetFighter
	JetFighterBomber
	JetTorpedoBomber
	JetRecon
	LargeRadarII
	CbReconII
)

var categoryKeys = map[Category]string{
	CategoryUnknown:         "unknown",
	SmallMainGun:            "small_main_gun",
	MediumMainGun:           "medium_main_gun",
	LargeMainGun:            "large_main_gun",
	SecondaryGun:            "secondary_gun",
	Torpedo:                 "torpedo",
	CbFighter:               "cb_fighter",
	CbDiveBomber:            "cb_dive_bomber",
	CbTorpedoBomber:         "cb_torpedo_bomber",
	CbRecon:                 "cb_recon",
	ReconSeaplane:           "recon_seaplane",
	SeaplaneBomber:          "seaplane_bomber",
	SmallRadar:              "small_radar",
	LargeRadar:              "large_radar",
	Sonar:                   "sonar",
	DepthCharge:             "depth_charge",
	ExtraArmor:              "extra_armor",
	EngineImprovement:       "engine_improvement",
	AntiAirShell:            "anti_air_shell",
	ApShell:                 "ap_shell",
	VtFuze:                  "vt_fuze",
	AntiAirGun:              "anti_air_gun",
	MidgetSubmarine:         "midget_submarine",
	EmergencyRepair:         "emergency_repair",
	LandingCraft:            "landing_craft",
	Autogyro:                "autogyro",
	AntiSubPatrolAircraft:   "anti_sub_patrol_aircraft",
	ExtraArmorMedium:        "extra_armor_medium",
	ExtraArmorLarge:         "extra_armor_large",
	Searchlight:             "searchlight",
	SupplyContainer:         "supply_container",
	RepairFacility:          "repair_facility",
	SubmarineTorpedo:        "submarine_torpedo",
	StarShell:               "star_shell",
	CommandFacility:         "command_facility",
	AviationPersonnel:       "aviation_personnel",
	AntiAirFireDirector:     "anti_air_fire_director",
	AntiGroundEquipment:     "anti_ground_equipment",
	LargeMainGunII:          "large_main_gun_ii",
	SurfaceShipPersonnel:    "surface_ship_personnel",
	LargeSonar:              "large_sonar",
	LargeFlyingBoat:         "large_flying_boat",
	LargeSearchlight:        "large_searchlight",
	CombatRation:            "combat_ration",
	Supplies:                "supplies",
	SeaplaneFighter:         "seaplane_fighter",
	AmphibiousTank:          "amphibious_tank",
	LandBasedAttackAircraft: "land_based_attack_aircraft",
	InterceptorFighter:      "interceptor_fighter",
	LandBasedRecon:          "land_based_recon",
	TransportMaterials:      "transport_materials",
	SubmarineEquipment:      "submarine_equipment",
	HeavyBomber:             "heavy_bomber",
	JetFighter:              "jet_fighter",
	JetFighterBomber:        "jet_fighter_bomber",
	JetTorpedoBomber:        "jet_torpedo_bomber",
	JetRecon:                "jet_recon",
	LargeRadarII:            "large_radar_ii",
	CbReconII:               "cb_recon_ii",
}

var categoriesByKey = func() map[string]Category {
	out := make(map[string]Category, len(categoryKeys))
	for c, k := range categoryKeys {
		out[k] = c
	}
	return out
}()

// String returns the snake_case key of the category.
func (c Category) String() string {
	if k, ok := categoryKeys[c]; ok {
		return k
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory resolves a category key.
//
// Postcondition: ok is false iff key names no category.
func ParseCategory(key string) (Category, bool) {
	c, ok := categoriesByKey[key]
	return c, ok
}

// Is reports whether c is any of the given categories.
func (c Category) Is(cs ...Category) bool {
	for _, x := range cs {
		if c == x {
			return true
		}
	}
	return false
}

// defaultCategoryIDs maps the raw master category id to a Category.
var defaultCategoryIDs = map[int]Category{
	1: SmallMainGun, 2: MediumMainGun, 3: LargeMainGun, 4: SecondaryGun,
	5: Torpedo, 6: CbFighter, 7: CbDiveBomber, 8: CbTorpedoBomber,
	9: CbRecon, 10: ReconSeaplane, 11: SeaplaneBomber, 12: SmallRadar,
	13: LargeRadar, 14: Sonar, 15: DepthCharge, 16: ExtraArmor,
	17: EngineImprovement, 18: AntiAirShell, 19: ApShell, 20: VtFuze,
	21: AntiAirGun, 22: MidgetSubmarine, 23: EmergencyRepair, 24: LandingCraft,
	25: Autogyro, 26: AntiSubPatrolAircraft, 27: ExtraArmorMedium, 28: ExtraArmorLarge,
	29: Searchlight, 30: SupplyContainer, 31: RepairFacility, 32: SubmarineTorpedo,
	33: StarShell, 34: CommandFacility, 35: AviationPersonnel, 36: AntiAirFireDirector,
	37: AntiGroundEquipment, 38: LargeMainGunII, 39: SurfaceShipPersonnel, 40: LargeSonar,
	41: LargeFlyingBoat, 42: LargeSearchlight, 43: CombatRation, 44: Supplies,
	45: SeaplaneFighter, 46: AmphibiousTank, 47: LandBasedAttackAircraft, 48: InterceptorFighter,
	49: LandBasedRecon, 50: TransportMaterials, 51: SubmarineEquipment, 53: HeavyBomber,
	56: JetFighter, 57: JetFighterBomber, 58: JetTorpedoBomber, 59: JetRecon,
	93: LargeRadarII, 94: CbReconII,
}
