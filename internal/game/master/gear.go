package master

import "sort"

// GearAttr is a derived tag on a MasterGear. Attributes are combined as a
// bit set.
type GearAttr uint64

const (
	GearAbyssal GearAttr = 1 << iota
	GearMainGun
	GearSecondaryGun
	GearHighAngleMount
	GearHighAngleMountWithFD
	GearRadar
	GearSurfaceRadar
	GearAirRadar
	GearAntiAirGun
	GearConcentratedAAGun
	GearTorpedo
	GearLateModelTorpedo
	GearSubmarineRadar
	GearSonar
	GearDepthCharge
	GearDepthChargeProjector
	GearAircraft
	GearCarrierBased
	GearFighter
	GearDiveBomber
	GearTorpedoBomber
	GearRecon
	GearObservationSeaplane
	GearSeaplaneBomber
	GearJet
	GearLandBased
	GearAntiSubAircraft
	GearApShell
	GearAntiAirShell
	GearFireDirector
	GearSearchlight
	GearStarShell
	GearLookouts
	GearSkilledLookouts
	GearZuiun
	GearSuisei634
	GearTurbine
	GearBoiler
	GearNewModelBoiler
	GearLargeCaliberGun
	GearNightAircraft
	GearNightRecon
)

var gearAttrKeys = map[GearAttr]string{
	GearAbyssal:              "abyssal",
	GearMainGun:              "main_gun",
	GearSecondaryGun:         "secondary_gun",
	GearHighAngleMount:       "high_angle_mount",
	GearHighAngleMountWithFD: "high_angle_mount_with_fd",
	GearRadar:                "radar",
	GearSurfaceRadar:         "surface_radar",
	GearAirRadar:             "air_radar",
	GearAntiAirGun:           "anti_air_gun",
	GearConcentratedAAGun:    "concentrated_aa_gun",
	GearTorpedo:              "torpedo",
	GearLateModelTorpedo:     "late_model_torpedo",
	GearSubmarineRadar:       "submarine_radar",
	GearSonar:                "sonar",
	GearDepthCharge:          "depth_charge",
	GearDepthChargeProjector: "depth_charge_projector",
	GearAircraft:             "aircraft",
	GearCarrierBased:         "carrier_based",
	GearFighter:              "fighter",
	GearDiveBomber:           "dive_bomber",
	GearTorpedoBomber:        "torpedo_bomber",
	GearRecon:                "recon",
	GearObservationSeaplane:  "observation_seaplane",
	GearSeaplaneBomber:       "seaplane_bomber",
	GearJet:                  "jet",
	GearLandBased:            "land_based",
	GearAntiSubAircraft:      "anti_sub_aircraft",
	GearApShell:              "ap_shell",
	GearAntiAirShell:         "anti_air_shell",
	GearFireDirector:         "fire_director",
	GearSearchlight:          "searchlight",
	GearStarShell:            "star_shell",
	GearLookouts:             "lookouts",
	GearSkilledLookouts:      "skilled_lookouts",
	GearZuiun:                "zuiun",
	GearSuisei634:            "suisei_634",
	GearTurbine:              "turbine",
	GearBoiler:               "boiler",
	GearNewModelBoiler:       "new_model_boiler",
	GearLargeCaliberGun:      "large_caliber_gun",
	GearNightAircraft:        "night_aircraft",
	GearNightRecon:           "night_recon",
}

// ParseGearAttr resolves an attribute key.
func ParseGearAttr(key string) (GearAttr, bool) {
	for a, k := range gearAttrKeys {
		if k == key {
			return a, true
		}
	}
	return 0, false
}

// Has reports whether every bit of x is set in a.
func (a GearAttr) Has(x GearAttr) bool { return a&x == x }

// Keys returns the sorted keys of every attribute set in a.
func (a GearAttr) Keys() []string {
	var out []string
	for attr, k := range gearAttrKeys {
		if a.Has(attr) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Icon ids referenced by the attribute rules.
const (
	IconHighAngleMount = 16
)

// GearStats are the raw stat fields of a gear specification.
type GearStats struct {
	Firepower    int
	Torpedo      int
	AntiAir      int
	Bombing      int
	Asw          int
	Los          int
	Accuracy     int
	Evasion      int
	Interception int
	AntiBomber   int
	Armor        int
	Speed        int
	Range        int
	Radius       int
}

// MasterGear is the immutable specification of one gear.
type MasterGear struct {
	ID         int
	Name       string
	Category   Category
	Icon       int
	Improvable bool
	GearStats
	Attrs GearAttr
}

// Is reports whether the gear carries attribute a.
func (g *MasterGear) Is(a GearAttr) bool { return g.Attrs.Has(a) }

// IsAbyssal reports whether the gear belongs to the enemy side.
func (g *MasterGear) IsAbyssal() bool { return g.Is(GearAbyssal) }

// gearAttrRule derives one attribute from the raw fields of a gear. Rules are
// evaluated in order so later rules may depend on attributes set earlier.
type gearAttrRule struct {
	attr  GearAttr
	match func(g *MasterGear) bool
}

var gearAttrRules = []gearAttrRule{
	{GearAbyssal, func(g *MasterGear) bool { return g.ID > 1500 }},
	{GearMainGun, func(g *MasterGear) bool {
		return g.Category.Is(SmallMainGun, MediumMainGun, LargeMainGun, LargeMainGunII)
	}},
	{GearLargeCaliberGun, func(g *MasterGear) bool { return g.Category.Is(LargeMainGun, LargeMainGunII) }},
	{GearSecondaryGun, func(g *MasterGear) bool { return g.Category == SecondaryGun }},
	{GearHighAngleMount, func(g *MasterGear) bool { return g.Icon == IconHighAngleMount }},
	{GearHighAngleMountWithFD, func(g *MasterGear) bool {
		return g.Is(GearHighAngleMount) && g.AntiAir >= 8
	}},
	{GearRadar, func(g *MasterGear) bool { return g.Category.Is(SmallRadar, LargeRadar, LargeRadarII) }},
	{GearSurfaceRadar, func(g *MasterGear) bool { return g.Is(GearRadar) && g.Accuracy >= 3 }},
	{GearAirRadar, func(g *MasterGear) bool { return g.Is(GearRadar) && g.AntiAir >= 2 }},
	{GearAntiAirGun, func(g *MasterGear) bool { return g.Category == AntiAirGun }},
	{GearConcentratedAAGun, func(g *MasterGear) bool { return g.Category == AntiAirGun && g.AntiAir >= 9 }},
	{GearTorpedo, func(g *MasterGear) bool { return g.Category.Is(Torpedo, SubmarineTorpedo) }},
	{GearSonar, func(g *MasterGear) bool { return g.Category.Is(Sonar, LargeSonar) }},
	{GearAircraft, func(g *MasterGear) bool {
		return g.Category.Is(CbFighter, CbDiveBomber, CbTorpedoBomber, CbRecon, CbReconII,
			ReconSeaplane, SeaplaneBomber, SeaplaneFighter, LargeFlyingBoat, Autogyro,
			AntiSubPatrolAircraft, LandBasedAttackAircraft, InterceptorFighter, LandBasedRecon,
			HeavyBomber, JetFighter, JetFighterBomber, JetTorpedoBomber, JetRecon)
	}},
	{GearCarrierBased, func(g *MasterGear) bool {
		return g.Category.Is(CbFighter, CbDiveBomber, CbTorpedoBomber, CbRecon, CbReconII,
			JetFighter, JetFighterBomber, JetTorpedoBomber, JetRecon)
	}},
	{GearFighter, func(g *MasterGear) bool {
		return g.Category.Is(CbFighter, SeaplaneFighter, InterceptorFighter, JetFighter)
	}},
	{GearDiveBomber, func(g *MasterGear) bool { return g.Category.Is(CbDiveBomber, JetFighterBomber) }},
	{GearTorpedoBomber, func(g *MasterGear) bool { return g.Category.Is(CbTorpedoBomber, JetTorpedoBomber) }},
	{GearRecon, func(g *MasterGear) bool {
		return g.Category.Is(CbRecon, CbReconII, ReconSeaplane, LargeFlyingBoat, LandBasedRecon, JetRecon)
	}},
	{GearObservationSeaplane, func(g *MasterGear) bool { return g.Category.Is(ReconSeaplane, SeaplaneBomber) }},
	{GearSeaplaneBomber, func(g *MasterGear) bool { return g.Category == SeaplaneBomber }},
	{GearJet, func(g *MasterGear) bool {
		return g.Category.Is(JetFighter, JetFighterBomber, JetTorpedoBomber, JetRecon)
	}},
	{GearLandBased, func(g *MasterGear) bool {
		return g.Category.Is(LandBasedAttackAircraft, InterceptorFighter, LandBasedRecon, HeavyBomber)
	}},
	{GearAntiSubAircraft, func(g *MasterGear) bool {
		return g.Asw >= 1 && g.Category.Is(CbDiveBomber, CbTorpedoBomber, SeaplaneBomber,
			Autogyro, AntiSubPatrolAircraft, LargeFlyingBoat)
	}},
	{GearApShell, func(g *MasterGear) bool { return g.Category == ApShell }},
	{GearAntiAirShell, func(g *MasterGear) bool { return g.Category == AntiAirShell }},
	{GearFireDirector, func(g *MasterGear) bool { return g.Category == AntiAirFireDirector }},
	{GearSearchlight, func(g *MasterGear) bool { return g.Category.Is(Searchlight, LargeSearchlight) }},
	{GearStarShell, func(g *MasterGear) bool { return g.Category == StarShell }},
	{GearLookouts, func(g *MasterGear) bool { return g.Category == SurfaceShipPersonnel }},
}

// deriveGearAttrs applies the rule table and then the explicit id lists.
func deriveGearAttrs(g *MasterGear, ids map[GearAttr]map[int]bool) GearAttr {
	g.Attrs = 0
	for _, r := range gearAttrRules {
		if r.match(g) {
			g.Attrs |= r.attr
		}
	}
	for attr, set := range ids {
		if set[g.ID] {
			g.Attrs |= attr
		}
	}
	return g.Attrs
}
