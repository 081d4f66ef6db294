package gear

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/improvement"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// State is the caller-supplied per-instance state of one gear.
type State struct {
	GearID int `json:"gear_id"`
	Stars  int `json:"stars,omitempty"`
	Exp    int `json:"exp,omitempty"`
}

// Gear is a MasterGear combined with its improvement level and proficiency.
type Gear struct {
	*master.MasterGear
	Stars       int
	Proficiency Proficiency
	Improvement improvement.Bonuses
}

// Source resolves gear ids.
type Source interface {
	Gear(id int) (*master.MasterGear, bool)
}

// Compose builds a live Gear.
//
// Precondition: src must be non-nil; resolver may be nil.
// Postcondition: ok is false iff st.GearID is unknown.
func Compose(src Source, resolver *improvement.Resolver, st State) (*Gear, bool) {
	m, ok := src.Gear(st.GearID)
	if !ok {
		return nil, false
	}
	return New(m, resolver, st.Stars, st.Exp), true
}

// New builds a live Gear from a known master spec. Stars are clamped to
// [0, 10] and exp to [0, MaxExp].
//
// Precondition: m must be non-nil.
func New(m *master.MasterGear, resolver *improvement.Resolver, stars, exp int) *Gear {
	stars = clamp(stars, 0, 10)
	exp = clamp(exp, 0, MaxExp)
	return &Gear{
		MasterGear:  m,
		Stars:       stars,
		Proficiency: Proficiency{Exp: exp, Bucket: bucketOf(m)},
		Improvement: resolver.Resolve(m).At(stars),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func bucketOf(m *master.MasterGear) Bucket {
	switch {
	case m.Is(master.GearFighter):
		return BucketFighter
	case m.Category == master.SeaplaneBomber:
		return BucketSeaplaneBomber
	}
	return BucketOther
}

// State returns the per-instance state this Gear was built from.
func (g *Gear) State() State {
	return State{GearID: g.ID, Stars: g.Stars, Exp: g.Proficiency.Exp}
}

// Ace returns the proficiency ace level.
func (g *Gear) Ace() int { return g.Proficiency.Ace() }

// Bonus returns the improvement bonus of kind k.
func (g *Gear) Bonus(k improvement.Kind) float64 { return g.Improvement.Get(k) }

// InAirCombat reports whether the plane takes part in the aerial combat phase.
func (g *Gear) InAirCombat() bool {
	if !g.Is(master.GearAircraft) {
		return false
	}
	return !g.Category.Is(master.CbRecon, master.CbReconII, master.ReconSeaplane, master.LargeFlyingBoat,
		master.Autogyro, master.AntiSubPatrolAircraft, master.LandBasedRecon, master.JetRecon)
}

// IsAttacker reports whether the plane delivers an airstrike.
func (g *Gear) IsAttacker() bool {
	return g.Is(master.GearDiveBomber) || g.Is(master.GearTorpedoBomber) ||
		g.Category.Is(master.SeaplaneBomber, master.LandBasedAttackAircraft, master.HeavyBomber)
}

// FighterPower returns the sortie air power of this plane carried in a slot
// of the given size: floor(aa * sqrt(slot) + sqrt(exp/10) + levelBonus), with
// aa = antiAir + 1.5 * interception + improvement for land-based fighters.
//
// Postcondition: Returns 0 for slot <= 0 or planes outside air combat.
func (g *Gear) FighterPower(slot int) int {
	if slot <= 0 || !g.InAirCombat() {
		return 0
	}
	aa := float64(g.AntiAir) + g.Bonus(improvement.FighterPower)
	if g.Category == master.InterceptorFighter {
		aa += 1.5 * float64(g.Interception)
	}
	p := &g.Proficiency
	return int(math.Floor(aa*math.Sqrt(float64(slot)) + p.InternalBonus() + p.LevelBonus()))
}

// InterceptionPower returns the air defense power of this plane:
// aa = antiAir + interception + 2 * antiBomber + improvement.
func (g *Gear) InterceptionPower(slot int) int {
	if slot <= 0 || !g.Is(master.GearAircraft) {
		return 0
	}
	aa := float64(g.AntiAir+g.Interception+2*g.AntiBomber) + g.Bonus(improvement.FighterPower)
	p := &g.Proficiency
	return int(math.Floor(aa*math.Sqrt(float64(slot)) + p.InternalBonus() + p.LevelBonus()))
}

// AdjustedAntiAir returns this gear's contribution to ship adjusted anti-air:
// multiplier * antiAir + improvement.
func (g *Gear) AdjustedAntiAir() float64 {
	var m float64
	switch {
	case g.Is(master.GearAntiAirGun):
		m = 6
	case g.Is(master.GearHighAngleMount), g.Is(master.GearFireDirector):
		m = 4
	case g.Is(master.GearRadar):
		m = 3
	}
	return m*float64(g.AntiAir) + g.Bonus(improvement.AdjustedAntiAir)
}

// FleetAntiAir returns this gear's contribution to fleet anti-air.
func (g *Gear) FleetAntiAir() float64 {
	var m float64
	switch {
	case g.Category == master.AntiAirShell:
		m = 0.6
	case g.Is(master.GearRadar):
		m = 0.4
	case g.Is(master.GearHighAngleMount), g.Is(master.GearFireDirector):
		m = 0.35
	default:
		m = 0.2
	}
	return m*float64(g.AntiAir) + g.Bonus(improvement.FleetAntiAir)
}

// CanTriggerContact reports whether the plane counts toward contact trigger.
func (g *Gear) CanTriggerContact() bool {
	return g.Category.Is(master.CbRecon, master.CbReconII, master.ReconSeaplane, master.LargeFlyingBoat)
}

// CanBeSelectedForContact reports whether the plane can be chosen as contact plane.
func (g *Gear) CanBeSelectedForContact() bool {
	return g.CanTriggerContact() || g.Category.Is(master.CbTorpedoBomber, master.JetRecon, master.LandBasedRecon)
}

// ContactTriggerFactor returns 0.04 * los * sqrt(slot) for trigger-capable planes.
func (g *Gear) ContactTriggerFactor(slot int) float64 {
	if slot <= 0 || !g.CanTriggerContact() {
		return 0
	}
	return 0.04 * float64(g.Los) * math.Sqrt(float64(slot))
}

// ContactSelectionRate returns (los + improvement) / divisor, capped at 1.
//
// Precondition: divisor > 0.
func (g *Gear) ContactSelectionRate(divisor float64) float64 {
	if !g.CanBeSelectedForContact() {
		return 0
	}
	return math.Min((float64(g.Los)+g.Bonus(improvement.ContactSelection))/divisor, 1)
}

// ContactMultiplier returns the air-strike power multiplier applied when this
// plane is the contact plane.
func (g *Gear) ContactMultiplier() float64 {
	switch {
	case g.Accuracy >= 3:
		return 1.2
	case g.Accuracy == 2:
		return 1.17
	}
	return 1.12
}
