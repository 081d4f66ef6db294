package battle

import "math"

// Phase caps.
const (
	ShellingCap = 220
	TorpedoCap  = 180
	NightCap    = 360
	AswCap      = 170
)

// Affine is one x*A + B stage of the attack-power pipeline.
type Affine struct {
	A float64
	B float64
}

// Scale returns a multiplicative stage.
func Scale(a float64) *Affine { return &Affine{A: a} }

func (s *Affine) apply(x float64) float64 {
	if s == nil {
		return x
	}
	return x*s.A + s.B
}

// Modifiers are the optional stages of the attack-power pipeline. A nil
// stage is the identity.
type Modifiers struct {
	A12     *Affine
	A13     *Affine
	A13Next *Affine
	A14     *Affine
	// AirPower, when set, is folded in before A14 as
	// floor((x + AirPower) * 1.5) + 25.
	AirPower *float64

	A5  *Affine
	A6  *Affine
	A11 *Affine
	// ApShell is the armor-piercing multiplier; 0 means absent.
	ApShell float64
	// ProficiencyCritical scales critical power; 0 means 1.
	ProficiencyCritical float64
}

// AttackPowerResult records every stage of one attack-power evaluation.
type AttackPowerResult struct {
	Basic    float64 `json:"basic"`
	Precap   float64 `json:"precap"`
	IsCapped bool    `json:"is_capped"`
	Capped   float64 `json:"capped"`
	Normal   float64 `json:"normal"`
	Critical float64 `json:"critical"`
}

// Softcap tapers the excess over cap with a square root.
//
// Postcondition: v <= cap returns v unchanged.
func Softcap(cap, v float64) float64 {
	if v > cap {
		return cap + math.Sqrt(v-cap)
	}
	return v
}

// AttackPower runs basic through the pre-cap chain, the soft cap and the
// post-cap chain. The floors sit exactly where the game places them.
//
// Postcondition: result.Basic == basic; result.IsCapped iff Precap > cap.
func AttackPower(basic, cap float64, m Modifiers) AttackPowerResult {
	x := basic
	x = m.A12.apply(x)
	x = m.A13.apply(x)
	x = m.A13Next.apply(x)
	if m.AirPower != nil {
		x = math.Floor((x+*m.AirPower)*1.5) + 25
	}
	x = m.A14.apply(x)
	precap := x

	capped := Softcap(cap, precap)

	normal := math.Floor(m.A5.apply(capped))
	normal = math.Floor(m.A6.apply(normal))
	normal = m.A11.apply(normal)
	if m.ApShell != 0 {
		normal = math.Floor(normal * m.ApShell)
	}

	prof := m.ProficiencyCritical
	if prof == 0 {
		prof = 1
	}
	return AttackPowerResult{
		Basic:    basic,
		Precap:   precap,
		IsCapped: precap > cap,
		Capped:   capped,
		Normal:   normal,
		Critical: math.Floor(normal * 1.5 * prof),
	}
}
