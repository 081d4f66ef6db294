package battle

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
)

// Hit-rate basis bounds.
const (
	MinBasis = 10
	MaxBasis = 96
)

// HitRateParams are the inputs of one hit-rate evaluation. Zero
// MoraleModifier and CriticalRateMultiplier mean 1.
type HitRateParams struct {
	AccuracyTerm           float64
	EvasionTerm            float64
	MoraleModifier         float64
	CriticalRateMultiplier float64
	// HitRateBonus is in percentage points.
	HitRateBonus float64
	// CriticalRateBonus is a fraction.
	CriticalRateBonus float64
}

// HitRateResult is the miss/normal/critical distribution of one attack.
type HitRateResult struct {
	Basis        float64 `json:"basis"`
	HitRate      float64 `json:"hit_rate"`
	CriticalRate float64 `json:"critical_rate"`
	NormalRate   float64 `json:"normal_rate"`
}

// HitRate evaluates p.
//
// Postcondition: MinBasis <= Basis <= MaxBasis; HitRate <= 1;
// CriticalRate <= 1; NormalRate == HitRate - CriticalRate, which is negative
// when a critical bonus lifts CriticalRate above HitRate.
func HitRate(p HitRateParams) HitRateResult {
	morale := p.MoraleModifier
	if morale == 0 {
		morale = 1
	}
	critMult := p.CriticalRateMultiplier
	if critMult == 0 {
		critMult = 1
	}
	basis := (p.AccuracyTerm - p.EvasionTerm) * morale
	basis = math.Min(math.Max(basis, MinBasis), MaxBasis)

	hit := math.Min((math.Floor(basis)+1+p.HitRateBonus)/100, 1)
	crit := math.Min((math.Floor(math.Sqrt(basis)*critMult)+1+p.CriticalRateBonus*100)/100, 1)
	return HitRateResult{
		Basis:        basis,
		HitRate:      hit,
		CriticalRate: crit,
		NormalRate:   hit - crit,
	}
}

// Outcome is a sampled attack result.
type Outcome int

const (
	Miss Outcome = iota
	Normal
	Critical
)

var outcomeNames = [...]string{"miss", "normal", "critical"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// SampleOutcome draws one outcome from r. Critical occupies the lowest
// thresholds, then normal; the remainder is a miss. A negative NormalRate
// leaves no normal band.
//
// Precondition: src must be non-nil.
func SampleOutcome(r HitRateResult, src roll.Source) Outcome {
	switch roll.Sample([]float64{r.CriticalRate, max(r.NormalRate, 0)}, src) {
	case 0:
		return Critical
	case 1:
		return Normal
	default:
		return Miss
	}
}

// EvasionTerm applies the two-stage soft cap to a raw evasion value.
func EvasionTerm(raw float64) float64 {
	switch {
	case raw >= 65:
		return math.Floor(55 + 2*math.Sqrt(raw-65))
	case raw >= 40:
		return math.Floor(40 + 3*math.Sqrt(raw-40))
	default:
		return math.Floor(raw)
	}
}
