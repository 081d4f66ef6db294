// Package gear composes master gear specifications with per-instance state
// into live Gear values and holds the ordered Equipment container.
package gear

import "math"

// AceThresholds maps an ace level (index) to the minimum experience.
var AceThresholds = [8]int{0, 10, 25, 40, 55, 70, 85, 100}

// MaxExp is the largest experience value a plane can hold.
const MaxExp = 120

var (
	fighterLevelBonus        = [8]float64{0, 0, 2, 5, 9, 14, 14, 22}
	seaplaneBomberLevelBonus = [8]float64{0, 0, 1, 1, 1, 3, 3, 6}
	criticalConstants        = [8]float64{0, 1, 2, 3, 4, 5, 7, 10}
)

// Bucket selects the level-bonus table of a plane.
type Bucket int

const (
	BucketOther Bucket = iota
	BucketFighter
	BucketSeaplaneBomber
)

// AceFromExp returns the largest ace level whose threshold exp reaches.
//
// Postcondition: 0 <= result <= 7.
func AceFromExp(exp int) int {
	ace := 0
	for i, th := range AceThresholds {
		if exp >= th {
			ace = i
		}
	}
	return ace
}

// ExpFromAce returns the experience threshold of ace. Out-of-range levels are
// clamped into [0, 7].
func ExpFromAce(ace int) int {
	if ace < 0 {
		ace = 0
	}
	if ace > 7 {
		ace = 7
	}
	return AceThresholds[ace]
}

// Proficiency is the pilot-skill state of one plane.
type Proficiency struct {
	Exp    int
	Bucket Bucket
}

// Ace returns the ace level derived from Exp.
func (p Proficiency) Ace() int { return AceFromExp(p.Exp) }

// LevelBonus returns the fighter power level bonus for the plane's bucket.
func (p Proficiency) LevelBonus() float64 {
	switch p.Bucket {
	case BucketFighter:
		return fighterLevelBonus[p.Ace()]
	case BucketSeaplaneBomber:
		return seaplaneBomberLevelBonus[p.Ace()]
	}
	return 0
}

// InternalBonus returns sqrt(exp / 10).
func (p Proficiency) InternalBonus() float64 {
	return math.Sqrt(float64(p.Exp) / 10)
}

// CriticalBonus returns floor(sqrt(exp) + c[ace]) / 100, the per-plane
// critical power contribution before slot weighting.
func (p Proficiency) CriticalBonus() float64 {
	return math.Floor(math.Sqrt(float64(p.Exp))+criticalConstants[p.Ace()]) / 100
}
