package ship

// DamageState is the damage band derived from current and maximum HP.
type DamageState int

const (
	Less DamageState = iota
	Shouha
	Chuuha
	Taiha
	Sunk
)

var damageStateNames = [...]string{"less", "shouha", "chuuha", "taiha", "sunk"}

// String returns the lower-case band name.
func (d DamageState) String() string {
	if d < 0 || int(d) >= len(damageStateNames) {
		return "unknown"
	}
	return damageStateNames[d]
}

// DamageStateOf classifies current HP against max HP at the fixed 75/50/25/0
// percent thresholds.
//
// Precondition: max > 0.
func DamageStateOf(current, max int) DamageState {
	switch {
	case current <= 0:
		return Sunk
	case current*4 <= max:
		return Taiha
	case current*2 <= max:
		return Chuuha
	case current*4 <= max*3:
		return Shouha
	}
	return Less
}

// ShellingModifier is the day shelling power multiplier of the band.
func (d DamageState) ShellingModifier() float64 {
	switch d {
	case Chuuha:
		return 0.7
	case Taiha:
		return 0.4
	case Sunk:
		return 0
	}
	return 1
}

// TorpedoModifier is the torpedo power multiplier of the band.
func (d DamageState) TorpedoModifier() float64 {
	switch d {
	case Chuuha:
		return 0.8
	case Taiha, Sunk:
		return 0
	}
	return 1
}

// NightModifier is the night battle power multiplier of the band.
func (d DamageState) NightModifier() float64 { return d.ShellingModifier() }

// Health holds maximum and current HP.
type Health struct {
	Max     int
	Current int
}

// State returns the damage band.
func (h Health) State() DamageState {
	if h.Max <= 0 {
		return Less
	}
	return DamageStateOf(h.Current, h.Max)
}

// MoraleState is the condition band derived from a morale value.
type MoraleState int

const (
	Sparkle MoraleState = iota
	Normal
	Orange
	Red
)

// DefaultMorale is the morale of a ship with no recorded condition.
const DefaultMorale = 49

// MoraleStateOf classifies morale: sparkle >= 53, normal >= 33, orange >= 20.
func MoraleStateOf(morale int) MoraleState {
	switch {
	case morale >= 53:
		return Sparkle
	case morale >= 33:
		return Normal
	case morale >= 20:
		return Orange
	}
	return Red
}

// AccuracyModifier is the attacker-side hit multiplier of the band.
func (m MoraleState) AccuracyModifier() float64 {
	return [...]float64{1.2, 1, 0.8, 0.5}[m]
}

// DefenderModifier is the multiplier applied to attacks aimed at a ship in
// this band.
func (m MoraleState) DefenderModifier() float64 {
	return [...]float64{0.7, 1, 1.2, 1.4}[m]
}
