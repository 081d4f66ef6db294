package fleet

// AirState is the outcome of the aerial combat phase from the own side's view.
type AirState int

const (
	AirSupremacy AirState = iota
	AirSuperiority
	AirParity
	AirDenial
	AirIncapability
)

var airStateNames = [...]string{"AS+", "AS", "AP", "AD", "AI"}

// String returns the short air state code.
func (a AirState) String() string {
	if a < 0 || int(a) >= len(airStateNames) {
		return "unknown"
	}
	return airStateNames[a]
}

// ParseAirState resolves a short air state code.
func ParseAirState(s string) (AirState, bool) {
	for i, n := range airStateNames {
		if n == s {
			return AirState(i), true
		}
	}
	return 0, false
}

// AirStateOf classifies own fighter power against enemy fighter power:
// supremacy at 3x, superiority at 1.5x, parity at 2/3, denial at 1/3.
func AirStateOf(own, enemy int) AirState {
	o, e := float64(own), float64(enemy)
	switch {
	case o >= 3*e:
		return AirSupremacy
	case o >= 1.5*e:
		return AirSuperiority
	case 3*o >= 2*e:
		return AirParity
	case 3*o >= e:
		return AirDenial
	}
	return AirIncapability
}

// ContactTriggerDenominator is the denominator of the contact trigger rate.
// Contact cannot trigger below parity, reported as 0.
func (a AirState) ContactTriggerDenominator() float64 {
	switch a {
	case AirSupremacy:
		return 25
	case AirSuperiority:
		return 40
	case AirParity:
		return 55
	}
	return 0
}

// ContactSelectionDivisor is the divisor applied to a plane's LoS when it is
// considered as contact plane.
func (a AirState) ContactSelectionDivisor() float64 {
	switch a {
	case AirSupremacy:
		return 14
	case AirSuperiority:
		return 16
	}
	return 18
}
