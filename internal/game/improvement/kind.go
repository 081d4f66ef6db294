package improvement

// Kind names one improvement bonus.
type Kind int

const (
	ContactSelection Kind = iota
	FighterPower
	AdjustedAntiAir
	FleetAntiAir
	ShellingPower
	ShellingAccuracy
	TorpedoPower
	TorpedoAccuracy
	TorpedoEvasion
	NightPower
	NightAccuracy
	AswPower
	AswAccuracy
	DefensePower
	EffectiveLos

	numKinds
)

var kindKeys = [numKinds]string{
	"contact_selection",
	"fighter_power",
	"adjusted_anti_air",
	"fleet_anti_air",
	"shelling_power",
	"shelling_accuracy",
	"torpedo_power",
	"torpedo_accuracy",
	"torpedo_evasion",
	"night_power",
	"night_accuracy",
	"asw_power",
	"asw_accuracy",
	"defense_power",
	"effective_los",
}

// Kinds returns every bonus kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// String returns the snake_case key.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindKeys[k]
}

// ParseKind resolves a snake_case key.
func ParseKind(key string) (Kind, bool) {
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), true
		}
	}
	return 0, false
}
