package master

import (
	"math"
	"sort"
)

// ShipType is the hull classification of a ship.
type ShipType int

const (
	ShipTypeUnknown ShipType = iota
	DE
	DD
	CL
	CLT
	CA
	CAV
	CVL
	FBB
	BB
	BBV
	CV
	XBB
	SS
	SSV
	AP
	AV
	LHA
	CVB
	AR
	AS
	CT
	AO
)

var shipTypeKeys = map[ShipType]string{
	ShipTypeUnknown: "unknown", DE: "DE", DD: "DD", CL: "CL", CLT: "CLT", CA: "CA",
	CAV: "CAV", CVL: "CVL", FBB: "FBB", BB: "BB", BBV: "BBV", CV: "CV", XBB: "XBB",
	SS: "SS", SSV: "SSV", AP: "AP", AV: "AV", LHA: "LHA", CVB: "CVB", AR: "AR",
	AS: "AS", CT: "CT", AO: "AO",
}

// String returns the hull code.
func (t ShipType) String() string {
	if k, ok := shipTypeKeys[t]; ok {
		return k
	}
	return "unknown"
}

// ParseShipType resolves a hull code such as "DD".
func ParseShipType(key string) (ShipType, bool) {
	for t, k := range shipTypeKeys {
		if k == key {
			return t, true
		}
	}
	return ShipTypeUnknown, false
}

// Is reports whether t is any of ts.
func (t ShipType) Is(ts ...ShipType) bool {
	for _, x := range ts {
		if t == x {
			return true
		}
	}
	return false
}

// ShipClass is the raw ship class id.
type ShipClass int

// Ship classes referenced by rule tables.
const (
	ClassAyanami        ShipClass = 1
	ClassIse            ShipClass = 2
	ClassKongou         ShipClass = 6
	ClassTakao          ShipClass = 8
	ClassFubuki         ShipClass = 12
	ClassAkatsuki       ShipClass = 5
	ClassNagato         ShipClass = 19
	ClassNagara         ShipClass = 20
	ClassTenryuu        ShipClass = 21
	ClassShiratsuyu     ShipClass = 23
	ClassMutsuki        ShipClass = 28
	ClassKagerou        ShipClass = 30
	ClassYamato         ShipClass = 37
	ClassYuugumo        ShipClass = 38
	ClassAkizuki        ShipClass = 54
	ClassKamikaze       ShipClass = 66
	ClassQueenElizabeth ShipClass = 67
	ClassArkRoyal       ShipClass = 78
	ClassNelson         ShipClass = 88
	ClassGotland        ShipClass = 89
	ClassJClass         ShipClass = 82
	ClassFletcher       ShipClass = 91
	ClassAtlanta        ShipClass = 99
	ClassMatsu          ShipClass = 101
)

// ShipAttr is a derived tag on a MasterShip.
type ShipAttr uint32

const (
	ShipAbyssal ShipAttr = 1 << iota
	ShipInstallation
	ShipSubmarine
	ShipCarrier
	ShipBattleship
	ShipDestroyer
	ShipCruiser
	ShipKai2
	ShipRoyalNavy
	ShipUSNavy
	ShipNightCarrier
)

var shipAttrKeys = map[ShipAttr]string{
	ShipAbyssal:      "abyssal",
	ShipInstallation: "installation",
	ShipSubmarine:    "submarine",
	ShipCarrier:      "carrier",
	ShipBattleship:   "battleship",
	ShipDestroyer:    "destroyer",
	ShipCruiser:      "cruiser",
	ShipKai2:         "kai2",
	ShipRoyalNavy:    "royal_navy",
	ShipUSNavy:       "us_navy",
	ShipNightCarrier: "night_carrier",
}

// Has reports whether every bit of x is set in a.
func (a ShipAttr) Has(x ShipAttr) bool { return a&x == x }

// Keys returns the sorted keys of every attribute set in a.
func (a ShipAttr) Keys() []string {
	var out []string
	for attr, k := range shipAttrKeys {
		if a.Has(attr) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// ParseShipAttr resolves an attribute key.
func ParseShipAttr(key string) (ShipAttr, bool) {
	for a, k := range shipAttrKeys {
		if k == key {
			return a, true
		}
	}
	return 0, false
}

// StatBound is a master stat range. Either end may be absent for entities
// whose stat is fixed or unknown.
type StatBound struct {
	Min *int
	Max *int
}

// Bound builds a StatBound with both ends present.
func Bound(min, max int) StatBound {
	return StatBound{Min: &min, Max: &max}
}

// Known reports whether both ends of the bound are present.
func (b StatBound) Known() bool { return b.Min != nil && b.Max != nil }

// Base returns the lower end of the bound.
//
// Postcondition: ok is false iff Min is absent.
func (b StatBound) Base() (int, bool) {
	if b.Min == nil {
		return 0, false
	}
	return *b.Min, true
}

// Cap returns the upper end of the bound.
//
// Postcondition: ok is false iff Max is absent.
func (b StatBound) Cap() (int, bool) {
	if b.Max == nil {
		return 0, false
	}
	return *b.Max, true
}

// At linearly interpolates the bound between level 1 and level 99 and floors
// the result: floor(min + (max-min)*level/99).
//
// Postcondition: ok is false iff either end is absent.
func (b StatBound) At(level int) (int, bool) {
	if !b.Known() {
		return 0, false
	}
	lo, hi := float64(*b.Min), float64(*b.Max)
	return int(math.Floor(lo + (hi-lo)*float64(level)/99)), true
}

// Speed values.
const (
	SpeedLand     = 0
	SpeedSlow     = 5
	SpeedFast     = 10
	SpeedFastPlus = 15
	SpeedFastest  = 20
)

// MasterShip is the immutable specification of one ship.
type MasterShip struct {
	ID     int
	SortID int
	Name   string
	Type   ShipType
	Class  ShipClass
	// Slots holds the maximum aircraft capacity of each standard slot; its
	// length is the slot count.
	Slots []int

	MaxHP     StatBound
	Firepower StatBound
	Torpedo   StatBound
	AntiAir   StatBound
	Armor     StatBound
	Asw       StatBound
	Los       StatBound
	Evasion   StatBound
	Luck      StatBound

	Speed         int
	Range         int
	RemodelTarget int
	Attrs         ShipAttr
}

// Is reports whether the ship carries attribute a.
func (s *MasterShip) Is(a ShipAttr) bool { return s.Attrs.Has(a) }

// IsAbyssal reports whether the ship belongs to the enemy side.
func (s *MasterShip) IsAbyssal() bool { return s.Is(ShipAbyssal) }

type shipAttrRule struct {
	attr  ShipAttr
	match func(s *MasterShip) bool
}

var shipAttrRules = []shipAttrRule{
	{ShipAbyssal, func(s *MasterShip) bool { return s.ID > 1500 }},
	{ShipInstallation, func(s *MasterShip) bool { return s.ID > 1500 && s.Speed == SpeedLand }},
	{ShipSubmarine, func(s *MasterShip) bool { return s.Type.Is(SS, SSV) }},
	{ShipCarrier, func(s *MasterShip) bool { return s.Type.Is(CVL, CV, CVB) }},
	{ShipBattleship, func(s *MasterShip) bool { return s.Type.Is(FBB, BB, BBV, XBB) }},
	{ShipDestroyer, func(s *MasterShip) bool { return s.Type == DD }},
	{ShipCruiser, func(s *MasterShip) bool { return s.Type.Is(CL, CLT, CA, CAV, CT) }},
	{ShipRoyalNavy, func(s *MasterShip) bool {
		return s.Class == ClassQueenElizabeth || s.Class == ClassArkRoyal ||
			s.Class == ClassNelson || s.Class == ClassJClass
	}},
	{ShipUSNavy, func(s *MasterShip) bool { return s.Class == ClassFletcher || s.Class == ClassAtlanta }},
}

func deriveShipAttrs(s *MasterShip, ids map[ShipAttr]map[int]bool) ShipAttr {
	s.Attrs = 0
	for _, r := range shipAttrRules {
		if r.match(s) {
			s.Attrs |= r.attr
		}
	}
	for attr, set := range ids {
		if set[s.ID] {
			s.Attrs |= attr
		}
	}
	return s.Attrs
}
