package rules

import "slices"

// Formation names a fleet formation.
type Formation string

const (
	LineAhead   Formation = "line_ahead"
	DoubleLine  Formation = "double_line"
	Diamond     Formation = "diamond"
	Echelon     Formation = "echelon"
	LineAbreast Formation = "line_abreast"
	Vanguard    Formation = "vanguard"
	Cruising1   Formation = "cruising_1"
	Cruising2   Formation = "cruising_2"
	Cruising3   Formation = "cruising_3"
	Cruising4   Formation = "cruising_4"
)

// Formations lists every formation in display order.
var Formations = []Formation{
	LineAhead, DoubleLine, Diamond, Echelon, LineAbreast, Vanguard,
	Cruising1, Cruising2, Cruising3, Cruising4,
}

// Known reports whether f is a listed formation.
func (f Formation) Known() bool { return slices.Contains(Formations, f) }

// Combined reports whether f is a combined fleet cruising formation.
func (f Formation) Combined() bool {
	return f == Cruising1 || f == Cruising2 || f == Cruising3 || f == Cruising4
}

// DayAttack names a day special attack.
type DayAttack string

const (
	DayZuiun        DayAttack = "zuiun"
	DaySuisei       DayAttack = "suisei"
	DayMainMain     DayAttack = "main_main"
	DayMainApShell  DayAttack = "main_ap_shell"
	DayMainRadar    DayAttack = "main_radar"
	DayMainSecond   DayAttack = "main_second"
	DayDoubleAttack DayAttack = "double_attack"
	DayFBA          DayAttack = "fighter_bomber_attack"
	DayBBA          DayAttack = "bomber_bomber_attack"
	DayBA           DayAttack = "bomber_attack"
)

// DayAttacks lists every day attack in table order.
var DayAttacks = []DayAttack{
	DayZuiun, DaySuisei, DayMainMain, DayMainApShell, DayMainRadar, DayMainSecond,
	DayDoubleAttack, DayFBA, DayBBA, DayBA,
}

// Known reports whether a is listed.
func (a DayAttack) Known() bool { return slices.Contains(DayAttacks, a) }

// NightAttack names a night special attack.
type NightAttack string

const (
	NightMainMainMain       NightAttack = "main_main_main"
	NightMainMainSecond     NightAttack = "main_main_second"
	NightTorpTorp           NightAttack = "torp_torp"
	NightMainTorp           NightAttack = "main_torp"
	NightDoubleAttack       NightAttack = "double_attack"
	NightDDMainTorpRadar    NightAttack = "dd_main_torp_radar"
	NightDDTorpLookoutRadar NightAttack = "dd_torp_lookout_radar"
	NightSubLateTorpRadar   NightAttack = "sub_late_torp_radar"
	NightSubLateTorpTorp    NightAttack = "sub_late_torp_torp"
)

// NightAttacks lists every night attack in table order.
var NightAttacks = []NightAttack{
	NightMainMainMain, NightMainMainSecond, NightTorpTorp, NightMainTorp, NightDoubleAttack,
	NightDDMainTorpRadar, NightDDTorpLookoutRadar, NightSubLateTorpRadar, NightSubLateTorpTorp,
}

// Known reports whether a is listed.
func (a NightAttack) Known() bool { return slices.Contains(NightAttacks, a) }

func mods(power, accuracy, evasion float64) Modifiers {
	return Modifiers{Power: power, Accuracy: accuracy, Evasion: evasion}
}

// Default returns the built-in configuration.
func Default() *Set {
	return &Set{
		Formations: map[Formation]FormationDef{
			LineAhead: {Protection: 0.45, FleetAntiAir: 1, Phases: PhaseModifiers{
				Shelling: mods(1, 1, 1), Torpedo: mods(1, 1, 1), Night: mods(1, 1, 1), Asw: mods(0.6, 1, 1),
			}},
			DoubleLine: {Protection: 0.6, FleetAntiAir: 1.2, Phases: PhaseModifiers{
				Shelling: mods(0.8, 1.2, 1), Torpedo: mods(0.8, 0.8, 1), Night: mods(1, 0.9, 1), Asw: mods(0.8, 1.2, 1),
			}},
			Diamond: {Protection: 0.75, FleetAntiAir: 1.6, Phases: PhaseModifiers{
				Shelling: mods(0.7, 1, 1.1), Torpedo: mods(0.7, 0.4, 1.1), Night: mods(1, 0.7, 1), Asw: mods(1.2, 1, 1.1),
			}},
			Echelon: {Protection: 0.6, FleetAntiAir: 1, Phases: PhaseModifiers{
				Shelling: mods(0.75, 1.2, 1.2), Torpedo: mods(0.6, 0.6, 1.3), Night: mods(1, 0.8, 1.1), Asw: mods(1.1, 1.2, 1.3),
			}},
			LineAbreast: {Protection: 0.6, FleetAntiAir: 1, Phases: PhaseModifiers{
				Shelling: mods(0.6, 1.2, 1.3), Torpedo: mods(0.6, 0.3, 1.4), Night: mods(1, 0.8, 1.2), Asw: mods(1.3, 1.2, 1.3),
			}},
			Vanguard: {Protection: 0.6, FleetAntiAir: 1.1, Split: true,
				Phases: PhaseModifiers{
					Shelling: mods(0.5, 0.8, 1.2), Torpedo: mods(1, 1, 1.2), Night: mods(0.5, 0.5, 1.2), Asw: mods(1, 1.2, 1.2),
				},
				Bottom: PhaseModifiers{
					Shelling: mods(1, 1.2, 1.1), Torpedo: mods(1, 1, 1.1), Night: mods(1, 1, 1.1), Asw: mods(0.6, 0.8, 1.1),
				},
			},
			Cruising1: {Protection: 0.6, FleetAntiAir: 1.1, Phases: PhaseModifiers{
				Shelling: mods(0.8, 1, 1), Torpedo: mods(0.7, 1, 1), Night: mods(1, 1, 1), Asw: mods(1.3, 1, 1),
			}},
			Cruising2: {Protection: 0.6, FleetAntiAir: 1, Phases: PhaseModifiers{
				Shelling: mods(1, 1, 1), Torpedo: mods(0.9, 1, 1), Night: mods(1, 1, 1), Asw: mods(1.1, 1, 1),
			}},
			Cruising3: {Protection: 0.6, FleetAntiAir: 1.5, Phases: PhaseModifiers{
				Shelling: mods(0.7, 1, 1), Torpedo: mods(0.6, 1, 1), Night: mods(1, 1, 1), Asw: mods(1, 1, 1),
			}},
			Cruising4: {Protection: 0.45, FleetAntiAir: 1, Phases: PhaseModifiers{
				Shelling: mods(1.1, 1, 1), Torpedo: mods(1, 1, 1), Night: mods(1, 1, 1), Asw: mods(0.7, 1, 1),
			}},
		},
		Day: map[DayAttack]SpecialDef{
			DayZuiun:        {Priority: 0, BaseRate: 135, Power: 1.35, Accuracy: 1.2},
			DaySuisei:       {Priority: 0, BaseRate: 130, Power: 1.3, Accuracy: 1.2},
			DayMainMain:     {Priority: 1, BaseRate: 150, Power: 1.5, Accuracy: 1.2},
			DayMainApShell:  {Priority: 2, BaseRate: 140, Power: 1.3, Accuracy: 1.35},
			DayMainRadar:    {Priority: 3, BaseRate: 130, Power: 1.2, Accuracy: 1.5},
			DayMainSecond:   {Priority: 4, BaseRate: 120, Power: 1.1, Accuracy: 1.3},
			DayDoubleAttack: {Priority: 5, BaseRate: 130, Power: 1.2, Accuracy: 1.1},
			DayFBA:          {Priority: 1, BaseRate: 125, Power: 1.25, Accuracy: 1.2},
			DayBBA:          {Priority: 2, BaseRate: 140, Power: 1.2, Accuracy: 1.2},
			DayBA:           {Priority: 3, BaseRate: 155, Power: 1.15, Accuracy: 1.2},
		},
		Night: map[NightAttack]SpecialDef{
			NightMainMainMain:       {Priority: 1, BaseRate: 140, Power: 2, Accuracy: 2},
			NightMainMainSecond:     {Priority: 2, BaseRate: 130, Power: 1.75, Accuracy: 1.75},
			NightTorpTorp:           {Priority: 3, BaseRate: 122, Power: 1.5, Accuracy: 1.65},
			NightMainTorp:           {Priority: 4, BaseRate: 115, Power: 1.3, Accuracy: 1.5},
			NightDoubleAttack:       {Priority: 5, BaseRate: 1, Power: 1.2, Accuracy: 1.1},
			NightDDMainTorpRadar:    {Priority: 1, BaseRate: 130, Power: 1.3, Accuracy: 1.5},
			NightDDTorpLookoutRadar: {Priority: 2, BaseRate: 150, Power: 1.2, Accuracy: 1.65},
			NightSubLateTorpRadar:   {Priority: 1, BaseRate: 105, Power: 1.75, Accuracy: 1.5},
			NightSubLateTorpTorp:    {Priority: 2, BaseRate: 110, Power: 1.6, Accuracy: 1.5},
		},
	}
}
