package testutil

import (
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// Fixture gear ids.
const (
	Gun127Twin      = 2
	HighAngle10cm   = 3
	HighAngle10cmFD = 122
	Gun14cmSingle   = 4
	Gun356Twin      = 7
	Gun46Triple     = 9
	Secondary152    = 11
	Secondary155    = 12
	TorpedoQuad61   = 14
	LateBowTorpedo  = 213
	SubmarineRadar  = 210
	Zero21          = 20
	Type99Bomber    = 23
	Type97Torpedo   = 16
	Saiun           = 54
	Type0Recon      = 25
	NightRecon      = 102
	Zuiun           = 26
	Type13AirRadar  = 27
	Type22Radar     = 28
	Type32Radar     = 31
	Type3Shell      = 35
	Type91APShell   = 36
	MG77            = 37
	Triple25Conc    = 131
	Type94AAFD      = 121
	Searchlight     = 74
	LargeSearchlite = 140
	StarShell       = 101
	SkilledLookouts = 129
	Turbine         = 33
	Boiler          = 34
	NewModelBoiler  = 87
	Type93Sonar     = 46
	Type3DC         = 45
	Type94DCP       = 44
	Suisei634       = 291
	AbyssalGun      = 1501
)

// Fixture ship ids.
const (
	Fubuki          = 9
	Akizuki         = 421
	IsuzuKai2       = 141
	Takao           = 66
	Nagato          = 80
	IseKai          = 82
	Akagi           = 83
	I58             = 127
	Hayasui         = 352
	AbyssalDD       = 1501
	AirfieldPrinces = 1653
)

func gear(id int, name string, category, icon int, stats master.GearStats) master.GearRecord {
	return master.GearRecord{ID: id, Name: name, CategoryID: category, Icon: icon, Improvable: true, GearStats: stats}
}

// GearRecords returns the fixture gear rows.
func GearRecords() []master.GearRecord {
	return []master.GearRecord{
		gear(Gun127Twin, "12.7cm Twin Gun Mount", 1, 1, master.GearStats{Firepower: 2, AntiAir: 2, Range: 1}),
		gear(HighAngle10cm, "10cm Twin High-angle Gun Mount", 1, 16, master.GearStats{Firepower: 2, AntiAir: 7, Range: 1}),
		gear(HighAngle10cmFD, "10cm Twin High-angle Gun Mount + AAFD", 1, 16, master.GearStats{Firepower: 1, AntiAir: 10, Accuracy: 1, Range: 1}),
		gear(Gun14cmSingle, "14cm Single Gun Mount", 2, 2, master.GearStats{Firepower: 2, Accuracy: 1, Range: 2}),
		gear(Gun356Twin, "35.6cm Twin Gun Mount", 3, 3, master.GearStats{Firepower: 15, AntiAir: 4, Range: 3}),
		gear(Gun46Triple, "46cm Triple Gun Mount", 3, 3, master.GearStats{Firepower: 26, AntiAir: 5, Range: 4}),
		gear(Secondary152, "15.2cm Single Gun Mount", 4, 4, master.GearStats{Firepower: 2, Range: 2}),
		gear(Secondary155, "15.5cm Triple Secondary Gun Mount", 4, 4, master.GearStats{Firepower: 7, AntiAir: 3, Accuracy: 1, Range: 2}),
		gear(TorpedoQuad61, "61cm Quadruple (Oxygen) Torpedo Mount", 5, 5, master.GearStats{Torpedo: 10, Range: 1}),
		gear(LateBowTorpedo, "Late Model Bow Torpedo Mount (6 tubes)", 32, 5, master.GearStats{Torpedo: 15, Accuracy: 2}),
		gear(SubmarineRadar, "Late Model Submarine Radar & Passive Radiolocator", 51, 42, master.GearStats{Los: 2, Accuracy: 2, Evasion: 7}),
		gear(Zero21, "Type 0 Fighter Model 21", 6, 6, master.GearStats{AntiAir: 5, Evasion: 2, Radius: 7}),
		gear(Type99Bomber, "Type 99 Dive Bomber", 7, 7, master.GearStats{Bombing: 5, Asw: 3, Radius: 4}),
		gear(Type97Torpedo, "Type 97 Torpedo Bomber", 8, 8, master.GearStats{Torpedo: 5, Asw: 4, Los: 1, Radius: 4}),
		gear(Saiun, "Saiun", 9, 9, master.GearStats{Los: 9, Accuracy: 2, Radius: 8}),
		gear(Type0Recon, "Type 0 Reconnaissance Seaplane", 10, 10, master.GearStats{AntiAir: 1, Asw: 2, Los: 5, Accuracy: 1, Radius: 7}),
		gear(NightRecon, "Type 98 Reconnaissance Seaplane (Night Recon)", 10, 10, master.GearStats{Los: 3, Accuracy: 1, Radius: 3}),
		gear(Zuiun, "Zuiun", 11, 10, master.GearStats{Bombing: 4, AntiAir: 2, Asw: 4, Los: 6, Accuracy: 1, Radius: 5}),
		gear(Type13AirRadar, "Type 13 Air Radar", 12, 11, master.GearStats{AntiAir: 2, Los: 3, Accuracy: 1}),
		gear(Type22Radar, "Type 22 Surface Radar", 12, 11, master.GearStats{Los: 5, Accuracy: 3}),
		gear(Type32Radar, "Type 32 Surface Radar", 13, 11, master.GearStats{Los: 10, Accuracy: 5}),
		gear(Type3Shell, "Type 3 Shell", 18, 12, master.GearStats{AntiAir: 5}),
		gear(Type91APShell, "Type 91 Armor Piercing Shell", 19, 13, master.GearStats{Firepower: 8, Accuracy: 1}),
		gear(MG77, "7.7mm Machine Gun", 21, 15, master.GearStats{AntiAir: 2}),
		gear(Triple25Conc, "25mm Triple Autocannon Mount (Concentrated Deployment)", 21, 15, master.GearStats{AntiAir: 9, Evasion: 1}),
		gear(Type94AAFD, "Type 94 Anti-Aircraft Fire Director", 36, 30, master.GearStats{AntiAir: 6, Accuracy: 1}),
		gear(Searchlight, "Searchlight", 29, 24, master.GearStats{Los: 2}),
		gear(LargeSearchlite, "96-shiki 150cm Searchlight", 42, 24, master.GearStats{Los: 3}),
		gear(StarShell, "Star Shell", 33, 27, master.GearStats{}),
		gear(SkilledLookouts, "Skilled Lookouts", 39, 32, master.GearStats{Los: 1, Accuracy: 2, Evasion: 2}),
		gear(Turbine, "Improved Kanhon Type Turbine", 17, 19, master.GearStats{Evasion: 6}),
		gear(Boiler, "Enhanced Kanhon Type Boiler", 17, 19, master.GearStats{}),
		gear(NewModelBoiler, "New Model High Temperature High Pressure Boiler", 17, 19, master.GearStats{Evasion: 1}),
		gear(Type93Sonar, "Type 93 Sonar", 14, 18, master.GearStats{Asw: 6, Evasion: 1}),
		gear(Type3DC, "Type 3 Depth Charge", 15, 17, master.GearStats{Asw: 8}),
		gear(Type94DCP, "Type 94 Depth Charge Projector", 15, 17, master.GearStats{Asw: 5}),
		gear(Suisei634, "Suisei Model 22 (634 Air Group)", 7, 7, master.GearStats{Bombing: 11, AntiAir: 1, Accuracy: 1, Radius: 5}),
		gear(AbyssalGun, "Abyssal 5inch Single Gun", 1, 1, master.GearStats{Firepower: 1, Range: 1}),
	}
}

// ShipRecords returns the fixture ship rows.
func ShipRecords() []master.ShipRecord {
	b := master.Bound
	return []master.ShipRecord{
		{ID: Fubuki, SortID: 11, Name: "Fubuki", ShipTypeID: 2, ShipClassID: 12, Slots: []int{0, 0, 0},
			MaxHP: b(15, 31), Firepower: b(10, 29), Torpedo: b(27, 79), AntiAir: b(10, 39), Armor: b(5, 19),
			Asw: b(20, 49), Los: b(5, 19), Evasion: b(40, 79), Luck: b(10, 49), Speed: master.SpeedFast, Range: 1},
		{ID: Akizuki, SortID: 421, Name: "Akizuki", ShipTypeID: 2, ShipClassID: 54, Slots: []int{0, 0, 0},
			MaxHP: b(37, 48), Firepower: b(10, 36), Torpedo: b(12, 46), AntiAir: b(50, 107), Armor: b(11, 31),
			Asw: b(30, 67), Los: b(10, 24), Evasion: b(45, 80), Luck: b(12, 50), Speed: master.SpeedFast, Range: 1},
		{ID: IsuzuKai2, SortID: 190, Name: "Isuzu Kai Ni", ShipTypeID: 3, ShipClassID: 20, Slots: []int{0, 0, 0},
			MaxHP: b(44, 54), Firepower: b(14, 49), Torpedo: b(0, 79), AntiAir: b(45, 89), Armor: b(24, 49),
			Asw: b(62, 99), Los: b(14, 49), Evasion: b(43, 79), Luck: b(12, 49), Speed: master.SpeedFast, Range: 2},
		{ID: Takao, SortID: 66, Name: "Takao", ShipTypeID: 5, ShipClassID: 8, Slots: []int{2, 2, 2, 0},
			MaxHP: b(44, 59), Firepower: b(30, 49), Torpedo: b(24, 59), AntiAir: b(16, 49), Armor: b(35, 49),
			Asw: b(0, 0), Los: b(13, 39), Evasion: b(35, 59), Luck: b(6, 39), Speed: master.SpeedFast, Range: 2},
		{ID: Nagato, SortID: 80, Name: "Nagato", ShipTypeID: 9, ShipClassID: 19, Slots: []int{3, 3, 3, 3},
			MaxHP: b(80, 99), Firepower: b(82, 99), Torpedo: b(0, 0), AntiAir: b(31, 59), Armor: b(75, 89),
			Asw: b(0, 0), Los: b(12, 39), Evasion: b(24, 49), Luck: b(20, 59), Speed: master.SpeedSlow, Range: 3},
		{ID: IseKai, SortID: 82, Name: "Ise Kai", ShipTypeID: 10, ShipClassID: 2, Slots: []int{11, 11, 11, 14},
			MaxHP: b(77, 90), Firepower: b(74, 94), Torpedo: b(0, 0), AntiAir: b(45, 80), Armor: b(70, 89),
			Asw: b(0, 0), Los: b(24, 60), Evasion: b(30, 60), Luck: b(30, 69), Speed: master.SpeedSlow, Range: 3},
		{ID: Akagi, SortID: 83, Name: "Akagi", ShipTypeID: 11, ShipClassID: 14, Slots: []int{18, 18, 27, 10},
			MaxHP: b(69, 79), Firepower: b(0, 39), Torpedo: b(0, 0), AntiAir: b(32, 69), Armor: b(28, 49),
			Asw: b(0, 0), Los: b(44, 69), Evasion: b(28, 49), Luck: b(20, 59), Speed: master.SpeedFast, Range: 1},
		{ID: I58, SortID: 127, Name: "I-58", ShipTypeID: 13, ShipClassID: 0, Slots: []int{0, 0},
			MaxHP: b(12, 20), Firepower: b(2, 9), Torpedo: b(36, 69), AntiAir: b(0, 0), Armor: b(5, 19),
			Asw: b(0, 0), Los: b(10, 29), Evasion: b(12, 39), Luck: b(15, 59), Speed: master.SpeedSlow, Range: 1},
		{ID: Hayasui, SortID: 352, Name: "Hayasui", ShipTypeID: 22, ShipClassID: 0, Slots: []int{0, 0},
			MaxHP: b(40, 57), Firepower: b(7, 29), AntiAir: b(8, 39), Armor: b(9, 19), Luck: b(20, 59),
			Speed: master.SpeedSlow, Range: 1},
		{ID: AbyssalDD, SortID: 0, Name: "I-class Destroyer", ShipTypeID: 2, Slots: []int{0},
			MaxHP: b(20, 20), Firepower: b(5, 5), Torpedo: b(15, 15), AntiAir: b(0, 0), Armor: b(5, 5),
			Asw: b(0, 0), Evasion: b(15, 15), Luck: b(1, 1), Speed: master.SpeedFast, Range: 1},
		{ID: AirfieldPrinces, SortID: 0, Name: "Airfield Princess", ShipTypeID: 10, Slots: []int{24, 24, 24, 24},
			MaxHP: b(600, 600), Firepower: b(110, 110), AntiAir: b(70, 70), Armor: b(160, 160),
			Asw: b(0, 0), Evasion: b(10, 10), Luck: b(50, 50), Speed: master.SpeedLand, Range: 1},
	}
}

// Registry builds a master registry over the fixture rows with the default
// tables. It panics on error so callers can use it inline.
func Registry() *master.Registry {
	reg, err := RegistryWith(master.DefaultTables())
	if err != nil {
		panic("testutil: building fixture registry: " + err.Error())
	}
	return reg
}

// RegistryWith builds a registry over the fixture rows with the given tables.
func RegistryWith(tables master.Tables) (*master.Registry, error) {
	a, err := master.NewAdapter(tables)
	if err != nil {
		return nil, err
	}
	var gears []*master.MasterGear
	for _, r := range GearRecords() {
		gears = append(gears, a.Gear(r))
	}
	var ships []*master.MasterShip
	for _, r := range ShipRecords() {
		ships = append(ships, a.Ship(r))
	}
	return master.NewRegistry(gears, ships, tables)
}
