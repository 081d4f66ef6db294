package antiair

import (
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
)

// Ship ids with their own cutins.
const (
	mayaKai2       = 428
	isuzuKai2      = 141
	kasumiKai2B    = 470
	satsukiKai2    = 418
	kinuKai2       = 487
	yuraKai2       = 488
	fumizukiKai2   = 548
	uit25          = 539
	i504           = 530
	tatsutaKai2    = 478
	musashiKai2    = 546
	hamakazeBKai   = 557
	isokazeBKai    = 558
	tenryuuKai2    = 477
	gotland        = 574
	gotlandAndra   = 630
	yamatoKai2     = 911
	yamatoKai2Juu  = 916
	rocketLauncher = 274
	pompom         = 191
	mk1Pompom      = 300
	gfcs5inch      = 308
	us5inchSingle  = 284
	gfcsMk37       = 307
	us5inchKai     = 313
	gfcs5inchTwin  = 363
	us5inchTwinCD  = 362
)

// loadout tallies the equipment features the rule table tests.
type loadout struct {
	ship *ship.Ship

	ha        int
	haFD      int
	haPlain   int
	aaGun     int
	cd        int
	aaGunNoCD int
	airRadar  int
	aaShell   int
	aafd      int
	largeGun  int
}

func count(s *ship.Ship, pred func(g *gear.Gear) bool) int { return s.Equipment.Count(pred) }

func newLoadout(s *ship.Ship) loadout {
	is := func(a master.GearAttr) func(g *gear.Gear) bool {
		return func(g *gear.Gear) bool { return g.Is(a) }
	}
	return loadout{
		ship:     s,
		ha:       count(s, is(master.GearHighAngleMount)),
		haFD:     count(s, is(master.GearHighAngleMountWithFD)),
		aaGun:    count(s, is(master.GearAntiAirGun)),
		cd:       count(s, is(master.GearConcentratedAAGun)),
		airRadar: count(s, is(master.GearAirRadar)),
		aaShell:  count(s, is(master.GearAntiAirShell)),
		aafd:     count(s, is(master.GearFireDirector)),
		largeGun: count(s, is(master.GearLargeCaliberGun)),
		haPlain: count(s, func(g *gear.Gear) bool {
			return g.Is(master.GearHighAngleMount) && !g.Is(master.GearHighAngleMountWithFD)
		}),
		aaGunNoCD: count(s, func(g *gear.Gear) bool {
			return g.Is(master.GearAntiAirGun) && !g.Is(master.GearConcentratedAAGun)
		}),
	}
}

func (l loadout) gear(ids ...int) int { return l.ship.CountGear(ids...) }

func (l loadout) shipIs(ids ...int) bool {
	for _, id := range ids {
		if l.ship.ID == id {
			return true
		}
	}
	return false
}

func (l loadout) battleship() bool { return l.ship.Is(master.ShipBattleship) }

// rule appends id when match holds.
type rule struct {
	id    int
	match func(l loadout) bool
}

// ruleTable is the literal eligibility table. Every row is independent.
var ruleTable = []rule{
	// Akizuki class.
	{1, func(l loadout) bool { return l.ship.Class == master.ClassAkizuki && l.ha >= 2 && l.airRadar >= 1 }},
	{2, func(l loadout) bool { return l.ship.Class == master.ClassAkizuki && l.ha >= 1 && l.airRadar >= 1 }},
	{3, func(l loadout) bool { return l.ship.Class == master.ClassAkizuki && l.ha >= 2 }},

	{4, func(l loadout) bool {
		return l.battleship() && l.largeGun >= 1 && l.aaShell >= 1 && l.aafd >= 1 && l.airRadar >= 1
	}},
	{5, func(l loadout) bool { return l.haFD >= 2 && l.airRadar >= 1 }},
	{6, func(l loadout) bool { return l.battleship() && l.largeGun >= 1 && l.aaShell >= 1 && l.aafd >= 1 }},
	{7, func(l loadout) bool { return l.ha >= 1 && l.aafd >= 1 && l.airRadar >= 1 }},
	{8, func(l loadout) bool { return l.haFD >= 1 && l.airRadar >= 1 }},
	{9, func(l loadout) bool { return l.ha >= 1 && l.aafd >= 1 }},

	// Maya Kai Ni.
	{10, func(l loadout) bool { return l.shipIs(mayaKai2) && l.ha >= 1 && l.cd >= 1 && l.airRadar >= 1 }},
	{11, func(l loadout) bool { return l.shipIs(mayaKai2) && l.ha >= 1 && l.cd >= 1 }},

	{12, func(l loadout) bool { return l.cd >= 1 && l.aaGun >= 2 && l.airRadar >= 1 }},
	{13, func(l loadout) bool { return l.ha >= 1 && l.cd >= 1 && l.airRadar >= 1 }},

	// Isuzu Kai Ni.
	{14, func(l loadout) bool { return l.shipIs(isuzuKai2) && l.ha >= 1 && l.aaGun >= 1 && l.airRadar >= 1 }},
	{15, func(l loadout) bool { return l.shipIs(isuzuKai2) && l.ha >= 1 && l.aaGun >= 1 }},

	// Kasumi Kai Ni B.
	{16, func(l loadout) bool { return l.shipIs(kasumiKai2B) && l.ha >= 1 && l.aaGun >= 1 && l.airRadar >= 1 }},
	{17, func(l loadout) bool { return l.shipIs(kasumiKai2B) && l.ha >= 1 && l.aaGun >= 1 }},

	{18, func(l loadout) bool { return l.shipIs(satsukiKai2) && l.cd >= 1 }},

	// Kinu Kai Ni.
	{19, func(l loadout) bool { return l.shipIs(kinuKai2) && l.haPlain >= 1 && l.cd >= 1 }},
	{20, func(l loadout) bool { return l.shipIs(kinuKai2) && l.cd >= 1 }},

	{21, func(l loadout) bool { return l.shipIs(yuraKai2) && l.ha >= 1 && l.airRadar >= 1 }},
	{22, func(l loadout) bool { return l.shipIs(fumizukiKai2) && l.cd >= 1 }},
	{23, func(l loadout) bool { return l.shipIs(uit25, i504) && l.aaGunNoCD >= 1 }},
	{24, func(l loadout) bool { return l.shipIs(tatsutaKai2) && l.ha >= 1 && l.aaGunNoCD >= 1 }},

	// Ise class and Musashi Kai Ni.
	{25, func(l loadout) bool {
		return l.ship.Class == master.ClassIse && l.aaGun >= 1 && l.airRadar >= 1 && l.aaShell >= 1
	}},
	{26, func(l loadout) bool { return l.shipIs(musashiKai2) && l.haFD >= 1 && l.airRadar >= 1 }},
	{27, func(l loadout) bool { return l.shipIs(musashiKai2) && l.haPlain >= 1 && l.cd >= 1 && l.airRadar >= 1 }},
	{28, func(l loadout) bool {
		return (l.ship.Class == master.ClassIse || l.shipIs(musashiKai2)) && l.gear(rocketLauncher) >= 1 && l.airRadar >= 1
	}},

	// Hamakaze and Isokaze B Kai.
	{29, func(l loadout) bool { return l.shipIs(hamakazeBKai, isokazeBKai) && l.ha >= 1 && l.airRadar >= 1 }},

	// Tenryuu Kai Ni and Gotland.
	{30, func(l loadout) bool { return l.shipIs(tenryuuKai2, gotland, gotlandAndra) && l.ha >= 3 }},
	{31, func(l loadout) bool { return l.shipIs(tenryuuKai2) && l.ha >= 2 }},

	{32, func(l loadout) bool {
		return l.ship.Is(master.ShipRoyalNavy) && l.gear(pompom) >= 1 && l.gear(mk1Pompom) >= 1
	}},
	{33, func(l loadout) bool { return l.shipIs(gotland, gotlandAndra) && l.ha >= 1 && l.aaGunNoCD >= 1 }},

	// Fletcher class.
	{34, func(l loadout) bool { return l.ship.Class == master.ClassFletcher && l.gear(gfcs5inch) >= 2 }},
	{35, func(l loadout) bool {
		return l.ship.Class == master.ClassFletcher && l.gear(gfcs5inch) >= 1 && l.gear(us5inchSingle) >= 1
	}},
	{36, func(l loadout) bool {
		return l.ship.Class == master.ClassFletcher && l.gear(us5inchSingle) >= 2 && l.gear(gfcsMk37) >= 1
	}},
	{37, func(l loadout) bool { return l.ship.Class == master.ClassFletcher && l.gear(us5inchKai) >= 2 }},

	// Atlanta class.
	{38, func(l loadout) bool { return l.ship.Class == master.ClassAtlanta && l.gear(gfcs5inchTwin) >= 2 }},
	{39, func(l loadout) bool {
		return l.ship.Class == master.ClassAtlanta && l.gear(gfcs5inchTwin) >= 1 && l.gear(us5inchTwinCD) >= 1
	}},
	{40, func(l loadout) bool {
		return l.ship.Class == master.ClassAtlanta && l.gear(gfcs5inchTwin, us5inchTwinCD) >= 2 && l.gear(gfcsMk37) >= 1
	}},
	{41, func(l loadout) bool {
		return l.ship.Class == master.ClassAtlanta && l.gear(gfcs5inchTwin, us5inchTwinCD) >= 2
	}},

	// Yamato Kai Ni.
	{42, func(l loadout) bool {
		return l.shipIs(yamatoKai2, yamatoKai2Juu) && l.ha >= 2 && l.cd >= 1 && l.airRadar >= 1
	}},
	{43, func(l loadout) bool { return l.shipIs(yamatoKai2, yamatoKai2Juu) && l.ha >= 2 && l.airRadar >= 1 }},
	{44, func(l loadout) bool {
		return l.shipIs(yamatoKai2, yamatoKai2Juu) && l.ha >= 1 && l.cd >= 1 && l.airRadar >= 1
	}},
	{45, func(l loadout) bool { return l.shipIs(yamatoKai2, yamatoKai2Juu) && l.ha >= 1 && l.airRadar >= 1 }},
}

// Eligible returns every anti-air cutin id s can trigger, in table order.
// Enemy ships never trigger anti-air cutins.
func Eligible(s *ship.Ship) []int {
	if s.IsAbyssal() {
		return nil
	}
	l := newLoadout(s)
	var out []int
	for _, r := range ruleTable {
		if r.match(l) {
			out = append(out, r.id)
		}
	}
	return out
}
