package ship

import (
	"math"

	"github.com/cory-johannsen/fleetcalc/internal/game/master"
)

// Stat is one composed stat. Naked is 0 when the master bound is absent;
// NakedValue keeps that absence visible.
type Stat struct {
	Naked     int
	Known     bool
	Equipment int
	Bonus     int
}

// Total returns the displayed value: naked + equipment + equipment bonus.
func (s Stat) Total() int { return s.Naked + s.Equipment + s.Bonus }

// NakedValue returns the naked value and whether the master bound was present.
func (s Stat) NakedValue() (int, bool) { return s.Naked, s.Known }

// fixedStat is base + modernization capped at the master maximum.
func fixedStat(b master.StatBound, mod int) Stat {
	base, ok := b.Base()
	if !ok {
		return Stat{Naked: mod}
	}
	v := base + mod
	if hi, ok := b.Cap(); ok && v > hi {
		v = hi
	}
	return Stat{Naked: v, Known: true}
}

// levelStat interpolates b at level and adds mod.
func levelStat(b master.StatBound, level, mod int) Stat {
	v, ok := b.At(level)
	if !ok {
		return Stat{Naked: mod}
	}
	return Stat{Naked: v + mod, Known: true}
}

// marriageBonus returns the HP gained at level 100 for a ship with base HP hp.
func marriageBonus(hp int) int {
	switch {
	case hp <= 29:
		return 4
	case hp <= 39:
		return 5
	case hp <= 49:
		return 6
	case hp <= 69:
		return 7
	case hp <= 89:
		return 8
	}
	return 9
}

// MarriedLevel is the first level reached after marriage.
const MarriedLevel = 100

// LevelHP returns the level-derived maximum HP before modernization: the
// base HP, plus the marriage bonus from MarriedLevel, capped at the master
// maximum.
//
// Postcondition: ok is false iff the lower bound is absent.
func LevelHP(b master.StatBound, level int) (int, bool) {
	base, ok := b.Base()
	if !ok {
		return 0, false
	}
	if level < MarriedLevel {
		return base, true
	}
	hp := base + marriageBonus(base)
	if hi, ok := b.Cap(); ok && hp > hi {
		hp = hi
	}
	return hp, true
}

func hpStat(b master.StatBound, level, mod int) Stat {
	hp, ok := LevelHP(b, level)
	if !ok {
		return Stat{Naked: mod}
	}
	hp += mod
	if hi, ok := b.Cap(); ok && hp > hi {
		hp = hi
	}
	return Stat{Naked: hp, Known: true}
}

func floorInt(v float64) int { return int(math.Floor(v)) }
