package gear_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/master"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func carrierEquipment(t *testing.T) *gear.Equipment {
	t.Helper()
	return gear.NewEquipment(
		[]int{18, 18, 27, 10},
		map[gear.SlotKey]int{"g4": 0},
		map[gear.SlotKey]*gear.Gear{
			"g1": compose(t, testutil.Type97Torpedo, 0, 120),
			"g2": compose(t, testutil.Zero21, 0, 120),
			"g3": compose(t, testutil.Type99Bomber, 0, 120),
			"g4": compose(t, testutil.Zero21, 0, 0),
			"gx": compose(t, testutil.MG77, 0, 0),
		},
		true,
	)
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, gear.SlotKey("g3"), gear.StandardKey(2))
	assert.Equal(t, 2, gear.SlotKey("g3").Index())
	assert.Equal(t, -1, gear.ExclusiveKey.Index())
	assert.Equal(t, -1, gear.SlotKey("bogus").Index())
}

func TestNewEquipment_Layout(t *testing.T) {
	e := carrierEquipment(t)
	items := e.Items()
	assert.Len(t, items, 5)
	assert.Equal(t, gear.SlotKey("g1"), items[0].Key)
	assert.Equal(t, 18, items[0].CurrentSize)
	assert.Equal(t, 0, items[3].CurrentSize)
	assert.Equal(t, 10, items[3].MaxSize)
	assert.True(t, items[4].Exclusive())
	assert.True(t, e.HasExclusive())
	assert.Len(t, e.Gears(), 5)

	lb := gear.NewEquipment([]int{18, 18, 18, 18}, nil, nil, false)
	assert.Len(t, lb.Items(), 4)
	assert.False(t, lb.HasExclusive())
	assert.Nil(t, lb.Gear("g1"))
}

func TestEquipment_Aggregates(t *testing.T) {
	e := carrierEquipment(t)
	isFighter := func(g *gear.Gear) bool { return g.Is(master.GearFighter) }

	assert.Equal(t, 2, e.Count(isFighter))
	// the empty fourth slot no longer counts as an aircraft slot
	assert.Equal(t, 1, e.CountAircraft(isFighter))
	assert.True(t, e.Has(func(g *gear.Gear) bool { return g.Is(master.GearAntiAirGun) }))
	assert.False(t, e.HasAircraft(func(g *gear.Gear) bool { return g.Is(master.GearAntiAirGun) }))

	aa := e.Sum(func(g *gear.Gear) float64 { return float64(g.AntiAir) })
	assert.Equal(t, 12.0, aa)

	best, ok := e.Max(func(g *gear.Gear) float64 { return float64(g.Torpedo) })
	assert.True(t, ok)
	assert.Equal(t, 5.0, best)

	_, ok = gear.NewEquipment([]int{0}, nil, nil, false).Max(func(g *gear.Gear) float64 { return 1 })
	assert.False(t, ok)
}

func TestEquipment_FighterPower(t *testing.T) {
	e := carrierEquipment(t)
	want := int(math.Floor(5*math.Sqrt(18) + math.Sqrt(12) + 22))
	// bombers contribute 0 with no anti-air: floor(0 + sqrt(12) + 0) = 3 each
	bomber := int(math.Floor(math.Sqrt(12)))
	assert.Equal(t, want+2*bomber, e.FighterPower())
}

func TestEquipment_ProficiencyCriticalModifier(t *testing.T) {
	e := carrierEquipment(t)
	b := math.Floor(math.Sqrt(120)+10) / 100
	// g1 torpedo bomber counts in full, g3 dive bomber by half, fighters not at all
	assert.InDelta(t, 1+b+b/2, e.ProficiencyCriticalModifier(), 1e-9)

	empty := gear.NewEquipment([]int{18}, nil, nil, false)
	assert.Equal(t, 1.0, empty.ProficiencyCriticalModifier())
}
