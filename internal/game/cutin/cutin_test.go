package cutin_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/game/cutin"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func composeState(t *testing.T, st ship.State) *ship.Ship {
	t.Helper()
	s, ok := ship.Compose(testutil.Registry(), nil, ship.DefaultBonusRules(), st)
	require.True(t, ok)
	return s
}

func compose(t *testing.T, id int, gearIDs ...int) *ship.Ship {
	t.Helper()
	gs := make(map[gear.SlotKey]gear.State, len(gearIDs))
	for i, g := range gearIDs {
		gs[gear.StandardKey(i)] = gear.State{GearID: g}
	}
	return composeState(t, ship.State{ShipID: id, Level: 1, Gears: gs})
}

func TestCompose_ComplementAssignment(t *testing.T) {
	m := cutin.Compose([]cutin.Candidate[string]{
		{Type: "b", Priority: 2, Rate: 0.5},
		{Type: "a", Priority: 1, Rate: 0.4},
		{Type: "c", Priority: 2, Rate: 1},
	})
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.InDelta(t, 0.4, m.Get("a"), 1e-12)
	assert.InDelta(t, 0.3, m.Get("b"), 1e-12)
	assert.InDelta(t, 0.3, m.Get("c"), 1e-12)
	assert.InDelta(t, 0.0, m.Complement(), 1e-12)
}

func TestCompose_Property_RateMapInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		cands := make([]cutin.Candidate[int], n)
		for i := range cands {
			cands[i] = cutin.Candidate[int]{
				Type:     rapid.IntRange(0, 5).Draw(rt, "type"),
				Priority: rapid.IntRange(0, 3).Draw(rt, "priority"),
				Rate:     rapid.Float64Range(-0.5, 1.5).Draw(rt, "rate"),
			}
		}
		m := cutin.Compose(cands)
		sum := 0.0
		for _, e := range m.Entries() {
			assert.GreaterOrEqual(rt, e.Rate, 0.0)
			sum += e.Rate
		}
		assert.InDelta(rt, 1.0, sum+m.Complement(), 1e-9)
	})
}

func TestIndividualRate(t *testing.T) {
	assert.Equal(t, 0.5, cutin.IndividualRate(50, 100))
	assert.Equal(t, 1.0, cutin.IndividualRate(150, 100))
	assert.Equal(t, 0.0, cutin.IndividualRate(50, 0))
}

func TestRateMap_AddClampsAndScales(t *testing.T) {
	m := cutin.NewRateMap[string]()
	m.Add("x", 0.5)
	m.Add("y", 0.75)
	assert.Equal(t, 0.5, m.Get("y"))
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("z"))

	half := m.Scale(0.5)
	assert.Equal(t, 0.25, half.Get("x"))
	assert.Equal(t, 0.5, half.Complement())
	assert.Equal(t, 2, half.Len())

	data, err := json.Marshal(half)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"complement":0.5`)
}

func TestComposeFleet(t *testing.T) {
	a := cutin.NewRateMap[int]()
	a.Add(5, 0.3)
	a.Add(2, 0.2)
	b := cutin.NewRateMap[int]()
	b.Add(5, 0.1)

	f := cutin.ComposeFleet([]*cutin.RateMap[int]{a, b})
	assert.Equal(t, []int{5, 2}, f.Keys())
	assert.InDelta(t, 0.37, f.Get(5), 1e-12)
	assert.InDelta(t, 0.18, f.Get(2), 1e-12)
	assert.InDelta(t, 0.45, f.Complement(), 1e-12)
}

func TestComposeFleet_Property_TotalIsIndependentUnion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "ships")
		var ships []*cutin.RateMap[int]
		missAll := 1.0
		for i := 0; i < n; i++ {
			var cands []cutin.Candidate[int]
			for _, id := range rapid.SliceOfNDistinct(rapid.IntRange(1, 40), 0, 4, rapid.ID[int]).Draw(rt, "ids") {
				cands = append(cands, cutin.Candidate[int]{Type: id, Rate: rapid.Float64Range(0, 1).Draw(rt, "rate")})
			}
			m := cutin.Compose(cands)
			missAll *= 1 - m.Total()
			ships = append(ships, m)
		}
		f := cutin.ComposeFleet(ships)
		assert.InDelta(rt, 1-missAll, f.Total(), 1e-9)
		for _, e := range f.Entries() {
			assert.GreaterOrEqual(rt, e.Rate, -1e-12)
		}
	})
}

func TestArtilleryTypes(t *testing.T) {
	ap := compose(t, testutil.Takao, testutil.Gun14cmSingle, testutil.Gun14cmSingle, testutil.Type0Recon, testutil.Type91APShell)
	assert.Equal(t, []rules.DayAttack{rules.DayMainMain, rules.DayDoubleAttack}, cutin.DayTypes(ap))

	radar := compose(t, testutil.Takao, testutil.Gun14cmSingle, testutil.Secondary155, testutil.Type0Recon, testutil.Type22Radar)
	assert.Equal(t, []rules.DayAttack{rules.DayMainRadar, rules.DayMainSecond}, cutin.DayTypes(radar))

	noPlane := compose(t, testutil.Takao, testutil.Gun14cmSingle, testutil.Gun14cmSingle, testutil.Type91APShell)
	assert.Empty(t, cutin.DayTypes(noPlane))
}

func TestArtilleryTypes_Zuiun(t *testing.T) {
	ise := compose(t, testutil.IseKai, testutil.Gun356Twin, testutil.Zuiun, testutil.Zuiun, testutil.Type0Recon)
	assert.Equal(t, []rules.DayAttack{rules.DayZuiun}, cutin.DayTypes(ise))
}

func TestCarrierTypes(t *testing.T) {
	full := compose(t, testutil.Akagi, testutil.Zero21, testutil.Type99Bomber, testutil.Type97Torpedo, testutil.Type99Bomber)
	assert.Equal(t, []rules.DayAttack{rules.DayFBA, rules.DayBBA, rules.DayBA}, cutin.DayTypes(full))

	ba := compose(t, testutil.Akagi, testutil.Type99Bomber, testutil.Type97Torpedo)
	assert.Equal(t, []rules.DayAttack{rules.DayBA}, cutin.DayTypes(ba))

	empty := composeState(t, ship.State{
		ShipID:    testutil.Akagi,
		Gears:     map[gear.SlotKey]gear.State{"g1": {GearID: testutil.Type99Bomber}, "g2": {GearID: testutil.Type97Torpedo}},
		SlotSizes: map[gear.SlotKey]int{"g2": 0},
	})
	assert.Empty(t, cutin.DayTypes(empty), "a shot-down squadron does not count")
}

func TestDay_Rates(t *testing.T) {
	s := compose(t, testutil.Takao, testutil.Gun14cmSingle, testutil.Gun14cmSingle, testutil.Type0Recon, testutil.Type91APShell)
	in := cutin.DayInput{AirState: fleet.AirSupremacy, FleetLos: 20, Flagship: true}

	term := cutin.SpottingTerm(s, in)
	assert.Equal(t, 56.0, term)

	m := cutin.Day(rules.Default(), s, in)
	mm := 56.0 / 150
	assert.InDelta(t, mm, m.Get(rules.DayMainMain), 1e-12)
	assert.InDelta(t, (1-mm)*56.0/130, m.Get(rules.DayDoubleAttack), 1e-12)

	in.AirState = fleet.AirParity
	assert.Zero(t, cutin.Day(rules.Default(), s, in).Len())
}

func TestDay_TaihaCannotCutin(t *testing.T) {
	gs := map[gear.SlotKey]gear.State{
		"g1": {GearID: testutil.Gun14cmSingle}, "g2": {GearID: testutil.Gun14cmSingle},
		"g3": {GearID: testutil.Type0Recon}, "g4": {GearID: testutil.Type91APShell},
	}
	hp := 10
	s := composeState(t, ship.State{ShipID: testutil.Takao, Level: 1, CurrentHP: &hp, Gears: gs})
	require.Equal(t, ship.Taiha, s.DamageState())
	assert.Zero(t, cutin.Day(rules.Default(), s, cutin.DayInput{AirState: fleet.AirSupremacy}).Len())
}

func TestNightTypes(t *testing.T) {
	tests := []struct {
		name string
		ship *ship.Ship
		want []rules.NightAttack
	}{
		{"destroyer branch", compose(t, testutil.Fubuki, testutil.Gun127Twin, testutil.TorpedoQuad61, testutil.Type22Radar),
			[]rules.NightAttack{rules.NightDDMainTorpRadar}},
		{"destroyer falls back to common", compose(t, testutil.Fubuki, testutil.TorpedoQuad61, testutil.TorpedoQuad61, testutil.Gun127Twin),
			[]rules.NightAttack{rules.NightTorpTorp, rules.NightMainTorp}},
		{"submarine branch", compose(t, testutil.I58, testutil.LateBowTorpedo, testutil.SubmarineRadar),
			[]rules.NightAttack{rules.NightSubLateTorpRadar}},
		{"battleship", compose(t, testutil.Nagato, testutil.Gun46Triple, testutil.Gun46Triple, testutil.Gun46Triple, testutil.Secondary155),
			[]rules.NightAttack{rules.NightMainMainMain, rules.NightDoubleAttack}},
		{"carrier", compose(t, testutil.Akagi, testutil.Zero21), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cutin.NightTypes(tc.ship))
		})
	}
}

func TestNightTerm(t *testing.T) {
	s := compose(t, testutil.Fubuki)
	assert.Equal(t, 25.0, cutin.NightTerm(s, cutin.NightInput{}))
	assert.Equal(t, 47.0, cutin.NightTerm(s, cutin.NightInput{Flagship: true, OwnSearchlight: true}))
	assert.Equal(t, 10.0, cutin.NightTerm(s, cutin.NightInput{EnemySearchlight: true, EnemyStarShell: true}))
}

func TestNight_Rates(t *testing.T) {
	s := compose(t, testutil.Fubuki, testutil.TorpedoQuad61, testutil.TorpedoQuad61, testutil.Gun127Twin)
	m := cutin.Night(rules.Default(), s, cutin.NightInput{})
	tt := 25.0 / 122
	assert.Equal(t, []rules.NightAttack{rules.NightTorpTorp, rules.NightMainTorp}, m.Keys())
	assert.InDelta(t, tt, m.Get(rules.NightTorpTorp), 1e-12)
	assert.InDelta(t, (1-tt)*25.0/115, m.Get(rules.NightMainTorp), 1e-12)

	bb := compose(t, testutil.Nagato, testutil.Gun46Triple, testutil.Gun46Triple)
	da := cutin.Night(rules.Default(), bb, cutin.NightInput{})
	assert.InDelta(t, 1.0, da.Get(rules.NightDoubleAttack), 1e-12, "double attack always fires when eligible")
}

func TestContact(t *testing.T) {
	akagi := compose(t, testutil.Akagi, testutil.Saiun, testutil.Type97Torpedo)
	f := fleet.New(map[fleet.ShipKey]*ship.Ship{"s1": akagi})

	trigger := (0.04*9*math.Sqrt(18) + 1) / 25
	assert.InDelta(t, trigger, cutin.ContactTriggerRate(f, fleet.AirSupremacy), 1e-12)

	m := cutin.Contact(f, fleet.AirSupremacy)
	saiun := 9.0 / 14
	assert.Equal(t, []float64{1.17, 1.12}, m.Keys())
	assert.InDelta(t, saiun*trigger, m.Get(1.17), 1e-12)
	assert.InDelta(t, (1-saiun)*(1.0/14)*trigger, m.Get(1.12), 1e-12)

	assert.Zero(t, cutin.Contact(f, fleet.AirDenial).Len())

	noRecon := fleet.New(map[fleet.ShipKey]*ship.Ship{"s1": compose(t, testutil.Akagi, testutil.Type97Torpedo)})
	assert.Zero(t, cutin.ContactTriggerRate(noRecon, fleet.AirSupremacy))
}

func TestNightContactRate(t *testing.T) {
	nightRecon := func(level int) *ship.Ship {
		return composeState(t, ship.State{ShipID: testutil.Nagato, Level: level,
			Gears: map[gear.SlotKey]gear.State{gear.StandardKey(0): {GearID: testutil.NightRecon}}})
	}
	one := fleet.New(map[fleet.ShipKey]*ship.Ship{"s1": nightRecon(1)})
	// floor(sqrt(3 * 1)) / 25
	assert.InDelta(t, 0.04, cutin.NightContactRate(one, fleet.AirSupremacy), 1e-12)
	assert.Zero(t, cutin.NightContactRate(one, fleet.AirIncapability))

	// Each plane triggers independently: floor(sqrt(3 * 99)) / 25 = 0.68.
	two := fleet.New(map[fleet.ShipKey]*ship.Ship{"s1": nightRecon(99), "s2": nightRecon(99)})
	assert.InDelta(t, 1-0.32*0.32, cutin.NightContactRate(two, fleet.AirDenial), 1e-12)

	dayRecon := fleet.New(map[fleet.ShipKey]*ship.Ship{"s1": compose(t, testutil.Nagato, testutil.Type0Recon)})
	assert.Zero(t, cutin.NightContactRate(dayRecon, fleet.AirSupremacy))
}
