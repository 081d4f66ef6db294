package deck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/fleetcalc/internal/deck"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

const sample = `{
	"version": 4,
	"hqlv": 120,
	"f1": {
		"name": "Main",
		"s1": {"id": 9, "lv": 99, "luck": 20, "hp": 17, "asw": 55,
			"items": {"i1": {"id": 3, "rf": 4}, "i2": {"id": 14}, "ix": {"id": 33}}},
		"s2": {"id": 80, "lv": 1, "luck": -1, "items": {}}
	},
	"f2": {"name": ""},
	"a1": {"mode": 2, "items": {"i1": {"id": 20, "mas": 7}}},
	"unknown": {"id": 1}
}`

func TestParse(t *testing.T) {
	d, err := deck.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 120, d.HQLevel)
	require.Contains(t, d.Fleets, "f1")
	f1 := d.Fleets["f1"]
	assert.Equal(t, "Main", f1.Name)
	require.Len(t, f1.Ships, 2)

	fubuki := f1.Ships["s1"]
	assert.Equal(t, 9, fubuki.ID)
	assert.Equal(t, 99, fubuki.Lv)
	require.NotNil(t, fubuki.Luck)
	assert.Equal(t, 20, *fubuki.Luck)
	assert.Equal(t, deck.Item{ID: 3, Rf: 4}, fubuki.Items["i1"])
	assert.Equal(t, 33, fubuki.Items["ix"].ID)

	assert.Nil(t, f1.Ships["s2"].Luck, "negative luck means default")
	assert.Empty(t, d.Fleets["f2"].Ships)

	a1 := d.Airbases["a1"]
	assert.Equal(t, deck.ModeAirDefense, a1.Mode)
	require.NotNil(t, a1.Items["i1"].Mas)
	assert.Equal(t, 7, *a1.Items["i1"].Mas)
}

func TestParse_StringVersion(t *testing.T) {
	d, err := deck.Parse([]byte(`{"version":"4","f1":{"s1":{"id":9,"lv":1}}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Fleets["f1"].Ships["s1"].Lv)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{"version":4`, deck.ErrMalformed},
		{"array", `[1,2]`, deck.ErrMalformed},
		{"old version", `{"version":3}`, deck.ErrUnsupportedVersion},
		{"no version", `{"f1":{}}`, deck.ErrUnsupportedVersion},
		{"ship without id", `{"version":4,"f1":{"s1":{"lv":1}}}`, deck.ErrMalformed},
		{"item without id", `{"version":4,"f1":{"s1":{"id":9,"items":{"i1":{"rf":3}}}}}`, deck.ErrMalformed},
		{"fleet not object", `{"version":4,"f1":[]}`, deck.ErrMalformed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := deck.Parse([]byte(tc.data))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestToPlanState(t *testing.T) {
	st, err := deck.Import([]byte(sample), testutil.Registry())
	require.NoError(t, err)

	assert.Equal(t, "Main", st.Name)
	fubuki := st.Fleets["f1"]["s1"]
	assert.Equal(t, testutil.Fubuki, fubuki.ShipID)
	assert.Equal(t, ship.Modernization{Luck: 10, MaxHP: 2, Asw: 6}, fubuki.Mod)
	assert.Equal(t, gear.State{GearID: testutil.HighAngle10cm, Stars: 4}, fubuki.Gears["g1"])
	assert.Equal(t, testutil.Turbine, fubuki.Gears[gear.ExclusiveKey].GearID)

	nagato := st.Fleets["f1"]["s2"]
	assert.Equal(t, ship.Modernization{}, nagato.Mod)

	a1 := st.Airbases["a1"]
	assert.Equal(t, fleet.AirDefense, a1.Mode)
	assert.Equal(t, gear.ExpFromAce(7), a1.Gears["g1"].Exp)
}

func TestToPlanState_BadMode(t *testing.T) {
	_, err := deck.Import([]byte(`{"version":4,"a1":{"mode":9}}`), testutil.Registry())
	assert.ErrorIs(t, err, deck.ErrMalformed)
}

func TestToPlanState_UnknownShipKeepsID(t *testing.T) {
	st, err := deck.Import([]byte(`{"version":4,"f1":{"s1":{"id":99999,"lv":50,"luck":30}}}`), testutil.Registry())
	require.NoError(t, err)
	s := st.Fleets["f1"]["s1"]
	assert.Equal(t, 99999, s.ShipID)
	assert.Equal(t, ship.Modernization{}, s.Mod)
}

func TestRoundTrip(t *testing.T) {
	original, err := deck.Parse([]byte(sample))
	require.NoError(t, err)
	st, err := original.ToPlanState(testutil.Registry())
	require.NoError(t, err)

	c, err := ship.NewComposer(testutil.Registry(), ship.DefaultBonusRules())
	require.NoError(t, err)
	plan := fleet.ComposePlan(c, st)

	fubuki := plan.Fleets[0].Ship("s1")
	require.NotNil(t, fubuki)
	assert.Equal(t, 20, fubuki.Luck.Naked)
	assert.Equal(t, 17, fubuki.MaxHP.Naked)
	assert.Equal(t, 55, fubuki.Asw.Naked)

	exported := deck.FromPlan(plan)
	assert.Equal(t, original.HQLevel, exported.HQLevel)
	assert.Equal(t, original.Fleets["f1"].Ships["s1"], exported.Fleets["f1"].Ships["s1"])
	assert.Equal(t, "Main", exported.Fleets["f1"].Name)
	assert.NotContains(t, exported.Fleets, "f2", "empty fleets are omitted")
	assert.Equal(t, original.Airbases["a1"], exported.Airbases["a1"])

	data, err := deck.Marshal(exported)
	require.NoError(t, err)
	reparsed, err := deck.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, exported, reparsed)
}
