package gear_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/game/gear"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func compose(t *testing.T, id, stars, exp int) *gear.Gear {
	t.Helper()
	g, ok := gear.Compose(testutil.Registry(), nil, gear.State{GearID: id, Stars: stars, Exp: exp})
	require.True(t, ok, "gear %d", id)
	return g
}

func TestAceFromExp(t *testing.T) {
	tests := []struct{ exp, ace int }{
		{0, 0}, {9, 0}, {10, 1}, {24, 1}, {25, 2}, {39, 2}, {40, 3}, {55, 4}, {70, 5}, {84, 5}, {85, 6}, {99, 6}, {100, 7}, {120, 7},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.ace, gear.AceFromExp(tc.exp), "exp=%d", tc.exp)
	}
}

func TestAce_Property_ThresholdRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ace := rapid.IntRange(0, 7).Draw(t, "ace")
		if got := gear.AceFromExp(gear.ExpFromAce(ace)); got != ace {
			t.Fatalf("ace %d round-tripped to %d", ace, got)
		}
	})
}

func TestExpFromAce_Clamps(t *testing.T) {
	assert.Equal(t, 0, gear.ExpFromAce(-3))
	assert.Equal(t, 100, gear.ExpFromAce(12))
}

func TestCompose_UnknownGear(t *testing.T) {
	_, ok := gear.Compose(testutil.Registry(), nil, gear.State{GearID: 424242})
	assert.False(t, ok)
}

func TestCompose_ClampsState(t *testing.T) {
	g := compose(t, testutil.Zero21, 15, 999)
	assert.Equal(t, 10, g.Stars)
	assert.Equal(t, gear.MaxExp, g.Proficiency.Exp)
	assert.Equal(t, gear.State{GearID: testutil.Zero21, Stars: 10, Exp: gear.MaxExp}, g.State())
}

func TestFighterPower_MaxedFighter(t *testing.T) {
	// aa 5, 18 planes, exp 120, ace 7: floor(5*sqrt(18) + sqrt(12) + 22)
	g := compose(t, testutil.Zero21, 0, 120)
	want := int(math.Floor(5*math.Sqrt(18) + math.Sqrt(12) + 22))
	assert.Equal(t, want, g.FighterPower(18))
	assert.Equal(t, 0, g.FighterPower(0))
}

func TestFighterPower_ImprovedFighter(t *testing.T) {
	g := compose(t, testutil.Zero21, 10, 0)
	want := int(math.Floor((5 + 0.2*10) * math.Sqrt(18)))
	assert.Equal(t, want, g.FighterPower(18))
}

func TestFighterPower_ReconExcluded(t *testing.T) {
	assert.Equal(t, 0, compose(t, testutil.Saiun, 0, 120).FighterPower(10))
	assert.Equal(t, 0, compose(t, testutil.Gun127Twin, 0, 0).FighterPower(10))
}

func TestFighterPower_SeaplaneBomberBonus(t *testing.T) {
	g := compose(t, testutil.Zuiun, 0, 120)
	want := int(math.Floor(2*math.Sqrt(4) + math.Sqrt(12) + 6))
	assert.Equal(t, want, g.FighterPower(4))
}

func TestAdjustedAntiAir_Multipliers(t *testing.T) {
	assert.InDelta(t, 6*9, compose(t, testutil.Triple25Conc, 0, 0).AdjustedAntiAir(), 1e-9)
	assert.InDelta(t, 4*7, compose(t, testutil.HighAngle10cm, 0, 0).AdjustedAntiAir(), 1e-9)
	assert.InDelta(t, 4*6, compose(t, testutil.Type94AAFD, 0, 0).AdjustedAntiAir(), 1e-9)
	assert.InDelta(t, 3*2, compose(t, testutil.Type13AirRadar, 0, 0).AdjustedAntiAir(), 1e-9)
	assert.InDelta(t, 0, compose(t, testutil.Gun356Twin, 0, 0).AdjustedAntiAir(), 1e-9)
	assert.InDelta(t, 6*9+3*math.Sqrt(4), compose(t, testutil.Triple25Conc, 4, 0).AdjustedAntiAir(), 1e-9)
}

func TestFleetAntiAir_Multipliers(t *testing.T) {
	assert.InDelta(t, 0.6*5, compose(t, testutil.Type3Shell, 0, 0).FleetAntiAir(), 1e-9)
	assert.InDelta(t, 0.4*2, compose(t, testutil.Type13AirRadar, 0, 0).FleetAntiAir(), 1e-9)
	assert.InDelta(t, 0.35*10, compose(t, testutil.HighAngle10cmFD, 0, 0).FleetAntiAir(), 1e-9)
	assert.InDelta(t, 0.2*9, compose(t, testutil.Triple25Conc, 0, 0).FleetAntiAir(), 1e-9)
}

func TestContact(t *testing.T) {
	saiun := compose(t, testutil.Saiun, 0, 0)
	assert.True(t, saiun.CanTriggerContact())
	assert.InDelta(t, 0.04*9*math.Sqrt(4), saiun.ContactTriggerFactor(4), 1e-9)
	assert.InDelta(t, 9.0/14, saiun.ContactSelectionRate(14), 1e-9)
	assert.Equal(t, 1.17, saiun.ContactMultiplier())

	torp := compose(t, testutil.Type97Torpedo, 0, 0)
	assert.False(t, torp.CanTriggerContact())
	assert.True(t, torp.CanBeSelectedForContact())
	assert.Equal(t, 0.0, torp.ContactTriggerFactor(18))
	assert.Equal(t, 1.12, torp.ContactMultiplier())

	fighter := compose(t, testutil.Zero21, 0, 0)
	assert.Equal(t, 0.0, fighter.ContactSelectionRate(14))
}

func TestProficiency_CriticalBonus(t *testing.T) {
	p := gear.Proficiency{Exp: 120}
	assert.InDelta(t, math.Floor(math.Sqrt(120)+10)/100, p.CriticalBonus(), 1e-9)
	assert.Equal(t, 0.0, gear.Proficiency{}.CriticalBonus())
}
