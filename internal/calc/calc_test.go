package calc_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/analysis"
	"github.com/cory-johannsen/fleetcalc/internal/calc"
	"github.com/cory-johannsen/fleetcalc/internal/deck"
	"github.com/cory-johannsen/fleetcalc/internal/game/fleet"
	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
	"github.com/cory-johannsen/fleetcalc/internal/game/rules"
	"github.com/cory-johannsen/fleetcalc/internal/game/ship"
	"github.com/cory-johannsen/fleetcalc/internal/testutil"
)

func newService(t *testing.T, src roll.Source, logger *zap.Logger) *calc.Service {
	t.Helper()
	svc, err := calc.New(testutil.Registry(), ship.DefaultBonusRules(), analysis.New(nil, nil), src, logger)
	require.NoError(t, err)
	return svc
}

func nagatoDeck() json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"version":4,"f1":{"name":"test","s1":{"id":%d,"lv":1,"items":{}}}}`, testutil.Nagato))
}

func query() calc.Query {
	n := 0
	return calc.Query{
		Deck: nagatoDeck(),
		Nodes: []fleet.NodeState{{
			Type:      "battle",
			Formation: string(rules.LineAhead),
			Enemy:     fleet.State{"s1": {ShipID: testutil.AbyssalDD}},
		}},
		Node: &n,
	}
}

func TestService_Analyze(t *testing.T) {
	svc := newService(t, roll.NewSeeded(1), zap.NewNop())
	r, err := svc.Analyze(query())
	require.NoError(t, err)
	assert.Equal(t, "test", r.Plan)
	require.Len(t, r.Ships, 1)
	require.NotNil(t, r.Ships[0].Shelling)
	assert.Equal(t, 87.0, r.Ships[0].Shelling.Power.Normal)
	require.NotNil(t, r.Target)
	assert.Equal(t, testutil.AbyssalDD, r.Target.ID)
}

func TestService_AnalyzeOptions(t *testing.T) {
	svc := newService(t, roll.NewSeeded(1), zap.NewNop())
	q := query()
	q.Engagement = "t_disadvantage"
	q.AirState = "AP"
	r, err := svc.Analyze(q)
	require.NoError(t, err)
	assert.Equal(t, "t_disadvantage", r.Fleet.Engagement)
	assert.Equal(t, "AP", r.Fleet.AirState)
	assert.InDelta(t, 52.2, r.Ships[0].Shelling.Power.Precap, 1e-9)
}

func TestService_Errors(t *testing.T) {
	svc := newService(t, roll.NewSeeded(1), zap.NewNop())
	cases := []struct {
		name  string
		edit  func(q *calc.Query)
		input bool
		deck  bool
	}{
		{"bad engagement", func(q *calc.Query) { q.Engagement = "sideways" }, true, false},
		{"bad air state", func(q *calc.Query) { q.AirState = "AX" }, true, false},
		{"negative cn", func(q *calc.Query) { q.Cn = -1 }, true, false},
		{"unknown fleet", func(q *calc.Query) { q.Fleet = "f9" }, true, false},
		{"unknown node", func(q *calc.Query) { n := 3; q.Node = &n }, true, false},
		{"bad formation", func(q *calc.Query) { q.Formation = "wedge" }, true, false},
		{"malformed deck", func(q *calc.Query) { q.Deck = json.RawMessage(`[1]`) }, false, true},
		{"old deck", func(q *calc.Query) { q.Deck = json.RawMessage(`{"version":3}`) }, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := query()
			tc.edit(&q)
			_, err := svc.Analyze(q)
			require.Error(t, err)
			assert.Equal(t, tc.input, calc.IsInputError(err))
			assert.Equal(t, tc.deck, calc.IsDeckError(err))
		})
	}
	_, err := svc.Analyze(calc.Query{Deck: json.RawMessage(`{"version":4}`)})
	assert.ErrorIs(t, err, analysis.ErrEmptyFleet)
	_, err = svc.Analyze(calc.Query{Deck: json.RawMessage(`{"version":"x"}`)})
	assert.ErrorIs(t, err, deck.ErrUnsupportedVersion)
}

func TestService_Sample_FixedDraws(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := newService(t, &roll.Fixed{Values: []float64{0, 0.5, 0.9999}}, zap.New(core))

	tallies, err := svc.Sample(query(), 3)
	require.NoError(t, err)
	require.Len(t, tallies, 1)
	assert.Equal(t, calc.Tally{Key: "s1", ID: testutil.Nagato, Miss: 1, Normal: 1, Critical: 1}, tallies[0])
	assert.Equal(t, 3, logs.FilterMessage("outcome sampled").Len())
}

func TestService_Sample_Validation(t *testing.T) {
	svc := newService(t, roll.NewSeeded(1), zap.NewNop())
	_, err := svc.Sample(query(), 0)
	assert.ErrorIs(t, err, calc.ErrInvalidQuery)
	_, err = svc.Sample(query(), calc.MaxTrials+1)
	assert.ErrorIs(t, err, calc.ErrInvalidQuery)
	q := query()
	q.Node = nil
	_, err = svc.Sample(q, 10)
	assert.ErrorIs(t, err, calc.ErrInvalidQuery)
}

// Property: every tally sums to the requested trials.
func TestService_Sample_Property_TalliesSumToTrials(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		trials := rapid.IntRange(1, 500).Draw(rt, "trials")
		svc, err := calc.New(testutil.Registry(), ship.DefaultBonusRules(), analysis.New(nil, nil), roll.NewSeeded(seed), zap.NewNop())
		if err != nil {
			rt.Fatalf("New: %v", err)
		}
		tallies, err := svc.Sample(query(), trials)
		if err != nil {
			rt.Fatalf("Sample: %v", err)
		}
		for _, tl := range tallies {
			if got := tl.Miss + tl.Normal + tl.Critical; got != trials {
				rt.Fatalf("tally %s sums to %d, want %d", tl.Key, got, trials)
			}
		}
	})
}

func TestService_ShootDown_FixedDraws(t *testing.T) {
	svc := newService(t, &roll.Fixed{Values: []float64{0, 0.9999}}, zap.NewNop())
	r, err := svc.Analyze(query())
	require.NoError(t, err)
	base := r.Ships[0].ShootDown.Base
	require.Nil(t, r.Ships[0].ShootDown.Cutin)

	tallies, err := svc.ShootDown(query(), 20, 4)
	require.NoError(t, err)
	require.Len(t, tallies, 1)
	tl := tallies[0]
	// Proportional always applies, fixed never does.
	want := min(base.Minimum+int(20*base.Proportional), 20)
	assert.Equal(t, calc.ShootDownTally{Key: "s1", ID: testutil.Nagato, Slot: 20, Min: want, Max: want, Mean: float64(want), Trials: 4}, tl)
}

func TestService_ShootDown_RollsCutin(t *testing.T) {
	q := query()
	q.Deck = json.RawMessage(fmt.Sprintf(
		`{"version":4,"f1":{"name":"aa","s1":{"id":%d,"lv":1,"items":{"i1":{"id":%d},"i2":{"id":%d},"i3":{"id":%d}}}}}`,
		testutil.Akizuki, testutil.HighAngle10cmFD, testutil.HighAngle10cmFD, testutil.Type13AirRadar))
	svc := newService(t, &roll.Fixed{Values: []float64{0}}, zap.NewNop())
	r, err := svc.Analyze(q)
	require.NoError(t, err)
	c := r.Ships[0].ShootDown.Cutin
	require.NotNil(t, c)

	tallies, err := svc.ShootDown(q, 30, 5)
	require.NoError(t, err)
	require.Len(t, tallies, 1)
	tl := tallies[0]
	assert.Equal(t, c.ID, tl.Cutin)
	assert.Equal(t, 5, tl.Cutins)
	want := min(c.Minimum+int(30*c.Proportional)+c.Fixed, 30)
	assert.Equal(t, want, tl.Min)
	assert.Equal(t, want, tl.Max)
}

func TestService_ShootDown_Validation(t *testing.T) {
	svc := newService(t, roll.NewSeeded(1), zap.NewNop())
	for _, tc := range []struct{ slot, trials int }{
		{0, 10}, {calc.MaxSlot + 1, 10}, {10, 0}, {10, calc.MaxTrials + 1},
	} {
		_, err := svc.ShootDown(query(), tc.slot, tc.trials)
		assert.ErrorIs(t, err, calc.ErrInvalidQuery, "slot %d trials %d", tc.slot, tc.trials)
	}
}

// Property: every sampled shoot-down stays within the squadron.
func TestService_ShootDown_Property_Bounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		slot := rapid.IntRange(1, calc.MaxSlot).Draw(rt, "slot")
		svc, err := calc.New(testutil.Registry(), ship.DefaultBonusRules(), analysis.New(nil, nil), roll.NewSeeded(seed), zap.NewNop())
		if err != nil {
			rt.Fatalf("New: %v", err)
		}
		tallies, err := svc.ShootDown(query(), slot, 20)
		if err != nil {
			rt.Fatalf("ShootDown: %v", err)
		}
		for _, tl := range tallies {
			if tl.Min < 0 || tl.Max > slot || tl.Mean < float64(tl.Min) || tl.Mean > float64(tl.Max) {
				rt.Fatalf("tally %+v out of bounds for slot %d", tl, slot)
			}
		}
	})
}
