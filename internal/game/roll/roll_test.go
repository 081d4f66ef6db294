package roll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/fleetcalc/internal/game/roll"
)

func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := roll.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSeeded_SameSeedSameSequence(t *testing.T) {
	a := roll.NewSeeded(42)
	b := roll.NewSeeded(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestFixed_Wraps(t *testing.T) {
	src := &roll.Fixed{Values: []float64{0.1, 0.9}}
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.9, src.Float64())
	assert.Equal(t, 0.1, src.Float64())
}

func TestFixed_PanicsWhenEmpty(t *testing.T) {
	src := &roll.Fixed{}
	assert.Panics(t, func() { src.Float64() })
}

func TestSample(t *testing.T) {
	rates := []float64{0.2, 0.3}
	tests := []struct {
		draw float64
		want int
	}{
		{0.0, 0},
		{0.19, 0},
		{0.2, 1},
		{0.49, 1},
		{0.5, 2},
		{0.99, 2},
	}
	for _, tc := range tests {
		got := roll.Sample(rates, &roll.Fixed{Values: []float64{tc.draw}})
		assert.Equal(t, tc.want, got, "draw=%v", tc.draw)
	}
}

func TestChance(t *testing.T) {
	src := &roll.Fixed{Values: []float64{0.5}}
	assert.False(t, roll.Chance(0, src))
	assert.True(t, roll.Chance(1, src))
	assert.True(t, roll.Chance(0.6, src))
	assert.False(t, roll.Chance(0.4, src))
}

func TestSample_Property_IndexInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(rt, "n")
		rates := make([]float64, n)
		remaining := 1.0
		for i := range rates {
			r := rapid.Float64Range(0, remaining).Draw(rt, "rate")
			rates[i] = r
			remaining -= r
		}
		draw := rapid.Float64Range(0, 0.999999).Draw(rt, "draw")
		idx := roll.Sample(rates, &roll.Fixed{Values: []float64{draw}})
		assert.GreaterOrEqual(rt, idx, 0)
		assert.LessOrEqual(rt, idx, n)
	})
}

func TestRoller_LabeledLogsEveryDraw(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := roll.NewLoggedRoller(&roll.Fixed{Values: []float64{0.25, 0.75}}, zap.New(core))

	src := r.Labeled("s1")
	require.Equal(t, 1, roll.Sample([]float64{0.2, 0.3}, src))
	require.Equal(t, 2, roll.Sample([]float64{0.2, 0.3}, src))

	entries := logs.FilterMessage("outcome sampled").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "s1", entries[0].ContextMap()["label"])
	assert.Equal(t, 0.75, entries[1].ContextMap()["draw"])

	r.Float64()
	assert.Equal(t, 2, logs.Len(), "unlabeled draws are not logged")
}
