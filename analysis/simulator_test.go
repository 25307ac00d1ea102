package analysis

import (
	"bytes"
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerodds/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestSimulator(t *testing.T, seed int64, opts ...Option) *Simulator {
	t.Helper()
	base := []Option{WithSeed(seed), WithWorkers(4), WithLogger(quietLogger()), WithClock(quartz.NewMock(t))}
	return NewSimulator(append(base, opts...)...)
}

func combo(s string) Combo {
	c, err := ParseCombo(s)
	if err != nil {
		panic(err)
	}
	return c
}

func board(s string) []poker.Card {
	return poker.MustParseCards(s)
}

func TestHandVsHandConvergence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hero     string
		villain  string
		board    string
		min, max float64
	}{
		{"aces vs kings", "AsAh", "KsKh", "", 0.78, 0.84},
		{"suited ace king vs queens", "AsKs", "QhQd", "", 0.40, 0.60},
		{"aces vs kings on a dry flop", "AsAh", "KsKh", "2s5d8c", 0.85, 1.0},
		{"set vs flush draw", "TdTh", "AsKs", "Ts9s2h", 0.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sim := newTestSimulator(t, 42)
			res, err := sim.HandVsHand(context.Background(), combo(tt.hero), combo(tt.villain), board(tt.board), 20000)
			require.NoError(t, err)
			assert.Equal(t, 20000, res.Trials())
			assert.GreaterOrEqual(t, res.Equity(), tt.min, res.String())
			assert.LessOrEqual(t, res.Equity(), tt.max, res.String())
		})
	}
}

func TestHandVsHandSymmetry(t *testing.T) {
	t.Parallel()

	hero, villain := combo("AsKs"), combo("QhQd")
	flop := board("Ts9s2h")

	forward, err := newTestSimulator(t, 11).HandVsHand(context.Background(), hero, villain, flop, 5000)
	require.NoError(t, err)
	backward, err := newTestSimulator(t, 11).HandVsHand(context.Background(), villain, hero, flop, 5000)
	require.NoError(t, err)

	// Same seed and dead cards draw the same run-outs, so the counts mirror.
	assert.Equal(t, forward.Reverse(), backward)
	assert.InDelta(t, 1.0, forward.Equity()+backward.Equity(), 1e-9)

	independent, err := newTestSimulator(t, 12).HandVsHand(context.Background(), villain, hero, flop, 20000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, forward.Equity()+independent.Equity(), 0.04)
}

func TestHandVsHandRiver(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t, 1)

	res, err := sim.HandVsHand(context.Background(), combo("AsAh"), combo("KsKh"), board("2c3d7h9sJc"), 100)
	require.NoError(t, err)
	assert.Equal(t, EquityResult{Wins: 100}, res)

	res, err = sim.HandVsHand(context.Background(), combo("AhKh"), combo("AdKd"), board("QsJsTc2d3c"), 100)
	require.NoError(t, err)
	assert.Equal(t, EquityResult{Ties: 100}, res)
}

func TestHandVsHandExactTrials(t *testing.T) {
	t.Parallel()

	for _, trials := range []int{1, 3, 7, 1001} {
		sim := newTestSimulator(t, 5, WithWorkers(8))
		res, err := sim.HandVsHand(context.Background(), combo("AsAh"), combo("KsKh"), nil, trials)
		require.NoError(t, err)
		assert.Equal(t, trials, res.Trials())
	}
}

func TestHandVsRange(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t, 42)
	res, err := sim.HandVsRange(context.Background(), combo("AsAh"), "KK,QQ,JJ", nil, 20000)
	require.NoError(t, err)
	assert.Greater(t, res.Equity(), 0.70, res.String())
	// 18 combos at 1111 trials each
	assert.Equal(t, 18*1111, res.Trials())
}

func TestHandVsRangeTrialAccounting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		expr   string
		board  string
		trials int
		want   int
	}{
		{"even split", "KK", "", 600, 600},
		{"fewer trials than combos", "KK", "", 5, 6},
		{"rounds down", "KK,QQ", "", 100, 96},
		{"hero blocks combos", "AA", "", 30, 30},
		{"board blocks combos", "KK", "Ks7c2d", 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sim := newTestSimulator(t, 3)
			res, err := sim.HandVsRange(context.Background(), combo("AsAh"), tt.expr, board(tt.board), tt.trials)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Trials())
		})
	}
}

func TestHandVsRangeMatchesHandVsHand(t *testing.T) {
	t.Parallel()

	hero, villain := combo("AsKs"), combo("QhQd")
	single, err := newTestSimulator(t, 8).HandVsRange(context.Background(), hero, "QhQd", nil, 4000)
	require.NoError(t, err)
	direct, err := newTestSimulator(t, 8).HandVsHand(context.Background(), hero, villain, nil, 4000)
	require.NoError(t, err)

	assert.Equal(t, 4000, single.Trials())
	assert.InDelta(t, direct.Equity(), single.Equity(), 0.04)
}

func TestSimulatorReproducible(t *testing.T) {
	t.Parallel()

	run := func() (EquityResult, EquityResult) {
		sim := newTestSimulator(t, 1234)
		hh, err := sim.HandVsHand(context.Background(), combo("AsKs"), combo("QhQd"), nil, 3000)
		require.NoError(t, err)
		hr, err := sim.HandVsRange(context.Background(), combo("AsKs"), "TT+,AQs+", board("Ts9s2h"), 3000)
		require.NoError(t, err)
		return hh, hr
	}

	hh1, hr1 := run()
	hh2, hr2 := run()
	assert.Equal(t, hh1, hh2)
	assert.Equal(t, hr1, hr2)

	other, err := newTestSimulator(t, 4321).HandVsHand(context.Background(), combo("AsKs"), combo("QhQd"), nil, 3000)
	require.NoError(t, err)
	assert.NotEqual(t, hh1, other, "different seeds should sample differently")
}

func TestSimulatorSpreadShrinksWithTrials(t *testing.T) {
	t.Parallel()

	spread := func(trials int) float64 {
		var values []float64
		for seed := range int64(12) {
			res, err := newTestSimulator(t, seed).HandVsHand(context.Background(), combo("AsAh"), combo("KsKh"), nil, trials)
			require.NoError(t, err)
			values = append(values, res.Equity())
		}
		return stddev(values)
	}

	assert.Less(t, spread(5000), spread(200))
}

func stddev(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func TestSimulatorValidation(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t, 1)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		errs []error
	}{
		{"zero trials", func() error {
			_, err := sim.HandVsHand(ctx, combo("AsAh"), combo("KsKh"), nil, 0)
			return err
		}, []error{ErrInvalidTrials}},
		{"negative trials in range mode", func() error {
			_, err := sim.HandVsRange(ctx, combo("AsAh"), "KK", nil, -5)
			return err
		}, []error{ErrInvalidTrials}},
		{"two card board", func() error {
			_, err := sim.HandVsHand(ctx, combo("AsAh"), combo("KsKh"), board("2c3d"), 10)
			return err
		}, []error{poker.ErrInvalidBoard}},
		{"six card board", func() error {
			_, err := sim.HandVsRange(ctx, combo("AsAh"), "KK", board("2c3d4h5s6c7d"), 10)
			return err
		}, []error{poker.ErrInvalidBoard}},
		{"shared card", func() error {
			_, err := sim.HandVsHand(ctx, combo("AsAh"), combo("AsKh"), nil, 10)
			return err
		}, []error{poker.ErrDuplicateCard}},
		{"hero on board", func() error {
			_, err := sim.HandVsHand(ctx, combo("AsAh"), combo("KsKh"), board("As2c3d"), 10)
			return err
		}, []error{poker.ErrInvalidBoard, poker.ErrDuplicateCard}},
		{"villain on board", func() error {
			_, err := sim.HandVsHand(ctx, combo("AsAh"), combo("KsKh"), board("Kh2c3d"), 10)
			return err
		}, []error{poker.ErrInvalidBoard, poker.ErrDuplicateCard}},
		{"zero value hero", func() error {
			_, err := sim.HandVsHand(ctx, Combo{}, combo("KsKh"), nil, 10)
			return err
		}, []error{poker.ErrInvalidCard}},
		{"empty range", func() error {
			_, err := sim.HandVsRange(ctx, combo("AsAh"), "AsAh", nil, 10)
			return err
		}, []error{ErrEmptyRange}},
		{"bad range", func() error {
			_, err := sim.HandVsRange(ctx, combo("AsAh"), "KK,Q", nil, 10)
			return err
		}, []error{ErrInvalidRangeToken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			for _, want := range tt.errs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestSimulatorCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := newTestSimulator(t, 1)
	res, err := sim.HandVsHand(ctx, combo("AsAh"), combo("KsKh"), nil, 1_000_000)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res)

	res, err = sim.HandVsRange(ctx, combo("AsAh"), "22+", nil, 1_000_000)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res)
}

func TestSimulatorConcurrentQueries(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(t, 9)
	results := make([]EquityResult, 8)

	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			res, err := sim.HandVsRange(context.Background(), combo("AsAh"), "KK,QQ", nil, 1200)
			results[i] = res
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, res := range results {
		assert.Equal(t, 1200, res.Trials())
		assert.Greater(t, res.Equity(), 0.7)
	}
}

func TestSimulatorOptions(t *testing.T) {
	t.Parallel()

	sim := NewSimulator()
	assert.GreaterOrEqual(t, sim.Workers(), 1)
	assert.LessOrEqual(t, sim.Workers(), maxDefaultWorkers)

	assert.Equal(t, 3, NewSimulator(WithWorkers(3)).Workers())
	assert.Equal(t, sim.Workers(), NewSimulator(WithWorkers(0)).Workers())

	seeded := NewSimulator(WithRand(nil), WithLogger(nil), WithClock(nil))
	assert.NotNil(t, seeded.rng)
	assert.NotNil(t, seeded.logger)
	assert.NotNil(t, seeded.clock)
}

func TestSimulatorDebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	sim := newTestSimulator(t, 1, WithLogger(logger))

	_, err := sim.HandVsRange(context.Background(), combo("AsAh"), "KK", nil, 60)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Simulating hand vs range")
	assert.Contains(t, out, "combos=6")
	assert.Contains(t, out, "Simulation complete")
}

func TestPackageHelpers(t *testing.T) {
	t.Parallel()

	res, err := SimulateHandVsHand(combo("AsAh"), combo("KsKh"), nil, 500)
	require.NoError(t, err)
	assert.Equal(t, 500, res.Trials())

	res, err = SimulateHandVsRange(combo("AsAh"), "KK", nil, 600)
	require.NoError(t, err)
	assert.Equal(t, 600, res.Trials())

	_, err = SimulateHandVsRange(combo("AsAh"), "AsAh", nil, 600)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func BenchmarkHandVsHand(b *testing.B) {
	sim := NewSimulator(WithSeed(1), WithLogger(quietLogger()))
	hero, villain := combo("AsKs"), combo("QhQd")
	for b.Loop() {
		_, _ = sim.HandVsHand(context.Background(), hero, villain, nil, 10000)
	}
}

func BenchmarkHandVsRange(b *testing.B) {
	sim := NewSimulator(WithSeed(1), WithLogger(quietLogger()))
	hero := combo("AsKs")
	for b.Loop() {
		_, _ = sim.HandVsRange(context.Background(), hero, "TT+,AQs+,AKo", nil, 10000)
	}
}
