package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridClass(t *testing.T) {
	ace, king := uint8(12), uint8(11)
	assert.Equal(t, "AA", GridClass(ace, ace).String())
	assert.Equal(t, "AKs", GridClass(ace, king).String())
	assert.Equal(t, "AKo", GridClass(king, ace).String())
}

func TestAllHandClasses(t *testing.T) {
	classes := AllHandClasses()
	require.Len(t, classes, NumHandClasses)
	assert.Equal(t, "AA", classes[0].String())
	assert.Equal(t, "AKs", classes[1].String())
	assert.Equal(t, "22", classes[len(classes)-1].String())

	seen := make(map[HandClass]struct{}, len(classes))
	total := 0
	for _, c := range classes {
		seen[c] = struct{}{}
		total += c.Combos()
	}
	assert.Len(t, seen, NumHandClasses)
	assert.Equal(t, TotalStartingHands, total)
}

func TestAnyTwoCoversEveryCombo(t *testing.T) {
	n, err := CountCombos(AnyTwo)
	require.NoError(t, err)
	assert.Equal(t, TotalStartingHands, n)

	r, err := ExpandRange(AnyTwo, 0)
	require.NoError(t, err)
	assert.Equal(t, TotalStartingHands, r.Size())
	assert.Len(t, r.Classes(), NumHandClasses)
}

func TestPreflopTable(t *testing.T) {
	if testing.Short() {
		t.Skip("simulates every starting hand")
	}

	sim := newTestSimulator(t, 11)
	table, err := sim.PreflopTable(context.Background(), 1000)
	require.NoError(t, err)
	require.Len(t, table, NumHandClasses)

	for i := 1; i < len(table); i++ {
		assert.GreaterOrEqual(t, table[i-1].Result.Equity(), table[i].Result.Equity())
	}

	byClass := make(map[string]EquityResult, len(table))
	for _, h := range table {
		assert.GreaterOrEqual(t, h.Result.Trials(), 1000)
		byClass[h.Class.String()] = h.Result
	}
	assert.InDelta(t, 0.85, byClass["AA"].Equity(), 0.04)
	assert.InDelta(t, 0.35, byClass["72o"].Equity(), 0.04)
	assert.Greater(t, byClass["AKs"].Equity(), byClass["AKo"].Equity()-0.04)
	assert.True(t, table[0].Class.IsPair())
}

func TestPreflopTableCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSimulator(t, 1).PreflopTable(ctx, 1000)
	require.ErrorIs(t, err, context.Canceled)
}
