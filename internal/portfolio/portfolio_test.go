package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageCost(t *testing.T) {
	pf := New(10_000)
	pf.AddShares("AAPL", 10, 1000) // 100/share
	pf.AddShares("AAPL", 10, 1200) // 120/share

	pos := pf.Position("AAPL")
	require.NotNil(t, pos)
	assert.Equal(t, int64(20), pos.Quantity)
	assert.InDelta(t, 110, pos.AvgCost(), 1e-9)
}

func TestRemoveSharesReliefAtAverage(t *testing.T) {
	pf := New(10_000)
	pf.AddShares("AAPL", 10, 1000)
	pf.AddShares("AAPL", 10, 1200)

	pf.RemoveShares("AAPL", 5)
	pos := pf.Position("AAPL")
	require.NotNil(t, pos)
	assert.Equal(t, int64(15), pos.Quantity)
	assert.InDelta(t, 110, pos.AvgCost(), 1e-9)

	pf.RemoveShares("AAPL", 15)
	assert.Nil(t, pf.Position("AAPL"))
}

func TestTotalValueWithShorts(t *testing.T) {
	pf := New(5000)
	pf.AddShares("AAPL", 10, 1000)
	pf.Shorts["TSLA"] = &ShortPosition{Quantity: 5, EntryPrice: 200}

	prices := map[string]float64{"AAPL": 110, "TSLA": 180}

	// Long book: 10 * 110 = 1100. Short liability: 5*180 - 5*200 = -100,
	// a mark-to-market gain that raises total value.
	assert.InDelta(t, 1100, pf.MarketValue(prices), 1e-9)
	assert.InDelta(t, -100, pf.ShortLiability(prices), 1e-9)
	assert.InDelta(t, 5000+1100+100, pf.TotalValue(prices), 1e-9)
}

func TestUnrealizedPnL(t *testing.T) {
	pf := New(0)
	pf.AddShares("AAPL", 10, 1000)
	pf.Shorts["TSLA"] = &ShortPosition{Quantity: 5, EntryPrice: 200}

	prices := map[string]float64{"AAPL": 90, "TSLA": 210}
	// Long: 900 - 1000 = -100. Short: 5 * (200 - 210) = -50.
	assert.InDelta(t, -150, pf.UnrealizedPnL(prices), 1e-9)
}

func TestBuyingPower(t *testing.T) {
	pf := New(1000)
	assert.InDelta(t, 1000, pf.BuyingPower(), 1e-9)

	pf.MarginEnabled = true
	pf.MarginMultiplier = 2
	assert.InDelta(t, 2000, pf.BuyingPower(), 1e-9)
}

func TestMarginLevelAndCallFlag(t *testing.T) {
	pf := New(-1000) // borrowed
	pf.MarginEnabled = true
	pf.MarginMultiplier = 2
	pf.AddShares("AAPL", 20, 2000)

	prices := map[string]float64{"AAPL": 110}
	// Equity: -1000 + 2200 = 1200; used margin 1000 -> level 120 < 130.
	level := pf.MarginLevel(prices)
	assert.InDelta(t, 120, level, 1e-9)
	assert.True(t, pf.MarginCallFlag)

	prices["AAPL"] = 150
	level = pf.MarginLevel(prices)
	assert.InDelta(t, 200, level, 1e-9)
	assert.False(t, pf.MarginCallFlag)
}

func TestMarginLevelZeroWhenNoBorrow(t *testing.T) {
	pf := New(500)
	assert.Zero(t, pf.MarginLevel(map[string]float64{}))
	assert.False(t, pf.MarginCallFlag)
}

func TestSnapshotRestore(t *testing.T) {
	pf := New(2500)
	pf.AddShares("AAPL", 3, 300)
	pf.Shorts["TSLA"] = &ShortPosition{Quantity: 2, EntryPrice: 150}
	pf.RealizedGains = 42.5
	pf.MarginEnabled = true
	pf.MarginMultiplier = 2

	restored := Restore(pf.Snapshot())
	assert.Equal(t, pf.Cash, restored.Cash)
	assert.Equal(t, pf.RealizedGains, restored.RealizedGains)
	assert.Equal(t, *pf.Position("AAPL"), *restored.Position("AAPL"))
	assert.Equal(t, *pf.Short("TSLA"), *restored.Short("TSLA"))

	// The copies are independent.
	restored.AddShares("AAPL", 1, 100)
	assert.Equal(t, int64(3), pf.Position("AAPL").Quantity)
}
