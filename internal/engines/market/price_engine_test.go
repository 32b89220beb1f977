package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketsim/internal/catalog"
)

var testInst = catalog.Instrument{
	Symbol:         "TEST",
	DisplayName:    "Test Corp",
	BasePrice:      100,
	Type:           catalog.TypeGrowth,
	BaseVolatility: 0.03,
}

func TestPricesStayPositive(t *testing.T) {
	e := NewEngine(1, 1.8, 1.3)
	st := NewPriceState(catalog.Instrument{
		Symbol: "PENNY", BasePrice: 0.02, Type: catalog.TypeGrowth, BaseVolatility: 0.05,
	})
	for i := 0; i < 5000; i++ {
		e.Tick(st, testInst, 1)
		require.GreaterOrEqual(t, st.Price, PriceFloor)
	}
}

func TestHistoryBounded(t *testing.T) {
	e := NewEngine(7, 1, 1)
	st := NewPriceState(testInst)
	e.Tick(st, testInst, HistoryRetention*2)
	assert.Len(t, st.History, HistoryRetention)
	assert.Equal(t, st.Price, st.History[len(st.History)-1])
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		e := NewEngine(42, 1, 1)
		st := NewPriceState(testInst)
		out := make([]float64, 0, 100)
		for i := 0; i < 100; i++ {
			out = append(out, e.Tick(st, testInst, 1))
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestSeedsDiverge(t *testing.T) {
	a := NewEngine(1, 1, 1)
	b := NewEngine(2, 1, 1)
	sa := NewPriceState(testInst)
	sb := NewPriceState(testInst)
	a.Tick(sa, testInst, 50)
	b.Tick(sb, testInst, 50)
	assert.NotEqual(t, sa.Price, sb.Price)
}

func TestBondVolatilityPinned(t *testing.T) {
	bond := catalog.Instrument{
		Symbol: "TLT", BasePrice: 100, Type: catalog.TypeBond, BaseVolatility: 0.006,
	}

	// Aggressive multipliers must not widen bond moves: the per-step random
	// component is bounded by half the pinned volatility, and outside rare
	// gap events the whole step stays well inside 5%.
	e := NewEngine(3, 1.8, 1.3)
	st := NewPriceState(bond)
	var gaps int
	for i := 0; i < 2000; i++ {
		prev := st.Price
		e.Tick(st, bond, 1)
		move := (st.Price - prev) / prev
		if move > 0.05 || move < -0.05 {
			gaps++
		}
	}
	// Jump/news gaps occur at ~2.5% of ticks; anything beyond a loose bound
	// means type volatility leaked into the bond path.
	assert.Less(t, gaps, 150)
}

func TestTickClampsNonPositiveCount(t *testing.T) {
	e := NewEngine(5, 1, 1)
	st := NewPriceState(testInst)
	e.Tick(st, testInst, 0)
	assert.Len(t, st.History, 2)
}
