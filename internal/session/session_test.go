package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketsim/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Instrument{
		{Symbol: "AAPL", DisplayName: "Apple", BasePrice: 100, Type: catalog.TypeGrowth, BaseVolatility: 0.03},
		{Symbol: "TLT", DisplayName: "Treasuries", BasePrice: 90, Type: catalog.TypeBond, BaseVolatility: 0.005},
	})
	require.NoError(t, err)
	return cat
}

func TestNewSessionNormalizesConfig(t *testing.T) {
	s := New("alice", Config{StartingCapital: 5_000_000, Seed: 1}, testCatalog(t))
	assert.Equal(t, float64(MaxStartingCapital), s.InitialCapital)
	assert.Equal(t, ModeClassic, s.Config.Mode)
	assert.Len(t, s.PriceStates, 2)
}

func TestNewBotSession(t *testing.T) {
	s := NewBot("mybot", testCatalog(t))
	assert.True(t, s.IsBot)
	assert.NotEmpty(t, s.APIKey)
	assert.Equal(t, float64(DefaultBotCapital), s.InitialCapital)
	assert.Equal(t, BotCommissionRate, s.Config.CommissionRate)
}

func TestTickAdvancesAndRecordsStats(t *testing.T) {
	s := New("alice", Config{Seed: 1}, testCatalog(t))

	result := s.Tick(1)
	assert.Equal(t, 1, result.Day)
	assert.False(t, result.Exhausted)
	assert.NotEmpty(t, result.Deltas)
	require.Len(t, s.DailyStats, 1)
	assert.Equal(t, 1, s.DailyStats[0].Day)
	assert.Equal(t, result.TotalValue, s.DailyStats[0].TotalValue)
}

func TestDeltasAgainstLastBroadcast(t *testing.T) {
	s := New("alice", Config{Seed: 1}, testCatalog(t))

	first := s.Tick(1)
	require.NotEmpty(t, first.Deltas)
	for _, d := range first.Deltas {
		st := s.PriceStates[d.Symbol]
		assert.Equal(t, st.Price, d.Price)
	}

	// The second tick reports movement relative to the first broadcast, not
	// the session start.
	second := s.Tick(1)
	for _, d := range second.Deltas {
		assert.NotZero(t, d.Change)
	}
}

func TestCustomModeBudget(t *testing.T) {
	s := New("alice", Config{Mode: ModeCustom, Weeks: 1, Seed: 1}, testCatalog(t))
	assert.Equal(t, float64(CustomStartingCapital), s.InitialCapital)

	for i := 0; i < 7; i++ {
		s.Tick(1)
	}
	result := s.Tick(1)
	assert.True(t, result.Exhausted)
	assert.Equal(t, 7, result.Day)
}

func TestDayTraderRolloverResetsCounter(t *testing.T) {
	s := New("alice", Config{Mode: ModeDayTrader, Seed: 1}, testCatalog(t))
	s.ModeState.DayTrader.TradesToday = 3

	s.Tick(1)
	assert.Zero(t, s.ModeState.DayTrader.TradesToday)
	assert.Equal(t, 1, s.ModeState.DayTrader.CurrentSimDay)
}

func TestChallengeEvaluation(t *testing.T) {
	s := New("alice", Config{Mode: ModeChallenge, StartingCapital: 10_000, Seed: 1}, testCatalog(t))
	ch := s.ModeState.Challenge
	require.NotNil(t, ch)
	assert.InDelta(t, 500, ch.DailyTarget, 1e-9) // 5% of 10,000

	// All value is cash; prices moving cannot push an empty portfolio over
	// the target, so the streak resets every day.
	s.Tick(1)
	assert.Zero(t, ch.DaysCompleted)
	assert.Zero(t, ch.StreakDays)

	// Hand the session a windfall; the next boundary counts it.
	s.Lock()
	s.Portfolio.Cash += 1000
	s.Unlock()
	s.Tick(1)
	assert.Equal(t, 1, ch.DaysCompleted)
	assert.Equal(t, 1, ch.StreakDays)

	s.Lock()
	s.Portfolio.Cash -= 1000
	s.Unlock()
	s.Tick(1)
	assert.Equal(t, 1, ch.DaysCompleted)
	assert.Zero(t, ch.StreakDays)
}

func TestQuotes(t *testing.T) {
	s := New("alice", Config{Seed: 1}, testCatalog(t))
	quotes := s.Quotes()
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "Apple", quotes[0].DisplayName)

	_, ok := s.Quote("NOPE")
	assert.False(t, ok)
}

func TestSessionStatsReturnPercent(t *testing.T) {
	s := New("alice", Config{StartingCapital: 10_000, Seed: 1}, testCatalog(t))
	s.Lock()
	s.Portfolio.Cash += 500
	s.Unlock()

	stats := s.SessionStats()
	assert.InDelta(t, 5, stats.ReturnPercent, 1e-9)
	assert.Equal(t, s.ID, stats.SessionID)
}

func TestAllocationPortfolioMode(t *testing.T) {
	s := New("alice", Config{Mode: ModePortfolio, StartingCapital: 100_000, Seed: 1}, testCatalog(t))
	s.Lock()
	s.Portfolio.AddShares("AAPL", 10, 1000)
	s.Portfolio.AddShares("TLT", 10, 900)
	s.PriceStates["AAPL"].Price = 100
	s.PriceStates["TLT"].Price = 100
	s.Unlock()

	report := s.Allocation()
	assert.InDelta(t, 0.5, report.Current[catalog.TypeGrowth], 1e-9)
	assert.InDelta(t, 0.5, report.Current[catalog.TypeBond], 1e-9)
	require.NotNil(t, report.Target)
	assert.InDelta(t, 0.40, report.Target[catalog.TypeGrowth], 1e-9)
}
