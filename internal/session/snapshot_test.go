package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	s := New("alice", Config{StartingCapital: 50_000, Mode: ModeChallenge, Seed: 7}, cat)

	s.Tick(3)
	s.Lock()
	s.Portfolio.AddShares("AAPL", 10, 1000)
	s.Portfolio.Cash -= 1000
	s.RecordTrade(Trade{Kind: TradeBuy, Symbol: "AAPL", Quantity: 10, ExecutionPrice: 100})
	s.Unlock()
	s.SetSpeed(2)

	doc, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	snap, err := DecodeSnapshot(doc)
	require.NoError(t, err)
	restored, err := RestoreSession("alice", snap, cat)
	require.NoError(t, err)

	assert.Equal(t, s.InitialCapital, restored.InitialCapital)
	assert.Equal(t, s.Config.Mode, restored.Config.Mode)
	assert.Equal(t, s.Clock.SimDate, restored.Clock.SimDate)
	assert.Equal(t, s.Clock.Speed, restored.Clock.Speed)
	assert.Equal(t, s.Clock.DayCount(), restored.Clock.DayCount())
	assert.Len(t, restored.Trades, 1)
	require.NotNil(t, restored.ModeState.Challenge)
	assert.Equal(t, s.ModeState.Challenge.DailyTarget, restored.ModeState.Challenge.DailyTarget)

	for sym, st := range s.PriceStates {
		rst, ok := restored.PriceStates[sym]
		require.True(t, ok, sym)
		assert.Equal(t, st.Price, rst.Price, sym)
		assert.Equal(t, st.PrevDelta, rst.PrevDelta, sym)
		assert.Equal(t, st.History, rst.History, sym)
	}

	assert.Equal(t, s.Details().Portfolio, restored.Details().Portfolio)
}

func TestDecodeSnapshotRejectsUnknownFields(t *testing.T) {
	s := New("alice", Config{Seed: 1}, testCatalog(t))
	doc, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var loose map[string]interface{}
	require.NoError(t, json.Unmarshal(doc, &loose))
	loose["surprise"] = true
	tampered, err := json.Marshal(loose)
	require.NoError(t, err)

	_, err = DecodeSnapshot(tampered)
	assert.ErrorContains(t, err, "invalid snapshot document")
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not json"))
	assert.Error(t, err)
}

func TestRestoreCustomModeReinstatesBudget(t *testing.T) {
	cat := testCatalog(t)
	s := New("alice", Config{Mode: ModeCustom, Weeks: 2, Seed: 1}, cat)
	s.Tick(5)

	doc, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)
	snap, err := DecodeSnapshot(doc)
	require.NoError(t, err)
	restored, err := RestoreSession("alice", snap, cat)
	require.NoError(t, err)

	assert.Equal(t, 14, restored.Clock.DayBudget)
	assert.Equal(t, 5, restored.Clock.DayCount())

	for i := 0; i < 9; i++ {
		restored.Tick(1)
	}
	result := restored.Tick(1)
	assert.True(t, result.Exhausted)
	assert.Equal(t, 14, result.Day)
}
