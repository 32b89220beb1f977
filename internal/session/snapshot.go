package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"marketsim/internal/catalog"
	"marketsim/internal/engines/market"
	"marketsim/internal/portfolio"
)

// StockState is the serialized walk state for one symbol.
type StockState struct {
	Price     float64 `json:"price"`
	PrevDelta float64 `json:"prevDelta"`
}

// SimulatorSnapshot captures everything a session needs to resume, minus the
// scheduler's wall-clock cursor.
type SimulatorSnapshot struct {
	Config         Config               `json:"config"`
	Portfolio      portfolio.Snapshot   `json:"portfolio"`
	Stocks         map[string]StockState `json:"stocks"`
	PriceHistory   map[string][]float64 `json:"priceHistory"`
	SimulatedTime  time.Time            `json:"simulatedTime"`
	Speed          float64              `json:"speed"`
	Trades         []Trade              `json:"trades"`
	ModeState      ModeState            `json:"modeState"`
	StartTime      time.Time            `json:"startTime"`
	InitialCapital float64              `json:"initialCapital"`
	DailyStats     []DailyStat          `json:"dailyStats"`
}

// SaveSnapshot is the closed document schema written to the save store.
type SaveSnapshot struct {
	Config    Config            `json:"config"`
	Simulator SimulatorSnapshot `json:"simulator"`
}

// DecodeSnapshot parses a snapshot document, rejecting unknown fields so
// schema drift surfaces at load instead of corrupting a session.
func DecodeSnapshot(data []byte) (*SaveSnapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var snap SaveSnapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot document: %w", err)
	}
	return &snap, nil
}

// Snapshot captures the full session state.
func (s *Session) Snapshot() *SaveSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	sim := SimulatorSnapshot{
		Config:         s.Config,
		Portfolio:      s.Portfolio.Snapshot(),
		Stocks:         make(map[string]StockState, len(s.PriceStates)),
		PriceHistory:   make(map[string][]float64, len(s.PriceStates)),
		SimulatedTime:  s.Clock.SimDate.UTC(),
		Speed:          s.Clock.Speed,
		Trades:         append([]Trade(nil), s.Trades...),
		ModeState:      s.ModeState,
		StartTime:      s.StartTime.UTC(),
		InitialCapital: s.InitialCapital,
		DailyStats:     append([]DailyStat(nil), s.DailyStats...),
	}
	for sym, st := range s.PriceStates {
		sim.Stocks[sym] = StockState{Price: st.Price, PrevDelta: st.PrevDelta}
		sim.PriceHistory[sym] = append([]float64(nil), st.History...)
	}
	return &SaveSnapshot{Config: s.Config, Simulator: sim}
}

// RestoreSession rebuilds a session from a snapshot for the given owner.
// The price tape resumes from the saved walk state under a fresh RNG stream.
func RestoreSession(owner string, snap *SaveSnapshot, cat *catalog.Catalog) (*Session, error) {
	sim := snap.Simulator
	cfg := sim.Config.Normalize()

	s := New(owner, cfg, cat)
	s.Portfolio = portfolio.Restore(sim.Portfolio)
	s.Trades = append([]Trade(nil), sim.Trades...)
	s.ModeState = sim.ModeState
	s.DailyStats = append([]DailyStat(nil), sim.DailyStats...)
	s.StartTime = sim.StartTime
	if sim.InitialCapital > 0 {
		s.InitialCapital = sim.InitialCapital
	}

	s.Clock.StartDate = sim.StartTime.UTC().Truncate(24 * time.Hour)
	s.Clock.SimDate = sim.SimulatedTime.UTC()
	if sim.Speed > 0 {
		s.Clock.SetSpeed(sim.Speed)
	}
	if sim.ModeState.Custom != nil {
		s.Clock.DayBudget = sim.ModeState.Custom.WeeksBudget * 7
	}

	for sym, stock := range sim.Stocks {
		st, ok := s.PriceStates[sym]
		if !ok {
			// Symbol left the catalog since the save was written; carry the
			// state anyway so the portfolio stays priceable.
			st = &market.PriceState{Symbol: sym}
			s.PriceStates[sym] = st
		}
		st.Price = stock.Price
		st.PrevDelta = stock.PrevDelta
		if hist, ok := sim.PriceHistory[sym]; ok {
			st.History = append([]float64(nil), hist...)
		} else {
			st.History = []float64{stock.Price}
		}
		s.lastBroadcast[sym] = stock.Price
	}
	return s, nil
}
