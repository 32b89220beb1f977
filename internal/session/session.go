package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"marketsim/internal/catalog"
	"marketsim/internal/engines/market"
	"marketsim/internal/portfolio"
)

// TradeKind discriminates executed trades.
type TradeKind string

const (
	TradeBuy        TradeKind = "BUY"
	TradeSell       TradeKind = "SELL"
	TradeShortOpen  TradeKind = "SHORT_OPEN"
	TradeShortClose TradeKind = "SHORT_CLOSE"
)

// Trade is an executed fill. The trade log is append-only within a session.
type Trade struct {
	Kind           TradeKind `json:"kind"`
	Symbol         string    `json:"symbol"`
	Quantity       int64     `json:"quantity"`
	ExecutionPrice float64   `json:"executionPrice"`
	Commission     float64   `json:"commission,omitempty"`
	WallTimestamp  time.Time `json:"wallTimestamp"`
	SimTimestamp   time.Time `json:"simTimestamp"`
}

// PriceDelta describes one symbol's movement since the last broadcast.
type PriceDelta struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// DailyStat records end-of-day portfolio value.
type DailyStat struct {
	Day        int     `json:"day"`
	TotalValue float64 `json:"totalValue"`
}

// TickResult is what one clock tick produced.
type TickResult struct {
	Day        int
	TotalValue float64
	Deltas     []PriceDelta
	Exhausted  bool
}

// Session binds a config, clock, price engine, portfolio, trade log and mode
// state into one private trading context. The session mutex is the sole
// synchronization point for everything inside.
type Session struct {
	mu sync.Mutex

	ID     string
	Owner  string
	IsBot  bool
	APIKey string // bot credential; empty for human sessions

	Config      Config
	Clock       *market.Clock
	Engine      *market.Engine
	Catalog     *catalog.Catalog
	PriceStates map[string]*market.PriceState
	Portfolio   *portfolio.Portfolio
	Trades      []Trade
	ModeState   ModeState
	DailyStats  []DailyStat

	StartTime      time.Time
	InitialCapital float64

	lastBroadcast map[string]float64
}

// New creates a session for the given owner. The config is normalized; custom
// mode installs its day budget on the clock.
func New(owner string, cfg Config, cat *catalog.Catalog) *Session {
	cfg = cfg.Normalize()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	now := time.Now().UTC()
	clock := market.NewClock(now.Truncate(24*time.Hour), 1.0)
	if cfg.Mode == ModeCustom {
		clock.DayBudget = cfg.Weeks * 7
	}

	pf := portfolio.New(cfg.StartingCapital)
	pf.MarginEnabled = cfg.MarginEnabled
	pf.MarginMultiplier = cfg.MarginMultiplier

	s := &Session{
		ID:             uuid.NewString(),
		Owner:          owner,
		Config:         cfg,
		Clock:          clock,
		Engine:         market.NewEngine(seed, cfg.RiskMultiplier(), cfg.DifficultyMultiplier()),
		Catalog:        cat,
		PriceStates:    make(map[string]*market.PriceState, cat.Size()),
		Portfolio:      pf,
		ModeState:      NewModeState(cfg),
		StartTime:      now,
		InitialCapital: cfg.StartingCapital,
		lastBroadcast:  make(map[string]float64, cat.Size()),
	}
	for _, inst := range cat.All() {
		s.PriceStates[inst.Symbol] = market.NewPriceState(inst)
		s.lastBroadcast[inst.Symbol] = inst.BasePrice
	}
	return s
}

// NewBot creates a bot session with the standard bot funding and a fresh
// API key.
func NewBot(owner string, cat *catalog.Catalog) *Session {
	cfg := Config{
		StartingCapital: DefaultBotCapital,
		RiskLevel:       RiskModerate,
		Difficulty:      DifficultyMedium,
		Mode:            ModeClassic,
		CommissionRate:  BotCommissionRate,
	}
	s := New(owner, cfg, cat)
	s.IsBot = true
	s.APIKey = uuid.NewString()
	return s
}

// Lock acquires the session mutex. Paired with Unlock; used by the trader so
// an order's admission, execution and bookkeeping happen as one unit.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// CurrentPrice returns a symbol's price. Caller must hold the session lock.
func (s *Session) CurrentPrice(symbol string) (float64, bool) {
	st, ok := s.PriceStates[symbol]
	if !ok {
		return 0, false
	}
	return st.Price, true
}

// RecordTrade appends to the trade log. Caller must hold the session lock.
func (s *Session) RecordTrade(t Trade) {
	s.Trades = append(s.Trades, t)
}

// prices builds a symbol->price map. Caller must hold the session lock.
func (s *Session) prices() map[string]float64 {
	out := make(map[string]float64, len(s.PriceStates))
	for sym, st := range s.PriceStates {
		out[sym] = st.Price
	}
	return out
}

// Tick advances the session by the given number of simulated days, evolving
// every price state and running day-boundary mode policies. Returns the
// market deltas since the last tick.
func (s *Session) Tick(ticks int) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	advanced, exhausted := s.Clock.Advance(ticks)
	if advanced == 0 {
		return TickResult{Day: s.Clock.DayCount(), TotalValue: s.Portfolio.TotalValue(s.prices()), Exhausted: exhausted}
	}

	for sym, st := range s.PriceStates {
		inst, ok := s.Catalog.Lookup(sym)
		if !ok {
			continue
		}
		s.Engine.Tick(st, inst, advanced)
	}

	day := s.Clock.DayCount()
	prices := s.prices()
	total := s.Portfolio.TotalValue(prices)
	s.Portfolio.MarginLevel(prices) // refresh the margin call flag

	s.applyDayRollover(day, total)
	s.DailyStats = append(s.DailyStats, DailyStat{Day: day, TotalValue: total})

	deltas := make([]PriceDelta, 0, len(prices))
	for sym, price := range prices {
		prev := s.lastBroadcast[sym]
		if price == prev {
			continue
		}
		delta := PriceDelta{Symbol: sym, Price: price, Change: price - prev}
		if prev > 0 {
			delta.ChangePercent = (price - prev) / prev * 100
		}
		deltas = append(deltas, delta)
		s.lastBroadcast[sym] = price
	}

	return TickResult{Day: day, TotalValue: total, Deltas: deltas, Exhausted: exhausted}
}

// applyDayRollover runs mode policies at a simulated-day boundary. Caller
// must hold the session lock.
func (s *Session) applyDayRollover(day int, totalValue float64) {
	switch {
	case s.ModeState.DayTrader != nil:
		ds := s.ModeState.DayTrader
		if day != ds.CurrentSimDay {
			ds.TradesToday = 0
			ds.CurrentSimDay = day
		}
	case s.ModeState.Challenge != nil:
		ch := s.ModeState.Challenge
		if totalValue-s.InitialCapital >= ch.DailyTarget {
			ch.DaysCompleted++
			ch.StreakDays++
		} else {
			ch.StreakDays = 0
		}
	}
}

// MarketQuote is a read-model price snapshot for one symbol.
type MarketQuote struct {
	Symbol        string                 `json:"symbol"`
	DisplayName   string                 `json:"displayName"`
	Type          catalog.InstrumentType `json:"type"`
	Price         float64                `json:"price"`
	Change        float64                `json:"change"`
	ChangePercent float64                `json:"changePercent"`
}

// Quote returns a consistent snapshot for one symbol.
func (s *Session) Quote(symbol string) (MarketQuote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote(symbol)
}

func (s *Session) quote(symbol string) (MarketQuote, bool) {
	st, ok := s.PriceStates[symbol]
	if !ok {
		return MarketQuote{}, false
	}
	inst, _ := s.Catalog.Lookup(symbol)
	q := MarketQuote{
		Symbol:      symbol,
		DisplayName: inst.DisplayName,
		Type:        inst.Type,
		Price:       st.Price,
		Change:      st.PrevDelta,
	}
	if prev := st.Price - st.PrevDelta; prev > 0 {
		q.ChangePercent = st.PrevDelta / prev * 100
	}
	return q, true
}

// Quotes returns snapshots for every symbol in catalog order.
func (s *Session) Quotes() []MarketQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]MarketQuote, 0, len(s.PriceStates))
	for _, sym := range s.Catalog.Symbols() {
		if q, ok := s.quote(sym); ok {
			out = append(out, q)
		}
	}
	return out
}

// PortfolioDetails is a consistent read of cash, positions and P&L.
type PortfolioDetails struct {
	Portfolio     portfolio.Snapshot `json:"portfolio"`
	TotalValue    float64            `json:"totalValue"`
	UnrealizedPnL float64            `json:"unrealizedPnL"`
	MarginLevel   float64            `json:"marginLevel,omitempty"`
	Day           int                `json:"day"`
	TradeCount    int                `json:"tradeCount"`
}

// Details returns a consistent portfolio snapshot (no torn read of cash and
// positions).
func (s *Session) Details() PortfolioDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	prices := s.prices()
	return PortfolioDetails{
		Portfolio:     s.Portfolio.Snapshot(),
		TotalValue:    s.Portfolio.TotalValue(prices),
		UnrealizedPnL: s.Portfolio.UnrealizedPnL(prices),
		MarginLevel:   s.Portfolio.MarginLevel(prices),
		Day:           s.Clock.DayCount(),
		TradeCount:    len(s.Trades),
	}
}

// Stats summarizes session performance.
type Stats struct {
	SessionID     string  `json:"sessionId"`
	Owner         string  `json:"owner"`
	Mode          Mode    `json:"mode"`
	Day           int     `json:"day"`
	TotalValue    float64 `json:"totalValue"`
	ReturnPercent float64 `json:"returnPercent"`
	TradeCount    int     `json:"tradeCount"`
	RealizedGains float64 `json:"realizedGains"`
}

// SessionStats computes aggregate performance numbers.
func (s *Session) SessionStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.Portfolio.TotalValue(s.prices())
	st := Stats{
		SessionID:     s.ID,
		Owner:         s.Owner,
		Mode:          s.Config.Mode,
		Day:           s.Clock.DayCount(),
		TotalValue:    total,
		TradeCount:    len(s.Trades),
		RealizedGains: s.Portfolio.RealizedGains,
	}
	if s.InitialCapital > 0 {
		st.ReturnPercent = (total - s.InitialCapital) / s.InitialCapital * 100
	}
	return st
}

// AllocationReport compares current and target allocation by instrument type.
// Informational only (portfolio mode); no rebalancing is enforced.
type AllocationReport struct {
	Current map[catalog.InstrumentType]float64 `json:"current"`
	Target  map[catalog.InstrumentType]float64 `json:"target"`
}

// Allocation computes the current allocation fractions by type. Returns the
// target alongside when the session runs in portfolio mode.
func (s *Session) Allocation() AllocationReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[catalog.InstrumentType]float64)
	var total float64
	for sym, pos := range s.Portfolio.Positions {
		inst, ok := s.Catalog.Lookup(sym)
		if !ok {
			continue
		}
		value := float64(pos.Quantity) * s.PriceStates[sym].Price
		current[inst.Type] += value
		total += value
	}
	if total > 0 {
		for t := range current {
			current[t] /= total
		}
	}

	report := AllocationReport{Current: current}
	if s.ModeState.Portfolio != nil {
		report.Target = s.ModeState.Portfolio.TargetAllocation
	}
	return report
}

// SetSpeed updates the clock speed; the scheduler picks it up on its next
// tick.
func (s *Session) SetSpeed(speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clock.SetSpeed(speed)
}

// TickInterval returns the current scheduler period.
func (s *Session) TickInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Clock.TickInterval()
}

// SimDate returns the current simulated date.
func (s *Session) SimDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Clock.SimDate
}
