package portfolio

// Position is a long holding carried at average cost.
type Position struct {
	Quantity       int64   `json:"quantity"`
	TotalCostBasis float64 `json:"totalCostBasis"`
}

// AvgCost returns the average cost per share. Zero-quantity positions are
// removed from the book, so callers can rely on a positive divisor.
func (p *Position) AvgCost() float64 {
	if p.Quantity == 0 {
		return 0
	}
	return p.TotalCostBasis / float64(p.Quantity)
}

// ShortPosition tracks an open short at its entry price.
type ShortPosition struct {
	Quantity   int64   `json:"quantity"`
	EntryPrice float64 `json:"entryPrice"`
}

// Portfolio holds cash and both sides of the book. It carries no lock of its
// own; the owning session's mutex is the sole synchronization point.
type Portfolio struct {
	Cash          float64                   `json:"cash"`
	Positions     map[string]*Position      `json:"positions"`
	Shorts        map[string]*ShortPosition `json:"shorts"`
	RealizedGains float64                   `json:"realizedGains"`

	MarginEnabled    bool    `json:"marginEnabled"`
	MarginMultiplier float64 `json:"marginMultiplier"`
	MarginCallFlag   bool    `json:"marginCallFlag"`
}

// New creates a portfolio seeded with starting cash.
func New(cash float64) *Portfolio {
	return &Portfolio{
		Cash:      cash,
		Positions: make(map[string]*Position),
		Shorts:    make(map[string]*ShortPosition),
	}
}

// Position returns the long position for a symbol, or nil.
func (pf *Portfolio) Position(symbol string) *Position {
	return pf.Positions[symbol]
}

// Short returns the short position for a symbol, or nil.
func (pf *Portfolio) Short(symbol string) *ShortPosition {
	return pf.Shorts[symbol]
}

// AddShares adds quantity and cost to a long position, creating it on demand.
func (pf *Portfolio) AddShares(symbol string, quantity int64, cost float64) {
	pos := pf.Positions[symbol]
	if pos == nil {
		pos = &Position{}
		pf.Positions[symbol] = pos
	}
	pos.Quantity += quantity
	pos.TotalCostBasis += cost
}

// RemoveShares reduces a long position by quantity, trimming cost basis at the
// average rate. The entry is removed when quantity reaches zero.
func (pf *Portfolio) RemoveShares(symbol string, quantity int64) {
	pos := pf.Positions[symbol]
	if pos == nil {
		return
	}
	pos.TotalCostBasis -= pos.AvgCost() * float64(quantity)
	pos.Quantity -= quantity
	if pos.Quantity <= 0 {
		delete(pf.Positions, symbol)
	}
}

// MarketValue prices the long book against current prices.
func (pf *Portfolio) MarketValue(prices map[string]float64) float64 {
	var total float64
	for sym, pos := range pf.Positions {
		total += float64(pos.Quantity) * prices[sym]
	}
	return total
}

// ShortLiability is the mark-to-market cost of covering all shorts, net of
// the credit taken at entry. Positive values reduce total portfolio value.
func (pf *Portfolio) ShortLiability(prices map[string]float64) float64 {
	var total float64
	for sym, sp := range pf.Shorts {
		total += float64(sp.Quantity)*prices[sym] - float64(sp.Quantity)*sp.EntryPrice
	}
	return total
}

// TotalValue is cash plus long market value minus short liability.
func (pf *Portfolio) TotalValue(prices map[string]float64) float64 {
	return pf.Cash + pf.MarketValue(prices) - pf.ShortLiability(prices)
}

// UnrealizedPnL is the gain over cost basis on the long book plus the
// mark-to-market gain on shorts.
func (pf *Portfolio) UnrealizedPnL(prices map[string]float64) float64 {
	var total float64
	for sym, pos := range pf.Positions {
		total += float64(pos.Quantity)*prices[sym] - pos.TotalCostBasis
	}
	for sym, sp := range pf.Shorts {
		total += float64(sp.Quantity) * (sp.EntryPrice - prices[sym])
	}
	return total
}

// BuyingPower is the cash available for buys, extended by the margin
// multiplier when margin is enabled.
func (pf *Portfolio) BuyingPower() float64 {
	if pf.MarginEnabled && pf.MarginMultiplier > 1 {
		return pf.Cash * pf.MarginMultiplier
	}
	return pf.Cash
}

// UsedMargin is the negative cash balance, if any.
func (pf *Portfolio) UsedMargin() float64 {
	if pf.Cash < 0 {
		return -pf.Cash
	}
	return 0
}

// MarginLevel computes equity / usedMargin * 100, refreshing the call flag.
// Returns 0 when no margin is in use; the flag stays clear in that case.
func (pf *Portfolio) MarginLevel(prices map[string]float64) float64 {
	used := pf.UsedMargin()
	if used == 0 {
		pf.MarginCallFlag = false
		return 0
	}
	level := pf.TotalValue(prices) / used * 100
	pf.MarginCallFlag = level < 130
	return level
}

// Snapshot is a consistent copy of the portfolio for readers outside the
// session mutex.
type Snapshot struct {
	Cash          float64                  `json:"cash"`
	Positions     map[string]Position      `json:"positions"`
	Shorts        map[string]ShortPosition `json:"shorts"`
	RealizedGains float64                  `json:"realizedGains"`

	MarginEnabled    bool    `json:"marginEnabled"`
	MarginMultiplier float64 `json:"marginMultiplier,omitempty"`
	MarginCallFlag   bool    `json:"marginCallFlag"`
}

// Snapshot copies the portfolio. Callers must hold the session mutex.
func (pf *Portfolio) Snapshot() Snapshot {
	snap := Snapshot{
		Cash:             pf.Cash,
		Positions:        make(map[string]Position, len(pf.Positions)),
		Shorts:           make(map[string]ShortPosition, len(pf.Shorts)),
		RealizedGains:    pf.RealizedGains,
		MarginEnabled:    pf.MarginEnabled,
		MarginMultiplier: pf.MarginMultiplier,
		MarginCallFlag:   pf.MarginCallFlag,
	}
	for sym, pos := range pf.Positions {
		snap.Positions[sym] = *pos
	}
	for sym, sp := range pf.Shorts {
		snap.Shorts[sym] = *sp
	}
	return snap
}

// Restore rebuilds a portfolio from a snapshot.
func Restore(snap Snapshot) *Portfolio {
	pf := &Portfolio{
		Cash:             snap.Cash,
		Positions:        make(map[string]*Position, len(snap.Positions)),
		Shorts:           make(map[string]*ShortPosition, len(snap.Shorts)),
		RealizedGains:    snap.RealizedGains,
		MarginEnabled:    snap.MarginEnabled,
		MarginMultiplier: snap.MarginMultiplier,
		MarginCallFlag:   snap.MarginCallFlag,
	}
	for sym, pos := range snap.Positions {
		p := pos
		pf.Positions[sym] = &p
	}
	for sym, sp := range snap.Shorts {
		s := sp
		pf.Shorts[sym] = &s
	}
	return pf
}
