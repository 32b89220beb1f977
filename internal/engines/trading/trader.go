package trading

import (
	"time"

	"github.com/rs/zerolog/log"

	"marketsim/internal/portfolio"
	"marketsim/internal/session"
)

// Trader admits orders into a session and executes them against the current
// mid-price. It is a pure operator over a session value: all checks and
// mutations for one order happen under the session's mutex, so an order
// either fully lands (cash, position, trade log, mode state) or leaves the
// session untouched. Partial fills do not exist.
type Trader struct{}

// New creates a trader.
func New() *Trader {
	return &Trader{}
}

// Buy purchases qty shares at the current price.
func (t *Trader) Buy(s *session.Session, symbol string, qty int64) (session.Trade, error) {
	if qty <= 0 {
		return session.Trade{}, reject(TagValidation, "quantity must be positive, got %d", qty)
	}

	s.Lock()
	defer s.Unlock()

	price, ok := s.CurrentPrice(symbol)
	if !ok {
		return session.Trade{}, reject(TagSymbolUnknown, "unknown symbol %s", symbol)
	}
	if err := t.checkDayTradeLimit(s); err != nil {
		return session.Trade{}, err
	}
	if s.Portfolio.Short(symbol) != nil {
		return session.Trade{}, reject(TagConflictingShortPosition, "open short position on %s", symbol)
	}

	cost := price * float64(qty)
	commission := cost * s.Config.CommissionRate
	if cost+commission > s.Portfolio.BuyingPower() {
		return session.Trade{}, reject(TagInsufficientCash, "order cost %.2f exceeds buying power %.2f", cost+commission, s.Portfolio.BuyingPower())
	}

	s.Portfolio.Cash -= cost + commission
	s.Portfolio.AddShares(symbol, qty, cost)
	trade := t.record(s, session.TradeBuy, symbol, qty, price, commission)
	t.countDayTrade(s)

	log.Debug().Str("session", s.ID).Str("symbol", symbol).Int64("qty", qty).Float64("price", price).Msg("buy executed")
	return trade, nil
}

// Sell liquidates qty shares at the current price. Cost basis is relieved at
// the average rate; the realized gain is proceeds minus relieved basis.
func (t *Trader) Sell(s *session.Session, symbol string, qty int64) (session.Trade, error) {
	if qty <= 0 {
		return session.Trade{}, reject(TagValidation, "quantity must be positive, got %d", qty)
	}

	s.Lock()
	defer s.Unlock()

	price, ok := s.CurrentPrice(symbol)
	if !ok {
		return session.Trade{}, reject(TagSymbolUnknown, "unknown symbol %s", symbol)
	}
	if err := t.checkDayTradeLimit(s); err != nil {
		return session.Trade{}, err
	}

	pos := s.Portfolio.Position(symbol)
	if pos == nil || pos.Quantity < qty {
		var held int64
		if pos != nil {
			held = pos.Quantity
		}
		return session.Trade{}, reject(TagInsufficientShares, "have %d shares of %s, want to sell %d", held, symbol, qty)
	}

	proceeds := price * float64(qty)
	commission := proceeds * s.Config.CommissionRate
	realized := proceeds - pos.AvgCost()*float64(qty)

	s.Portfolio.Cash += proceeds - commission
	s.Portfolio.RemoveShares(symbol, qty)
	s.Portfolio.RealizedGains += realized
	trade := t.record(s, session.TradeSell, symbol, qty, price, commission)
	t.countDayTrade(s)

	log.Debug().Str("session", s.ID).Str("symbol", symbol).Int64("qty", qty).Float64("realized", realized).Msg("sell executed")
	return trade, nil
}

// OpenShort opens or extends a short position, crediting cash with the
// proceeds. Prohibited while a long position on the same symbol exists.
func (t *Trader) OpenShort(s *session.Session, symbol string, qty int64) (session.Trade, error) {
	if qty <= 0 {
		return session.Trade{}, reject(TagValidation, "quantity must be positive, got %d", qty)
	}

	s.Lock()
	defer s.Unlock()

	price, ok := s.CurrentPrice(symbol)
	if !ok {
		return session.Trade{}, reject(TagSymbolUnknown, "unknown symbol %s", symbol)
	}
	if s.Portfolio.Position(symbol) != nil {
		return session.Trade{}, reject(TagConflictingLongPosition, "long position held on %s", symbol)
	}

	proceeds := price * float64(qty)
	commission := proceeds * s.Config.CommissionRate
	s.Portfolio.Cash += proceeds - commission

	if sp := s.Portfolio.Short(symbol); sp != nil {
		// Extend at the weighted entry price.
		total := float64(sp.Quantity)*sp.EntryPrice + proceeds
		sp.Quantity += qty
		sp.EntryPrice = total / float64(sp.Quantity)
	} else {
		s.Portfolio.Shorts[symbol] = &portfolio.ShortPosition{Quantity: qty, EntryPrice: price}
	}

	trade := t.record(s, session.TradeShortOpen, symbol, qty, price, commission)
	log.Debug().Str("session", s.ID).Str("symbol", symbol).Int64("qty", qty).Float64("price", price).Msg("short opened")
	return trade, nil
}

// CloseShort covers qty shares of an open short at the current price.
func (t *Trader) CloseShort(s *session.Session, symbol string, qty int64) (session.Trade, error) {
	if qty <= 0 {
		return session.Trade{}, reject(TagValidation, "quantity must be positive, got %d", qty)
	}

	s.Lock()
	defer s.Unlock()

	price, ok := s.CurrentPrice(symbol)
	if !ok {
		return session.Trade{}, reject(TagSymbolUnknown, "unknown symbol %s", symbol)
	}

	sp := s.Portfolio.Short(symbol)
	if sp == nil {
		return session.Trade{}, reject(TagNoShortPosition, "no short position on %s", symbol)
	}
	if qty > sp.Quantity {
		return session.Trade{}, reject(TagQuantityExceedsShort, "short holds %d shares of %s, want to cover %d", sp.Quantity, symbol, qty)
	}

	cost := price * float64(qty)
	commission := cost * s.Config.CommissionRate
	realized := (sp.EntryPrice - price) * float64(qty)

	s.Portfolio.Cash -= cost + commission
	s.Portfolio.RealizedGains += realized
	sp.Quantity -= qty
	if sp.Quantity == 0 {
		delete(s.Portfolio.Shorts, symbol)
	}

	trade := t.record(s, session.TradeShortClose, symbol, qty, price, commission)
	log.Debug().Str("session", s.ID).Str("symbol", symbol).Int64("qty", qty).Float64("realized", realized).Msg("short closed")
	return trade, nil
}

// checkDayTradeLimit rejects the order when a day-trader session has used up
// its daily cap. Counts buys and sells; shorts are exempt.
func (t *Trader) checkDayTradeLimit(s *session.Session) error {
	ds := s.ModeState.DayTrader
	if ds == nil {
		return nil
	}
	if ds.TradesToday >= ds.MaxTradesPerDay {
		return reject(TagDayTradeLimitExceeded, "day trade limit of %d reached", ds.MaxTradesPerDay)
	}
	return nil
}

func (t *Trader) countDayTrade(s *session.Session) {
	if ds := s.ModeState.DayTrader; ds != nil {
		ds.TradesToday++
	}
}

// record appends the trade to the session log. Caller holds the session lock.
func (t *Trader) record(s *session.Session, kind session.TradeKind, symbol string, qty int64, price, commission float64) session.Trade {
	trade := session.Trade{
		Kind:           kind,
		Symbol:         symbol,
		Quantity:       qty,
		ExecutionPrice: price,
		Commission:     commission,
		WallTimestamp:  time.Now().UTC(),
		SimTimestamp:   s.Clock.SimDate,
	}
	s.RecordTrade(trade)
	return trade
}
