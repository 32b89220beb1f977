package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"marketsim/internal/push"
)

// MarketUpdateData is the market_update frame payload.
type MarketUpdateData struct {
	SessionID     string       `json:"sessionId"`
	Day           int          `json:"day"`
	SimulatedTime time.Time    `json:"simulatedTime"`
	TotalValue    float64      `json:"totalValue"`
	Deltas        []PriceDelta `json:"deltas"`
}

// PortfolioUpdateData is the portfolio_update frame payload.
type PortfolioUpdateData struct {
	SessionID     string  `json:"sessionId"`
	Day           int     `json:"day"`
	TotalValue    float64 `json:"totalValue"`
	Cash          float64 `json:"cash"`
	UnrealizedPnL float64 `json:"unrealizedPnL"`
}

// Scheduler pumps one session's clock at max(1000/speed, 50)ms of wall time,
// one simulated day per tick. It owns no market state; every tick runs under
// the session's mutex inside Session.Tick.
type Scheduler struct {
	sess   *Session
	hub    *push.Hub
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler binds a scheduler to a session and the push hub.
func NewScheduler(sess *Session, hub *push.Hub) *Scheduler {
	return &Scheduler{sess: sess, hub: hub, done: make(chan struct{})}
}

// Start launches the tick loop.
func (sc *Scheduler) Start(ctx context.Context) {
	ctx, sc.cancel = context.WithCancel(ctx)
	go sc.run(ctx)
}

// Stop cancels the tick loop and waits for it to exit.
func (sc *Scheduler) Stop() {
	if sc.cancel != nil {
		sc.cancel()
	}
	<-sc.done
}

func (sc *Scheduler) run(ctx context.Context) {
	defer close(sc.done)

	interval := sc.sess.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Debug().Str("session", sc.sess.ID).Dur("interval", interval).Msg("scheduler started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result := sc.sess.Tick(1)
			sc.publish(ctx, result)

			// Speed changes arrive through the session; recreate the ticker
			// when the interval moved.
			if next := sc.sess.TickInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
				log.Debug().Str("session", sc.sess.ID).Dur("interval", interval).Msg("scheduler interval updated")
			}
		}
	}
}

func (sc *Scheduler) publish(ctx context.Context, result TickResult) {
	if len(result.Deltas) == 0 {
		return
	}
	sc.hub.Publish(ctx, push.Event{
		Topic: push.TopicMarketData,
		Owner: sc.sess.Owner,
		Frame: push.Frame{
			Type: push.FrameMarketUpdate,
			Data: MarketUpdateData{
				SessionID:     sc.sess.ID,
				Day:           result.Day,
				SimulatedTime: sc.sess.SimDate(),
				TotalValue:    result.TotalValue,
				Deltas:        result.Deltas,
			},
		},
	})

	details := sc.sess.Details()
	sc.hub.Publish(ctx, push.Event{
		Topic: push.TopicPortfolioUpdate,
		Owner: sc.sess.Owner,
		Frame: push.Frame{
			Type: push.FramePortfolioUpdate,
			Data: PortfolioUpdateData{
				SessionID:     sc.sess.ID,
				Day:           result.Day,
				TotalValue:    details.TotalValue,
				Cash:          details.Portfolio.Cash,
				UnrealizedPnL: details.UnrealizedPnL,
			},
		},
	})
}
