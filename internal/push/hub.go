package push

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// producerQueueDepth bounds each topic's inbound queue. Producers suspend
// only when a dispatcher falls this far behind.
const producerQueueDepth = 1024

// Hub fans published events out to subscribed connections. One dispatcher
// goroutine per topic reads a bounded producer queue; dispatchers never block
// on a subscriber, they apply the per-connection overflow policy instead.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}

	queues map[Topic]chan Event
}

// NewHub creates a hub with one queue per topic.
func NewHub() *Hub {
	h := &Hub{
		conns:  make(map[*Conn]struct{}),
		queues: make(map[Topic]chan Event),
	}
	for _, t := range []Topic{TopicMarketData, TopicOrderUpdate, TopicPortfolioUpdate, TopicChat} {
		h.queues[t] = make(chan Event, producerQueueDepth)
	}
	return h
}

// Run starts the per-topic dispatchers and blocks until ctx is done, then
// closes every connection with a shutdown reason.
func (h *Hub) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for topic, queue := range h.queues {
		wg.Add(1)
		go func(topic Topic, queue chan Event) {
			defer wg.Done()
			h.dispatch(ctx, topic, queue)
		}(topic, queue)
	}
	wg.Wait()

	for _, c := range h.snapshot() {
		c.CloseWithReason(CloseServerShutdown)
	}
}

func (h *Hub) dispatch(ctx context.Context, topic Topic, queue chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-queue:
			coalescable := topic.coalescable()
			for _, c := range h.snapshot() {
				if !c.subscribed(topic) {
					continue
				}
				if ev.Owner != "" && c.Owner != ev.Owner {
					continue
				}
				c.enqueue(ev.Frame, coalescable)
			}
		}
	}
}

// Publish hands an event to its topic dispatcher. Blocks only when the
// dispatcher queue is full; ctx bounds the wait.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	queue, ok := h.queues[ev.Topic]
	if !ok {
		log.Warn().Str("topic", string(ev.Topic)).Msg("publish to unknown topic dropped")
		return
	}
	select {
	case queue <- ev:
	case <-ctx.Done():
	}
}

// Attach registers a connection and starts its sender.
func (h *Hub) Attach(c *Conn) {
	c.hub = h
	h.mu.Lock()
	h.conns[c] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	go c.Run()
	log.Info().Str("conn", c.ID).Str("owner", c.Owner).Int("total", total).Msg("push connection attached")
}

// detach removes a closed connection.
func (h *Hub) detach(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// snapshot copies the connection set so dispatch iterates a consistent view.
func (h *Hub) snapshot() []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		out = append(out, c)
	}
	return out
}

// ClientCount returns the number of attached connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
