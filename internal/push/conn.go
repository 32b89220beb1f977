package push

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultQueueDepth bounds each connection's outbound queue.
const DefaultQueueDepth = 256

// Close reason codes reported to clients and logs.
const (
	CloseSlowConsumer   = "SLOW_CONSUMER"
	CloseServerShutdown = "SERVER_SHUTDOWN"
	CloseWriteFailure   = "WRITE_FAILURE"
	CloseClientGone     = "CLIENT_DISCONNECT"
)

// Transport is the wire half of a connection. *websocket.Conn satisfies it;
// tests substitute an in-memory writer.
type Transport interface {
	WriteJSON(v interface{}) error
	Close() error
}

type queuedFrame struct {
	frame       Frame
	coalescable bool
}

// Conn is one authenticated push connection. Outbound frames pass through a
// bounded FIFO drained by a dedicated sender goroutine, so producers never
// block on a slow socket.
type Conn struct {
	ID    string
	Owner string
	Role  string

	hub       *Hub
	transport Transport
	depth     int

	// wmu serializes transport writes. The websocket transport allows at
	// most one writer at a time; Close may run concurrently.
	wmu sync.Mutex

	mu       sync.Mutex
	queue    []queuedFrame
	subs     map[Topic]struct{}
	closed   bool
	reason   string
	notify   chan struct{}
	done     chan struct{}
}

// NewConn wraps a transport for the given identity. depth <= 0 uses the
// default queue depth.
func NewConn(transport Transport, owner, role string, depth int) *Conn {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Conn{
		ID:        uuid.NewString(),
		Owner:     owner,
		Role:      role,
		transport: transport,
		depth:     depth,
		subs:      make(map[Topic]struct{}),
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Subscribe adds a topic subscription, enforcing the role gate: chat requires
// tester or admin; every other topic only needs the authenticated identity
// this connection already carries.
func (c *Conn) Subscribe(topic Topic) bool {
	if !ValidTopic(topic) {
		return false
	}
	if topic == TopicChat && c.Role != "tester" && c.Role != "admin" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.subs[topic] = struct{}{}
	return true
}

// Unsubscribe removes a topic subscription.
func (c *Conn) Unsubscribe(topic Topic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, topic)
}

func (c *Conn) subscribed(topic Topic) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subs[topic]
	return ok
}

// Send enqueues a frame directly (handshake acks, pongs). Applies the same
// overflow policy as topic delivery, treating the frame as coalescable.
func (c *Conn) Send(frame Frame) {
	c.enqueue(frame, true)
}

// enqueue appends a frame under the backpressure policy: when full, a
// coalescable frame evicts the oldest coalescable entry; a non-coalescable
// frame on a full queue closes the connection as a slow consumer.
func (c *Conn) enqueue(frame Frame, coalescable bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if len(c.queue) >= c.depth {
		if coalescable {
			if !c.evictOldestCoalescable() {
				// Nothing evictable; the fresh state frame loses.
				c.mu.Unlock()
				return
			}
		} else {
			c.mu.Unlock()
			c.CloseWithReason(CloseSlowConsumer)
			return
		}
	}
	c.queue = append(c.queue, queuedFrame{frame: frame, coalescable: coalescable})
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// evictOldestCoalescable drops the oldest coalescable queued frame. Caller
// holds c.mu.
func (c *Conn) evictOldestCoalescable() bool {
	for i, qf := range c.queue {
		if qf.coalescable {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Run drains the queue strictly in FIFO order until the connection closes.
// One sender per connection; there is no reordering across topics.
func (c *Conn) Run() {
	for {
		select {
		case <-c.done:
			return
		case <-c.notify:
		}
		for {
			c.mu.Lock()
			if c.closed || len(c.queue) == 0 {
				c.mu.Unlock()
				break
			}
			qf := c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()

			c.wmu.Lock()
			err := c.transport.WriteJSON(qf.frame)
			c.wmu.Unlock()
			if err != nil {
				log.Debug().Str("conn", c.ID).Err(err).Msg("push write failed")
				c.CloseWithReason(CloseWriteFailure)
				return
			}
		}
	}
}

// CloseWithReason closes the connection, discards its queue, and detaches it
// from the hub. Pending producer enqueues observe the closed flag and drop
// silently. Idempotent.
func (c *Conn) CloseWithReason(reason string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.reason = reason
	c.queue = nil
	c.mu.Unlock()

	if reason == CloseSlowConsumer || reason == CloseServerShutdown {
		// Best effort, and only when the sender is idle: a stalled socket
		// cannot take a farewell frame, and a second concurrent writer would
		// corrupt the stream. Closing the transport below unblocks a sender
		// stuck mid-write.
		if c.wmu.TryLock() {
			_ = c.transport.WriteJSON(Frame{Type: FrameError, Data: ErrorData{Code: reason, Message: "connection closed"}})
			c.wmu.Unlock()
		}
	}
	_ = c.transport.Close()
	close(c.done)
	if c.hub != nil {
		c.hub.detach(c)
	}
	log.Info().Str("conn", c.ID).Str("owner", c.Owner).Str("reason", reason).Msg("push connection closed")
}

// Closed reports whether the connection has been closed.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// CloseReason returns the recorded close reason, if any.
func (c *Conn) CloseReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}
