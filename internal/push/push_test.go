package push

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records written frames in memory.
type fakeTransport struct {
	mu     sync.Mutex
	frames []Frame
	closed bool
}

func (f *fakeTransport) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if frame, ok := v.(Frame); ok {
		f.frames = append(f.frames, frame)
	}
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTransport) written() []Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Frame(nil), f.frames...)
}

func marketFrame(i int) Frame {
	return Frame{Type: FrameMarketUpdate, Topic: TopicMarketData, Data: fmt.Sprintf("tick-%d", i)}
}

func TestCoalescingEvictsOldest(t *testing.T) {
	c := NewConn(&fakeTransport{}, "alice", "user", 8)

	// Without a running sender the queue fills; the ninth market frame must
	// evict the oldest queued one rather than close the connection.
	for i := 0; i < 9; i++ {
		c.enqueue(marketFrame(i), true)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.queue, 8)
	assert.Equal(t, "tick-1", c.queue[0].frame.Data)
	assert.Equal(t, "tick-8", c.queue[7].frame.Data)
	assert.False(t, c.closed)
}

func TestNonCoalescableOverflowClosesSlowConsumer(t *testing.T) {
	tr := &fakeTransport{}
	c := NewConn(tr, "alice", "user", 4)

	for i := 0; i < 4; i++ {
		c.enqueue(Frame{Type: FrameOrderUpdate, Data: i}, false)
	}
	c.enqueue(Frame{Type: FrameOrderUpdate, Data: 4}, false)

	assert.True(t, c.Closed())
	assert.Equal(t, CloseSlowConsumer, c.CloseReason())
	assert.True(t, tr.closed)
}

func TestCoalescableDropsWhenNothingEvictable(t *testing.T) {
	c := NewConn(&fakeTransport{}, "alice", "user", 2)

	c.enqueue(Frame{Type: FrameOrderUpdate, Data: 0}, false)
	c.enqueue(Frame{Type: FrameOrderUpdate, Data: 1}, false)
	c.enqueue(marketFrame(2), true)

	// The fresh market frame loses; order updates survive untouched.
	assert.False(t, c.Closed())
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.queue, 2)
	assert.Equal(t, FrameOrderUpdate, c.queue[0].frame.Type)
	assert.Equal(t, FrameOrderUpdate, c.queue[1].frame.Type)
}

func TestSenderPreservesFIFO(t *testing.T) {
	tr := &fakeTransport{}
	c := NewConn(tr, "alice", "user", 64)
	go c.Run()
	defer c.CloseWithReason(CloseClientGone)

	for i := 0; i < 10; i++ {
		c.enqueue(marketFrame(i), true)
	}

	require.Eventually(t, func() bool {
		return len(tr.written()) == 10
	}, time.Second, 5*time.Millisecond)

	for i, frame := range tr.written() {
		assert.Equal(t, fmt.Sprintf("tick-%d", i), frame.Data)
	}
}

func TestSubscribeRoleGate(t *testing.T) {
	user := NewConn(&fakeTransport{}, "alice", "user", 0)
	assert.True(t, user.Subscribe(TopicMarketData))
	assert.False(t, user.Subscribe(TopicChat))
	assert.False(t, user.Subscribe(Topic("bogus")))

	tester := NewConn(&fakeTransport{}, "bob", "tester", 0)
	assert.True(t, tester.Subscribe(TopicChat))

	admin := NewConn(&fakeTransport{}, "carol", "admin", 0)
	assert.True(t, admin.Subscribe(TopicChat))
}

// stallingTransport parks WriteJSON until released and tracks how many
// goroutines are inside it at once.
type stallingTransport struct {
	mu         sync.Mutex
	inWrite    int
	maxInWrite int
	closed     bool
	release    chan struct{}
}

func newStallingTransport() *stallingTransport {
	return &stallingTransport{release: make(chan struct{})}
}

func (s *stallingTransport) WriteJSON(v interface{}) error {
	s.mu.Lock()
	s.inWrite++
	if s.inWrite > s.maxInWrite {
		s.maxInWrite = s.inWrite
	}
	closed := s.closed
	s.mu.Unlock()

	if !closed {
		<-s.release
	}

	s.mu.Lock()
	s.inWrite--
	closed = s.closed
	s.mu.Unlock()
	if closed {
		return fmt.Errorf("transport closed")
	}
	return nil
}

func (s *stallingTransport) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	select {
	case <-s.release:
	default:
		close(s.release)
	}
	return nil
}

func (s *stallingTransport) max() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInWrite
}

func TestCloseDoesNotRaceSenderWrite(t *testing.T) {
	tr := newStallingTransport()
	c := NewConn(tr, "alice", "user", 1)
	go c.Run()

	// First frame parks the sender inside WriteJSON; the second fills the
	// queue; the third overflows and must close the connection without a
	// second goroutine entering WriteJSON.
	c.enqueue(Frame{Type: FrameOrderUpdate, Data: 0}, false)
	require.Eventually(t, func() bool { return tr.max() >= 1 }, time.Second, time.Millisecond)
	c.enqueue(Frame{Type: FrameOrderUpdate, Data: 1}, false)
	c.enqueue(Frame{Type: FrameOrderUpdate, Data: 2}, false)

	require.True(t, c.Closed())
	assert.Equal(t, CloseSlowConsumer, c.CloseReason())

	// Closing the transport released the parked write; the sender drains out.
	require.Eventually(t, func() bool {
		tr.mu.Lock()
		defer tr.mu.Unlock()
		return tr.inWrite == 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, tr.max())
}

func TestCloseIdempotent(t *testing.T) {
	tr := &fakeTransport{}
	c := NewConn(tr, "alice", "user", 0)
	c.CloseWithReason(CloseSlowConsumer)
	c.CloseWithReason(CloseServerShutdown)
	assert.Equal(t, CloseSlowConsumer, c.CloseReason())
}

func TestHubOwnerFiltering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	aliceTr := &fakeTransport{}
	bobTr := &fakeTransport{}
	alice := NewConn(aliceTr, "alice", "user", 0)
	bob := NewConn(bobTr, "bob", "user", 0)
	require.True(t, alice.Subscribe(TopicMarketData))
	require.True(t, bob.Subscribe(TopicMarketData))
	hub.Attach(alice)
	hub.Attach(bob)

	hub.Publish(ctx, Event{Topic: TopicMarketData, Owner: "alice", Frame: marketFrame(1)})

	require.Eventually(t, func() bool {
		return len(aliceTr.written()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, bobTr.written())
}

func TestHubBroadcastWithoutOwner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	trs := []*fakeTransport{{}, {}}
	for i, tr := range trs {
		c := NewConn(tr, fmt.Sprintf("user-%d", i), "tester", 0)
		require.True(t, c.Subscribe(TopicChat))
		hub.Attach(c)
	}

	hub.Publish(ctx, Event{Topic: TopicChat, Frame: Frame{Type: FrameChat, Data: "hello"}})

	require.Eventually(t, func() bool {
		return len(trs[0].written()) == 1 && len(trs[1].written()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHubSkipsUnsubscribed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	tr := &fakeTransport{}
	c := NewConn(tr, "alice", "user", 0)
	require.True(t, c.Subscribe(TopicPortfolioUpdate))
	hub.Attach(c)

	hub.Publish(ctx, Event{Topic: TopicMarketData, Frame: marketFrame(1)})
	hub.Publish(ctx, Event{Topic: TopicPortfolioUpdate, Frame: Frame{Type: FramePortfolioUpdate, Data: "pf"}})

	require.Eventually(t, func() bool {
		return len(tr.written()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, FramePortfolioUpdate, tr.written()[0].Type)
}

func TestClientCount(t *testing.T) {
	hub := NewHub()
	assert.Zero(t, hub.ClientCount())

	c := NewConn(&fakeTransport{}, "alice", "user", 0)
	hub.Attach(c)
	assert.Equal(t, 1, hub.ClientCount())

	c.CloseWithReason(CloseClientGone)
	assert.Zero(t, hub.ClientCount())
}
