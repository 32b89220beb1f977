package push

// Topic is a subscription channel on the push fabric.
type Topic string

const (
	TopicMarketData      Topic = "market_data"
	TopicOrderUpdate     Topic = "order_update"
	TopicPortfolioUpdate Topic = "portfolio_update"
	TopicChat            Topic = "chat"
)

// ValidTopic reports whether a client-supplied topic name is known.
func ValidTopic(t Topic) bool {
	switch t {
	case TopicMarketData, TopicOrderUpdate, TopicPortfolioUpdate, TopicChat:
		return true
	}
	return false
}

// coalescable topics tolerate dropping the oldest queued frame under
// backpressure; order updates and chat never do.
func (t Topic) coalescable() bool {
	return t == TopicMarketData || t == TopicPortfolioUpdate
}

// Server frame types.
const (
	FrameMarketSnapshot  = "market_snapshot"
	FrameMarketUpdate    = "market_update"
	FrameOrderUpdate     = "order_update"
	FramePortfolioUpdate = "portfolio_update"
	FrameChat            = "chat"
	FramePong            = "pong"
	FrameError           = "error"
)

// Client frame types.
const (
	FrameSubscribe   = "subscribe"
	FrameUnsubscribe = "unsubscribe"
	FramePing        = "ping"
)

// Frame is one JSON message on the push channel, in either direction.
type Frame struct {
	Type  string      `json:"type"`
	Topic Topic       `json:"topic,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

// ErrorData is the payload of an error frame.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Event is a published message: a frame bound for every subscriber of a
// topic, optionally filtered to a single owner's connections.
type Event struct {
	Topic Topic
	Owner string // empty means every subscriber
	Frame Frame
}
