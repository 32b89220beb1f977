package trading

import (
	"errors"
	"fmt"
)

// ErrorTag is the stable rejection code surfaced to callers and over the
// wire. Tags never change once shipped; messages may.
type ErrorTag string

const (
	TagValidation               ErrorTag = "Validation"
	TagSymbolUnknown            ErrorTag = "SymbolUnknown"
	TagInsufficientCash         ErrorTag = "InsufficientCash"
	TagInsufficientShares       ErrorTag = "InsufficientShares"
	TagDayTradeLimitExceeded    ErrorTag = "DayTradeLimitExceeded"
	TagConflictingLongPosition  ErrorTag = "ConflictingLongPosition"
	TagConflictingShortPosition ErrorTag = "ConflictingShortPosition"
	TagNoShortPosition          ErrorTag = "NoShortPosition"
	TagQuantityExceedsShort     ErrorTag = "QuantityExceedsShort"
)

// TradeError is a structured order rejection. It is a result value, not an
// infrastructure failure: the session state is untouched when one is
// returned.
type TradeError struct {
	Tag     ErrorTag
	Message string
}

func (e *TradeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Message)
}

func reject(tag ErrorTag, format string, args ...interface{}) error {
	return &TradeError{Tag: tag, Message: fmt.Sprintf(format, args...)}
}

// Rejection unwraps a TradeError, returning its tag.
func Rejection(err error) (ErrorTag, bool) {
	var te *TradeError
	if errors.As(err, &te) {
		return te.Tag, true
	}
	return "", false
}
