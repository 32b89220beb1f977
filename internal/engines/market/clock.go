package market

import "time"

const (
	// MinSpeed and MaxSpeed bound the simulated-time acceleration factor.
	MinSpeed = 0.1
	MaxSpeed = 10.0

	// minTickInterval is the wall-clock floor for the scheduler period.
	minTickInterval = 50 * time.Millisecond
)

// Clock is a monotonic simulated-time source. It owns no timer; a scheduler
// pumps it. One advance unit is one simulated day.
type Clock struct {
	StartDate time.Time `json:"startDate"`
	SimDate   time.Time `json:"simDate"`
	Speed     float64   `json:"speed"`

	// DayBudget caps total advancement in days. Zero means unlimited.
	// Custom-mode sessions set it to weeks*7.
	DayBudget int `json:"dayBudget,omitempty"`
}

// NewClock creates a clock starting at the given date. Speed is clamped to
// [MinSpeed, MaxSpeed].
func NewClock(start time.Time, speed float64) *Clock {
	return &Clock{
		StartDate: start,
		SimDate:   start,
		Speed:     ClampSpeed(speed),
	}
}

// ClampSpeed bounds a requested acceleration factor.
func ClampSpeed(speed float64) float64 {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// Advance moves simulated time forward by up to n days. When a day budget is
// set and consumed, the clock refuses further advancement: it advances only
// the remaining days and reports exhausted.
func (c *Clock) Advance(n int) (advanced int, exhausted bool) {
	if n <= 0 {
		return 0, c.Exhausted()
	}
	if c.DayBudget > 0 {
		remaining := c.DayBudget - c.DayCount()
		if remaining <= 0 {
			return 0, true
		}
		if n > remaining {
			n = remaining
		}
	}
	c.SimDate = c.SimDate.AddDate(0, 0, n)
	return n, c.Exhausted()
}

// DayCount returns the integer day index since the session start date.
func (c *Clock) DayCount() int {
	return int(c.SimDate.Sub(c.StartDate).Hours() / 24)
}

// Exhausted reports whether the day budget has been fully consumed.
func (c *Clock) Exhausted() bool {
	return c.DayBudget > 0 && c.DayCount() >= c.DayBudget
}

// TickInterval returns the wall-clock scheduler period for the current speed:
// max(1000/speed, 50) milliseconds.
func (c *Clock) TickInterval() time.Duration {
	interval := time.Duration(float64(time.Second) / c.Speed)
	if interval < minTickInterval {
		interval = minTickInterval
	}
	return interval
}

// SetSpeed updates the acceleration factor, clamped to the valid range.
func (c *Clock) SetSpeed(speed float64) {
	c.Speed = ClampSpeed(speed)
}
