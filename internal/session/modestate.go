package session

import "marketsim/internal/catalog"

// MaxTradesPerDay is the day-trader cap on buys plus sells per simulated day.
const MaxTradesPerDay = 3

// ChallengeTargetRate sets the challenge daily target as a fraction of
// starting capital.
const ChallengeTargetRate = 0.05

// DayTraderState counts trades within the current simulated day.
type DayTraderState struct {
	TradesToday     int `json:"tradesToday"`
	MaxTradesPerDay int `json:"maxTradesPerDay"`
	CurrentSimDay   int `json:"currentSimDay"`
}

// ChallengeState tracks daily-target progress. Observation only; it never
// constrains trading.
type ChallengeState struct {
	DailyTarget   float64 `json:"dailyTarget"`
	DaysCompleted int     `json:"daysCompleted"`
	StreakDays    int     `json:"streakDays"`
}

// PortfolioModeState holds the informational target allocation by type.
type PortfolioModeState struct {
	TargetAllocation map[catalog.InstrumentType]float64 `json:"targetAllocation"`
}

// CustomState bounds a custom session to a week budget.
type CustomState struct {
	StartDay    int `json:"startDay"`
	WeeksBudget int `json:"weeksBudget"`
}

// ModeState is a tagged variant: exactly the branch matching Mode is non-nil.
type ModeState struct {
	Mode      Mode                `json:"mode"`
	DayTrader *DayTraderState     `json:"daytrader,omitempty"`
	Challenge *ChallengeState     `json:"challenge,omitempty"`
	Portfolio *PortfolioModeState `json:"portfolio,omitempty"`
	Custom    *CustomState        `json:"custom,omitempty"`
}

// NewModeState builds the variant for a normalized config.
func NewModeState(cfg Config) ModeState {
	ms := ModeState{Mode: cfg.Mode}
	switch cfg.Mode {
	case ModeDayTrader:
		ms.DayTrader = &DayTraderState{MaxTradesPerDay: MaxTradesPerDay}
	case ModeChallenge:
		ms.Challenge = &ChallengeState{DailyTarget: cfg.StartingCapital * ChallengeTargetRate}
	case ModePortfolio:
		ms.Portfolio = &PortfolioModeState{
			TargetAllocation: map[catalog.InstrumentType]float64{
				catalog.TypeGrowth:   0.40,
				catalog.TypeDividend: 0.30,
				catalog.TypeETF:      0.20,
				catalog.TypeBond:     0.10,
			},
		}
	case ModeCustom:
		ms.Custom = &CustomState{WeeksBudget: cfg.Weeks}
	}
	return ms
}
