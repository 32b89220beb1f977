package session

// Mode is the ruleset variant for a session.
type Mode string

const (
	ModeClassic   Mode = "classic"
	ModeChallenge Mode = "challenge"
	ModeDayTrader Mode = "daytrader"
	ModePortfolio Mode = "portfolio"
	ModeCustom    Mode = "custom"
)

// RiskLevel scales instrument volatility.
type RiskLevel string

const (
	RiskConservative RiskLevel = "conservative"
	RiskModerate     RiskLevel = "moderate"
	RiskAggressive   RiskLevel = "aggressive"
)

// Difficulty scales instrument volatility independently of risk.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	// MaxStartingCapital caps session funding.
	MaxStartingCapital = 1_000_000

	// CustomStartingCapital is forced on custom-mode sessions.
	CustomStartingCapital = 10_000

	// DefaultBotCapital seeds every bot session.
	DefaultBotCapital = 100_000

	// BotCommissionRate is the flat fee applied on the bot order path.
	BotCommissionRate = 0.001
)

// Config is the per-session game configuration.
type Config struct {
	StartingCapital float64    `json:"startingCapital"`
	RiskLevel       RiskLevel  `json:"riskLevel"`
	Difficulty      Difficulty `json:"difficulty"`
	Mode            Mode       `json:"mode"`
	Weeks           int        `json:"weeks,omitempty"`
	ShowDayCounter  bool       `json:"showDayCounter"`

	// CommissionRate applies per side of every fill. Zero disables commissions.
	CommissionRate float64 `json:"commissionRate,omitempty"`

	MarginEnabled    bool    `json:"marginEnabled,omitempty"`
	MarginMultiplier float64 `json:"marginMultiplier,omitempty"`

	// Seed drives the session's price tape. Zero picks a random seed.
	Seed int64 `json:"seed,omitempty"`
}

// RiskMultiplier maps the risk level to its volatility factor.
func (c Config) RiskMultiplier() float64 {
	switch c.RiskLevel {
	case RiskConservative:
		return 0.5
	case RiskAggressive:
		return 1.8
	default:
		return 1.0
	}
}

// DifficultyMultiplier maps the difficulty to its volatility factor.
func (c Config) DifficultyMultiplier() float64 {
	switch c.Difficulty {
	case DifficultyEasy:
		return 0.6
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// Normalize clamps and defaults a config. Custom mode forces its fixed
// funding and multipliers; weeks only applies to custom sessions.
func (c Config) Normalize() Config {
	if c.RiskLevel == "" {
		c.RiskLevel = RiskModerate
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyMedium
	}
	if c.Mode == "" {
		c.Mode = ModeClassic
	}
	if c.StartingCapital <= 0 {
		c.StartingCapital = CustomStartingCapital
	}
	if c.StartingCapital > MaxStartingCapital {
		c.StartingCapital = MaxStartingCapital
	}
	if c.Mode == ModeCustom {
		c.StartingCapital = CustomStartingCapital
		c.RiskLevel = RiskModerate
		c.Difficulty = DifficultyMedium
		if c.Weeks < 1 {
			c.Weeks = 1
		}
	} else {
		c.Weeks = 0
	}
	if c.MarginEnabled && c.MarginMultiplier <= 1 {
		c.MarginMultiplier = 2
	}
	return c
}
