package market

import (
	"math/rand"

	"marketsim/internal/catalog"
)

const (
	// HistoryRetention bounds the per-symbol price history.
	HistoryRetention = 1024

	// PriceFloor keeps every simulated price strictly positive.
	PriceFloor = 0.01

	bondVolatility  = 0.002
	driftRate       = 0.00005
	momentumCarry   = 0.3
	jumpProbability = 0.005
	jumpMagnitude   = 0.2
	newsProbability = 0.02
	newsMagnitude   = 0.05
)

// PriceState is the per-symbol, per-session evolution state. Only Price and
// PrevDelta carry the walk forward; History is observational.
type PriceState struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	PrevDelta float64   `json:"prevDelta"`
	History   []float64 `json:"history"`
}

// NewPriceState seeds a state at the instrument's base price.
func NewPriceState(inst catalog.Instrument) *PriceState {
	return &PriceState{
		Symbol:  inst.Symbol,
		Price:   inst.BasePrice,
		History: []float64{inst.BasePrice},
	}
}

// Engine advances price states with a momentum-carrying random walk.
// Each engine owns its RNG so a fixed seed reproduces the same tape.
type Engine struct {
	rng            *rand.Rand
	riskMultiplier float64
	diffMultiplier float64
}

// NewEngine creates a price engine. riskMultiplier and diffMultiplier scale
// per-type volatility (bonds are pinned regardless).
func NewEngine(seed int64, riskMultiplier, diffMultiplier float64) *Engine {
	return &Engine{
		rng:            rand.New(rand.NewSource(seed)),
		riskMultiplier: riskMultiplier,
		diffMultiplier: diffMultiplier,
	}
}

// Tick advances state by the given number of logical days. ticks must be >= 1;
// anything lower is treated as one. Returns the resulting price. The function
// is total on positive prices.
func (e *Engine) Tick(state *PriceState, inst catalog.Instrument, ticks int) float64 {
	if ticks < 1 {
		ticks = 1
	}
	for i := 0; i < ticks; i++ {
		e.step(state, inst)
	}
	return state.Price
}

func (e *Engine) step(state *PriceState, inst catalog.Instrument) {
	p := state.Price

	typeVol := inst.BaseVolatility * e.riskMultiplier * e.diffMultiplier
	if inst.Type == catalog.TypeBond {
		typeVol = bondVolatility
	}

	random := (e.rng.Float64() - 0.5) * typeVol * p
	drift := driftRate * p
	momentum := momentumCarry * state.PrevDelta

	// Jump and news gaps are mutually exclusive; one roll decides both.
	jump := 1.0
	roll := e.rng.Float64()
	if roll < jumpProbability {
		jump = 1 + (e.rng.Float64()-0.5)*2*jumpMagnitude
	} else if roll < jumpProbability+newsProbability {
		jump = 1 + (e.rng.Float64()-0.5)*2*newsMagnitude
	}

	next := p*jump + random + drift + momentum
	if next < PriceFloor {
		next = PriceFloor
	}

	state.PrevDelta = next - p
	state.Price = next
	state.History = append(state.History, next)
	if len(state.History) > HistoryRetention {
		state.History = state.History[len(state.History)-HistoryRetention:]
	}
}
