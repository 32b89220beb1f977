package catalog

import "fmt"

// InstrumentType classifies an instrument for volatility and allocation purposes.
type InstrumentType string

const (
	TypeGrowth   InstrumentType = "growth"
	TypeDividend InstrumentType = "dividend"
	TypeETF      InstrumentType = "etf"
	TypeBond     InstrumentType = "bond"
)

// Instrument is a static catalog entry. Immutable after load.
type Instrument struct {
	Symbol         string         `json:"symbol"`
	DisplayName    string         `json:"displayName"`
	BasePrice      float64        `json:"basePrice"`
	Type           InstrumentType `json:"type"`
	BaseVolatility float64        `json:"baseVolatility"`
}

// Catalog holds the instrument universe for a deployment.
type Catalog struct {
	instruments map[string]Instrument
	symbols     []string
}

// New builds a catalog from the given instruments, preserving order for Symbols().
func New(instruments []Instrument) (*Catalog, error) {
	c := &Catalog{
		instruments: make(map[string]Instrument, len(instruments)),
		symbols:     make([]string, 0, len(instruments)),
	}
	for _, inst := range instruments {
		if err := validate(inst); err != nil {
			return nil, err
		}
		if _, exists := c.instruments[inst.Symbol]; exists {
			return nil, fmt.Errorf("duplicate symbol %s", inst.Symbol)
		}
		c.instruments[inst.Symbol] = inst
		c.symbols = append(c.symbols, inst.Symbol)
	}
	return c, nil
}

// Default returns the built-in instrument universe.
func Default() *Catalog {
	c, err := New(defaultInstruments)
	if err != nil {
		// The built-in table is validated by tests; a bad entry is a programming error.
		panic(err)
	}
	return c
}

func validate(inst Instrument) error {
	if l := len(inst.Symbol); l < 1 || l > 5 {
		return fmt.Errorf("symbol %q must be 1-5 characters", inst.Symbol)
	}
	for _, r := range inst.Symbol {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("symbol %q must be uppercase A-Z", inst.Symbol)
		}
	}
	if inst.BasePrice <= 0 {
		return fmt.Errorf("symbol %s: base price must be positive", inst.Symbol)
	}
	if inst.BaseVolatility <= 0 {
		return fmt.Errorf("symbol %s: base volatility must be positive", inst.Symbol)
	}
	switch inst.Type {
	case TypeGrowth, TypeDividend, TypeETF, TypeBond:
	default:
		return fmt.Errorf("symbol %s: unknown type %q", inst.Symbol, inst.Type)
	}
	return nil
}

// Lookup returns the instrument for a symbol.
func (c *Catalog) Lookup(symbol string) (Instrument, bool) {
	inst, ok := c.instruments[symbol]
	return inst, ok
}

// Symbols returns all symbols in catalog order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// All returns every instrument in catalog order.
func (c *Catalog) All() []Instrument {
	out := make([]Instrument, 0, len(c.symbols))
	for _, sym := range c.symbols {
		out = append(out, c.instruments[sym])
	}
	return out
}

// Size returns the number of instruments.
func (c *Catalog) Size() int {
	return len(c.symbols)
}
