package bowlingservice

import (
	"fmt"
	"sort"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/calculators"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/validators"
)

// Strategy names a validator and calculator pair.
type Strategy struct {
	Validation string `json:"validation"`
	Calculator string `json:"calculator"`
}

func (s Strategy) String() string {
	return s.Validation + "/" + s.Calculator
}

var (
	validatorsByName = map[string]func() validators.Validator{
		validators.NameFull: func() validators.Validator { return validators.NewFull() },
		validators.NameNone: func() validators.Validator { return validators.NewNoOp() },
	}
	calculatorsByName = map[string]func() calculators.Calculator{
		calculators.NameClassic: func() calculators.Calculator { return calculators.NewClassic() },
		calculators.NameRules:   func() calculators.Calculator { return calculators.NewRuleBased() },
	}
)

// Validate reports ErrUnknownStrategy when either name is not known.
func (s Strategy) Validate() error {
	if _, ok := validatorsByName[s.Validation]; !ok {
		return fmt.Errorf("%w: validation %q", ErrUnknownStrategy, s.Validation)
	}
	if _, ok := calculatorsByName[s.Calculator]; !ok {
		return fmt.Errorf("%w: calculator %q", ErrUnknownStrategy, s.Calculator)
	}
	return nil
}

// Catalog builds every validator and calculator combination once and hands
// the services out by strategy. It is safe for concurrent use.
type Catalog struct {
	services map[Strategy]*BowlingService
	fallback Strategy
}

// NewCatalog creates the four services with the shared options. Empty fields
// of a requested strategy are taken from fallback.
func NewCatalog(fallback Strategy, opts ...Option) (*Catalog, error) {
	if err := fallback.Validate(); err != nil {
		return nil, fmt.Errorf("default strategy: %w", err)
	}

	c := &Catalog{
		services: make(map[Strategy]*BowlingService, len(validatorsByName)*len(calculatorsByName)),
		fallback: fallback,
	}
	for vName, newValidator := range validatorsByName {
		for cName, newCalculator := range calculatorsByName {
			strategy := Strategy{Validation: vName, Calculator: cName}
			serviceOpts := append(append([]Option{}, opts...), WithStrategy(strategy))
			c.services[strategy] = New(newValidator(), newCalculator(), serviceOpts...)
		}
	}
	return c, nil
}

// Get returns the service bound to strategy.
func (c *Catalog) Get(strategy Strategy) (Service, error) {
	if strategy.Validation == "" {
		strategy.Validation = c.fallback.Validation
	}
	if strategy.Calculator == "" {
		strategy.Calculator = c.fallback.Calculator
	}

	svc, ok := c.services[strategy]
	if !ok {
		return nil, strategy.Validate()
	}
	return svc, nil
}

// Default returns the service bound to the fallback strategy.
func (c *Catalog) Default() Service {
	return c.services[c.fallback]
}

// Strategies lists every strategy in the catalog, sorted by name.
func (c *Catalog) Strategies() []Strategy {
	out := make([]Strategy, 0, len(c.services))
	for s := range c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
