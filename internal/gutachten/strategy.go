package gutachten

import (
	"fmt"
)

// Strategy is one table-extraction approach. Implementations must not panic
// on malformed input; they return an error (or no tables) and the runner
// moves on to the next strategy.
type Strategy interface {
	// Name identifies the strategy in results and logs.
	Name() string

	// Extract attempts to recover tables from the document.
	Extract(ctx *ExtractionContext) ([]RawTable, error)
}

// StrategyRunner tries an ordered list of strategies and stops at the first
// one that yields at least one table. The chain is explicit and inspectable:
// Attempts records how often each strategy ran, which makes the no-wasted-work
// guarantee testable.
type StrategyRunner struct {
	strategies []Strategy

	// Attempts counts Extract calls per strategy name.
	Attempts map[string]int

	// Errors holds the error of each failed strategy, keyed by name.
	Errors map[string]error
}

// NewStrategyRunner builds a runner over the given strategies, tried in order.
func NewStrategyRunner(strategies ...Strategy) *StrategyRunner {
	return &StrategyRunner{
		strategies: strategies,
		Attempts:   make(map[string]int),
		Errors:     make(map[string]error),
	}
}

// DefaultStrategyRunner returns the production fallback chain, ordered from
// most to least structure-dependent: ruled-line detection, whitespace
// alignment, combined guessing, plain-text table reconstruction and finally
// the single-column wrap that guarantees a non-empty result for any document
// that has text at all.
func DefaultStrategyRunner() *StrategyRunner {
	return NewStrategyRunner(
		&LatticeStrategy{},
		&StreamStrategy{},
		&GuessStrategy{},
		&TextTableStrategy{},
		&SingleColumnStrategy{},
	)
}

// Run executes the fallback chain. It returns the tables of the first
// successful strategy together with that strategy's name. An empty result
// with no error means the document has no extractable text at all; the
// caller surfaces that as a user-facing condition.
func (r *StrategyRunner) Run(ctx *ExtractionContext) ([]RawTable, string, error) {
	if ctx == nil {
		return nil, "", fmt.Errorf("extraction context is nil")
	}

	for _, s := range r.strategies {
		r.Attempts[s.Name()]++

		tables, err := r.extractSafe(s, ctx)
		if err != nil {
			r.Errors[s.Name()] = err
			continue
		}
		if len(tables) == 0 {
			continue
		}

		for i := range tables {
			tables[i].Source = s.Name()
		}
		return tables, s.Name(), nil
	}

	return nil, "", nil
}

// extractSafe converts a panicking strategy into a failed one. Strategy
// failures never propagate past the runner.
func (r *StrategyRunner) extractSafe(s Strategy, ctx *ExtractionContext) (tables []RawTable, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			tables = nil
			err = fmt.Errorf("strategy %s panicked: %v", s.Name(), rec)
		}
	}()
	return s.Extract(ctx)
}
