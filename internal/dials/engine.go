package dials

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

const defaultSeriesLimit = 6000

// DialSpec is one declared dial; building it is total and never fails past
// the engine.
type DialSpec interface {
	build(ctx context.Context, e *Engine, asOf string) Dial
}

// Engine turns the configured dial set into a Snapshot once per run. Dials
// are independent: no dial's construction reads another's result, and one
// dial's failure degrades only that dial.
type Engine struct {
	Data     Provider
	Quotes   QuoteProvider
	Previous PreviousValues
	Specs    []DialSpec
}

// NewEngine constructs an Engine. Quotes and Previous may be nil: drawdown
// dials then degrade and composites skip smoothing.
func NewEngine(data Provider, quotes QuoteProvider, previous PreviousValues, specs []DialSpec) (*Engine, error) {
	if data == nil {
		return nil, errors.New("dials: engine requires a data provider")
	}
	if len(specs) == 0 {
		return nil, errors.New("dials: engine requires at least one dial spec")
	}
	return &Engine{Data: data, Quotes: quotes, Previous: previous, Specs: specs}, nil
}

// Run builds every configured dial in declaration order and returns the
// snapshot for this run.
func (e *Engine) Run(ctx context.Context) Snapshot {
	asOf := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
	runID := uuid.NewString()
	start := time.Now()
	log.Info().Str("run_id", runID).Int("dials", len(e.Specs)).Msg("dial run started")

	cards := make([]Dial, 0, len(e.Specs))
	for _, spec := range e.Specs {
		dial := spec.build(ctx, e, asOf)
		log.Info().Str("run_id", runID).Str("dial", dial.ID).Str("status", string(dial.Status)).Msg("dial built")
		cards = append(cards, dial)
	}

	log.Info().Str("run_id", runID).Dur("elapsed", time.Since(start)).Msg("dial run finished")
	return Snapshot{AsOf: asOf, Cards: cards}
}
