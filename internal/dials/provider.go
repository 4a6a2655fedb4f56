package dials

import "context"

// Provider is the data collaborator the engine scores against. Every call
// may block or fail; retries, if any, belong to the implementation.
type Provider interface {
	// Latest returns the most recent valid observation of a series.
	Latest(ctx context.Context, seriesID string) (Observation, error)
	// Series returns up to limit cleaned observations, ascending by date.
	Series(ctx context.Context, seriesID string, limit int) (Series, error)
}

// QuoteProvider supplies daily closing prices for a traded symbol.
type QuoteProvider interface {
	DailyCloses(ctx context.Context, symbol string) (Series, error)
}

// PreviousValues exposes the last published value of a dial, used to smooth
// composite dials across runs. The storage medium is the caller's concern.
type PreviousValues interface {
	PreviousValue(dialID string) (float64, bool)
}
