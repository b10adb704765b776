// Package history stores finished practice runs locally so the CLI can
// show recent scores without touching the network.
package history

import (
	"context"
	"time"
)

// Result is one finished practice run over a deck.
type Result struct {
	ID              string
	DeckID          string
	DeckTitle       string
	TotalCards      int
	CorrectCount    int
	DurationSeconds int64
	FinishedAt      time.Time
}

type Repository interface {
	Insert(ctx context.Context, r *Result) error
	Recent(ctx context.Context, limit int) ([]*Result, error)
	// Prune keeps only the most recent keep rows.
	Prune(ctx context.Context, keep int) error
}
