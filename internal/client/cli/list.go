package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mindcard/mindcard-cli/internal/client/models"
)

// List fetches the deck list and prints one line per deck with its
// 1-based position, title, category and card count.
func (a *App) List(ctx context.Context) error {
	decks := a.decks.Mindcards(ctx)
	if len(decks) == 0 {
		fmt.Fprintln(a.out, "No decks")
		return nil
	}
	for i, d := range decks {
		fmt.Fprintf(a.out, "%d. %s [%s] — %d cards\n", i+1, d.Title, d.Category, len(d.Items))
	}
	return nil
}

// resolveDeck maps a user-entered deck reference to a deck. A small
// integer is treated as a 1-based position within the cached list; anything
// else is treated as a deck id.
func (a *App) resolveDeck(ctx context.Context, arg string) (*models.Mindcard, error) {
	decks := a.decks.Cached()
	if len(decks) == 0 {
		decks = a.decks.Mindcards(ctx)
	}

	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(decks) {
			return nil, fmt.Errorf("no deck at position %d", n)
		}
		return &decks[n-1], nil
	}

	deck, ok := a.decks.Mindcard(ctx, arg)
	if !ok {
		return nil, fmt.Errorf("deck %q not found", arg)
	}
	return deck, nil
}
