package services

import (
	"context"

	"github.com/mindcard/mindcard-cli/internal/client/api"
	"github.com/mindcard/mindcard-cli/internal/client/models"
	"github.com/mindcard/mindcard-cli/internal/logging"
)

// DeckService caches the last-fetched deck list and reconciles mutations
// against the remote backend. Reads degrade to an empty list on failure;
// writes surface their errors. It is meant to be driven from the single
// user-facing task; the cache has no internal locking.
type DeckService struct {
	client api.Client
	log    logging.Logger

	cached []models.Mindcard
}

func NewDeckService(client api.Client, log logging.Logger) *DeckService {
	return &DeckService{client: client, log: log}
}

// Mindcards fetches the deck list and replaces the cache on success. Any
// failure is logged and swallowed: the caller gets an empty list and the
// previous cache is kept for id lookups.
func (s *DeckService) Mindcards(ctx context.Context) []models.Mindcard {
	decks, err := s.client.ListDecks(ctx)
	if err != nil {
		s.log.Warn(ctx, "deck list fetch failed", "error", err)
		return []models.Mindcard{}
	}
	s.cached = decks
	return s.cached
}

// Mindcard returns the deck with the given id, first from the cache, then
// from a single refetch. At most one network round-trip per call.
func (s *DeckService) Mindcard(ctx context.Context, id string) (*models.Mindcard, bool) {
	if d, ok := findDeck(s.cached, id); ok {
		return d, true
	}
	return findDeck(s.Mindcards(ctx), id)
}

// Cached returns the current in-memory deck list without touching the
// network.
func (s *DeckService) Cached() []models.Mindcard {
	return s.cached
}

// SaveDeckOnAPI creates a new deck from a title and its items.
func (s *DeckService) SaveDeckOnAPI(ctx context.Context, title string, items []models.MindcardItem) error {
	return s.client.CreateDeck(ctx, title, toCardInputs(items))
}

// DeleteDeck removes the deck remotely and, on success, evicts it from the
// cache so the list stays consistent without a refetch.
func (s *DeckService) DeleteDeck(ctx context.Context, id string) error {
	if err := s.client.DeleteDeck(ctx, id); err != nil {
		return err
	}
	kept := s.cached[:0:0]
	for _, d := range s.cached {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.cached = kept
	s.log.Info(ctx, "deck deleted", "deck_id", id)
	return nil
}

// UpdateDeck changes the title and appends new items. The cache is not
// updated; callers refetch to observe the change.
func (s *DeckService) UpdateDeck(ctx context.Context, id, title string, newItems []models.MindcardItem) error {
	return s.client.UpdateDeck(ctx, id, title, toCardInputs(newItems))
}

func (s *DeckService) DeleteFlashcard(ctx context.Context, id string) error {
	return s.client.DeleteFlashcard(ctx, id)
}

func (s *DeckService) UpdateFlashcard(ctx context.Context, id, question, answer string) error {
	return s.client.UpdateFlashcard(ctx, id, question, answer)
}

func findDeck(decks []models.Mindcard, id string) (*models.Mindcard, bool) {
	for i := range decks {
		if decks[i].ID == id {
			return &decks[i], true
		}
	}
	return nil, false
}

func toCardInputs(items []models.MindcardItem) []api.CardInput {
	cards := make([]api.CardInput, 0, len(items))
	for _, it := range items {
		cards = append(cards, api.CardInput{Question: it.Question, Answer: it.Answer})
	}
	return cards
}
