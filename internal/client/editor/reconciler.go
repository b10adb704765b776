// Package editor tracks local edits to an existing deck against a snapshot
// taken at load time and computes the remote operations needed to save
// them.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindcard/mindcard-cli/internal/client/models"
)

// ErrDeckNotFound is returned by Load when the deck cannot be resolved.
var ErrDeckNotFound = errors.New("deck not found")

// DeckStore is the slice of the deck service the reconciler needs.
type DeckStore interface {
	Mindcard(ctx context.Context, id string) (*models.Mindcard, bool)
	UpdateDeck(ctx context.Context, id, title string, newItems []models.MindcardItem) error
	DeleteFlashcard(ctx context.Context, id string) error
	UpdateFlashcard(ctx context.Context, id, question, answer string) error
	DeleteDeck(ctx context.Context, id string) error
}

// EditableCard is a deck item under edit. IsNew marks cards that never
// existed remotely; IsModified marks cards that differ from the snapshot
// taken at load time.
type EditableCard struct {
	ID         string
	Question   string
	Answer     string
	IsNew      bool
	IsModified bool
}

// Reconciler holds one deck's edit session.
type Reconciler struct {
	store DeckStore

	deckID        string
	title         string
	originalTitle string
	cards         []EditableCard
	originalCards []EditableCard
	deletedIDs    []string
}

func NewReconciler(store DeckStore) *Reconciler {
	return &Reconciler{store: store}
}

// Load fetches the deck and snapshots its title and cards as the baseline
// for change tracking. Any previous edit session is discarded.
func (r *Reconciler) Load(ctx context.Context, id string) error {
	deck, ok := r.store.Mindcard(ctx, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}

	cards := make([]EditableCard, 0, len(deck.Items))
	for _, item := range deck.Items {
		cards = append(cards, EditableCard{ID: item.ID, Question: item.Question, Answer: item.Answer})
	}

	r.deckID = deck.ID
	r.title = deck.Title
	r.originalTitle = deck.Title
	r.cards = cards
	r.originalCards = append([]EditableCard(nil), cards...)
	r.deletedIDs = nil
	return nil
}

func (r *Reconciler) DeckID() string { return r.deckID }
func (r *Reconciler) Title() string  { return r.title }

// Cards returns a copy of the current card list.
func (r *Reconciler) Cards() []EditableCard {
	return append([]EditableCard(nil), r.cards...)
}

func (r *Reconciler) SetTitle(title string) {
	r.title = title
}

// SetCard updates a card's question and answer and recomputes its
// IsModified flag against the load-time snapshot. Cards without an
// original counterpart are never marked modified; only IsNew applies to
// them.
func (r *Reconciler) SetCard(id, question, answer string) {
	for i := range r.cards {
		if r.cards[i].ID != id {
			continue
		}
		r.cards[i].Question = question
		r.cards[i].Answer = answer
		if orig, ok := r.findOriginal(id); ok {
			r.cards[i].IsModified = orig.Question != question || orig.Answer != answer
		}
		return
	}
}

// AddCard appends a blank draft card with a client-local id and returns it.
func (r *Reconciler) AddCard() EditableCard {
	card := EditableCard{ID: uuid.NewString(), IsNew: true}
	r.cards = append(r.cards, card)
	return card
}

// DeleteCard removes the card locally. Cards that existed at load time are
// remembered for remote deletion on save; drafts are simply discarded.
func (r *Reconciler) DeleteCard(id string) {
	for i := range r.cards {
		if r.cards[i].ID != id {
			continue
		}
		if !r.cards[i].IsNew {
			r.deletedIDs = append(r.deletedIDs, id)
		}
		r.cards = append(r.cards[:i], r.cards[i+1:]...)
		return
	}
}

// HasChanges reports whether anything differs from the loaded snapshot.
func (r *Reconciler) HasChanges() bool {
	if r.title != r.originalTitle || len(r.deletedIDs) > 0 {
		return true
	}
	for _, c := range r.cards {
		if c.IsNew || c.IsModified {
			return true
		}
	}
	return false
}

// Save pushes the edits remotely in three strictly sequential phases:
// delete removed cards, update modified ones, then send the deck update
// with the current title and the new cards. The first failure aborts the
// remaining phases; nothing is rolled back, so a retry re-issues all
// phases and relies on the server treating them idempotently.
func (r *Reconciler) Save(ctx context.Context) error {
	for _, id := range r.deletedIDs {
		if err := r.store.DeleteFlashcard(ctx, id); err != nil {
			return err
		}
	}

	for _, c := range r.cards {
		if !c.IsModified || c.IsNew {
			continue
		}
		if err := r.store.UpdateFlashcard(ctx, c.ID, c.Question, c.Answer); err != nil {
			return err
		}
	}

	newItems := make([]models.MindcardItem, 0)
	for _, c := range r.cards {
		if c.IsNew {
			newItems = append(newItems, models.MindcardItem{ID: c.ID, Question: c.Question, Answer: c.Answer})
		}
	}
	if err := r.store.UpdateDeck(ctx, r.deckID, r.title, newItems); err != nil {
		return err
	}

	r.resnapshot()
	return nil
}

// resnapshot makes the just-saved state the new baseline.
func (r *Reconciler) resnapshot() {
	r.originalTitle = r.title
	for i := range r.cards {
		r.cards[i].IsNew = false
		r.cards[i].IsModified = false
	}
	r.originalCards = append([]EditableCard(nil), r.cards...)
	r.deletedIDs = nil
}

// Delete removes the whole deck remotely. The caller is expected to leave
// the edit session and refresh the deck list afterwards.
func (r *Reconciler) Delete(ctx context.Context) error {
	return r.store.DeleteDeck(ctx, r.deckID)
}

func (r *Reconciler) findOriginal(id string) (EditableCard, bool) {
	for _, c := range r.originalCards {
		if c.ID == id {
			return c, true
		}
	}
	return EditableCard{}, false
}
