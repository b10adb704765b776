package cli

import (
	"context"
	"fmt"

	"github.com/mindcard/mindcard-cli/internal/client/models"
)

// Create builds a new deck interactively: a title, then question/answer
// pairs until an empty question is entered.
func (a *App) Create(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter deck title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title is required")
		return fmt.Errorf("title is required")
	}

	var items []models.MindcardItem
	for {
		question, err := getSimpleText(a.reader, "Enter question (empty to finish)", a.out)
		if err != nil {
			return err
		}
		if question == "" {
			break
		}
		answer, err := getSimpleText(a.reader, "Enter answer", a.out)
		if err != nil {
			return err
		}
		items = append(items, models.MindcardItem{Question: question, Answer: answer})
	}

	if err := a.decks.SaveDeckOnAPI(ctx, title, items); err != nil {
		a.log.Error(ctx, "error creating deck", "error", err)
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Created %s with %d cards\n", title, len(items))
	return nil
}

// Delete removes the referenced deck after a confirmation prompt.
func (a *App) Delete(ctx context.Context, arg string) error {
	deck, err := a.resolveDeck(ctx, arg)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %s? (y/n)", deck.Title), a.out)
	if err != nil {
		return err
	}
	if answer != "y" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.decks.DeleteDeck(ctx, deck.ID); err != nil {
		a.log.Error(ctx, "error deleting deck", "error", err)
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s\n", deck.Title)
	return nil
}
