package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mindcard/mindcard-cli/internal/client/editor"
)

// Edit opens an interactive edit session over the referenced deck. Local
// changes accumulate in a Reconciler and are pushed to the server only on
// "save".
//
// Sub-commands inside the session:
//
//	show        — print the title and cards with pending-change markers
//	title       — change the deck title
//	set <n>     — rewrite card n's question and answer
//	add         — append a new card
//	del <n>     — remove card n
//	save        — push pending changes to the server
//	drop        — delete the whole deck and leave the session
//	back        — leave the session (pending changes are discarded)
func (a *App) Edit(ctx context.Context, arg string) error {
	deck, err := a.resolveDeck(ctx, arg)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	rec := editor.NewReconciler(a.decks)
	if err := rec.Load(ctx, deck.ID); err != nil {
		a.log.Error(ctx, "error loading deck for edit", "error", err)
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.printEditState(rec)

	for {
		line, err := getSimpleText(a.reader, "edit (show, title, set <n>, add, del <n>, save, drop, back)", a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "show":
			a.printEditState(rec)

		case "title":
			title, err := getSimpleText(a.reader, "Enter new title", a.out)
			if err != nil {
				return err
			}
			rec.SetTitle(title)

		case "set":
			card, ok := a.cardAt(rec, args)
			if !ok {
				continue
			}
			question, err := getSimpleText(a.reader, "Enter question", a.out)
			if err != nil {
				return err
			}
			answer, err := getSimpleText(a.reader, "Enter answer", a.out)
			if err != nil {
				return err
			}
			rec.SetCard(card.ID, question, answer)

		case "add":
			card := rec.AddCard()
			question, err := getSimpleText(a.reader, "Enter question", a.out)
			if err != nil {
				return err
			}
			answer, err := getSimpleText(a.reader, "Enter answer", a.out)
			if err != nil {
				return err
			}
			rec.SetCard(card.ID, question, answer)

		case "del":
			card, ok := a.cardAt(rec, args)
			if !ok {
				continue
			}
			rec.DeleteCard(card.ID)

		case "save":
			if !rec.HasChanges() {
				fmt.Fprintln(a.out, "Nothing to save")
				continue
			}
			if err := rec.Save(ctx); err != nil {
				a.log.Error(ctx, "error saving deck", "error", err)
				fmt.Fprintln(a.out, err.Error())
				continue
			}
			fmt.Fprintln(a.out, "Saved")

		case "drop":
			answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %s? (y/n)", rec.Title()), a.out)
			if err != nil {
				return err
			}
			if answer != "y" {
				continue
			}
			if err := rec.Delete(ctx); err != nil {
				a.log.Error(ctx, "error deleting deck", "error", err)
				fmt.Fprintln(a.out, err.Error())
				continue
			}
			fmt.Fprintln(a.out, "Deleted")
			return nil

		case "back":
			if rec.HasChanges() {
				fmt.Fprintln(a.out, "Unsaved changes discarded")
			}
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// cardAt resolves a 1-based card position from the sub-command args.
func (a *App) cardAt(rec *editor.Reconciler, args []string) (editor.EditableCard, bool) {
	var zero editor.EditableCard
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: <command> <card number>")
		return zero, false
	}
	cards := rec.Cards()
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(cards) {
		fmt.Fprintf(a.out, "No card at position %s\n", args[0])
		return zero, false
	}
	return cards[n-1], true
}

func (a *App) printEditState(rec *editor.Reconciler) {
	fmt.Fprintf(a.out, "Deck: %s\n", rec.Title())
	for i, c := range rec.Cards() {
		marker := ""
		if c.IsNew {
			marker = " (new)"
		} else if c.IsModified {
			marker = " (modified)"
		}
		fmt.Fprintf(a.out, "%d. %s — %s%s\n", i+1, c.Question, c.Answer, marker)
	}
}
