package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindcard/mindcard-cli/internal/client/practice"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/history"
)

// Practice runs a timed study session over the referenced deck. Each card
// is shown question-first; after revealing the answer the user marks it
// correct or incorrect. Quitting mid-session discards the run; a finished
// run is recorded in the local history.
func (a *App) Practice(ctx context.Context, arg string) error {
	deck, err := a.resolveDeck(ctx, arg)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	engine := practice.NewEngine()
	engine.Start(*deck)
	defer engine.Stop()

	fmt.Fprintf(a.out, "Practicing %s (%d cards)\n", deck.Title, len(deck.Items))

	for {
		st := engine.Snapshot()
		if st.IsFinished {
			break
		}
		item := st.CurrentItem()

		if !st.IsAnswerVisible {
			fmt.Fprintf(a.out, "[%d/%d] %s\n", st.CurrentIndex+1, st.TotalItems(), item.Question)
			cmd, err := getSimpleText(a.reader, "(r)eveal, (s)kip, (q)uit", a.out)
			if err != nil {
				return err
			}
			switch cmd {
			case "r", "":
				engine.RevealAnswer()
			case "s":
				engine.Skip()
			case "q":
				fmt.Fprintln(a.out, "Session discarded")
				return nil
			}
			continue
		}

		fmt.Fprintf(a.out, "Answer: %s\n", item.Answer)
		cmd, err := getSimpleText(a.reader, "(c)orrect, (i)ncorrect, (q)uit", a.out)
		if err != nil {
			return err
		}
		switch cmd {
		case "c":
			engine.MarkCorrect()
		case "i":
			engine.MarkIncorrect()
		case "q":
			fmt.Fprintln(a.out, "Session discarded")
			return nil
		}
	}

	final := engine.Snapshot()
	fmt.Fprintf(a.out, "Finished %s: %d/%d correct in %s\n",
		deck.Title, final.CorrectCount, final.TotalItems(), practice.FormatElapsed(final.ElapsedSeconds))

	res := &history.Result{
		ID:              uuid.NewString(),
		DeckID:          deck.ID,
		DeckTitle:       deck.Title,
		TotalCards:      final.TotalItems(),
		CorrectCount:    final.CorrectCount,
		DurationSeconds: final.ElapsedSeconds,
		FinishedAt:      time.Now(),
	}
	if err := a.history.Record(ctx, res); err != nil {
		a.log.Error(ctx, "error recording practice result", "error", err)
	}
	return nil
}

// Stats prints the most recent practice results.
func (a *App) Stats(ctx context.Context) error {
	results, err := a.history.Recent(ctx, 10)
	if err != nil {
		a.log.Error(ctx, "error loading practice history", "error", err)
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No practice sessions yet")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(a.out, "%s  %s  %d/%d correct  %s\n",
			r.FinishedAt.Format("2006-01-02 15:04"), r.DeckTitle,
			r.CorrectCount, r.TotalCards, practice.FormatElapsed(r.DurationSeconds))
	}
	return nil
}
