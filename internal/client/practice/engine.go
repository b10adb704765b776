// Package practice drives a single timed study pass over one deck:
// card sequencing, answer reveal, scoring and elapsed time.
package practice

import (
	"fmt"
	"sync"
	"time"

	"github.com/mindcard/mindcard-cli/internal/client/models"
	"github.com/mindcard/mindcard-cli/internal/statex"
)

// State is the observable practice-session state. It is created fresh per
// session and mutated only by the Engine.
type State struct {
	Mindcard        *models.Mindcard
	CurrentIndex    int
	IsAnswerVisible bool
	CorrectCount    int
	ElapsedSeconds  int64
	IsFinished      bool
}

// TotalItems returns the number of cards in the loaded deck, 0 when no
// deck is loaded.
func (s State) TotalItems() int {
	if s.Mindcard == nil {
		return 0
	}
	return len(s.Mindcard.Items)
}

// CurrentItem returns the card at the current index, or nil when there is
// none.
func (s State) CurrentItem() *models.MindcardItem {
	if s.Mindcard == nil || s.CurrentIndex >= len(s.Mindcard.Items) {
		return nil
	}
	return &s.Mindcard.Items[s.CurrentIndex]
}

// Engine is the practice-session state machine. At most one elapsed-time
// ticker runs at a time: starting a new session cancels the previous
// ticker before the new one begins.
type Engine struct {
	state *statex.Value[State]

	mu   sync.Mutex
	stop chan struct{} // nil when no ticker is running

	tickInterval time.Duration
}

func NewEngine() *Engine {
	return &Engine{
		state:        statex.New(State{}),
		tickInterval: time.Second,
	}
}

// Start resets the engine to a fresh session over deck and starts the
// elapsed-time ticker. A deck without items is finished immediately and
// no ticker is started.
func (e *Engine) Start(deck models.Mindcard) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTickerLocked()

	fresh := State{Mindcard: &deck}
	if len(deck.Items) == 0 {
		fresh.IsFinished = true
		e.state.Set(fresh)
		return
	}
	e.state.Set(fresh)

	e.stop = make(chan struct{})
	go e.runTicker(e.stop)
}

func (e *Engine) runTicker(stop <-chan struct{}) {
	t := time.NewTicker(e.tickInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			e.state.Update(func(s State) State {
				if s.IsFinished {
					return s
				}
				s.ElapsedSeconds++
				return s
			})
		case <-stop:
			return
		}
	}
}

// RevealAnswer makes the current card's answer visible. It is idempotent
// and ignored once the session has finished.
func (e *Engine) RevealAnswer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Update(func(s State) State {
		if s.IsFinished || s.Mindcard == nil {
			return s
		}
		s.IsAnswerVisible = true
		return s
	})
}

// MarkCorrect scores the current card as recalled and advances.
func (e *Engine) MarkCorrect() { e.advance(true) }

// MarkIncorrect advances without scoring.
func (e *Engine) MarkIncorrect() { e.advance(false) }

// Skip advances without scoring.
func (e *Engine) Skip() { e.advance(false) }

// advance moves to the next card, applying the outcome of the current one.
// Reaching the end finishes the session and stops the ticker; the final
// card's score increment lands atomically with the finished transition.
func (e *Engine) advance(correct bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.state.Get()
	if cur.IsFinished || cur.Mindcard == nil {
		return
	}

	nextIndex := cur.CurrentIndex + 1
	finishing := nextIndex >= cur.TotalItems()
	if finishing {
		e.stopTickerLocked()
	}

	e.state.Update(func(s State) State {
		if correct {
			s.CorrectCount++
		}
		if finishing {
			s.IsFinished = true
			return s
		}
		s.CurrentIndex = nextIndex
		s.IsAnswerVisible = false
		return s
	})
}

// Stop tears the session down, cancelling the ticker if it is still
// running. The state is left as-is for a final read.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTickerLocked()
}

func (e *Engine) stopTickerLocked() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() State {
	return e.state.Get()
}

// Watch subscribes to session state changes.
func (e *Engine) Watch() (<-chan State, func()) {
	return e.state.Subscribe()
}

// FormatElapsed renders whole seconds as MM:SS, e.g. 65 -> "01:05".
func FormatElapsed(seconds int64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
