package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/mindcard/mindcard-cli/internal/client/models"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/history"
	"github.com/mindcard/mindcard-cli/internal/client/services"
	"github.com/mindcard/mindcard-cli/internal/logging"
)

type fakeAuthService struct {
	state services.AuthState
	user  *models.User

	// outcome applied by the next Login/Register call
	nextState services.AuthState
	nextUser  *models.User

	loginEmail, loginPass      string
	regName, regEmail, regPass string
	resetCalled, logoutCalled  bool
}

func (f *fakeAuthService) State() services.AuthState { return f.state }
func (f *fakeAuthService) CurrentUser() *models.User { return f.user }
func (f *fakeAuthService) ResetState() {
	f.resetCalled = true
	f.state = services.AuthState{}
}
func (f *fakeAuthService) Logout(context.Context) {
	f.logoutCalled = true
	f.user = nil
	f.state = services.AuthState{}
}
func (f *fakeAuthService) Login(_ context.Context, email, password string) {
	f.loginEmail, f.loginPass = email, password
	f.state, f.user = f.nextState, f.nextUser
}
func (f *fakeAuthService) Register(_ context.Context, name, email, password string) {
	f.regName, f.regEmail, f.regPass = name, email, password
	f.state, f.user = f.nextState, f.nextUser
}

type flashcardUpdate struct {
	ID       string
	Question string
	Answer   string
}

type fakeDeckService struct {
	decks  []models.Mindcard
	cached []models.Mindcard

	listCalls int

	saveTitle string
	saveItems []models.MindcardItem
	saveErr   error

	deletedDecks []string
	deleteErr    error

	updatedDeckTitle string
	updatedDeckItems []models.MindcardItem
	deckUpdates      int

	deletedCards []string
	updatedCards []flashcardUpdate
}

func (f *fakeDeckService) Mindcards(context.Context) []models.Mindcard {
	f.listCalls++
	f.cached = f.decks
	return f.decks
}

func (f *fakeDeckService) Mindcard(_ context.Context, id string) (*models.Mindcard, bool) {
	for i := range f.cached {
		if f.cached[i].ID == id {
			return &f.cached[i], true
		}
	}
	for i := range f.decks {
		if f.decks[i].ID == id {
			return &f.decks[i], true
		}
	}
	return nil, false
}

func (f *fakeDeckService) Cached() []models.Mindcard { return f.cached }

func (f *fakeDeckService) SaveDeckOnAPI(_ context.Context, title string, items []models.MindcardItem) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveTitle, f.saveItems = title, items
	return nil
}

func (f *fakeDeckService) UpdateDeck(_ context.Context, id, title string, newItems []models.MindcardItem) error {
	f.deckUpdates++
	f.updatedDeckTitle, f.updatedDeckItems = title, newItems
	return nil
}

func (f *fakeDeckService) DeleteDeck(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedDecks = append(f.deletedDecks, id)
	return nil
}

func (f *fakeDeckService) DeleteFlashcard(_ context.Context, id string) error {
	f.deletedCards = append(f.deletedCards, id)
	return nil
}

func (f *fakeDeckService) UpdateFlashcard(_ context.Context, id, question, answer string) error {
	f.updatedCards = append(f.updatedCards, flashcardUpdate{ID: id, Question: question, Answer: answer})
	return nil
}

type fakeHistoryStore struct {
	recorded []*history.Result
	results  []*history.Result
}

func (f *fakeHistoryStore) Record(_ context.Context, res *history.Result) error {
	f.recorded = append(f.recorded, res)
	return nil
}

func (f *fakeHistoryStore) Recent(_ context.Context, limit int) ([]*history.Result, error) {
	return f.results, nil
}

func newTestApp(input string, auth *fakeAuthService, decks *fakeDeckService, hist *fakeHistoryStore) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		auth:    auth,
		decks:   decks,
		history: hist,
		log:     logging.NewDiscard(),
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func twoDecks() []models.Mindcard {
	return []models.Mindcard{
		{ID: "d1", Title: "Geography", Category: "Geral", Items: []models.MindcardItem{
			{ID: "c1", Question: "Capital of France?", Answer: "Paris"},
			{ID: "c2", Question: "Capital of Spain?", Answer: "Madrid"},
		}},
		{ID: "d2", Title: "Math", Category: "Geral"},
	}
}

func TestLogin_Success(t *testing.T) {
	stubPassword(t, "secret")
	auth := &fakeAuthService{
		nextState: services.AuthState{Phase: services.PhaseSuccess},
		nextUser:  &models.User{Name: "Alice"},
	}
	a, out := newTestApp("alice@example.org\n", auth, &fakeDeckService{}, &fakeHistoryStore{})

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if auth.loginEmail != "alice@example.org" || auth.loginPass != "secret" {
		t.Fatalf("credentials mismatch: %q %q", auth.loginEmail, auth.loginPass)
	}
	if !strings.Contains(out.String(), "Logged in as Alice") {
		t.Fatalf("output: %q", out.String())
	}
	if !a.isLoggedIn() {
		t.Fatal("expected logged in")
	}
}

func TestLogin_FailureResetsState(t *testing.T) {
	stubPassword(t, "wrong")
	auth := &fakeAuthService{
		nextState: services.AuthState{Phase: services.PhaseError, Err: "invalid credentials"},
	}
	a, out := newTestApp("alice@example.org\n", auth, &fakeDeckService{}, &fakeHistoryStore{})

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !auth.resetCalled {
		t.Fatal("expected ResetState")
	}
	if !strings.Contains(out.String(), "invalid credentials") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestRegister_PassesAllFields(t *testing.T) {
	stubPassword(t, "secret")
	auth := &fakeAuthService{
		nextState: services.AuthState{Phase: services.PhaseSuccess},
		nextUser:  &models.User{Name: "Alice"},
	}
	a, _ := newTestApp("Alice\nalice@example.org\n", auth, &fakeDeckService{}, &fakeHistoryStore{})

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if auth.regName != "Alice" || auth.regEmail != "alice@example.org" || auth.regPass != "secret" {
		t.Fatalf("fields mismatch: %q %q %q", auth.regName, auth.regEmail, auth.regPass)
	}
}

func TestLogout(t *testing.T) {
	auth := &fakeAuthService{state: services.AuthState{Phase: services.PhaseSuccess}, user: &models.User{Name: "Alice"}}
	a, out := newTestApp("", auth, &fakeDeckService{}, &fakeHistoryStore{})

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !auth.logoutCalled {
		t.Fatal("expected Logout")
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestList_PrintsDecks(t *testing.T) {
	decks := &fakeDeckService{decks: twoDecks()}
	a, out := newTestApp("", &fakeAuthService{}, decks, &fakeHistoryStore{})

	if err := a.List(context.Background()); err != nil {
		t.Fatalf("List err: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "1. Geography [Geral] — 2 cards") || !strings.Contains(got, "2. Math") {
		t.Fatalf("output: %q", got)
	}
}

func TestList_Empty(t *testing.T) {
	a, out := newTestApp("", &fakeAuthService{}, &fakeDeckService{}, &fakeHistoryStore{})

	if err := a.List(context.Background()); err != nil {
		t.Fatalf("List err: %v", err)
	}
	if !strings.Contains(out.String(), "No decks") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestResolveDeck(t *testing.T) {
	decks := &fakeDeckService{decks: twoDecks()}
	a, _ := newTestApp("", &fakeAuthService{}, decks, &fakeHistoryStore{})
	ctx := context.Background()

	byPos, err := a.resolveDeck(ctx, "2")
	if err != nil || byPos.ID != "d2" {
		t.Fatalf("by position: %+v, err=%v", byPos, err)
	}

	byID, err := a.resolveDeck(ctx, "d1")
	if err != nil || byID.Title != "Geography" {
		t.Fatalf("by id: %+v, err=%v", byID, err)
	}

	if _, err := a.resolveDeck(ctx, "9"); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := a.resolveDeck(ctx, "nope"); err == nil {
		t.Fatal("expected unknown-id error")
	}
}

func TestCreate_BuildsDeckFromPrompts(t *testing.T) {
	decks := &fakeDeckService{}
	input := "Capitals\nCapital of France?\nParis\n\n"
	a, out := newTestApp(input, &fakeAuthService{}, decks, &fakeHistoryStore{})

	if err := a.Create(context.Background()); err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if decks.saveTitle != "Capitals" || len(decks.saveItems) != 1 {
		t.Fatalf("save mismatch: %q %v", decks.saveTitle, decks.saveItems)
	}
	if decks.saveItems[0].Question != "Capital of France?" || decks.saveItems[0].Answer != "Paris" {
		t.Fatalf("item mismatch: %+v", decks.saveItems[0])
	}
	if !strings.Contains(out.String(), "Created Capitals with 1 cards") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestCreate_EmptyTitleRejected(t *testing.T) {
	decks := &fakeDeckService{}
	a, _ := newTestApp("\n", &fakeAuthService{}, decks, &fakeHistoryStore{})

	if err := a.Create(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if decks.saveTitle != "" {
		t.Fatal("deck should not be saved")
	}
}

func TestDelete_Confirmed(t *testing.T) {
	decks := &fakeDeckService{decks: twoDecks()}
	a, out := newTestApp("y\n", &fakeAuthService{}, decks, &fakeHistoryStore{})

	if err := a.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if len(decks.deletedDecks) != 1 || decks.deletedDecks[0] != "d1" {
		t.Fatalf("deleted: %v", decks.deletedDecks)
	}
	if !strings.Contains(out.String(), "Deleted Geography") {
		t.Fatalf("output: %q", out.String())
	}
}

func TestDelete_Cancelled(t *testing.T) {
	decks := &fakeDeckService{decks: twoDecks()}
	a, out := newTestApp("n\n", &fakeAuthService{}, decks, &fakeHistoryStore{})

	if err := a.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if len(decks.deletedDecks) != 0 {
		t.Fatalf("deleted: %v", decks.deletedDecks)
	}
	if !strings.Contains(out.String(), "Cancelled") {
		t.Fatalf("output: %q", out.String())
	}
}
