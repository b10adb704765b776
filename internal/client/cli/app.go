package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/mindcard/mindcard-cli/internal/client/api"
	"github.com/mindcard/mindcard-cli/internal/client/config"
	"github.com/mindcard/mindcard-cli/internal/client/models"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/credentials"
	"github.com/mindcard/mindcard-cli/internal/client/repositories/history"
	"github.com/mindcard/mindcard-cli/internal/client/services"
	"github.com/mindcard/mindcard-cli/internal/client/storage"
	"github.com/mindcard/mindcard-cli/internal/dbx"
	"github.com/mindcard/mindcard-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// historyKeep bounds the number of practice results kept locally.
const historyKeep = 50

// authService is the slice of services.AuthService the commands use.
type authService interface {
	State() services.AuthState
	CurrentUser() *models.User
	Login(ctx context.Context, email, password string)
	Register(ctx context.Context, name, email, password string)
	ResetState()
	Logout(ctx context.Context)
}

// deckService is the slice of services.DeckService the commands use. It
// is a superset of editor.DeckStore so the edit command can hand the same
// value to a Reconciler.
type deckService interface {
	Mindcards(ctx context.Context) []models.Mindcard
	Mindcard(ctx context.Context, id string) (*models.Mindcard, bool)
	Cached() []models.Mindcard
	SaveDeckOnAPI(ctx context.Context, title string, items []models.MindcardItem) error
	UpdateDeck(ctx context.Context, id, title string, newItems []models.MindcardItem) error
	DeleteDeck(ctx context.Context, id string) error
	DeleteFlashcard(ctx context.Context, id string) error
	UpdateFlashcard(ctx context.Context, id, question, answer string) error
}

// historyStore records finished practice runs and lists recent ones.
type historyStore interface {
	Record(ctx context.Context, res *history.Result) error
	Recent(ctx context.Context, limit int) ([]*history.Result, error)
}

// sqlHistoryStore backs historyStore with the local database. Record
// inserts and prunes in one transaction so the kept-rows bound holds even
// if the process dies between the two statements.
type sqlHistoryStore struct {
	db *sql.DB
}

func (s *sqlHistoryStore) Record(ctx context.Context, res *history.Result) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := history.NewSQLiteRepository(tx)
		if err := repo.Insert(ctx, res); err != nil {
			return err
		}
		return repo.Prune(ctx, historyKeep)
	})
}

func (s *sqlHistoryStore) Recent(ctx context.Context, limit int) ([]*history.Result, error) {
	return history.NewSQLiteRepository(s.db).Recent(ctx, limit)
}

// App wires the services together and hosts the REPL command handlers.
type App struct {
	config  *config.Config
	auth    authService
	decks   deckService
	history historyStore
	storage *storage.Storage
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	// The token source reads the store on every request so a login made
	// mid-session is picked up without rebuilding the client.
	tokenSource := func(ctx context.Context) string {
		v, err := st.Credentials.Get(ctx, credentials.KeyAccessToken)
		if err != nil || v == nil {
			return ""
		}
		return string(v)
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, tokenSource)

	as := services.NewAuthService(ctx, apiClient, st.Credentials, log)
	ds := services.NewDeckService(apiClient, log)

	return &App{
		config:  c,
		auth:    as,
		decks:   ds,
		history: &sqlHistoryStore{db: st.DB},
		storage: st,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.storage.Close(); err != nil {
			a.log.Error(ctx, "error closing storage", "error", err)
		}
	}()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().Phase == services.PhaseSuccess
}

// status renders the prompt suffix: the logged-in user's name, if any.
func (a *App) status() string {
	if u := a.auth.CurrentUser(); u != nil {
		return "(" + u.Name + ")"
	}
	return ""
}
