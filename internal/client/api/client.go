package api

import (
	"context"

	"github.com/mindcard/mindcard-cli/internal/client/models"
)

// CardInput is a question/answer pair sent when creating or extending a deck.
type CardInput struct {
	Question string
	Answer   string
}

// LoginResult carries what the login endpoint returned. Either field may be
// missing when the backend misbehaves; callers decide how to react.
type LoginResult struct {
	AccessToken string
	User        *models.User
}

// Client is the remote Mindcard API. Implementations attach the current
// bearer token, when one exists, to every request; a missing token never
// blocks a call (the server rejects unauthenticated requests itself).
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	ListDecks(ctx context.Context) ([]models.Mindcard, error)
	CreateDeck(ctx context.Context, title string, cards []CardInput) error
	DeleteDeck(ctx context.Context, id string) error
	UpdateDeck(ctx context.Context, id, title string, newCards []CardInput) error
	DeleteFlashcard(ctx context.Context, id string) error
	UpdateFlashcard(ctx context.Context, id, question, answer string) error
}
