package services

import (
	"context"

	"github.com/mindcard/mindcard-cli/internal/client/api"
	"github.com/mindcard/mindcard-cli/internal/client/models"
)

// fakeClient implements api.Client for service tests: canned results plus
// recorded arguments.
type fakeClient struct {
	LoginRet *api.LoginResult
	LoginErr error

	RegisterRet *models.User
	RegisterErr error

	ListRet []models.Mindcard
	ListErr error

	CreateErr          error
	DeleteDeckErr      error
	UpdateDeckErr      error
	DeleteFlashcardErr error
	UpdateFlashcardErr error

	LoginCalls    int
	RegisterCalls int
	ListCalls     int

	LastLoginEmail    string
	LastLoginPassword string
	LastRegisterName  string
	LastCreateTitle   string
	LastCreateCards   []api.CardInput
	DeletedDeckIDs    []string
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	f.RegisterCalls++
	f.LastRegisterName = name
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ListDecks(ctx context.Context) ([]models.Mindcard, error) {
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.ListRet, nil
}

func (f *fakeClient) CreateDeck(ctx context.Context, title string, cards []api.CardInput) error {
	f.LastCreateTitle = title
	f.LastCreateCards = cards
	return f.CreateErr
}

func (f *fakeClient) DeleteDeck(ctx context.Context, id string) error {
	if f.DeleteDeckErr != nil {
		return f.DeleteDeckErr
	}
	f.DeletedDeckIDs = append(f.DeletedDeckIDs, id)
	return nil
}

func (f *fakeClient) UpdateDeck(ctx context.Context, id, title string, newCards []api.CardInput) error {
	return f.UpdateDeckErr
}

func (f *fakeClient) DeleteFlashcard(ctx context.Context, id string) error {
	return f.DeleteFlashcardErr
}

func (f *fakeClient) UpdateFlashcard(ctx context.Context, id, question, answer string) error {
	return f.UpdateFlashcardErr
}
