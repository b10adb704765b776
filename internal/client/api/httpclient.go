// Package api implements the remote Mindcard REST client: authentication,
// deck and flashcard CRUD over HTTP/JSON with bearer-token injection.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mindcard/mindcard-cli/internal/client/models"
)

// maxErrorBody caps how much of an error response body gets read while
// looking for a {"message": ...} payload.
const maxErrorBody = 64 * 1024

// TokenSource returns the current access token, or "" when there is none.
// It is consulted freshly on every request so login/logout take effect
// immediately.
type TokenSource func(ctx context.Context) string

// HTTPClient talks to the Mindcard backend.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	token   TokenSource

	// list-decks retry policy; overridable in tests
	listRetries uint64
	listBackoff time.Duration
}

// NewHTTPClient builds a client for the backend at baseURL. timeout bounds
// every request; token may return "" when nobody is logged in.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		hc:          &http.Client{Timeout: timeout},
		token:       token,
		listRetries: 2,
		listBackoff: 200 * time.Millisecond,
	}
}

// do performs one HTTP round-trip. A non-nil body is sent as JSON; a
// non-nil out receives the decoded 2xx response body. Non-2xx responses
// become a *StatusError carrying the parsed error message, if any.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Op: op, Code: resp.StatusCode}
		var er errorResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(data, &er) == nil {
			se.Message = er.Message
		}
		return se
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	req := loginRequest{Email: email, Senha: password}
	if err := c.do(ctx, "login", http.MethodPost, "auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: resp.AccessToken, User: resp.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var resp registerResponse
	req := registerRequest{Nome: name, Email: email, Senha: password}
	if err := c.do(ctx, "register", http.MethodPost, "usuario/cadastrar", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ListDecks fetches the user's decks. Transport-level failures are retried
// a couple of times with a short constant backoff; HTTP errors are not.
func (c *HTTPClient) ListDecks(ctx context.Context) ([]models.Mindcard, error) {
	var decks []deckResponse

	backoff := retry.WithMaxRetries(c.listRetries, retry.NewConstant(c.listBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		decks = nil
		err := c.do(ctx, "list decks", http.MethodGet, "deck/listar", nil, &decks)
		if err == nil {
			return nil
		}
		var se *StatusError
		if errors.As(err, &se) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Mindcard, 0, len(decks))
	for _, d := range decks {
		out = append(out, d.toMindcard())
	}
	return out, nil
}

func (c *HTTPClient) CreateDeck(ctx context.Context, title string, cards []CardInput) error {
	req := deckRequest{Titulo: title, Flashcards: toFlashcardRequests(cards)}
	return c.do(ctx, "create deck", http.MethodPost, "deck/cadastrar", req, nil)
}

func (c *HTTPClient) DeleteDeck(ctx context.Context, id string) error {
	return c.do(ctx, "delete deck", http.MethodDelete, "deck/deletar/"+id, nil, nil)
}

func (c *HTTPClient) UpdateDeck(ctx context.Context, id, title string, newCards []CardInput) error {
	req := updateDeckRequest{Titulo: title, NovosFlashcards: toFlashcardRequests(newCards)}
	return c.do(ctx, "update deck", http.MethodPatch, "deck/atualizar/"+id, req, nil)
}

func (c *HTTPClient) DeleteFlashcard(ctx context.Context, id string) error {
	return c.do(ctx, "delete flashcard", http.MethodDelete, "flashcard/deletar/"+id, nil, nil)
}

func (c *HTTPClient) UpdateFlashcard(ctx context.Context, id, question, answer string) error {
	req := updateFlashcardRequest{Pergunta: question, Resposta: answer}
	return c.do(ctx, "update flashcard", http.MethodPatch, "flashcard/atualizar/"+id, req, nil)
}
