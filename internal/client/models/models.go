// Package models defines the Mindcard domain types shared by the API
// client, the services and the CLI.
package models

// User is the authenticated account owner. The JSON tags follow the
// backend's field names; the serialized form is also what gets cached
// in the credential store between runs.
type User struct {
	ID                  string `json:"id"`
	Name                string `json:"nome"`
	Email               string `json:"email"`
	OnboardingCompleted bool   `json:"onboardingCompleto,omitempty"`
}

// Mindcard is a deck: a named, ordered collection of question/answer items.
// The remote backend is the source of truth; instances live in the deck
// service cache while loaded.
type Mindcard struct {
	ID       string
	Title    string
	Category string
	Items    []MindcardItem
}

// MindcardItem is one question/answer pair inside a deck.
type MindcardItem struct {
	ID         string
	Question   string
	Answer     string
	Difficulty string
}

// DefaultDifficulty is assigned to items the backend returns without one.
const DefaultDifficulty = "Médio"

// DefaultCategory is assigned to decks; the backend has no category field yet.
const DefaultCategory = "Geral"
