package api

import "github.com/mindcard/mindcard-cli/internal/client/models"

// Wire DTOs. Field names follow the backend's (Portuguese) JSON contract.

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        *models.User `json:"user"`
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type registerResponse struct {
	User *models.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type flashcardResponse struct {
	ID       string `json:"id"`
	Pergunta string `json:"pergunta"`
	Resposta string `json:"resposta"`
}

type deckResponse struct {
	ID          string              `json:"id"`
	Titulo      string              `json:"titulo"`
	UsuarioID   string              `json:"usuarioId,omitempty"`
	DataCriacao string              `json:"dataCriacao,omitempty"`
	Flashcards  []flashcardResponse `json:"flashcards"`
}

type flashcardRequest struct {
	Pergunta string `json:"pergunta"`
	Resposta string `json:"resposta"`
}

type deckRequest struct {
	Titulo     string             `json:"titulo"`
	Flashcards []flashcardRequest `json:"flashcards"`
}

type updateDeckRequest struct {
	Titulo          string             `json:"titulo"`
	NovosFlashcards []flashcardRequest `json:"novosFlashcards"`
}

type updateFlashcardRequest struct {
	Pergunta string `json:"pergunta"`
	Resposta string `json:"resposta"`
}

func (d deckResponse) toMindcard() models.Mindcard {
	items := make([]models.MindcardItem, 0, len(d.Flashcards))
	for _, f := range d.Flashcards {
		items = append(items, models.MindcardItem{
			ID:         f.ID,
			Question:   f.Pergunta,
			Answer:     f.Resposta,
			Difficulty: models.DefaultDifficulty,
		})
	}
	return models.Mindcard{
		ID:       d.ID,
		Title:    d.Titulo,
		Category: models.DefaultCategory,
		Items:    items,
	}
}

func toFlashcardRequests(cards []CardInput) []flashcardRequest {
	out := make([]flashcardRequest, 0, len(cards))
	for _, c := range cards {
		out = append(out, flashcardRequest{Pergunta: c.Question, Resposta: c.Answer})
	}
	return out
}
