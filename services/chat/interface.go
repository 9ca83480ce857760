// File: services/chat/interface.go
package chat

import (
	"context"

	placeRepo "placemate/database/repository/place"
	"placemate/models"
	"placemate/services/places"
)

// ChatService is the conversational recommendation entry point: one call per
// incoming message. The only error it returns is invalid caller input; every
// provider failure inside the turn degrades to a well-formed response.
type ChatService interface {
	HandleMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// DefaultChatService implements ChatService over the injected collaborators.
// Model and Details may be nil when the corresponding credential was not
// configured; the pipeline then runs on its deterministic fallbacks.
type DefaultChatService struct {
	Repo     placeRepo.PlaceRepository
	Details  places.DetailProvider
	Model    LanguageModel
	Sessions SessionStore

	interpreter *Interpreter
}

// NewDefaultChatService wires up the per-message pipeline.
func NewDefaultChatService(repo placeRepo.PlaceRepository, details places.DetailProvider, model LanguageModel, sessions SessionStore) *DefaultChatService {
	return &DefaultChatService{
		Repo:        repo,
		Details:     details,
		Model:       model,
		Sessions:    sessions,
		interpreter: &Interpreter{Model: model},
	}
}
