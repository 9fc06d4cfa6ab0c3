// Package planner wires the augmentation heuristics to the search adapters
// and the completion service: one Chat call runs the whole
// classify -> extract -> search -> compose -> complete flow.
package planner

import (
	"context"
	"fmt"
	"log"

	"github.com/belindamak/japan-trip-chat/internal/intent"
	"github.com/belindamak/japan-trip-chat/internal/models"
	"github.com/belindamak/japan-trip-chat/internal/prompt"
	"github.com/belindamak/japan-trip-chat/internal/search/web"
)

// defaultRadiusMeters is the circular bias around extracted coordinates.
const defaultRadiusMeters = 1500

// PlaceSearcher returns a formatted nearby-results block, or false when no
// augmentation is available.
type PlaceSearcher interface {
	SearchNearby(ctx context.Context, coords models.Coordinates, query string, radiusMeters float64) (string, bool)
}

// WebSearcher returns a formatted web-results block, or false when no
// augmentation is available.
type WebSearcher interface {
	Search(ctx context.Context, query string, numResults int) (string, bool)
}

// Completer invokes the hosted completion service.
type Completer interface {
	Chat(ctx context.Context, systemPrompt string, history []models.ChatTurn, userMessage string) (string, error)
	Translate(ctx context.Context, systemPrompt, text string) (string, error)
}

// Service orchestrates one chat request end to end.
type Service struct {
	places    PlaceSearcher
	web       WebSearcher
	completer Completer
}

// NewService builds the planner from its collaborators.
func NewService(places PlaceSearcher, webSearcher WebSearcher, completer Completer) *Service {
	return &Service{places: places, web: webSearcher, completer: completer}
}

// Chat classifies the message, augments the system prompt with nearby places
// or current web results when the heuristics trigger, and forwards the
// composed context to the completion service. Search failures degrade to an
// unaugmented prompt; completion errors propagate.
func (s *Service) Chat(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	sig := intent.Classify(message)

	var placesBlock, webBlock string
	if sig.IsLocationQuery {
		if coords, ok := intent.ExtractCoordinates(message); ok {
			query := intent.BuildSearchQuery(message)
			log.Printf("place search triggered: query %q near %.4f,%.4f", query, coords.Latitude, coords.Longitude)
			placesBlock, _ = s.places.SearchNearby(ctx, coords, query, defaultRadiusMeters)
		}
	} else if sig.NeedsWebSearch {
		webBlock, _ = s.web.Search(ctx, message, web.DefaultResultCount)
	}

	systemPrompt := prompt.Compose(prompt.BasePrompt, placesBlock, webBlock)
	answer, err := s.completer.Chat(ctx, systemPrompt, history, message)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return answer, nil
}

// Translate runs the one-shot translation flow with the fixed translator
// prompt and no augmentation.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	out, err := s.completer.Translate(ctx, prompt.TranslatorPrompt, text)
	if err != nil {
		return "", fmt.Errorf("translate completion: %w", err)
	}
	return out, nil
}
