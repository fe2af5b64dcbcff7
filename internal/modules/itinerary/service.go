// README: One-shot itinerary generation for a confirmed trip plan.
package itinerary

import (
	"context"
	"errors"
	"fmt"

	"jelajah/internal/ai"
	"jelajah/internal/dialogue"
)

// ErrPlanIncomplete is returned when generation is requested before the
// dialogue has been confirmed.
var ErrPlanIncomplete = errors.New("trip plan is not confirmed yet")

// Service produces a day-by-day itinerary from a completed dialogue state.
// Finished itineraries are not persisted; the caller owns the result.
type Service struct {
	llm ai.LLMProvider
}

func NewService(llm ai.LLMProvider) *Service {
	return &Service{llm: llm}
}

// Generate runs one request/response against the generation collaborator.
func (s *Service) Generate(ctx context.Context, state *dialogue.TripPlanningState) (*ai.ItineraryResult, error) {
	if state == nil || !state.IsComplete {
		return nil, ErrPlanIncomplete
	}

	result, err := s.llm.GenerateItinerary(ctx, state.TripContext())
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}
	return result, nil
}
