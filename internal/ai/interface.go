package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// and for injecting fakes in dialogue tests.
type LLMProvider interface {
	// ExtractTripFields reads the newest user message against the already-known
	// trip fields and returns a best-effort delta with nullable fields.
	// Fields the message says nothing about stay nil.
	ExtractTripFields(ctx context.Context, known TripContext, history []string, userMessage string) (*ExtractionResult, error)

	// ComposeSlotQuestion phrases a context-aware question for one missing slot
	// together with a handful of short quick-reply suggestions.
	ComposeSlotQuestion(ctx context.Context, slot string, known TripContext) (*QuestionResult, error)

	// GenerateItinerary produces a day-by-day plan for a fully collected trip.
	GenerateItinerary(ctx context.Context, plan TripContext) (*ItineraryResult, error)
}
