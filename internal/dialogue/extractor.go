package dialogue

import (
	"context"
	"log"

	"jelajah/internal/ai"
)

// historyWindow bounds how much conversation context rides along with an
// extraction call.
const historyWindow = 10

// Extractor turns a free-text user message into a structured slot delta via
// the LLM collaborator.
type Extractor struct {
	llm ai.LLMProvider
}

func NewExtractor(llm ai.LLMProvider) *Extractor {
	return &Extractor{llm: llm}
}

// Extract asks the collaborator for a delta against the current state.
// A failed or malformed collaborator call is not fatal: the turn proceeds with
// an empty delta, as if the message carried no new information.
func (e *Extractor) Extract(ctx context.Context, state *TripPlanningState, message string) *ai.ExtractionResult {
	delta, err := e.llm.ExtractTripFields(ctx, state.TripContext(), recentHistory(state), message)
	if err != nil {
		log.Printf("extractor: falling back to empty delta: %v", err)
		return &ai.ExtractionResult{}
	}
	return delta
}

func recentHistory(state *TripPlanningState) []string {
	msgs := state.Messages
	if len(msgs) > historyWindow {
		msgs = msgs[len(msgs)-historyWindow:]
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, m.Role+": "+m.Content)
	}
	return lines
}
