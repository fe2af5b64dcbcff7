// README: Trip-planning conversation state and slot rules.
package dialogue

import (
	"strings"

	"jelajah/internal/ai"
)

// Slot names double as CurrentQuestion tags.
const (
	SlotDestination = "destination"
	SlotDuration    = "duration"
	SlotBudget      = "budget"
	SlotPreferences = "preferences"
	SlotTransport   = "transport"

	// QuestionSummary marks the confirm/edit phase.
	QuestionSummary = "summary"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// primarySlots is the fixed ask-priority order. Transport is optional and
// never blocks completion.
var primarySlots = []string{SlotDestination, SlotDuration, SlotBudget, SlotPreferences}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TripPlanningState is the single mutable aggregate of one conversation thread.
// Scalar slots fill once and are only cleared by an explicit edit command.
type TripPlanningState struct {
	Messages        []Message `json:"messages"`
	Destination     *string   `json:"destination,omitempty"`
	DurationDays    *int      `json:"duration,omitempty"`
	BudgetIDR       *int64    `json:"budget,omitempty"`
	Preferences     []string  `json:"preferences,omitempty"`
	Transport       *string   `json:"transport,omitempty"`
	IsComplete      bool      `json:"is_complete"`
	CurrentQuestion string    `json:"current_question,omitempty"`
}

func NewState() *TripPlanningState {
	return &TripPlanningState{}
}

func (s *TripPlanningState) AppendUser(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: content})
}

func (s *TripPlanningState) AppendAssistant(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
}

// MissingSlots returns the unfilled primary slots in ask-priority order.
func (s *TripPlanningState) MissingSlots() []string {
	var missing []string
	for _, slot := range primarySlots {
		if !s.slotSet(slot) {
			missing = append(missing, slot)
		}
	}
	return missing
}

func (s *TripPlanningState) slotSet(slot string) bool {
	switch slot {
	case SlotDestination:
		return s.Destination != nil
	case SlotDuration:
		return s.DurationDays != nil
	case SlotBudget:
		return s.BudgetIDR != nil
	case SlotPreferences:
		return len(s.Preferences) > 0
	case SlotTransport:
		return s.Transport != nil
	}
	return false
}

// TripContext snapshots the filled slots for a provider call.
func (s *TripPlanningState) TripContext() ai.TripContext {
	return ai.TripContext{
		Destination:  s.Destination,
		DurationDays: s.DurationDays,
		BudgetIDR:    s.BudgetIDR,
		Preferences:  s.Preferences,
		Transport:    s.Transport,
	}
}

// ApplyDelta merges an extraction delta under the fill-once rule: a delta value
// lands only in a currently unset slot, so repeated mentions of an
// already-known field never change it silently. Non-positive numbers are ignored.
func (s *TripPlanningState) ApplyDelta(delta *ai.ExtractionResult) {
	if delta == nil {
		return
	}
	if s.Destination == nil && delta.Destination != nil && strings.TrimSpace(*delta.Destination) != "" {
		v := strings.TrimSpace(*delta.Destination)
		s.Destination = &v
	}
	if s.DurationDays == nil && delta.DurationDays != nil && *delta.DurationDays > 0 {
		v := *delta.DurationDays
		s.DurationDays = &v
	}
	if s.BudgetIDR == nil && delta.BudgetIDR != nil && *delta.BudgetIDR > 0 {
		v := *delta.BudgetIDR
		s.BudgetIDR = &v
	}
	if len(s.Preferences) == 0 && len(delta.Preferences) > 0 {
		s.Preferences = normalizePreferences(delta.Preferences)
	}
	if s.Transport == nil && delta.Transport != nil && strings.TrimSpace(*delta.Transport) != "" {
		v := strings.TrimSpace(*delta.Transport)
		s.Transport = &v
	}
}

// ResetSlot clears exactly one slot back to unset. Reports whether the slot
// name was recognised.
func (s *TripPlanningState) ResetSlot(slot string) bool {
	switch slot {
	case SlotDestination:
		s.Destination = nil
	case SlotDuration:
		s.DurationDays = nil
	case SlotBudget:
		s.BudgetIDR = nil
	case SlotPreferences:
		s.Preferences = nil
	case SlotTransport:
		s.Transport = nil
	default:
		return false
	}
	return true
}

func normalizePreferences(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, p := range raw {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
