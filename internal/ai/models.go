package ai

// TripContext carries the trip fields already known to the dialogue when a
// provider call is made. Nil means the slot has not been filled yet.
type TripContext struct {
	Destination  *string  `json:"destination,omitempty"`
	DurationDays *int     `json:"duration,omitempty"`
	BudgetIDR    *int64   `json:"budget,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
	Transport    *string  `json:"transport,omitempty"`
}

// ExtractionResult captures the structured delta extracted from one user message.
// Every field is nullable: nil means the message carried no new information for
// that slot.
type ExtractionResult struct {
	Destination  *string  `json:"destination"`
	DurationDays *int     `json:"duration"`
	BudgetIDR    *int64   `json:"budget"`
	Preferences  []string `json:"preferences"`
	Transport    *string  `json:"transport"`
}

// QuickReply is one suggested answer shown as a tappable chip.
type QuickReply struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuestionResult is the composed question for a single missing slot.
type QuestionResult struct {
	Question string       `json:"question"`
	Options  []QuickReply `json:"options"`
}

// ItineraryActivity is one stop in a generated day plan.
type ItineraryActivity struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	EstimatedIDR int64  `json:"estimated_cost"`
}

// ItineraryDay groups the activities of one trip day.
type ItineraryDay struct {
	Day        int                 `json:"day"`
	Activities []ItineraryActivity `json:"activities"`
}

// ItineraryResult is the structured output of a generation call.
type ItineraryResult struct {
	Title string         `json:"title"`
	Days  []ItineraryDay `json:"days"`
}
