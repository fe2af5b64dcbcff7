package dialogue

import (
	"strings"
	"unicode"
)

// Tokens accepted as confirmation of the summary.
var confirmTokens = map[string]bool{
	"confirm":    true,
	"konfirmasi": true,
	"ya":         true,
	"benar":      true,
	"siap":       true,
	"ok":         true,
	"oke":        true,
	"yes":        true,
}

// Edit-intent tokens in slot priority order. When a reply carries several edit
// tokens only the first slot in this order is reset.
var editTokens = []struct {
	slot   string
	tokens []string
}{
	{SlotDestination, []string{"edit_destination", "destinasi", "destination"}},
	{SlotDuration, []string{"edit_duration", "durasi", "duration"}},
	{SlotBudget, []string{"edit_budget", "budget"}},
}

const (
	confirmedReply = "Mantap, rencana liburanmu sudah lengkap! Aku susun itinerary-nya sekarang ya."
	rePromptReply  = "Hmm, aku kurang paham maksudnya. Pilih salah satu opsi di bawah ya."
	completedReply = "Rencana liburanmu sudah dikonfirmasi. Itinerary-mu sedang disiapkan!"
)

type confirmOutcome int

const (
	outcomeConfirmed confirmOutcome = iota
	outcomeEdited
	outcomeUnknown
)

// handleConfirmation interprets a reply to the summary. It either finalizes
// the plan, clears exactly one slot for re-collection, or leaves the state
// untouched when the reply matches no known token. Message appending is the
// engine's job.
func handleConfirmation(state *TripPlanningState, reply string) confirmOutcome {
	words := tokenize(reply)

	for _, w := range words {
		if confirmTokens[w] {
			state.IsComplete = true
			return outcomeConfirmed
		}
	}

	for _, e := range editTokens {
		for _, t := range e.tokens {
			if containsToken(words, t) {
				state.ResetSlot(e.slot)
				state.CurrentQuestion = ""
				return outcomeEdited
			}
		}
	}

	return outcomeUnknown
}

func containsToken(words []string, token string) bool {
	for _, w := range words {
		if w == token {
			return true
		}
	}
	return false
}

func tokenize(reply string) []string {
	folded := strings.ToLower(strings.TrimSpace(reply))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
