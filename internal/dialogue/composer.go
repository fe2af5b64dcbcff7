package dialogue

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jelajah/internal/ai"
)

// Canned fallback questions keep the loop alive when the collaborator is down.
// No quick replies in that case.
var cannedQuestions = map[string]string{
	SlotDestination: "Kamu mau liburan ke mana?",
	SlotDuration:    "Berapa hari rencana liburanmu?",
	SlotBudget:      "Berapa total budget liburanmu?",
	SlotPreferences: "Kamu suka wisata seperti apa? Misalnya budaya, alam, atau kuliner.",
}

var summaryOptions = []ai.QuickReply{
	{Label: "Konfirmasi", Value: "confirm"},
	{Label: "Ubah Destinasi", Value: "edit_destination"},
	{Label: "Ubah Durasi", Value: "edit_duration"},
	{Label: "Ubah Budget", Value: "edit_budget"},
}

// Composer phrases the next question, or the completed-slots summary when
// nothing is missing.
type Composer struct {
	llm ai.LLMProvider
}

func NewComposer(llm ai.LLMProvider) *Composer {
	return &Composer{llm: llm}
}

// Compose returns the next assistant message (with inline options markup) and
// the question tag it is asking about. The tag is QuestionSummary when all
// primary slots are filled.
func (c *Composer) Compose(ctx context.Context, state *TripPlanningState) (string, string) {
	missing := state.MissingSlots()
	if len(missing) == 0 {
		return c.composeSummary(state), QuestionSummary
	}

	slot := missing[0]
	res, err := c.llm.ComposeSlotQuestion(ctx, slot, state.TripContext())
	if err != nil {
		log.Printf("composer: falling back to canned question for %s: %v", slot, err)
		return cannedQuestions[slot], slot
	}

	opts := res.Options
	if !hasOption(opts, "other") {
		opts = append(opts, ai.QuickReply{Label: "Lainnya", Value: "other"})
	}
	return res.Question + " " + optionsTag(opts), slot
}

func (c *Composer) composeSummary(state *TripPlanningState) string {
	var b strings.Builder
	b.WriteString("Oke, ini ringkasan rencana liburanmu:\n")
	fmt.Fprintf(&b, "- Destinasi: %s\n", *state.Destination)
	fmt.Fprintf(&b, "- Durasi: %d hari\n", *state.DurationDays)
	fmt.Fprintf(&b, "- Budget: %s\n", formatRupiah(*state.BudgetIDR))
	fmt.Fprintf(&b, "- Preferensi: %s\n", strings.Join(state.Preferences, ", "))
	if state.Transport != nil {
		fmt.Fprintf(&b, "- Transportasi: %s\n", *state.Transport)
	}
	b.WriteString("Sudah benar semua? ")
	b.WriteString(optionsTag(summaryOptions))
	return b.String()
}

func hasOption(opts []ai.QuickReply, value string) bool {
	for _, o := range opts {
		if strings.EqualFold(o.Value, value) {
			return true
		}
	}
	return false
}

// formatRupiah renders an amount with Indonesian thousand separators,
// e.g. 5000000 -> "Rp 5.000.000".
func formatRupiah(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	b.WriteString("Rp ")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(".")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(".")
		}
	}
	return b.String()
}
