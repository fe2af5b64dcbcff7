package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/kaptinlin/jsonrepair"
	"google.golang.org/api/option"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Low temperature: extraction must stay literal, phrasing only mildly varied.
	model.SetTemperature(0.3)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ExtractTripFields analyzes user input to extract newly mentioned trip fields.
func (p *GeminiProvider) ExtractTripFields(ctx context.Context, known TripContext, history []string, userMessage string) (*ExtractionResult, error) {
	prompt := buildExtractionPrompt(known, history, userMessage)

	var result ExtractionResult
	if err := p.generateInto(ctx, prompt, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ComposeSlotQuestion asks the model to phrase the next question for one slot.
func (p *GeminiProvider) ComposeSlotQuestion(ctx context.Context, slot string, known TripContext) (*QuestionResult, error) {
	prompt := buildQuestionPrompt(slot, known)

	var result QuestionResult
	if err := p.generateInto(ctx, prompt, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Question) == "" {
		return nil, fmt.Errorf("gemini returned an empty question")
	}
	return &result, nil
}

// GenerateItinerary produces a structured day-by-day plan for a confirmed trip.
func (p *GeminiProvider) GenerateItinerary(ctx context.Context, plan TripContext) (*ItineraryResult, error) {
	prompt := buildItineraryPrompt(plan)

	var result ItineraryResult
	if err := p.generateInto(ctx, prompt, &result); err != nil {
		return nil, err
	}
	if len(result.Days) == 0 {
		return nil, fmt.Errorf("gemini returned an itinerary without days")
	}
	return &result, nil
}

// generateInto runs one generation call and unmarshals the JSON body into out.
// Malformed output gets a single repair attempt before failing.
func (p *GeminiProvider) generateInto(ctx context.Context, prompt string, out any) error {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (though json mode should handle this, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	if err := json.Unmarshal([]byte(cleanJSON), out); err == nil {
		return nil
	}

	// Second chance: models occasionally emit trailing commas or bare keys.
	repaired, repairErr := jsonrepair.JSONRepair(cleanJSON)
	if repairErr != nil {
		return fmt.Errorf("failed to repair JSON response: %w. Raw: %s", repairErr, cleanJSON)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return nil
}

func knownFieldsBlock(known TripContext) string {
	var b strings.Builder
	writeLine := func(name, val string) {
		fmt.Fprintf(&b, "- %s: %s\n", name, val)
	}
	if known.Destination != nil {
		writeLine("destination", *known.Destination)
	} else {
		writeLine("destination", "UNKNOWN")
	}
	if known.DurationDays != nil {
		writeLine("duration_days", fmt.Sprintf("%d", *known.DurationDays))
	} else {
		writeLine("duration_days", "UNKNOWN")
	}
	if known.BudgetIDR != nil {
		writeLine("budget_idr", fmt.Sprintf("%d", *known.BudgetIDR))
	} else {
		writeLine("budget_idr", "UNKNOWN")
	}
	if len(known.Preferences) > 0 {
		writeLine("preferences", strings.Join(known.Preferences, ", "))
	} else {
		writeLine("preferences", "UNKNOWN")
	}
	if known.Transport != nil {
		writeLine("transport", *known.Transport)
	} else {
		writeLine("transport", "UNKNOWN")
	}
	return b.String()
}

// buildExtractionPrompt constructs the slot-extraction instructions.
func buildExtractionPrompt(known TripContext, history []string, userMessage string) string {
	historyBlock := "NONE"
	if len(history) > 0 {
		historyBlock = strings.Join(history, "\n")
	}

	return fmt.Sprintf(`Role: You are the field extractor for "jelajah", an Indonesian trip-planning assistant.

Known trip fields so far:
%s
Recent conversation:
%s

Task: Read ONLY the newest user message below and extract any NEW trip information.

RULES:
1. Return null for every field the message does not mention. Never guess.
2. "destination": normalize to the proper city/region name in Indonesian spelling.
   - E.g. "jogja", "yogya" -> "Yogyakarta". "bdg" -> "Bandung".
3. "duration": trip length in DAYS as an integer. "2 hari 1 malam" -> 2. "seminggu" -> 7.
4. "budget": total budget in RUPIAH as an integer. "5 juta" -> 5000000. "500rb" -> 500000.
5. "preferences": travel-style categories mentioned (e.g. "budaya", "alam", "kuliner",
   "pantai", "belanja", "sejarah"). Lowercase. Empty array if none mentioned.
6. "transport": mode of travel if mentioned (e.g. "mobil", "motor", "kereta", "pesawat", "bus").
7. Fields that are already known above may be repeated by the user; extract them anyway,
   the caller decides whether to apply them.
8. Output MUST be a single JSON object, nothing else.

Output JSON Schema:
{
  "destination": "string or null",
  "duration": integer or null,
  "budget": integer or null,
  "preferences": ["string"],
  "transport": "string or null"
}

User Message: %s`, knownFieldsBlock(known), historyBlock, userMessage)
}

// buildQuestionPrompt constructs the question-phrasing instructions for one slot.
func buildQuestionPrompt(slot string, known TripContext) string {
	return fmt.Sprintf(`Role: You are "jelajah", a friendly Indonesian trip-planning assistant.

Known trip fields so far:
%s
Task: Phrase ONE short question in casual Bahasa Indonesia asking the user for their trip %s.
Reference the already-known fields naturally when it helps (e.g. mention the destination
when asking for a budget).

RULES:
1. One question only, no greetings, no markdown.
2. Provide 4 to 5 short quick-reply suggestions fitting the question.
   - For "duration": day counts, e.g. label "2 hari", value "2 hari".
   - For "budget": rupiah ranges, e.g. label "Sekitar 2 juta", value "2 juta".
   - For "preferences": categories, e.g. "Budaya", "Alam", "Kuliner", "Pantai".
   - For "destination": popular Indonesian destinations.
3. Keep labels under 25 characters. The value is what will be sent back as the user's message.
4. Output MUST be a single JSON object, nothing else.

Output JSON Schema:
{
  "question": "string (Bahasa Indonesia)",
  "options": [{"label": "string", "value": "string"}]
}`, knownFieldsBlock(known), slot)
}

// buildItineraryPrompt constructs the day-by-day generation instructions.
func buildItineraryPrompt(plan TripContext) string {
	return fmt.Sprintf(`Role: You are the itinerary generator for "jelajah", an Indonesian trip-planning assistant.

Confirmed trip:
%s
Task: Create a realistic day-by-day itinerary for this trip.

RULES:
1. Exactly duration_days days, numbered from 1.
2. 3-4 activities per day matching the stated preferences, real places in/around the destination.
3. "category" is the matching preference tag (or "umum" when none applies).
4. "estimated_cost" is the per-person cost in rupiah as an integer; keep the trip total inside budget_idr.
5. Activity names in Bahasa Indonesia.
6. Output MUST be a single JSON object, nothing else.

Output JSON Schema:
{
  "title": "string",
  "days": [
    {"day": 1, "activities": [{"name": "string", "category": "string", "estimated_cost": integer}]}
  ]
}`, knownFieldsBlock(plan))
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
