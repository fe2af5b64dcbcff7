package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"jelajah/internal/ai"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	userMessage := "mau ke jogja 2 hari sama keluarga, budget 5 juta"
	fmt.Printf("User: %s\n", userMessage)

	delta, err := provider.ExtractTripFields(ctx, ai.TripContext{}, nil, userMessage)
	if err != nil {
		log.Fatalf("Error extracting fields: %v", err)
	}

	if delta.Destination != nil {
		fmt.Printf("Destination: %s\n", *delta.Destination)
	}
	if delta.DurationDays != nil {
		fmt.Printf("Duration: %d days\n", *delta.DurationDays)
	}
	if delta.BudgetIDR != nil {
		fmt.Printf("Budget: Rp %d\n", *delta.BudgetIDR)
	}
	if len(delta.Preferences) > 0 {
		fmt.Printf("Preferences: %v\n", delta.Preferences)
	}

	question, err := provider.ComposeSlotQuestion(ctx, "preferences", ai.TripContext{
		Destination:  delta.Destination,
		DurationDays: delta.DurationDays,
		BudgetIDR:    delta.BudgetIDR,
	})
	if err != nil {
		log.Fatalf("Error composing question: %v", err)
	}
	fmt.Printf("Next question: %s\n", question.Question)
	for _, opt := range question.Options {
		fmt.Printf("  [%s] -> %s\n", opt.Label, opt.Value)
	}
}
