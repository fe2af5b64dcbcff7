package itinerary

import (
	"context"
	"errors"
	"testing"

	"jelajah/internal/ai"
	"jelajah/internal/dialogue"
)

type fakeLLM struct {
	result *ai.ItineraryResult
	err    error
}

func (f *fakeLLM) ExtractTripFields(context.Context, ai.TripContext, []string, string) (*ai.ExtractionResult, error) {
	return &ai.ExtractionResult{}, nil
}

func (f *fakeLLM) ComposeSlotQuestion(context.Context, string, ai.TripContext) (*ai.QuestionResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeLLM) GenerateItinerary(context.Context, ai.TripContext) (*ai.ItineraryResult, error) {
	return f.result, f.err
}

func completeState() *dialogue.TripPlanningState {
	dest := "Yogyakarta"
	days := 2
	budget := int64(5000000)
	return &dialogue.TripPlanningState{
		Destination:  &dest,
		DurationDays: &days,
		BudgetIDR:    &budget,
		Preferences:  []string{"budaya"},
		IsComplete:   true,
	}
}

func TestGenerate_RequiresConfirmedPlan(t *testing.T) {
	svc := NewService(&fakeLLM{})

	if _, err := svc.Generate(context.Background(), nil); !errors.Is(err, ErrPlanIncomplete) {
		t.Fatalf("nil state: got %v", err)
	}

	st := completeState()
	st.IsComplete = false
	if _, err := svc.Generate(context.Background(), st); !errors.Is(err, ErrPlanIncomplete) {
		t.Fatalf("unconfirmed state: got %v", err)
	}
}

func TestGenerate_PassesThroughPlan(t *testing.T) {
	want := &ai.ItineraryResult{
		Title: "2 Hari Budaya di Yogyakarta",
		Days: []ai.ItineraryDay{
			{Day: 1, Activities: []ai.ItineraryActivity{{Name: "Keraton Yogyakarta", Category: "budaya", EstimatedIDR: 25000}}},
		},
	}
	svc := NewService(&fakeLLM{result: want})

	got, err := svc.Generate(context.Background(), completeState())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("result = %+v", got)
	}
}

func TestGenerate_WrapsCollaboratorError(t *testing.T) {
	svc := NewService(&fakeLLM{err: errors.New("unreachable")})

	if _, err := svc.Generate(context.Background(), completeState()); err == nil {
		t.Fatal("expected error")
	}
}
