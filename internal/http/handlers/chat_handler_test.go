// README: Chat handler tests over a faked engine and quota.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jelajah/internal/ai"
	"jelajah/internal/config"
	"jelajah/internal/dialogue"
	"jelajah/internal/http/handlers"
	"jelajah/internal/modules/quota"
	"jelajah/internal/types"
)

// fakeLLM answers every extraction with a fixed delta and phrases fixed questions.
type fakeLLM struct {
	delta *ai.ExtractionResult
}

func (f *fakeLLM) ExtractTripFields(context.Context, ai.TripContext, []string, string) (*ai.ExtractionResult, error) {
	if f.delta != nil {
		return f.delta, nil
	}
	return &ai.ExtractionResult{}, nil
}

func (f *fakeLLM) ComposeSlotQuestion(_ context.Context, slot string, _ ai.TripContext) (*ai.QuestionResult, error) {
	return &ai.QuestionResult{Question: "Tanya " + slot + "?"}, nil
}

func (f *fakeLLM) GenerateItinerary(context.Context, ai.TripContext) (*ai.ItineraryResult, error) {
	return nil, errors.New("not used")
}

type memStore struct {
	snapshots map[types.ID]*dialogue.TripPlanningState
}

func (s *memStore) Get(_ context.Context, id types.ID) (*dialogue.TripPlanningState, error) {
	return s.snapshots[id], nil
}

func (s *memStore) Put(_ context.Context, id types.ID, st *dialogue.TripPlanningState) error {
	s.snapshots[id] = st
	return nil
}

type fakeQuota struct {
	err   error
	calls int
}

func (q *fakeQuota) SpendTurn(context.Context, string) error {
	q.calls++
	return q.err
}

func buildTestRouter(llm ai.LLMProvider, q handlers.TurnQuota) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := &memStore{snapshots: make(map[types.ID]*dialogue.TripPlanningState)}
	engine := dialogue.NewEngine(store, nil, llm, config.DialogueConfig{})
	r := gin.New()
	h := handlers.NewChatHandler(engine, q)
	r.POST("/api/chat", h.Chat)
	return r
}

func doRequest(r *gin.Engine, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChat_MissingMessage(t *testing.T) {
	r := buildTestRouter(&fakeLLM{}, &fakeQuota{})
	w := doRequest(r, map[string]any{"uid": "user1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestChat_InvalidThreadID(t *testing.T) {
	r := buildTestRouter(&fakeLLM{}, &fakeQuota{})
	w := doRequest(r, map[string]any{"uid": "user1", "message": "halo", "thread_id": "not/valid!"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestChat_QuotaExhausted(t *testing.T) {
	r := buildTestRouter(&fakeLLM{}, &fakeQuota{err: quota.ErrQuotaExhausted})
	w := doRequest(r, map[string]any{"uid": "user1", "message": "mau liburan"})
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestChat_IssuesThreadID(t *testing.T) {
	q := &fakeQuota{}
	r := buildTestRouter(&fakeLLM{}, q)
	w := doRequest(r, map[string]any{"uid": "user1", "message": "mau liburan"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ThreadID   string `json:"thread_id"`
		Reply      string `json:"reply"`
		IsComplete bool   `json:"is_complete"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.ThreadID) != 32 {
		t.Errorf("thread_id = %q, want generated 32-char id", resp.ThreadID)
	}
	if resp.Reply == "" {
		t.Error("reply must not be empty")
	}
	if resp.IsComplete {
		t.Error("fresh conversation cannot be complete")
	}
	if q.calls != 1 {
		t.Errorf("quota spent %d times, want 1", q.calls)
	}
}

func TestChat_SeededTripDataRespectsFillOnce(t *testing.T) {
	llm := &fakeLLM{delta: &ai.ExtractionResult{Destination: strPtr("Bandung")}}
	r := buildTestRouter(llm, &fakeQuota{})

	w := doRequest(r, map[string]any{
		"uid":       "user1",
		"message":   "lanjut dong",
		"thread_id": "seeded1",
		"trip_data": map[string]any{"destination": "Yogyakarta"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		TripData struct {
			Destination *string `json:"destination"`
		} `json:"trip_data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.TripData.Destination == nil || *resp.TripData.Destination != "Yogyakarta" {
		t.Errorf("seeded destination must win over extraction, got %v", resp.TripData.Destination)
	}
}

func strPtr(s string) *string { return &s }
