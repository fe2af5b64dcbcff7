// README: Trip-planning chat handler (quota-guarded dialogue turns).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jelajah/internal/ai"
	"jelajah/internal/dialogue"
	"jelajah/internal/types"
)

// turnTimeout covers a full graph pass; a turn makes up to three collaborator
// calls on the edit path.
const turnTimeout = 30 * time.Second

// TurnQuota meters dialogue turns per user; satisfied by quota.Service.
type TurnQuota interface {
	SpendTurn(ctx context.Context, uid string) error
}

type ChatHandler struct {
	engine *dialogue.Engine
	quota  TurnQuota
}

func NewChatHandler(engine *dialogue.Engine, quotaSvc TurnQuota) *ChatHandler {
	return &ChatHandler{engine: engine, quota: quotaSvc}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type tripData struct {
	Destination *string  `json:"destination,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Budget      *int64   `json:"budget,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	Transport   *string  `json:"transport,omitempty"`
}

type chatReq struct {
	UID                 string        `json:"uid"`
	Message             string        `json:"message"`
	ThreadID            string        `json:"thread_id,omitempty"`
	ConversationHistory []chatMessage `json:"conversation_history,omitempty"`
	TripData            *tripData     `json:"trip_data,omitempty"`
}

type chatResp struct {
	ThreadID                string          `json:"thread_id"`
	Reply                   string          `json:"reply"`
	TripData                tripData        `json:"trip_data"`
	Options                 []ai.QuickReply `json:"options,omitempty"`
	ShouldGenerateItinerary bool            `json:"should_generate_itinerary"`
	IsComplete              bool            `json:"is_complete"`
}

// Chat handles POST /api/chat: one dialogue turn.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.UID = strings.TrimSpace(req.UID)
	req.Message = strings.TrimSpace(req.Message)
	if req.UID == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing uid or message")
		return
	}
	if !isValidID(req.UID) {
		writeError(c, http.StatusBadRequest, "invalid uid")
		return
	}

	threadID := types.ID(req.ThreadID)
	if req.ThreadID == "" {
		threadID = types.NewID()
	} else if !isValidID(req.ThreadID) {
		writeError(c, http.StatusBadRequest, "invalid thread_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	if err := h.quota.SpendTurn(ctx, req.UID); err != nil {
		writeChatError(c, err)
		return
	}

	result, err := h.engine.Turn(ctx, threadID, req.Message, seedState(req))
	if err != nil {
		writeChatError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, chatResp{
		ThreadID:                string(threadID),
		Reply:                   result.Reply,
		TripData:                tripDataFrom(result.State),
		Options:                 result.Options,
		ShouldGenerateItinerary: result.ShouldGenerateItinerary,
		IsComplete:              result.State.IsComplete,
	})
}

// seedState builds an initial state from a stateless client's replayed history
// and trip data. Returns nil when the request carries neither, letting the
// engine start fresh.
func seedState(req chatReq) *dialogue.TripPlanningState {
	if len(req.ConversationHistory) == 0 && req.TripData == nil {
		return nil
	}

	state := dialogue.NewState()
	for _, m := range req.ConversationHistory {
		switch m.Role {
		case dialogue.RoleUser:
			state.AppendUser(m.Content)
		case dialogue.RoleAssistant:
			state.AppendAssistant(m.Content)
		}
	}
	if req.TripData != nil {
		state.ApplyDelta(&ai.ExtractionResult{
			Destination:  req.TripData.Destination,
			DurationDays: req.TripData.Duration,
			BudgetIDR:    req.TripData.Budget,
			Preferences:  req.TripData.Preferences,
			Transport:    req.TripData.Transport,
		})
	}
	return state
}

func tripDataFrom(state *dialogue.TripPlanningState) tripData {
	return tripData{
		Destination: state.Destination,
		Duration:    state.DurationDays,
		Budget:      state.BudgetIDR,
		Preferences: state.Preferences,
		Transport:   state.Transport,
	}
}
