// README: Itinerary generation handler for confirmed trip plans.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jelajah/internal/dialogue"
	"jelajah/internal/modules/itinerary"
	"jelajah/internal/types"
)

const generateTimeout = 45 * time.Second

type ItineraryHandler struct {
	store     dialogue.ConversationStore
	itinerary *itinerary.Service
}

func NewItineraryHandler(store dialogue.ConversationStore, svc *itinerary.Service) *ItineraryHandler {
	return &ItineraryHandler{store: store, itinerary: svc}
}

type generateReq struct {
	ThreadID string `json:"thread_id"`
}

// Generate handles POST /api/itinerary: one generation call for a confirmed thread.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ThreadID == "" || !isValidID(req.ThreadID) {
		writeError(c, http.StatusBadRequest, "missing or invalid thread_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	state, err := h.store.Get(ctx, types.ID(req.ThreadID))
	if err != nil {
		writeChatError(c, err)
		return
	}
	if state == nil {
		writeError(c, http.StatusNotFound, "unknown thread")
		return
	}

	plan, err := h.itinerary.Generate(ctx, state)
	if err != nil {
		writeChatError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, plan)
}
