// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelajah/internal/dialogue"
	"jelajah/internal/http/handlers"
	"jelajah/internal/http/middleware"
	"jelajah/internal/modules/itinerary"
	"jelajah/internal/modules/quota"
)

func NewRouter(
	engine *dialogue.Engine,
	store dialogue.ConversationStore,
	quotaSvc *quota.Service,
	itinerarySvc *itinerary.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logging())

	chatHandler := handlers.NewChatHandler(engine, quotaSvc)
	r.POST("/api/chat", chatHandler.Chat)

	itineraryHandler := handlers.NewItineraryHandler(store, itinerarySvc)
	r.POST("/api/itinerary", itineraryHandler.Generate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
