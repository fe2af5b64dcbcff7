// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"jelajah/internal/ai"
	"jelajah/internal/config"
	"jelajah/internal/dialogue"
	httptransport "jelajah/internal/http"
	"jelajah/internal/infra"
	"jelajah/internal/modules/itinerary"
	"jelajah/internal/modules/quota"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	store := dialogue.NewRedisStore(redisClient, cfg.Dialogue.ThreadTTL)
	locker := dialogue.NewRedisLocker(redisClient)
	engine := dialogue.NewEngine(store, locker, provider, cfg.Dialogue)

	quotaSvc := quota.NewService(quota.NewStore(dbPool))
	itinerarySvc := itinerary.NewService(provider)

	handler := httptransport.NewRouter(engine, store, quotaSvc, itinerarySvc)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
