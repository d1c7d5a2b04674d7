package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaughan-dsouza/rentwheels/internal/auth"
	"github.com/vaughan-dsouza/rentwheels/internal/config"
	"github.com/vaughan-dsouza/rentwheels/internal/db"
	"github.com/vaughan-dsouza/rentwheels/internal/events"
	"github.com/vaughan-dsouza/rentwheels/internal/handlers"
	"github.com/vaughan-dsouza/rentwheels/internal/repository"
	"github.com/vaughan-dsouza/rentwheels/internal/router"
	"github.com/vaughan-dsouza/rentwheels/internal/telemetry"
)

const tokenPruneInterval = time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("config: %s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	pub, err := events.Connect(cfg.Events.URL, cfg.Events.Exchange)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	defer pub.Close()

	store := repository.New(dbConn)
	authSvc := auth.NewService(store, cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	h := handlers.NewHandler(store, authSvc, pub)

	go pruneTokens(ctx, store.Tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(h, authSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}

	log.Println("server exited")
}

// pruneTokens deletes expired access tokens until ctx is done.
func pruneTokens(ctx context.Context, tokens *repository.TokenRepository) {
	ticker := time.NewTicker(tokenPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Printf("prune tokens: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("pruned %d expired tokens", n)
			}
		}
	}
}
