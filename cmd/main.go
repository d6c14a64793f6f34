package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"linguasync/infrastructure/translate"
	"linguasync/infrastructure/ws"
	"linguasync/moderation"
	"linguasync/runtime"
	"linguasync/runtime/workers"
	"linguasync/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes
// error reporting, so every defer executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Translation gateway: strict startup dependency, no degraded mode.
	translator := translate.NewClient(log, config.TranslateEndpoint, config.TranslateAPIKey, config.TranslateTimeout)
	pingCtx, cancel := context.WithTimeout(ctx, config.TranslateTimeout)
	defer cancel()
	if err := translator.Ping(pingCtx); err != nil {
		return fmt.Errorf("translation gateway unreachable: %w", err)
	}
	log.Info("Translation gateway reachable", "endpoint", config.TranslateEndpoint)

	// 4. Registry, router, service
	registry := runtime.NewRegistry()
	router := runtime.NewRouter(log, registry, translator, config.TranslateTimeout)

	if config.CensoredWordsPath != "" {
		words, err := moderation.LoadWords(config.CensoredWordsPath)
		if err != nil {
			return err
		}
		mask, err := CharacterRune(config.CharReplacement)
		if err != nil {
			return err
		}
		moderator, err := moderation.NewModerator(words, mask)
		if err != nil {
			return err
		}
		router = router.WithModerator(moderator)
		log.Info(fmt.Sprintf("%d censored words loaded", len(words)))
	}

	service := services.NewRelayService(registry, router)

	// 5. Supervised background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewTelemetryWorker(log, registry, config.MetricInterval))
	go sup.Run(ctx)

	// 6. HTTP server with the WebSocket edge
	var allowedOrigins []string
	if config.AllowedOrigins != "" {
		allowedOrigins = strings.Split(config.AllowedOrigins, ",")
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(log, service, config.ConnectionBufferSize, allowedOrigins))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	srv := &http.Server{Addr: address, Handler: mux}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Listening", "address", address, "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
