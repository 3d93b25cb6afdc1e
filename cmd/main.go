package main

import (
	"conference-lab/internal"
	"conference-lab/repositories"
	"conference-lab/roomid"
	"conference-lab/runtime"
	"conference-lab/runtime/workers"
	"conference-lab/services"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// passthroughResolver stands in for the external identity service: the
// coordinator only needs display names for the on-going view, identity
// management itself lives outside this module.
type passthroughResolver struct{}

func (passthroughResolver) DisplayName(userID string) string { return userID }

// run initializes all components, manages the coordinator lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Setup Supervision & Broadcast
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	broadcaster := workers.NewBroadcaster(log, registry, config.BufferSize, config.SinkTimeout)

	// 4. Lifecycle Engine
	repository := repositories.NewConferenceRepository(db, log)
	reporter := workers.NewReporterWorker(log, repository, config.ReportInterval)
	sup.Add(broadcaster, reporter)
	service := services.NewConferenceService(
		repository,
		roomid.NewUUIDGenerator(),
		broadcaster,
		passthroughResolver{},
		log,
	)
	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Start workers and the store inspector
	go sup.Run(ctx)
	internal.StartDebugServer(db, config.DebugPort, "/inspect", nil, func() map[string]any {
		stats := map[string]any{
			"Connections": len(registry.Sinks()),
			"Buffered":    len(broadcaster.Events),
		}
		if sessions, err := service.GetConferenceList(ctx); err == nil {
			stats["Sessions"] = len(sessions)
		}
		return stats
	})
	log.Info("Conference coordinator started", "inspector_port", config.DebugPort)

	// 7. Wait for Stop
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	// 8. Final Cleanup
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
