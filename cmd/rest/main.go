package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cme-be/internal/bootstrap"
	"cme-be/internal/config"
	"cme-be/internal/server"
	"cme-be/internal/tracer"
	"cme-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 5. Start Background Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start evaluation consumer: %v", err)
	}

	// 6. Run Server until interrupted
	srv := server.New(cfg, container)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		cancel()
		_ = srv.Shutdown()
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
