package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/cherry77-cloud/Rookie2025-Spring/internal/config"
	"github.com/cherry77-cloud/Rookie2025-Spring/internal/server"
)

func main() {
	name := filepath.Base(os.Args[0])
	cfg, err := config.Load(name, os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := server.Serve(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
	log.Printf("HTTP Parser Server listening on %s (io=%s)", s.Addr(), cfg.Backend)

	<-s.Done()
	log.Println("Server gracefully stopped")
}
