package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lirlia/100day-challenge-backend-sub013/internal"
	"github.com/lirlia/100day-challenge-backend-sub013/server/checkwire"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config file (optional)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	})))

	schema, err := cfg.SchemaCatalog()
	if err != nil {
		log.Fatalf("Failed to build schema catalog: %v", err)
	}

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := checkwire.Serve(ctx, listenAddr, checkwire.NewHandler(schema)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
