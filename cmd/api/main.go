package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arcgen/backend/internal/config"
	"github.com/arcgen/backend/internal/handler"
	"github.com/arcgen/backend/internal/model/provider"
	"github.com/arcgen/backend/internal/service/ai"
	"github.com/arcgen/backend/internal/service/history"
	"github.com/arcgen/backend/internal/service/shapelib"
	"github.com/arcgen/backend/internal/service/upload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	registry := provider.NewMemoryRegistry(provider.Seed())
	historyService := history.NewService()
	shapeLibs := shapelib.NewManager(cfg.Shapes.DocsDir)
	uploads := upload.NewProcessor(cfg.Upload.MaxBytes)
	aiService := ai.NewService(registry, shapeLibs, historyService, cfg.AI)

	configured := 0
	for _, p := range registry.List() {
		if p.Configured() {
			configured++
			log.Printf("provider %s: credentials found", p.Name)
		}
	}
	if configured == 0 {
		log.Println("no provider credentials configured; generation requests will be rejected until keys are set")
	}

	router := handler.NewRouter(handler.Deps{
		Registry:  registry,
		AI:        aiService,
		History:   historyService,
		ShapeLibs: shapeLibs,
		Uploads:   uploads,
		MaxUpload: cfg.Upload.MaxBytes,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Arcgen backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
