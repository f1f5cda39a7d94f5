package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/medinfo/medinfo-api/config"
	"github.com/medinfo/medinfo-api/data"
	"github.com/medinfo/medinfo-api/handlers"
	"github.com/medinfo/medinfo-api/health"
	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/pipeline"
	"github.com/medinfo/medinfo-api/scheduler"
	"github.com/medinfo/medinfo-api/server"
	"github.com/medinfo/medinfo-api/store"
	"github.com/medinfo/medinfo-api/synthesis"
	"github.com/medinfo/medinfo-api/websearch"
)

func main() {
	// .env is optional; real deployments configure via the environment
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogLevel)

	if !cfg.HasSearchCredentials() {
		logging.Warn("Google search credentials missing, search endpoints will return 503")
	}
	if !cfg.HasLLMCredentials() {
		logging.Warn("Groq credentials missing, AI endpoints will return 503")
	}

	dataContainer := data.NewContainer()
	sched := scheduler.NewScheduler(dataContainer, cfg.KendraDataset)

	var st *store.Store

	// Catalog open and dataset load are independent, run both at once
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		opened, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		st = opened
		return st.Seed(gctx)
	})
	g.Go(func() error {
		return sched.Start()
	})
	if err := g.Wait(); err != nil {
		logging.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	defer sched.Stop()

	searchClient := websearch.NewClient(cfg.GoogleAPIKey, cfg.GoogleCSEID)
	synthClient := synthesis.NewClient(cfg.GroqAPIKey)

	deps := pipeline.Deps{
		Search: searchClient,
		Images: searchClient,
		Synth:  synthClient,
	}

	checker := health.NewHealthChecker(dataContainer, st)
	handler := handlers.New(deps, dataContainer, st, checker)
	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
