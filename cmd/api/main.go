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
	"github.com/robfig/cron/v3"

	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/config"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/handler"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/jobs"
	rulesmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/rules"
	chatservice "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/chat"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/reply"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logger.Log.Warnf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Errorf("failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level)

	table := rulesmodel.NewMemoryStore(rulesmodel.Seed())
	store := chatservice.NewService(rulesmodel.Greeting)
	engine := reply.NewEngine(store, table, cfg.Bot.ReplyDelay())

	scheduler := cron.New()
	if err := jobs.InitCronJobs(scheduler, engine, cfg.Bot.ReapSpec, cfg.Bot.SessionTTL()); err != nil {
		logger.Log.Errorf("failed to start background jobs: %v", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	router := handler.NewRouter(engine, table, cfg.Server.AllowedOrigins)

	addr, err := cfg.Server.Addr()
	if err != nil {
		logger.Log.Errorf("invalid listen address: %v", err)
		os.Exit(1)
	}

	startServer(ctx, addr, router)
}

func startServer(ctx context.Context, addr string, router http.Handler) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Log.Infof("Casa Decoração chat backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Log.Errorf("server error: %v", err)
		os.Exit(1)
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
