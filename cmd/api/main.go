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
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/querydesk/backend/internal/config"
	"github.com/zhouzirui/querydesk/backend/internal/handler"
	"github.com/zhouzirui/querydesk/backend/internal/logging"
	"github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	"github.com/zhouzirui/querydesk/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logging.Setup(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}
	if envErr != nil {
		log.Warn().Err(envErr).Msg("continuing with system environment variables only")
	}

	chatOpts := []chat.Option{
		chat.WithCapacity(cfg.Chat.HistoryLimit),
		chat.WithDelay(chat.UniformDelay(cfg.Chat.ResponseDelayMin, cfg.Chat.ResponseDelayMax)),
	}
	log.Info().
		Int("history_limit", cfg.Chat.HistoryLimit).
		Dur("delay_min", cfg.Chat.ResponseDelayMin).
		Dur("delay_max", cfg.Chat.ResponseDelayMax).
		Msg("chat controller options loaded")

	router := handler.NewRouter(assistant.Default(), cfg.Server.AllowedOrigins, chatOpts...)

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

	log.Info().Str("addr", addr).Msg("QueryDesk backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
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
