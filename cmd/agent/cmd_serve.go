package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/connect4-agent/internal/repository/redis"
	"github.com/iamasit07/connect4-agent/internal/service/bot"
	"github.com/iamasit07/connect4-agent/internal/service/cleanup"
	"github.com/iamasit07/connect4-agent/internal/service/decision"
	transportHttp "github.com/iamasit07/connect4-agent/internal/transport/http"
	"github.com/iamasit07/connect4-agent/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-agent/internal/transport/websocket"
)

const (
	shutdownTimeout      = 30 * time.Second
	limiterPruneInterval = 5 * time.Minute
	limiterMaxIdle       = 10 * time.Minute
)

func runServe(cmd *cobra.Command, _ []string) error {
	if cfg.Strategy == bot.StrategyHuman {
		return fmt.Errorf("%w: the server cannot use the human strategy", bot.ErrUnknownStrategy)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	search, err := cfg.Search()
	if err != nil {
		return err
	}
	agent, release, err := newAgent(cfg.Strategy, search, time.Now().UnixNano())
	if err != nil {
		return err
	}
	defer release()

	svc := decision.NewService(agent, cfg.BoardRows, cfg.BoardColumns)

	limiter, local, closeRedis := newLimiter(ctx)
	defer closeRedis()

	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, svc, cfg.AllowedOrigins)

	router := transportHttp.NewRouter(svc, transportHttp.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		Limiter:        limiter,
		WebSocket:      wsHandler.HandleWebSocket,
	})
	if cfg.JWTSecret == "" {
		log.Warn().Str("component", "server").Msg("JWT_SECRET is empty, API is unauthenticated")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if local != nil {
		g.Go(func() error {
			return cleanup.NewWorker("rate limiter", local, limiterPruneInterval, limiterMaxIdle).Run(gctx)
		})
	}
	g.Go(func() error {
		log.Info().Str("component", "server").Str("addr", srv.Addr).
			Str("agent", agent.Name()).Int("depth", search.Depth).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Str("component", "server").Msg("server is shutting down")

		// hijacked websocket connections are not tracked by Shutdown
		connManager.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Str("component", "server").Msg("server exited gracefully")
	return nil
}

// newLimiter prefers the shared Redis counter and falls back to an
// in-process limiter when Redis is not configured or unreachable.
func newLimiter(ctx context.Context) (middleware.Limiter, *middleware.LocalLimiter, func()) {
	if cfg.RateLimitPerMinute <= 0 {
		return nil, nil, func() {}
	}
	local := middleware.NewLocalLimiter(cfg.RateLimitPerMinute)
	if cfg.RedisURL == "" {
		return local, local, func() {}
	}

	client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Warn().Str("component", "redis").Err(err).Msg("redis unavailable, rate limiting in process")
		return local, local, func() {}
	}
	shared := middleware.FallbackLimiter{
		Shared: client.RateCounter(cfg.RateLimitPerMinute, time.Minute),
		Local:  local,
	}
	return shared, local, func() { client.Close() }
}
