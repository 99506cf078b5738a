package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/functions"
	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	st, err := storage.Open(ctx, cfg.MySQLDSN, cfg.SeedFile, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}

	// redis backs both the read cache and chat sessions
	rc := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	defer rc.Close()
	cache := redisad.NewFromClient(rc)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; cache misses will fall through")
	}

	svc := app.NewServices(st, cache, cfg.CacheTTL)
	funcs := functions.NewRegistry(svc, int64(cfg.FunctionConc), log.Logger)

	// http
	srv := server.New(cfg.RequestTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Svc:       svc,
		Funcs:     funcs,
		Sessions:  redisad.NewSessions(rc, cfg.SessionTTL),
		FuncLimit: rate.NewLimiter(rate.Limit(cfg.FunctionRPS), cfg.FunctionRPS),
	})
	observability.Serve(cfg.MetricsAddr, reg)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
