package main

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/searchindex"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "indexer")
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	log.Info().
		Str("base", cfg.SearchBase).
		Str("index", cfg.SearchIndex).
		Int("workers", cfg.IndexWorkers).
		Msg("indexer starting")

	st, err := storage.Open(ctx, cfg.MySQLDSN, cfg.SeedFile, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}

	client, err := searchindex.New(cfg.SearchBase, cfg.SearchIndex, cfg.SearchKey, cfg.SearchRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize search index client")
	}

	svc := app.NewServices(st, nil, cfg.CacheTTL)
	idx := app.NewIndexingService(svc.Hotels, svc.Rooms, svc.Reviews, client)

	hotels, err := svc.Hotels.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list hotels failed")
	}

	sem := semaphore.NewWeighted(int64(max(cfg.IndexWorkers, 1)))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, h := range hotels {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := idx.IndexHotel(ctx, hotelID); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", hotelID).Err(err).Msg("index failed")
				return
			}
			log.Info().Int64("id", hotelID).Msg("index ok")
		}(h.ID)
	}

	wg.Wait()
	log.Info().Int("hotels", len(hotels)).Int32("failed", failed.Load()).Msg("indexing completed")
	if failed.Load() > 0 {
		log.Fatal().Msg("some hotels were not indexed")
	}
}
