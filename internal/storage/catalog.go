package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

type demoSource struct{ today time.Time }

func (d demoSource) LoadCatalog(context.Context) (domain.Catalog, error) {
	return memory.DemoCatalog(d.today), nil
}

// Open loads the catalog into a fresh in-memory store. The source is MySQL when dsn is set, the
// YAML seed file when seedFile is set, and the built-in demo catalog otherwise.
func Open(ctx context.Context, dsn, seedFile string, today time.Time) (*memory.Store, error) {
	var (
		src  domain.CatalogSource
		kind string
	)
	switch {
	case dsn != "":
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("db.Ping: %w", err)
		}
		src, kind = mysqlrepo.New(db), "mysql"
	case seedFile != "":
		src, kind = memory.SeedFile{Path: seedFile}, "seed_file"
	default:
		src, kind = demoSource{today: today}, "demo"
	}

	c, err := src.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", kind, err)
	}
	st, err := memory.NewFromCatalog(c)
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", kind, err)
	}
	log.Info().
		Str("source", kind).
		Int("hotels", len(c.Hotels)).
		Int("rooms", len(c.Rooms)).
		Int("people", len(c.People)).
		Msg("catalog loaded")
	return st, nil
}
