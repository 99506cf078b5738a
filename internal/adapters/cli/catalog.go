package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the MySQL catalog the API loads at start-up",
	}
	cmd.AddCommand(newCatalogImportCmd())
	return cmd
}

// catalogImporter is satisfied by the MySQL repo.
type catalogImporter interface {
	ImportCatalog(ctx context.Context, c domain.Catalog) error
}

func importCatalog(ctx context.Context, dst catalogImporter, file string, today time.Time) (domain.Catalog, error) {
	if file == "" {
		c := memory.DemoCatalog(today)
		return c, dst.ImportCatalog(ctx, c)
	}
	c, err := memory.SeedFile{Path: file}.LoadCatalog(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	// resolve cross references before touching the database
	if _, err := memory.NewFromCatalog(c); err != nil {
		return domain.Catalog{}, err
	}
	return c, dst.ImportCatalog(ctx, c)
}

func newCatalogImportCmd() *cobra.Command {
	var (
		file string
		dsn  string
	)

	c := &cobra.Command{
		Use:   "import",
		Short: "Upsert a YAML seed file (or the demo catalog) into MySQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("MYSQL_DSN")
			}
			if dsn == "" {
				return fmt.Errorf("--dsn or MYSQL_DSN is required")
			}
			ctx := cmd.Context()
			db, err := sql.Open("mysql", dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("db.Ping: %w", err)
			}

			cat, err := importCatalog(ctx, mysqlrepo.New(db), file, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported hotels=%d rooms=%d people=%d holds=%d reviews=%d\n",
				len(cat.Hotels), len(cat.Rooms), len(cat.People), len(cat.Availability), len(cat.Reviews))
			return nil
		},
	}
	c.Flags().StringVar(&file, "file", "", "YAML seed file; the demo catalog when empty")
	c.Flags().StringVar(&dsn, "dsn", "", "MySQL DSN (env MYSQL_DSN), needs parseTime=true")
	return c
}
