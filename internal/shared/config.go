package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	SessionTTL  time.Duration

	// catalog sources, first non-empty wins: MySQL, then YAML seed file, then built-in demo data
	MySQLDSN string
	SeedFile string

	SearchBase     string
	SearchKey      string
	SearchIndex    string
	SearchRPS      int
	IndexWorkers   int
	FunctionConc   int
	FunctionRPS    int
	RequestTimeout time.Duration
}

func Load() Config {
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SessionTTL:     time.Duration(atoi("SESSION_TTL_SECONDS", 3600)) * time.Second,
		MySQLDSN:       env("MYSQL_DSN", ""),
		SeedFile:       env("SEED_FILE", ""),
		SearchBase:     env("SEARCH_BASE_URL", ""),
		SearchKey:      env("SEARCH_API_KEY", ""),
		SearchIndex:    env("SEARCH_INDEX", "hotels"),
		SearchRPS:      atoi("SEARCH_RPS", 5),
		IndexWorkers:   atoi("INDEX_WORKERS", 4),
		FunctionConc:   atoi("FUNCTION_CONCURRENCY", 4),
		FunctionRPS:    atoi("FUNCTION_RPS", 20),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if c.SearchBase != "" && c.SearchKey == "" {
		log.Warn().Msg("SEARCH_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
