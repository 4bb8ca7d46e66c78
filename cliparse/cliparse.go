package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the session store
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// DefaultOrigins are the local frontend dev servers
const DefaultOrigins = "http://localhost:3000,http://localhost:5173"

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	RoutesFile    string
	EnvFile       string

	// AllowedOrigins are the frontends allowed credentialed CORS calls
	AllowedOrigins []string

	SessionTTL       time.Duration
	NoticeTTL        time.Duration
	SubmitTimeout    time.Duration
	WorkspaceTTL     time.Duration
	SimulatedLatency time.Duration
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fset := flag.NewFlagSet("baraza", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (DSN, postgres URL or redis URL)")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Storage type (memory, sqlite, postgres or redis)")
	fset.StringVar(&cfg.RoutesFile, "routes", "", "YAML route table (default: built-in)")
	fset.StringVar(&cfg.EnvFile, "env", ".env", "dotenv file to load if present")
	var origins string
	fset.StringVar(&origins, "origins", "", "Comma-separated frontend origins allowed by CORS")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token signing secret (prefer env)")

	// Timings
	fset.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session token lifetime")
	fset.DurationVar(&cfg.NoticeTTL, "notice-ttl", 0, "How long notifications stay visible")
	fset.DurationVar(&cfg.SubmitTimeout, "submit-timeout", 0, "Form submission timeout")
	fset.DurationVar(&cfg.WorkspaceTTL, "workspace-ttl", 0, "How long an idle client workspace is kept")
	fset.DurationVar(&cfg.SimulatedLatency, "latency", -1, "Simulated backend latency")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables already set in the environment
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StorageSQLite
		}
	}
	switch cfg.DatabaseType {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageRedis:
	default:
		return Config{}, fmt.Errorf("unknown storage type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case StorageSQLite:
			cfg.DatabaseURL = "file:baraza.db"
		case StorageMemory:
		default:
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.RoutesFile == "" {
		cfg.RoutesFile = os.Getenv("ROUTES_FILE")
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	if origins == "" {
		origins = DefaultOrigins
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	var err error
	if cfg.SessionTTL, err = durationFallback(cfg.SessionTTL, "SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.NoticeTTL, err = durationFallback(cfg.NoticeTTL, "NOTICE_TTL", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SubmitTimeout, err = durationFallback(cfg.SubmitTimeout, "SUBMIT_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WorkspaceTTL, err = durationFallback(cfg.WorkspaceTTL, "WORKSPACE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}

	// Zero latency is meaningful, so the flag uses -1 as "unset"
	if cfg.SimulatedLatency < 0 {
		if val := os.Getenv("SIMULATED_LATENCY"); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil || d < 0 {
				return Config{}, errors.New("invalid SIMULATED_LATENCY env variable")
			}
			cfg.SimulatedLatency = d
		} else {
			cfg.SimulatedLatency = 1500 * time.Millisecond
		}
	}

	return cfg, nil
}

func durationFallback(current time.Duration, key string, fallback time.Duration) (time.Duration, error) {
	if current > 0 {
		return current, nil
	}
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
