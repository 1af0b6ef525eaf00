// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Club data sources selectable with CLUB_SOURCE.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all configuration values for the CLI and API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"]. CORS_ORIGINS is comma-separated.
	CORSOrigins []string

	// ClubSource picks where club data is read from: builtin (embedded seed
	// directory), file (CLUB_DATA_FILE) or postgres (DATABASE_URL).
	ClubSource string

	// ClubDataFile is the YAML directory read when ClubSource is file.
	ClubDataFile string

	// DatabaseURL is the Postgres connection string. Required when
	// ClubSource is postgres, and by the migrate and import commands.
	DatabaseURL string

	// CatalogTTL is how long loaded club data is served before the source is
	// read again. 0 loads once. Defaults to 5m.
	CatalogTTL time.Duration

	// SuggestionLimit caps the instant-results panel. Defaults to 5.
	SuggestionLimit int

	// RelatedLimit is the default number of related clubs on a detail page.
	// Defaults to 3.
	RelatedLimit int

	// SuggestDebounce delays recomputing suggestions in the interactive
	// find command. Defaults to 200ms.
	SuggestDebounce time.Duration

	// MaxQueryBytes rejects longer query strings with 414. 0 disables the
	// check. Defaults to 2048.
	MaxQueryBytes int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every variable that is missing or malformed.
func Load() (Config, error) {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ClubSource:   strings.ToLower(getEnv("CLUB_SOURCE", SourceBuiltin)),
		ClubDataFile: os.Getenv("CLUB_DATA_FILE"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	var err error
	if cfg.CatalogTTL, err = getDuration("CATALOG_TTL", 5*time.Minute); err != nil {
		add("%v", err)
	}
	if cfg.SuggestDebounce, err = getDuration("SUGGEST_DEBOUNCE", 200*time.Millisecond); err != nil {
		add("%v", err)
	}
	if cfg.SuggestionLimit, err = getInt("SUGGESTION_LIMIT", 5, 1); err != nil {
		add("%v", err)
	}
	if cfg.RelatedLimit, err = getInt("RELATED_LIMIT", 3, 0); err != nil {
		add("%v", err)
	}
	if cfg.MaxQueryBytes, err = getInt("MAX_QUERY_BYTES", 2048, 0); err != nil {
		add("%v", err)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		add("LOG_LEVEL: unknown level %q", cfg.LogLevel)
	}

	switch cfg.ClubSource {
	case SourceBuiltin:
	case SourceFile:
		if cfg.ClubDataFile == "" {
			add("CLUB_DATA_FILE is required when CLUB_SOURCE=file")
		}
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			add("DATABASE_URL is required when CLUB_SOURCE=postgres")
		}
	default:
		add("CLUB_SOURCE: must be one of %s, %s, %s; got %q", SourceBuiltin, SourceFile, SourcePostgres, cfg.ClubSource)
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// SlogLevel returns LogLevel as a slog.Level, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// RequireDatabaseURL returns an error if DATABASE_URL is not set.
// Commands that always talk to Postgres call it after Load.
func (c Config) RequireDatabaseURL() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("required environment variables not set: DATABASE_URL")
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func getInt(key string, fallback, lowest int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lowest {
		return 0, fmt.Errorf("%s: expected an integer >= %d, got %q", key, lowest, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
