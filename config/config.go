package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"aathoos-core/database"
	"aathoos-core/validator"

	"github.com/joho/godotenv"
)

// Config is read from AATHOOS_* environment variables, optionally seeded
// from dotenv files.
type Config struct {
	Env           string
	LogLevel      string
	LogFormat     string
	JournalMode   string
	BusyTimeoutMS int
}

// Load reads the given dotenv files (missing files are ignored) and then
// the process environment. Variables already set in the environment win.
func Load(files ...string) *Config {
	for _, file := range files {
		if file == "" {
			continue
		}
		_ = godotenv.Load(file)
	}

	env := GetEnv("AATHOOS_ENV", "production")

	defaultFormat := "text"
	if env == "production" {
		defaultFormat = "json"
	}

	// Unknown journal modes fall back to the default rather than reaching the PRAGMA.
	journalMode := strings.ToUpper(GetEnv("AATHOOS_JOURNAL_MODE", database.DefaultOptions.JournalMode))
	if err := validator.Default().Var(journalMode, "oneof="+database.JournalModes); err != nil {
		journalMode = database.DefaultOptions.JournalMode
	}

	return &Config{
		Env:           env,
		LogLevel:      GetEnv("AATHOOS_LOG_LEVEL", "warn"),
		LogFormat:     GetEnv("AATHOOS_LOG_FORMAT", defaultFormat),
		JournalMode:   journalMode,
		BusyTimeoutMS: GetEnvInt("AATHOOS_BUSY_TIMEOUT_MS", database.DefaultOptions.BusyTimeoutMS),
	}
}

// StoreOptions returns the options used when opening a store.
func (c *Config) StoreOptions() database.Options {
	return database.Options{
		JournalMode:   c.JournalMode,
		BusyTimeoutMS: c.BusyTimeoutMS,
	}
}

// NewLogger builds the slog logger. Output goes to w (stderr when nil),
// since stdout belongs to the host application.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     c.level(),
		AddSource: c.Env == "development",
	}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func (c *Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
