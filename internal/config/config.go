// Package config loads chargen settings from the environment
package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/chargen/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "CHARGEN_"

// Storage backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds process settings. Field tags name the variable without the
// CHARGEN_ prefix.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":5000"`
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`

	Store      string `env:"STORE" envDefault:"redis"`
	RedisURL   string `env:"REDIS_URL" envDefault:"localhost:6379"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"chargen.db"`

	// EquipmentFile overrides the embedded equipment table when set
	EquipmentFile string `env:"EQUIPMENT_FILE"`

	// BaseURL is the public address of the wizard, used for links printed by the CLI
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/chargen"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	TelemetryEnabled bool `env:"TELEMETRY_ENABLED" envDefault:"false"`
}

// Load reads the given .env files, if present, then the environment.
// Variables already set in the environment win over .env values.
func Load(dotEnvFiles ...string) (*Config, error) {
	if len(dotEnvFiles) == 0 {
		dotEnvFiles = []string{".env"}
	}
	for _, path := range dotEnvFiles {
		if err := godotenv.Load(path); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				slog.Debug("no dotenv file", "path", path)
				continue
			}
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read %s", path)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("store", c.Store, []string{StoreRedis, StoreSQLite}, vb)
	errors.ValidateEnum("log_format", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	errors.ValidateRequired("http_addr", c.HTTPAddr, vb)
	errors.ValidateRequired("grpc_addr", c.GRPCAddr, vb)

	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("redis_url", c.RedisURL, vb)
	case StoreSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}

// SlogLevel returns the configured log level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// PublicURL joins the base URL and a character key
func (c *Config) PublicURL(key string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + key
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
