package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	noDotEnv string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.noDotEnv = filepath.Join(s.T().TempDir(), "missing.env")
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load(s.noDotEnv)
	s.Require().NoError(err)

	s.Equal(":5000", cfg.HTTPAddr)
	s.Equal(":50051", cfg.GRPCAddr)
	s.Equal(config.StoreRedis, cfg.Store)
	s.Equal("localhost:6379", cfg.RedisURL)
	s.Empty(cfg.EquipmentFile)
	s.Equal(slog.LevelInfo, cfg.SlogLevel())
	s.False(cfg.TelemetryEnabled)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("CHARGEN_STORE", "sqlite")
	s.T().Setenv("CHARGEN_SQLITE_PATH", "/tmp/chars.db")
	s.T().Setenv("CHARGEN_LOG_LEVEL", "debug")
	s.T().Setenv("CHARGEN_TELEMETRY_ENABLED", "true")

	cfg, err := config.Load(s.noDotEnv)
	s.Require().NoError(err)

	s.Equal(config.StoreSQLite, cfg.Store)
	s.Equal("/tmp/chars.db", cfg.SQLitePath)
	s.Equal(slog.LevelDebug, cfg.SlogLevel())
	s.True(cfg.TelemetryEnabled)
}

func (s *ConfigTestSuite) TestDotEnvFile() {
	path := filepath.Join(s.T().TempDir(), ".env")
	s.Require().NoError(os.WriteFile(path, []byte("CHARGEN_BASE_URL=https://example.test/chargen/\n"), 0o600))
	s.T().Cleanup(func() { _ = os.Unsetenv("CHARGEN_BASE_URL") })

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal("https://example.test/chargen/abc", cfg.PublicURL("abc"))
}

func (s *ConfigTestSuite) TestInvalidValues() {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "store", key: "CHARGEN_STORE", value: "postgres"},
		{name: "log format", key: "CHARGEN_LOG_FORMAT", value: "xml"},
		{name: "log level", key: "CHARGEN_LOG_LEVEL", value: "loud"},
		{name: "telemetry", key: "CHARGEN_TELEMETRY_ENABLED", value: "maybe"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.T().Setenv(tc.key, tc.value)

			_, err := config.Load(s.noDotEnv)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}
