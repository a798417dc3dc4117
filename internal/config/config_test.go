package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/items-api/internal/config"
)

type testConfig struct {
	Log      config.Log
	Postgres config.Postgres
	HTTP     config.HTTP
	Kafka    config.Kafka
	Otel     config.Otel
}

func TestNew(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := config.New[testConfig]()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, 5432, cfg.Postgres.Port)
		assert.Equal(t, "postgres", cfg.Postgres.DB)
		assert.Equal(t, "disable", cfg.Postgres.SSLMode)
		assert.Equal(t, time.Hour, cfg.Postgres.MaxConnLifetime)
		assert.True(t, cfg.Postgres.AutoMigrate)
		assert.Equal(t, uint32(5000), cfg.HTTP.Port)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CorsAllowedOrigins)
		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.False(t, cfg.Kafka.Enabled())
		assert.Equal(t, 3*time.Second, cfg.Kafka.PublishTimeout)
		assert.Equal(t, "items-api", cfg.Otel.ServiceName)
		assert.Empty(t, cfg.Otel.CollectorURL)
	})

	t.Run("Should read environment variables", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("DB_USER", "items")
		t.Setenv("DB_PASS", "secret")
		t.Setenv("DB_NAME", "inventory")
		t.Setenv("PORT", "8080")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("KAFKA_ADDRESSES", "k1:9092,k2:9092")

		cfg, err := config.New[testConfig]()
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Postgres.Host)
		assert.Equal(t, 6543, cfg.Postgres.Port)
		assert.Equal(t, "items", cfg.Postgres.User)
		assert.Equal(t, "secret", cfg.Postgres.Password)
		assert.Equal(t, "inventory", cfg.Postgres.DB)
		assert.Equal(t, uint32(8080), cfg.HTTP.Port)
		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.True(t, cfg.Kafka.Enabled())
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Addresses)
	})

	t.Run("Should load .env file without overriding the environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		content := "DB_HOST=from-dotenv\nDB_NAME=from-dotenv\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.DotEnvFile), []byte(content), 0o600))
		t.Setenv("DB_NAME", "from-env")
		t.Cleanup(func() { os.Unsetenv("DB_HOST") })

		cfg, err := config.New[testConfig]()
		require.NoError(t, err)

		assert.Equal(t, "from-dotenv", cfg.Postgres.Host)
		assert.Equal(t, "from-env", cfg.Postgres.DB)
	})

	t.Run("Should fail on invalid values", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("LOG_FORMAT", "xml")

		_, err := config.New[testConfig]()
		assert.Error(t, err)
	})
}

func TestLogFormat(t *testing.T) {
	var f config.LogFormat
	require.NoError(t, f.UnmarshalText([]byte("Text")))
	assert.Equal(t, config.LogFormatText, f)

	b, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TEXT", string(b))
}

func TestParseLogFormat(t *testing.T) {
	f, err := config.ParseLogFormat(" json ")
	require.NoError(t, err)
	assert.Equal(t, config.LogFormatJSON, f)

	_, err = config.ParseLogFormat("xml")
	assert.ErrorContains(t, err, `unknown log format: "xml"`)

	assert.Equal(t, "LogFormat(7)", config.LogFormat(7).String())
}
