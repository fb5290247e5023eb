package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		// Given: a path that does not exist
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: loading the config
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the defaults are used
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, DriverFile, conf.Storage.Driver)
		assert.Equal(t, "tictactoe:state", conf.Storage.Key)
		assert.NotEmpty(t, conf.Storage.Dir)
		assert.Equal(t, filepath.Join(conf.Storage.Dir, "state.db"), conf.Storage.SQLitePath)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Values from file", func(t *testing.T) {
		// Given: a config file selecting redis
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yml")
		content := `
log-level: debug
http-port: "8000"
storage:
  driver: redis
  key: "game:main"
  dir: /tmp/tictactoe
redis:
  host: cache
  port: "6380"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading the config
		conf, err := Load(path)
		require.NoError(t, err)

		// Then: the file values win over the defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8000", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
		assert.Equal(t, "game:main", conf.Storage.Key)
		assert.Equal(t, "/tmp/tictactoe/state.db", conf.Storage.SQLitePath)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Unknown driver", func(t *testing.T) {
		// Given: a config file with an unsupported driver
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: mongo\n"), 0o600))

		// When: loading the config
		_, err := Load(path)

		// Then: ErrUnknownDriver is returned
		require.ErrorIs(t, err, ErrUnknownDriver)
	})
}

func TestMustLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: mongo\n"), 0o600))

	assert.Panics(t, func() { MustLoad(path) })
}
