// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"code.hybscloud.com/capa/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CAPA_COUNTER_CONFIG", "")

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://crux-counter.fly.dev", c.Server.URL)
	assert.Equal(t, 10*time.Second, c.Server.Timeout)
	assert.Equal(t, "info", c.Log.Level)
	assert.False(t, c.UI.Headless)
	assert.True(t, c.UI.Watch)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "counter.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
url = "http://localhost:8080"
timeout = "2s"

[log]
level = "debug"
development = true

[ui]
headless = true
`), 0o600))
	t.Setenv("CAPA_COUNTER_CONFIG", path)

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.Server.URL)
	assert.Equal(t, 2*time.Second, c.Server.Timeout)
	assert.Equal(t, "debug", c.Log.Level)
	assert.True(t, c.Log.Development)
	assert.True(t, c.UI.Headless)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CAPA_COUNTER_CONFIG", "")
	t.Setenv("CAPA_COUNTER_SERVER_URL", "http://env.test")
	t.Setenv("CAPA_COUNTER_LOG_LEVEL", "warn")

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.test", c.Server.URL)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CAPA_COUNTER_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err := config.Load()
	assert.Error(t, err)
}
