// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the counter shell configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CAPA_COUNTER_SERVER_URL.
const EnvPrefix = "CAPA_COUNTER"

// Config holds the shell configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	UI     UIConfig
}

// ServerConfig holds the counter server settings.
type ServerConfig struct {
	URL     string
	Timeout time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string
	Development bool
	File        string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Headless bool
	Watch    bool
}

// Load reads configuration from file and env. The file is taken from
// CAPA_COUNTER_CONFIG, or ~/.config/capa-counter/config.toml when present.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.url", "https://crux-counter.fly.dev")
	v.SetDefault("server.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("ui.headless", false)
	v.SetDefault("ui.watch", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(EnvPrefix + "_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "capa-counter"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Server.URL == "" {
		return Config{}, fmt.Errorf("config: server.url is empty")
	}
	return c, nil
}
