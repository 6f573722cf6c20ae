// Package config loads server configuration from an optional YAML file with
// environment-variable overrides (prefix MINIONS_). All fields have working
// defaults so the server runs with no file present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// ServerConfig controls the websocket host.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// GameConfig holds per-game defaults and limits.
type GameConfig struct {
	DefaultMap string `mapstructure:"default_map"`
	// MaxGames bounds the number of live boards one server keeps; 0 means
	// unlimited.
	MaxGames int `mapstructure:"max_games"`
}

// Load reads configuration from path. An empty path or a missing file yields
// the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("game.default_map", "blackacre")
	v.SetDefault("game.max_games", 0)

	v.SetEnvPrefix("MINIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
