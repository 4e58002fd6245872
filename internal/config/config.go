// Package config loads the service configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. VISION3_SERVER_ADDR.
	EnvPrefix = "VISION3"

	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "config.yaml"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	WS       WSConfig       `mapstructure:"ws"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

// WSConfig bounds what a single WebSocket client may send.
type WSConfig struct {
	MaxMessageBytes int64   `mapstructure:"max_message_bytes"`
	RateLimit       float64 `mapstructure:"rate_limit"` // frames per second; 0 disables limiting
	Burst           int     `mapstructure:"burst"`
}

type AnalysisConfig struct {
	Workers int `mapstructure:"workers"` // 0 uses GOMAXPROCS
}

// Load reads configuration from a YAML file, applying defaults and VISION3_*
// environment overrides. An empty path skips the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// New loads DefaultFile from the working directory when it exists. Otherwise only the
// defaults and environment overrides apply.
func New() (*Config, error) {
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Load("")
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.static_dir", d.Server.StaticDir)

	v.SetDefault("ws.max_message_bytes", d.WS.MaxMessageBytes)
	v.SetDefault("ws.rate_limit", d.WS.RateLimit)
	v.SetDefault("ws.burst", d.WS.Burst)

	v.SetDefault("analysis.workers", d.Analysis.Workers)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8000",
			Mode:         "debug",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		WS: WSConfig{
			MaxMessageBytes: 1 << 20,
			RateLimit:       30,
			Burst:           5,
		},
	}
}
