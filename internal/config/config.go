// Package config loads perevod settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/perevod/internal/translator"
)

type Config struct {
	Azure  translator.AzureConfig `mapstructure:"azure"`
	Server ServerConfig           `mapstructure:"server"`
	Log    LogConfig              `mapstructure:"log"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	NoColor bool   `mapstructure:"no_color"`
}

// envBindings maps config keys to the environment variables they are read from.
var envBindings = map[string]string{
	"azure.api_key":          "AZURE_TEXT_TRANSLATION_APIKEY",
	"azure.endpoint":         "AZURE_TEXT_TRANSLATION_ENDPOINT",
	"azure.region":           "AZURE_TEXT_TRANSLATION_REGION",
	"server.addr":            "PEREVOD_ADDR",
	"server.allowed_origins": "PEREVOD_ALLOWED_ORIGINS",
	"log.level":              "PEREVOD_LOG_LEVEL",
	"log.no_color":           "PEREVOD_LOG_NO_COLOR",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("azure.endpoint", translator.DefaultAzureEndpoint)
	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.no_color", false)
}

// LoadDotEnv reads KEY=VALUE pairs from the given files into the process
// environment. Variables already set are left alone and missing files are
// skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load binds the environment and decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)
	if cfg.Server.Addr == "" {
		return nil, fmt.Errorf("server address must not be empty")
	}

	return &cfg, nil
}

// splitOrigins flattens comma separated entries that come from a single
// environment variable.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
