package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Schema struct {
		Source string `mapstructure:"source"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"schema"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig reads a YAML config file. An explicit path must exist; with an
// empty path, ./config.yaml is used when present and defaults apply
// otherwise.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":4547")
	v.SetDefault("schema.source", "sample")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SchemaCatalog builds the catalog named by the schema section: the built-in
// sample, a JSON schema file, or an introspected SQLite database.
func (c *Config) SchemaCatalog() (*catalog.Schema, error) {
	switch c.Schema.Source {
	case "", "sample":
		return catalog.Sample(), nil
	case "json":
		if c.Schema.Path == "" {
			return nil, errors.New("config: schema.path is required for schema.source=json")
		}
		return catalog.LoadFile(c.Schema.Path)
	case "sqlite":
		if c.Schema.Path == "" {
			return nil, errors.New("config: schema.path is required for schema.source=sqlite")
		}
		return catalog.OpenSQLite(c.Schema.Path)
	default:
		return nil, fmt.Errorf("config: unknown schema.source %q", c.Schema.Source)
	}
}

// LogLevel maps the configured level onto slog's scale. Unknown values fall
// back to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
