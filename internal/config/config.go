// Package config holds the run configuration for the catalog ETL and the
// logger construction. Configuration comes from an optional config.yaml,
// CATALOGETL_-prefixed environment variables, and defaults, in that
// precedence order; CLI flags override on top in cmd.
package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config is the full run configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Warehouse WarehouseConfig `yaml:"warehouse" mapstructure:"warehouse"`
	Artifacts ArtifactsConfig `yaml:"artifacts" mapstructure:"artifacts"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects where the raw export comes from.
type SourceConfig struct {
	// Kind is "s3" or "file".
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Bucket and Key address the object for the s3 kind.
	Bucket string `yaml:"bucket" mapstructure:"bucket"`
	Key    string `yaml:"key" mapstructure:"key"`
	Region string `yaml:"region" mapstructure:"region"`

	// Path is the local file for the file kind.
	Path string `yaml:"path" mapstructure:"path"`
}

// WarehouseConfig addresses the load target.
type WarehouseConfig struct {
	// Kind is "postgres" or "sqlite".
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Connection parameters for the postgres kind. Password is never
	// logged.
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Database string `yaml:"database" mapstructure:"database"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`

	// DSN is used verbatim for the sqlite kind (a file path).
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// Table is the destination table name, optionally schema-qualified.
	Table string `yaml:"table" mapstructure:"table"`
}

// ArtifactsConfig configures the local snapshot directory.
type ArtifactsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// MetricsConfig configures the optional Pushgateway recorder.
type MetricsConfig struct {
	// Backend is "pushgateway" or "none".
	Backend    string `yaml:"backend" mapstructure:"backend"`
	GatewayURL string `yaml:"gateway_url" mapstructure:"gateway_url"`
	Job        string `yaml:"job" mapstructure:"job"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	// Dir is where the dated log file goes; empty disables the file core.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// Load reads configuration from the given YAML file, the environment, and
// defaults. An empty path falls back to config.yaml in the working
// directory; a missing fallback file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CATALOGETL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("source.kind", "s3")
	v.SetDefault("source.region", "us-east-1")
	v.SetDefault("source.bucket", "")
	v.SetDefault("source.key", "")
	v.SetDefault("source.path", "")
	v.SetDefault("warehouse.kind", "postgres")
	v.SetDefault("warehouse.host", "")
	v.SetDefault("warehouse.port", 5439)
	v.SetDefault("warehouse.database", "")
	v.SetDefault("warehouse.user", "")
	v.SetDefault("warehouse.password", "")
	v.SetDefault("warehouse.dsn", "")
	v.SetDefault("warehouse.table", "")
	v.SetDefault("artifacts.dir", "artifacts")
	v.SetDefault("metrics.backend", "none")
	v.SetDefault("metrics.gateway_url", "")
	v.SetDefault("metrics.job", "catalog_etl")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "logs")

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// DSNString composes the warehouse connection string. For postgres it is built
// from the host/port/database/user credentials; for sqlite the configured
// DSN is returned verbatim.
func (w WarehouseConfig) DSNString() string {
	if w.Kind == "sqlite" {
		return w.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", w.User, w.Password, w.Host, w.Port, w.Database)
}
