package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for Kara
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database" yaml:"database"`
	Generator   GeneratorConfig   `mapstructure:"generator" yaml:"generator"`
	Display     DisplayConfig     `mapstructure:"display" yaml:"display"`
	Application ApplicationConfig `mapstructure:"application" yaml:"application"`
}

// DatabaseConfig selects the dialect and how to reach the ProjectTasks database.
// DSN, when set, wins over the individual connection fields.
type DatabaseConfig struct {
	Driver       string        `mapstructure:"driver" yaml:"driver"`
	Host         string        `mapstructure:"host" yaml:"host"`
	Port         int           `mapstructure:"port" yaml:"port"`
	User         string        `mapstructure:"user" yaml:"user"`
	Password     string        `mapstructure:"password" yaml:"password"`
	Name         string        `mapstructure:"name" yaml:"name"`
	Path         string        `mapstructure:"path" yaml:"path"`
	DSN          string        `mapstructure:"dsn" yaml:"dsn"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
	EnsureSchema bool          `mapstructure:"ensure_schema" yaml:"ensure_schema"`
}

// GeneratorConfig describes the local text-generation command.
// A zero Timeout means the call is not bounded.
type GeneratorConfig struct {
	Enabled        bool          `mapstructure:"enabled" yaml:"enabled"`
	Command        string        `mapstructure:"command" yaml:"command"`
	Model          string        `mapstructure:"model" yaml:"model"`
	Persona        string        `mapstructure:"persona" yaml:"persona"`
	BlockedPhrases []string      `mapstructure:"blocked_phrases" yaml:"blocked_phrases"`
	Fallback       string        `mapstructure:"fallback" yaml:"fallback"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DisplayConfig controls how query results are printed
type DisplayConfig struct {
	Format           string `mapstructure:"format" yaml:"format"`
	Width            int    `mapstructure:"width" yaml:"width"`
	ColumnWidth      int    `mapstructure:"column_width" yaml:"column_width"`
	DescribeProjects bool   `mapstructure:"describe_projects" yaml:"describe_projects"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose   bool   `mapstructure:"verbose" yaml:"verbose"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Supported values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	FormatPlain = "plain"
	FormatTable = "table"

	DefaultPersona = "You are Kara, a project management assistant. Keep the response brief and friendly. " +
		"Never mention being an AI, Phi, or language model."
	DefaultFallback = "Hi! Ready to help with your projects!"
)

// DefaultBlockedPhrases are dropped from generated text, matched case-insensitively.
var DefaultBlockedPhrases = []string{"phi", "ai", "language model", "artificial", "failed to get console mode"}

// NewConfig creates a configuration populated with defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Driver: DriverMySQL,
			Host:   "127.0.0.1",
			User:   "root",
			Name:   "ProjectManagement",
			Path:   filepath.Join(homeDir, ".kara", "kara.db"),
		},
		Generator: GeneratorConfig{
			Enabled:        true,
			Command:        "ollama",
			Model:          "phi3.5",
			Persona:        DefaultPersona,
			BlockedPhrases: append([]string(nil), DefaultBlockedPhrases...),
			Fallback:       DefaultFallback,
		},
		Display: DisplayConfig{
			Format:      FormatPlain,
			Width:       100,
			ColumnWidth: 20,
		},
		Application: ApplicationConfig{
			LogFormat: "console",
		},
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.Database.Password != "" {
		out.Database.Password = "********"
	}
	if out.Database.DSN != "" {
		out.Database.DSN = "********"
	}
	return out
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" && c.Database.DSN == "" {
			return &ConfigError{Field: "database.path", Message: "sqlite needs a database path or dsn"}
		}
	case DriverPostgres, DriverMySQL:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return &ConfigError{Field: "database.host", Message: "database host cannot be empty"}
		}
		if c.Database.DSN == "" && c.Database.Name == "" {
			return &ConfigError{Field: "database.name", Message: "database name cannot be empty"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: "driver must be one of sqlite, postgres, mysql"}
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return &ConfigError{Field: "database.port", Message: "port must be between 0 and 65535"}
	}
	if c.Database.QueryTimeout < 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout cannot be negative"}
	}

	if c.Generator.Enabled {
		if c.Generator.Command == "" {
			return &ConfigError{Field: "generator.command", Message: "generator command cannot be empty"}
		}
		if c.Generator.Model == "" {
			return &ConfigError{Field: "generator.model", Message: "generator model cannot be empty"}
		}
	}
	if c.Generator.Fallback == "" {
		return &ConfigError{Field: "generator.fallback", Message: "fallback sentence cannot be empty"}
	}
	if c.Generator.Timeout < 0 {
		return &ConfigError{Field: "generator.timeout", Message: "generator timeout cannot be negative"}
	}

	if c.Display.Format != FormatPlain && c.Display.Format != FormatTable {
		return &ConfigError{Field: "display.format", Message: "format must be plain or table"}
	}
	if c.Display.Width < 20 {
		return &ConfigError{Field: "display.width", Message: "width must be at least 20"}
	}
	if c.Display.ColumnWidth < 1 {
		return &ConfigError{Field: "display.column_width", Message: "column width must be positive"}
	}

	if c.Application.LogFormat != "console" && c.Application.LogFormat != "json" {
		return &ConfigError{Field: "application.log_format", Message: "log format must be console or json"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
