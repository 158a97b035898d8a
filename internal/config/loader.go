package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. KARA_DATABASE_PASSWORD.
const EnvPrefix = "KARA"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// WithConfigFile pins the configuration file instead of searching for kara.yaml.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// ConfigFileUsed returns the file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file (./kara.yaml or ~/.kara/kara.yaml)
// 3. Override with KARA_* environment variables
func (l *Loader) Load() (*Config, error) {
	setDefaults(l.v, NewConfig())

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("kara")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("$HOME/.kara")
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(cfg)
		cfg.normalize()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDriver       *string
	DBDSN          *string
	DisplayFormat  *string
	GeneratorModel *string
	Verbose        *bool
}

func (o *ConfigOverrides) apply(cfg *Config) {
	if o.DBDriver != nil {
		cfg.Database.Driver = *o.DBDriver
	}
	if o.DBDSN != nil {
		cfg.Database.DSN = *o.DBDSN
	}
	if o.DisplayFormat != nil {
		cfg.Display.Format = *o.DisplayFormat
	}
	if o.GeneratorModel != nil {
		cfg.Generator.Model = *o.GeneratorModel
	}
	if o.Verbose != nil {
		cfg.Application.Verbose = *o.Verbose
	}
}

// normalize lower-cases the enumerated settings so "SQLite" and "sqlite" agree.
func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Display.Format = strings.ToLower(strings.TrimSpace(c.Display.Format))
	c.Application.LogFormat = strings.ToLower(strings.TrimSpace(c.Application.LogFormat))
}

// setDefaults registers every key with viper; AutomaticEnv only resolves known keys.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.query_timeout", d.Database.QueryTimeout)
	v.SetDefault("database.ensure_schema", d.Database.EnsureSchema)

	v.SetDefault("generator.enabled", d.Generator.Enabled)
	v.SetDefault("generator.command", d.Generator.Command)
	v.SetDefault("generator.model", d.Generator.Model)
	v.SetDefault("generator.persona", d.Generator.Persona)
	v.SetDefault("generator.blocked_phrases", d.Generator.BlockedPhrases)
	v.SetDefault("generator.fallback", d.Generator.Fallback)
	v.SetDefault("generator.timeout", d.Generator.Timeout)

	v.SetDefault("display.format", d.Display.Format)
	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.column_width", d.Display.ColumnWidth)
	v.SetDefault("display.describe_projects", d.Display.DescribeProjects)

	v.SetDefault("application.verbose", d.Application.Verbose)
	v.SetDefault("application.log_format", d.Application.LogFormat)
}
