package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kara.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoader_Load_DefaultsWithoutFile(t *testing.T) {
	isolateHome(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "phi3.5", cfg.Generator.Model)
	assert.Equal(t, DefaultBlockedPhrases, cfg.Generator.BlockedPhrases)
}

func TestLoader_Load_FromFile(t *testing.T) {
	isolateHome(t)
	path := writeConfigFile(t, `
database:
  driver: sqlite
  path: /tmp/kara-test.db
  ensure_schema: true
  query_timeout: 3s
generator:
  model: llama3
  timeout: 45s
  blocked_phrases:
    - robot
display:
  format: table
  describe_projects: true
`)

	loader := NewLoader().WithConfigFile(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, path, loader.ConfigFileUsed())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/kara-test.db", cfg.Database.Path)
	assert.True(t, cfg.Database.EnsureSchema)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "llama3", cfg.Generator.Model)
	assert.Equal(t, 45*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, []string{"robot"}, cfg.Generator.BlockedPhrases)
	assert.Equal(t, "ollama", cfg.Generator.Command)
	assert.Equal(t, FormatTable, cfg.Display.Format)
	assert.True(t, cfg.Display.DescribeProjects)
	assert.Equal(t, 100, cfg.Display.Width)
}

func TestLoader_Load_EnvironmentOverridesFile(t *testing.T) {
	isolateHome(t)
	path := writeConfigFile(t, `
database:
  user: file-user
  password: from-file
`)
	t.Setenv("KARA_DATABASE_PASSWORD", "from-env")
	t.Setenv("KARA_GENERATOR_ENABLED", "false")

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "file-user", cfg.Database.User)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.False(t, cfg.Generator.Enabled)
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	isolateHome(t)

	_, err := NewLoader().WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	assert.Error(t, err)
}

func TestLoader_Load_InvalidValue(t *testing.T) {
	isolateHome(t)
	path := writeConfigFile(t, "display:\n  format: html\n")

	_, err := NewLoader().WithConfigFile(path).Load()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "display.format", cfgErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	isolateHome(t)
	driver := DriverPostgres
	dsn := "postgres://kara@localhost/ProjectManagement"
	format := FormatTable
	verbose := true

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		DBDriver:      &driver,
		DBDSN:         &dsn,
		DisplayFormat: &format,
		Verbose:       &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, dsn, cfg.Database.DSN)
	assert.Equal(t, FormatTable, cfg.Display.Format)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "phi3.5", cfg.Generator.Model)
}

func TestLoader_LoadWithOverrides_RejectsInvalidOverride(t *testing.T) {
	isolateHome(t)
	driver := "oracle"

	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{DBDriver: &driver})
	assert.Error(t, err)
}

func TestLoader_DriverNameIsCaseInsensitive(t *testing.T) {
	isolateHome(t)
	t.Setenv("KARA_DATABASE_DRIVER", "SQLite")
	t.Setenv("KARA_DISPLAY_FORMAT", "Table")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, FormatTable, cfg.Display.Format)

	driver := " MySQL "
	cfg, err = NewLoader().LoadWithOverrides(&ConfigOverrides{DBDriver: &driver})
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
}
