package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"kara/internal/config"
)

// StartFunc opens whatever the session needs and runs it.
type StartFunc func(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	start      StartFunc
	config     *config.Config
	configFile string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(start StartFunc) *RootCommand {
	root := &RootCommand{start: start}

	root.cmd = &cobra.Command{
		Use:   "kara",
		Short: "Kara, a project management assistant for your terminal",
		Long: `Kara is an interactive assistant over the ProjectTasks database.

Admins can run canned reports or their own SQL; employees can log a
description and hours against one of their tasks. Kara adds a short
friendly remark using a local text-generation model when one is available.

EXAMPLES:
  kara                                     # Start a session
  kara --db-driver sqlite                  # Use the sqlite database from the config
  kara --format table                      # Render query results as a table
  kara config                              # Print the effective configuration

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > KARA_* environment variables > config file > defaults

  The config file is --config, else ./kara.yaml, else ~/.kara/kara.yaml.
  Every key can be set from the environment, for example:
    KARA_DATABASE_DRIVER                   sqlite, postgres or mysql (default: mysql)
    KARA_DATABASE_HOST                     Database host (default: 127.0.0.1)
    KARA_DATABASE_USER                     Database user (default: root)
    KARA_DATABASE_PASSWORD                 Database password
    KARA_DATABASE_NAME                     Database name (default: ProjectManagement)
    KARA_DATABASE_ENSURE_SCHEMA            Create ProjectTasks if missing (default: false)
    KARA_GENERATOR_ENABLED                 Use the text-generation command (default: true)
    KARA_GENERATOR_MODEL                   Model passed to the command (default: phi3.5)
    KARA_DISPLAY_FORMAT                    plain or table (default: plain)
    KARA_DEBUG                             Log at debug level to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.start(cmd.Context(), root.config, cmd.InOrStdin(), cmd.OutOrStdout())
		},
		Args: cobra.NoArgs,
	}

	root.addGlobalFlags()
	root.cmd.AddCommand(newConfigCommand(root))

	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Config returns the configuration loaded for the current invocation.
func (r *RootCommand) Config() *config.Config {
	return r.config
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "Config file (default ./kara.yaml or ~/.kara/kara.yaml)")
	flags.String("db-driver", "", "Database driver: sqlite, postgres or mysql (overrides KARA_DATABASE_DRIVER)")
	flags.String("db-dsn", "", "Database DSN (overrides KARA_DATABASE_DSN)")
	flags.String("format", "", "Result format: plain or table (overrides KARA_DISPLAY_FORMAT)")
	flags.String("model", "", "Text-generation model (overrides KARA_GENERATOR_MODEL)")
	flags.BoolP("verbose", "v", false, "Log at debug level (overrides KARA_APPLICATION_VERBOSE)")
}

// loadConfig reads configuration and applies only the flags that were set.
func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if r.configFile != "" {
		loader = loader.WithConfigFile(r.configFile)
	}

	cfg, err := loader.LoadWithOverrides(overridesFromFlags(cmd.Flags()))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	r.config = cfg
	return nil
}

func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-driver") {
		v, _ := flags.GetString("db-driver")
		overrides.DBDriver = &v
	}
	if flags.Changed("db-dsn") {
		v, _ := flags.GetString("db-dsn")
		overrides.DBDSN = &v
	}
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		overrides.DisplayFormat = &v
	}
	if flags.Changed("model") {
		v, _ := flags.GetString("model")
		overrides.GeneratorModel = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	return overrides
}
