// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/camt-recon/internal/config"
	"fjacquet/camt-recon/internal/container"
	"fjacquet/camt-recon/internal/logging"

	"github.com/spf13/cobra"
)

// Flags holds the persistent flag values shared by all commands
type Flags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger for commands; replaced once the config is loaded
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppContainer holds the wired dependencies of the current invocation
	AppContainer *container.Container

	// SharedFlags are the persistent flags of the root command
	SharedFlags = Flags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "camt-recon",
		Short: "Reconcile CAMT.053 bank statements against an internal ledger.",
		Long: `camt-recon matches the entries of a CAMT.053 bank statement against the rows
of an internal ledger CSV, reports what matched and what did not, and checks that
the statement balances add up.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initContainer,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags. Later calls are no-ops.
func Init() {
	flags := Cmd.PersistentFlags()
	if flags.Lookup("config") != nil {
		return
	}
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default search: $HOME/.camt-recon, .camt-recon, .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
}

// initContainer loads the configuration, applies the explicit log flags and
// wires AppContainer.
func initContainer(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}

	Log = logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	AppContainer = c
	return nil
}

// GetContainer returns AppContainer or an error when the pre-run hook did not run
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application container not initialized")
	}
	return AppContainer, nil
}
