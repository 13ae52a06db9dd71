// Package commands defines all Cobra CLI commands for the portalctl binary.
package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aabhimanyuDataEngineer/csr-tmf-portal/internal/audit"
	"github.com/aabhimanyuDataEngineer/csr-tmf-portal/internal/config"
	"github.com/aabhimanyuDataEngineer/csr-tmf-portal/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging.
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portalctl",
		Short: "Configuration and provider diagnostics for the clinical-document portal",
		Long: `portalctl inspects the portal's provider configuration.

The portal selects its search, vector-search, and AI backends at deploy time
via the AI_PROVIDER, SEARCH_PROVIDER, and VECTOR_PROVIDER environment
variables. portalctl resolves that configuration the same way the service
does — .env file, optional YAML config file, then environment — and reports
which backends are active and whether their settings validate, without
making any backend calls.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env first, matching the service's startup order. A missing
			// file is not an error.
			_ = godotenv.Load()

			log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

			// Layer the YAML config file under the environment (env wins).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			// Emit structured audit log for every command invocation.
			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.portal/config.yaml)")

	root.AddCommand(
		NewCheckCmd(),
		NewEnvCmd(),
		NewVersionCmd(),
	)

	return root
}
