package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/ethix-logistics/internal/infra/config"
	"github.com/yanqian/ethix-logistics/pkg/logger"
)

// cliEnv is shared by every subcommand once the root has loaded configuration.
type cliEnv struct {
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}
	root := &cobra.Command{
		Use:   "ethixctl",
		Short: "Operator tooling for the EthixLogistics priority engine",
		Long: `ethixctl scores shipments offline, queries the advisor and exports
reports from the configured storefront snapshot.

Configuration is read the same way as the server: CONFIG_PATH or
configs/config.yaml, then environment overrides.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			env.cfg = cfg
			env.logger = logger.Discard()
			if env.verbose {
				env.logger = logger.NewWithWriter(os.Stderr, "debug")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(
		newScoreCmd(env),
		newAdviseCmd(env),
		newReportCmd(env),
	)
	return root
}
