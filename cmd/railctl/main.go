// Command railctl runs operational tasks against the leasing backend:
// schema migrations, seeding the asset store and inspecting listings.
package main

import (
	"fmt"
	"os"

	"railspace_backend/platform/config"
	"railspace_backend/platform/logger"

	"github.com/spf13/cobra"
)

type env struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "railctl",
		Short:         "Operations tool for the railway land leasing backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			e.cfg = cfg
			e.log = logger.New(cfg.Env)
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				e.log = logger.Discard()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress log output")

	rootCmd.AddCommand(
		migrateCmd(e),
		seedCmd(e),
		assetsCmd(e),
		leasesCmd(e),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
