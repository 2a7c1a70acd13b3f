package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/askiada/go-derive/internal/config"
	"github.com/askiada/go-derive/internal/logging"
	"github.com/askiada/go-derive/pkg/registry"
)

type rootOptions struct {
	cfgFile  string
	logLevel string
}

// app carries what every command needs once flags are parsed.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	state := &app{registry: registry.Default()}

	rootCmd := &cobra.Command{
		Use:   "derive",
		Short: "Run derivation pipelines over an analytics model",
		Long: `derive builds pipelines of typed steps from YAML definitions and runs them,
in whole or in part, over a YAML analytics model.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}

			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel

				err = cfg.Validate()
				if err != nil {
					return err
				}
			}

			state.cfg = cfg
			state.logger = logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCmd(state))
	rootCmd.AddCommand(newFingerprintCmd(state))
	rootCmd.AddCommand(newStepsCmd(state))

	return rootCmd
}
