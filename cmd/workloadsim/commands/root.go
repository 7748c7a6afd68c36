package commands

import (
	"context"
	"fmt"

	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	logLevelOverride string
	configFile       string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workloadsim",
		Short: "Workloadsim - mobile subsystem workload simulators",
		Long: `Workloadsim runs interactive workload simulators for a keyword-spotting voice
pipeline, a context-aware connectivity policy engine and a multi-factor
biometric authenticator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "init", "version":
				return configureLogger(config.DefaultConfig(), logLevelOverride, false)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			withConfig(cmd, cfg)
			tui, _ := cmd.Flags().GetBool("tui")
			return configureLogger(cfg, logLevelOverride, tui)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.workloadsim/config.json)")
	cmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level (debug|info|warn|error)")

	cmd.AddCommand(
		NewVoiceCmd(),
		NewConnectivityCmd(),
		NewBiometricCmd(),
		NewInitCmd(),
		NewStatusCmd(),
		NewVersionCmd(),
	)

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

type configKey struct{}

func withConfig(cmd *cobra.Command, cfg *config.Config) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
}

// commandConfig returns the config loaded by the root pre-run hook, loading it
// when cmd ran without one.
func commandConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd != nil && cmd.Context() != nil {
		if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
			return cfg, nil
		}
	}
	return loadConfig()
}
