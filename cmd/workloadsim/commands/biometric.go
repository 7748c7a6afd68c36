package commands

import (
	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/sim"
	"github.com/spf13/cobra"
)

// NewBiometricCmd creates the biometric authentication simulator command
func NewBiometricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biometric",
		Short: "Run the multi-factor biometric authentication simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulator(cmd, "biometric", func(cfg *config.Config, opts sim.Options) (simulator, error) {
				return sim.NewBiometric(cfg, opts)
			})
		},
	}
	addSimFlags(cmd)
	return cmd
}
