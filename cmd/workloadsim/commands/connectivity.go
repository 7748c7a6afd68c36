package commands

import (
	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/sim"
	"github.com/spf13/cobra"
)

// NewConnectivityCmd creates the connectivity policy simulator command
func NewConnectivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connectivity",
		Aliases: []string{"conn"},
		Short:   "Run the context-aware connectivity policy simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulator(cmd, "connectivity", func(cfg *config.Config, opts sim.Options) (simulator, error) {
				return sim.NewConnectivity(cfg, opts)
			})
		},
	}
	addSimFlags(cmd)
	return cmd
}
