package commands

import (
	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/MEKXH/workloadsim/internal/sim"
	"github.com/spf13/cobra"
)

// NewVoiceCmd creates the voice recognition simulator command
func NewVoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voice",
		Short: "Run the Sesotho keyword-spotting workload simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulator(cmd, "voice", func(cfg *config.Config, opts sim.Options) (simulator, error) {
				return sim.NewVoice(cfg, opts)
			})
		},
	}
	addSimFlags(cmd)
	return cmd
}
