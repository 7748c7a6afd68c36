package commands

import (
	"fmt"
	"runtime"

	"github.com/MEKXH/workloadsim/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of workloadsim",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("workloadsim %s %s/%s (%s)\n", version.String(), runtime.GOOS, runtime.GOARCH, runtime.Version())
		},
	}
}
