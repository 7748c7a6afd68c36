package main

import (
	"os"

	"github.com/MEKXH/workloadsim/cmd/workloadsim/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
