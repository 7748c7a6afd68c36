package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/MEKXH/workloadsim/internal/config"
	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default workloadsim configuration",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := strings.TrimSpace(configFile)
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists: %s\n", configPath)
		return nil
	}

	if err := config.SaveTo(config.DefaultConfig(), configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Workloadsim initialized!\n")
	fmt.Printf("Config: %s\n", configPath)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("1. Edit %s to tune budgets, policies and users\n", configPath)
	fmt.Printf("2. Run 'workloadsim voice', 'workloadsim connectivity' or 'workloadsim biometric'\n")

	return nil
}
