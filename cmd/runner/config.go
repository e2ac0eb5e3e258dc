package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/irr-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default tuning file",
	Long: `Print the embedded runner tuning YAML.

Save it as ~/.irr-runner/configs/runner.yaml (or pass --config) and edit
any value; keys you leave out keep their defaults.

Example:
  runner config > ~/.irr-runner/configs/runner.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultRunnerYAML())
		return err
	},
}
