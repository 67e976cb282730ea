package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/inputgate/internal/config"
	"github.com/bnema/inputgate/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage inputgate configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Config file: %s\n\n", config.GetConfigPath())

		fmt.Fprintln(out, "[bridge]")
		fmt.Fprintf(out, "  socket_path = %s\n", cfg.Bridge.SocketPath)
		fmt.Fprintf(out, "  backend_address = %s\n", cfg.Bridge.BackendAddress)

		fmt.Fprintln(out, "\n[guard]")
		fmt.Fprintf(out, "  unsaved_message = %s\n", cfg.Guard.UnsavedMessage)

		fmt.Fprintln(out, "\n[logging]")
		fmt.Fprintf(out, "  log_level = %s\n", cfg.Logging.LogLevel)

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		// Write the defaults, not whatever the existing file holds
		defaults := config.DefaultConfig
		config.Set(&defaults)
		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite existing configuration")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(configCmd)
}
