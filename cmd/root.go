package cmd

import (
	"fmt"

	"github.com/bnema/inputgate/internal/config"
	"github.com/bnema/inputgate/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configFile string

	rootCmd = &cobra.Command{
		Use:   "inputgate",
		Short: "inputgate - input routing between a host UI and an editor backend",
		Long: `inputgate decides, for every keyboard, pointer and wheel event of a host UI,
whether the host keeps it or the editor backend receives it as an input command.
The host sends its events over a Unix socket and applies the returned verdicts.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/inputgate/inputgate.toml)")
}

func initConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		config.SetConfigPath(configFile)
	}
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level := config.Get().Logging.LogLevel; level != "" && !logger.SetLevel(level) {
		logger.Warnf("Unknown log level %q, keeping the current one", level)
	}
	return nil
}
