package cmd

import (
	"github.com/bnema/inputgate/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Commit and Date are set by the build
	Commit string
	Date   string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Infof("inputgate %s", Version)
		logger.Infof("commit: %s", Commit)
		logger.Infof("built: %s", Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
