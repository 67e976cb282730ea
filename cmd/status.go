package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/inputgate/internal/config"
	"github.com/bnema/inputgate/internal/ipc"
	"github.com/bnema/inputgate/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the status of the running bridge",
	Long:  `Query the running bridge for its bound listeners, drag state and forwarded command counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		socketPath := config.Get().Bridge.SocketPath
		out := cmd.OutOrStdout()

		if !ipc.IsRunning(socketPath) {
			fmt.Fprintln(out, ui.FormatStatus(false, "Bridge is not running"))
			return nil
		}

		status, err := ipc.NewClient(socketPath).Status()
		if err != nil {
			return fmt.Errorf("failed to get bridge status: %w", err)
		}

		fmt.Fprintln(out, renderStatus(status))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func renderStatus(status *ipc.Status) string {
	var output strings.Builder

	output.WriteString(ui.FormatAppHeader("STATUS", status.SocketPath))
	output.WriteString("\n\n")

	var box strings.Builder
	box.WriteString(ui.FormatStatus(true, "Bridge is running"))
	box.WriteString("\n")
	box.WriteString(ui.FormatField("Backend", status.BackendAddress))
	box.WriteString("\n")
	box.WriteString(ui.FormatField("Listeners", status.Listeners))
	box.WriteString("\n")
	box.WriteString(ui.FormatField("Host events", status.Events))
	box.WriteString("\n")

	drag := ui.SubtleStyle.Render("idle")
	if status.Ongoing {
		drag = ui.InfoStyle.Bold(true).Render("dragging")
	}
	box.WriteString(ui.FormatField("Interaction", "") + drag)

	output.WriteString(ui.BoxStyle.Render(box.String()))
	output.WriteString("\n\n")

	output.WriteString(ui.SubheaderStyle.Render("Forwarded commands"))
	output.WriteString("\n")
	output.WriteString(ui.FormatCounters(status.Forwarded))

	return output.String()
}
