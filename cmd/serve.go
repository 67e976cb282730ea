package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/inputgate/internal/backend"
	"github.com/bnema/inputgate/internal/bridge"
	"github.com/bnema/inputgate/internal/config"
	"github.com/bnema/inputgate/internal/ipc"
	"github.com/bnema/inputgate/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const backendDialTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the input bridge",
	Long: `Listen on the bridge socket for host events, route them through the input
manager, and stream the resulting commands to the editor backend.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("socket", "s", "", "Unix socket the host connects to")
	serveCmd.Flags().StringP("backend", "b", "", `backend address: "stdout", "unix:/path" or "tcp:host:port"`)

	// Bind flags to viper
	_ = viper.BindPFlag("bridge.socket_path", serveCmd.Flags().Lookup("socket"))
	_ = viper.BindPFlag("bridge.backend_address", serveCmd.Flags().Lookup("backend"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	if ipc.IsRunning(cfg.Bridge.SocketPath) {
		return fmt.Errorf("a bridge is already listening on %s", cfg.Bridge.SocketPath)
	}

	stream, err := backend.Dial(cfg.Bridge.BackendAddress, backendDialTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logger.Warnf("Failed to close backend stream: %v", err)
		}
	}()

	b := bridge.New(bridge.Options{
		Backend:        stream,
		UnsavedMessage: cfg.Guard.UnsavedMessage,
		SocketPath:     cfg.Bridge.SocketPath,
		BackendAddress: cfg.Bridge.BackendAddress,
	})
	defer b.Close()

	server, err := ipc.NewSocketServer(cfg.Bridge.SocketPath, b)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start bridge socket: %w", err)
	}
	defer server.Stop()

	logger.Info("Bridge ready", "socket", cfg.Bridge.SocketPath, "backend", cfg.Bridge.BackendAddress)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig)

	if err := stream.Err(); err != nil {
		logger.Warnf("Backend stream stopped early: %v", err)
	}
	return nil
}
