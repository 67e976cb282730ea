package backend

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// nopCloser keeps Close from closing the process's stdout
type nopCloser struct {
	*os.File
}

func (nopCloser) Close() error { return nil }

// Dial opens a stream to address: "stdout", "unix:/path/to.sock" or
// "tcp:host:port"
func Dial(address string, timeout time.Duration) (*Stream, error) {
	if address == "" || address == "stdout" || address == "-" {
		return NewStream(nopCloser{os.Stdout}), nil
	}

	network, target, ok := strings.Cut(address, ":")
	if !ok || target == "" {
		return nil, fmt.Errorf("invalid backend address %q", address)
	}

	switch network {
	case "unix", "tcp":
	default:
		return nil, fmt.Errorf("unsupported backend network %q", network)
	}

	conn, err := net.DialTimeout(network, target, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to backend at %s: %w", address, err)
	}
	return NewStream(conn), nil
}
