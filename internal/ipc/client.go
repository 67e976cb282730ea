package ipc

import (
	"fmt"
	"net"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// Client talks to a running bridge. Each call uses its own connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client for the socket at socketPath
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewClientWithTimeout creates a new IPC client with custom timeout
func NewClientWithTimeout(socketPath string, timeout time.Duration) *Client {
	client := NewClient(socketPath)
	client.timeout = timeout
	return client
}

// IsRunning reports whether a bridge accepts connections at socketPath
func IsRunning(socketPath string) bool {
	conn, err := net.DialTimeout("unix", socketPath, 100*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// SendEvent sends a host event and returns the bridge's reply
func (c *Client) SendEvent(ev *HostEvent) (*Reply, error) {
	msg, err := NewEventMessage(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to create event message: %w", err)
	}

	response, err := c.sendMessage(msg)
	if err != nil {
		return nil, err
	}

	switch MessageType(response) {
	case TypeReply:
		return GetReply(response)
	case TypeError:
		text, _ := GetError(response)
		return nil, fmt.Errorf("bridge error: %s", text)
	default:
		return nil, fmt.Errorf("unexpected response type: %q", MessageType(response))
	}
}

// Status queries the bridge status
func (c *Client) Status() (*Status, error) {
	msg, err := NewStatusMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to create status message: %w", err)
	}

	response, err := c.sendMessage(msg)
	if err != nil {
		return nil, err
	}

	switch MessageType(response) {
	case TypeStatusResponse:
		return GetStatus(response)
	case TypeError:
		text, _ := GetError(response)
		return nil, fmt.Errorf("bridge error: %s", text)
	default:
		return nil, fmt.Errorf("unexpected response type: %q", MessageType(response))
	}
}

// sendMessage sends a message and waits for the response
func (c *Client) sendMessage(msg *structpb.Struct) (*structpb.Struct, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bridge: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := WriteFrame(conn, msg); err != nil {
		return nil, err
	}

	response := &structpb.Struct{}
	if err := ReadFrame(conn, response); err != nil {
		return nil, err
	}
	return response, nil
}
