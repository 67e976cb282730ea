package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/inputgate/internal/logger"
	"google.golang.org/protobuf/types/known/structpb"
)

// SocketServer accepts host connections on a Unix socket
type SocketServer struct {
	mu         sync.Mutex
	listener   net.Listener
	socketPath string
	handler    MessageHandler
	conns      map[net.Conn]struct{}
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	running    bool
}

// MessageHandler defines the interface for handling IPC messages
type MessageHandler interface {
	HandleEvent(ev *HostEvent) (*Reply, error)
	HandleStatusQuery() (*Status, error)
}

// NewSocketServer creates a new socket server
func NewSocketServer(socketPath string, handler MessageHandler) (*SocketServer, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is empty")
	}
	return &SocketServer{
		socketPath: socketPath,
		handler:    handler,
		conns:      make(map[net.Conn]struct{}),
	}, nil
}

// Start starts the socket server
func (s *SocketServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	// Remove existing socket file if it exists
	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	// Set socket permissions (user only)
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.listener = listener
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.acceptConnections(ctx)

	logger.Infof("Bridge socket listening at %s", s.socketPath)
	return nil
}

// Stop stops the socket server and closes every host connection
func (s *SocketServer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}

	s.running = false
	if s.cancel != nil {
		s.cancel()
	}
	if s.listener != nil {
		s.listener.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()

	os.RemoveAll(s.socketPath)
	logger.Info("Bridge socket stopped")
}

// SocketPath returns the path the server listens on
func (s *SocketServer) SocketPath() string {
	return s.socketPath
}

func (s *SocketServer) acceptConnections(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Errorf("Failed to accept connection: %v", err)
			continue
		}

		s.mu.Lock()
		if !s.running {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.wg.Add(1)
		s.mu.Unlock()

		go s.handleConnection(ctx, conn)
	}
}

func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	logger.Debug("Host connected")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg := &structpb.Struct{}
		if err := ReadFrame(conn, msg); err != nil {
			logger.Debugf("Host connection closed or read error: %v", err)
			return
		}

		response := s.handleMessage(msg)
		if err := WriteFrame(conn, response); err != nil {
			logger.Errorf("Failed to send response: %v", err)
			return
		}
	}
}

// handleMessage processes a single message and returns a response
func (s *SocketServer) handleMessage(msg *structpb.Struct) *structpb.Struct {
	switch MessageType(msg) {
	case TypeEvent:
		ev, err := GetHostEvent(msg)
		if err != nil {
			return errorMessage(fmt.Sprintf("Invalid event: %v", err))
		}

		reply, err := s.handler.HandleEvent(ev)
		if err != nil {
			return errorMessage(err.Error())
		}
		response, err := NewReplyMessage(reply)
		if err != nil {
			return errorMessage(err.Error())
		}
		return response

	case TypeStatus:
		status, err := s.handler.HandleStatusQuery()
		if err != nil {
			return errorMessage(err.Error())
		}
		response, err := NewStatusResponseMessage(status)
		if err != nil {
			return errorMessage(err.Error())
		}
		return response

	default:
		return errorMessage(fmt.Sprintf("Unknown message type: %q", MessageType(msg)))
	}
}

func errorMessage(text string) *structpb.Struct {
	msg, err := NewErrorMessage(text)
	if err != nil {
		// A plain string always converts
		panic(err)
	}
	return msg
}
