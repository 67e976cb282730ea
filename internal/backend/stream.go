// Package backend streams decoded input commands to the editor backend
package backend

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/inputgate/internal/input"
	"github.com/bnema/inputgate/internal/ipc"
	"github.com/bnema/inputgate/internal/logger"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrStreamClosed is returned once the stream has been closed
var ErrStreamClosed = errors.New("backend stream closed")

// Stream writes every command as a length-prefixed protobuf Struct.
// Commands are fire-and-forget: the first write error is logged and kept
// for Err, and later commands are dropped.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	err    error
	sent   uint64
}

var _ input.Backend = (*Stream)(nil)

// NewStream creates a stream writing to w. When w is an io.Closer, Close closes it.
func NewStream(w io.Writer) *Stream {
	s := &Stream{w: w}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

func (s *Stream) OnKeyDown(key string, modifiers uint8) {
	s.send(input.CommandKeyDown, map[string]any{
		"key":       key,
		"modifiers": float64(modifiers),
	})
}

func (s *Stream) OnKeyUp(key string, modifiers uint8) {
	s.send(input.CommandKeyUp, map[string]any{
		"key":       key,
		"modifiers": float64(modifiers),
	})
}

func (s *Stream) OnMouseMove(x, y float64, buttons uint16, modifiers uint8) {
	s.send(input.CommandMouseMove, pointerArgs(x, y, buttons, modifiers))
}

func (s *Stream) OnMouseDown(x, y float64, buttons uint16, modifiers uint8) {
	s.send(input.CommandMouseDown, pointerArgs(x, y, buttons, modifiers))
}

func (s *Stream) OnMouseUp(x, y float64, buttons uint16, modifiers uint8) {
	s.send(input.CommandMouseUp, pointerArgs(x, y, buttons, modifiers))
}

func (s *Stream) OnMouseScroll(x, y float64, buttons uint16, deltaX, deltaY, deltaZ float64, modifiers uint8) {
	args := pointerArgs(x, y, buttons, modifiers)
	args["delta_x"] = deltaX
	args["delta_y"] = deltaY
	args["delta_z"] = deltaZ
	s.send(input.CommandMouseScroll, args)
}

func (s *Stream) BoundsOfViewports(bounds []float64) {
	list := make([]any, 0, len(bounds))
	for _, b := range bounds {
		list = append(list, b)
	}
	s.send(input.CommandBoundsOfViewports, map[string]any{"bounds": list})
}

// Err returns the first write error, if any
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Sent returns the number of commands written
func (s *Stream) Sent() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

// Close closes the underlying writer when it is closable
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errors.Is(s.err, ErrStreamClosed) {
		return nil
	}
	s.err = ErrStreamClosed
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *Stream) send(command string, args map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}

	args["command"] = command
	msg, err := structpb.NewStruct(args)
	if err != nil {
		s.fail(fmt.Errorf("failed to encode %s: %w", command, err))
		return
	}
	if err := ipc.WriteFrame(s.w, msg); err != nil {
		s.fail(fmt.Errorf("failed to send %s: %w", command, err))
		return
	}
	s.sent++
}

func (s *Stream) fail(err error) {
	s.err = err
	logger.Error("Backend stream failed, dropping further commands", "err", err)
}

func pointerArgs(x, y float64, buttons uint16, modifiers uint8) map[string]any {
	return map[string]any{
		"x":         x,
		"y":         y,
		"buttons":   float64(buttons),
		"modifiers": float64(modifiers),
	}
}
