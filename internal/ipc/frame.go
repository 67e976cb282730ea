package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
)

// MaxFrameSize bounds a single message on the wire
const MaxFrameSize = 1 << 20

// ErrFrameTooLarge is returned when a frame header announces more than MaxFrameSize bytes
var ErrFrameTooLarge = errors.New("frame too large")

// WriteFrame writes msg as a 4-byte big endian length followed by its
// protobuf encoding
func WriteFrame(w io.Writer, msg proto.Message) error {
	data, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if len(data) > MaxFrameSize {
		return ErrFrameTooLarge
	}

	// Header and payload go out in one write so concurrent readers never
	// see a header without its payload
	frame := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(frame, uint32(len(data))) //nolint:gosec // bounded by MaxFrameSize
	copy(frame[4:], data)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed protobuf message into msg
func ReadFrame(r io.Reader, msg proto.Message) error {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		// A stream ending between frames is a clean end
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("failed to read message length: %w", err)
	}
	if length > MaxFrameSize {
		return ErrFrameTooLarge
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return fmt.Errorf("failed to read message data: %w", err)
	}

	if err := proto.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}
