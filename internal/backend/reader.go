package backend

import (
	"fmt"
	"io"

	"github.com/bnema/inputgate/internal/ipc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Command is one decoded backend command
type Command struct {
	Name      string
	Key       string
	X         float64
	Y         float64
	Buttons   uint16
	Modifiers uint8
	DeltaX    float64
	DeltaY    float64
	DeltaZ    float64
	Bounds    []float64
}

// Reader decodes the commands written by a Stream
type Reader struct {
	r io.Reader
}

// NewReader creates a reader over r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next reads the next command
func (r *Reader) Next() (*Command, error) {
	msg := &structpb.Struct{}
	if err := ipc.ReadFrame(r.r, msg); err != nil {
		return nil, err
	}
	return DecodeCommand(msg)
}

// DecodeCommand converts a command message back into a Command
func DecodeCommand(msg *structpb.Struct) (*Command, error) {
	m := msg.AsMap()
	name, _ := m["command"].(string)
	if name == "" {
		return nil, fmt.Errorf("command message without a name")
	}

	num := func(key string) float64 {
		n, _ := m[key].(float64)
		return n
	}

	cmd := &Command{
		Name:      name,
		X:         num("x"),
		Y:         num("y"),
		Buttons:   uint16(num("buttons")),
		Modifiers: uint8(num("modifiers")),
		DeltaX:    num("delta_x"),
		DeltaY:    num("delta_y"),
		DeltaZ:    num("delta_z"),
	}
	cmd.Key, _ = m["key"].(string)
	if list, ok := m["bounds"].([]any); ok {
		for _, v := range list {
			b, _ := v.(float64)
			cmd.Bounds = append(cmd.Bounds, b)
		}
	}
	return cmd, nil
}
