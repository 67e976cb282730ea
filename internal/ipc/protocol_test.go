package ipc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestHostEventThroughFrame(t *testing.T) {
	ev := &HostEvent{
		Kind: "wheel",
		Target: []Node{
			{Classes: []string{"tab"}},
			{Classes: []string{"scrollable-x", "tab-bar"}, Rect: [4]float64{0, 0, 300, 24}, ScrollLeft: 12},
		},
		Ctrl:          true,
		X:             14,
		Y:             8,
		Buttons:       1,
		DeltaY:        -40,
		DialogVisible: true,
		Documents:     []bool{true, false},
		Canvases:      [][4]float64{{0, 30, 800, 600}},
	}

	msg, err := NewEventMessage(ev)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, msg))

	decoded := &structpb.Struct{}
	require.NoError(t, ReadFrame(&buf, decoded))

	got, err := GetHostEvent(decoded)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestGetHostEventRejectsBadMessages(t *testing.T) {
	noKind, err := NewEventMessage(&HostEvent{})
	require.NoError(t, err)
	_, err = GetHostEvent(noKind)
	assert.True(t, errors.Is(err, ErrInvalidMessage))

	status, err := NewStatusMessage()
	require.NoError(t, err)
	_, err = GetHostEvent(status)
	assert.True(t, errors.Is(err, ErrInvalidMessage))
}

func TestGetHostEventRejectsMalformedTarget(t *testing.T) {
	msg, err := newMessage(TypeEvent, map[string]any{
		"kind": "wheel",
		"target": []any{
			map[string]any{"classes": []any{"tab"}},
			"not a node",
			map[string]any{"classes": []any{"scrollable-x"}},
		},
	})
	require.NoError(t, err)

	_, err = GetHostEvent(msg)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestGetHostEventButtonsRange(t *testing.T) {
	tests := []struct {
		name    string
		buttons any
		want    uint16
		wantErr bool
	}{
		{name: "none", buttons: 0, want: 0},
		{name: "primary and middle", buttons: 5, want: 5},
		{name: "largest mask", buttons: 65535, want: 65535},
		{name: "overflow", buttons: 65536, wantErr: true},
		{name: "negative", buttons: -1, wantErr: true},
		{name: "fractional", buttons: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := newMessage(TypeEvent, map[string]any{
				"kind":    "pointermove",
				"buttons": tt.buttons,
			})
			require.NoError(t, err)

			ev, err := GetHostEvent(msg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.Buttons)
		})
	}
}

func TestReplyAndStatusMessages(t *testing.T) {
	reply := &Reply{
		DefaultPrevented: true,
		ReturnValue:      "Close anyway?",
		Actions:          []Action{{Action: ActionScrollTo, Node: 1, X: 52}},
	}
	msg, err := NewReplyMessage(reply)
	require.NoError(t, err)
	gotReply, err := GetReply(msg)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)

	status := &Status{
		SocketPath: "/run/inputgate.sock",
		Listeners:  11,
		Events:     42,
		Ongoing:    true,
		Forwarded:  map[string]uint64{"on_key_down": 3},
	}
	msg, err = NewStatusResponseMessage(status)
	require.NoError(t, err)
	gotStatus, err := GetStatus(msg)
	require.NoError(t, err)
	assert.Equal(t, status, gotStatus)
}

func TestReadFrameTooLarge(t *testing.T) {
	header := []byte{0xff, 0xff, 0xff, 0xff}
	err := ReadFrame(bytes.NewReader(header), &structpb.Struct{})
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}
