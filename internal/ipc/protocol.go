// Package ipc implements the host bridge protocol: length-prefixed
// protobuf Struct messages over a Unix socket.
package ipc

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// Message types
const (
	TypeEvent          = "event"
	TypeReply          = "reply"
	TypeStatus         = "status"
	TypeStatusResponse = "status_response"
	TypeError          = "error"
)

// Reply actions the host must carry out
const (
	ActionDismissDialog     = "dismiss_dialog"
	ActionSubmitDialog      = "submit_dialog"
	ActionToggleFullscreen  = "toggle_fullscreen"
	ActionFullscreenChanged = "fullscreen_changed"
	ActionScrollTo          = "scroll_to"
)

// ErrInvalidMessage is returned for messages missing required fields
var ErrInvalidMessage = errors.New("invalid message")

// Node describes one element of the event target's ancestor chain
type Node struct {
	Classes    []string
	TextEntry  bool
	Rect       [4]float64 // left, top, right, bottom
	ScrollLeft float64
}

// HostEvent is a native event as reported by the host, together with the
// host state the routing decision depends on
type HostEvent struct {
	Kind string
	// Target is the ancestor chain of the event target, innermost first
	Target []Node

	Key    string
	Code   string
	Repeat bool

	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool

	X       float64
	Y       float64
	Button  int
	Buttons uint16

	DeltaX float64
	DeltaY float64
	DeltaZ float64

	DialogVisible bool
	// Documents holds the saved flag of every open document
	Documents []bool
	// Canvases holds the bounds of every rendered canvas, in document order
	Canvases [][4]float64
}

// Action is a side effect the host performs after the event
type Action struct {
	Action string
	// Node indexes HostEvent.Target for scroll_to
	Node int
	X    float64
	Y    float64
}

// Reply tells the host what to do with the native event
type Reply struct {
	DefaultPrevented   bool
	PropagationStopped bool
	ReturnValue        string
	Actions            []Action
}

// Status describes a running bridge
type Status struct {
	SocketPath     string
	BackendAddress string
	Listeners      int
	Events         uint64
	Ongoing        bool
	Forwarded      map[string]uint64
}

// NewEventMessage wraps a host event
func NewEventMessage(ev *HostEvent) (*structpb.Struct, error) {
	target := make([]any, 0, len(ev.Target))
	for _, n := range ev.Target {
		classes := make([]any, 0, len(n.Classes))
		for _, c := range n.Classes {
			classes = append(classes, c)
		}
		target = append(target, map[string]any{
			"classes":     classes,
			"text_entry":  n.TextEntry,
			"rect":        rectToList(n.Rect),
			"scroll_left": n.ScrollLeft,
		})
	}

	documents := make([]any, 0, len(ev.Documents))
	for _, saved := range ev.Documents {
		documents = append(documents, saved)
	}

	canvases := make([]any, 0, len(ev.Canvases))
	for _, r := range ev.Canvases {
		canvases = append(canvases, rectToList(r))
	}

	return newMessage(TypeEvent, map[string]any{
		"kind":           ev.Kind,
		"target":         target,
		"key":            ev.Key,
		"code":           ev.Code,
		"repeat":         ev.Repeat,
		"ctrl":           ev.Ctrl,
		"shift":          ev.Shift,
		"alt":            ev.Alt,
		"meta":           ev.Meta,
		"x":              ev.X,
		"y":              ev.Y,
		"button":         float64(ev.Button),
		"buttons":        float64(ev.Buttons),
		"delta_x":        ev.DeltaX,
		"delta_y":        ev.DeltaY,
		"delta_z":        ev.DeltaZ,
		"dialog_visible": ev.DialogVisible,
		"documents":      documents,
		"canvases":       canvases,
	})
}

// NewReplyMessage wraps a reply
func NewReplyMessage(r *Reply) (*structpb.Struct, error) {
	actions := make([]any, 0, len(r.Actions))
	for _, a := range r.Actions {
		actions = append(actions, map[string]any{
			"action": a.Action,
			"node":   float64(a.Node),
			"x":      a.X,
			"y":      a.Y,
		})
	}

	return newMessage(TypeReply, map[string]any{
		"default_prevented":   r.DefaultPrevented,
		"propagation_stopped": r.PropagationStopped,
		"return_value":        r.ReturnValue,
		"actions":             actions,
	})
}

// NewStatusMessage creates a status query
func NewStatusMessage() (*structpb.Struct, error) {
	return newMessage(TypeStatus, map[string]any{})
}

// NewStatusResponseMessage wraps a status snapshot
func NewStatusResponseMessage(s *Status) (*structpb.Struct, error) {
	forwarded := make(map[string]any, len(s.Forwarded))
	for name, n := range s.Forwarded {
		forwarded[name] = float64(n)
	}

	return newMessage(TypeStatusResponse, map[string]any{
		"socket_path":     s.SocketPath,
		"backend_address": s.BackendAddress,
		"listeners":       float64(s.Listeners),
		"events":          float64(s.Events),
		"ongoing":         s.Ongoing,
		"forwarded":       forwarded,
	})
}

// NewErrorMessage creates a new error message
func NewErrorMessage(errMsg string) (*structpb.Struct, error) {
	return newMessage(TypeError, map[string]any{"error": errMsg})
}

func newMessage(msgType string, payload map[string]any) (*structpb.Struct, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"type":    msgType,
		"payload": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s message: %w", msgType, err)
	}
	return msg, nil
}

// MessageType returns the type of a message, or "" when absent
func MessageType(msg *structpb.Struct) string {
	return msg.GetFields()["type"].GetStringValue()
}

func payloadOf(msg *structpb.Struct, want string) (fields, error) {
	if got := MessageType(msg); got != want {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrInvalidMessage, want, got)
	}
	payload := msg.GetFields()["payload"].GetStructValue()
	if payload == nil {
		return nil, fmt.Errorf("%w: %s message without payload", ErrInvalidMessage, want)
	}
	return fields(payload.AsMap()), nil
}

// GetHostEvent extracts the host event from an event message
func GetHostEvent(msg *structpb.Struct) (*HostEvent, error) {
	p, err := payloadOf(msg, TypeEvent)
	if err != nil {
		return nil, err
	}

	ev := &HostEvent{
		Kind:          p.str("kind"),
		Key:           p.str("key"),
		Code:          p.str("code"),
		Repeat:        p.boolean("repeat"),
		Ctrl:          p.boolean("ctrl"),
		Shift:         p.boolean("shift"),
		Alt:           p.boolean("alt"),
		Meta:          p.boolean("meta"),
		X:             p.num("x"),
		Y:             p.num("y"),
		Button:        int(p.num("button")),
		DeltaX:        p.num("delta_x"),
		DeltaY:        p.num("delta_y"),
		DeltaZ:        p.num("delta_z"),
		DialogVisible: p.boolean("dialog_visible"),
	}
	if ev.Kind == "" {
		return nil, fmt.Errorf("%w: event without kind", ErrInvalidMessage)
	}

	buttons := p.num("buttons")
	if buttons < 0 || buttons > math.MaxUint16 || buttons != math.Trunc(buttons) {
		return nil, fmt.Errorf("%w: buttons mask %v out of range", ErrInvalidMessage, buttons)
	}
	ev.Buttons = uint16(buttons)

	// scroll_to actions index the target chain, so no node may be dropped
	for i, item := range p.list("target") {
		n, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: target node %d is not an object", ErrInvalidMessage, i)
		}
		node := fields(n)
		var classes []string
		for _, c := range node.list("classes") {
			if s, ok := c.(string); ok {
				classes = append(classes, s)
			}
		}
		ev.Target = append(ev.Target, Node{
			Classes:    classes,
			TextEntry:  node.boolean("text_entry"),
			Rect:       listToRect(node.list("rect")),
			ScrollLeft: node.num("scroll_left"),
		})
	}

	for _, item := range p.list("documents") {
		saved, _ := item.(bool)
		ev.Documents = append(ev.Documents, saved)
	}

	for _, item := range p.list("canvases") {
		r, _ := item.([]any)
		ev.Canvases = append(ev.Canvases, listToRect(r))
	}

	return ev, nil
}

// GetReply extracts the reply from a reply message
func GetReply(msg *structpb.Struct) (*Reply, error) {
	p, err := payloadOf(msg, TypeReply)
	if err != nil {
		return nil, err
	}

	r := &Reply{
		DefaultPrevented:   p.boolean("default_prevented"),
		PropagationStopped: p.boolean("propagation_stopped"),
		ReturnValue:        p.str("return_value"),
	}
	for _, item := range p.list("actions") {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		action := fields(a)
		r.Actions = append(r.Actions, Action{
			Action: action.str("action"),
			Node:   int(action.num("node")),
			X:      action.num("x"),
			Y:      action.num("y"),
		})
	}
	return r, nil
}

// GetStatus extracts the status from a status response message
func GetStatus(msg *structpb.Struct) (*Status, error) {
	p, err := payloadOf(msg, TypeStatusResponse)
	if err != nil {
		return nil, err
	}

	s := &Status{
		SocketPath:     p.str("socket_path"),
		BackendAddress: p.str("backend_address"),
		Listeners:      int(p.num("listeners")),
		Events:         uint64(p.num("events")),
		Ongoing:        p.boolean("ongoing"),
		Forwarded:      make(map[string]uint64),
	}
	if forwarded, ok := p["forwarded"].(map[string]any); ok {
		for name, v := range forwarded {
			if n, ok := v.(float64); ok {
				s.Forwarded[name] = uint64(n)
			}
		}
	}
	return s, nil
}

// GetError extracts the error text from an error message
func GetError(msg *structpb.Struct) (string, error) {
	p, err := payloadOf(msg, TypeError)
	if err != nil {
		return "", err
	}
	return p.str("error"), nil
}

// fields reads typed values out of a decoded Struct
type fields map[string]any

func (f fields) str(key string) string {
	s, _ := f[key].(string)
	return s
}

func (f fields) num(key string) float64 {
	n, _ := f[key].(float64)
	return n
}

func (f fields) boolean(key string) bool {
	b, _ := f[key].(bool)
	return b
}

func (f fields) list(key string) []any {
	l, _ := f[key].([]any)
	return l
}

func rectToList(r [4]float64) []any {
	return []any{r[0], r[1], r[2], r[3]}
}

func listToRect(l []any) [4]float64 {
	var r [4]float64
	for i := 0; i < len(l) && i < 4; i++ {
		r[i], _ = l[i].(float64)
	}
	return r
}
