// Package bridge connects host messages received over IPC to the input manager
package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/inputgate/internal/input"
	"github.com/bnema/inputgate/internal/ipc"
	"github.com/bnema/inputgate/internal/logger"
)

// ErrUnknownKind is returned for host events the manager does not listen to
var ErrUnknownKind = errors.New("unknown event kind")

// Options configures a Bridge
type Options struct {
	Backend        input.Backend
	UnsavedMessage string

	// Reported in status responses
	SocketPath     string
	BackendAddress string
}

// Bridge replays host events against an input.Manager and reports what the
// host must do in response. It implements ipc.MessageHandler.
type Bridge struct {
	mu       sync.Mutex
	opts     Options
	host     *snapshot
	window   *source
	document *source
	manager  *input.Manager
	events   uint64
}

var _ ipc.MessageHandler = (*Bridge)(nil)

// New creates a bridge and binds the manager's listeners
func New(opts Options) *Bridge {
	b := &Bridge{
		opts:     opts,
		host:     &snapshot{},
		window:   &source{},
		document: &source{},
	}
	b.manager = input.NewManager(input.Options{
		Window:         b.window,
		Document:       b.document,
		Container:      b.host,
		Backend:        opts.Backend,
		Dialog:         b.host,
		Fullscreen:     b.host,
		Documents:      b.host,
		UnsavedMessage: opts.UnsavedMessage,
	})
	return b
}

// HandleEvent dispatches one host event and returns the host's instructions
func (b *Bridge) HandleEvent(hev *ipc.HostEvent) (*ipc.Reply, error) {
	kind, ok := input.ParseEventKind(hev.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, hev.Kind)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.host.load(hev)
	b.events++

	ev, base := b.buildEvent(kind, hev)
	src := b.window
	if kind == input.KindContextMenu || kind == input.KindFullscreenChange {
		src = b.document
	}
	delivered := src.dispatch(kind, ev)

	reply := &ipc.Reply{
		DefaultPrevented:   base.DefaultPrevented(),
		PropagationStopped: base.PropagationStopped(),
		Actions:            b.host.actions,
	}
	if unload, ok := ev.(*input.BeforeUnloadEvent); ok {
		reply.ReturnValue = unload.ReturnValue
	}

	logger.Debug("Host event handled",
		"kind", kind,
		"listeners", delivered,
		"prevented", reply.DefaultPrevented,
		"actions", len(reply.Actions))
	return reply, nil
}

// buildEvent returns the concrete event for kind and its shared part
func (b *Bridge) buildEvent(kind input.EventKind, hev *ipc.HostEvent) (any, *input.Event) {
	base := input.Event{Target: b.host.target()}
	mods := input.Modifiers{Ctrl: hev.Ctrl, Shift: hev.Shift, Alt: hev.Alt, Meta: hev.Meta}
	pointer := input.PointerEvent{
		Event:     base,
		X:         hev.X,
		Y:         hev.Y,
		Button:    hev.Button,
		Buttons:   hev.Buttons,
		Modifiers: mods,
	}

	switch kind {
	case input.KindBeforeUnload:
		ev := &input.BeforeUnloadEvent{Event: base}
		return ev, &ev.Event
	case input.KindKeyDown, input.KindKeyUp:
		ev := &input.KeyboardEvent{
			Event:     base,
			Kind:      kind,
			Key:       hev.Key,
			Code:      hev.Code,
			Repeat:    hev.Repeat,
			Modifiers: mods,
		}
		return ev, &ev.Event
	case input.KindPointerMove, input.KindPointerDown, input.KindPointerUp, input.KindMouseDown:
		ev := &pointer
		return ev, &ev.Event
	case input.KindWheel:
		ev := &input.WheelEvent{
			PointerEvent: pointer,
			DeltaX:       hev.DeltaX,
			DeltaY:       hev.DeltaY,
			DeltaZ:       hev.DeltaZ,
		}
		return ev, &ev.Event
	default:
		ev := &base
		return ev, ev
	}
}

// HandleStatusQuery reports listener and forwarding counters
func (b *Bridge) HandleStatusQuery() (*ipc.Status, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := b.manager.Stats()
	return &ipc.Status{
		SocketPath:     b.opts.SocketPath,
		BackendAddress: b.opts.BackendAddress,
		Listeners:      stats.Listeners,
		Events:         b.events,
		Ongoing:        stats.Ongoing,
		Forwarded:      stats.Forwarded,
	}, nil
}

// Close unbinds the manager's listeners
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.manager.Close()
}
