package input

import (
	"fmt"

	"github.com/bnema/inputgate/internal/logger"
)

// Listener is an event handler. The concrete type fixes the event it takes:
// KeyListener, PointerListener, WheelListener, UnloadListener or
// NotifyListener.
type Listener interface {
	accepts(kind EventKind) bool
}

// KeyListener handles keydown and keyup
type KeyListener func(*KeyboardEvent)

// PointerListener handles pointermove, pointerdown, pointerup and mousedown
type PointerListener func(*PointerEvent)

// WheelListener handles wheel
type WheelListener func(*WheelEvent)

// UnloadListener handles beforeunload
type UnloadListener func(*BeforeUnloadEvent)

// NotifyListener handles events without a payload: resize, contextmenu and
// fullscreenchange
type NotifyListener func(*Event)

func (KeyListener) accepts(k EventKind) bool {
	return k == KindKeyDown || k == KindKeyUp
}

func (PointerListener) accepts(k EventKind) bool {
	return k == KindPointerMove || k == KindPointerDown || k == KindPointerUp || k == KindMouseDown
}

func (WheelListener) accepts(k EventKind) bool {
	return k == KindWheel
}

func (UnloadListener) accepts(k EventKind) bool {
	return k == KindBeforeUnload
}

func (NotifyListener) accepts(k EventKind) bool {
	return k == KindResize || k == KindContextMenu || k == KindFullscreenChange
}

// ListenerOptions are passed through to the host on bind
type ListenerOptions struct {
	Capture bool
	// Passive listeners promise not to call PreventDefault
	Passive bool
}

// EventSource is anything the host can dispatch events from (the window,
// the document). Registrations are compared by pointer.
type EventSource interface {
	AddEventListener(reg *Registration)
	RemoveEventListener(reg *Registration)
}

// Registration binds one handler to one event kind of one source
type Registration struct {
	Source  EventSource
	Kind    EventKind
	Handler Listener
	Options ListenerOptions
}

// NewRegistration creates a registration. It panics when the handler type
// cannot take events of the given kind.
func NewRegistration(source EventSource, kind EventKind, handler Listener, opts ListenerOptions) *Registration {
	if handler == nil || !handler.accepts(kind) {
		panic(fmt.Sprintf("input: handler %T cannot handle %s events", handler, kind))
	}
	return &Registration{
		Source:  source,
		Kind:    kind,
		Handler: handler,
		Options: opts,
	}
}

// Deliver calls the registration's handler with ev when the handler takes
// that event type. It reports whether the handler ran.
func Deliver(reg *Registration, ev any) bool {
	switch h := reg.Handler.(type) {
	case KeyListener:
		if e, ok := ev.(*KeyboardEvent); ok {
			h(e)
			return true
		}
	case PointerListener:
		if e, ok := ev.(*PointerEvent); ok {
			h(e)
			return true
		}
	case WheelListener:
		if e, ok := ev.(*WheelEvent); ok {
			h(e)
			return true
		}
	case UnloadListener:
		if e, ok := ev.(*BeforeUnloadEvent); ok {
			h(e)
			return true
		}
	case NotifyListener:
		if e, ok := ev.(*Event); ok {
			h(e)
			return true
		}
	}
	return false
}

// Registry owns a fixed set of registrations
type Registry struct {
	registrations []*Registration
	attached      bool
	detached      bool
}

// NewRegistry creates a registry over regs. Nothing is bound until AttachAll.
func NewRegistry(regs ...*Registration) *Registry {
	return &Registry{registrations: regs}
}

// AttachAll binds every registration to its source, in declaration order
func (r *Registry) AttachAll() {
	if r.attached {
		logger.Debug("Listener registry already attached")
		return
	}
	r.attached = true

	for _, reg := range r.registrations {
		reg.Source.AddEventListener(reg)
	}
	logger.Debugf("Attached %d listeners", len(r.registrations))
}

// DetachAll unbinds every registration, in declaration order. Only the
// first call after AttachAll has any effect.
func (r *Registry) DetachAll() {
	if !r.attached {
		logger.Debug("Listener registry not attached, nothing to detach")
		return
	}
	if r.detached {
		logger.Debug("Listener registry already detached")
		return
	}
	r.detached = true

	for _, reg := range r.registrations {
		reg.Source.RemoveEventListener(reg)
	}
	logger.Debugf("Detached %d listeners", len(r.registrations))
}

// Registrations returns the registrations in declaration order
func (r *Registry) Registrations() []*Registration {
	return r.registrations
}

// Len returns the number of registrations
func (r *Registry) Len() int {
	return len(r.registrations)
}
