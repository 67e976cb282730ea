package input

import (
	"maps"

	"github.com/bnema/inputgate/internal/logger"
)

// Backend command names, used for stats and on the wire
const (
	CommandKeyDown           = "on_key_down"
	CommandKeyUp             = "on_key_up"
	CommandMouseMove         = "on_mouse_move"
	CommandMouseDown         = "on_mouse_down"
	CommandMouseUp           = "on_mouse_up"
	CommandMouseScroll       = "on_mouse_scroll"
	CommandBoundsOfViewports = "bounds_of_viewports"
)

// DialogClass marks the modal dialog wrapper around DialogContentClass
const DialogClass = "dialog-modal"

// Mouse button numbers as reported in PointerEvent.Button
const (
	ButtonPrimary   = 0
	ButtonAuxiliary = 1
	ButtonSecondary = 2
)

// Options wires a Manager to its host and collaborators
type Options struct {
	// Window receives resize, beforeunload, key, pointer and wheel listeners
	Window EventSource
	// Document receives contextmenu and fullscreenchange listeners
	Document EventSource
	// Container holds the canvases whose bounds are reported
	Container Container

	Backend    Backend
	Dialog     Dialog
	Fullscreen Fullscreen
	Documents  Documents

	// UnsavedMessage overrides DefaultUnsavedMessage
	UnsavedMessage string
	// KeyRules overrides DefaultKeyRules
	KeyRules []KeyRule
}

// Stats is a snapshot of what the manager has done so far
type Stats struct {
	Listeners int
	Ongoing   bool
	// Forwarded counts backend commands by command name
	Forwarded map[string]uint64
}

// Manager routes host events to the backend or leaves them to the host.
// It is not safe for concurrent use: the host delivers one event at a time.
type Manager struct {
	opts      Options
	registry  *Registry
	tracker   *InteractionTracker
	policy    *Policy
	guard     *UnsavedGuard
	forwarded map[string]uint64
	closed    bool
}

// NewManager binds every listener and reports the initial viewport bounds
func NewManager(opts Options) *Manager {
	if opts.Backend == nil {
		opts.Backend = nopBackend{}
	}
	if opts.Dialog == nil {
		opts.Dialog = nopDialog{}
	}
	if opts.Fullscreen == nil {
		opts.Fullscreen = nopFullscreen{}
	}
	rules := opts.KeyRules
	if rules == nil {
		rules = DefaultKeyRules()
	}

	m := &Manager{
		opts:      opts,
		tracker:   NewInteractionTracker(),
		policy:    NewPolicy(rules, opts.Dialog, opts.Fullscreen),
		guard:     NewUnsavedGuard(opts.Documents, opts.UnsavedMessage),
		forwarded: make(map[string]uint64),
	}
	m.registry = NewRegistry(m.registrations()...)
	m.registry.AttachAll()

	m.onResize(&Event{})

	logger.Debug("Input manager ready", "listeners", m.registry.Len())
	return m
}

func (m *Manager) registrations() []*Registration {
	win, doc := m.opts.Window, m.opts.Document
	return []*Registration{
		NewRegistration(win, KindResize, NotifyListener(m.onResize), ListenerOptions{}),
		NewRegistration(win, KindBeforeUnload, UnloadListener(m.onBeforeUnload), ListenerOptions{}),
		NewRegistration(doc, KindContextMenu, NotifyListener(m.onContextMenu), ListenerOptions{}),
		NewRegistration(doc, KindFullscreenChange, NotifyListener(m.onFullscreenChange), ListenerOptions{}),
		NewRegistration(win, KindKeyUp, KeyListener(m.onKeyUp), ListenerOptions{}),
		NewRegistration(win, KindKeyDown, KeyListener(m.onKeyDown), ListenerOptions{}),
		NewRegistration(win, KindPointerMove, PointerListener(m.onPointerMove), ListenerOptions{}),
		NewRegistration(win, KindPointerDown, PointerListener(m.onPointerDown), ListenerOptions{}),
		NewRegistration(win, KindPointerUp, PointerListener(m.onPointerUp), ListenerOptions{}),
		NewRegistration(win, KindMouseDown, PointerListener(m.onMouseDown), ListenerOptions{}),
		// Wheel must be able to cancel page scrolling over the canvas
		NewRegistration(win, KindWheel, WheelListener(m.onWheel), ListenerOptions{Passive: false}),
	}
}

// Close unbinds every listener. Later calls do nothing.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.registry.DetachAll()
}

// Registry returns the manager's listener registry
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Tracker returns the pointer interaction state
func (m *Manager) Tracker() *InteractionTracker {
	return m.tracker
}

// Stats returns a snapshot of the manager's counters
func (m *Manager) Stats() Stats {
	return Stats{
		Listeners: m.registry.Len(),
		Ongoing:   m.tracker.Ongoing(),
		Forwarded: maps.Clone(m.forwarded),
	}
}

func (m *Manager) count(command string) {
	m.forwarded[command]++
}

func (m *Manager) onResize(*Event) {
	if ReportBounds(m.opts.Container, m.opts.Backend) > 0 {
		m.count(CommandBoundsOfViewports)
	}
}

func (m *Manager) onBeforeUnload(e *BeforeUnloadEvent) {
	if m.guard.HandleBeforeUnload(e) {
		logger.Info("Close blocked, unsaved documents")
	}
}

func (m *Manager) onContextMenu(e *Event) {
	e.PreventDefault()
}

func (m *Manager) onFullscreenChange(*Event) {
	m.opts.Fullscreen.ModeChanged()
}

func (m *Manager) onKeyDown(e *KeyboardEvent) {
	key := LatinKey(e.Key, e.Code)
	if key == "" {
		return
	}

	if m.policy.Decide(e, key).Redirect {
		e.PreventDefault()
		m.opts.Backend.OnKeyDown(key, e.Modifiers.Bitfield())
		m.count(CommandKeyDown)
		return
	}

	if !m.opts.Dialog.IsVisible() {
		return
	}
	switch key {
	case "escape":
		m.opts.Dialog.Dismiss()
	case "enter":
		m.opts.Dialog.Submit()
		// Keep Enter from clicking the last focused button, which may reopen the dialog
		e.PreventDefault()
	}
}

func (m *Manager) onKeyUp(e *KeyboardEvent) {
	key := LatinKey(e.Key, e.Code)
	if key == "" {
		return
	}

	if m.policy.Decide(e, key).Redirect {
		e.PreventDefault()
		m.opts.Backend.OnKeyUp(key, e.Modifiers.Bitfield())
		m.count(CommandKeyUp)
	}
}

func (m *Manager) onPointerMove(e *PointerEvent) {
	if !m.tracker.Move(e.Buttons) {
		return
	}
	m.opts.Backend.OnMouseMove(e.X, e.Y, e.Buttons, e.Modifiers.Bitfield())
	m.count(CommandMouseMove)
}

func (m *Manager) onPointerDown(e *PointerEvent) {
	inCanvas := within(e.Target, CanvasClass) != nil

	// Middle click would start the host's auto-scroll mode
	if e.Button == ButtonAuxiliary {
		e.PreventDefault()
	}

	if m.opts.Dialog.IsVisible() && !inDialog(e.Target) {
		m.opts.Dialog.Dismiss()
		e.PreventDefault()
		e.StopPropagation()
	}

	if !m.tracker.Press(inCanvas) {
		return
	}
	m.opts.Backend.OnMouseDown(e.X, e.Y, e.Buttons, e.Modifiers.Bitfield())
	m.count(CommandMouseDown)
}

func (m *Manager) onPointerUp(e *PointerEvent) {
	if !m.tracker.Release(e.Buttons) {
		return
	}
	m.opts.Backend.OnMouseUp(e.X, e.Y, e.Buttons, e.Modifiers.Bitfield())
	m.count(CommandMouseUp)
}

func (m *Manager) onMouseDown(e *PointerEvent) {
	if e.Button == ButtonAuxiliary {
		e.PreventDefault()
	}
}

func (m *Manager) onWheel(e *WheelEvent) {
	if RouteWheel(e, m.opts.Backend) == ScrollBackend {
		m.count(CommandMouseScroll)
	}
}

// inDialog reports whether target lies in the content of a modal dialog
func inDialog(target Element) bool {
	content := within(target, DialogContentClass)
	return content != nil && content.Closest(DialogClass) != nil
}
