package bridge

import (
	"slices"

	"github.com/bnema/inputgate/internal/input"
	"github.com/bnema/inputgate/internal/ipc"
)

// snapshot is the host as described by the event being handled. Side
// effects on it are recorded as reply actions for the host to perform.
type snapshot struct {
	ev      *ipc.HostEvent
	actions []ipc.Action
}

func (s *snapshot) load(ev *ipc.HostEvent) {
	s.ev = ev
	s.actions = nil
}

func (s *snapshot) record(a ipc.Action) {
	s.actions = append(s.actions, a)
}

// target returns the innermost node of the event target chain, or nil
func (s *snapshot) target() input.Element {
	if s.ev == nil || len(s.ev.Target) == 0 {
		return nil
	}
	return &element{host: s, index: 0}
}

func (s *snapshot) IsVisible() bool {
	return s.ev != nil && s.ev.DialogVisible
}

func (s *snapshot) Dismiss() {
	if s.ev != nil {
		s.ev.DialogVisible = false
	}
	s.record(ipc.Action{Action: ipc.ActionDismissDialog})
}

func (s *snapshot) Submit() {
	s.record(ipc.Action{Action: ipc.ActionSubmitDialog})
}

func (s *snapshot) Toggle() {
	s.record(ipc.Action{Action: ipc.ActionToggleFullscreen})
}

func (s *snapshot) ModeChanged() {
	s.record(ipc.Action{Action: ipc.ActionFullscreenChanged})
}

func (s *snapshot) Documents() []input.Document {
	if s.ev == nil {
		return nil
	}
	docs := make([]input.Document, 0, len(s.ev.Documents))
	for _, saved := range s.ev.Documents {
		docs = append(docs, savedFlag(saved))
	}
	return docs
}

func (s *snapshot) QueryAll(class string) []input.Element {
	if s.ev == nil || class != input.CanvasClass {
		return nil
	}
	canvases := make([]input.Element, 0, len(s.ev.Canvases))
	for _, r := range s.ev.Canvases {
		canvases = append(canvases, canvas(r))
	}
	return canvases
}

type savedFlag bool

func (f savedFlag) IsSaved() bool { return bool(f) }

// element is a node of the target chain; its parent sits at index+1
type element struct {
	host  *snapshot
	index int
}

func (e *element) node() *ipc.Node {
	return &e.host.ev.Target[e.index]
}

func (e *element) Closest(class string) input.Element {
	for i := e.index; i < len(e.host.ev.Target); i++ {
		if slices.Contains(e.host.ev.Target[i].Classes, class) {
			return &element{host: e.host, index: i}
		}
	}
	return nil
}

func (e *element) IsTextEntry() bool {
	return e.node().TextEntry
}

func (e *element) BoundingRect() input.Rect {
	return toRect(e.node().Rect)
}

func (e *element) ScrollLeft() float64 {
	return e.node().ScrollLeft
}

func (e *element) ScrollTo(x, y float64) {
	e.node().ScrollLeft = x
	e.host.record(ipc.Action{Action: ipc.ActionScrollTo, Node: e.index, X: x, Y: y})
}

// canvas is a rendered canvas known only by its bounds
type canvas [4]float64

func (c canvas) Closest(class string) input.Element {
	if class == input.CanvasClass {
		return c
	}
	return nil
}

func (canvas) IsTextEntry() bool          { return false }
func (c canvas) BoundingRect() input.Rect { return toRect(c) }
func (canvas) ScrollLeft() float64        { return 0 }
func (canvas) ScrollTo(float64, float64)  {}

func toRect(r [4]float64) input.Rect {
	return input.Rect{Left: r[0], Top: r[1], Right: r[2], Bottom: r[3]}
}

// source holds the listeners bound to one host event source
type source struct {
	regs []*input.Registration
}

func (s *source) AddEventListener(reg *input.Registration) {
	s.regs = append(s.regs, reg)
}

func (s *source) RemoveEventListener(reg *input.Registration) {
	s.regs = slices.DeleteFunc(s.regs, func(r *input.Registration) bool { return r == reg })
}

// dispatch delivers ev to every listener bound for kind, in binding order
func (s *source) dispatch(kind input.EventKind, ev any) int {
	delivered := 0
	for _, reg := range slices.Clone(s.regs) {
		if reg.Kind == kind && input.Deliver(reg, ev) {
			delivered++
		}
	}
	return delivered
}
