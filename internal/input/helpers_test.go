package input

import "slices"

// fakeElement is a node of a fake UI tree
type fakeElement struct {
	classes    []string
	parent     *fakeElement
	textEntry  bool
	rect       Rect
	scrollLeft float64
	scrolls    int
}

func node(parent *fakeElement, classes ...string) *fakeElement {
	return &fakeElement{parent: parent, classes: classes}
}

func (e *fakeElement) Closest(class string) Element {
	for n := e; n != nil; n = n.parent {
		if slices.Contains(n.classes, class) {
			return n
		}
	}
	return nil
}

func (e *fakeElement) IsTextEntry() bool     { return e.textEntry }
func (e *fakeElement) BoundingRect() Rect    { return e.rect }
func (e *fakeElement) ScrollLeft() float64   { return e.scrollLeft }
func (e *fakeElement) ScrollTo(x, _ float64) { e.scrollLeft = x; e.scrolls++ }

// fakeContainer returns its canvases for CanvasClass
type fakeContainer struct {
	canvases []Element
}

func (c *fakeContainer) QueryAll(class string) []Element {
	if class != CanvasClass {
		return nil
	}
	return c.canvases
}

// fakeSource records bindings and dispatches like a host would
type fakeSource struct {
	bound   []*Registration
	added   []EventKind
	removed []EventKind
}

func (s *fakeSource) AddEventListener(reg *Registration) {
	s.bound = append(s.bound, reg)
	s.added = append(s.added, reg.Kind)
}

func (s *fakeSource) RemoveEventListener(reg *Registration) {
	s.bound = slices.DeleteFunc(s.bound, func(r *Registration) bool { return r == reg })
	s.removed = append(s.removed, reg.Kind)
}

func (s *fakeSource) dispatch(kind EventKind, ev any) int {
	delivered := 0
	for _, reg := range s.bound {
		if reg.Kind == kind && Deliver(reg, ev) {
			delivered++
		}
	}
	return delivered
}

type call struct {
	Name    string
	Key     string
	X, Y    float64
	Buttons uint16
	Mods    uint8
	Deltas  [3]float64
	Bounds  []float64
}

// recordingBackend records every command it receives
type recordingBackend struct {
	calls []call
}

func (b *recordingBackend) OnKeyDown(key string, mods uint8) {
	b.calls = append(b.calls, call{Name: CommandKeyDown, Key: key, Mods: mods})
}

func (b *recordingBackend) OnKeyUp(key string, mods uint8) {
	b.calls = append(b.calls, call{Name: CommandKeyUp, Key: key, Mods: mods})
}

func (b *recordingBackend) OnMouseMove(x, y float64, buttons uint16, mods uint8) {
	b.calls = append(b.calls, call{Name: CommandMouseMove, X: x, Y: y, Buttons: buttons, Mods: mods})
}

func (b *recordingBackend) OnMouseDown(x, y float64, buttons uint16, mods uint8) {
	b.calls = append(b.calls, call{Name: CommandMouseDown, X: x, Y: y, Buttons: buttons, Mods: mods})
}

func (b *recordingBackend) OnMouseUp(x, y float64, buttons uint16, mods uint8) {
	b.calls = append(b.calls, call{Name: CommandMouseUp, X: x, Y: y, Buttons: buttons, Mods: mods})
}

func (b *recordingBackend) OnMouseScroll(x, y float64, buttons uint16, dx, dy, dz float64, mods uint8) {
	b.calls = append(b.calls, call{Name: CommandMouseScroll, X: x, Y: y, Buttons: buttons, Deltas: [3]float64{dx, dy, dz}, Mods: mods})
}

func (b *recordingBackend) BoundsOfViewports(bounds []float64) {
	b.calls = append(b.calls, call{Name: CommandBoundsOfViewports, Bounds: bounds})
}

func (b *recordingBackend) names() []string {
	names := make([]string, 0, len(b.calls))
	for _, c := range b.calls {
		names = append(names, c.Name)
	}
	return names
}

type fakeDialog struct {
	visible   bool
	dismissed int
	submitted int
}

func (d *fakeDialog) IsVisible() bool { return d.visible }
func (d *fakeDialog) Dismiss()        { d.dismissed++ }
func (d *fakeDialog) Submit()         { d.submitted++ }

type fakeFullscreen struct {
	toggled int
	changed int
}

func (f *fakeFullscreen) Toggle()      { f.toggled++ }
func (f *fakeFullscreen) ModeChanged() { f.changed++ }

type savedFlag bool

func (s savedFlag) IsSaved() bool { return bool(s) }

type fakeDocuments []Document

func (d fakeDocuments) Documents() []Document { return d }

func keyDown(key string, target Element) *KeyboardEvent {
	return &KeyboardEvent{Event: Event{Target: target}, Kind: KindKeyDown, Key: key}
}

func keyUp(key string, target Element) *KeyboardEvent {
	return &KeyboardEvent{Event: Event{Target: target}, Kind: KindKeyUp, Key: key}
}
