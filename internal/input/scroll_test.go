package input

import "testing"

func TestRouteWheel(t *testing.T) {
	t.Run("vertical wheel over a horizontal strip", func(t *testing.T) {
		strip := &fakeElement{classes: []string{HorizontalScrollClass}, scrollLeft: 30}
		tab := node(strip, "tab")
		backend := &recordingBackend{}

		e := &WheelEvent{PointerEvent: PointerEvent{Event: Event{Target: tab}}, DeltaY: 50}
		if got := RouteWheel(e, backend); got != ScrollNative {
			t.Fatalf("RouteWheel() = %v, want native", got)
		}
		if strip.scrollLeft != 80 {
			t.Errorf("scrollLeft = %v, want 80", strip.scrollLeft)
		}
		if len(backend.calls) != 0 {
			t.Errorf("Expected no backend call, got %v", backend.names())
		}
	})

	t.Run("horizontal-only wheel over a strip inside a canvas", func(t *testing.T) {
		canvas := node(nil, CanvasClass)
		strip := node(canvas, HorizontalScrollClass)
		backend := &recordingBackend{}

		e := &WheelEvent{PointerEvent: PointerEvent{Event: Event{Target: strip}}, DeltaX: 12}
		if got := RouteWheel(e, backend); got != ScrollBackend {
			t.Fatalf("RouteWheel() = %v, want backend", got)
		}
		if strip.scrolls != 0 {
			t.Error("Expected the strip not to scroll")
		}
	})

	t.Run("wheel over the canvas", func(t *testing.T) {
		canvas := node(nil, CanvasClass)
		backend := &recordingBackend{}

		e := &WheelEvent{
			PointerEvent: PointerEvent{
				Event:     Event{Target: node(canvas)},
				X:         120,
				Y:         80,
				Buttons:   4,
				Modifiers: Modifiers{Ctrl: true},
			},
			DeltaX: 1,
			DeltaY: -3,
			DeltaZ: 0.5,
		}
		if got := RouteWheel(e, backend); got != ScrollBackend {
			t.Fatalf("RouteWheel() = %v, want backend", got)
		}
		if len(backend.calls) != 1 {
			t.Fatalf("Expected one backend call, got %d", len(backend.calls))
		}
		c := backend.calls[0]
		if c.Name != CommandMouseScroll || c.X != 120 || c.Y != 80 || c.Buttons != 4 || c.Mods != ModCtrl {
			t.Errorf("unexpected call %+v", c)
		}
		if c.Deltas != [3]float64{1, -3, 0.5} {
			t.Errorf("Deltas = %v", c.Deltas)
		}
		if !e.DefaultPrevented() {
			t.Error("Expected page scrolling to be prevented")
		}
	})

	t.Run("wheel over chrome", func(t *testing.T) {
		backend := &recordingBackend{}
		e := &WheelEvent{PointerEvent: PointerEvent{Event: Event{Target: node(nil, "panel")}}, DeltaY: 10}
		if got := RouteWheel(e, backend); got != ScrollIgnored {
			t.Errorf("RouteWheel() = %v, want ignored", got)
		}
		if e.DefaultPrevented() || len(backend.calls) != 0 {
			t.Error("Expected the event to be left to the host")
		}
	})

	t.Run("nil target", func(t *testing.T) {
		backend := &recordingBackend{}
		if got := RouteWheel(&WheelEvent{DeltaY: 1}, backend); got != ScrollIgnored {
			t.Errorf("RouteWheel() = %v, want ignored", got)
		}
	})
}
