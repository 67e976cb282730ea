package input

// ScrollOutcome says where a wheel event went
type ScrollOutcome uint8

const (
	// ScrollIgnored means the event was left to the host
	ScrollIgnored ScrollOutcome = iota
	// ScrollNative means a horizontal strip was scrolled by the vertical delta
	ScrollNative
	// ScrollBackend means the gesture was forwarded to the backend
	ScrollBackend
)

// String returns a string representation of the outcome
func (o ScrollOutcome) String() string {
	switch o {
	case ScrollNative:
		return "native"
	case ScrollBackend:
		return "backend"
	default:
		return "ignored"
	}
}

// RouteWheel turns vertical wheel motion over a horizontally scrollable
// strip into horizontal scrolling of that strip. Otherwise a wheel event
// over a canvas goes to the backend with all three deltas.
func RouteWheel(e *WheelEvent, backend Backend) ScrollOutcome {
	if strip := within(e.Target, HorizontalScrollClass); strip != nil && e.DeltaY != 0 {
		strip.ScrollTo(strip.ScrollLeft()+e.DeltaY, 0)
		return ScrollNative
	}

	if within(e.Target, CanvasClass) == nil {
		return ScrollIgnored
	}

	e.PreventDefault()
	backend.OnMouseScroll(e.X, e.Y, e.Buttons, e.DeltaX, e.DeltaY, e.DeltaZ, e.Modifiers.Bitfield())
	return ScrollBackend
}
