package input

// InteractionTracker gates pointer events to the canvas. An interaction
// starts with a press inside a canvas and lasts until a pointer event
// reports that no button is held any more, wherever the pointer is.
type InteractionTracker struct {
	// ongoing is set by a press inside a canvas and cleared once no
	// button remains held.
	ongoing bool
}

// NewInteractionTracker creates a tracker with no interaction ongoing
func NewInteractionTracker() *InteractionTracker {
	return &InteractionTracker{}
}

// Press handles a button press and reports whether it goes to the backend.
// A press inside a canvas always starts an interaction. A press outside
// one is still forwarded while an earlier interaction is ongoing.
func (t *InteractionTracker) Press(inCanvas bool) bool {
	if inCanvas {
		t.ongoing = true
	}
	return t.ongoing
}

// Move handles pointer movement and reports whether it goes to the backend
func (t *InteractionTracker) Move(buttons uint16) bool {
	return t.settle(buttons)
}

// Release handles a button release and reports whether it goes to the backend
func (t *InteractionTracker) Release(buttons uint16) bool {
	return t.settle(buttons)
}

// settle forwards based on the state at entry, then ends the interaction
// when no button is held. The release ending a drag is therefore still
// delivered, and a release missed outside the window is caught by the next
// buttonless move.
func (t *InteractionTracker) settle(buttons uint16) bool {
	forward := t.ongoing
	if buttons == 0 {
		t.ongoing = false
	}
	return forward
}

// Ongoing reports whether an interaction is in progress
func (t *InteractionTracker) Ongoing() bool {
	return t.ongoing
}

// Reset drops any ongoing interaction
func (t *InteractionTracker) Reset() {
	t.ongoing = false
}
