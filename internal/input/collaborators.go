package input

// Backend receives decoded input commands. Calls are fire-and-forget.
type Backend interface {
	OnKeyDown(key string, modifiers uint8)
	OnKeyUp(key string, modifiers uint8)
	OnMouseMove(x, y float64, buttons uint16, modifiers uint8)
	OnMouseDown(x, y float64, buttons uint16, modifiers uint8)
	OnMouseUp(x, y float64, buttons uint16, modifiers uint8)
	OnMouseScroll(x, y float64, buttons uint16, deltaX, deltaY, deltaZ float64, modifiers uint8)
	// BoundsOfViewports takes left, top, right, bottom for each canvas, flattened
	BoundsOfViewports(bounds []float64)
}

// Dialog is the modal dialog subsystem
type Dialog interface {
	IsVisible() bool
	Dismiss()
	Submit()
}

// Fullscreen is the fullscreen subsystem
type Fullscreen interface {
	Toggle()
	// ModeChanged is called after the host entered or left fullscreen
	ModeChanged()
}

// Document is one open document as seen by the unsaved-work guard
type Document interface {
	IsSaved() bool
}

// Documents lists the open documents
type Documents interface {
	Documents() []Document
}

type nopBackend struct{}

func (nopBackend) OnKeyDown(string, uint8)                                                  {}
func (nopBackend) OnKeyUp(string, uint8)                                                    {}
func (nopBackend) OnMouseMove(float64, float64, uint16, uint8)                              {}
func (nopBackend) OnMouseDown(float64, float64, uint16, uint8)                              {}
func (nopBackend) OnMouseUp(float64, float64, uint16, uint8)                                {}
func (nopBackend) OnMouseScroll(float64, float64, uint16, float64, float64, float64, uint8) {}
func (nopBackend) BoundsOfViewports([]float64)                                              {}
