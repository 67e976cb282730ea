package input

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Element class names the host marks its UI with
const (
	CanvasClass           = "canvas"
	HorizontalScrollClass = "scrollable-x"
	DialogContentClass    = "floating-menu-content"
)

// EventKind identifies a host event
type EventKind uint8

const (
	KindResize EventKind = iota + 1
	KindBeforeUnload
	KindContextMenu
	KindFullscreenChange
	KindKeyDown
	KindKeyUp
	KindPointerMove
	KindPointerDown
	KindPointerUp
	KindMouseDown
	KindWheel
)

var kindNames = map[EventKind]string{
	KindResize:           "resize",
	KindBeforeUnload:     "beforeunload",
	KindContextMenu:      "contextmenu",
	KindFullscreenChange: "fullscreenchange",
	KindKeyDown:          "keydown",
	KindKeyUp:            "keyup",
	KindPointerMove:      "pointermove",
	KindPointerDown:      "pointerdown",
	KindPointerUp:        "pointerup",
	KindMouseDown:        "mousedown",
	KindWheel:            "wheel",
}

// String returns the host name of the event kind
func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseEventKind maps a host event name to its kind
func ParseEventKind(name string) (EventKind, bool) {
	for kind, n := range kindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// Rect is a bounding rectangle in viewport coordinates
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Element is a node of the host UI tree
type Element interface {
	// Closest returns the nearest element carrying class, starting with
	// the element itself and walking up its ancestors, or nil.
	Closest(class string) Element
	// IsTextEntry reports whether the element accepts typed text
	// (input, textarea or content-editable).
	IsTextEntry() bool
	BoundingRect() Rect
	ScrollLeft() float64
	ScrollTo(x, y float64)
}

// Container holds the rendered canvases
type Container interface {
	// QueryAll returns every element carrying class, in document order
	QueryAll(class string) []Element
}

// within reports whether target has an ancestor-or-self with class.
// A nil target never matches.
func within(target Element, class string) Element {
	if target == nil {
		return nil
	}
	return target.Closest(class)
}

// Event is the part shared by every host event
type Event struct {
	Target Element

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault stops the host from running its native default action
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation stops the host from delivering the event further
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault was called
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// KeyboardEvent is a key press or release
type KeyboardEvent struct {
	Event
	Kind      EventKind
	Key       string
	Code      string
	Repeat    bool
	Modifiers Modifiers
}

// IsKeyDown reports whether the event is a press
func (e *KeyboardEvent) IsKeyDown() bool {
	return e.Kind == KindKeyDown
}

// PointerEvent is a pointer move, press or release
type PointerEvent struct {
	Event
	X float64
	Y float64
	// Button is the button that changed state (0 left, 1 middle, 2 right)
	Button int
	// Buttons is the mask of buttons currently held
	Buttons   uint16
	Modifiers Modifiers
}

// WheelEvent is a scroll gesture
type WheelEvent struct {
	PointerEvent
	DeltaX float64
	DeltaY float64
	DeltaZ float64
}

// BeforeUnloadEvent is the host's tab-close intent
type BeforeUnloadEvent struct {
	Event
	// ReturnValue, when set together with PreventDefault, is the
	// confirmation prompt shown by the host
	ReturnValue string
}

// Highest code point still considered Latin
const lastLatinRune = 0x024F

var codeKeys = map[string]string{
	"Minus":        "-",
	"Equal":        "=",
	"BracketLeft":  "[",
	"BracketRight": "]",
	"Backslash":    "\\",
	"Semicolon":    ";",
	"Quote":        "'",
	"Comma":        ",",
	"Period":       ".",
	"Slash":        "/",
	"Backquote":    "`",
	"Space":        " ",
}

// LatinKey returns the lower-cased key name the backend expects. Printable
// characters outside the Latin range are replaced by the key at the same
// physical position on a US layout. An empty result means the key cannot
// be represented.
func LatinKey(key, code string) string {
	if key == "" {
		return ""
	}
	lower := cases.Lower(language.Und).String(key)

	// Named keys such as "Enter" or "F11" pass through
	if utf8.RuneCountInString(key) > 1 {
		return lower
	}

	r, _ := utf8.DecodeRuneInString(lower)
	if r > lastLatinRune {
		return codeToKey(code)
	}
	return lower
}

func codeToKey(code string) string {
	switch {
	case strings.HasPrefix(code, "Key") && len(code) == 4:
		return strings.ToLower(code[3:])
	case strings.HasPrefix(code, "Digit") && len(code) == 6:
		return code[5:]
	}
	return codeKeys[code]
}
