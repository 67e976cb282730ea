// Package input decides, for every native host event, whether the host UI
// keeps it or the editor backend receives it as an input command.
package input

// Modifier bits as sent to the backend
const (
	ModCtrl  = 1 << 0
	ModShift = 1 << 1
	ModAlt   = 1 << 2
)

// Modifiers holds the modifier key state carried by a keyboard or pointer event
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// EncodeModifiers packs control, shift and alt into the backend bitfield.
// Meta is not part of the bitfield.
func EncodeModifiers(ctrl, shift, alt bool) uint8 {
	var bits uint8
	if ctrl {
		bits |= ModCtrl
	}
	if shift {
		bits |= ModShift
	}
	if alt {
		bits |= ModAlt
	}
	return bits
}

// Bitfield returns the backend encoding of m
func (m Modifiers) Bitfield() uint8 {
	return EncodeModifiers(m.Ctrl, m.Shift, m.Alt)
}
