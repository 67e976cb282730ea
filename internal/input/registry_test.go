package input

import (
	"bytes"
	"os"
	"testing"

	"github.com/bnema/inputgate/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrationRejectsMismatchedHandler(t *testing.T) {
	src := &fakeSource{}

	assert.Panics(t, func() {
		NewRegistration(src, KindWheel, KeyListener(func(*KeyboardEvent) {}), ListenerOptions{})
	})
	assert.Panics(t, func() {
		NewRegistration(src, KindKeyDown, nil, ListenerOptions{})
	})
	assert.NotPanics(t, func() {
		NewRegistration(src, KindMouseDown, PointerListener(func(*PointerEvent) {}), ListenerOptions{})
	})
}

func TestRegistryAttachDetachOrder(t *testing.T) {
	win := &fakeSource{}
	doc := &fakeSource{}
	nop := NotifyListener(func(*Event) {})

	registry := NewRegistry(
		NewRegistration(win, KindResize, nop, ListenerOptions{}),
		NewRegistration(doc, KindContextMenu, nop, ListenerOptions{}),
		NewRegistration(win, KindKeyDown, KeyListener(func(*KeyboardEvent) {}), ListenerOptions{}),
	)
	require.Equal(t, 3, registry.Len())
	assert.Empty(t, win.bound, "nothing bound before AttachAll")

	registry.AttachAll()
	assert.Equal(t, []EventKind{KindResize, KindKeyDown}, win.added)
	assert.Equal(t, []EventKind{KindContextMenu}, doc.added)

	registry.DetachAll()
	assert.Equal(t, []EventKind{KindResize, KindKeyDown}, win.removed)
	assert.Equal(t, []EventKind{KindContextMenu}, doc.removed)
	assert.Empty(t, win.bound)
	assert.Empty(t, doc.bound)

	// A second detach must not touch the sources again
	registry.DetachAll()
	assert.Len(t, win.removed, 2)
}

func TestRegistryDetachLogs(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLevel("debug")
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel("info")
	})

	registry := NewRegistry(NewRegistration(&fakeSource{}, KindResize, NotifyListener(func(*Event) {}), ListenerOptions{}))

	registry.DetachAll()
	assert.Contains(t, buf.String(), "not attached")

	registry.AttachAll()
	registry.DetachAll()
	buf.Reset()

	registry.DetachAll()
	assert.Contains(t, buf.String(), "already detached")
	assert.NotContains(t, buf.String(), "not attached")
}

func TestDeliver(t *testing.T) {
	src := &fakeSource{}
	var got *KeyboardEvent
	reg := NewRegistration(src, KindKeyDown, KeyListener(func(e *KeyboardEvent) { got = e }), ListenerOptions{})

	assert.False(t, Deliver(reg, &PointerEvent{}), "pointer event must not reach a key listener")
	assert.Nil(t, got)

	ev := keyDown("a", nil)
	assert.True(t, Deliver(reg, ev))
	assert.Same(t, ev, got)
}
