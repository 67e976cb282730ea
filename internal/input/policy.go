package input

import "github.com/bnema/inputgate/internal/logger"

// Rule names, in evaluation order
const (
	RuleTextEntry        = "text-entry"
	RuleDialogOpen       = "dialog-open"
	RuleFullscreenToggle = "fullscreen-toggle"
	RuleReload           = "reload"
	RuleDevTools         = "devtools"
	RuleBackend          = "backend"
)

// KeyContext is what a rule sees of a key event
type KeyContext struct {
	Event *KeyboardEvent
	// Key is the lower-cased Latin key name, see LatinKey
	Key        string
	Dialog     Dialog
	Fullscreen Fullscreen
}

// KeyRule is one step of the redirection policy
type KeyRule struct {
	Name  string
	Match func(*KeyContext) bool
	// Apply runs when the rule matches, before the decision is returned
	Apply func(*KeyContext)
	// Redirect is the decision when the rule matches
	Redirect bool
}

// Decision is the outcome of the redirection policy for one key event
type Decision struct {
	Redirect bool
	Rule     string
}

// InTextEntry matches events aimed at a text field or content-editable region
func InTextEntry(c *KeyContext) bool {
	return c.Event.Target != nil && c.Event.Target.IsTextEntry()
}

// DialogOpen matches while a modal dialog covers the workspace
func DialogOpen(c *KeyContext) bool {
	return c.Dialog.IsVisible()
}

// FullscreenRequest matches the first press of F11
func FullscreenRequest(c *KeyContext) bool {
	return c.Key == "f11" && c.Event.IsKeyDown() && !c.Event.Repeat
}

// ReloadRequest matches F5
func ReloadRequest(c *KeyContext) bool {
	return c.Key == "f5"
}

// DevToolsRequest matches F12 and the Ctrl+Shift chords that open the
// element picker (C), the inspector (I) and the console (J)
func DevToolsRequest(c *KeyContext) bool {
	if c.Key == "f12" {
		return true
	}
	mods := c.Event.Modifiers
	if !mods.Ctrl || !mods.Shift {
		return false
	}
	switch c.Key {
	case "c", "i", "j":
		return true
	}
	return false
}

func toggleFullscreen(c *KeyContext) {
	c.Event.PreventDefault()
	c.Fullscreen.Toggle()
}

func always(*KeyContext) bool {
	return true
}

// DefaultKeyRules returns the redirection policy: keys stay with the host
// UI for text entry, open dialogs, fullscreen, reload and developer tools,
// and go to the backend otherwise.
func DefaultKeyRules() []KeyRule {
	return []KeyRule{
		{Name: RuleTextEntry, Match: InTextEntry},
		{Name: RuleDialogOpen, Match: DialogOpen},
		{Name: RuleFullscreenToggle, Match: FullscreenRequest, Apply: toggleFullscreen},
		{Name: RuleReload, Match: ReloadRequest},
		{Name: RuleDevTools, Match: DevToolsRequest},
		{Name: RuleBackend, Match: always, Redirect: true},
	}
}

// Policy evaluates key rules in order; the first match decides
type Policy struct {
	rules      []KeyRule
	dialog     Dialog
	fullscreen Fullscreen
}

// NewPolicy creates a policy over rules. Nil collaborators behave as a
// hidden dialog and a no-op fullscreen.
func NewPolicy(rules []KeyRule, dialog Dialog, fullscreen Fullscreen) *Policy {
	if dialog == nil {
		dialog = nopDialog{}
	}
	if fullscreen == nil {
		fullscreen = nopFullscreen{}
	}
	return &Policy{
		rules:      rules,
		dialog:     dialog,
		fullscreen: fullscreen,
	}
}

// Decide runs the rules against ev. key is the event's Latin key name.
// No match keeps the event with the host.
func (p *Policy) Decide(ev *KeyboardEvent, key string) Decision {
	ctx := &KeyContext{
		Event:      ev,
		Key:        key,
		Dialog:     p.dialog,
		Fullscreen: p.fullscreen,
	}

	for _, rule := range p.rules {
		if !rule.Match(ctx) {
			continue
		}
		if rule.Apply != nil {
			rule.Apply(ctx)
		}
		logger.Debug("Key routed", "key", key, "kind", ev.Kind, "rule", rule.Name, "redirect", rule.Redirect)
		return Decision{Redirect: rule.Redirect, Rule: rule.Name}
	}
	return Decision{}
}

// Rules returns the rules in evaluation order
func (p *Policy) Rules() []KeyRule {
	return p.rules
}

type nopDialog struct{}

func (nopDialog) IsVisible() bool { return false }
func (nopDialog) Dismiss()        {}
func (nopDialog) Submit()         {}

type nopFullscreen struct{}

func (nopFullscreen) Toggle()      {}
func (nopFullscreen) ModeChanged() {}
