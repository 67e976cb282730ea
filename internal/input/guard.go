package input

// DefaultUnsavedMessage is the prompt shown when closing with unsaved work
const DefaultUnsavedMessage = "Unsaved work will be lost if the web browser tab is closed. Close anyway?"

// AllSaved reports whether every document is saved. No documents counts as saved.
func AllSaved(docs []Document) bool {
	for _, doc := range docs {
		if !doc.IsSaved() {
			return false
		}
	}
	return true
}

// UnsavedGuard blocks closing the host while documents have unsaved changes
type UnsavedGuard struct {
	documents Documents
	message   string
}

// NewUnsavedGuard creates a guard. An empty message selects DefaultUnsavedMessage.
func NewUnsavedGuard(documents Documents, message string) *UnsavedGuard {
	if message == "" {
		message = DefaultUnsavedMessage
	}
	return &UnsavedGuard{
		documents: documents,
		message:   message,
	}
}

// HandleBeforeUnload asks the host to confirm the close when work is unsaved.
// It reports whether the close was blocked.
func (g *UnsavedGuard) HandleBeforeUnload(e *BeforeUnloadEvent) bool {
	if g.documents == nil || AllSaved(g.documents.Documents()) {
		return false
	}

	e.ReturnValue = g.message
	e.PreventDefault()
	return true
}

// Message returns the confirmation prompt
func (g *UnsavedGuard) Message() string {
	return g.message
}
