package tui

import (
	"github.com/nikbrunner/lnk/internal/linkeditor"
)

// Mode is the interaction mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditor
	ModeConfirmDelete
	ModeHelp
)

// MessageType controls how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// EditorState holds the link editor modal.
type EditorState struct {
	Editor linkeditor.Editor
	LinkID string // ID the editor commits to; generated for new links
	IsNew  bool   // opened with "add"
}

// Reset clears the editor state after the modal closes.
func (e *EditorState) Reset() {
	*e = EditorState{}
}

// ConfirmState holds the pending delete confirmation.
type ConfirmState struct {
	LinkID string
	Title  string
	URL    string
}

// Reset clears the pending confirmation.
func (c *ConfirmState) Reset() {
	*c = ConfirmState{}
}
