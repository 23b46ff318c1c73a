package controller

import (
	"strings"

	"whiteboard/internal/domain"
)

// Shortcut is a key press with its modifiers, independent of the front-end.
type Shortcut struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
}

// HandleShortcut runs the undo/redo bindings: ctrl/meta+z undoes,
// ctrl/meta+y and ctrl/meta+shift+z redo. Keys typed into a text edit are
// left to the edit field. It reports whether the key was consumed.
func (c *Controller) HandleShortcut(s Shortcut) bool {
	if c.action == domain.ActionWriting || !(s.Ctrl || s.Meta) {
		return false
	}
	switch strings.ToLower(s.Key) {
	case "z":
		if s.Shift {
			c.Redo()
		} else {
			c.Undo()
		}
		return true
	case "y":
		c.Redo()
		return true
	}
	return false
}
