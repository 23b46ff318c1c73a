package service

import "errors"

var (
	// ErrBoardNotFound is returned for an unknown board id.
	ErrBoardNotFound = errors.New("board not found")
	// ErrNoActiveBoard is returned when a call relies on an active board and
	// none has been chosen.
	ErrNoActiveBoard = errors.New("no active board")
	// ErrNotEditing is returned when text is committed while no text element
	// is being edited.
	ErrNotEditing = errors.New("no text element is being edited")
)
