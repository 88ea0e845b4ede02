package input

import "errors"

var (
	// ErrAlreadyAttached is returned by Attach when the tracker already owns a source.
	ErrAlreadyAttached = errors.New("tracker already attached to a source")
	// ErrNotAttached is returned by Detach when no source is attached.
	ErrNotAttached = errors.New("tracker not attached")
	// ErrContextMenuUnsupported is returned when the attached source has no context menu to control.
	ErrContextMenuUnsupported = errors.New("source does not support context menu control")
)
