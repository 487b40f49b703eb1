package quartz

import "errors"

// Errors returned by quartz. They are wrapped with context; test for them
// with errors.Is.
var (
	// ErrGeometry is returned for malformed geometry: nil geometries,
	// non-finite coordinates, or an event stream that leaves a figure open.
	ErrGeometry = errors.New("quartz: invalid geometry")

	// ErrAllocation is returned when a pixel buffer cannot be created at
	// the requested size.
	ErrAllocation = errors.New("quartz: cannot allocate buffer")

	// ErrInvalidMask is returned when a mask image description is
	// inconsistent with its data.
	ErrInvalidMask = errors.New("quartz: invalid mask image")

	// ErrStateMismatch reports a RestoreState without a matching
	// SaveState, or saved states left at teardown.
	ErrStateMismatch = errors.New("quartz: unbalanced save/restore")
)
