package gamefw

import "errors"

// Sentinel errors returned (wrapped) by registry, camera and binding
// operations. Match them with errors.Is.
var (
	// ErrDuplicateKey is returned when a name is registered twice.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned when a name lookup has no match.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for out-of-range values such as a
	// non-positive zoom factor.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when an operation is not allowed in the
	// current lifecycle phase, e.g. registering after updates began.
	ErrInvalidState = errors.New("invalid state")
)
