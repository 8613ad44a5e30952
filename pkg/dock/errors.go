package dock

import "errors"

// Sentinel errors for the mutation and persistence failure classes. All of
// them are local and non-fatal: the tree is left in its prior valid state
// and callers test with errors.Is.
var (
	// ErrNotFound means an identifier did not resolve to a node.
	ErrNotFound = errors.New("node not found")
	// ErrDuplicate means an insert collided with an existing identifier.
	ErrDuplicate = errors.New("duplicate node id")
	// ErrInvalidArgument covers malformed directions, orientations and
	// serialized document shapes.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrVersionMismatch means a persisted layout carries an unsupported
	// version tag.
	ErrVersionMismatch = errors.New("unsupported layout version")
	// ErrIO wraps layout file open/read/write failures.
	ErrIO = errors.New("layout file i/o failure")
)
