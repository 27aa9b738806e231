package analysis

import "errors"

var (
	// ErrNoGraph means no graph is loaded for the request. Recoverable:
	// callers report it and reject the request.
	ErrNoGraph = errors.New("no graph loaded")

	// ErrPeelingProcess means the external peeling process exited before
	// producing output or emitted an unparsable result line.
	ErrPeelingProcess = errors.New("peeling process failed")

	// ErrMissingDecomposition means the underlying library produced no
	// core decomposition for a non-empty graph. This indicates a
	// library-level bug and is not recoverable.
	ErrMissingDecomposition = errors.New("missing core decomposition")
)
