package stockwatch

import "errors"

// Sentinel errors forming the package error taxonomy. Callers test for them
// with errors.Is; everything else is wrapped context around one of these or
// a plain formatting error.
var (
	// ErrDivisionUndefined reports a computation against a zero baseline or
	// target price. Prices are validated to be strictly positive and target
	// drops to be below 100%, so hitting it means the store or configuration
	// is corrupted. It is never swallowed: it aborts the whole operation.
	ErrDivisionUndefined = errors.New("division undefined")

	// ErrPersistenceCorrupt reports a persisted store that fails to parse or
	// violates the documented shape. Loading stops at the first violation:
	// partial trust in a corrupted store is worse than refusing to start.
	ErrPersistenceCorrupt = errors.New("tracking data corrupt")
)
