package world

import "errors"

// Error sentinels for the two failure classes the pipeline distinguishes.
// Services wrap these with fmt.Errorf("...: %w", ...) so callers can branch
// with errors.Is while logs keep the full context.
var (
	// ErrBadInput marks malformed caller input: nil grids, negative
	// dimensions, out-of-range environmental values.
	ErrBadInput = errors.New("bad input")

	// ErrInternal marks a broken pipeline invariant. Seeing it means a
	// generator bug, not a caller mistake.
	ErrInternal = errors.New("internal generation error")
)
