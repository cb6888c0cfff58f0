package puzzle

import "errors"

var (
	ErrCorruptState     = errors.New("puzzle: corrupt state")
	ErrReadOnlyCall     = errors.New("puzzle: state-changing call made from a read-only execution")
	ErrPermissionDenied = errors.New("puzzle: permission denied")
)
