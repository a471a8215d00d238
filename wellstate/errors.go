package wellstate

import "errors"

var (
	// ErrInvalidWellRole is returned when a well definition is neither an
	// injector nor a producer, or claims to be both.
	ErrInvalidWellRole = errors.New("wellstate: well must be either producer or injector")

	// ErrWellNotFound is returned when a well name or index is not present
	// in the container.
	ErrWellNotFound = errors.New("wellstate: well not found")

	// ErrConnectionMismatch is returned when supplied perforation data does
	// not match a well's existing connections (count, cell index or
	// saturation region). It signals an inconsistency between grid and
	// schedule snapshots upstream.
	ErrConnectionMismatch = errors.New("wellstate: perforation data does not match existing connections")
)
