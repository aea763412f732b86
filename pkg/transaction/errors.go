package transaction

import "errors"

// ErrInvalidArgument marks a malformed filter, sort or page spec.
// The non-strict stages never return it; they yield empty results instead.
var ErrInvalidArgument = errors.New("invalid argument")
