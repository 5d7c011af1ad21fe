package progress

import "errors"

// ErrInvalidArgument rejects malformed transaction inputs (negative XP,
// unparsable levels, empty ids).
var ErrInvalidArgument = errors.New("invalid argument")
