package sigs

import "github.com/iov-one/vault/errors"

// ErrInvalidSequence is returned when a signature carries another
// sequence than the one stored for its key.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
