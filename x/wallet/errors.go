package wallet

import (
	"github.com/iov-one/vault/errors"
)

// Callers that are not owners, or direct administrative calls, fail with
// errors.ErrUnauthorized.
var (
	ErrUnknownTransaction          = errors.Register(200, "unknown transaction")
	ErrUnknownOwner                = errors.Register(201, "unknown owner")
	ErrDuplicateOwner              = errors.Register(202, "duplicate owner")
	ErrInvalidOwner                = errors.Register(203, "invalid owner")
	ErrTooManyOwners               = errors.Register(204, "too many owners")
	ErrInvalidRequirement          = errors.Register(205, "invalid requirement")
	ErrAlreadyConfirmed            = errors.Register(206, "already confirmed")
	ErrNotConfirmed                = errors.Register(207, "not confirmed")
	ErrAlreadyExecuted             = errors.Register(208, "already executed")
	ErrQuorumNotMet                = errors.Register(209, "quorum not met")
	ErrGasTokenNotConfigured       = errors.Register(210, "gas token not configured")
	ErrInsufficientGasTokenBalance = errors.Register(211, "insufficient gas token balance")
	ErrAlreadySet                  = errors.Register(212, "already set")
)
