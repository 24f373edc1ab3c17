package token

import "github.com/iov-one/vault/errors"

var (
	ErrDuplicateToken = errors.Register(300, "duplicate token")
	ErrUnknownToken   = errors.Register(301, "unknown token")
	ErrInvalidTicker  = errors.Register(302, "invalid ticker")
)
