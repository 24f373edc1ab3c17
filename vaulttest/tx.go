package vaulttest

import "github.com/iov-one/vault"

// Tx represents a single message transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg vault.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ vault.Tx = (*Tx)(nil)

// GetMsg returns the message or the configured error.
func (tx *Tx) GetMsg() (vault.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message with a configurable route.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ vault.Msg = (*Msg)(nil)

// Path returns the route path.
func (m *Msg) Path() string {
	return m.RoutePath
}

// Validate returns the configured error.
func (m *Msg) Validate() error {
	return m.Err
}
