package utils

import (
	"github.com/iov-one/vault"
)

// EventTagger collects the events emitted by its children and exports
// them as DeliverTx tags. Events of a failed delivery are dropped
// together with the state changes they describe.
type EventTagger struct{}

var _ vault.Decorator = EventTagger{}

// NewEventTagger creates an EventTagger decorator
func NewEventTagger() EventTagger {
	return EventTagger{}
}

// Check passes the request along. Events emitted while checking are
// never exported.
func (EventTagger) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver attaches a fresh event log to the context and appends its
// tags to a successful result.
func (EventTagger) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	ctx, events := vault.WithEventLog(ctx)
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, events.Tags()...)
	return res, nil
}
