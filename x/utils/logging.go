package utils

import (
	"time"

	"github.com/iov-one/vault"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ vault.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx vault.Context, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := vault.GetLogger(ctx).With("duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
