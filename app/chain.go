package app

import (
	"reflect"

	"github.com/iov-one/vault"
)

// Decorators is an ordered stack of decorators that a signed wallet or
// token transaction passes before it reaches the router. The first
// decorator is the outermost one.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(
//     app.AppRouter("IOV"),
//   )
//
// Chain in this package returns the stack used by the application.
type Decorators []vault.Decorator

// ChainDecorators builds a stack from the given decorators. Nil values
// are skipped so optional decorators can be passed unconditionally.
func ChainDecorators(ds ...vault.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds appended below the existing ones.
// The receiver is never modified.
func (d Decorators) Chain(ds ...vault.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNil(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNil(d vault.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h. A request runs through every
// decorator in order before h is called.
func (d Decorators) WithHandler(h vault.Handler) vault.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer binds a decorator to the handler it wraps.
type layer struct {
	dec  vault.Decorator
	next vault.Handler
}

var _ vault.Handler = layer{}

func (l layer) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
