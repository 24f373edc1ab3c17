package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]vault.Handler
}

var _ vault.Registry = (*Router)(nil)
var _ vault.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]vault.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h vault.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. This function always returns a
// non-nil Handler.
func (r *Router) Handler(path string) vault.Handler {
	h, ok := r.routes[path]
	if !ok {
		return noSuchPathHandler{path: path}
	}
	return h
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

// noSuchPathHandler returns an error on any message
type noSuchPathHandler struct {
	path string
}

var _ vault.Handler = noSuchPathHandler{}

// Check always returns ErrNotFound
func (h noSuchPathHandler) Check(vault.Context, vault.KVStore, vault.Tx) (*vault.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}

// Deliver always returns ErrNotFound
func (h noSuchPathHandler) Deliver(vault.Context, vault.KVStore, vault.Tx) (*vault.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
