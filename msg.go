package vault

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// assignMsg copies msg into the value pointed by destination. Destination
// must be a pointer to a type that msg is assignable to.
func assignMsg(msg Msg, destination interface{}) error {
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	target := dest.Elem()
	switch {
	case src.Type().AssignableTo(target.Type()):
		target.Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(target.Type()):
		target.Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %s, got %T", target.Type(), msg)
	}
	return nil
}
