// Package golobby exposes binder bindings through a golobby/container
// container, for applications that already resolve dependencies with it.
package golobby

import (
	"fmt"
	"reflect"

	"github.com/golobby/container/v3"
	"github.com/mazrean/binder"
)

var errorType = reflect.TypeFor[error]()

// Register adds one lazy resolver per binding of inj to c, keyed by the
// contract type. Singleton bindings are registered as singletons and
// transient bindings as transients; construction is always delegated to
// inj, so instances are shared with code that resolves from inj directly.
func Register(c container.Container, inj *binder.Injector) error {
	for _, info := range inj.Bindings() {
		resolver := newResolver(inj, info.Contract)

		var err error
		switch info.Lifetime {
		case binder.Transient:
			err = c.TransientLazy(resolver)
		default:
			err = c.SingletonLazy(resolver)
		}
		if err != nil {
			return fmt.Errorf("register %s: %w", info.Contract, err)
		}
	}

	return nil
}

// newResolver builds a func() (C, error) for contract, the resolver shape
// golobby expects.
func newResolver(inj *binder.Injector, contract reflect.Type) any {
	fnType := reflect.FuncOf(nil, []reflect.Type{contract, errorType}, false)

	fn := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		v, err := inj.ResolveType(contract)
		if err != nil {
			return []reflect.Value{reflect.Zero(contract), reflect.ValueOf(&err).Elem()}
		}

		out := reflect.New(contract).Elem()
		out.Set(reflect.ValueOf(v))

		return []reflect.Value{out, reflect.Zero(errorType)}
	})

	return fn.Interface()
}
