// Package binder provides explicit service binding for Go applications.
//
// Modules declare which implementation satisfies each service contract,
// and an Injector built from those modules resolves contracts to
// instances:
//
//	type Module struct{}
//
//	func (Module) Configure(b *binder.Binder) {
//		b.BindServices(binder.Bind[api.BackendService](NewBackendServiceImpl))
//	}
//
//	inj, err := binder.New(Module{})
//	svc, err := binder.Resolve[api.BackendService](inj)
package binder

import (
	"fmt"
	"reflect"
)

// Lifetime controls how many instances an injector creates for a binding.
type Lifetime int

const (
	// Singleton bindings are constructed once per injector.
	Singleton Lifetime = iota
	// Transient bindings are constructed on every resolution.
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// Binding maps a contract type to the implementation that satisfies it.
// Bindings are created with Bind and registered through a Binder.
type Binding struct {
	contract       reflect.Type
	implementation reflect.Type
	lifetime       Lifetime
	eager          bool
	service        bool
	construct      func(Resolver) (any, error)
	err            error
}

// Contract returns the contract type of the binding.
func (b Binding) Contract() reflect.Type {
	return b.contract
}

// Implementation returns the implementation type of the binding.
func (b Binding) Implementation() reflect.Type {
	return b.implementation
}

// Option configures a Binding.
type Option func(*Binding)

// AsTransient makes the binding construct a new instance per resolution.
func AsTransient() Option {
	return func(b *Binding) {
		b.lifetime = Transient
	}
}

// Eagerly marks a singleton binding to be constructed by Injector.Start
// instead of on first resolution.
func Eagerly() Option {
	return func(b *Binding) {
		b.eager = true
	}
}

// Bind declares that contract C is satisfied by implementation T, built
// by ctor. T must be assignable to C; otherwise New reports
// ErrNotAssignable.
//
// Example:
//
//	binder.Bind[UserRepository](NewDatabaseUserRepo)
//
// where NewDatabaseUserRepo has the signature
//
//	func NewDatabaseUserRepo(r binder.Resolver) (*DatabaseUserRepo, error)
//
// This tells the injector that when a UserRepository is requested, it
// should construct a *DatabaseUserRepo with NewDatabaseUserRepo.
func Bind[C, T any](ctor func(Resolver) (T, error), opts ...Option) Binding {
	contract := reflect.TypeFor[C]()
	implementation := reflect.TypeFor[T]()

	b := Binding{
		contract:       contract,
		implementation: implementation,
		lifetime:       Singleton,
	}
	for _, opt := range opts {
		opt(&b)
	}

	switch {
	case ctor == nil:
		b.err = fmt.Errorf("bind %s: %w", typeName(contract), ErrNilConstructor)
	case !implementation.AssignableTo(contract):
		b.err = fmt.Errorf("bind %s to %s: %w", typeName(contract), typeName(implementation), ErrNotAssignable)
	case b.eager && b.lifetime == Transient:
		b.err = fmt.Errorf("bind %s: %w", typeName(contract), ErrEagerTransient)
	}

	if ctor != nil {
		b.construct = func(r Resolver) (any, error) {
			v, err := ctor(r)
			if err != nil {
				return nil, err
			}

			return v, nil
		}
	}

	return b
}

// Func adapts a constructor without dependencies or errors.
//
// Example:
//
//	binder.Bind[Clock](binder.Func(NewSystemClock))
func Func[T any](fn func() T) func(Resolver) (T, error) {
	return func(Resolver) (T, error) {
		return fn(), nil
	}
}

// Value creates a constructor that always yields v.
// This is useful for binding configuration values or prebuilt instances.
//
// Example:
//
//	binder.Bind[*Config](binder.Value(&Config{Addr: ":8080"}))
func Value[T any](v T) func(Resolver) (T, error) {
	return func(Resolver) (T, error) {
		return v, nil
	}
}

// BindingInfo is a read-only description of a registered binding.
type BindingInfo struct {
	Contract       reflect.Type
	Implementation reflect.Type
	Lifetime       Lifetime
	Eager          bool
	Service        bool
}

func (b Binding) info() BindingInfo {
	return BindingInfo{
		Contract:       b.contract,
		Implementation: b.implementation,
		Lifetime:       b.lifetime,
		Eager:          b.eager,
		Service:        b.service,
	}
}
