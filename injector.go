package binder

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
)

// Resolver resolves contracts to instances.
// A Resolver passed to a constructor is scoped to the ongoing resolution
// and must not be retained after the constructor returns. Constructors
// that resolve through the Injector instead start an independent chain;
// such a chain asking for the singleton its caller is still constructing
// blocks forever.
type Resolver interface {
	resolve(t reflect.Type) (any, error)
}

type entry struct {
	Binding
	instance any
	built    bool

	// owner is the resolution constructing the singleton, and done is
	// closed when it finishes. Both are guarded by Injector.mu.
	owner *resolution
	done  chan struct{}
}

// release wakes the resolutions waiting on e. Called with Injector.mu held.
func (e *entry) release() {
	e.owner = nil
	close(e.done)
	e.done = nil
}

// Injector resolves contracts using the bindings declared by its modules.
// The binding table is immutable once New returns; an Injector is safe
// for concurrent use.
type Injector struct {
	entries map[reflect.Type]*entry
	order   []*entry

	mu      sync.RWMutex
	created []*entry
	closed  bool
}

// New configures modules in order and returns an injector with the
// resulting bindings. Configuration errors from every binding are joined.
func New(modules ...Module) (*Injector, error) {
	b := newBinder()
	for _, m := range modules {
		b.Install(m)
	}

	var errs []error
	for _, binding := range b.order {
		if binding.err != nil {
			errs = append(errs, binding.err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("configure injector: %w", err)
	}

	inj := &Injector{
		entries: make(map[reflect.Type]*entry, len(b.order)),
		order:   make([]*entry, 0, len(b.order)),
	}
	for _, binding := range b.order {
		e := &entry{Binding: binding}
		inj.entries[binding.contract] = e
		inj.order = append(inj.order, e)
	}

	slog.Debug("Injector configured", "bindings", len(inj.order))

	return inj, nil
}

// Resolve returns the instance bound to contract C.
func Resolve[C any](r Resolver) (C, error) {
	var zero C

	v, err := r.resolve(reflect.TypeFor[C]())
	if err != nil {
		return zero, err
	}

	c, ok := v.(C)
	if !ok {
		return zero, fmt.Errorf("resolve %s: got %T: %w", typeName(reflect.TypeFor[C]()), v, ErrNotAssignable)
	}

	return c, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[C any](r Resolver) C {
	c, err := Resolve[C](r)
	if err != nil {
		panic(err)
	}

	return c
}

// Has reports whether contract C is bound in inj.
func Has[C any](inj *Injector) bool {
	_, ok := inj.entries[reflect.TypeFor[C]()]
	return ok
}

// ResolveType returns the instance bound to contract t.
func (inj *Injector) ResolveType(t reflect.Type) (any, error) {
	return inj.resolve(t)
}

func (inj *Injector) resolve(t reflect.Type) (any, error) {
	res := &resolution{inj: inj}
	return res.resolve(t)
}

// Bindings returns every binding in registration order.
func (inj *Injector) Bindings() []BindingInfo {
	infos := make([]BindingInfo, 0, len(inj.order))
	for _, e := range inj.order {
		infos = append(infos, e.info())
	}

	return infos
}

// Services returns the bindings registered with Binder.BindServices.
func (inj *Injector) Services() []BindingInfo {
	infos := make([]BindingInfo, 0, len(inj.order))
	for _, e := range inj.order {
		if e.service {
			infos = append(infos, e.info())
		}
	}

	return infos
}

// resolution tracks one resolution chain for cycle detection.
type resolution struct {
	inj   *Injector
	stack []reflect.Type
	// waiting is the singleton entry this chain is blocked on, guarded by
	// Injector.mu.
	waiting *entry
}

func (r *resolution) resolve(t reflect.Type) (any, error) {
	inj := r.inj

	inj.mu.RLock()
	closed := inj.closed
	inj.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	e, ok := inj.entries[t]
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", typeName(t), ErrNotBound)
	}

	if idx := slices.Index(r.stack, t); idx >= 0 {
		path := append(slices.Clone(r.stack[idx:]), t)
		return nil, &CycleError{Path: path}
	}

	if e.lifetime == Transient {
		return r.construct(e)
	}

	inj.mu.RLock()
	if e.built {
		v := e.instance
		inj.mu.RUnlock()
		return v, nil
	}
	inj.mu.RUnlock()

	if v, done, err := r.acquire(e); done {
		return v, err
	}

	released := false
	defer func() {
		if !released {
			inj.mu.Lock()
			e.release()
			inj.mu.Unlock()
		}
	}()

	v, err := r.construct(e)

	inj.mu.Lock()
	e.release()
	released = true
	if err != nil {
		inj.mu.Unlock()
		return nil, err
	}
	if inj.closed {
		inj.mu.Unlock()
		if err := closeInstance(v); err != nil {
			slog.Warn("Failed to close instance created after close", "contract", typeName(t), "error", err)
		}
		return nil, ErrClosed
	}
	e.instance = v
	e.built = true
	inj.created = append(inj.created, e)
	inj.mu.Unlock()

	return v, nil
}

// acquire makes r the owner of e. It waits while another resolution is
// constructing e and reports done when e was built by that resolution or
// waiting would close a cycle.
func (r *resolution) acquire(e *entry) (any, bool, error) {
	inj := r.inj

	inj.mu.Lock()
	defer inj.mu.Unlock()

	for {
		switch {
		case inj.closed:
			return nil, true, ErrClosed
		case e.built:
			return e.instance, true, nil
		case e.owner == nil:
			e.owner = r
			e.done = make(chan struct{})
			return nil, false, nil
		}

		if path := r.waitCycle(e); path != nil {
			return nil, true, &CycleError{Path: path}
		}

		r.waiting = e
		done := e.done
		inj.mu.Unlock()
		<-done
		inj.mu.Lock()
		r.waiting = nil
	}
}

// waitCycle returns the cycle closed by r waiting on e, following the
// chains that are themselves blocked on entries, or nil. Called with
// Injector.mu held.
func (r *resolution) waitCycle(e *entry) []reflect.Type {
	var path []reflect.Type

	target := e
	for o := e.owner; o != nil; {
		// a running chain's stack is not safe to read
		if o != r && o.waiting == nil {
			return nil
		}

		idx := slices.Index(o.stack, target.contract)
		if idx < 0 {
			return nil
		}
		if o == r {
			return append(append(path, o.stack[idx:]...), e.contract)
		}

		path = append(path, o.stack[idx:]...)
		target = o.waiting
		o = target.owner
	}

	return nil
}

func (r *resolution) construct(e *entry) (any, error) {
	r.stack = append(r.stack, e.contract)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
	}()

	slog.Debug("Constructing instance",
		"contract", typeName(e.contract),
		"implementation", typeName(e.implementation),
		"lifetime", e.lifetime,
	)

	v, err := e.construct(r)
	if err != nil {
		var cycleErr *CycleError
		if errors.As(err, &cycleErr) {
			return nil, err
		}

		return nil, &ResolutionError{
			Contract:       e.contract,
			Implementation: e.implementation,
			Err:            err,
		}
	}

	if isNil(v) {
		return nil, &ResolutionError{
			Contract:       e.contract,
			Implementation: e.implementation,
			Err:            ErrNilInstance,
		}
	}

	return v, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
