package binder

import (
	"log/slog"
	"reflect"
)

// Module declares bindings for an injector.
type Module interface {
	Configure(b *Binder)
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(b *Binder)

// Configure calls f(b).
func (f ModuleFunc) Configure(b *Binder) {
	f(b)
}

// Binder collects bindings while modules are configured.
// It is only valid during New.
type Binder struct {
	bindings map[reflect.Type]int
	order    []Binding
}

func newBinder() *Binder {
	return &Binder{
		bindings: make(map[reflect.Type]int),
	}
}

// Bind registers component bindings.
// Binding a contract again replaces the earlier binding in place.
func (b *Binder) Bind(bindings ...Binding) {
	for _, binding := range bindings {
		b.register(binding)
	}
}

// BindServices registers bindings and marks them as services.
func (b *Binder) BindServices(bindings ...Binding) {
	for _, binding := range bindings {
		binding.service = true
		b.register(binding)
	}
}

// Install configures m into this binder.
func (b *Binder) Install(m Module) {
	slog.Debug("Installing module", "module", reflect.TypeOf(m))
	m.Configure(b)
}

func (b *Binder) register(binding Binding) {
	if idx, ok := b.bindings[binding.contract]; ok {
		prev := b.order[idx]
		slog.Debug("Rebinding contract",
			"contract", typeName(binding.contract),
			"previous", typeName(prev.implementation),
			"implementation", typeName(binding.implementation),
		)
		b.order[idx] = binding
		return
	}

	slog.Debug("Binding contract",
		"contract", typeName(binding.contract),
		"implementation", typeName(binding.implementation),
		"lifetime", binding.lifetime,
		"service", binding.service,
	)

	b.bindings[binding.contract] = len(b.order)
	b.order = append(b.order, binding)
}
