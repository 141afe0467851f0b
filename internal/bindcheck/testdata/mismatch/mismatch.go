package mismatch

import "github.com/mazrean/binder"

type Greeter interface {
	Greet(name string) string
}

type notAGreeter struct{}

func newNotAGreeter(binder.Resolver) (*notAGreeter, error) {
	return &notAGreeter{}, nil
}

func Configure(b *binder.Binder) {
	b.BindServices(binder.Bind[Greeter](newNotAGreeter))
}
