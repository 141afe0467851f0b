package valid

import "github.com/mazrean/binder"

type Greeter interface {
	Greet(name string) string
}

type greeter struct{}

func (*greeter) Greet(name string) string { return "Hello, " + name }

func newGreeter(binder.Resolver) (*greeter, error) {
	return &greeter{}, nil
}

type Config struct {
	Greeting string
}

type Module struct{}

func (Module) Configure(b *binder.Binder) {
	b.Bind(binder.Bind[*Config](binder.Value(&Config{}), binder.AsTransient()))
	b.BindServices(binder.Bind[Greeter](newGreeter, binder.Eagerly()))
}
