package binder_test

import (
	"context"
	"fmt"

	"github.com/mazrean/binder"
)

// ExampleBind demonstrates binding a contract to its implementation.
func ExampleBind() {
	inj, err := binder.New(binder.ModuleFunc(func(b *binder.Binder) {
		b.BindServices(binder.Bind[Greeter](NewEnglishGreeter))
	}))
	if err != nil {
		fmt.Println(err)
		return
	}

	greeter := binder.MustResolve[Greeter](inj)
	fmt.Println(greeter.Greet("binder"))
	// Output: Hello, binder
}

// ExampleValue demonstrates binding a prebuilt value.
func ExampleValue() {
	inj, err := binder.New(binder.ModuleFunc(func(b *binder.Binder) {
		b.Bind(binder.Bind[*Settings](binder.Value(&Settings{Port: 8080})))
	}))
	if err != nil {
		fmt.Println(err)
		return
	}

	settings := binder.MustResolve[*Settings](inj)
	fmt.Println(settings.Port)
	// Output: 8080
}

// ExampleInjector_Start demonstrates eager singletons and lifecycle hooks.
func ExampleInjector_Start() {
	inj, err := binder.New(binder.ModuleFunc(func(b *binder.Binder) {
		b.Bind(binder.Bind[Worker](binder.Func(NewPrintingWorker), binder.Eagerly()))
	}))
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := inj.Start(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	if err := inj.Close(); err != nil {
		fmt.Println(err)
	}
	// Output:
	// worker started
	// worker closed
}

// Example types for documentation
type (
	Greeter interface {
		Greet(name string) string
	}
	Worker interface {
		Start(ctx context.Context) error
	}
	EnglishGreeter struct{}
	PrintingWorker struct{}
	Settings       struct {
		Port int
	}
)

func NewEnglishGreeter(binder.Resolver) (*EnglishGreeter, error) {
	return &EnglishGreeter{}, nil
}

func (*EnglishGreeter) Greet(name string) string {
	return "Hello, " + name
}

func NewPrintingWorker() *PrintingWorker {
	return &PrintingWorker{}
}

func (*PrintingWorker) Start(context.Context) error {
	fmt.Println("worker started")
	return nil
}

func (*PrintingWorker) Close() error {
	fmt.Println("worker closed")
	return nil
}
