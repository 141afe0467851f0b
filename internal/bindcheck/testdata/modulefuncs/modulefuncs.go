package modulefuncs

import "github.com/mazrean/binder"

type Store interface {
	Get(key string) string
}

type memoryStore struct{}

func (*memoryStore) Get(string) string { return "" }

func newMemoryStore(binder.Resolver) (*memoryStore, error) { return &memoryStore{}, nil }

var (
	Prod = binder.ModuleFunc(func(b *binder.Binder) {
		b.BindServices(binder.Bind[Store](newMemoryStore))
	})
	Test = binder.ModuleFunc(func(b *binder.Binder) {
		b.Bind(binder.Bind[Store](newMemoryStore))
	})
)
