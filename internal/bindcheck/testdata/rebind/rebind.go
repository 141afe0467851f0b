package rebind

import "github.com/mazrean/binder"

type Store interface {
	Get(key string) string
}

type memoryStore struct{}

func (*memoryStore) Get(string) string { return "" }

type diskStore struct{}

func (*diskStore) Get(string) string { return "" }

func newMemoryStore(binder.Resolver) (*memoryStore, error) { return &memoryStore{}, nil }

func newDiskStore(binder.Resolver) (*diskStore, error) { return &diskStore{}, nil }

type Module struct{}

func (*Module) Configure(b *binder.Binder) {
	b.Bind(binder.Bind[Store](newMemoryStore))
	b.Bind(binder.Bind[Store](newDiskStore))
}

type TestModule struct{}

func (*TestModule) Configure(b *binder.Binder) {
	b.Bind(binder.Bind[Store](newMemoryStore))
}
