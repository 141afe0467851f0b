package binder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Starter is implemented by instances that need to start background work
// once the injector is ready.
type Starter interface {
	Start(ctx context.Context) error
}

// Start constructs every eager singleton in registration order and then
// starts all constructed singletons implementing Starter concurrently.
// The first Start failure cancels the others and is returned.
func (inj *Injector) Start(ctx context.Context) error {
	for _, e := range inj.order {
		if !e.eager {
			continue
		}

		if _, err := inj.resolve(e.contract); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}

	inj.mu.RLock()
	created := slices.Clone(inj.created)
	inj.mu.RUnlock()

	eg, ctx := errgroup.WithContext(ctx)
	for _, e := range created {
		starter, ok := e.instance.(Starter)
		if !ok {
			continue
		}

		eg.Go(func() error {
			slog.Debug("Starting instance", "contract", typeName(e.contract))

			if err := starter.Start(ctx); err != nil {
				return fmt.Errorf("start %s: %w", typeName(e.contract), err)
			}

			return nil
		})
	}

	return eg.Wait()
}

// Close closes every constructed singleton implementing io.Closer in
// reverse construction order. Subsequent resolutions return ErrClosed.
// Calling Close more than once is a no-op.
func (inj *Injector) Close() error {
	inj.mu.Lock()
	if inj.closed {
		inj.mu.Unlock()
		return nil
	}
	inj.closed = true
	created := inj.created
	inj.created = nil
	inj.mu.Unlock()

	var errs []error
	for _, e := range slices.Backward(created) {
		slog.Debug("Closing instance", "contract", typeName(e.contract))

		if err := closeInstance(e.instance); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", typeName(e.contract), err))
		}
	}

	return errors.Join(errs...)
}

func closeInstance(v any) error {
	closer, ok := v.(io.Closer)
	if !ok {
		return nil
	}

	return closer.Close()
}
