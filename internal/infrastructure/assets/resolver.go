package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/infrastructure/provider"
	"github.com/bnema/glyphs/internal/logging"
)

// ErrResolverClosed is returned by Resolve after Close.
var ErrResolverClosed = errors.New("asset resolver closed")

// Resolver implements port.AssetResolver for "prefix:name" handles.
// Lookups go memory, then store, then network; hits are promoted upward.
type Resolver struct {
	memory  port.Cache[string, entity.Asset]
	store   port.AssetStore
	fetcher *Fetcher
	flight  singleflight.Group

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
	closing  context.Context
	shutdown context.CancelFunc
}

// NewResolver wires the tiers. memory and store may be nil.
func NewResolver(fetcher *Fetcher, memory port.Cache[string, entity.Asset], store port.AssetStore) *Resolver {
	closing, shutdown := context.WithCancel(context.Background())
	return &Resolver{
		memory:   memory,
		store:    store,
		fetcher:  fetcher,
		closing:  closing,
		shutdown: shutdown,
	}
}

// Close cancels every detached lookup and waits for them to return, so the
// store is no longer written once Close returns.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.shutdown()
	r.inflight.Wait()
}

// begin registers a detached lookup, or reports false once closed.
func (r *Resolver) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.inflight.Add(1)
	return true
}

// Resolve implements port.AssetResolver.
func (r *Resolver) Resolve(ctx context.Context, d entity.Descriptor) (entity.Asset, error) {
	payload, ok := d.Payload().(entity.AsyncPayload)
	if !ok {
		return entity.Asset{}, fmt.Errorf("%s is not an async descriptor", d.Key())
	}
	prefix, name, ok := provider.SplitHandle(payload.Handle)
	if !ok {
		return entity.Asset{}, fmt.Errorf("malformed asset handle %q", payload.Handle)
	}
	key := entity.IconKey{Provider: d.Provider(), Name: d.Name()}

	if r.memory != nil {
		if asset, ok := r.memory.Get(payload.Handle); ok {
			return asset, nil
		}
	}

	// Concurrent sessions asking for the same handle share one lookup. The
	// lookup is detached from the first caller, so closing that caller's
	// session never fails the others; each caller still stops on its own ctx.
	ch := r.flight.DoChan(payload.Handle, func() (any, error) {
		if !r.begin() {
			return entity.Asset{}, ErrResolverClosed
		}
		defer r.inflight.Done()

		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.lookupTimeout())
		defer cancel()
		stop := context.AfterFunc(r.closing, cancel)
		defer stop()

		asset, err := r.lookup(lookupCtx, key, prefix, name)
		if err == nil && r.memory != nil {
			r.memory.Set(payload.Handle, asset)
		}
		return asset, err
	})

	select {
	case <-ctx.Done():
		return entity.Asset{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return entity.Asset{}, res.Err
		}
		return res.Val.(entity.Asset), nil
	}
}

// lookupTimeout bounds a detached lookup: a store read, one fetch and a
// store write.
func (r *Resolver) lookupTimeout() time.Duration {
	timeout := DefaultFetchTimeout
	if r.fetcher != nil && r.fetcher.client.Timeout > 0 {
		timeout = r.fetcher.client.Timeout
	}
	return 2 * timeout
}

func (r *Resolver) lookup(ctx context.Context, key entity.IconKey, prefix, name string) (entity.Asset, error) {
	log := logging.FromContext(ctx)

	if r.store != nil {
		asset, ok, err := r.store.Get(ctx, key)
		switch {
		case err != nil:
			log.Debug().Err(err).Str("icon", key.String()).Msg("asset store read failed, fetching")
		case ok:
			return asset, nil
		}
	}

	if r.fetcher == nil {
		return entity.Asset{}, fmt.Errorf("no fetcher for %s", key)
	}
	asset, err := r.fetcher.Fetch(ctx, prefix, name)
	if err != nil {
		return entity.Asset{}, err
	}

	// A lookup cancelled by Close keeps its asset but skips the write.
	if r.store != nil && ctx.Err() == nil {
		if err := r.store.Put(ctx, key, asset); err != nil {
			log.Warn().Err(err).Str("icon", key.String()).Msg("failed to persist asset")
		}
	}
	return asset, nil
}
