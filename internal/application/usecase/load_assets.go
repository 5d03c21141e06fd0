package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

// ErrEmptyAsset is recorded when a resolver succeeds with nothing drawable.
var ErrEmptyAsset = errors.New("resolver returned an empty asset")

// ErrNoResolver is recorded for async descriptors of a provider without resolver.
var ErrNoResolver = errors.New("provider has no asset resolver")

// AssetLoader starts one AssetSession per provider activation.
type AssetLoader struct {
	concurrency int
	timeout     time.Duration
}

// NewAssetLoader creates a loader. concurrency <= 0 means every resolution runs
// at once; a positive value only bounds parallelism. timeout <= 0 disables the
// per-resolution deadline.
func NewAssetLoader(concurrency int, timeout time.Duration) *AssetLoader {
	return &AssetLoader{concurrency: concurrency, timeout: timeout}
}

// AssetSession owns the asset cache of one provider activation.
// Entries move unloaded -> pending -> resolved|failed exactly once.
type AssetSession struct {
	provider string
	resolver port.AssetResolver
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu      sync.RWMutex
	entries map[string]entity.AssetEntry
	pending int
	idle    chan struct{}
	closed  bool

	events   chan entity.AssetEvent
	closedCh chan struct{}
}

// Activate creates the session for provider and eagerly issues a resolution
// for every AsyncRef descriptor it owns, all concurrently.
func (l *AssetLoader) Activate(
	ctx context.Context,
	provider string,
	resolver port.AssetResolver,
	descriptors []entity.Descriptor,
) *AssetSession {
	s := l.Open(ctx, provider, resolver, descriptors)

	queued := s.markPending(descriptors)
	logging.FromContext(s.ctx).Debug().Int("assets", len(queued)).Msg("prefetching async assets")

	// Issue from a separate goroutine: with a concurrency cap Go blocks until a
	// slot frees, and activation must not block the caller.
	go func() {
		for _, d := range queued {
			s.group.Go(func() error {
				s.resolve(d)
				return nil
			})
		}
	}()

	return s
}

// Open creates the session for provider without prefetching. Every key stays
// unloaded until Ensure asks for it.
func (l *AssetLoader) Open(
	ctx context.Context,
	provider string,
	resolver port.AssetResolver,
	descriptors []entity.Descriptor,
) *AssetSession {
	sessionCtx, cancel := context.WithCancel(logging.WithComponent(logging.WithProvider(ctx, provider), "assets"))
	group := &errgroup.Group{}
	if l.concurrency > 0 {
		group.SetLimit(l.concurrency)
	}

	idle := make(chan struct{})
	close(idle)

	return &AssetSession{
		provider: provider,
		resolver: resolver,
		timeout:  l.timeout,
		ctx:      sessionCtx,
		cancel:   cancel,
		group:    group,
		entries:  make(map[string]entity.AssetEntry),
		idle:     idle,
		events:   make(chan entity.AssetEvent, countAsync(descriptors, provider)+1),
		closedCh: make(chan struct{}),
	}
}

// Ensure requests a resolution for d unless its key was already requested in
// this session. It reports whether a new resolution was issued.
func (s *AssetSession) Ensure(d entity.Descriptor) bool {
	queued := s.markPending([]entity.Descriptor{d})
	if len(queued) == 0 {
		return false
	}
	go s.group.Go(func() error {
		s.resolve(queued[0])
		return nil
	})
	return true
}

// markPending moves unloaded async keys of this provider to pending and
// returns the descriptors that need a resolution.
func (s *AssetSession) markPending(descriptors []entity.Descriptor) []entity.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	queued := make([]entity.Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Kind() != entity.KindAsyncRef || d.Provider() != s.provider {
			continue
		}
		if _, seen := s.entries[d.Name()]; seen {
			continue
		}
		s.entries[d.Name()] = entity.AssetEntry{State: entity.AssetPending}
		if s.pending == 0 {
			s.idle = make(chan struct{})
		}
		s.pending++
		queued = append(queued, d)
	}
	return queued
}

func (s *AssetSession) resolve(d entity.Descriptor) {
	asset, err := s.callResolver(d)
	if err == nil && asset.Empty() {
		err = ErrEmptyAsset
	}
	s.settle(d.Key(), asset, err)
}

func (s *AssetSession) callResolver(d entity.Descriptor) (asset entity.Asset, err error) {
	if s.resolver == nil {
		return entity.Asset{}, ErrNoResolver
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolver panic: %v", r)
		}
	}()

	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.resolver.Resolve(ctx, d)
}

func (s *AssetSession) settle(key entity.IconKey, asset entity.Asset, err error) {
	log := logging.FromContext(s.ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Debug().Str("icon", key.Name).Msg("dropping resolution for inactive provider")
		return
	}

	entry := entity.AssetEntry{State: entity.AssetResolved, Asset: asset}
	if err != nil {
		entry = entity.AssetEntry{State: entity.AssetFailed, Err: err}
	}
	s.entries[key.Name] = entry
	s.pending--
	if s.pending == 0 {
		close(s.idle)
	}
	s.mu.Unlock()

	if err != nil {
		log.Debug().Err(err).Str("icon", key.Name).Msg("asset resolution failed")
	}

	select {
	case s.events <- entity.AssetEvent{Key: key, State: entry.State}:
	default:
	}
}

// Provider returns the provider key the session belongs to.
func (s *AssetSession) Provider() string {
	return s.provider
}

// Lookup implements port.AssetLookup. Keys of other providers are unloaded.
func (s *AssetSession) Lookup(key entity.IconKey) entity.AssetEntry {
	if key.Provider != s.provider {
		return entity.AssetEntry{State: entity.AssetUnloaded}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key.Name]
}

// Snapshot copies the cache.
func (s *AssetSession) Snapshot() map[entity.IconKey]entity.AssetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[entity.IconKey]entity.AssetEntry, len(s.entries))
	for name, e := range s.entries {
		out[entity.IconKey{Provider: s.provider, Name: name}] = e
	}
	return out
}

// Pending returns the number of in-flight resolutions.
func (s *AssetSession) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// Events delivers one event per settled key.
func (s *AssetSession) Events() <-chan entity.AssetEvent {
	return s.events
}

// Closed is closed when the session is discarded.
func (s *AssetSession) Closed() <-chan struct{} {
	return s.closedCh
}

// Wait blocks until no resolution is pending, the session closes or ctx ends.
func (s *AssetSession) Wait(ctx context.Context) error {
	for {
		s.mu.RLock()
		idle, closed, pending := s.idle, s.closed, s.pending
		s.mu.RUnlock()
		if closed {
			return context.Canceled
		}
		if pending == 0 {
			return nil
		}
		select {
		case <-idle:
		case <-s.closedCh:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close discards the session. In-flight resolutions are cancelled and any
// result landing afterwards is dropped.
func (s *AssetSession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	close(s.closedCh)
}

func countAsync(descriptors []entity.Descriptor, provider string) int {
	n := 0
	for _, d := range descriptors {
		if d.Kind() == entity.KindAsyncRef && d.Provider() == provider {
			n++
		}
	}
	return n
}
