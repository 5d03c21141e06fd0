package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

// BrowseCatalogUseCase holds the catalog state of one browsing session:
// the active provider, its descriptors and asset session, and the snapshot
// parameters fed to IndexCatalog.
type BrowseCatalogUseCase struct {
	providers port.ProviderCatalog
	loader    *AssetLoader
	pageSize  int

	mu          sync.Mutex
	active      string
	descriptors []entity.Descriptor
	assets      *AssetSession
	query       string
	ascending   bool
	page        int
}

// NewBrowseCatalogUseCase creates a browsing session with no active provider.
func NewBrowseCatalogUseCase(providers port.ProviderCatalog, loader *AssetLoader, pageSize int) *BrowseCatalogUseCase {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &BrowseCatalogUseCase{
		providers: providers,
		loader:    loader,
		pageSize:  pageSize,
		ascending: true,
		page:      1,
	}
}

// Providers lists the available providers.
func (uc *BrowseCatalogUseCase) Providers() []entity.ProviderInfo {
	return uc.providers.List()
}

// Activate switches the active provider and prefetches all of its async
// assets. The previous asset session is closed before the new one starts, so
// late resolutions cannot leak across providers. Re-activating the active
// provider keeps its session.
func (uc *BrowseCatalogUseCase) Activate(ctx context.Context, key string) error {
	return uc.activate(ctx, key, true)
}

// Open switches the active provider like Activate but resolves nothing up
// front; callers Ensure the assets they show. One-shot commands use it.
func (uc *BrowseCatalogUseCase) Open(ctx context.Context, key string) error {
	return uc.activate(ctx, key, false)
}

func (uc *BrowseCatalogUseCase) activate(ctx context.Context, key string, prefetch bool) error {
	ctx = logging.WithProvider(ctx, key)
	log := logging.FromContext(ctx)

	uc.mu.Lock()
	if key == uc.active && uc.descriptors != nil {
		uc.mu.Unlock()
		return nil
	}
	uc.mu.Unlock()

	descriptors, err := uc.providers.Descriptors(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to activate provider %s: %w", key, err)
	}

	var session *AssetSession
	if hasAsync(descriptors) {
		resolver, _ := uc.providers.Resolver(key)
		if prefetch {
			session = uc.loader.Activate(ctx, key, resolver, descriptors)
		} else {
			session = uc.loader.Open(ctx, key, resolver, descriptors)
		}
	}

	uc.mu.Lock()
	previous := uc.assets
	uc.active = key
	uc.descriptors = descriptors
	uc.assets = session
	uc.page = 1
	uc.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	log.Debug().Int("descriptors", len(descriptors)).Bool("async", session != nil).Bool("prefetch", prefetch).Msg("provider activated")
	return nil
}

// ActiveProvider returns the active provider key, empty before Activate.
func (uc *BrowseCatalogUseCase) ActiveProvider() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.active
}

// Search applies a new query. The filtered set changes, so the page resets.
func (uc *BrowseCatalogUseCase) Search(query string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if query == uc.query {
		return
	}
	uc.query = query
	uc.page = 1
}

// Query returns the current search query.
func (uc *BrowseCatalogUseCase) Query() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.query
}

// SetSortAscending sets the sort direction.
func (uc *BrowseCatalogUseCase) SetSortAscending(ascending bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ascending = ascending
}

// ToggleSort flips the sort direction and returns the new one.
func (uc *BrowseCatalogUseCase) ToggleSort() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.ascending = !uc.ascending
	return uc.ascending
}

// SetPage requests a page; out-of-range pages are normalised by View.
func (uc *BrowseCatalogUseCase) SetPage(page int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.page = page
}

// NextPage advances one page, stopping at the last.
func (uc *BrowseCatalogUseCase) NextPage() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := uc.indexLocked()
	if out.Page < out.TotalPages {
		uc.page = out.Page + 1
	}
}

// PrevPage goes back one page, stopping at the first.
func (uc *BrowseCatalogUseCase) PrevPage() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := uc.indexLocked()
	if out.Page > 1 {
		uc.page = out.Page - 1
	}
}

// JumpToInitial moves to the page holding the first name starting with initial.
// It reports false when no group matches.
func (uc *BrowseCatalogUseCase) JumpToInitial(initial string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := uc.indexLocked()
	for _, g := range out.Groups {
		if strings.EqualFold(g.Initial, initial) {
			uc.page = PageOf(g.Start, out.PageSize)
			return true
		}
	}
	return false
}

// NextInitial moves to the first group starting after position pos of the
// filtered list, wrapping to the first group, and returns it.
func (uc *BrowseCatalogUseCase) NextInitial(pos int) (InitialGroup, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := uc.indexLocked()
	if len(out.Groups) == 0 {
		return InitialGroup{}, false
	}
	next := out.Groups[0]
	for _, g := range out.Groups {
		if g.Start > pos {
			next = g
			break
		}
	}
	uc.page = PageOf(next.Start, out.PageSize)
	return next, true
}

// View computes the current catalog snapshot and stores the normalised page.
func (uc *BrowseCatalogUseCase) View() IndexOutput {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.indexLocked()
}

func (uc *BrowseCatalogUseCase) indexLocked() IndexOutput {
	out := IndexCatalog(uc.descriptors, IndexInput{
		Query:         uc.query,
		SortAscending: uc.ascending,
		Page:          uc.page,
		PageSize:      uc.pageSize,
	})
	uc.page = out.Page
	return out
}

// Find returns the active provider's descriptor by name.
func (uc *BrowseCatalogUseCase) Find(name string) (entity.Descriptor, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, d := range uc.descriptors {
		if d.Name() == name {
			return d, true
		}
	}
	return entity.Descriptor{}, false
}

// Assets returns the active asset session, nil when the provider is synchronous.
func (uc *BrowseCatalogUseCase) Assets() *AssetSession {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.assets
}

// Lookup implements port.AssetLookup against the active session.
func (uc *BrowseCatalogUseCase) Lookup(key entity.IconKey) entity.AssetEntry {
	session := uc.Assets()
	if session == nil {
		return entity.AssetEntry{State: entity.AssetUnloaded}
	}
	return session.Lookup(key)
}

// Close discards the active asset session.
func (uc *BrowseCatalogUseCase) Close() {
	uc.mu.Lock()
	session := uc.assets
	uc.assets = nil
	uc.mu.Unlock()
	if session != nil {
		session.Close()
	}
}

func hasAsync(descriptors []entity.Descriptor) bool {
	for _, d := range descriptors {
		if d.Kind() == entity.KindAsyncRef {
			return true
		}
	}
	return false
}
