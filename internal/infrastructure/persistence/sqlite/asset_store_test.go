package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/glyphs/internal/logging"
)

func testCtx() context.Context {
	cfg := logging.DefaultConfig()
	return logging.WithContext(context.Background(), logging.New(cfg))
}

func newStore(t *testing.T) (*sqlite.AssetStore, *sqlite.LazyDB) {
	t.Helper()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "assets.db"))
	t.Cleanup(func() { _ = lazy.Close() })
	return sqlite.NewAssetStore(lazy), lazy
}

func TestAssetStore_PutGet(t *testing.T) {
	ctx := testCtx()
	store, lazy := newStore(t)
	assert.False(t, lazy.Opened())

	key := entity.IconKey{Provider: "iconify-mdi", Name: "home"}
	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, lazy.Opened())

	asset := entity.Asset{MediaType: "image/svg+xml", Data: []byte("<svg/>"), URL: "https://example.test/mdi/home.svg"}
	require.NoError(t, store.Put(ctx, key, asset))

	got, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, asset, got)

	updated := entity.Asset{MediaType: "image/svg+xml", Data: []byte("<svg><path/></svg>")}
	require.NoError(t, store.Put(ctx, key, updated))
	got, _, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, updated.Data, got.Data)
	assert.Empty(t, got.URL)

	n, err := store.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAssetStore_SkipsEmptyAssets(t *testing.T) {
	ctx := testCtx()
	store, lazy := newStore(t)

	require.NoError(t, store.Put(ctx, entity.IconKey{Provider: "p", Name: "x"}, entity.Asset{}))
	assert.False(t, lazy.Opened(), "nothing to write, nothing to open")
}

func TestAssetStore_CorruptRowIsDiscarded(t *testing.T) {
	ctx := testCtx()
	store, lazy := newStore(t)

	key := entity.IconKey{Provider: "p", Name: "x"}
	require.NoError(t, store.Put(ctx, key, entity.Asset{MediaType: "image/svg+xml", Data: []byte("<svg/>")}))

	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `UPDATE assets SET data = ? WHERE name = 'x'`, []byte("<svg>tampered</svg>"))
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.Count(ctx, "p")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAssetStore_PurgeAndPrune(t *testing.T) {
	ctx := testCtx()
	store, _ := newStore(t)
	svg := entity.Asset{MediaType: "image/svg+xml", Data: []byte("<svg/>")}

	require.NoError(t, store.Put(ctx, entity.IconKey{Provider: "a", Name: "one"}, svg))
	require.NoError(t, store.Put(ctx, entity.IconKey{Provider: "a", Name: "two"}, svg))
	require.NoError(t, store.Put(ctx, entity.IconKey{Provider: "b", Name: "one"}, svg))

	removed, err := store.Purge(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = store.Prune(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	n, err := store.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_MigratesOnce(t *testing.T) {
	ctx := testCtx()
	path := filepath.Join(t.TempDir(), "nested", "assets.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	version, err := sqlite.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db))
	require.NoError(t, db.Close())

	_, err = sqlite.Open(ctx, "")
	assert.Error(t, err)
}

func TestLazyDB_CloseIsFinal(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "assets.db"))

	first, err := lazy.DB(ctx)
	require.NoError(t, err)
	second, err := lazy.DB(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, lazy.Close())
	_, err = lazy.DB(ctx)
	assert.Error(t, err)
	assert.NoError(t, lazy.Close())
}
