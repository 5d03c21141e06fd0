package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

// AssetStore implements port.AssetStore. Every row carries a BLAKE2b digest
// of its data; rows that fail the check are deleted and reported as misses.
type AssetStore struct {
	lazy *LazyDB
	now  func() time.Time
}

var _ port.AssetStore = (*AssetStore)(nil)

// NewAssetStore creates a store on top of a lazily opened database.
func NewAssetStore(lazy *LazyDB) *AssetStore {
	return &AssetStore{lazy: lazy, now: time.Now}
}

// Get implements port.AssetStore.
func (s *AssetStore) Get(ctx context.Context, key entity.IconKey) (entity.Asset, bool, error) {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return entity.Asset{}, false, err
	}

	var (
		asset  entity.Asset
		digest []byte
	)
	err = db.QueryRowContext(ctx,
		`SELECT media_type, data, url, digest FROM assets WHERE provider = ? AND name = ?`,
		key.Provider, key.Name,
	).Scan(&asset.MediaType, &asset.Data, &asset.URL, &digest)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Asset{}, false, nil
	}
	if err != nil {
		return entity.Asset{}, false, fmt.Errorf("failed to read asset %s: %w", key, err)
	}

	if sum := blake2b.Sum256(asset.Data); !bytes.Equal(sum[:], digest) {
		logging.FromContext(ctx).Warn().Str("icon", key.String()).Msg("discarding corrupt stored asset")
		if _, err := db.ExecContext(ctx, `DELETE FROM assets WHERE provider = ? AND name = ?`, key.Provider, key.Name); err != nil {
			return entity.Asset{}, false, fmt.Errorf("failed to delete corrupt asset %s: %w", key, err)
		}
		return entity.Asset{}, false, nil
	}
	return asset, true, nil
}

// Put implements port.AssetStore. Empty assets are not stored.
func (s *AssetStore) Put(ctx context.Context, key entity.IconKey, asset entity.Asset) error {
	if asset.Empty() {
		return nil
	}
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return err
	}

	data := asset.Data
	if data == nil {
		data = []byte{}
	}
	sum := blake2b.Sum256(data)
	_, err = db.ExecContext(ctx, `
		INSERT INTO assets (provider, name, media_type, data, url, digest, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, name) DO UPDATE SET
			media_type = excluded.media_type,
			data       = excluded.data,
			url        = excluded.url,
			digest     = excluded.digest,
			fetched_at = excluded.fetched_at`,
		key.Provider, key.Name, asset.MediaType, data, asset.URL, sum[:], s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store asset %s: %w", key, err)
	}
	return nil
}

// Count returns the number of stored assets of provider, or of all providers
// when provider is empty.
func (s *AssetStore) Count(ctx context.Context, provider string) (int, error) {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assets WHERE ? = '' OR provider = ?`, provider, provider,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return n, nil
}

// Prune deletes assets fetched before cutoff and returns how many went.
func (s *AssetStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM assets WHERE fetched_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune assets: %w", err)
	}
	return res.RowsAffected()
}

// Purge deletes every asset of provider, or everything when provider is empty.
func (s *AssetStore) Purge(ctx context.Context, provider string) (int64, error) {
	db, err := s.lazy.DB(ctx)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM assets WHERE ? = '' OR provider = ?`, provider, provider)
	if err != nil {
		return 0, fmt.Errorf("failed to purge assets: %w", err)
	}
	return res.RowsAffected()
}
