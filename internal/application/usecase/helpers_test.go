package usecase_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bnema/glyphs/internal/domain/entity"
	"github.com/bnema/glyphs/internal/logging"
)

func testContext() context.Context {
	cfg := logging.DefaultConfig()
	cfg.Level = zerolog.DebugLevel
	return logging.WithContext(context.Background(), logging.NewWithWriter(cfg, io.Discard))
}

func glyphs(t *testing.T, provider string, names ...string) []entity.Descriptor {
	t.Helper()
	out := make([]entity.Descriptor, 0, len(names))
	for _, n := range names {
		d, err := entity.NewDescriptor(provider, n, entity.GlyphPayload{Glyph: "★"})
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func asyncRefs(t *testing.T, provider string, names ...string) []entity.Descriptor {
	t.Helper()
	out := make([]entity.Descriptor, 0, len(names))
	for _, n := range names {
		d, err := entity.NewDescriptor(provider, n, entity.AsyncPayload{Handle: provider + ":" + n})
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func nameList(ds []entity.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name())
	}
	return out
}
