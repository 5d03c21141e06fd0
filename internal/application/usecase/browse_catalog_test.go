package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/glyphs/internal/application/port"
	"github.com/bnema/glyphs/internal/application/usecase"
	"github.com/bnema/glyphs/internal/domain/entity"
)

type fakeCatalog struct {
	descriptors map[string][]entity.Descriptor
	resolvers   map[string]port.AssetResolver
	loads       map[string]int
}

func (c *fakeCatalog) List() []entity.ProviderInfo {
	infos := make([]entity.ProviderInfo, 0, len(c.descriptors))
	for key := range c.descriptors {
		infos = append(infos, entity.ProviderInfo{Key: key})
	}
	return infos
}

func (c *fakeCatalog) Descriptors(_ context.Context, key string) ([]entity.Descriptor, error) {
	ds, ok := c.descriptors[key]
	if !ok {
		return nil, errors.New("unknown provider")
	}
	if c.loads == nil {
		c.loads = map[string]int{}
	}
	c.loads[key]++
	return ds, nil
}

func (c *fakeCatalog) Resolver(key string) (port.AssetResolver, bool) {
	r, ok := c.resolvers[key]
	return r, ok
}

func newBrowse(t *testing.T, pageSize int, names ...string) (*usecase.BrowseCatalogUseCase, *fakeCatalog) {
	t.Helper()
	catalog := &fakeCatalog{descriptors: map[string][]entity.Descriptor{"sym": glyphs(t, "sym", names...)}}
	uc := usecase.NewBrowseCatalogUseCase(catalog, usecase.NewAssetLoader(0, 0), pageSize)
	t.Cleanup(uc.Close)
	require.NoError(t, uc.Activate(testContext(), "sym"))
	return uc, catalog
}

func TestBrowseCatalog_ActivateUnknownProvider(t *testing.T) {
	uc := usecase.NewBrowseCatalogUseCase(&fakeCatalog{}, usecase.NewAssetLoader(0, 0), 0)
	err := uc.Activate(testContext(), "nope")
	assert.Error(t, err)
	assert.Empty(t, uc.ActiveProvider())
	assert.Empty(t, uc.View().Filtered)
}

func TestBrowseCatalog_ReactivateIsNoop(t *testing.T) {
	uc, catalog := newBrowse(t, 2, "a", "b", "c")
	uc.SetPage(2)

	require.NoError(t, uc.Activate(testContext(), "sym"))
	assert.Equal(t, 1, catalog.loads["sym"])
	assert.Equal(t, 2, uc.View().Page)
	assert.Nil(t, uc.Assets(), "synchronous provider has no asset session")
}

func TestBrowseCatalog_SearchResetsPage(t *testing.T) {
	uc, _ := newBrowse(t, 2, "alpha", "beta", "gamma", "delta", "epsilon")

	uc.NextPage()
	uc.NextPage()
	assert.Equal(t, 3, uc.View().Page)
	uc.NextPage()
	assert.Equal(t, 3, uc.View().Page, "stops at last page")

	uc.Search("eps")
	view := uc.View()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, []string{"epsilon"}, nameList(view.Paginated))
	assert.Equal(t, "eps", uc.Query())

	uc.PrevPage()
	assert.Equal(t, 1, uc.View().Page)
}

func TestBrowseCatalog_OutOfRangePageNormalised(t *testing.T) {
	uc, _ := newBrowse(t, 2, "a", "b", "c")
	uc.SetPage(9)
	assert.Equal(t, 1, uc.View().Page)
}

func TestBrowseCatalog_ToggleSort(t *testing.T) {
	uc, _ := newBrowse(t, 0, "b", "a", "c")
	assert.Equal(t, []string{"a", "b", "c"}, nameList(uc.View().Filtered))

	assert.False(t, uc.ToggleSort())
	assert.Equal(t, []string{"c", "b", "a"}, nameList(uc.View().Filtered))

	uc.SetSortAscending(true)
	assert.Equal(t, []string{"a", "b", "c"}, nameList(uc.View().Filtered))
}

func TestBrowseCatalog_JumpToInitial(t *testing.T) {
	uc, _ := newBrowse(t, 2, "apple", "avocado", "banana", "cherry", "coconut")

	require.True(t, uc.JumpToInitial("c"))
	view := uc.View()
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, []string{"banana", "cherry"}, nameList(view.Paginated))

	assert.False(t, uc.JumpToInitial("z"))
	assert.Equal(t, 2, uc.View().Page)

	uc.SetPage(1)
	next, ok := uc.NextInitial(0)
	require.True(t, ok)
	assert.Equal(t, "B", next.Initial)
	assert.Equal(t, 2, next.Start)
	assert.Equal(t, 2, uc.View().Page)

	next, ok = uc.NextInitial(3)
	require.True(t, ok)
	assert.Equal(t, "A", next.Initial, "wraps to the first group")
	assert.Equal(t, 1, uc.View().Page)
}

func TestBrowseCatalog_Find(t *testing.T) {
	uc, _ := newBrowse(t, 0, "star", "moon")
	d, ok := uc.Find("moon")
	require.True(t, ok)
	assert.Equal(t, "moon", d.Name())

	_, ok = uc.Find("sun")
	assert.False(t, ok)
	assert.Equal(t, entity.AssetUnloaded, uc.Lookup(d.Key()).State)
}
