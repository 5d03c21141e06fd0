package usecase_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/glyphs/internal/application/usecase"
)

func TestIndexCatalog_CaseInsensitiveSearchWithCollatedOrder(t *testing.T) {
	ds := glyphs(t, "p", "Zebra", "apple", "Mango", "banana")

	out := usecase.IndexCatalog(ds, usecase.IndexInput{Query: "an", SortAscending: true, Page: 1})

	assert.Equal(t, []string{"banana", "Mango"}, nameList(out.Filtered))
	assert.Equal(t, []string{"banana", "Mango"}, nameList(out.Paginated))
}

func TestIndexCatalog_PageClampsWhenFilterShrinks(t *testing.T) {
	ds := glyphs(t, "p", "alpha", "beta", "gamma", "delta", "epsilon")

	out := usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true, Page: 3, PageSize: 2})
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, 3, out.Page)
	assert.Equal(t, []string{"gamma"}, nameList(out.Paginated))

	out = usecase.IndexCatalog(ds, usecase.IndexInput{Query: "eps", SortAscending: true, Page: 5, PageSize: 2})
	assert.Equal(t, 1, out.TotalPages)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, []string{"epsilon"}, nameList(out.Paginated))
}

func TestIndexCatalog_EmptyInput(t *testing.T) {
	out := usecase.IndexCatalog(nil, usecase.IndexInput{Query: "x", Page: 7})
	assert.Empty(t, out.Filtered)
	assert.Empty(t, out.Paginated)
	assert.Empty(t, out.Groups)
	assert.Equal(t, 1, out.TotalPages)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, usecase.DefaultPageSize, out.PageSize)
}

func TestIndexCatalog_EmptyQueryKeepsEverything(t *testing.T) {
	ds := glyphs(t, "p", "b", "a", "c")
	out := usecase.IndexCatalog(ds, usecase.IndexInput{Query: "", SortAscending: true})
	assert.Equal(t, []string{"a", "b", "c"}, nameList(out.Filtered))
}

func TestIndexCatalog_QueryIsMatchedVerbatim(t *testing.T) {
	ds := glyphs(t, "p", "banana", "arrow left", "Mango")

	out := usecase.IndexCatalog(ds, usecase.IndexInput{Query: " ", SortAscending: true})
	assert.Equal(t, []string{"arrow left"}, nameList(out.Filtered))

	out = usecase.IndexCatalog(ds, usecase.IndexInput{Query: " an", SortAscending: true})
	assert.Empty(t, out.Filtered)

	out = usecase.IndexCatalog(ds, usecase.IndexInput{Query: " LE", SortAscending: true})
	assert.Equal(t, []string{"arrow left"}, nameList(out.Filtered))
}

func TestIndexCatalog_FilterIsMonotonic(t *testing.T) {
	ds := glyphs(t, "p", "arrow-up", "arrow-down", "archive", "alarm", "bell", "Arrow-left")

	var prev []string
	for _, q := range []string{"", "a", "ar", "arr", "arro", "arrow", "arrow-", "arrow-d"} {
		got := nameList(usecase.IndexCatalog(ds, usecase.IndexInput{Query: q, SortAscending: true}).Filtered)
		if prev != nil {
			for _, name := range got {
				assert.Contains(t, prev, name, "query %q", q)
			}
		}
		prev = got
	}
	assert.Equal(t, []string{"arrow-down"}, prev)
}

func TestIndexCatalog_SortDirection(t *testing.T) {
	ds := glyphs(t, "p", "delta", "Alpha", "charlie", "bravo", "alpha", "Bravo", "echo")

	asc := nameList(usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true}).Filtered)
	desc := nameList(usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: false}).Filtered)

	reversed := slices.Clone(desc)
	slices.Reverse(reversed)
	assert.Equal(t, asc, reversed)

	again := usecase.IndexCatalog(usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true}).Filtered,
		usecase.IndexInput{SortAscending: true})
	assert.Equal(t, asc, nameList(again.Filtered))

	assert.Equal(t, "echo", asc[len(asc)-1])
	assert.True(t, strings.EqualFold(asc[0], "alpha"))
}

func TestIndexCatalog_PagesCoverFilteredExactlyOnce(t *testing.T) {
	names := make([]string, 0, 47)
	for i := range 47 {
		names = append(names, fmt.Sprintf("icon-%02d", i))
	}
	ds := glyphs(t, "p", names...)

	for _, pageSize := range []int{1, 5, 10, 47, 100} {
		first := usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true, Page: 1, PageSize: pageSize})
		var seen []string
		for page := 1; page <= first.TotalPages; page++ {
			out := usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true, Page: page, PageSize: pageSize})
			require.Equal(t, page, out.Page)
			assert.LessOrEqual(t, len(out.Paginated), pageSize)
			seen = append(seen, nameList(out.Paginated)...)
		}
		assert.Equal(t, nameList(first.Filtered), seen, "page size %d", pageSize)
	}
}

func TestIndexCatalog_PaginatedDoesNotAliasAppends(t *testing.T) {
	ds := glyphs(t, "p", "a", "b", "c", "d")
	out := usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true, Page: 1, PageSize: 2})

	extra := glyphs(t, "p", "z")
	_ = append(out.Paginated, extra...)
	assert.Equal(t, []string{"a", "b", "c", "d"}, nameList(out.Filtered))
	assert.Equal(t, []string{"a", "b", "c", "d"}, nameList(ds))
}

func TestIndexCatalog_GroupsByInitial(t *testing.T) {
	ds := glyphs(t, "p", "bell", "Arrow", "alarm", "cloud", "bolt", "0-circle")

	out := usecase.IndexCatalog(ds, usecase.IndexInput{SortAscending: true, PageSize: 2})
	require.Len(t, out.Groups, 4)

	initials := make([]string, 0, len(out.Groups))
	total := 0
	for _, g := range out.Groups {
		initials = append(initials, g.Initial)
		total += len(g.Members)
		assert.Equal(t, g.Members[0].Name(), out.Filtered[g.Start].Name())
	}
	assert.Equal(t, []string{"0", "A", "B", "C"}, initials)
	assert.Equal(t, len(out.Filtered), total)
	assert.Equal(t, 2, usecase.PageOf(out.Groups[2].Start, out.PageSize))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, usecase.TotalPages(0, 10))
	assert.Equal(t, 1, usecase.TotalPages(10, 10))
	assert.Equal(t, 2, usecase.TotalPages(11, 10))
	assert.Equal(t, 3, usecase.TotalPages(5, 2))
	assert.Equal(t, 1, usecase.TotalPages(120, 0))
}
