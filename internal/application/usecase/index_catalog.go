// Package usecase implements catalog indexing, browsing, asset loading and
// selection on top of the port interfaces.
package usecase

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bnema/glyphs/internal/domain/entity"
)

// DefaultPageSize is the grid page size used when none is configured.
const DefaultPageSize = 120

// IndexInput is one catalog snapshot request.
type IndexInput struct {
	Query         string
	SortAscending bool
	Page          int // 1-based
	PageSize      int
}

// InitialGroup partitions the filtered list by the uppercase first rune of names.
type InitialGroup struct {
	Initial string
	// Start is the position of the group's first member in Filtered.
	Start   int
	Members []entity.Descriptor
}

// IndexOutput is a fresh, unshared view over a descriptor list.
type IndexOutput struct {
	Filtered   []entity.Descriptor
	Paginated  []entity.Descriptor
	Page       int
	PageSize   int
	TotalPages int
	Groups     []InitialGroup
}

// IndexCatalog filters, sorts, paginates and groups descriptors.
// It does no I/O and keeps no state, so it can re-run on every keystroke.
func IndexCatalog(descriptors []entity.Descriptor, in IndexInput) IndexOutput {
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := filterByName(descriptors, in.Query)
	sortByName(filtered, in.SortAscending)

	totalPages := TotalPages(len(filtered), pageSize)
	page := in.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(filtered))
	paginated := filtered[start:end:end]

	return IndexOutput{
		Filtered:   filtered,
		Paginated:  paginated,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Groups:     groupByInitial(filtered),
	}
}

// TotalPages returns max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// PageOf returns the 1-based page holding the item at position i of the filtered list.
func PageOf(i, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if i < 0 {
		return 1
	}
	return i/pageSize + 1
}

func filterByName(descriptors []entity.Descriptor, query string) []entity.Descriptor {
	out := make([]entity.Descriptor, 0, len(descriptors))
	if query == "" {
		return append(out, descriptors...)
	}

	fold := cases.Fold()
	needle := fold.String(query)
	for _, d := range descriptors {
		if strings.Contains(fold.String(d.Name()), needle) {
			out = append(out, d)
		}
	}
	return out
}

// sortByName orders by locale collation with a byte-order tie-break, giving a
// total order so descending is the exact reverse of ascending.
func sortByName(descriptors []entity.Descriptor, ascending bool) {
	col := collate.New(language.English)
	sort.SliceStable(descriptors, func(i, j int) bool {
		a, b := descriptors[i].Name(), descriptors[j].Name()
		c := col.CompareString(a, b)
		if c == 0 {
			c = strings.Compare(a, b)
		}
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

func groupByInitial(filtered []entity.Descriptor) []InitialGroup {
	byInitial := make(map[rune]*InitialGroup)
	for i, d := range filtered {
		r, _ := utf8.DecodeRuneInString(d.Name())
		r = unicode.ToUpper(r)
		g, ok := byInitial[r]
		if !ok {
			g = &InitialGroup{Initial: string(r), Start: i}
			byInitial[r] = g
		}
		g.Members = append(g.Members, d)
	}

	initials := make([]rune, 0, len(byInitial))
	for r := range byInitial {
		initials = append(initials, r)
	}
	sort.Slice(initials, func(i, j int) bool { return initials[i] < initials[j] })

	groups := make([]InitialGroup, 0, len(initials))
	for _, r := range initials {
		groups = append(groups, *byInitial[r])
	}
	return groups
}
