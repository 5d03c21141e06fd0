package provider

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/bnema/glyphs/internal/domain/entity"
)

var (
	pascalName = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	kebabName  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// descriptorSet accumulates descriptors for one provider, dropping entries
// that fail validation and names already taken.
type descriptorSet struct {
	provider string
	seen     map[string]struct{}
	out      []entity.Descriptor
}

func newDescriptorSet(provider string, capacity int) *descriptorSet {
	return &descriptorSet{
		provider: provider,
		seen:     make(map[string]struct{}, capacity),
		out:      make([]entity.Descriptor, 0, capacity),
	}
}

func (s *descriptorSet) add(name string, payload entity.Payload) bool {
	if _, dup := s.seen[name]; dup {
		return false
	}
	d, err := entity.NewDescriptor(s.provider, name, payload)
	if err != nil {
		return false
	}
	s.seen[name] = struct{}{}
	s.out = append(s.out, d)
	return true
}

// descriptors returns the set in byte order of names, so the output never
// depends on map iteration order.
func (s *descriptorSet) descriptors() []entity.Descriptor {
	sort.Slice(s.out, func(i, j int) bool { return s.out[i].Name() < s.out[j].Name() })
	return s.out
}

// pascalToKebab maps ArrowLeft2 to arrow-left2 and XCircle to x-circle.
func pascalToKebab(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// slugify lowercases and replaces runs of non-alphanumerics with one dash.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func stringField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return strings.TrimSpace(v)
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	case string:
		return []string{list}
	default:
		return nil
	}
}
