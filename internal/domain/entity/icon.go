// Package entity holds the icon catalog domain types.
// These are pure Go types with no infrastructure dependencies.
package entity

import (
	"errors"
	"fmt"
)

// Kind is the rendering strategy a descriptor's payload requires.
type Kind int

const (
	// KindInvalid is the zero kind; no valid descriptor carries it.
	KindInvalid Kind = iota
	KindComponentRef
	KindPathData
	KindCSSClassGlyph
	KindUnicodeGlyph
	KindAsyncRef
)

var kindNames = map[Kind]string{
	KindInvalid:       "invalid",
	KindComponentRef:  "component",
	KindPathData:      "path",
	KindCSSClassGlyph: "css-class",
	KindUnicodeGlyph:  "unicode",
	KindAsyncRef:      "async",
}

// String returns the stable identifier used in config keys and JSON output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind identifier back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s && k != KindInvalid {
			return k, true
		}
	}
	return KindInvalid, false
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindComponentRef, KindPathData, KindCSSClassGlyph, KindUnicodeGlyph, KindAsyncRef}
}

// ErrInvalidDescriptor is wrapped by every descriptor construction failure.
var ErrInvalidDescriptor = errors.New("invalid icon descriptor")

// IconKey is the catalog primary key: names are only unique within a provider.
type IconKey struct {
	Provider string
	Name     string
}

// String formats the key as provider/name.
func (k IconKey) String() string {
	return k.Provider + "/" + k.Name
}

// Descriptor is the normalized unit of one icon.
// Fields are unexported so the kind cannot change after NewDescriptor validated it.
type Descriptor struct {
	provider string
	name     string
	payload  Payload
}

// NewDescriptor builds a descriptor after checking the payload is valid for its kind.
func NewDescriptor(provider, name string, payload Payload) (Descriptor, error) {
	if provider == "" {
		return Descriptor{}, fmt.Errorf("%w: empty provider", ErrInvalidDescriptor)
	}
	if name == "" {
		return Descriptor{}, fmt.Errorf("%w: empty name for provider %s", ErrInvalidDescriptor, provider)
	}
	if payload == nil {
		return Descriptor{}, fmt.Errorf("%w: %s/%s has no payload", ErrInvalidDescriptor, provider, name)
	}
	if err := payload.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s/%s: %w", ErrInvalidDescriptor, provider, name, err)
	}
	return Descriptor{provider: provider, name: name, payload: payload}, nil
}

// Provider returns the key of the adapter that produced the descriptor.
func (d Descriptor) Provider() string { return d.provider }

// Name returns the provider-local icon name.
func (d Descriptor) Name() string { return d.name }

// Payload returns the strategy-specific data.
func (d Descriptor) Payload() Payload { return d.payload }

// Key returns the (provider, name) pair.
func (d Descriptor) Key() IconKey {
	return IconKey{Provider: d.provider, Name: d.name}
}

// Kind returns the rendering strategy, KindInvalid for the zero descriptor.
func (d Descriptor) Kind() Kind {
	if d.payload == nil {
		return KindInvalid
	}
	return d.payload.Kind()
}

// IsZero reports whether the descriptor was never constructed.
func (d Descriptor) IsZero() bool {
	return d.provider == "" && d.name == "" && d.payload == nil
}

// Validate re-checks the descriptor. Only the zero value or a descriptor whose
// component misbehaves can fail after construction.
func (d Descriptor) Validate() error {
	if d.payload == nil {
		return fmt.Errorf("%w: no payload", ErrInvalidDescriptor)
	}
	return d.payload.Validate()
}
