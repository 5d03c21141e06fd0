package provider

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/grafana/sobek"

	"github.com/bnema/glyphs/internal/domain/entity"
)

//go:embed data/feather.js
var featherJS string

// JSModuleAdapter evaluates a CommonJS icon module and reads its named exports.
// Icons are PascalCase exports shaped {viewBox, paths}; names become kebab-case.
type JSModuleAdapter struct {
	info   entity.ProviderInfo
	source string
	stroke bool
}

// NewFeatherAdapter returns the built-in outline icon provider.
func NewFeatherAdapter() *JSModuleAdapter {
	return NewJSModuleAdapter(entity.ProviderInfo{
		Key:         "feather",
		Title:       "Feather",
		Description: "Outline icons exported from a JavaScript module",
	}, featherJS, true)
}

// NewJSModuleAdapter wraps module source. stroke selects outline rendering.
func NewJSModuleAdapter(info entity.ProviderInfo, source string, stroke bool) *JSModuleAdapter {
	info.Kind = entity.KindPathData
	return &JSModuleAdapter{info: info, source: source, stroke: stroke}
}

func (a *JSModuleAdapter) Info() entity.ProviderInfo { return a.info }

// Load runs the module in a fresh runtime. Cancelling ctx interrupts it.
func (a *JSModuleAdapter) Load(ctx context.Context) (any, error) {
	vm := sobek.New()
	module := vm.NewObject()
	exports := vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("failed to prepare module: %w", err)
	}
	if err := vm.Set("module", module); err != nil {
		return nil, fmt.Errorf("failed to prepare module: %w", err)
	}
	if err := vm.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("failed to prepare module: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	if _, err := vm.RunScript(a.info.Key+".js", a.source); err != nil {
		return nil, fmt.Errorf("failed to evaluate %s module: %w", a.info.Key, err)
	}

	// module.exports may have been replaced wholesale.
	exported := module.Get("exports")
	if exported == nil || sobek.IsUndefined(exported) || sobek.IsNull(exported) {
		return map[string]any{}, nil
	}
	return exported.Export(), nil
}

func (a *JSModuleAdapter) BuildDescriptors(raw any) []entity.Descriptor {
	exports, ok := raw.(map[string]any)
	if !ok {
		return []entity.Descriptor{}
	}

	set := newDescriptorSet(a.info.Key, len(exports))
	for exportName, value := range exports {
		if !pascalName.MatchString(exportName) || isMetadataName(exportName) {
			continue
		}
		def, ok := value.(map[string]any)
		if !ok {
			continue
		}
		paths := stringList(def["paths"])
		if len(paths) == 0 {
			continue
		}
		viewBox := entity.DefaultViewBox
		if vb := stringField(def, "viewBox"); vb != "" {
			parsed, err := entity.ParseViewBox(vb)
			if err != nil {
				continue
			}
			viewBox = parsed
		}
		set.add(pascalToKebab(exportName), entity.PathPayload{
			Paths:   paths,
			ViewBox: viewBox,
			Stroke:  a.stroke,
		})
	}
	return set.descriptors()
}
