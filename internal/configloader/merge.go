package configloader

import (
	"slices"

	"github.com/yaklabco/md2html/pkg/config"
)

// merge combines two configurations, with override taking precedence.
//   - Pointer fields: a non-nil override wins, so false and 0 can be set explicitly.
//   - Strings and ints: a non-zero override wins.
//   - Slices: a non-nil override replaces base entirely.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeRender(&result.Render, override.Render)

	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}
	if override.Compare.Flavor != "" {
		result.Compare.Flavor = override.Compare.Flavor
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}

	return result
}

func mergeRender(dst *config.RenderConfig, src config.RenderConfig) {
	mergePtr(&dst.HeadingIDs, src.HeadingIDs)
	mergePtr(&dst.Highlight, src.Highlight)
	mergePtr(&dst.DetectLanguage, src.DetectLanguage)
	mergePtr(&dst.IndentWidth, src.IndentWidth)
	mergePtr(&dst.Standalone, src.Standalone)

	if src.Style != "" {
		dst.Style = src.Style
	}
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
