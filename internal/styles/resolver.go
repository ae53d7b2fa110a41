// Package styles exposes read-only, path-scoped views over the merged theme
// configuration tree, plus the two derived string caches (the generated
// stylesheet and the SVG filter document).
//
// The deep merge itself belongs to the themejson resolver; this package
// composes lookup paths, selects origin scopes, and owns the request-scoped
// caching discipline: derived strings are cached only in their default form,
// never in debug mode, and are dropped wholesale whenever any underlying
// origin changes.
package styles

import (
	"context"
	"sync"

	"github.com/spacedmonkey/blockpress/internal/assets"
	"github.com/spacedmonkey/blockpress/internal/logging"
	"github.com/spacedmonkey/blockpress/internal/theme"
	"github.com/spacedmonkey/blockpress/internal/themejson"
)

// StylesheetType selects which sections GetStylesheet emits.
type StylesheetType string

const (
	TypeVariables        StylesheetType = "variables"
	TypeStyles           StylesheetType = "styles"
	TypePresets          StylesheetType = "presets"
	TypeBaseLayoutStyles StylesheetType = "base-layout-styles"
)

// OriginScope narrows which origins a settings or styles query sees.
type OriginScope string

const (
	// ScopeAll merges default, theme, and custom origins. The zero value
	// of QueryContext.Origin means ScopeAll.
	ScopeAll OriginScope = "all"
	// ScopeBase merges default and theme origins only.
	ScopeBase OriginScope = "base"
)

// QueryContext narrows a settings or styles query.
type QueryContext struct {
	// BlockName scopes the query to one block's subtree by prepending
	// ["blocks", BlockName] to the caller's path.
	BlockName string
	// Origin selects the origin scope; empty means ScopeAll.
	Origin OriginScope
}

// Cache keys for the two derived string caches.
const (
	cacheKeyStylesheet = "stylesheet"
	cacheKeySVGFilters = "svg-filters"
)

// Options holds the runtime flags that alter caching and asset routing.
type Options struct {
	// Debug disables the derived string caches entirely.
	Debug bool
	// AdminContext additionally disables the SVG filter cache.
	AdminContext bool
	// SeparateBlockAssets routes per-block CSS to per-block handles
	// instead of the shared global-styles handle.
	SeparateBlockAssets bool
}

// Resolver is the global settings/styles read surface for one active theme.
type Resolver struct {
	theme  *theme.Theme
	merge  *themejson.Resolver
	opts   Options
	logger logging.Logger

	mutex sync.Mutex
	// derived holds the two string caches. Process-local; never
	// persisted across runs.
	derived map[string]string
}

// NewResolver creates a resolver for the active theme. The theme's own
// theme.json, when present, is loaded into the theme origin; a parse failure
// is logged and the origin left empty rather than failing resolution.
func NewResolver(t *theme.Theme, merge *themejson.Resolver, opts Options, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	r := &Resolver{
		theme:   t,
		merge:   merge,
		opts:    opts,
		logger:  logger.WithComponent("styles"),
		derived: make(map[string]string),
	}
	r.loadThemeOrigin()
	return r
}

func (r *Resolver) loadThemeOrigin() {
	path, ok := r.theme.ThemeJSONPath()
	if !ok {
		r.merge.SetOrigin(themejson.OriginTheme, nil)
		return
	}
	tree, err := themejson.LoadFile(path)
	if err != nil {
		r.logger.Error(context.Background(), err, "loading theme configuration", "theme", r.theme.Stylesheet)
		r.merge.SetOrigin(themejson.OriginTheme, nil)
		return
	}
	r.merge.SetOrigin(themejson.OriginTheme, tree)
}

// SetCustom replaces the custom (user) origin and drops derived caches.
func (r *Resolver) SetCustom(tree themejson.Tree) {
	r.merge.SetOrigin(themejson.OriginCustom, tree)
	r.CleanCaches()
}

// SwitchTheme points the resolver at a different active theme, reloading the
// theme origin and dropping derived caches.
func (r *Resolver) SwitchTheme(t *theme.Theme) {
	r.mutex.Lock()
	r.theme = t
	r.mutex.Unlock()
	r.loadThemeOrigin()
	r.CleanCaches()
}

// Theme returns the active theme.
func (r *Resolver) Theme() *theme.Theme {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.theme
}

// originsFor returns the merge scope for a query context.
func originsFor(scope OriginScope) []themejson.Origin {
	if scope == ScopeBase {
		return []themejson.Origin{themejson.OriginDefault, themejson.OriginTheme}
	}
	return []themejson.Origin{themejson.OriginDefault, themejson.OriginTheme, themejson.OriginCustom}
}

// GetSettings returns the settings subtree at path. With a block name in the
// context, ["blocks", name] is prepended to the path. When the path does not
// resolve, the full settings subtree is returned as the fallback default.
func (r *Resolver) GetSettings(path []string, ctx QueryContext) interface{} {
	return r.query("settings", path, ctx)
}

// GetStyles returns the styles subtree at path, with the same path and
// fallback rules as GetSettings.
func (r *Resolver) GetStyles(path []string, ctx QueryContext) interface{} {
	return r.query("styles", path, ctx)
}

func (r *Resolver) query(root string, path []string, ctx QueryContext) interface{} {
	merged := r.merge.Merged(originsFor(ctx.Origin)...)

	rootTree := themejson.Tree{}
	if subtree, ok := themejson.Get(merged, []string{root}); ok {
		if t, isMap := themejson.AsTree(subtree); isMap {
			rootTree = t
		}
	}

	full := path
	if ctx.BlockName != "" {
		full = append([]string{"blocks", ctx.BlockName}, path...)
	}

	value, ok := themejson.Get(rootTree, full)
	if !ok {
		return rootTree
	}
	return value
}

// GetStylesheet assembles the global stylesheet from the merged tree.
//
// With no explicit types the output depends on whether the active theme
// ships a theme.json: themes without one get variables, presets, and the
// base layout styles; themes with one get variables, styles, and presets.
// Only that default form is cached, and never in debug mode.
//
// Variables always resolve against all three origins and are emitted ahead
// of the other sections. The remaining sections restrict to the default
// origin alone when the theme ships no theme.json.
func (r *Resolver) GetStylesheet(types ...StylesheetType) string {
	hasThemeJSON := r.Theme().HasThemeJSON()

	canCache := len(types) == 0 && !r.opts.Debug
	if canCache {
		if css, ok := r.cached(cacheKeyStylesheet); ok {
			return css
		}
	}

	if len(types) == 0 {
		if hasThemeJSON {
			types = []StylesheetType{TypeVariables, TypeStyles, TypePresets}
		} else {
			types = []StylesheetType{TypeVariables, TypePresets, TypeBaseLayoutStyles}
		}
	}

	// Variables cover every origin even for themes without a theme.json;
	// user-set custom properties must resolve regardless.
	variablesTree := r.merge.Merged(themejson.OriginDefault, themejson.OriginTheme, themejson.OriginCustom)

	restTree := variablesTree
	if !hasThemeJSON {
		restTree = r.merge.Merged(themejson.OriginDefault)
	}

	var out string
	for _, t := range types {
		if t == TypeVariables {
			out += themejson.Variables(variablesTree)
		}
	}
	for _, t := range types {
		switch t {
		case TypeStyles:
			out += themejson.Styles(restTree)
		case TypePresets:
			out += themejson.Presets(restTree)
		case TypeBaseLayoutStyles:
			out += themejson.BaseLayoutStyles()
		}
	}

	if canCache {
		r.storeDerived(cacheKeyStylesheet, out)
	}
	return out
}

// GetStylesSVGFilters renders the duotone SVG filter document. Cached under
// the same discipline as the stylesheet, additionally disabled in an
// administrative context.
func (r *Resolver) GetStylesSVGFilters() string {
	canCache := !r.opts.Debug && !r.opts.AdminContext
	if canCache {
		if svg, ok := r.cached(cacheKeySVGFilters); ok {
			return svg
		}
	}

	origins := []themejson.Origin{themejson.OriginDefault, themejson.OriginTheme, themejson.OriginCustom}
	if !r.Theme().HasThemeJSON() {
		origins = []themejson.Origin{themejson.OriginDefault}
	}
	svg := themejson.SVGFilters(r.merge.Merged(origins...))

	if canCache {
		r.storeDerived(cacheKeySVGFilters, svg)
	}
	return svg
}

// AddGlobalStylesForBlocks renders every per-block style node of the merged
// tree and attaches the CSS to the style registry: one shared handle, or a
// per-block handle with the core namespace stripped, when separate block
// assets are enabled.
func (r *Resolver) AddGlobalStylesForBlocks(reg *assets.StyleRegistry) {
	merged := r.merge.Merged(themejson.OriginDefault, themejson.OriginTheme, themejson.OriginCustom)

	for blockName, node := range themejson.BlockStyleNodes(merged) {
		css := themejson.BlockCSS(blockName, node)
		if css == "" {
			continue
		}
		handle := assets.GlobalStylesHandle
		if r.opts.SeparateBlockAssets {
			handle = "bp-block-" + themejson.HandleSuffix(blockName)
		}
		reg.AddInline(handle, css)
	}
}

// CleanCaches drops both derived string caches and the merged-tree cache.
// Must be called whenever any origin changes underneath the resolver.
func (r *Resolver) CleanCaches() {
	r.mutex.Lock()
	r.derived = make(map[string]string)
	r.mutex.Unlock()
	r.merge.Clean()
}

func (r *Resolver) cached(key string) (string, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	v, ok := r.derived[key]
	return v, ok
}

func (r *Resolver) storeDerived(key, value string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.derived[key] = value
}
