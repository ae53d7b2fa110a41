package styles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacedmonkey/blockpress/internal/assets"
	"github.com/spacedmonkey/blockpress/internal/theme"
	"github.com/spacedmonkey/blockpress/internal/themejson"
)

const testThemeJSON = `{
	"settings": {
		"color": {
			"palette": [
				{ "slug": "primary", "color": "#0055aa" }
			]
		},
		"blocks": {
			"core/paragraph": {
				"typography": { "dropCap": true }
			}
		}
	},
	"styles": {
		"color": { "background": "#fafafa" },
		"blocks": {
			"core/paragraph": {
				"color": { "text": "#222222" }
			},
			"myplugin/card": {
				"spacing": { "padding": { "top": "1rem" } }
			}
		}
	}
}`

func newTestTheme(t *testing.T, themeJSON string) *theme.Theme {
	t.Helper()
	root := t.TempDir()
	if themeJSON != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, theme.ThemeJSONName), []byte(themeJSON), 0o644))
	}
	th, err := theme.Load(root)
	require.NoError(t, err)
	return th
}

func newTestResolver(t *testing.T, themeJSON string, opts Options) (*Resolver, *themejson.Resolver) {
	t.Helper()
	merge := themejson.NewResolver()
	return NewResolver(newTestTheme(t, themeJSON), merge, opts, nil), merge
}

func TestGetSettingsPathLookup(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	palette, ok := r.GetSettings([]string{"color", "palette"}, QueryContext{}).([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, palette)
}

func TestGetSettingsBlockNamePrependsPath(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	// An empty path with a block name resolves ["blocks", blockName].
	blockSettings := r.GetSettings(nil, QueryContext{BlockName: "core/paragraph"})
	node, ok := themejson.AsTree(blockSettings)
	require.True(t, ok)
	dropCap, ok := themejson.Get(node, []string{"typography", "dropCap"})
	require.True(t, ok)
	assert.Equal(t, true, dropCap)
}

func TestGetSettingsMissingPathReturnsSettingsTree(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	fallback := r.GetSettings([]string{"no", "such", "path"}, QueryContext{})
	node, ok := themejson.AsTree(fallback)
	require.True(t, ok)

	// The fallback is the full settings subtree.
	_, hasColor := themejson.Get(node, []string{"color"})
	assert.True(t, hasColor)
}

func TestGetSettingsOriginScopes(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})
	r.SetCustom(themejson.Tree{
		"settings": themejson.Tree{
			"color": themejson.Tree{"custom": "user-set"},
		},
	})

	all := r.GetSettings([]string{"color", "custom"}, QueryContext{})
	assert.Equal(t, "user-set", all)

	// The base scope sees only default and theme origins; the path does
	// not resolve there, so the settings subtree comes back instead.
	base := r.GetSettings([]string{"color", "custom"}, QueryContext{Origin: ScopeBase})
	_, isTree := themejson.AsTree(base)
	assert.True(t, isTree)
}

func TestGetStylesReadsStylesSubtree(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	background := r.GetStyles([]string{"color", "background"}, QueryContext{})
	assert.Equal(t, "#fafafa", background)

	text := r.GetStyles([]string{"color", "text"}, QueryContext{BlockName: "core/paragraph"})
	assert.Equal(t, "#222222", text)
}

func TestGetStylesheetWithThemeJSON(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	css := r.GetStylesheet()

	assert.Contains(t, css, "--bp--preset--color--primary: #0055aa", "variables section")
	assert.Contains(t, css, "background-color: #fafafa", "styles section")
	assert.Contains(t, css, ".has-primary-color{", "presets section")
	assert.NotContains(t, css, ".is-layout-flow", "base layout styles only apply without theme.json")
}

func TestGetStylesheetWithoutThemeJSON(t *testing.T) {
	r, _ := newTestResolver(t, "", Options{})
	r.SetCustom(themejson.Tree{
		"settings": themejson.Tree{
			"color": themejson.Tree{
				"palette": []interface{}{
					map[string]interface{}{"slug": "user", "color": "#123456"},
				},
			},
		},
	})

	css := r.GetStylesheet()

	// Variables always resolve against all origins.
	assert.Contains(t, css, "--bp--preset--color--user: #123456")
	// Non-variable sections restrict to the default origin, so the
	// user palette produces no preset classes.
	assert.NotContains(t, css, ".has-user-color{")
	assert.Contains(t, css, ".has-black-color{", "default palette presets remain")
	assert.Contains(t, css, ".is-layout-flow", "base layout styles included")
}

func TestGetStylesheetVariablesComeFirst(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	css := r.GetStylesheet()
	assert.True(t, strings.HasPrefix(css, ":root{"), "variables open the stylesheet")
}

func TestGetStylesheetExplicitTypes(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	css := r.GetStylesheet(TypePresets)
	assert.Contains(t, css, ".has-primary-color{")
	assert.NotContains(t, css, ":root{")
	assert.NotContains(t, css, "background-color: #fafafa")
}

func TestGetStylesheetCaching(t *testing.T) {
	r, merge := newTestResolver(t, testThemeJSON, Options{})

	first := r.GetStylesheet()

	// Mutating an origin behind the resolver's back is not reflected
	// until caches are cleaned.
	merge.SetOrigin(themejson.OriginCustom, themejson.Tree{
		"styles": themejson.Tree{"color": themejson.Tree{"text": "#999999"}},
	})
	assert.Equal(t, first, r.GetStylesheet(), "default form is served from cache")

	r.CleanCaches()
	assert.NotEqual(t, first, r.GetStylesheet())
}

func TestGetStylesheetNoCachingInDebugMode(t *testing.T) {
	r, merge := newTestResolver(t, testThemeJSON, Options{Debug: true})

	first := r.GetStylesheet()
	merge.SetOrigin(themejson.OriginCustom, themejson.Tree{
		"styles": themejson.Tree{"color": themejson.Tree{"text": "#999999"}},
	})

	assert.NotEqual(t, first, r.GetStylesheet())
}

func TestGetStylesheetExplicitTypesNeverCached(t *testing.T) {
	r, merge := newTestResolver(t, testThemeJSON, Options{})

	first := r.GetStylesheet(TypeStyles)
	merge.SetOrigin(themejson.OriginCustom, themejson.Tree{
		"styles": themejson.Tree{"color": themejson.Tree{"text": "#999999"}},
	})

	assert.NotEqual(t, first, r.GetStylesheet(TypeStyles))
}

const duotoneThemeJSON = `{
	"settings": {
		"color": {
			"duotone": [
				{ "slug": "midnight", "colors": ["#000000", "#0000ff"] }
			]
		}
	}
}`

func TestGetStylesSVGFilters(t *testing.T) {
	r, _ := newTestResolver(t, duotoneThemeJSON, Options{})

	svg := r.GetStylesSVGFilters()
	assert.Contains(t, svg, themejson.DuotoneFilterID("midnight"))
}

func TestGetStylesSVGFiltersAdminContextNotCached(t *testing.T) {
	r, merge := newTestResolver(t, duotoneThemeJSON, Options{AdminContext: true})

	first := r.GetStylesSVGFilters()
	merge.SetOrigin(themejson.OriginTheme, themejson.Tree{})

	assert.NotEqual(t, first, r.GetStylesSVGFilters())
}

func TestGetStylesSVGFiltersWithoutThemeJSONUsesDefaults(t *testing.T) {
	r, merge := newTestResolver(t, "", Options{})

	// Custom duotone presets are ignored when the theme ships no
	// theme.json; only the default origin applies.
	merge.SetOrigin(themejson.OriginCustom, themejson.Tree{
		"settings": themejson.Tree{
			"color": themejson.Tree{
				"duotone": []interface{}{
					map[string]interface{}{"slug": "user", "colors": []interface{}{"#000000", "#ffffff"}},
				},
			},
		},
	})

	assert.Empty(t, r.GetStylesSVGFilters())
}

func TestAddGlobalStylesForBlocksSharedHandle(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	reg := assets.NewStyleRegistry()
	r.AddGlobalStylesForBlocks(reg)

	assert.Equal(t, []string{assets.GlobalStylesHandle}, reg.Handles())
	css := reg.Inline(assets.GlobalStylesHandle)
	assert.Contains(t, css, ".bp-block-paragraph{")
	assert.Contains(t, css, ".bp-block-myplugin-card{")
}

func TestAddGlobalStylesForBlocksSeparateHandles(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{SeparateBlockAssets: true})

	reg := assets.NewStyleRegistry()
	r.AddGlobalStylesForBlocks(reg)

	handles := reg.HandlesSorted()
	assert.Equal(t, []string{"bp-block-myplugin-card", "bp-block-paragraph"}, handles)
	assert.Contains(t, reg.Inline("bp-block-paragraph"), "color: #222222")
}

func TestSwitchThemeDropsCaches(t *testing.T) {
	r, _ := newTestResolver(t, testThemeJSON, Options{})

	first := r.GetStylesheet()
	assert.Contains(t, first, "background-color: #fafafa")

	r.SwitchTheme(newTestTheme(t, ""))

	second := r.GetStylesheet()
	assert.NotContains(t, second, "background-color: #fafafa")
	assert.Contains(t, second, ".is-layout-flow")
}
