package themejson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paletteTree() Tree {
	return Tree{
		"settings": Tree{
			"color": Tree{
				"palette": []interface{}{
					map[string]interface{}{"slug": "primary", "color": "#0055aa"},
				},
			},
			"typography": Tree{
				"fontSizes": []interface{}{
					map[string]interface{}{"slug": "large", "size": "36px"},
				},
			},
			"custom": Tree{
				"lineHeight": Tree{"body": 1.6},
			},
		},
	}
}

func TestVariables(t *testing.T) {
	css := Variables(paletteTree())

	assert.True(t, strings.HasPrefix(css, ":root{"))
	assert.Contains(t, css, "--bp--preset--color--primary: #0055aa")
	assert.Contains(t, css, "--bp--preset--font-size--large: 36px")
	assert.Contains(t, css, "--bp--custom--line-height--body: 1.6")
}

func TestVariablesEmptyTree(t *testing.T) {
	assert.Empty(t, Variables(Tree{}))
}

func TestPresets(t *testing.T) {
	css := Presets(paletteTree())

	assert.Contains(t, css, ".has-primary-color{color: var(--bp--preset--color--primary);}")
	assert.Contains(t, css, ".has-primary-background-color{background-color: var(--bp--preset--color--primary);}")
	assert.Contains(t, css, ".has-large-font-size{font-size: var(--bp--preset--font-size--large);}")
}

func TestStyles(t *testing.T) {
	tree := Tree{
		"styles": Tree{
			"color":      Tree{"background": "#ffffff", "text": "#111111"},
			"typography": Tree{"fontSize": "18px"},
			"elements": Tree{
				"link": Tree{
					"color": Tree{"text": "var:preset|color|primary"},
				},
			},
		},
	}

	css := Styles(tree)

	assert.Contains(t, css, "body{")
	assert.Contains(t, css, "background-color: #ffffff")
	assert.Contains(t, css, "color: #111111")
	assert.Contains(t, css, "font-size: 18px")
	assert.Contains(t, css, "a{color: var(--bp--preset--color--primary);}")
}

func TestDeclarationsBoxModel(t *testing.T) {
	node := Tree{
		"spacing": Tree{
			"padding": map[string]interface{}{
				"top":    "1rem",
				"bottom": "2rem",
			},
		},
	}

	decls := Declarations(node)
	assert.Contains(t, decls, "padding-top: 1rem")
	assert.Contains(t, decls, "padding-bottom: 2rem")
	assert.NotContains(t, decls, "padding-left")
}

func TestBlockCSS(t *testing.T) {
	node := Tree{"color": Tree{"text": "#333333"}}

	css := BlockCSS("core/paragraph", node)
	assert.Equal(t, ".bp-block-paragraph{color: #333333;}", css)

	css = BlockCSS("myplugin/card", node)
	assert.Equal(t, ".bp-block-myplugin-card{color: #333333;}", css)
}

func TestBlockStyleNodes(t *testing.T) {
	tree := Tree{
		"styles": Tree{
			"blocks": Tree{
				"core/paragraph": Tree{"color": Tree{"text": "#333333"}},
				"core/quote":     Tree{"typography": Tree{"fontStyle": "italic"}},
			},
		},
	}

	nodes := BlockStyleNodes(tree)
	assert.Len(t, nodes, 2)
	assert.Contains(t, nodes, "core/paragraph")
	assert.Contains(t, nodes, "core/quote")
}

func TestHandleSuffix(t *testing.T) {
	assert.Equal(t, "paragraph", HandleSuffix("core/paragraph"))
	assert.Equal(t, "post-title", HandleSuffix("core/post-title"))
	assert.Equal(t, "myplugin-card", HandleSuffix("myplugin/card"))
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "line-height", kebabCase("lineHeight"))
	assert.Equal(t, "color", kebabCase("color"))
	assert.Equal(t, "x", kebabCase("X"))
}

func TestSVGFilters(t *testing.T) {
	tree := Tree{
		"settings": Tree{
			"color": Tree{
				"duotone": []interface{}{
					map[string]interface{}{
						"slug":   "dark-sea",
						"colors": []interface{}{"#000000", "#00ffaa"},
					},
				},
			},
		},
	}

	svg := SVGFilters(tree)
	assert.Contains(t, svg, `<filter id="bp-duotone-dark-sea">`)
	assert.Contains(t, svg, "feColorMatrix")
	assert.Contains(t, svg, `tableValues="0.000 0.000"`)
	assert.Contains(t, svg, `tableValues="0.000 1.000"`)
	assert.Contains(t, svg, `tableValues="0.000 0.667"`)
}

func TestSVGFiltersEmpty(t *testing.T) {
	assert.Empty(t, SVGFilters(Tree{}))

	// Presets with too few colors are skipped.
	tree := Tree{
		"settings": Tree{
			"color": Tree{
				"duotone": []interface{}{
					map[string]interface{}{"slug": "lonely", "colors": []interface{}{"#fff"}},
				},
			},
		},
	}
	assert.Empty(t, SVGFilters(tree))
}
