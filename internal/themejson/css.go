package themejson

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// varPrefix namespaces the generated custom properties.
const varPrefix = "--bp"

// BlockNamespace is the namespace prefix stripped when deriving per-block
// class names and style handles.
const BlockNamespace = "core/"

// presetRef matches preset references inside style values, e.g.
// "var:preset|color|primary".
var presetRef = regexp.MustCompile(`^var:preset\|([a-z-]+)\|([A-Za-z0-9-]+)$`)

// Variables generates the :root custom-property block from a merged tree:
// preset variables from the color palette and font sizes, plus free-form
// variables from settings.custom.
func Variables(tree Tree) string {
	var decls []string

	if palette, ok := GetList(tree, []string{"settings", "color", "palette"}); ok {
		for _, item := range palette {
			slug, value := presetEntry(item, "color")
			if slug == "" {
				continue
			}
			decls = append(decls, fmt.Sprintf("%s--preset--color--%s: %s", varPrefix, slug, value))
		}
	}

	if sizes, ok := GetList(tree, []string{"settings", "typography", "fontSizes"}); ok {
		for _, item := range sizes {
			slug, value := presetEntry(item, "size")
			if slug == "" {
				continue
			}
			decls = append(decls, fmt.Sprintf("%s--preset--font-size--%s: %s", varPrefix, slug, value))
		}
	}

	if custom, ok := Get(tree, []string{"settings", "custom"}); ok {
		if m, isMap := asTree(custom); isMap {
			decls = append(decls, customProperties(m, varPrefix+"--custom")...)
		}
	}

	if len(decls) == 0 {
		return ""
	}
	return ":root{" + strings.Join(decls, ";") + ";}"
}

// customProperties flattens settings.custom into custom-property
// declarations, kebab-casing each path segment. Output is sorted for
// deterministic stylesheets.
func customProperties(tree Tree, prefix string) []string {
	var decls []string
	for key, value := range tree {
		name := prefix + "--" + kebabCase(key)
		if nested, ok := asTree(value); ok {
			decls = append(decls, customProperties(nested, name)...)
			continue
		}
		decls = append(decls, fmt.Sprintf("%s: %v", name, value))
	}
	sort.Strings(decls)
	return decls
}

// Presets generates the utility classes for color and font-size presets.
func Presets(tree Tree) string {
	var rules []string

	if palette, ok := GetList(tree, []string{"settings", "color", "palette"}); ok {
		for _, item := range palette {
			slug, _ := presetEntry(item, "color")
			if slug == "" {
				continue
			}
			ref := fmt.Sprintf("var(%s--preset--color--%s)", varPrefix, slug)
			rules = append(rules,
				fmt.Sprintf(".has-%s-color{color: %s;}", slug, ref),
				fmt.Sprintf(".has-%s-background-color{background-color: %s;}", slug, ref),
			)
		}
	}

	if sizes, ok := GetList(tree, []string{"settings", "typography", "fontSizes"}); ok {
		for _, item := range sizes {
			slug, _ := presetEntry(item, "size")
			if slug == "" {
				continue
			}
			rules = append(rules,
				fmt.Sprintf(".has-%s-font-size{font-size: var(%s--preset--font-size--%s);}", slug, varPrefix, slug),
			)
		}
	}

	return strings.Join(rules, "")
}

// elementSelectors maps theme.json element names to CSS selectors.
var elementSelectors = map[string]string{
	"link":    "a",
	"button":  "button",
	"heading": "h1, h2, h3, h4, h5, h6",
	"h1":      "h1",
	"h2":      "h2",
	"h3":      "h3",
	"h4":      "h4",
	"h5":      "h5",
	"h6":      "h6",
	"caption": "figcaption",
	"cite":    "cite",
}

// Styles generates the body and element rules from the tree's top-level
// styles node. Per-block styles are rendered separately by BlockCSS.
func Styles(tree Tree) string {
	styles, ok := Get(tree, []string{"styles"})
	if !ok {
		return ""
	}
	node, ok := asTree(styles)
	if !ok {
		return ""
	}

	var rules []string
	if body := Declarations(node); body != "" {
		rules = append(rules, "body{"+body+"}")
	}

	if elements, ok := asTree(node["elements"]); ok {
		names := sortedKeys(elements)
		for _, name := range names {
			selector, known := elementSelectors[name]
			if !known {
				continue
			}
			elementNode, ok := asTree(elements[name])
			if !ok {
				continue
			}
			if decls := Declarations(elementNode); decls != "" {
				rules = append(rules, selector+"{"+decls+"}")
			}
		}
	}

	return strings.Join(rules, "")
}

// BlockStyleNodes returns the per-block style subtrees of a merged tree,
// keyed by block name, e.g. "core/paragraph".
func BlockStyleNodes(tree Tree) map[string]Tree {
	blocks, ok := Get(tree, []string{"styles", "blocks"})
	if !ok {
		return nil
	}
	blocksMap, ok := asTree(blocks)
	if !ok {
		return nil
	}

	nodes := make(map[string]Tree, len(blocksMap))
	for name, node := range blocksMap {
		if m, ok := asTree(node); ok {
			nodes[name] = m
		}
	}
	return nodes
}

// BlockSelector derives the CSS selector for a block name, stripping the
// core namespace: "core/paragraph" selects ".bp-block-paragraph".
func BlockSelector(blockName string) string {
	return ".bp-block-" + HandleSuffix(blockName)
}

// HandleSuffix strips the core namespace from a block name and flattens the
// rest into a handle-safe token: "core/post-title" becomes "post-title",
// "myplugin/card" becomes "myplugin-card".
func HandleSuffix(blockName string) string {
	name := strings.TrimPrefix(blockName, BlockNamespace)
	return strings.ReplaceAll(name, "/", "-")
}

// BlockCSS renders a single block's style node into a rule scoped to the
// block's selector.
func BlockCSS(blockName string, node Tree) string {
	decls := Declarations(node)
	if decls == "" {
		return ""
	}
	return BlockSelector(blockName) + "{" + decls + "}"
}

// declarationMap orders the supported style properties: theme.json path
// pairs to CSS property names.
var declarationMap = []struct {
	group    string
	key      string
	property string
}{
	{"color", "background", "background-color"},
	{"color", "gradient", "background"},
	{"color", "text", "color"},
	{"typography", "fontFamily", "font-family"},
	{"typography", "fontSize", "font-size"},
	{"typography", "fontStyle", "font-style"},
	{"typography", "fontWeight", "font-weight"},
	{"typography", "letterSpacing", "letter-spacing"},
	{"typography", "lineHeight", "line-height"},
	{"typography", "textDecoration", "text-decoration"},
	{"typography", "textTransform", "text-transform"},
	{"border", "color", "border-color"},
	{"border", "radius", "border-radius"},
	{"border", "style", "border-style"},
	{"border", "width", "border-width"},
	{"spacing", "padding", "padding"},
	{"spacing", "margin", "margin"},
}

// boxSides orders the side keys of box-model values.
var boxSides = []string{"top", "right", "bottom", "left"}

// Declarations flattens a style node into CSS declarations. Preset
// references of the form "var:preset|color|slug" resolve to the matching
// generated custom property.
func Declarations(node Tree) string {
	var decls []string
	for _, entry := range declarationMap {
		value, ok := Get(node, []string{entry.group, entry.key})
		if !ok {
			continue
		}
		if box, isMap := asTree(value); isMap {
			// Box-model values carry per-side keys.
			for _, side := range boxSides {
				if v, ok := box[side]; ok {
					decls = append(decls, fmt.Sprintf("%s-%s: %s", entry.property, side, ResolveValue(v)))
				}
			}
			continue
		}
		decls = append(decls, fmt.Sprintf("%s: %s", entry.property, ResolveValue(value)))
	}
	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, ";") + ";"
}

// ResolveValue renders a style value, translating preset references into
// var() lookups.
func ResolveValue(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	m := presetRef.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return fmt.Sprintf("var(%s--preset--%s--%s)", varPrefix, kebabCase(m[1]), m[2])
}

// BaseLayoutStyles is the minimal layout CSS emitted when a theme ships no
// theme.json of its own.
func BaseLayoutStyles() string {
	return "body{margin: 0;}" +
		".is-layout-flow > *{margin-block-start: 1em;margin-block-end: 0;}" +
		".is-layout-flow > :first-child{margin-block-start: 0;}" +
		".is-layout-constrained > *{margin-inline: auto;max-width: var(--bp--style--global--content-size);}"
}

func presetEntry(item interface{}, valueKey string) (slug, value string) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return "", ""
	}
	slug, _ = m["slug"].(string)
	value, _ = m[valueKey].(string)
	if slug == "" || value == "" {
		return "", ""
	}
	return slug, value
}

func sortedKeys(t Tree) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// kebabCase converts camelCase segments to kebab-case for custom property
// names.
func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
