// Package themejson implements the layered theme configuration tree: parsing
// theme.json documents, merging origins by precedence, and generating the CSS
// and SVG output the styles resolver serves.
//
// Origins merge lowest to highest precedence: default (shipped with
// blockpress), theme (the active theme's theme.json), custom (user edits).
// Maps merge key-wise; any non-map value at a higher origin replaces the
// lower value wholesale.
package themejson

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Origin is a layer in the configuration merge order.
type Origin string

const (
	OriginDefault Origin = "default"
	OriginTheme   Origin = "theme"
	OriginCustom  Origin = "custom"
)

// Tree is a parsed theme.json document or a merged view over several.
type Tree map[string]interface{}

// Parse decodes a theme.json document. Comments and trailing commas are
// tolerated; theme.json files in the wild carry both.
func Parse(data []byte) (Tree, error) {
	var tree Tree
	if err := json.Unmarshal(jsonc.ToJSON(data), &tree); err != nil {
		return nil, fmt.Errorf("parsing theme configuration: %w", err)
	}
	return tree, nil
}

// LoadFile reads and parses a theme.json file.
func LoadFile(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Merge combines trees lowest-to-highest precedence. Inputs are not
// modified; the result shares no maps with them.
func Merge(trees ...Tree) Tree {
	result := Tree{}
	for _, t := range trees {
		mergeInto(result, t)
	}
	return result
}

func mergeInto(dst Tree, src Tree) {
	for key, value := range src {
		srcMap, srcIsMap := asTree(value)
		if !srcIsMap {
			dst[key] = value
			continue
		}
		dstMap, dstIsMap := asTree(dst[key])
		if !dstIsMap {
			dstMap = Tree{}
		} else {
			dstMap = copyTree(dstMap)
		}
		mergeInto(dstMap, srcMap)
		dst[key] = dstMap
	}
}

func copyTree(t Tree) Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// AsTree reports whether a value is a map node and returns it as a Tree.
// Both Tree values and raw decoded maps qualify.
func AsTree(v interface{}) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]interface{}:
		return Tree(m), true
	}
	return nil, false
}

func asTree(v interface{}) (Tree, bool) {
	return AsTree(v)
}

// Get performs a nested lookup along path. An empty path returns the tree
// itself. The boolean result is false when any path segment is missing or
// crosses a non-map value.
func Get(tree Tree, path []string) (interface{}, bool) {
	var current interface{} = tree
	for _, segment := range path {
		m, ok := asTree(current)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetString is Get narrowed to string values.
func GetString(tree Tree, path []string) (string, bool) {
	v, ok := Get(tree, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetList is Get narrowed to list values.
func GetList(tree Tree, path []string) ([]interface{}, bool) {
	v, ok := Get(tree, path)
	if !ok {
		return nil, false
	}
	l, ok := v.([]interface{})
	return l, ok
}
