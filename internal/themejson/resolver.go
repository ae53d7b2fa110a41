package themejson

import (
	"sort"
	"strings"
	"sync"
)

// Resolver owns the per-origin source trees and caches merged views. The
// merge is recomputed lazily per origin scope and dropped on Clean; callers
// never see a partially merged tree.
type Resolver struct {
	mutex   sync.Mutex
	origins map[Origin]Tree
	merged  map[string]Tree
}

// NewResolver creates a resolver seeded with the shipped default tree.
func NewResolver() *Resolver {
	return &Resolver{
		origins: map[Origin]Tree{OriginDefault: DefaultTree()},
		merged:  make(map[string]Tree),
	}
}

// SetOrigin replaces one origin's source tree and drops cached merges.
func (r *Resolver) SetOrigin(origin Origin, tree Tree) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if tree == nil {
		delete(r.origins, origin)
	} else {
		r.origins[origin] = tree
	}
	r.merged = make(map[string]Tree)
}

// Merged returns the merged view over the given origins, lowest precedence
// first. Results are cached until Clean or SetOrigin.
func (r *Resolver) Merged(origins ...Origin) Tree {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := scopeKey(origins)
	if tree, ok := r.merged[key]; ok {
		return tree
	}

	sources := make([]Tree, 0, len(origins))
	for _, origin := range origins {
		if t, ok := r.origins[origin]; ok {
			sources = append(sources, t)
		}
	}
	tree := Merge(sources...)
	r.merged[key] = tree
	return tree
}

// Clean drops all cached merged views. Source trees are kept.
func (r *Resolver) Clean() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.merged = make(map[string]Tree)
}

func scopeKey(origins []Origin) string {
	names := make([]string, len(origins))
	for i, o := range origins {
		names[i] = string(o)
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}

// DefaultTree returns the configuration blockpress ships with. Themes and
// user customizations layer on top of it.
func DefaultTree() Tree {
	return Tree{
		"settings": Tree{
			"color": Tree{
				"palette": []interface{}{
					map[string]interface{}{"slug": "black", "color": "#000000", "name": "Black"},
					map[string]interface{}{"slug": "white", "color": "#ffffff", "name": "White"},
				},
				"duotone": []interface{}{},
			},
			"typography": Tree{
				"fontSizes": []interface{}{
					map[string]interface{}{"slug": "small", "size": "13px", "name": "Small"},
					map[string]interface{}{"slug": "medium", "size": "20px", "name": "Medium"},
					map[string]interface{}{"slug": "large", "size": "36px", "name": "Large"},
				},
			},
			"spacing": Tree{
				"units": []interface{}{"px", "em", "rem", "vh", "vw", "%"},
			},
		},
		"styles": Tree{},
	}
}
