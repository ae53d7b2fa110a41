// Package theme models theme identity for blockpress: the stylesheet
// identifier and declared version that key pattern caches, the directory
// layout patterns are discovered under, and the theme.json presence check
// that drives stylesheet generation defaults.
package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the theme manifest file read from the theme root.
const ManifestName = "theme.yaml"

// PatternsDirName is the directory under the theme root that holds
// block-pattern files.
const PatternsDirName = "patterns"

// ThemeJSONName is the configuration file whose presence switches the
// stylesheet generation defaults.
const ThemeJSONName = "theme.json"

// Theme identifies an installed theme. Stylesheet and Version together key
// the pattern cache: a cache entry recorded under a different version is
// considered stale and rebuilt.
type Theme struct {
	// Name is the human-readable theme name.
	Name string `yaml:"name"`
	// Stylesheet is the unique theme identifier, typically the directory
	// name the theme is installed under.
	Stylesheet string `yaml:"stylesheet"`
	// Version is the theme's declared version string.
	Version string `yaml:"version"`
	// Root is the absolute path of the theme directory. Not part of the
	// manifest.
	Root string `yaml:"-"`
	// Parent is the parent theme when this is a child theme.
	Parent *Theme `yaml:"-"`
	// ParentStylesheet names the parent theme directory, when any.
	ParentStylesheet string `yaml:"parent"`
}

type manifest struct {
	Name       string `yaml:"name"`
	Stylesheet string `yaml:"stylesheet"`
	Version    string `yaml:"version"`
	Parent     string `yaml:"parent"`
}

// Load reads a theme from its root directory. The manifest is optional: a
// bare directory is still a valid theme identified by its directory name,
// with an empty version. When the manifest names a parent theme, the parent
// is resolved as a sibling directory of the theme root.
func Load(root string) (*Theme, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving theme root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading theme root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("theme root %s is not a directory", root)
	}

	t := &Theme{
		Stylesheet: filepath.Base(abs),
		Root:       abs,
	}

	data, err := os.ReadFile(filepath.Join(abs, ManifestName))
	if err == nil {
		var m manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ManifestName, err)
		}
		t.Name = m.Name
		t.Version = m.Version
		t.ParentStylesheet = m.Parent
		if m.Stylesheet != "" {
			t.Stylesheet = m.Stylesheet
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", ManifestName, err)
	}

	if t.ParentStylesheet != "" && t.ParentStylesheet != t.Stylesheet {
		parent, err := Load(filepath.Join(filepath.Dir(abs), t.ParentStylesheet))
		if err != nil {
			return nil, fmt.Errorf("loading parent theme %s: %w", t.ParentStylesheet, err)
		}
		t.Parent = parent
	}

	return t, nil
}

// PatternsDir returns the directory scanned for block-pattern files.
func (t *Theme) PatternsDir() string {
	return filepath.Join(t.Root, PatternsDirName)
}

// ThemeJSONPath returns the path of the theme's configuration file and
// whether it is readable, checking the theme root first and falling back to
// the parent theme root. The file is not parsed here.
func (t *Theme) ThemeJSONPath() (string, bool) {
	path := filepath.Join(t.Root, ThemeJSONName)
	if fileReadable(path) {
		return path, true
	}
	if t.Parent != nil {
		return t.Parent.ThemeJSONPath()
	}
	return "", false
}

// HasThemeJSON reports whether the theme or its parent ships a theme.json.
func (t *Theme) HasThemeJSON() bool {
	_, ok := t.ThemeJSONPath()
	return ok
}

func fileReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
