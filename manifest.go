package main

import (
	"os"
	"sort"

	"github.com/goccy/go-yaml"
)

// manifestEntry is one repository record as written by the distro command.
type manifestEntry struct {
	Type           string   `yaml:"type,omitempty"`
	URL            string   `yaml:"url"`
	Version        string   `yaml:"version"`
	Packages       []string `yaml:"packages"`
	PackageVersion string   `yaml:"package_version,omitempty"`
}

// ManifestItem pairs a manifest name with its decoded record. Spec is nil
// when the manifest holds a null value for the name.
type ManifestItem struct {
	Name string
	Spec *RepoSpec
}

// loadManifest reads a distribution manifest: a mapping of repository name
// to {url, version, packages}. Items are returned sorted by name.
func loadManifest(path string) ([]ManifestItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	return parseManifest(path, data)
}

func parseManifest(path string, data []byte) ([]ManifestItem, error) {
	var entries map[string]*manifestEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	// A null version asks the hosting API for the default branch, an absent
	// one means DefaultBranch. The typed decode cannot tell them apart.
	var keys map[string]map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]ManifestItem, 0, len(names))
	for _, name := range names {
		item := ManifestItem{Name: name}
		if e := entries[name]; e != nil {
			item.Spec = &RepoSpec{
				Name:     name,
				URL:      e.URL,
				Branch:   e.Version,
				Packages: e.Packages,
			}
			if _, ok := keys[name]["version"]; !ok {
				item.Spec.Branch = DefaultBranch
			}
		}
		items = append(items, item)
	}
	return items, nil
}
