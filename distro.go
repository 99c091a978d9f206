package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

// distribution is the subset of a rosdistro distribution.yaml we read.
type distribution struct {
	Repositories map[string]*distroRepository `yaml:"repositories"`
}

type distroRepository struct {
	Source *struct {
		Type    string `yaml:"type"`
		URL     string `yaml:"url"`
		Version string `yaml:"version"`
	} `yaml:"source"`
	Release *struct {
		Packages []string `yaml:"packages"`
		Version  string   `yaml:"version"`
	} `yaml:"release"`
}

// consolidate turns a distribution index into manifest entries. A
// repository without released packages declares a single package of its
// own name.
func consolidate(ctx context.Context, dist distribution) map[string]manifestEntry {
	log := zerolog.Ctx(ctx)
	entries := make(map[string]manifestEntry, len(dist.Repositories))
	for name, info := range dist.Repositories {
		if info == nil {
			continue
		}
		e := manifestEntry{Type: "git", Packages: []string{name}}
		if info.Source != nil {
			if info.Source.Type != "" {
				e.Type = info.Source.Type
			}
			e.URL = info.Source.URL
			e.Version = info.Source.Version
		}
		if info.Release != nil {
			if info.Release.Packages != nil {
				e.Packages = info.Release.Packages
			}
			e.PackageVersion = info.Release.Version
		}
		if e.URL == "" {
			log.Error().Str("repo", name).Msg("source url is empty")
		}
		entries[name] = e
	}
	return entries
}

// generateManifest downloads the distribution index of distro and writes
// the consolidated manifest to {outputDir}/{distro}_packages.yaml.
func generateManifest(ctx context.Context, client *HostingClient, indexURL, distro, outputDir string, stdout io.Writer) (string, error) {
	url := fmt.Sprintf("%s/%s/distribution.yaml", strings.TrimRight(indexURL, "/"), distro)
	zerolog.Ctx(ctx).Info().Str("distro", distro).Str("url", url).Msg("scraping distribution")

	data, err := client.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	var dist distribution
	if err := yaml.Unmarshal(data, &dist); err != nil {
		return "", &ManifestError{Path: url, Err: err}
	}

	out, err := yaml.Marshal(consolidate(ctx, dist))
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(outputDir, distro+"_packages.yaml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	fmt.Fprintf(stdout, "Consolidated YAML saved to %s\n", path)
	return path, nil
}
