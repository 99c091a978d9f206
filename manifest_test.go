package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
rclcpp:
  type: git
  url: https://github.com/ros2/rclcpp.git
  version: rolling
  packages:
  - rclcpp
  - rclcpp_action
  package_version: 28.1.0-1
ament_cmake:
  url: https://github.com/ament/ament_cmake.git
  version: null
empty_url:
  url: ""
  packages: [a]
broken:
`)

	items, err := parseManifest("test.yaml", data)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, ManifestItem{Name: "ament_cmake", Spec: &RepoSpec{
		Name: "ament_cmake",
		URL:  "https://github.com/ament/ament_cmake.git",
	}}, items[0])
	assert.Equal(t, ManifestItem{Name: "broken"}, items[1])
	assert.Equal(t, "empty_url", items[2].Name)
	assert.Equal(t, "", items[2].Spec.URL)
	assert.Equal(t, DefaultBranch, items[2].Spec.Branch)
	assert.Equal(t, ManifestItem{Name: "rclcpp", Spec: &RepoSpec{
		Name:     "rclcpp",
		URL:      "https://github.com/ros2/rclcpp.git",
		Branch:   "rolling",
		Packages: []string{"rclcpp", "rclcpp_action"},
	}}, items[3])
}

func TestParseManifestVersion(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		branch string
	}{
		{"absent", "geometry:\n  url: https://github.com/ros/geometry.git\n", "main"},
		{"null", "geometry:\n  url: https://github.com/ros/geometry.git\n  version: null\n", ""},
		{"tilde", "geometry:\n  url: https://github.com/ros/geometry.git\n  version: ~\n", ""},
		{"empty", "geometry:\n  url: https://github.com/ros/geometry.git\n  version: \"\"\n", ""},
		{"set", "geometry:\n  url: https://github.com/ros/geometry.git\n  version: noetic-devel\n", "noetic-devel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseManifest("test.yaml", []byte(tt.data))
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.branch, items[0].Spec.Branch)
		})
	}
}

func TestParseManifestInvalid(t *testing.T) {
	_, err := parseManifest("bad.yaml", []byte("- just\n- a list\n"))
	var manifestErr *ManifestError
	require.True(t, errors.As(err, &manifestErr))
	assert.Equal(t, "bad.yaml", manifestErr.Path)
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
