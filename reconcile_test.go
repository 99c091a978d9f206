package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var geometry = TreeResult{Owner: "ros", Repo: "geometry", Branch: "noetic-devel"}

func TestReconcileFindingsMatchedAndMismatched(t *testing.T) {
	spec := RepoSpec{Name: "pkgA", URL: "https://github.com/ros/geometry.git", Packages: []string{"foo"}}
	findings := []Finding{
		{Folder: "foo", Path: "foo/package.xml"},
		{Folder: "bar", Path: "bar/package.xml"},
	}

	results, report := reconcile(spec, geometry, findings)

	assert.Equal(t, []Result{
		{Package: "foo", URL: "https://raw.githubusercontent.com/ros/geometry/noetic-devel/foo/package.xml"},
	}, results)
	assert.Equal(t, Report{Total: 1, Matched: 1, Mismatched: 1}, report)
}

func TestReconcileFindingsRootAttributedToRepo(t *testing.T) {
	spec := RepoSpec{Name: "geom", Packages: []string{"geometry"}}
	findings := []Finding{{Folder: "", Path: "package.xml"}}

	results, report := reconcile(spec, geometry, findings)

	assert.Equal(t, []Result{
		{Package: "geometry", URL: "https://raw.githubusercontent.com/ros/geometry/noetic-devel/package.xml"},
	}, results)
	assert.Equal(t, Report{Total: 1, Matched: 1}, report)
}

func TestReconcileFindingsEmpty(t *testing.T) {
	spec := RepoSpec{Name: "geom", Packages: []string{"tf", "tf2", "tf"}}

	results, report := reconcile(spec, geometry, nil)

	assert.Empty(t, results)
	assert.Equal(t, Report{Total: 3, Missing: 2}, report)
}

func TestReconcileFindingsDuplicateFolders(t *testing.T) {
	spec := RepoSpec{Name: "geom", Packages: []string{"tf", "other"}}
	findings := []Finding{
		{Folder: "tf", Path: "a/tf/package.xml"},
		{Folder: "x", Path: "x/package.xml"},
		{Folder: "tf", Path: "b/tf/package.xml"},
	}

	results, report := reconcile(spec, geometry, findings)

	assert.Equal(t, []Result{
		{Package: "tf", URL: "https://raw.githubusercontent.com/ros/geometry/noetic-devel/b/tf/package.xml"},
	}, results)
	assert.Equal(t, Report{Total: 2, Matched: 1, Mismatched: 1, Missing: 1}, report)
	assert.LessOrEqual(t, report.Matched+report.Mismatched, len(findings))
}

func TestRawURL(t *testing.T) {
	assert.Equal(t,
		"https://raw.githubusercontent.com/ros/ros_comm/noetic-devel/clients/rospy/package.xml",
		rawURL("ros", "ros_comm", "noetic-devel", "clients/rospy/package.xml"),
	)
	assert.Equal(t,
		rawURL("ros", "ros_comm", "noetic-devel", "clients/rospy/package.xml"),
		rawURL("ros", "ros_comm", "noetic-devel", "clients/rospy/package.xml"),
	)
}

func TestTallyConcurrentAdd(t *testing.T) {
	var tally Tally
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tally.Add(Report{Total: 2, Matched: 1, Mismatched: 1, Unmatched: 1, Missing: 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, Report{Total: 200, Matched: 100, Mismatched: 100, Unmatched: 100, Missing: 100}, tally.Snapshot())
}
