package main

import (
	"sync"
)

// Report holds the reconciliation counters.
type Report struct {
	Total      int
	Matched    int
	Mismatched int
	Unmatched  int
	// Missing counts declared packages for which no manifest file was found.
	Missing int
}

func (r *Report) add(o Report) {
	r.Total += o.Total
	r.Matched += o.Matched
	r.Mismatched += o.Mismatched
	r.Unmatched += o.Unmatched
	r.Missing += o.Missing
}

// Tally is a Report shared between workers.
type Tally struct {
	mu     sync.Mutex
	report Report
}

// Add merges one worker's counts.
func (t *Tally) Add(r Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.report.add(r)
}

// Snapshot returns a copy of the current counts.
func (t *Tally) Snapshot() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.report
}

// reconcile classifies findings of one repository against its declared
// packages and returns the matched results together with the counts they
// contribute. Findings at the repository root are attributed to repo.
// Findings sharing a folder name collapse into one: the first keeps its
// position, the last one's path wins.
func reconcile(spec RepoSpec, tree TreeResult, findings []Finding) ([]Result, Report) {
	var order []string
	paths := make(map[string]string)
	for _, f := range findings {
		folder := f.Folder
		if folder == "" {
			folder = tree.Repo
		}
		if _, seen := paths[folder]; !seen {
			order = append(order, folder)
		}
		paths[folder] = f.Path
	}

	var results []Result
	report := Report{Total: len(spec.Packages)}
	matched := make(map[string]bool)
	for _, folder := range order {
		if !spec.Declares(folder) {
			report.Mismatched++
			continue
		}
		results = append(results, Result{
			Package: folder,
			URL:     rawURL(tree.Owner, tree.Repo, tree.Branch, paths[folder]),
		})
		matched[folder] = true
		report.Matched++
	}

	declared := make(map[string]bool)
	for _, p := range spec.Packages {
		if !declared[p] && !matched[p] {
			report.Missing++
		}
		declared[p] = true
	}
	return results, report
}
