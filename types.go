package main

// RepoSpec is one repository entry of the distribution manifest
type RepoSpec struct {
	Name     string
	URL      string
	Branch   string
	Packages []string
}

// Declares reports whether pkg is one of the declared packages
func (s RepoSpec) Declares(pkg string) bool {
	for _, p := range s.Packages {
		if p == pkg {
			return true
		}
	}
	return false
}

// Finding is one located manifest file and the folder that contains it
type Finding struct {
	Folder string
	Path   string
}

// Result is a matched package and the raw URL of its manifest file
type Result struct {
	Package string
	URL     string
}

// TreeResult is what the tree fetcher returns for one repository.
// A nil Tree means the listing failed and is treated as zero findings.
type TreeResult struct {
	Owner  string
	Repo   string
	Branch string
	Tree   *PathNode
}

// Outcome is the result of processing a single manifest entry
type Outcome struct {
	Name    string
	Results []Result
	Err     error
}

// Summary is everything a reconciliation run reports back
type Summary struct {
	Report   Report
	Failures []Outcome
}
