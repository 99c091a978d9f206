package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// reconcileAll processes every manifest entry on a bounded pool of workers
// and returns the final counts together with the entries that failed.
// Matched results are appended to cfg.Output as each entry finishes.
func reconcileAll(ctx context.Context, cfg Config, hosting *HostingClient) (Summary, error) {
	log := zerolog.Ctx(ctx)

	if cfg.MaxThreads < 1 {
		return Summary{}, &ValidationError{Field: "max-threads", Value: cfg.MaxThreads, Message: "must be at least 1"}
	}

	out, err := newResultWriter(cfg.Output)
	if err != nil {
		return Summary{}, err
	}

	items, err := loadManifest(cfg.Manifest)
	if err != nil {
		return Summary{}, err
	}
	log.Info().Int("repositories", len(items)).Str("manifest", cfg.Manifest).Msg("loaded manifest")

	scratch, err := os.MkdirTemp("", "pkgrecon-")
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	// Runs only after the pool below has drained.
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Warn().Err(err).Str("path", scratch).Msg("failed to remove scratch directory")
		}
	}()

	fetcher := &TreeFetcher{Hosting: hosting, Scratch: scratch}
	var tally Tally

	p := pool.NewWithResults[Outcome]().WithMaxGoroutines(cfg.MaxThreads)
	for _, item := range items {
		p.Go(func() Outcome {
			var o Outcome
			var pc panics.Catcher
			pc.Try(func() {
				o = processRepo(ctx, cfg, fetcher, out, &tally, item)
			})
			if r := pc.Recovered(); r != nil {
				o = Outcome{Name: item.Name, Err: r.AsError()}
			}
			if o.Err != nil {
				log.Error().Err(o.Err).Str("repo", o.Name).Msg("repository failed")
			}
			return o
		})
	}
	outcomes := p.Wait()

	summary := Summary{Report: tally.Snapshot()}
	for _, o := range outcomes {
		if o.Err != nil {
			summary.Failures = append(summary.Failures, o)
		}
	}
	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].Name < summary.Failures[j].Name
	})
	return summary, nil
}

// processRepo runs fetch, search, reconcile and persist for one entry.
func processRepo(ctx context.Context, cfg Config, fetcher *TreeFetcher, out *resultWriter, tally *Tally, item ManifestItem) Outcome {
	o := Outcome{Name: item.Name}
	if item.Spec == nil {
		o.Err = &ValidationError{Field: "record", Value: item.Name, Message: "manifest entry is empty"}
		return o
	}
	spec := *item.Spec

	log := zerolog.Ctx(ctx).With().Str("repo", spec.Name).Str("url", spec.URL).Logger()
	ctx = log.WithContext(ctx)

	if spec.URL == "" {
		log.Warn().Msg("no repository url")
		tally.Add(Report{Total: len(spec.Packages), Unmatched: 1})
		return o
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	tree, err := fetcher.Fetch(ctx, spec.URL, spec.Branch)
	if err != nil {
		tally.Add(Report{Total: len(spec.Packages)})
		o.Err = err
		return o
	}

	var findings []Finding
	if tree.Tree == nil {
		log.Error().Msg("failed to fetch the repository structure")
	} else {
		findings = findAll(tree.Tree, cfg.Filename)
	}

	results, report := reconcile(spec, tree, findings)
	tally.Add(report)
	log.Info().
		Str("branch", tree.Branch).
		Int("findings", len(findings)).
		Int("matched", report.Matched).
		Int("mismatched", report.Mismatched).
		Msg("reconciled repository")

	if err := out.Append(results); err != nil {
		o.Err = err
		return o
	}
	o.Results = results
	return o
}

// printReport writes the final report.
func printReport(w io.Writer, s Summary) {
	r := s.Report
	fmt.Fprintf(w, "\nReconciliation Report:\n")
	fmt.Fprintf(w, "Total Packages Declared: %d\n", r.Total)
	fmt.Fprintf(w, "Matched Packages: %d\n", r.Matched)
	fmt.Fprintf(w, "Mismatched Packages: %d\n", r.Mismatched)
	fmt.Fprintf(w, "Unmatched Repositories: %d\n", r.Unmatched)
	fmt.Fprintf(w, "Missing Packages: %d\n", r.Missing)

	if len(s.Failures) > 0 {
		fmt.Fprintf(w, "Failed Repositories: %d\n", len(s.Failures))
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  - %s: %v\n", f.Name, f.Err)
		}
	}
}
