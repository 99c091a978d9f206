package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// parseOwnerRepo extracts owner and repository name from the last two path
// segments of a git URL. Both https and scp-like URLs are accepted.
func parseOwnerRepo(url string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == ':'
	})
	if len(fields) < 2 {
		return "", "", &ValidationError{Field: "url", Value: url, Message: "expected .../owner/repo"}
	}
	return fields[len(fields)-2], fields[len(fields)-1], nil
}

// scratchDir creates an empty clone directory for owner/repo at branch.
// Every call gets its own directory, so entries sharing a URL and branch
// never clone into the same place.
func scratchDir(scratch, owner, repo, branch string) (string, error) {
	pattern := fmt.Sprintf("%s-%s-%s-bare-*", owner, repo, strings.ReplaceAll(branch, "/", "_"))
	path, err := os.MkdirTemp(scratch, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create clone directory: %w", err)
	}
	return path, nil
}

// TreeFetcher lists the tracked files of remote repositories.
type TreeFetcher struct {
	Hosting *HostingClient
	Scratch string
}

// Fetch clones url's metadata into the scratch directory and builds the
// tree of files at branch. An empty branch is resolved through the hosting
// API. A failing listing is not an error: the returned result has a nil
// Tree and the git output is logged.
func (f *TreeFetcher) Fetch(ctx context.Context, url, branch string) (TreeResult, error) {
	owner, repo, err := parseOwnerRepo(url)
	if err != nil {
		return TreeResult{}, err
	}
	result := TreeResult{Owner: owner, Repo: repo, Branch: branch}

	if result.Branch == "" {
		result.Branch = f.Hosting.DefaultBranch(ctx, owner, repo)
	}
	log := zerolog.Ctx(ctx).With().Str("branch", result.Branch).Logger()

	path, err := scratchDir(f.Scratch, owner, repo, result.Branch)
	if err != nil {
		return result, err
	}
	log.Debug().Str("path", path).Msg("cloning repository metadata")
	if err := cloneBare(ctx, url, path); err != nil {
		return result, err
	}

	paths, err := listTree(ctx, path, result.Branch)
	if err != nil {
		var pe *ProcessError
		if errors.As(err, &pe) && ctx.Err() == nil {
			log.Error().Str("stderr", pe.Output).Msg("failed to list repository tree")
			return result, nil
		}
		return result, err
	}

	result.Tree = buildTree(paths)
	return result, nil
}
