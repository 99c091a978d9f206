package main

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// git runs a git command in the specified directory and returns stdout.
// On failure the returned error is a *ProcessError carrying stderr.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	op := args[0]
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ProcessError{
			Operation: op,
			Command:   "git " + strings.Join(args, " "),
			Output:    strings.TrimSpace(stderr.String()),
			Err:       err,
		}
	}
	return stdout.String(), nil
}

// cloneBare clones the repository metadata only: no working tree and no
// file contents, just enough to list tree entries.
func cloneBare(ctx context.Context, url, path string) error {
	_, err := git(ctx, "", "clone", "--bare", "--filter=blob:none", "--quiet", url, path)
	if err != nil {
		var pe *ProcessError
		if errors.As(err, &pe) {
			pe.Operation = "clone " + url
		}
		return err
	}
	return nil
}

// listTree returns every tracked file path at ref. Paths are read NUL
// separated so names are never quoted by git.
func listTree(ctx context.Context, path, ref string) ([]string, error) {
	out, err := git(ctx, path, "ls-tree", "-r", "-z", "--name-only", ref)
	if err != nil {
		var pe *ProcessError
		if errors.As(err, &pe) {
			pe.Operation = "list tree at " + ref
		}
		return nil, err
	}
	return strings.Split(out, "\x00"), nil
}
