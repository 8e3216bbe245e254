// Package gitio supplies the two pieces of repository context the engine
// needs: the repository root (where target files and the canonical source
// live) and the origin organization name. Both are opaque strings to the
// core; outside a repository the working directory stands in for the root.
package gitio

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotInRepo is returned when the path is not inside a git repository.
var ErrNotInRepo = errors.New("not in a git repository")

// RepoRoot returns the repository root containing path.
func RepoRoot(path string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = path

	output, err := cmd.Output()
	if err != nil {
		return "", ErrNotInRepo
	}
	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", ErrNotInRepo
	}
	return root, nil
}

// Organization returns the owner segment of the origin remote URL, or an
// error if no origin is configured or its URL is not recognizable.
func Organization(path string) (string, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	cmd.Dir = path

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("no origin remote: %w", err)
	}

	org, ok := ownerFromURL(strings.TrimSpace(string(output)))
	if !ok {
		return "", fmt.Errorf("cannot extract organization from remote URL %q", strings.TrimSpace(string(output)))
	}
	return org, nil
}

// ownerFromURL extracts the owner from common remote URL shapes:
// https://host/owner/repo(.git) and git@host:owner/repo(.git).
func ownerFromURL(url string) (string, bool) {
	url = strings.TrimSuffix(url, ".git")

	if i := strings.Index(url, "://"); i >= 0 {
		parts := strings.Split(url[i+3:], "/")
		if len(parts) >= 3 && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}

	if i := strings.IndexByte(url, ':'); i >= 0 {
		parts := strings.Split(url[i+1:], "/")
		if len(parts) >= 2 && parts[0] != "" {
			return parts[0], true
		}
	}
	return "", false
}
