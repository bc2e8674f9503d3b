// Package projectdir resolves the project directory for a command.
package projectdir

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Resolve returns the project directory to operate on. An explicit
// value wins; otherwise the enclosing git repository's worktree root
// is used, falling back to the starting directory when none exists.
func Resolve(explicit, startDir string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve project dir: %w", err)
		}
		return abs, nil
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve project dir: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not a repository; the directory itself scopes the project.
		return abs, nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}
