// Package gitops records generated reports in the workspace's git history.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits generated reports.
type Author struct {
	Name  string
	Email string
}

func (a Author) env() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME="+a.Name,
		"GIT_AUTHOR_EMAIL="+a.Email,
		"GIT_COMMITTER_NAME="+a.Name,
		"GIT_COMMITTER_EMAIL="+a.Email,
	)
}

func git(dir string, env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	_, err := git(dir, nil, "init", "--quiet")
	return err
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Commit stages paths (relative to dir, or everything when none are given)
// and commits them. Returns the short commit hash.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	env := author.env()

	add := append([]string{"add", "--"}, paths...)
	if len(paths) == 0 {
		add = []string{"add", "-A"}
	}
	if _, err := git(dir, env, add...); err != nil {
		return "", err
	}

	if _, err := git(dir, env, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}

	return git(dir, env, "rev-parse", "--short", "HEAD")
}
