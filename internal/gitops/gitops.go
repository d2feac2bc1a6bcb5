// Package gitops versions a scotia workspace with the git command line.
package gitops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoGit is returned when the git executable cannot be found.
var ErrNoGit = errors.New("git not found in PATH")

// Author identifies who commits workspace changes.
type Author struct {
	Name  string
	Email string
}

// DefaultAuthor signs commits made by scotia itself.
var DefaultAuthor = Author{Name: "scotia", Email: "scotia@localhost"}

// Repo is a working tree rooted at Dir.
type Repo struct {
	Dir    string
	Author Author
}

// Available reports whether git can be run.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init creates a repository at dir, or reopens an existing one.
func Init(ctx context.Context, dir string, author Author) (*Repo, error) {
	if !Available() {
		return nil, ErrNoGit
	}
	r := &Repo{Dir: dir, Author: author}
	if _, err := r.git(ctx, "init", "--quiet"); err != nil {
		return nil, err
	}
	return r, nil
}

// CommitAll stages every change and commits it. Returns the short commit hash.
func (r *Repo) CommitAll(ctx context.Context, message string) (string, error) {
	if _, err := r.git(ctx, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := r.git(ctx, "commit", "--quiet", "--no-verify", "-m", message); err != nil {
		return "", err
	}
	out, err := r.git(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+r.Author.Name,
		"GIT_AUTHOR_EMAIL="+r.Author.Email,
		"GIT_COMMITTER_NAME="+r.Author.Name,
		"GIT_COMMITTER_EMAIL="+r.Author.Email,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// IsRepo reports whether dir is the root of a git working tree.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
