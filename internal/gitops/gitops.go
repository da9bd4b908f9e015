// Package gitops shells out to git to version the books repository. Every
// posting command commits its changes when auto-commit is enabled, so the
// CSV history doubles as an audit trail.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a books repository under git control.
type Repo struct {
	dir         string
	authorName  string
	authorEmail string
}

// NewRepo binds a Repo to a books directory and commit author.
func NewRepo(dir, authorName, authorEmail string) *Repo {
	return &Repo{dir: dir, authorName: authorName, authorEmail: authorEmail}
}

// Init initializes a new git repository at the books directory.
func (r *Repo) Init() error {
	cmd := exec.Command("git", "init")
	cmd.Dir = r.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// CommitAll stages all files and creates a commit. Returns the short commit
// hash.
func (r *Repo) CommitAll(message string) (string, error) {
	author := fmt.Sprintf("%s <%s>", r.authorName, r.authorEmail)

	add := exec.Command("git", "add", "-A")
	add.Dir = r.dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	commit := exec.Command("git", "commit", "-m", message, "--author", author)
	commit.Dir = r.dir
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = r.dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether the books directory is inside a git repository.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.dir, ".git"))
	return err == nil
}

// ReceiptMessage formats the commit message for a posted receipt.
func ReceiptMessage(receiptNo int, description string) string {
	msg := fmt.Sprintf("Post receipt #%d", receiptNo)
	if description != "" {
		msg += ": " + description
	}
	return msg
}
