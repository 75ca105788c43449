package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TempGitRepo is a throwaway git repository for tests. The directory is
// removed automatically when the test finishes.
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a repository with one initial commit.
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	r := NewEmptyGitRepo(t)

	r.WriteFile("README.md", "# Test Repository\n")
	r.CommitAll("Initial commit")

	return r
}

// NewEmptyGitRepo creates an initialized repository with no commits.
func NewEmptyGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	r := &TempGitRepo{Path: t.TempDir(), T: t}

	r.Git("init")
	r.Git("config", "user.name", "Test User")
	r.Git("config", "user.email", "test@example.com")
	// Keep commit/tag creation independent of the host's git config.
	r.Git("config", "commit.gpgsign", "false")
	r.Git("config", "tag.gpgsign", "false")

	return r
}

// Git runs a git command in the repository and returns its trimmed
// output, failing the test on error.
func (r *TempGitRepo) Git(args ...string) string {
	r.T.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.T.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

// WriteFile creates or overwrites a file in the repository.
func (r *TempGitRepo) WriteFile(name, content string) {
	r.T.Helper()

	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to write file: %v", err)
	}
}

// CommitAll stages everything and commits.
func (r *TempGitRepo) CommitAll(message string) {
	r.T.Helper()

	r.Git("add", ".")
	r.Git("commit", "-m", message)
}

// Tag creates a lightweight tag at HEAD.
func (r *TempGitRepo) Tag(name string) {
	r.T.Helper()

	r.Git("tag", name)
}

// Detach checks out the current commit without a branch.
func (r *TempGitRepo) Detach() {
	r.T.Helper()

	r.Git("checkout", "--detach")
}

// Head returns the full hash of the current commit.
func (r *TempGitRepo) Head() string {
	r.T.Helper()

	return r.Git("rev-parse", "HEAD")
}

// Branch returns the current branch name.
func (r *TempGitRepo) Branch() string {
	r.T.Helper()

	return r.Git("rev-parse", "--abbrev-ref", "HEAD")
}
