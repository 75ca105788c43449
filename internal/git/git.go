package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pders01/git-header/internal/models"
)

// Inspection failures. Each failed query aborts the whole inspection;
// callers get the failing step wrapped around one of these sentinels.
var (
	ErrNotARepository  = errors.New("not a git repository")
	ErrToolUnavailable = errors.New("git executable not found")
	ErrEmptyRepository = errors.New("repository has no commits")
	ErrMalformedOutput = errors.New("unexpected git output")
)

const fullHashLength = 40

// Client runs read-only queries against a single repository. It never
// mutates the working tree.
type Client struct {
	git  string
	repo string
}

// NewClient creates a client for the repository at repoPath using the
// given git executable. Empty arguments fall back to "git" and the
// current directory.
func NewClient(gitPath, repoPath string) *Client {
	if gitPath == "" {
		gitPath = "git"
	}
	if repoPath == "" {
		repoPath = "."
	}
	return &Client{git: gitPath, repo: repoPath}
}

// Inspect queries the working tree and assembles a snapshot. Any failing
// query short-circuits; no partial snapshot is produced.
func (c *Client) Inspect() (*models.Snapshot, error) {
	if out, err := c.run("rev-parse", "--is-inside-work-tree"); err != nil || out != "true" {
		if errors.Is(err, ErrToolUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, c.repo)
	}

	commit, err := c.Commit()
	if err != nil {
		return nil, err
	}

	branch, err := c.Branch()
	if err != nil {
		return nil, err
	}
	// Detached HEAD has no branch name; fall back to the short hash.
	if branch == "HEAD" {
		branch = commit[:7]
	}

	root, err := c.Root()
	if err != nil {
		return nil, err
	}

	commitTime, err := c.CommitTime()
	if err != nil {
		return nil, err
	}

	tag, err := c.NearestTag()
	if err != nil {
		return nil, err
	}

	var commitsSinceTag int
	if tag != "" {
		commitsSinceTag, err = c.CommitsSince(tag)
		if err != nil {
			return nil, err
		}
	}

	dirty, err := c.Status()
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Branch:          branch,
		Commit:          commit,
		Repository:      root,
		Tag:             tag,
		CommitsSinceTag: commitsSinceTag,
		CommitTime:      commitTime,
		Dirty:           dirty,
	}, nil
}

// Branch returns the short name of the current branch, or "HEAD" when
// the working tree is detached.
func (c *Client) Branch() (string, error) {
	out, err := c.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return out, nil
}

// Commit returns the full commit hash of HEAD. A repository with no
// commits yields ErrEmptyRepository.
func (c *Client) Commit() (string, error) {
	out, err := c.run("rev-parse", "HEAD")
	if err != nil {
		if isExitError(err) {
			return "", fmt.Errorf("%w: %s", ErrEmptyRepository, c.repo)
		}
		return "", fmt.Errorf("failed to get current commit: %w", err)
	}
	if len(out) != fullHashLength || !isHex(out) {
		return "", fmt.Errorf("%w: commit hash %q", ErrMalformedOutput, out)
	}
	return out, nil
}

// Root returns the absolute path to the repository's top-level directory.
func (c *Client) Root() (string, error) {
	out, err := c.run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to get repository root: %w", err)
	}
	return out, nil
}

// CommitTime returns the committer date of HEAD. The derived version
// string depends on this, not on wall-clock time, so regeneration for a
// fixed commit is reproducible.
func (c *Client) CommitTime() (time.Time, error) {
	out, err := c.run("log", "-1", "--format=%cd", "--date=iso-strict")
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get commit time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, out)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: commit time %q", ErrMalformedOutput, out)
	}
	return t, nil
}

// NearestTag returns the closest ancestor tag reachable from HEAD,
// walking first-parent history only so merge topologies resolve the
// same way every run. Returns "" when no tag is reachable.
func (c *Client) NearestTag() (string, error) {
	out, err := c.run("describe", "--abbrev=0", "--tags", "--first-parent", "HEAD")
	if err != nil {
		// describe exits non-zero when no tag is reachable; that is
		// a valid untagged state, not a failure.
		if isExitError(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find nearest tag: %w", err)
	}
	return out, nil
}

// CommitsSince counts commits strictly between the given tag and HEAD
// along first-parent history.
func (c *Client) CommitsSince(tag string) (int, error) {
	out, err := c.run("rev-list", "--count", "--first-parent", tag+"..HEAD")
	if err != nil {
		return 0, fmt.Errorf("failed to count commits since %s: %w", tag, err)
	}
	n, err := strconv.Atoi(out)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: commit count %q", ErrMalformedOutput, out)
	}
	return n, nil
}

// Status returns the staged and unstaged changes in the working tree.
// Each entry keeps the two porcelain status characters verbatim.
func (c *Client) Status() ([]models.StatusEntry, error) {
	cmd := exec.Command(c.git, "-C", c.repo, "status", "--porcelain", "-z")
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrToolUnavailable, c.git)
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	fields := strings.Split(string(out), "\x00")
	var entries []models.StatusEntry
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if f == "" {
			continue
		}
		if len(f) < 4 || f[2] != ' ' {
			return nil, fmt.Errorf("%w: status entry %q", ErrMalformedOutput, f)
		}
		code := f[:2]
		entries = append(entries, models.StatusEntry{Path: f[3:], Code: code})
		// Renames and copies carry the origin path as an extra
		// NUL-separated field.
		if code[0] == 'R' || code[0] == 'C' || code[1] == 'R' || code[1] == 'C' {
			i++
		}
	}
	return entries, nil
}

// run executes one git query and returns its trimmed stdout.
func (c *Client) run(args ...string) (string, error) {
	cmd := exec.Command(c.git, append([]string{"-C", c.repo}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrToolUnavailable, c.git)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
