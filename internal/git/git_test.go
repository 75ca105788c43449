package git

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pders01/git-header/internal/testutil"
)

func TestInspectCleanTagged(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.Tag("v1.0.0")

	client := NewClient("", repo.Path)
	snapshot, err := client.Inspect()
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	if snapshot.Branch != repo.Branch() {
		t.Errorf("expected branch %q, got %q", repo.Branch(), snapshot.Branch)
	}
	if snapshot.Commit != repo.Head() {
		t.Errorf("expected commit %q, got %q", repo.Head(), snapshot.Commit)
	}
	if len(snapshot.Commit) != 40 {
		t.Errorf("commit must be the full 40-character hash, got %d chars", len(snapshot.Commit))
	}
	if snapshot.Tag != "v1.0.0" {
		t.Errorf("expected tag 'v1.0.0', got %q", snapshot.Tag)
	}
	if snapshot.CommitsSinceTag != 0 {
		t.Errorf("expected 0 commits since tag, got %d", snapshot.CommitsSinceTag)
	}
	if snapshot.IsDirty() {
		t.Errorf("expected clean tree, got dirty entries: %v", snapshot.Dirty)
	}
	if snapshot.CommitTime.IsZero() {
		t.Error("commit time not captured")
	}

	wantRoot, _ := filepath.EvalSymlinks(repo.Path)
	gotRoot, _ := filepath.EvalSymlinks(snapshot.Repository)
	if gotRoot != wantRoot {
		t.Errorf("expected repository root %q, got %q", wantRoot, gotRoot)
	}
}

func TestInspectAheadOfTag(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.Tag("v1.0.0")

	for i := 0; i < 3; i++ {
		repo.WriteFile("file.txt", string(rune('a'+i)))
		repo.CommitAll("Another commit")
	}

	client := NewClient("", repo.Path)
	snapshot, err := client.Inspect()
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	if snapshot.Tag != "v1.0.0" {
		t.Errorf("expected tag 'v1.0.0', got %q", snapshot.Tag)
	}
	if snapshot.CommitsSinceTag != 3 {
		t.Errorf("expected 3 commits since tag, got %d", snapshot.CommitsSinceTag)
	}
}

func TestInspectNoTag(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := NewClient("", repo.Path)
	snapshot, err := client.Inspect()
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	if snapshot.Tagged() {
		t.Errorf("expected no tag, got %q", snapshot.Tag)
	}
}

func TestInspectDirtyStatusCodes(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	// Unstaged modification, untracked file, staged addition.
	repo.WriteFile("README.md", "# Changed\n")
	repo.WriteFile("untracked.txt", "new\n")
	repo.WriteFile("staged.txt", "staged\n")
	repo.Git("add", "staged.txt")

	client := NewClient("", repo.Path)
	snapshot, err := client.Inspect()
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	codes := make(map[string]string)
	for _, e := range snapshot.Dirty {
		codes[e.Path] = e.Code
	}

	want := map[string]string{
		"README.md":     " M",
		"untracked.txt": "??",
		"staged.txt":    "A ",
	}
	for path, code := range want {
		if codes[path] != code {
			t.Errorf("expected code %q for %s, got %q", code, path, codes[path])
		}
	}
}

func TestInspectRenamedFile(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.Git("mv", "README.md", "RENAMED.md")

	client := NewClient("", repo.Path)
	snapshot, err := client.Inspect()
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	if len(snapshot.Dirty) != 1 {
		t.Fatalf("expected one dirty entry, got %v", snapshot.Dirty)
	}
	if snapshot.Dirty[0].Code != "R " {
		t.Errorf("expected code 'R ', got %q", snapshot.Dirty[0].Code)
	}
	if snapshot.Dirty[0].Path != "RENAMED.md" {
		t.Errorf("expected renamed path, got %q", snapshot.Dirty[0].Path)
	}
}

func TestInspectDetached(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.Detach()

	client := NewClient("", repo.Path)
	snapshot, err := client.Inspect()
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	// Detached HEAD falls back to the short commit hash.
	if snapshot.Branch != repo.Head()[:7] {
		t.Errorf("expected short commit %q as branch sentinel, got %q", repo.Head()[:7], snapshot.Branch)
	}
}

func TestInspectEmptyRepository(t *testing.T) {
	repo := testutil.NewEmptyGitRepo(t)

	client := NewClient("", repo.Path)
	if _, err := client.Inspect(); !errors.Is(err, ErrEmptyRepository) {
		t.Errorf("expected ErrEmptyRepository, got %v", err)
	}
}

func TestInspectNotARepository(t *testing.T) {
	client := NewClient("", t.TempDir())
	if _, err := client.Inspect(); !errors.Is(err, ErrNotARepository) {
		t.Errorf("expected ErrNotARepository, got %v", err)
	}
}

func TestInspectToolUnavailable(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)

	client := NewClient("definitely-not-a-git-binary", repo.Path)
	if _, err := client.Inspect(); !errors.Is(err, ErrToolUnavailable) {
		t.Errorf("expected ErrToolUnavailable, got %v", err)
	}
}

func TestCommitsSinceCountsFirstParent(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	repo.Tag("v1.0.0")

	// Merge a side branch; first-parent counting sees the merge commit
	// and the mainline commit, not the side branch's commits.
	base := repo.Branch()
	repo.Git("checkout", "-b", "feature")
	repo.WriteFile("feature.txt", "one\n")
	repo.CommitAll("Feature commit one")
	repo.WriteFile("feature.txt", "two\n")
	repo.CommitAll("Feature commit two")
	repo.Git("checkout", base)
	repo.WriteFile("main.txt", "main\n")
	repo.CommitAll("Mainline commit")
	repo.Git("merge", "--no-ff", "-m", "Merge feature", "feature")

	client := NewClient("", repo.Path)
	count, err := client.CommitsSince("v1.0.0")
	if err != nil {
		t.Fatalf("failed to count commits: %v", err)
	}

	if count != 2 {
		t.Errorf("expected 2 first-parent commits since tag, got %d", count)
	}
}
