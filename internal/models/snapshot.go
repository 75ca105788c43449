package models

import "time"

// StatusEntry describes one changed path in the working tree. Code is the
// verbatim two-character porcelain pair: index state first, worktree state
// second (https://git-scm.com/docs/git-status#_output).
type StatusEntry struct {
	Path string `json:"path"`
	Code string `json:"code"`
}

// Snapshot captures the state of a repository at one inspection. It is
// built once by the inspector and read-only afterwards.
type Snapshot struct {
	Branch          string        `json:"branch"`
	Commit          string        `json:"commit"`
	Repository      string        `json:"repository"`
	Tag             string        `json:"tag,omitempty"`
	CommitsSinceTag int           `json:"commits_since_tag"`
	CommitTime      time.Time     `json:"commit_time"`
	Dirty           []StatusEntry `json:"dirty,omitempty"`
}

// Tagged reports whether a tag is reachable from the current commit.
// When false, CommitsSinceTag carries no meaning.
func (s *Snapshot) Tagged() bool {
	return s.Tag != ""
}

// IsDirty reports whether the working tree has staged or unstaged changes.
func (s *Snapshot) IsDirty() bool {
	return len(s.Dirty) > 0
}

// ShortCommit returns the conventional 7-character commit prefix.
func (s *Snapshot) ShortCommit() string {
	if len(s.Commit) < 7 {
		return s.Commit
	}
	return s.Commit[:7]
}
