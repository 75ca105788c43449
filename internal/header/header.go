package header

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/pders01/git-header/internal/models"
)

// Generated header layout. String-bearing struct fields are sized to the
// exact length of the value baked in at generation time plus one
// terminator, so the header must be regenerated whenever the underlying
// facts change.
const headerTemplate = `#pragma once

#include <stddef.h>

#define GIT_BRANCH "{{.Branch}}"
#define GIT_COMMIT "{{.Commit}}"
{{if .Dirty}}#define GIT_DIRTY
{{end}}#define GIT_REPOSITORY "{{.Repository}}"
{{if .Tag}}#define GIT_TAG "{{.Tag}}"
{{end}}
#ifndef VERSION_STRING
#define VERSION_STRING "{{.Version}}"
#endif

typedef struct {
	char branch[{{.BranchSize}}];
	char commit[{{.CommitSize}}];
	struct {
		size_t count;
		/* https://git-scm.com/docs/git-status#_output */
		struct {
			char path[{{.PathSize}}];
			struct {
				char x;
				char y;
			} code;
		} files[{{.FileSlots}}];
	} dirty;
	char repository[{{.RepositorySize}}];
} git_status_t;

static inline git_status_t
git_status(void)
{
	return (git_status_t){
		.branch = GIT_BRANCH,
		.commit = GIT_COMMIT,
		.dirty = {
			.count = {{.FileCount}},
			.files = {
{{range .Files}}				{.path = "{{.Path}}", .code = {.x = '{{.X}}', .y = '{{.Y}}'}},
{{end}}			},
		},
		.repository = GIT_REPOSITORY,
	};
}
`

var tmpl = template.Must(template.New("header").Parse(headerTemplate))

type fileEntry struct {
	Path string
	X    string
	Y    string
}

type headerData struct {
	Branch     string
	Commit     string
	Repository string
	Tag        string
	Version    string
	Dirty      bool

	BranchSize     int
	CommitSize     int
	RepositorySize int
	PathSize       int
	FileSlots      int
	FileCount      int
	Files          []fileEntry
}

// Render produces the header text for a snapshot and its composed
// version string. Pure: same inputs always yield the same bytes.
func Render(s *models.Snapshot, version string) (string, error) {
	maxPath := 0
	for _, e := range s.Dirty {
		if len(e.Path) > maxPath {
			maxPath = len(e.Path)
		}
	}

	files := make([]fileEntry, 0, len(s.Dirty))
	for _, e := range s.Dirty {
		if len(e.Code) != 2 {
			return "", fmt.Errorf("status code %q for %s is not two characters", e.Code, e.Path)
		}
		files = append(files, fileEntry{
			Path: escapeString(e.Path),
			X:    escapeChar(e.Code[0]),
			Y:    escapeChar(e.Code[1]),
		})
	}

	// C rejects zero-length arrays; a clean tree gets one placeholder
	// slot with count 0.
	slots := len(files)
	if slots == 0 {
		slots = 1
		files = append(files, fileEntry{Path: "", X: " ", Y: " "})
	}

	data := headerData{
		Branch:     escapeString(s.Branch),
		Commit:     escapeString(s.Commit),
		Repository: escapeString(s.Repository),
		Tag:        escapeString(s.Tag),
		Version:    escapeString(version),
		Dirty:      s.IsDirty(),

		BranchSize:     len(s.Branch) + 1,
		CommitSize:     len(s.Commit) + 1,
		RepositorySize: len(s.Repository) + 1,
		PathSize:       maxPath + 1,
		FileSlots:      slots,
		FileCount:      len(s.Dirty),
		Files:          files,
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render header: %w", err)
	}
	return b.String(), nil
}

// escapeString makes a value safe inside a C string literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// escapeChar makes a status character safe inside a C char literal.
func escapeChar(c byte) string {
	switch c {
	case '\\':
		return `\\`
	case '\'':
		return `\'`
	}
	return string(c)
}
