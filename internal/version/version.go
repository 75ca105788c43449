package version

import "github.com/pders01/git-header/internal/models"

const dateLayout = "20060102"

// Compose derives the canonical version string for a snapshot.
//
// Grammar, in priority order:
//
//	tag                            HEAD is the tagged commit
//	tag-next-<short7>-<YYYYMMDD>   HEAD is ahead of the nearest tag
//	<short7>-<YYYYMMDD>            no tag reachable
//
// with "-dirty" appended whenever the working tree has changes. The date
// comes from the snapshot's commit timestamp, so the same snapshot always
// composes the same string.
func Compose(s *models.Snapshot) string {
	var v string
	switch {
	case s.Tagged() && s.CommitsSinceTag == 0:
		v = normalizeTag(s.Tag)
	case s.Tagged():
		v = normalizeTag(s.Tag) + "-next-" + s.ShortCommit() + "-" + s.CommitTime.Format(dateLayout)
	default:
		v = s.ShortCommit() + "-" + s.CommitTime.Format(dateLayout)
	}
	if s.IsDirty() {
		v += "-dirty"
	}
	return v
}

// normalizeTag strips a leading "v" from version-like tags (v1.0.0 ->
// 1.0.0). Tags are otherwise opaque labels and pass through verbatim,
// malformed or not.
func normalizeTag(tag string) string {
	if len(tag) >= 2 && tag[0] == 'v' && tag[1] >= '0' && tag[1] <= '9' {
		return tag[1:]
	}
	return tag
}
