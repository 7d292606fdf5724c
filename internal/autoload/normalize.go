package autoload

import (
	"regexp"
	"strings"
)

// versionSuffixRE matches one trailing backup marker: either a single
// backup tilde ("name~") or a versioned backup suffix ("name.~3~").
var versionSuffixRE = regexp.MustCompile(`(\.~[^~/]*~|~)$`)

// StripVersions removes backup and version suffixes from a file path.
// Both the plain-backup form ("foo.txt~") and the numbered form
// ("foo.txt.~3~") are removed, repeatedly, so stacked suffixes such as
// "foo.txt.~3~~" also reduce to "foo.txt".
func StripVersions(path string) string {
	for {
		loc := versionSuffixRE.FindStringIndex(path)
		if loc == nil {
			return path
		}
		path = path[:loc[0]]
	}
}

// Normalize prepares a path for rule matching: backup/version suffixes
// are stripped first, then remoteMarker is removed when it is a strict
// prefix of the result. A marker occurring anywhere else in the path is
// left alone.
func Normalize(path, remoteMarker string) string {
	path = StripVersions(path)
	if remoteMarker != "" {
		if rest, ok := strings.CutPrefix(path, remoteMarker); ok {
			return rest
		}
	}
	return path
}
