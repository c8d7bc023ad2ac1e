package fileutils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// VersionPlaceholder is the token in an anchor pattern that stands for a
// version string.
const VersionPlaceholder = "{version}"

var (
	ReadVersionedFileError = func(err error, path string) error {
		return errors.Wrapf(err, "failed reading %s", path)
	}
	WriteVersionedFileError = func(err error, path string) error {
		return errors.Wrapf(err, "failed writing %s", path)
	}
	InvalidAnchorPatternError = func(err error, pattern string) error {
		return errors.Wrapf(err, "invalid anchor pattern %q", pattern)
	}
)

// Result reports whether an Apply call rewrote the file.
type Result int

const (
	Unchanged Result = iota
	Changed
)

func (r Result) String() string {
	if r == Changed {
		return "changed"
	}
	return "unchanged"
}

// VersionedFile identifies where a version string is expected to appear in
// a tracked artifact. AnchorPattern is a regex template containing
// VersionPlaceholder; an empty AnchorPattern selects a literal substring
// replacement over the whole file.
type VersionedFile struct {
	Path          string
	AnchorPattern string
}

// Apply substitutes oldVersion for newVersion in the file.
//
// With an anchor pattern, the pattern instantiated with the escaped old
// version is matched in multiline mode, and within each match only the
// version substring is rewritten. Without one, every occurrence of
// oldVersion is replaced.
//
// When the result is byte-identical to the original the file is left
// untouched and Unchanged is returned; callers surface that as a warning,
// not an error.
func (f VersionedFile) Apply(fs afero.Fs, oldVersion, newVersion string) (Result, error) {
	content, err := ReadFileString(fs, f.Path)
	if err != nil {
		return Unchanged, ReadVersionedFileError(err, f.Path)
	}

	var updated string
	if f.AnchorPattern != "" {
		anchored := strings.ReplaceAll(f.AnchorPattern, VersionPlaceholder, regexp.QuoteMeta(oldVersion))
		anchorRegex, err := regexp.Compile("(?m)" + anchored)
		if err != nil {
			return Unchanged, InvalidAnchorPatternError(err, f.AnchorPattern)
		}
		updated = anchorRegex.ReplaceAllStringFunc(content, func(match string) string {
			return strings.Replace(match, oldVersion, newVersion, 1)
		})
	} else {
		updated = strings.ReplaceAll(content, oldVersion, newVersion)
	}

	if updated == content {
		return Unchanged, nil
	}

	info, err := fs.Stat(f.Path)
	if err != nil {
		return Unchanged, ReadVersionedFileError(err, f.Path)
	}
	if err := afero.WriteFile(fs, f.Path, []byte(updated), info.Mode()); err != nil {
		return Unchanged, WriteVersionedFileError(err, f.Path)
	}
	return Changed, nil
}
