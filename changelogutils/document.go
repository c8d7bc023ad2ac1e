package changelogutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// SectionHeaderPrefix starts every version section header line,
	// `## [X.Y.Z] - YYYY-MM-DD`.
	SectionHeaderPrefix = "## ["

	// DateFormat is the layout for section dates.
	DateFormat = "2006-01-02"
)

var (
	SectionExistsError = func(version string) error {
		return errors.Errorf("Version %s already exists in the changelog", version)
	}
	ReadDocumentError = func(err error, path string) error {
		return errors.Wrapf(err, "failed reading changelog %s", path)
	}
	WriteDocumentError = func(err error, path string) error {
		return errors.Wrapf(err, "failed writing changelog %s", path)
	}
)

// Preamble returns the fixed document header for a project without a
// changelog yet.
func Preamble(project string) string {
	return fmt.Sprintf(`# Changelog

All notable changes to %s will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`, project)
}

// NewSection builds the empty section template for a version. The bullets
// are placeholders the operator fills in by hand.
func NewSection(version, date string) string {
	return fmt.Sprintf(`## [%s] - %s

### Added
-

### Changed
-

### Fixed
-

### Removed
-
`, version, date)
}

// SectionHeader returns the verbatim header line prefix used to detect an
// existing section for version.
func SectionHeader(version string) string {
	return SectionHeaderPrefix + version + "]"
}

// HasSection reports whether the document already contains a section for
// version.
func HasSection(document, version string) bool {
	return strings.Contains(document, SectionHeader(version))
}

// EnsureDocument loads the changelog at path, synthesizing the preamble
// when the file does not exist. Existing contents are returned as-is; the
// document is never structurally parsed beyond its section header lines.
func EnsureDocument(fs afero.Fs, path, project string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preamble(project), nil
		}
		return "", ReadDocumentError(err, path)
	}
	return string(data), nil
}

// InsertSection returns the document with a new empty section for version,
// placed immediately before the most recent existing section so
// reverse-chronological order is preserved, or appended after the preamble
// when no sections exist yet. Inserting a version that already has a
// section fails with SectionExistsError.
func InsertSection(document, version, date string) (string, error) {
	if HasSection(document, version) {
		return document, SectionExistsError(version)
	}

	section := NewSection(version, date)

	offset := firstSectionOffset(document)
	if offset < 0 {
		if document != "" && !strings.HasSuffix(document, "\n") {
			document += "\n"
		}
		return document + "\n" + section, nil
	}
	return document[:offset] + section + "\n" + document[offset:], nil
}

// firstSectionOffset returns the byte offset of the first line beginning
// with SectionHeaderPrefix, or -1 when the document has no sections.
func firstSectionOffset(document string) int {
	offset := 0
	for _, line := range strings.SplitAfter(document, "\n") {
		if strings.HasPrefix(line, SectionHeaderPrefix) {
			return offset
		}
		offset += len(line)
	}
	return -1
}

func WriteDocument(fs afero.Fs, path, document string) error {
	if err := afero.WriteFile(fs, path, []byte(document), 0644); err != nil {
		return WriteDocumentError(err, path)
	}
	return nil
}
