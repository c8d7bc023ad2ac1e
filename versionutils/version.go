package versionutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	InvalidVersionFormatError = func(version string) error {
		return errors.Errorf("Version %s is not a valid semver version, must be of the form X.Y.Z", version)
	}
)

// Version is an ordered (major, minor, patch) triple of non-negative
// integers. Bumps derive a new Version, they never mutate the receiver.
type Version struct {
	Major int
	Minor int
	Patch int
}

func NewVersion(major, minor, patch int) *Version {
	return &Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}
}

// String returns the canonical X.Y.Z form, with no "v" prefix.
func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the git tag form, vX.Y.Z.
func (v *Version) Tag() string {
	return "v" + v.String()
}

func (v *Version) Equals(other *Version) bool {
	return *v == *other
}

func (greater *Version) IsGreaterThan(lesser *Version) bool {
	if greater.Major != lesser.Major {
		return greater.Major > lesser.Major
	}
	if greater.Minor != lesser.Minor {
		return greater.Minor > lesser.Minor
	}
	return greater.Patch > lesser.Patch
}

var versionRegex = regexp.MustCompile(`^[0-9]+[.][0-9]+[.][0-9]+$`)

// MatchesRegex reports whether version is of the exact form X.Y.Z with
// numeric components and no leading or trailing garbage.
func MatchesRegex(version string) bool {
	return versionRegex.MatchString(version)
}

// ParseVersion parses a bare X.Y.Z version string. A leading "v" is not
// accepted; use ParseTag for tag forms.
func ParseVersion(version string) (*Version, error) {
	if !MatchesRegex(version) {
		return nil, InvalidVersionFormatError(version)
	}
	versionParts := strings.Split(version, ".")
	major, err := strconv.Atoi(versionParts[0])
	if err != nil {
		return nil, InvalidVersionFormatError(version)
	}
	minor, err := strconv.Atoi(versionParts[1])
	if err != nil {
		return nil, InvalidVersionFormatError(version)
	}
	patch, err := strconv.Atoi(versionParts[2])
	if err != nil {
		return nil, InvalidVersionFormatError(version)
	}
	return &Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}, nil
}

// ParseTag parses a vX.Y.Z git tag into a Version.
func ParseTag(tag string) (*Version, error) {
	if !strings.HasPrefix(tag, "v") {
		return nil, errors.Errorf("Tag %s is not a valid version tag, must be of the form vX.Y.Z", tag)
	}
	return ParseVersion(tag[1:])
}
