package versionutils

import (
	"github.com/pkg/errors"
)

type BumpType int

const (
	BumpMajor BumpType = iota
	BumpMinor
	BumpPatch
	BumpExplicit
)

func (t BumpType) String() string {
	switch t {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	case BumpExplicit:
		return "explicit"
	}
	return "unknown"
}

// BumpDirective selects how the next version is derived from the current
// one. Explicit carries a candidate version string that must itself satisfy
// the X.Y.Z grammar.
type BumpDirective struct {
	Type     BumpType
	Explicit string
}

var (
	UnknownBumpTypeError = func(t BumpType) error {
		return errors.Errorf("Unknown bump type %d", t)
	}
)

// ParseBumpDirective interprets a CLI argument as a bump directive. The
// argument is one of "major", "minor", "patch", or an explicit version.
func ParseBumpDirective(arg string) (BumpDirective, error) {
	switch arg {
	case "major":
		return BumpDirective{Type: BumpMajor}, nil
	case "minor":
		return BumpDirective{Type: BumpMinor}, nil
	case "patch":
		return BumpDirective{Type: BumpPatch}, nil
	}
	if _, err := ParseVersion(arg); err != nil {
		return BumpDirective{}, err
	}
	return BumpDirective{Type: BumpExplicit, Explicit: arg}, nil
}

// Bump derives the next version from v according to the directive. An
// explicit directive is returned verbatim after validation; no ordering
// check against v is performed.
func (v *Version) Bump(directive BumpDirective) (*Version, error) {
	switch directive.Type {
	case BumpMajor:
		return NewVersion(v.Major+1, 0, 0), nil
	case BumpMinor:
		return NewVersion(v.Major, v.Minor+1, 0), nil
	case BumpPatch:
		return NewVersion(v.Major, v.Minor, v.Patch+1), nil
	case BumpExplicit:
		return ParseVersion(directive.Explicit)
	}
	return nil, UnknownBumpTypeError(directive.Type)
}
