package releaseutils

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/bkrabach/releasekit/fileutils"
)

// Prompter is the operator decision capability. The orchestrator never
// reads standard input itself, so the state machine can be driven by a
// scripted decision source in tests.
type Prompter interface {
	// Confirm asks a yes/no question, defaulting to no.
	Confirm(message string) (bool, error)
	// Select asks the operator to pick one of the options and returns
	// the chosen option verbatim.
	Select(message string, options []string) (string, error)
	// Input reads a free-form line.
	Input(message string) (string, error)
	// Acknowledge blocks until the operator confirms they are done with a
	// manual step.
	Acknowledge(message string) error
}

// TestRunner is the build-automation collaborator: a single pass/fail
// check, plus detection of whether an automated check exists at all.
type TestRunner interface {
	HasTestTarget() bool
	RunTests() error
}

// Options configures a release run.
type Options struct {
	// Project is the human-facing project name used in the changelog
	// preamble.
	Project string

	// ManifestPath is the file carrying the authoritative
	// `version = "X.Y.Z"` declaration.
	ManifestPath string

	// TrackedFiles is the fixed set of version-bearing files rewritten on
	// release. It should include the manifest.
	TrackedFiles []fileutils.VersionedFile

	ChangelogPath string

	// Branches are the branch names a release may run from without an
	// explicit operator override.
	Branches []string

	// Owner and Repo locate the GitHub project for release page URLs and
	// optional release creation.
	Owner string
	Repo  string

	// SkipTests bypasses the test gate entirely.
	SkipTests bool

	// AutoConfirm answers yes to every gate, for non-interactive use.
	AutoConfirm bool

	// GithubRelease creates a GitHub release for the tag after a
	// successful push.
	GithubRelease bool

	// Now is the clock used for changelog section dates.
	Now func() time.Time
}

func (o *Options) setDefaults() {
	if o.ChangelogPath == "" {
		o.ChangelogPath = "CHANGELOG.md"
	}
	if len(o.Branches) == 0 {
		o.Branches = []string{"main", "master"}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

var (
	DirtyWorkingTreeError = func(paths []string) error {
		return errors.Errorf("There are uncommitted changes. Please commit or stash them first:\n  %s",
			strings.Join(paths, "\n  "))
	}
	UserAbortedError = func(gate string) error {
		return errors.Errorf("Aborted by operator at %s", gate)
	}
	TestsFailedError = func(err error) error {
		return errors.Wrapf(err, "Tests failed. Please fix them before releasing")
	}
	VcsOperationFailedError = func(err error, step string) error {
		return errors.Wrapf(err, "failed to %s; the release may be partially applied, finish the remaining git steps manually", step)
	}
)
