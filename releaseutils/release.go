package releaseutils

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/bkrabach/releasekit/changelogutils"
	"github.com/bkrabach/releasekit/cliutils"
	"github.com/bkrabach/releasekit/contextutils"
	"github.com/bkrabach/releasekit/fileutils"
	"github.com/bkrabach/releasekit/githubutils"
	"github.com/bkrabach/releasekit/gitutils"
	"github.com/bkrabach/releasekit/versionutils"
)

// Release drives the whole flow: precondition gates, version resolution,
// file and changelog updates, operator confirmation, then the git command
// sequence. Every gate is fail-fast; the only compensating action is the
// tracked-file rollback when the operator declines the final confirmation.
type Release struct {
	opts     Options
	fs       afero.Fs
	git      gitutils.Client
	prompter Prompter
	tests    TestRunner
}

func NewRelease(opts Options, fs afero.Fs, git gitutils.Client, prompter Prompter, tests TestRunner) *Release {
	opts.setDefaults()
	return &Release{
		opts:     opts,
		fs:       fs,
		git:      git,
		prompter: prompter,
		tests:    tests,
	}
}

// Run executes the release. A nil return means either a completed release
// or an operator cancellation at the confirmation gate; cancellation is not
// an error.
func (r *Release) Run(ctx context.Context) error {
	printHeader("Pre-flight Checks")
	if err := r.checkCleanTree(ctx); err != nil {
		return err
	}
	if err := r.checkBranch(); err != nil {
		return err
	}
	if err := r.runTestGate(); err != nil {
		return err
	}

	printHeader("Version Management")
	currentVersion, err := versionutils.CurrentVersion(r.fs, r.opts.ManifestPath)
	if err != nil {
		return err
	}
	newVersion, err := r.resolveNewVersion(currentVersion)
	if err != nil {
		return err
	}
	contextutils.LoggerFrom(ctx).Debugw("resolved release version",
		"current", currentVersion.String(), "new", newVersion.String())

	r.updateTrackedFiles(currentVersion, newVersion)

	if err := r.updateChangelog(newVersion); err != nil {
		return err
	}

	confirmed, err := r.confirmRelease(currentVersion, newVersion)
	if err != nil {
		return err
	}
	if !confirmed {
		logrus.Warn("Release cancelled")
		r.rollbackTrackedFiles()
		return nil
	}

	if err := r.performGitOperations(newVersion); err != nil {
		return err
	}

	r.printFollowUp(ctx, newVersion)
	return nil
}

func (r *Release) checkCleanTree(ctx context.Context) error {
	status, err := r.git.Status()
	if err != nil {
		return err
	}
	contextutils.LoggerFrom(ctx).Debugw("git status", "porcelain", status)
	if strings.TrimSpace(status) != "" {
		return DirtyWorkingTreeError(strings.Split(strings.TrimSpace(status), "\n"))
	}
	logrus.Info("Git working directory is clean")
	return nil
}

func (r *Release) checkBranch() error {
	branch, err := r.git.CurrentBranch()
	if err != nil {
		return err
	}
	if !cliutils.Contains(r.opts.Branches, branch) {
		logrus.Warnf("You are on branch %q, not %s", branch, strings.Join(r.opts.Branches, " or "))
		ok, err := r.confirm("Continue anyway?")
		if err != nil {
			return err
		}
		if !ok {
			return UserAbortedError("branch check")
		}
	}
	logrus.Info("On appropriate branch")
	return nil
}

func (r *Release) runTestGate() error {
	if r.opts.SkipTests {
		logrus.Warn("Skipping test suite")
		return nil
	}
	if r.tests.HasTestTarget() {
		logrus.Info("Running tests...")
		if err := r.tests.RunTests(); err != nil {
			return TestsFailedError(err)
		}
	} else {
		logrus.Warnf("No %s found, skipping automated tests", MakefileSentinel)
		ok, err := r.confirm("Have you manually verified that tests pass?")
		if err != nil {
			return err
		}
		if !ok {
			return UserAbortedError("test attestation")
		}
	}
	logrus.Info("Tests passed")
	return nil
}

func (r *Release) resolveNewVersion(current *versionutils.Version) (*versionutils.Version, error) {
	logrus.Infof("Current version: %s", current)

	const customOption = "Custom version"
	options := []string{
		fmt.Sprintf("Major (%d.0.0) - Breaking changes", current.Major+1),
		fmt.Sprintf("Minor (%d.%d.0) - New features", current.Major, current.Minor+1),
		fmt.Sprintf("Patch (%d.%d.%d) - Bug fixes", current.Major, current.Minor, current.Patch+1),
		customOption,
	}
	directives := []versionutils.BumpDirective{
		{Type: versionutils.BumpMajor},
		{Type: versionutils.BumpMinor},
		{Type: versionutils.BumpPatch},
	}

	choice, err := r.prompter.Select("Select version bump type:", options)
	if err != nil {
		return nil, err
	}

	if choice != customOption {
		for i, option := range options {
			if choice == option {
				return current.Bump(directives[i])
			}
		}
		return nil, UserAbortedError("version selection")
	}

	// Custom version entry re-prompts until the input parses.
	for {
		custom, err := r.prompter.Input("Enter custom version (e.g., 1.2.3):")
		if err != nil {
			return nil, err
		}
		newVersion, err := current.Bump(versionutils.BumpDirective{
			Type:     versionutils.BumpExplicit,
			Explicit: strings.TrimSpace(custom),
		})
		if err != nil {
			logrus.Error(err.Error())
			continue
		}
		if !newVersion.IsGreaterThan(current) {
			// Accepted anyway, matching the directive semantics.
			logrus.Warnf("Version %s is not greater than the current version %s", newVersion, current)
		}
		return newVersion, nil
	}
}

func (r *Release) updateTrackedFiles(oldVersion, newVersion *versionutils.Version) {
	logrus.Infof("Bumping version from %s to %s", oldVersion, newVersion)

	// Failures here are warnings only; a file the anchor does not match is
	// reported and skipped, never fatal.
	var skipped *multierror.Error
	for _, tracked := range r.opts.TrackedFiles {
		result, err := tracked.Apply(r.fs, oldVersion.String(), newVersion.String())
		if err != nil {
			skipped = multierror.Append(skipped, err)
			continue
		}
		if result == fileutils.Unchanged {
			logrus.Warnf("No version string found in %s", tracked.Path)
			continue
		}
		logrus.Infof("Updated %s", tracked.Path)
	}
	if skipped != nil {
		for _, err := range skipped.Errors {
			logrus.Warnf("Skipped a tracked file: %v", err)
		}
	}
}

func (r *Release) updateChangelog(newVersion *versionutils.Version) error {
	document, err := changelogutils.EnsureDocument(r.fs, r.opts.ChangelogPath, r.opts.Project)
	if err != nil {
		return err
	}

	date := r.opts.Now().Format(changelogutils.DateFormat)
	updated, err := changelogutils.InsertSection(document, newVersion.String(), date)
	if err != nil {
		// Duplicate section: reported, the release continues with the
		// changelog untouched.
		logrus.Warn(err.Error())
		return nil
	}
	if err := changelogutils.WriteDocument(r.fs, r.opts.ChangelogPath, updated); err != nil {
		return err
	}
	logrus.Infof("Updated %s with version %s", r.opts.ChangelogPath, newVersion)

	logrus.Warnf("Please edit %s to add your changes before finalizing the release", r.opts.ChangelogPath)
	if r.opts.AutoConfirm {
		return nil
	}
	return r.prompter.Acknowledge("Press Enter when you've updated the changelog...")
}

func (r *Release) confirmRelease(oldVersion, newVersion *versionutils.Version) (bool, error) {
	printHeader("Release Summary")
	printSummaryLine("Old version", oldVersion.String())
	printSummaryLine("New version", newVersion.String())
	printSummaryLine("Git tag", newVersion.Tag())
	printSummaryLine("Commit msg", commitMessage(newVersion))

	return r.confirm("Proceed with release?")
}

func (r *Release) rollbackTrackedFiles() {
	paths := make([]string, 0, len(r.opts.TrackedFiles))
	for _, tracked := range r.opts.TrackedFiles {
		paths = append(paths, tracked.Path)
	}
	if len(paths) == 0 {
		return
	}
	// The changelog is deliberately left alone: its new section is still
	// useful on the next attempt.
	if err := r.git.Restore(paths...); err != nil {
		logrus.Warnf("Failed to revert tracked files: %v", err)
	}
}

func (r *Release) performGitOperations(newVersion *versionutils.Version) error {
	printHeader("Performing Git Operations")

	logrus.Info("Staging changes...")
	if err := r.git.AddAll(); err != nil {
		return VcsOperationFailedError(err, "stage changes")
	}

	message := commitMessage(newVersion)
	logrus.Infof("Creating commit: %s", message)
	if err := r.git.Commit(message); err != nil {
		return VcsOperationFailedError(err, "commit")
	}

	tag := newVersion.Tag()
	logrus.Infof("Creating tag: %s", tag)
	if err := r.git.Tag(tag, fmt.Sprintf("Release version %s", newVersion)); err != nil {
		return VcsOperationFailedError(err, "create tag")
	}

	logrus.Info("Pushing to remote...")
	if err := r.git.Push(); err != nil {
		return VcsOperationFailedError(err, "push commit")
	}
	if err := r.git.PushTags(); err != nil {
		return VcsOperationFailedError(err, "push tags")
	}
	return nil
}

func (r *Release) printFollowUp(ctx context.Context, newVersion *versionutils.Version) {
	printHeader("Release Complete!")
	logrus.Infof("Version %s has been released", newVersion)

	if r.opts.Owner == "" || r.opts.Repo == "" {
		return
	}
	tag := newVersion.Tag()

	if r.opts.GithubRelease {
		r.createGithubRelease(ctx, tag)
	}

	logrus.Infof("Release page: %s", githubutils.ReleasePageUrl(r.opts.Owner, r.opts.Repo, tag))
	logrus.Infof("All releases: %s", githubutils.ReleasesUrl(r.opts.Owner, r.opts.Repo))
}

// createGithubRelease is follow-up only: any failure is a warning and never
// unwinds the pushed release.
func (r *Release) createGithubRelease(ctx context.Context, tag string) {
	client, err := githubutils.GetClient(ctx)
	if err != nil {
		logrus.Warnf("Skipping GitHub release creation: %v", err)
		return
	}
	body := fmt.Sprintf("See [%s](%s) for details.", r.opts.ChangelogPath, r.opts.ChangelogPath)
	if _, err := githubutils.CreateRelease(ctx, client, r.opts.Owner, r.opts.Repo, tag, body); err != nil {
		logrus.Warnf("Failed to create GitHub release: %v", err)
		return
	}
	logrus.Infof("Created GitHub release for %s", tag)
}

func (r *Release) confirm(message string) (bool, error) {
	if r.opts.AutoConfirm {
		return true, nil
	}
	return r.prompter.Confirm(message)
}

func commitMessage(newVersion *versionutils.Version) string {
	return fmt.Sprintf("chore: release %s", newVersion.Tag())
}
