package commands

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bkrabach/releasekit/fileutils"
	"github.com/bkrabach/releasekit/gitutils"
	"github.com/bkrabach/releasekit/releaseutils"
)

const (
	// ManifestAnchor matches the manifest's top-of-line version declaration.
	ManifestAnchor = `^version\s*=\s*"{version}"`

	// ConstantAnchor matches a module's top-of-line version constant.
	ConstantAnchor = `^__version__\s*=\s*"{version}"`
)

func ReleaseCommand(ctx context.Context, rootOptions *RootOptions) *cobra.Command {
	opts := &releaseOptions{
		RootOptions: rootOptions,
	}

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Run the interactive release flow",
		Long: "Checks the working tree, branch, and test suite, bumps the version, " +
			"updates version-bearing files and the changelog, then commits, tags, and pushes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRelease(ctx, opts)
		},
	}

	opts.addToFlags(cmd.Flags())

	return cmd
}

type releaseOptions struct {
	*RootOptions

	project       string
	manifest      string
	versionFile   string
	changelog     string
	owner         string
	repo          string
	branches      []string
	skipTests     bool
	autoConfirm   bool
	githubRelease bool
}

func (o *releaseOptions) addToFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.project, "project", "p", "", "project name used in the changelog preamble")
	flags.StringVarP(&o.manifest, "manifest", "m", "pyproject.toml", "manifest file carrying the version declaration")
	flags.StringVar(&o.versionFile, "version-file", "", "file carrying a __version__ constant to keep in sync")
	flags.StringVarP(&o.changelog, "changelog", "c", "CHANGELOG.md", "changelog file to update")
	flags.StringVar(&o.owner, "owner", "", "GitHub owner for release page links")
	flags.StringVar(&o.repo, "repo", "", "GitHub repository for release page links")
	flags.StringSliceVar(&o.branches, "branch", []string{"main", "master"}, "branches a release may run from without an override")
	flags.BoolVar(&o.skipTests, "skip-tests", false, "skip the test gate")
	flags.BoolVarP(&o.autoConfirm, "yes", "y", false, "answer yes to every gate (non-interactive)")
	flags.BoolVar(&o.githubRelease, "github-release", false, "create a GitHub release after pushing the tag")
}

func (o *releaseOptions) trackedFiles() []fileutils.VersionedFile {
	tracked := []fileutils.VersionedFile{
		{Path: o.manifest, AnchorPattern: ManifestAnchor},
	}
	if o.versionFile != "" {
		tracked = append(tracked, fileutils.VersionedFile{Path: o.versionFile, AnchorPattern: ConstantAnchor})
	}
	return tracked
}

func doRelease(ctx context.Context, opts *releaseOptions) error {
	fs := afero.NewOsFs()
	release := releaseutils.NewRelease(
		releaseutils.Options{
			Project:       opts.project,
			ManifestPath:  opts.manifest,
			TrackedFiles:  opts.trackedFiles(),
			ChangelogPath: opts.changelog,
			Branches:      opts.branches,
			Owner:         opts.owner,
			Repo:          opts.repo,
			SkipTests:     opts.skipTests,
			AutoConfirm:   opts.autoConfirm,
			GithubRelease: opts.githubRelease,
		},
		fs,
		gitutils.NewClient("."),
		releaseutils.NewSurveyPrompter(),
		releaseutils.NewMakeTestRunner(fs, "."),
	)
	return release.Run(ctx)
}
