package commands

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bkrabach/releasekit/contextutils"
	"github.com/bkrabach/releasekit/fileutils"
	"github.com/bkrabach/releasekit/versionutils"
)

func BumpCommand(ctx context.Context, rootOptions *RootOptions) *cobra.Command {
	opts := &bumpOptions{
		RootOptions: rootOptions,
	}

	cmd := &cobra.Command{
		Use:   "bump <major|minor|patch|X.Y.Z>",
		Short: "Bump the version in tracked files without touching git",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doBump(ctx, opts, args[0])
		},
	}

	opts.addToFlags(cmd.Flags())

	return cmd
}

type bumpOptions struct {
	*RootOptions

	manifest    string
	versionFile string
}

func (o *bumpOptions) addToFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.manifest, "manifest", "m", "pyproject.toml", "manifest file carrying the version declaration")
	flags.StringVar(&o.versionFile, "version-file", "", "file carrying a __version__ constant to keep in sync")
}

func doBump(ctx context.Context, opts *bumpOptions, bumpArg string) error {
	fs := afero.NewOsFs()

	directive, err := versionutils.ParseBumpDirective(bumpArg)
	if err != nil {
		return err
	}
	currentVersion, err := versionutils.CurrentVersion(fs, opts.manifest)
	if err != nil {
		return err
	}
	newVersion, err := currentVersion.Bump(directive)
	if err != nil {
		return err
	}
	contextutils.LoggerFrom(ctx).Debugw("bumping version",
		"current", currentVersion.String(), "new", newVersion.String(), "bump", directive.Type.String())

	tracked := []fileutils.VersionedFile{
		{Path: opts.manifest, AnchorPattern: ManifestAnchor},
	}
	if opts.versionFile != "" {
		tracked = append(tracked, fileutils.VersionedFile{Path: opts.versionFile, AnchorPattern: ConstantAnchor})
	}

	for _, file := range tracked {
		result, err := file.Apply(fs, currentVersion.String(), newVersion.String())
		if err != nil {
			return err
		}
		if result == fileutils.Unchanged {
			logrus.Warnf("No version string found in %s", file.Path)
			continue
		}
		logrus.Infof("Updated %s", file.Path)
	}

	logrus.Infof("Bumped version from %s to %s", currentVersion, newVersion)
	return nil
}
