package commands

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bkrabach/releasekit/changelogutils"
	"github.com/bkrabach/releasekit/versionutils"
)

func ChangelogCommand(ctx context.Context, rootOptions *RootOptions) *cobra.Command {
	opts := &changelogOptions{
		RootOptions: rootOptions,
	}

	cmd := &cobra.Command{
		Use:   "changelog <X.Y.Z>",
		Short: "Insert an empty changelog section for a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doChangelog(ctx, opts, args[0])
		},
	}

	opts.addToFlags(cmd.Flags())

	return cmd
}

type changelogOptions struct {
	*RootOptions

	project   string
	changelog string
}

func (o *changelogOptions) addToFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.project, "project", "p", "", "project name used in the changelog preamble")
	flags.StringVarP(&o.changelog, "changelog", "c", "CHANGELOG.md", "changelog file to update")
}

func doChangelog(ctx context.Context, opts *changelogOptions, versionArg string) error {
	version, err := versionutils.ParseVersion(versionArg)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	document, err := changelogutils.EnsureDocument(fs, opts.changelog, opts.project)
	if err != nil {
		return err
	}

	date := time.Now().Format(changelogutils.DateFormat)
	updated, err := changelogutils.InsertSection(document, version.String(), date)
	if err != nil {
		logrus.Warn(err.Error())
		return nil
	}
	if err := changelogutils.WriteDocument(fs, opts.changelog, updated); err != nil {
		return err
	}
	logrus.Infof("Updated %s with version %s", opts.changelog, version)
	return nil
}
