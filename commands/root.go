package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bkrabach/releasekit/contextutils"
)

// RootCommand configures the CLI, including possible commands and input args.
func RootCommand(ctx context.Context) *cobra.Command {
	rootOptions := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "releasekit [command]",
		Short: "Release automation: version bumps, changelog edits, git tagging",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if rootOptions.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
				contextutils.SetLogLevelFromString("debug")
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Use custom logrus formatter
	logrus.SetFormatter(logFormatter{})

	// set global CLI flags
	rootOptions.AddToFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		ReleaseCommand(ctx, rootOptions),
		BumpCommand(ctx, rootOptions),
		ChangelogCommand(ctx, rootOptions))

	return cmd
}

type RootOptions struct {
	Verbose bool
}

func (r *RootOptions) AddToFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&r.Verbose, "verbose", "v", false, "Enable verbose logging")
}

type logFormatter struct{}

func (logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	switch entry.Level {
	case logrus.DebugLevel:
		_, _ = color.New(color.Faint).Fprintln(&buf, entry.Message)
	case logrus.InfoLevel:
		_, _ = fmt.Fprintln(&buf, entry.Message)
	case logrus.WarnLevel:
		_, _ = color.New(color.FgYellow).Fprint(&buf, "warning: ")
		_, _ = fmt.Fprintln(&buf, entry.Message)
	case logrus.ErrorLevel:
		_, _ = color.New(color.FgRed).Fprint(&buf, "error: ")
		_, _ = fmt.Fprintln(&buf, entry.Message)
	case logrus.FatalLevel:
		_, _ = color.New(color.FgRed).Fprint(&buf, "fatal: ")
		_, _ = fmt.Fprintln(&buf, entry.Message)
	case logrus.PanicLevel:
		_, _ = color.New(color.FgRed).Fprint(&buf, "panic: ")
		_, _ = fmt.Fprintln(&buf, entry.Message)
	}

	return buf.Bytes(), nil
}
