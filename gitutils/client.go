package gitutils

import (
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/bkrabach/releasekit/osutils/executils"
)

var (
	GitCommandError = func(err error, args []string, output string) error {
		return errors.Wrapf(err, "git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(output))
	}
)

// Client is the version-control capability the release flow depends on.
// Implementations only promise exit-code semantics (zero is success) and
// stdout content for the two query operations.
type Client interface {
	// Status returns `git status --porcelain` output; empty means clean.
	Status() (string, error)
	// CurrentBranch returns the abbreviated ref name of HEAD.
	CurrentBranch() (string, error)
	// AddAll stages every change in the working tree.
	AddAll() error
	// Commit records the staged changes with the given message.
	Commit(message string) error
	// Tag creates an annotated tag with the given message.
	Tag(name, message string) error
	// Push pushes the current branch to its upstream.
	Push() error
	// PushTags pushes tags to the remote.
	PushTags() error
	// Restore discards local modifications to the given paths, reverting
	// them to their last-committed state.
	Restore(paths ...string) error
}

// CmdRunner executes a prepared command and reports its combined output and
// exit status.
type CmdRunner func(cmd *exec.Cmd) ([]byte, int, error)

type execClient struct {
	dir string
	run CmdRunner
}

// NewClient returns a Client that shells out to the git binary, operating
// on the repository at dir.
func NewClient(dir string) Client {
	return NewClientWithRunner(dir, executils.CombinedOutputWithStatus)
}

// NewClientWithRunner is NewClient with an injectable command runner.
func NewClientWithRunner(dir string, run CmdRunner) Client {
	return &execClient{dir: dir, run: run}
}

func (c *execClient) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.dir
	out, _, err := c.run(cmd)
	if err != nil {
		return string(out), GitCommandError(err, args, string(out))
	}
	return string(out), nil
}

func (c *execClient) Status() (string, error) {
	return c.git("status", "--porcelain")
}

func (c *execClient) CurrentBranch() (string, error) {
	out, err := c.git("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *execClient) AddAll() error {
	_, err := c.git("add", "-A")
	return err
}

func (c *execClient) Commit(message string) error {
	_, err := c.git("commit", "-m", message)
	return err
}

func (c *execClient) Tag(name, message string) error {
	_, err := c.git("tag", "-a", name, "-m", message)
	return err
}

func (c *execClient) Push() error {
	_, err := c.git("push")
	return err
}

func (c *execClient) PushTags() error {
	_, err := c.git("push", "--tags")
	return err
}

func (c *execClient) Restore(paths ...string) error {
	args := append([]string{"checkout", "--"}, paths...)
	_, err := c.git(args...)
	return err
}
