package releaseutils

import (
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bkrabach/releasekit/osutils/executils"
)

const (
	// MakefileSentinel marks a repository as having an automated check
	// target.
	MakefileSentinel = "Makefile"

	// DefaultTestTarget is the make target the test gate runs.
	DefaultTestTarget = "check"
)

type makeTestRunner struct {
	fs     afero.Fs
	dir    string
	target string
}

// NewMakeTestRunner returns a TestRunner that detects a Makefile in dir
// and runs its check target, streaming output to the operator.
func NewMakeTestRunner(fs afero.Fs, dir string) TestRunner {
	return &makeTestRunner{
		fs:     fs,
		dir:    dir,
		target: DefaultTestTarget,
	}
}

func (m *makeTestRunner) HasTestTarget() bool {
	exists, err := afero.Exists(m.fs, filepath.Join(m.dir, MakefileSentinel))
	return err == nil && exists
}

func (m *makeTestRunner) RunTests() error {
	cmd := exec.Command("make", m.target)
	cmd.Dir = m.dir
	_, _, err := executils.RunStreaming(cmd)
	return err
}
