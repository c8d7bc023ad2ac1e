package executils

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// CombinedOutputWithStatus runs cmd.CombinedOutput and returns the exit
// status of the run.
func CombinedOutputWithStatus(cmd *exec.Cmd) ([]byte, int, error) {
	out, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				return out, status.ExitStatus(), err
			}
		}
	}
	return out, 0, err
}

// RunStreaming runs the command with stdout and stderr mirrored to the
// parent process, for long-running collaborators whose output the operator
// should watch live. The combined output is still captured for error
// reporting.
func RunStreaming(cmd *exec.Cmd) ([]byte, int, error) {
	buf := &bytes.Buffer{}
	cmd.Stdout = io.MultiWriter(buf, os.Stdout)
	cmd.Stderr = io.MultiWriter(buf, os.Stderr)
	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				return buf.Bytes(), status.ExitStatus(), err
			}
		}
	}
	return buf.Bytes(), 0, err
}
