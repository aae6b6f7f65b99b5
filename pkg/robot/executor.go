// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package robot

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCaptured(ctx context.Context, name string, args ...string) (result execResult, err error)
}

// execResult holds the outcome of a process that ran to completion.
type execResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// RunCaptured runs the command and captures stdout and stderr
// independently. A non-zero exit is not an error here: the exit code is
// reported in the result and err stays nil. err is non-nil only when
// the process could not be started or was killed before exiting.
func (o *osExecutor) RunCaptured(ctx context.Context, name string, args ...string) (execResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := execResult{stdout: stdout.String(), stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			res.exitCode = exitErr.ExitCode()
			return res, nil
		}
		return execResult{}, err
	}
	return res, nil
}

var defaultExec = &osExecutor{}
