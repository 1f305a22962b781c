package gitcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// RunResult holds the captured output of a successful command.
type RunResult struct {
	Stdout string
	Stderr string
}

// Runner runs git commands inside the kernel tree, one at a time.
type Runner struct {
	// program and baseArgs come from the configured git command line,
	// e.g. "git -c protocol.version=2".
	program  string
	baseArgs []string

	// Dir is the directory the commands are run in.
	Dir string

	// Verbose also copies the command output to the terminal.
	Verbose bool
}

// NewRunner splits the git command line and resolves its program on PATH.
func NewRunner(command, dir string) (*Runner, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid git command %q: %w", command, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("invalid git command %q: empty", command)
	}

	program, err := exec.LookPath(parts[0])
	if err != nil {
		return nil, fmt.Errorf("no %q program on path: %w", parts[0], err)
	}

	return &Runner{
		program:  program,
		baseArgs: parts[1:],
		Dir:      dir,
	}, nil
}

// Execute runs a git command given as a single command line. Omit the
// program itself: Execute(ctx, "fetch --tags -f origin v1").
func (r *Runner) Execute(ctx context.Context, line string) (RunResult, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return RunResult{}, fmt.Errorf("invalid command line %q: %w", line, err)
	}
	return r.Run(ctx, args...)
}

// Run runs a git command. Omit the program itself from args.
//
// A non-zero exit with the conflict marker on stdout yields a
// *entities.ConflictError; any other failure yields a *entities.ExecError.
func (r *Runner) Run(ctx context.Context, args ...string) (RunResult, error) {
	fullArgs := append(append([]string{}, r.baseArgs...), args...)
	logger.Debugf("Running: git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.program, fullArgs...)
	cmd.Dir = r.Dir
	cmd.Env = os.Environ()

	cmdStdout := &bytes.Buffer{}
	cmdStderr := &bytes.Buffer{}
	if r.Verbose {
		cmd.Stdout = io.MultiWriter(cmdStdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(cmdStderr, os.Stderr)
	} else {
		cmd.Stdout = cmdStdout
		cmd.Stderr = cmdStderr
	}

	if err := cmd.Run(); err != nil {
		return RunResult{}, classify(append([]string{"git"}, args...), err, cmdStdout.String(), cmdStderr.String())
	}
	return RunResult{
		Stdout: cmdStdout.String(),
		Stderr: cmdStderr.String(),
	}, nil
}

// classify turns a failed command into the matching domain error.
func classify(args []string, err error, stdout, stderr string) error {
	exitCode := 1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		exitCode = exitErr.ExitCode()
	}

	execErr := entities.ExecError{
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}
	if strings.Contains(stdout, entities.ConflictMarker) {
		return &entities.ConflictError{ExecError: execErr}
	}
	return &execErr
}
