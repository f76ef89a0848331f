package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
)

// Runner executes external scanner binaries.
type Runner struct{}

var _ interfaces.CommandRunner = (*Runner)(nil)

func New() *Runner {
	return &Runner{}
}

// Run executes the command and returns its output. A non-zero exit status is not an error:
// most scanners use it to report findings. Failing to start the command is an error.
func (x *Runner) Run(ctx context.Context, input *interfaces.CommandInput) (*interfaces.CommandOutput, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, input.Name, input.Args...)
	cmd.Dir = input.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.From(ctx).Debug("running command", "name", input.Name, "args", input.Args, "dir", input.Dir)

	out := &interfaces.CommandOutput{}
	err := cmd.Run()
	out.Stdout = stdout.Bytes()
	out.Stderr = stderr.Bytes()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return out, nil
	case ctx.Err() != nil:
		return out, goerr.Wrap(ctx.Err(), "command was canceled",
			goerr.V("name", input.Name),
			goerr.V("args", input.Args),
		)
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	default:
		return out, goerr.Wrap(err, "failed to run command",
			goerr.V("name", input.Name),
			goerr.V("args", input.Args),
			goerr.V("stderr", stderr.String()),
		)
	}
}

func (x *Runner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", goerr.Wrap(err, "command not found", goerr.V("name", name))
	}
	return path, nil
}
