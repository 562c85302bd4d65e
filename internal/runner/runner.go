// Package runner executes external CLI tools (terraform, checkov) and
// captures their output streams and exit codes.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Result holds the captured output of a finished subprocess.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs an external command in a working directory. Implementations
// must be safe for concurrent use; each call is independent.
type Runner interface {
	// Run executes name with args in dir (empty dir means the process
	// working directory). A non-zero exit is reported through
	// Result.ExitCode, not through the error; the error is reserved for
	// failures to start or signal-level termination.
	Run(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

type execRunner struct {
	logger *logrus.Logger
}

// New returns a Runner backed by os/exec.
func New(logger *logrus.Logger) Runner {
	return &execRunner{logger: logger}
}

func (r *execRunner) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	r.logger.WithFields(logrus.Fields{
		"command": name + " " + strings.Join(args, " "),
		"dir":     dir,
	}).Debug("running external command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	configureProcAttrs(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, err
	}

	return res, nil
}
