// Package testdata provides fixtures and fakes shared by the server's
// tests.
package testdata

import (
	"context"
	"embed"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
)

//go:embed fixtures/*
var Fixtures embed.FS

// GetFixture returns the content of a fixture file.
func GetFixture(name string) ([]byte, error) {
	return Fixtures.ReadFile("fixtures/" + name)
}

// MustGetFixture returns the content of a fixture file or panics.
func MustGetFixture(name string) []byte {
	data, err := GetFixture(name)
	if err != nil {
		panic(err)
	}
	return data
}

// Call records one invocation observed by a RecordingRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// RecordingRunner is a runner.Runner fake. OnRun, when set, runs before
// the canned result is returned and may inspect or populate the working
// directory.
type RecordingRunner struct {
	Calls  []Call
	Result *runner.Result
	Err    error
	OnRun  func(call Call) error
}

var _ runner.Runner = (*RecordingRunner)(nil)

// Run records the call and returns the canned result.
func (r *RecordingRunner) Run(ctx context.Context, dir, name string, args ...string) (*runner.Result, error) {
	call := Call{Dir: dir, Name: name, Args: args}
	r.Calls = append(r.Calls, call)

	if r.OnRun != nil {
		if err := r.OnRun(call); err != nil {
			return nil, err
		}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Result != nil {
		return r.Result, nil
	}
	return &runner.Result{}, nil
}
