// Package mocks provides testify mocks for the runner package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/nvsetup/internal/runner"
)

// Runner is a mock implementation of runner.Runner.
type Runner struct {
	mock.Mock
}

// NewRunner creates a mock Runner whose expectations are asserted when the
// test finishes.
func NewRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *Runner {
	m := &Runner{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// LookPath provides a mock function with the given fields: name
func (m *Runner) LookPath(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// Run provides a mock function with the given fields: ctx, cmd
func (m *Runner) Run(ctx context.Context, cmd runner.Command) (*runner.Result, error) {
	args := m.Called(ctx, cmd)
	var res *runner.Result
	if v := args.Get(0); v != nil {
		res = v.(*runner.Result)
	}
	return res, args.Error(1)
}

// Found expects LookPath(name) and answers with /usr/bin/<name>.
func (m *Runner) Found(names ...string) *Runner {
	for _, n := range names {
		m.On("LookPath", n).Return("/usr/bin/"+n, nil).Maybe()
	}
	return m
}

// Missing expects LookPath(name) and answers "not found".
func (m *Runner) Missing(names ...string) *Runner {
	for _, n := range names {
		m.On("LookPath", n).Return("", runner.ErrNotOnPath).Maybe()
	}
	return m
}

// Command matches a runner.Command by its rendered command line, so nil and
// empty argument slices compare equal.
func Command(want runner.Command) any {
	return mock.MatchedBy(func(got runner.Command) bool {
		return got.String() == want.String()
	})
}

// Succeeds expects cmd to be run once and exit zero.
func (m *Runner) Succeeds(cmd runner.Command) *mock.Call {
	return m.On("Run", mock.Anything, Command(cmd)).Return(&runner.Result{}, nil).Once()
}

// Fails expects cmd to be run once and exit with code.
func (m *Runner) Fails(cmd runner.Command, code int, output string) *mock.Call {
	res := &runner.Result{ExitCode: code, Output: []byte(output)}
	return m.On("Run", mock.Anything, Command(cmd)).
		Return(res, runner.Failure(cmd, res, runner.ErrExitStatus(code))).Once()
}

var _ runner.Runner = (*Runner)(nil)
