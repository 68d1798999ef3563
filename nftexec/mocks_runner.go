package nftexec

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing.
type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, int, error) {
	callArgs := make([]interface{}, 0, len(args)+3)
	callArgs = append(callArgs, ctx, stdin, name)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	var stdout, stderr []byte
	if result.Get(0) != nil {
		stdout = result.Get(0).([]byte)
	}
	if result.Get(1) != nil {
		stderr = result.Get(1).([]byte)
	}
	return stdout, stderr, result.Int(2), result.Error(3)
}
