package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompleter is a testify mock for the answer generation client.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}
