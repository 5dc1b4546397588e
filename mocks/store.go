package mocks

import (
	"context"

	"github.com/docqa/askdocs/docstore"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock for docstore.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Add(ctx context.Context, file string, chunks []docstore.Chunk) error {
	args := m.Called(ctx, file, chunks)
	return args.Error(0)
}

func (m *MockStore) Search(ctx context.Context, query string, topK int) ([]docstore.SearchResult, error) {
	args := m.Called(ctx, query, topK)
	var res []docstore.SearchResult
	if v := args.Get(0); v != nil {
		res = v.([]docstore.SearchResult)
	}
	return res, args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, file string) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var res []string
	if v := args.Get(0); v != nil {
		res = v.([]string)
	}
	return res, args.Error(1)
}

func (m *MockStore) Stats(ctx context.Context) (docstore.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(docstore.Stats), args.Error(1)
}

func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
