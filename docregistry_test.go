package main

import (
	"context"
	"testing"

	"github.com/docqa/askdocs/docstore"
	"github.com/docqa/askdocs/mocks"
	"github.com/docqa/askdocs/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, store docstore.Store) *DocRegistry {
	t.Helper()

	reg := NewDocRegistry(store, nil, &DefaultChunkifier{chunkSize: 500, chunkOverlap: 50}, testLogger())
	require.NoError(t, reg.RegisterReader(&readers.TxtFileReader{}))
	return reg
}

func Test_ProcessAndIndex(t *testing.T) {
	store := new(mocks.MockStore)
	reg := newTestRegistry(t, store)

	store.On("Add", mock.Anything, "notes.txt", mock.MatchedBy(func(chunks []docstore.Chunk) bool {
		return len(chunks) == 1 &&
			chunks[0].Text == "Bananas are berries, but strawberries aren't." &&
			chunks[0].File == "notes.txt"
	})).Return(nil)

	res, err := reg.ProcessAndIndex(context.Background(), []byte("Bananas are berries, but strawberries aren't."), "notes.txt")
	require.NoError(t, err)

	assert.Equal(t, IngestResult{Chunks: 1}, res)
	store.AssertExpectations(t)
}

func Test_ProcessAndIndex_UnsupportedFormat(t *testing.T) {
	store := new(mocks.MockStore)
	reg := newTestRegistry(t, store)

	_, err := reg.ProcessAndIndex(context.Background(), []byte("binary"), "image.png")
	assert.ErrorIs(t, err, readers.ErrUnsupportedFormat)
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func Test_ProcessAndIndex_IndexFailure(t *testing.T) {
	store := new(mocks.MockStore)
	reg := newTestRegistry(t, store)

	store.On("Add", mock.Anything, mock.Anything, mock.Anything).Return(docstore.ErrIndexWrite)

	_, err := reg.ProcessAndIndex(context.Background(), []byte("some text"), "doc.txt")
	assert.ErrorIs(t, err, docstore.ErrIndexWrite)
}

func Test_RegisterReader_Duplicate(t *testing.T) {
	reg := NewDocRegistry(new(mocks.MockStore), nil, &DefaultChunkifier{chunkSize: 100, chunkOverlap: 10}, testLogger())

	require.NoError(t, reg.RegisterReader(&readers.TxtFileReader{}))
	assert.Error(t, reg.RegisterReader(&readers.TxtFileReader{}))
}

func Test_Registry_StorePassthrough(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockStore)
	reg := newTestRegistry(t, store)

	store.On("List", mock.Anything).Return([]string{"a.txt", "b.txt"}, nil)
	store.On("Delete", mock.Anything, "a.txt").Return(nil)
	store.On("Stats", mock.Anything).Return(docstore.Stats{TotalDocuments: 2, TotalChunks: 7}, nil)
	store.On("Clear", mock.Anything).Return(nil)

	files, err := reg.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, files)

	require.NoError(t, reg.DeleteDocument(ctx, "a.txt"))

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, docstore.Stats{TotalDocuments: 2, TotalChunks: 7}, stats)

	require.NoError(t, reg.Clear(ctx))
	store.AssertExpectations(t)
}

func Test_Registry_Supported(t *testing.T) {
	reg := newTestRegistry(t, new(mocks.MockStore))

	assert.True(t, reg.Supported("doc.txt"))
	assert.True(t, reg.Supported("DOC.TXT"))
	assert.False(t, reg.Supported("doc.csv"))
}
