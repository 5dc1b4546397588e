package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docqa/askdocs/docstore"
	"github.com/docqa/askdocs/readers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DropWatcher_Sync(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "facts.txt"),
		[]byte("A day on Venus is longer than its year."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "image.png"),
		[]byte{0x89, 0x50, 0x4e, 0x47}, 0o644))

	store := docstore.NewMemoryStore()
	reg := NewDocRegistry(store, nil, &DefaultChunkifier{chunkSize: 500, chunkOverlap: 50}, testLogger())
	require.NoError(t, reg.RegisterReader(&readers.TxtFileReader{}))

	w := NewDropWatcher(reg, root, 0, testLogger())
	require.NoError(t, w.Sync(context.Background()))

	files, err := reg.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"facts.txt"}, files)

	stats, err := reg.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, docstore.Stats{TotalDocuments: 1, TotalChunks: 1}, stats)
}
