package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/docqa/askdocs/docstore"
	"github.com/docqa/askdocs/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Answer_EmptyQuestion(t *testing.T) {
	p := NewPipeline(new(mocks.MockStore), new(mocks.MockCompleter), defaultTopK, testLogger())

	_, err := p.Answer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func Test_Answer_NoDocuments(t *testing.T) {
	store := new(mocks.MockStore)
	gen := new(mocks.MockCompleter)
	store.On("Search", mock.Anything, "what is go?", defaultTopK).Return(nil, nil)

	p := NewPipeline(store, gen, defaultTopK, testLogger())
	answer, err := p.Answer(context.Background(), "what is go?")
	require.NoError(t, err)

	assert.Equal(t, noDocumentsAnswer, answer.Text)
	assert.False(t, answer.Degraded)
	assert.Empty(t, answer.Sources)
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func Test_Answer_AssemblesContextAndSources(t *testing.T) {
	store := new(mocks.MockStore)
	gen := new(mocks.MockCompleter)

	hits := []docstore.SearchResult{
		{Text: "Go was designed at Google.", File: "go.txt", ChunkID: 2, Score: 0.1},
		{Text: strings.Repeat("x", 250), File: "big.txt", ChunkID: 0, Score: 0.4},
	}
	store.On("Search", mock.Anything, "who designed go?", defaultTopK).Return(hits, nil)
	gen.On("Complete", mock.Anything, systemPrompt, mock.Anything).Return("Go was designed at Google.", nil)

	p := NewPipeline(store, gen, defaultTopK, testLogger())
	answer, err := p.Answer(context.Background(), "who designed go?")
	require.NoError(t, err)

	assert.Equal(t, "Go was designed at Google.", answer.Text)
	assert.False(t, answer.Degraded)

	require.Len(t, answer.Sources, 2)
	assert.Equal(t, Source{File: "go.txt", ChunkID: 2, Text: "Go was designed at Google."}, answer.Sources[0])
	assert.Equal(t, "big.txt", answer.Sources[1].File)
	assert.Equal(t, strings.Repeat("x", 200)+"...", answer.Sources[1].Text)

	gen.AssertExpectations(t)
	prompt := gen.Calls[0].Arguments.String(2)
	assert.Contains(t, prompt, "[Source 1 from go.txt]:\nGo was designed at Google.")
	assert.Contains(t, prompt, "[Source 2 from big.txt]:")
	assert.Contains(t, prompt, "Question: who designed go?")
}

func Test_Answer_UsesConfiguredResultCount(t *testing.T) {
	store := new(mocks.MockStore)
	gen := new(mocks.MockCompleter)
	store.On("Search", mock.Anything, "what is go?", 7).Return(nil, nil)

	p := NewPipeline(store, gen, 7, testLogger())
	_, err := p.Answer(context.Background(), "what is go?")
	require.NoError(t, err)
	store.AssertExpectations(t)

	// Zero and negative counts fall back to the default.
	assert.Equal(t, defaultTopK, NewPipeline(store, gen, 0, testLogger()).topK)
	assert.Equal(t, defaultTopK, NewPipeline(store, gen, -1, testLogger()).topK)
}

func Test_Answer_GenerationFailureDegrades(t *testing.T) {
	store := new(mocks.MockStore)
	gen := new(mocks.MockCompleter)

	hits := []docstore.SearchResult{{Text: "relevant text", File: "doc.txt", ChunkID: 1}}
	store.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(hits, nil)
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	p := NewPipeline(store, gen, defaultTopK, testLogger())
	answer, err := p.Answer(context.Background(), "anything?")
	require.NoError(t, err)

	assert.True(t, answer.Degraded)
	assert.Contains(t, answer.Text, "Error generating answer")
	assert.Contains(t, answer.Text, "connection refused")

	// Retrieval worked, so attribution still reflects the hits.
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "doc.txt", answer.Sources[0].File)
	assert.Equal(t, 1, answer.Sources[0].ChunkID)
}

func Test_Answer_RetrievalFailureDegrades(t *testing.T) {
	store := new(mocks.MockStore)
	gen := new(mocks.MockCompleter)
	store.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("index offline"))

	p := NewPipeline(store, gen, defaultTopK, testLogger())
	answer, err := p.Answer(context.Background(), "anything?")
	require.NoError(t, err)

	assert.True(t, answer.Degraded)
	assert.Contains(t, answer.Text, "index offline")
	assert.Empty(t, answer.Sources)
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func Test_AssembleContext(t *testing.T) {
	hits := []docstore.SearchResult{
		{Text: "first chunk", File: "a.txt"},
		{Text: "second chunk", File: "b.txt"},
	}

	ctx := assembleContext(hits)
	assert.Equal(t, "[Source 1 from a.txt]:\nfirst chunk\n\n[Source 2 from b.txt]:\nsecond chunk", ctx)

	assert.Equal(t, "", assembleContext(nil))
}
