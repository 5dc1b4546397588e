package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/docqa/askdocs/docstore"
	"github.com/docqa/askdocs/readers"
)

type Chunkifier interface {
	Chunkify(text string) ([]docstore.Chunk, bool)
}

type FileReader interface {
	Ext() string
	ReadText(data []byte) (string, error)
}

type answerer interface {
	Answer(ctx context.Context, question string) (*Answer, error)
}

// IngestResult reports what ProcessAndIndex did with a document. Truncated is
// set when the extracted text exceeded the chunker's safety ceiling and the
// tail was dropped.
type IngestResult struct {
	Chunks    int
	Truncated bool
}

// DocRegistry is the core handed to the serving layer: it owns document
// ingestion and fronts retrieval-augmented answering and index management.
type DocRegistry struct {
	log        *slog.Logger
	store      docstore.Store
	pipeline   answerer
	chunkifier Chunkifier
	readers    map[string]FileReader
}

func NewDocRegistry(store docstore.Store, pipeline answerer, chunkifier Chunkifier, log *slog.Logger) *DocRegistry {
	return &DocRegistry{
		log:        log,
		store:      store,
		pipeline:   pipeline,
		chunkifier: chunkifier,
		readers:    make(map[string]FileReader),
	}
}

func (dr *DocRegistry) RegisterReader(rs ...FileReader) error {
	for _, r := range rs {
		_, ok := dr.readers[r.Ext()]
		if ok {
			return fmt.Errorf("reader already registered for type %s", r.Ext())
		}

		dr.readers[r.Ext()] = r
	}

	return nil
}

// ProcessAndIndex extracts text from the document bytes, chunks it and
// indexes the chunks under filename. Re-uploading a filename replaces its
// previous chunk set.
func (dr *DocRegistry) ProcessAndIndex(ctx context.Context, data []byte, filename string) (IngestResult, error) {
	reader, err := dr.findReader(filename)
	if err != nil {
		return IngestResult{}, err
	}

	text, err := reader.ReadText(data)
	if err != nil {
		return IngestResult{}, fmt.Errorf("failed to read document %s: %w", filename, err)
	}

	chunks, truncated := dr.chunkifier.Chunkify(text)
	if truncated {
		dr.log.Warn("document text truncated before chunking", "file", filename, "limit", maxTextLength)
	}

	for i := range chunks {
		chunks[i].File = filename
	}

	err = dr.store.Add(ctx, filename, chunks)
	if err != nil {
		return IngestResult{}, fmt.Errorf("failed to index document %s: %w", filename, err)
	}

	dr.log.Info("document indexed", "file", filename, "chunks", len(chunks))
	return IngestResult{Chunks: len(chunks), Truncated: truncated}, nil
}

func (dr *DocRegistry) Answer(ctx context.Context, question string) (*Answer, error) {
	return dr.pipeline.Answer(ctx, question)
}

func (dr *DocRegistry) ListDocuments(ctx context.Context) ([]string, error) {
	return dr.store.List(ctx)
}

// DeleteDocument removes every indexed chunk of filename. Deleting a
// filename that was never indexed is a no-op.
func (dr *DocRegistry) DeleteDocument(ctx context.Context, filename string) error {
	return dr.store.Delete(ctx, filename)
}

func (dr *DocRegistry) Stats(ctx context.Context) (docstore.Stats, error) {
	return dr.store.Stats(ctx)
}

func (dr *DocRegistry) Clear(ctx context.Context) error {
	return dr.store.Clear(ctx)
}

func (dr *DocRegistry) Supported(filename string) bool {
	_, err := dr.findReader(filename)
	return err == nil
}

func (dr *DocRegistry) findReader(filename string) (FileReader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	reader, ok := dr.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", readers.ErrUnsupportedFormat, ext)
	}

	return reader, nil
}
