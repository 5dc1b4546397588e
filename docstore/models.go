package docstore

import "context"

// Chunk is a bounded, positionally tracked segment of a document's text.
// Chunks are produced once at ingest time and never mutated afterwards.
type Chunk struct {
	Text      string
	ID        int
	StartChar int
	EndChar   int
	File      string
}

// SearchResult is one retrieval hit for a query. Score carries whatever the
// backend produces: cosine distance for the chroma store (lower is better),
// lexical score for the memory store (higher is better). The slice order is
// the relevance order either way.
type SearchResult struct {
	Text    string
	File    string
	ChunkID int
	Score   float32
}

type Stats struct {
	TotalDocuments int
	TotalChunks    int
}

// Store is the retrieval capability shared by all backends. Add replaces any
// chunks previously indexed for the same file, Delete of an unknown file is a
// no-op, and Search over an empty index returns no hits and no error.
type Store interface {
	Add(ctx context.Context, file string, chunks []Chunk) error
	Search(ctx context.Context, query string, topK int) ([]SearchResult, error)
	Delete(ctx context.Context, file string) error
	List(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (Stats, error)
	Clear(ctx context.Context) error
}
