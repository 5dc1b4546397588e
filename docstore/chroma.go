package docstore

import (
	"context"
	"fmt"
	"sort"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

const (
	collectionName = "documents"

	metaFilename  = "filename"
	metaChunkID   = "chunk_id"
	metaStartChar = "start_char"
	metaEndChar   = "end_char"
)

const defaultRequestSize = 100

// chromaCollection is the slice of chroma.Collection this store uses.
type chromaCollection interface {
	Add(ctx context.Context, opts ...chroma.CollectionAddOption) error
	Query(ctx context.Context, opts ...chroma.CollectionQueryOption) (chroma.QueryResult, error)
	Get(ctx context.Context, opts ...chroma.CollectionGetOption) (chroma.GetResult, error)
	Delete(ctx context.Context, opts ...chroma.CollectionDeleteOption) error
	Count(ctx context.Context) (int, error)
}

// ChromaStore indexes chunks in a Chroma collection using cosine distance.
// Every chunk is keyed by "{filename}_{chunk_id}" so a whole document can be
// removed by filename filter.
type ChromaStore struct {
	client      chroma.Client
	col         chromaCollection
	ef          embeddings.EmbeddingFunction
	requestSize int
}

type ChromaStoreConfig struct {
	BaseURL       string
	EmbeddingFunc embeddings.EmbeddingFunction
	RequestSize   int
	Reset         bool
}

func NewChromaStore(ctx context.Context, cfg ChromaStoreConfig) (*ChromaStore, error) {
	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if cfg.Reset {
		_ = client.DeleteCollection(ctx, collectionName)
	}

	col, err := client.GetOrCreateCollection(ctx, collectionName,
		chroma.WithEmbeddingFunctionCreate(cfg.EmbeddingFunc),
		chroma.WithCollectionMetadataCreate(
			chroma.NewMetadata(chroma.NewStringAttribute("hnsw:space", "cosine")),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	requestSize := cfg.RequestSize
	if requestSize <= 0 {
		requestSize = defaultRequestSize
	}

	return &ChromaStore{client: client, col: col, ef: cfg.EmbeddingFunc, requestSize: requestSize}, nil
}

// Add upserts a document's chunk set: chunks already indexed under the same
// filename are removed first so a re-upload never leaves stale entries.
// Writes go out in requestSize-bounded batches; a truncation-sized document
// is a few thousand chunks, too much for one request.
func (s *ChromaStore) Add(ctx context.Context, file string, chunks []Chunk) error {
	if err := s.Delete(ctx, file); err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	ids, texts, metas := chunkRecords(file, chunks)
	for start := 0; start < len(ids); start += s.requestSize {
		end := min(start+s.requestSize, len(ids))

		err := s.col.Add(ctx,
			chroma.WithIDs(ids[start:end]...),
			chroma.WithTexts(texts[start:end]...),
			chroma.WithMetadatas(metas[start:end]...),
		)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIndexWrite, err)
		}
	}

	return nil
}

// chunkRecords builds the composite "{filename}_{chunk_id}" ids and the
// per-chunk metadata handed to the collection.
func chunkRecords(file string, chunks []Chunk) ([]chroma.DocumentID, []string, []chroma.DocumentMetadata) {
	ids := make([]chroma.DocumentID, 0, len(chunks))
	texts := make([]string, 0, len(chunks))
	metas := make([]chroma.DocumentMetadata, 0, len(chunks))
	for _, c := range chunks {
		ids = append(ids, chroma.DocumentID(fmt.Sprintf("%s_%d", file, c.ID)))
		texts = append(texts, c.Text)
		metas = append(metas, chroma.NewDocumentMetadata(
			chroma.NewStringAttribute(metaFilename, file),
			chroma.NewIntAttribute(metaChunkID, int64(c.ID)),
			chroma.NewIntAttribute(metaStartChar, int64(c.StartChar)),
			chroma.NewIntAttribute(metaEndChar, int64(c.EndChar)),
		))
	}

	return ids, texts, metas
}

func (s *ChromaStore) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	r, err := s.col.Query(ctx,
		chroma.WithQueryTexts(query),
		chroma.WithNResults(topK),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexQuery, err)
	}

	docGroups := r.GetDocumentsGroups()
	if len(docGroups) == 0 || len(docGroups[0]) == 0 {
		return nil, nil
	}

	docs := docGroups[0]
	metadatas := r.GetMetadatasGroups()[0]
	distances := r.GetDistancesGroups()[0]

	res := make([]SearchResult, 0, len(docs))
	for i := range docs {
		file, _ := metadatas[i].GetString(metaFilename)
		chunkID, _ := metadatas[i].GetInt(metaChunkID)
		res = append(res, SearchResult{
			Text:    docs[i].ContentString(),
			File:    file,
			ChunkID: int(chunkID),
			Score:   float32(distances[i]),
		})
	}

	return res, nil
}

// Delete removes every chunk indexed under file. Unknown filenames are a no-op.
func (s *ChromaStore) Delete(ctx context.Context, file string) error {
	err := s.col.Delete(ctx, chroma.WithWhereDelete(chroma.EqString(metaFilename, file)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexWrite, err)
	}

	return nil
}

func (s *ChromaStore) List(ctx context.Context) ([]string, error) {
	res, err := s.col.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexQuery, err)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, meta := range res.GetMetadatas() {
		file, ok := meta.GetString(metaFilename)
		if !ok {
			continue
		}
		if _, dup := seen[file]; dup {
			continue
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}

	sort.Strings(files)
	return files, nil
}

func (s *ChromaStore) Stats(ctx context.Context) (Stats, error) {
	count, err := s.col.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrIndexQuery, err)
	}

	files, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalDocuments: len(files),
		TotalChunks:    count,
	}, nil
}

// Clear drops and recreates the collection.
func (s *ChromaStore) Clear(ctx context.Context) error {
	if err := s.client.DeleteCollection(ctx, collectionName); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexWrite, err)
	}

	col, err := s.client.GetOrCreateCollection(ctx, collectionName,
		chroma.WithEmbeddingFunctionCreate(s.ef),
		chroma.WithCollectionMetadataCreate(
			chroma.NewMetadata(chroma.NewStringAttribute("hnsw:space", "cosine")),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.col = col
	return nil
}
